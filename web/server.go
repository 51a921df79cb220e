// ABOUTME: JSON REST server for the contact store
// ABOUTME: Exposes contacts, companies, interactions, reminders, relationships, groups, extensions, and CSV transfer over HTTP
package web

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/events"
	"github.com/harperreed/rolo/models"
	"github.com/harperreed/rolo/transfer"
)

// Server wraps the HTTP API over the contact database.
type Server struct {
	db                 *sql.DB
	bus                *events.Bus
	logger             *slog.Logger
	defaultHorizonDays int
}

func NewServer(database *sql.DB, bus *events.Bus, logger *slog.Logger, defaultHorizonDays int) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{db: database, bus: bus, logger: logger, defaultHorizonDays: defaultHorizonDays}
}

// Router builds the chi router with all API routes mounted under /api.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/contacts", func(r chi.Router) {
			r.Get("/", s.listContacts)
			r.Post("/", s.createContact)
			r.Get("/{id}", s.getContact)
			r.Put("/{id}", s.updateContact)
			r.Delete("/{id}", s.deleteContact)
			r.Get("/{id}/interactions", s.listContactInteractions)
			r.Get("/{id}/relationships", s.listRelationships)
			r.Get("/{id}/groups", s.listContactGroups)
			r.Get("/{id}/extensions", s.listContactExtensions)
		})

		r.Route("/companies", func(r chi.Router) {
			r.Get("/", s.listCompanies)
			r.Post("/", s.createCompany)
			r.Get("/{id}", s.getCompany)
			r.Put("/{id}", s.updateCompany)
			r.Delete("/{id}", s.deleteCompany)
			r.Get("/{id}/extensions", s.listCompanyExtensions)
		})

		r.Route("/interactions", func(r chi.Router) {
			r.Get("/", s.listInteractions)
			r.Post("/", s.createInteraction)
			r.Delete("/{id}", s.deleteInteraction)
		})

		r.Route("/reminders", func(r chi.Router) {
			r.Get("/", s.listReminders)
			r.Post("/", s.createReminder)
			r.Get("/upcoming", s.upcomingReminders)
			r.Delete("/{id}", s.deleteReminder)
		})

		r.Route("/relationships", func(r chi.Router) {
			r.Post("/", s.createRelationship)
			r.Delete("/{id}", s.deleteRelationship)
		})

		r.Route("/groups", func(r chi.Router) {
			r.Get("/", s.listGroups)
			r.Post("/", s.createGroup)
			r.Delete("/{id}", s.deleteGroup)
			r.Get("/{id}/members", s.listGroupMembers)
			r.Put("/{id}/members/{contactID}", s.addGroupMember)
			r.Delete("/{id}/members/{contactID}", s.removeGroupMember)
		})

		r.Route("/extensions", func(r chi.Router) {
			r.Post("/", s.setExtensionField)
			r.Delete("/", s.clearExtensionSource)
		})

		r.Get("/duplicates", s.checkDuplicates)
		r.Get("/export", s.exportContacts)
		r.Post("/import", s.importContacts)
	})

	return r
}

// Start runs the HTTP server on the given port until it fails.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.logger.Info("starting web server", "addr", addr)
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, name), 10, 64)
}

// --- contacts ---

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)

	if query := r.URL.Query().Get("q"); query != "" {
		contacts, err := db.SearchContacts(s.db, query, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, contacts)
		return
	}

	var companyID *int64
	if raw := r.URL.Query().Get("company_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid company_id")
			return
		}
		companyID = &id
	}

	contacts, err := db.ListContacts(s.db, companyID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := db.CreateContact(s.db, &contact); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.bus.Publish("contact.created", contact)
	writeJSON(w, http.StatusCreated, contact)
}

func (s *Server) getContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	contact, err := db.GetContact(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if contact == nil {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (s *Server) updateContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	found, err := db.UpdateContact(s.db, id, &contact)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}

	contact.ID = id
	s.bus.Publish("contact.updated", contact)
	writeJSON(w, http.StatusOK, contact)
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	found, err := db.DeleteContact(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}

	s.bus.Publish("contact.deleted", id)
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) checkDuplicates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	firstName := q.Get("first_name")
	if firstName == "" {
		writeError(w, http.StatusBadRequest, "first_name is required")
		return
	}

	matches, err := db.FindDuplicates(s.db, q.Get("email"), firstName, q.Get("last_name"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

// --- companies ---

func (s *Server) listCompanies(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 50)

	if query := r.URL.Query().Get("q"); query != "" {
		companies, err := db.SearchCompanies(s.db, query, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, companies)
		return
	}

	companies, err := db.ListCompanies(s.db, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, companies)
}

func (s *Server) createCompany(w http.ResponseWriter, r *http.Request) {
	var company models.Company
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := db.CreateCompany(s.db, &company); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.bus.Publish("company.created", company)
	writeJSON(w, http.StatusCreated, company)
}

func (s *Server) getCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	company, err := db.GetCompany(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if company == nil {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) updateCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	var company models.Company
	if err := json.NewDecoder(r.Body).Decode(&company); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	found, err := db.UpdateCompany(s.db, id, &company)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}

	company.ID = id
	s.bus.Publish("company.updated", company)
	writeJSON(w, http.StatusOK, company)
}

func (s *Server) deleteCompany(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	found, err := db.DeleteCompany(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "company not found")
		return
	}

	s.bus.Publish("company.deleted", id)
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

// --- interactions ---

func (s *Server) listInteractions(w http.ResponseWriter, r *http.Request) {
	interactions, err := db.ListAllInteractions(s.db, queryInt(r, "limit", 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, interactions)
}

func (s *Server) listContactInteractions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	interactions, err := db.ListInteractionsByContact(s.db, id, queryInt(r, "limit", 50))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, interactions)
}

func (s *Server) createInteraction(w http.ResponseWriter, r *http.Request) {
	var interaction models.Interaction
	if err := json.NewDecoder(r.Body).Decode(&interaction); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := db.CreateInteraction(s.db, &interaction); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.bus.Publish("interaction.logged", interaction)
	writeJSON(w, http.StatusCreated, interaction)
}

func (s *Server) deleteInteraction(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, "interaction", db.DeleteInteraction)
}

// --- reminders ---

func (s *Server) listReminders(w http.ResponseWriter, r *http.Request) {
	var contactID *int64
	if raw := r.URL.Query().Get("contact_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid contact_id")
			return
		}
		contactID = &id
	}

	reminders, err := db.ListReminders(s.db, contactID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reminders)
}

func (s *Server) upcomingReminders(w http.ResponseWriter, r *http.Request) {
	reminders, err := db.UpcomingReminders(s.db, queryInt(r, "days", s.defaultHorizonDays))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reminders)
}

func (s *Server) createReminder(w http.ResponseWriter, r *http.Request) {
	var reminder models.Reminder
	if err := json.NewDecoder(r.Body).Decode(&reminder); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := db.CreateReminder(s.db, &reminder); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.bus.Publish("reminder.created", reminder)
	writeJSON(w, http.StatusCreated, reminder)
}

func (s *Server) deleteReminder(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, "reminder", db.DeleteReminder)
}

// --- relationships ---

func (s *Server) listRelationships(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	relationships, err := db.ListRelationshipsByContact(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, relationships)
}

func (s *Server) createRelationship(w http.ResponseWriter, r *http.Request) {
	var relationship models.Relationship
	if err := json.NewDecoder(r.Body).Decode(&relationship); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if relationship.ContactID == relationship.RelatedContactID {
		writeError(w, http.StatusBadRequest, "a contact cannot be related to itself")
		return
	}

	if err := db.CreateRelationship(s.db, &relationship); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.bus.Publish("relationship.created", relationship)
	writeJSON(w, http.StatusCreated, relationship)
}

func (s *Server) deleteRelationship(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, "relationship", db.DeleteRelationship)
}

// --- groups ---

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := db.ListGroups(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) listContactGroups(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	groups, err := db.ListGroupsOfContact(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	var group models.Group
	if err := json.NewDecoder(r.Body).Decode(&group); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := db.CreateGroup(s.db, &group); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.bus.Publish("group.created", group)
	writeJSON(w, http.StatusCreated, group)
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	s.deleteByID(w, r, "group", db.DeleteGroup)
}

func (s *Server) listGroupMembers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}

	members, err := db.ListGroupMembers(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (s *Server) addGroupMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	contactID, err := pathID(r, "contactID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	changed, err := db.AddGroupMember(s.db, groupID, contactID)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

func (s *Server) removeGroupMember(w http.ResponseWriter, r *http.Request) {
	groupID, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid group id")
		return
	}
	contactID, err := pathID(r, "contactID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	changed, err := db.RemoveGroupMember(s.db, groupID, contactID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"changed": changed})
}

// --- extension fields ---

func (s *Server) setExtensionField(w http.ResponseWriter, r *http.Request) {
	var field models.ExtensionField
	if err := json.NewDecoder(r.Body).Decode(&field); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := db.UpsertExtensionField(s.db, &field); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.bus.Publish("extension_field.upserted", field)
	writeJSON(w, http.StatusOK, field)
}

func (s *Server) listContactExtensions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid contact id")
		return
	}

	fields, err := db.ListExtensionFieldsByContact(s.db, id, r.URL.Query().Get("source"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

func (s *Server) listCompanyExtensions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid company id")
		return
	}

	fields, err := db.ListExtensionFieldsByCompany(s.db, id, r.URL.Query().Get("source"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, fields)
}

func (s *Server) clearExtensionSource(w http.ResponseWriter, r *http.Request) {
	source := r.URL.Query().Get("source")
	if source == "" {
		writeError(w, http.StatusBadRequest, "source is required")
		return
	}

	removed, err := db.DeleteExtensionFieldsBySource(s.db, source)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"removed": removed})
}

// --- transfer ---

func (s *Server) exportContacts(w http.ResponseWriter, r *http.Request) {
	csvText, err := transfer.ExportContacts(s.db)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="contacts.csv"`)
	_, _ = w.Write([]byte(csvText))
}

func (s *Server) importContacts(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read body")
		return
	}

	result, err := transfer.ImportContacts(s.db, string(data))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.bus.Publish("contacts.imported", result)
	writeJSON(w, http.StatusOK, result)
}

// --- helpers ---

func (s *Server) deleteByID(w http.ResponseWriter, r *http.Request, kind string, del func(*sql.DB, int64) (bool, error)) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid %s id", kind))
		return
	}

	found, err := del(s.db, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s not found", kind))
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
