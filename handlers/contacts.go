// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements add_contact, find_contacts, update_contact, delete_contact, and check_duplicates tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/events"
	"github.com/harperreed/rolo/models"
)

type ContactHandlers struct {
	db  *sql.DB
	bus *events.Bus
}

func NewContactHandlers(database *sql.DB, bus *events.Bus) *ContactHandlers {
	return &ContactHandlers{db: database, bus: bus}
}

type AddContactInput struct {
	FirstName   string `json:"first_name" jsonschema:"First name (required)"`
	LastName    string `json:"last_name,omitempty" jsonschema:"Last name"`
	Nickname    string `json:"nickname,omitempty" jsonschema:"Nickname"`
	Email       string `json:"email,omitempty" jsonschema:"Email address"`
	Phone       string `json:"phone,omitempty" jsonschema:"Phone number"`
	CompanyName string `json:"company_name,omitempty" jsonschema:"Company name (will be looked up or created)"`
	Birthday    string `json:"birthday,omitempty" jsonschema:"Birthday as an ISO date (YYYY-MM-DD)"`
	Anniversary string `json:"anniversary,omitempty" jsonschema:"Anniversary as an ISO date (YYYY-MM-DD)"`
	Tags        string `json:"tags,omitempty" jsonschema:"Comma-separated tags"`
	Notes       string `json:"notes,omitempty" jsonschema:"Free-text notes"`
}

type ContactOutput struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	Nickname    string `json:"nickname,omitempty"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CompanyID   *int64 `json:"company_id,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	Birthday    string `json:"birthday,omitempty"`
	Anniversary string `json:"anniversary,omitempty"`
	Tags        string `json:"tags,omitempty"`
	Notes       string `json:"notes,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func contactToOutput(contact *models.Contact) ContactOutput {
	return ContactOutput{
		ID:          contact.ID,
		FirstName:   contact.FirstName,
		LastName:    contact.LastName,
		Nickname:    contact.Nickname,
		Email:       contact.Email,
		Phone:       contact.Phone,
		CompanyID:   contact.CompanyID,
		CompanyName: contact.CompanyName,
		Birthday:    contact.Birthday,
		Anniversary: contact.Anniversary,
		Tags:        contact.Tags,
		Notes:       contact.Notes,
		CreatedAt:   contact.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt:   contact.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *ContactHandlers) AddContact(_ context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	if input.FirstName == "" {
		return nil, ContactOutput{}, fmt.Errorf("first_name is required")
	}

	contact := &models.Contact{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Nickname:    input.Nickname,
		Email:       input.Email,
		Phone:       input.Phone,
		Birthday:    input.Birthday,
		Anniversary: input.Anniversary,
		Tags:        input.Tags,
		Notes:       input.Notes,
	}

	if input.CompanyName != "" {
		company, err := db.FindCompanyByName(h.db, input.CompanyName)
		if err != nil {
			return nil, ContactOutput{}, fmt.Errorf("failed to lookup company: %w", err)
		}
		if company == nil {
			company = &models.Company{Name: input.CompanyName}
			if err := db.CreateCompany(h.db, company); err != nil {
				return nil, ContactOutput{}, fmt.Errorf("failed to create company: %w", err)
			}
		}
		contact.CompanyID = &company.ID
		contact.CompanyName = company.Name
	}

	if err := db.CreateContact(h.db, contact); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to create contact: %w", err)
	}

	h.bus.Publish("contact.created", contact)

	return nil, contactToOutput(contact), nil
}

type FindContactsInput struct {
	Query     string `json:"query,omitempty" jsonschema:"Search text; names and contact fields, with fuzzy fallback"`
	CompanyID int64  `json:"company_id,omitempty" jsonschema:"Filter by company ID"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, request *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	var contacts []models.Contact
	var err error

	switch {
	case input.Query != "":
		contacts, err = db.SearchContacts(h.db, input.Query, limit)
	case input.CompanyID != 0:
		contacts, err = db.ListContacts(h.db, &input.CompanyID, limit)
	default:
		contacts, err = db.ListContacts(h.db, nil, limit)
	}
	if err != nil {
		return nil, FindContactsOutput{}, fmt.Errorf("failed to find contacts: %w", err)
	}

	result := make([]ContactOutput, len(contacts))
	for i, contact := range contacts {
		result[i] = contactToOutput(&contact)
	}

	return nil, FindContactsOutput{Contacts: result}, nil
}

type GetContactInput struct {
	ID int64 `json:"id" jsonschema:"Contact ID (required)"`
}

func (h *ContactHandlers) GetContact(_ context.Context, request *mcp.CallToolRequest, input GetContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	contact, err := db.GetContact(h.db, input.ID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact not found")
	}

	return nil, contactToOutput(contact), nil
}

type UpdateContactInput struct {
	ID          int64  `json:"id" jsonschema:"Contact ID (required)"`
	FirstName   string `json:"first_name,omitempty" jsonschema:"Updated first name"`
	LastName    string `json:"last_name,omitempty" jsonschema:"Updated last name"`
	Nickname    string `json:"nickname,omitempty" jsonschema:"Updated nickname"`
	Email       string `json:"email,omitempty" jsonschema:"Updated email address"`
	Phone       string `json:"phone,omitempty" jsonschema:"Updated phone number"`
	Birthday    string `json:"birthday,omitempty" jsonschema:"Updated birthday (ISO date)"`
	Anniversary string `json:"anniversary,omitempty" jsonschema:"Updated anniversary (ISO date)"`
	Tags        string `json:"tags,omitempty" jsonschema:"Updated comma-separated tags"`
	Notes       string `json:"notes,omitempty" jsonschema:"Updated notes"`
}

// UpdateContact applies a partial update: only supplied fields mutate.
func (h *ContactHandlers) UpdateContact(_ context.Context, request *mcp.CallToolRequest, input UpdateContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	contact, err := db.GetContact(h.db, input.ID)
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact == nil {
		return nil, ContactOutput{}, fmt.Errorf("contact not found")
	}

	if input.FirstName != "" {
		contact.FirstName = input.FirstName
	}
	if input.LastName != "" {
		contact.LastName = input.LastName
	}
	if input.Nickname != "" {
		contact.Nickname = input.Nickname
	}
	if input.Email != "" {
		contact.Email = input.Email
	}
	if input.Phone != "" {
		contact.Phone = input.Phone
	}
	if input.Birthday != "" {
		contact.Birthday = input.Birthday
	}
	if input.Anniversary != "" {
		contact.Anniversary = input.Anniversary
	}
	if input.Tags != "" {
		contact.Tags = input.Tags
	}
	if input.Notes != "" {
		contact.Notes = input.Notes
	}

	if _, err := db.UpdateContact(h.db, input.ID, contact); err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to update contact: %w", err)
	}

	h.bus.Publish("contact.updated", contact)

	return nil, contactToOutput(contact), nil
}

type DeleteContactInput struct {
	ID int64 `json:"id" jsonschema:"Contact ID (required)"`
}

type DeleteOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (h *ContactHandlers) DeleteContact(_ context.Context, request *mcp.CallToolRequest, input DeleteContactInput) (*mcp.CallToolResult, DeleteOutput, error) {
	found, err := db.DeleteContact(h.db, input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete contact: %w", err)
	}
	if !found {
		return nil, DeleteOutput{Success: false, Message: "contact not found"}, nil
	}

	h.bus.Publish("contact.deleted", input.ID)

	return nil, DeleteOutput{
		Success: true,
		Message: fmt.Sprintf("Deleted contact %d (with its interactions, reminders, relationships, and group memberships)", input.ID),
	}, nil
}

type CheckDuplicatesInput struct {
	Email     string `json:"email,omitempty" jsonschema:"Candidate email address"`
	FirstName string `json:"first_name" jsonschema:"Candidate first name (required)"`
	LastName  string `json:"last_name,omitempty" jsonschema:"Candidate last name"`
}

type CheckDuplicatesOutput struct {
	Matches []ContactOutput `json:"matches"`
}

func (h *ContactHandlers) CheckDuplicates(_ context.Context, request *mcp.CallToolRequest, input CheckDuplicatesInput) (*mcp.CallToolResult, CheckDuplicatesOutput, error) {
	if input.FirstName == "" {
		return nil, CheckDuplicatesOutput{}, fmt.Errorf("first_name is required")
	}

	matches, err := db.FindDuplicates(h.db, input.Email, input.FirstName, input.LastName)
	if err != nil {
		return nil, CheckDuplicatesOutput{}, fmt.Errorf("failed to check duplicates: %w", err)
	}

	result := make([]ContactOutput, len(matches))
	for i, contact := range matches {
		result[i] = contactToOutput(&contact)
	}

	return nil, CheckDuplicatesOutput{Matches: result}, nil
}
