// ABOUTME: HTTP-level tests for the REST API
// ABOUTME: Exercises routing, JSON bodies, and error statuses with httptest
package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/events"
	"github.com/harperreed/rolo/models"
)

func setupServer(t *testing.T) *Server {
	t.Helper()

	database, err := db.OpenMemoryDatabase()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	return NewServer(database, events.NewBus(nil), nil, 30)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestContactLifecycle(t *testing.T) {
	server := setupServer(t)
	router := server.Router()

	// Create
	rec := doJSON(t, router, http.MethodPost, "/api/contacts", models.Contact{
		FirstName: "John", LastName: "Smith", Email: "john@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	// Get
	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/contacts/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Update
	created.Nickname = "Johnny"
	rec = doJSON(t, router, http.MethodPut, fmt.Sprintf("/api/contacts/%d", created.ID), created)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Search
	rec = doJSON(t, router, http.MethodGet, "/api/contacts?q=johnny", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var found []models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Len(t, found, 1)

	// Delete
	rec = doJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/contacts/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/contacts/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestContactValidation(t *testing.T) {
	server := setupServer(t)
	router := server.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/contacts", models.Contact{LastName: "NoFirst"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/contacts/notanumber", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDuplicatesEndpoint(t *testing.T) {
	server := setupServer(t)
	router := server.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/contacts", models.Contact{
		FirstName: "John", LastName: "Smith", Email: "john@example.com",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/duplicates?first_name=john&last_name=smith", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var matches []models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &matches))
	assert.Len(t, matches, 1)

	rec = doJSON(t, router, http.MethodGet, "/api/duplicates", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "first_name is required")
}

func TestGroupMembershipEndpoints(t *testing.T) {
	server := setupServer(t)
	router := server.Router()

	rec := doJSON(t, router, http.MethodPost, "/api/contacts", models.Contact{FirstName: "John"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var contact models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contact))

	rec = doJSON(t, router, http.MethodPost, "/api/groups", models.Group{Name: "Friends"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var group models.Group
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &group))

	memberPath := fmt.Sprintf("/api/groups/%d/members/%d", group.ID, contact.ID)

	rec = doJSON(t, router, http.MethodPut, memberPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"changed":true`)

	// Idempotent re-add
	rec = doJSON(t, router, http.MethodPut, memberPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"changed":false`)

	rec = doJSON(t, router, http.MethodGet, fmt.Sprintf("/api/groups/%d/members", group.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var members []models.Contact
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &members))
	assert.Len(t, members, 1)
}

func TestExportImportEndpoints(t *testing.T) {
	server := setupServer(t)
	router := server.Router()

	csv := "first_name,last_name,email\nJohn,Smith,john@example.com\n"
	req := httptest.NewRequest(http.MethodPost, "/api/import", strings.NewReader(csv))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"created":1`)

	rec = doJSON(t, router, http.MethodGet, "/api/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "John,Smith,john@example.com")
}
