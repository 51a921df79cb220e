// ABOUTME: Tests for contact MCP tool handlers
// ABOUTME: Verifies company auto-creation, partial updates, and event publishing
package handlers

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/events"
)

func setupHandlers(t *testing.T) (*ContactHandlers, *sql.DB, *events.Bus) {
	t.Helper()

	database, err := db.OpenMemoryDatabase()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	bus := events.NewBus(nil)
	return NewContactHandlers(database, bus), database, bus
}

func TestAddContactCreatesCompany(t *testing.T) {
	h, database, _ := setupHandlers(t)
	ctx := context.Background()

	_, out, err := h.AddContact(ctx, nil, AddContactInput{
		FirstName:   "John",
		LastName:    "Smith",
		CompanyName: "Acme Corp",
	})
	require.NoError(t, err)
	require.NotZero(t, out.ID)
	assert.Equal(t, "Acme Corp", out.CompanyName)

	// A second contact at the same company reuses it
	_, _, err = h.AddContact(ctx, nil, AddContactInput{FirstName: "Jane", CompanyName: "acme corp"})
	require.NoError(t, err)

	companies, err := db.ListCompanies(database, 50)
	require.NoError(t, err)
	assert.Len(t, companies, 1)
}

func TestAddContactRequiresFirstName(t *testing.T) {
	h, _, _ := setupHandlers(t)

	_, _, err := h.AddContact(context.Background(), nil, AddContactInput{LastName: "Smith"})
	assert.Error(t, err)
}

func TestUpdateContactPartial(t *testing.T) {
	h, _, _ := setupHandlers(t)
	ctx := context.Background()

	_, created, err := h.AddContact(ctx, nil, AddContactInput{
		FirstName: "John", Email: "old@example.com", Phone: "555-1234",
	})
	require.NoError(t, err)

	_, updated, err := h.UpdateContact(ctx, nil, UpdateContactInput{
		ID: created.ID, Email: "new@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", updated.Email)
	assert.Equal(t, "555-1234", updated.Phone, "untouched fields must survive")
	assert.Equal(t, "John", updated.FirstName)
}

func TestDeleteContactPublishesEvent(t *testing.T) {
	h, _, bus := setupHandlers(t)
	ctx := context.Background()

	var mu sync.Mutex
	var topics []string
	record := func(e events.Event) error {
		mu.Lock()
		defer mu.Unlock()
		topics = append(topics, e.Topic)
		return nil
	}
	bus.Subscribe("contact.created", record)
	bus.Subscribe("contact.deleted", record)

	_, created, err := h.AddContact(ctx, nil, AddContactInput{FirstName: "John"})
	require.NoError(t, err)

	_, out, err := h.DeleteContact(ctx, nil, DeleteContactInput{ID: created.ID})
	require.NoError(t, err)
	assert.True(t, out.Success)

	bus.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"contact.created", "contact.deleted"}, topics)
}

func TestDeleteContactNotFound(t *testing.T) {
	h, _, _ := setupHandlers(t)

	_, out, err := h.DeleteContact(context.Background(), nil, DeleteContactInput{ID: 99999})
	require.NoError(t, err)
	assert.False(t, out.Success)
}

func TestCheckDuplicates(t *testing.T) {
	h, _, _ := setupHandlers(t)
	ctx := context.Background()

	_, _, err := h.AddContact(ctx, nil, AddContactInput{
		FirstName: "John", LastName: "Smith", Email: "john@example.com",
	})
	require.NoError(t, err)

	_, out, err := h.CheckDuplicates(ctx, nil, CheckDuplicatesInput{
		FirstName: "john", LastName: "SMITH",
	})
	require.NoError(t, err)
	assert.Len(t, out.Matches, 1)
}
