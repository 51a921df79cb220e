// ABOUTME: Shared test database helper
// ABOUTME: Opens a migrated in-memory SQLite database per test
package db

import (
	"database/sql"
	"testing"

	"github.com/harperreed/rolo/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := OpenMemoryDatabase()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	return db
}

func mustCreateContact(t *testing.T, db *sql.DB, contact *models.Contact) *models.Contact {
	t.Helper()

	if err := CreateContact(db, contact); err != nil {
		t.Fatalf("Failed to create contact %s: %v", contact.FirstName, err)
	}
	return contact
}
