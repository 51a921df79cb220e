// ABOUTME: Test suite for contact database operations
// ABOUTME: Verifies CRUD, company denormalization, and not-found semantics
package db

import (
	"testing"

	"github.com/harperreed/rolo/models"
)

func TestCreateContact(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := &models.Contact{
		FirstName: "John",
		LastName:  "Smith",
		Email:     "john@example.com",
		Phone:     "555-1234",
		Tags:      "friend,golf",
	}
	if err := CreateContact(db, contact); err != nil {
		t.Fatalf("Failed to create contact: %v", err)
	}

	if contact.ID == 0 {
		t.Error("Expected ID to be assigned")
	}
	if contact.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}

	loaded, err := GetContact(db, contact.ID)
	if err != nil {
		t.Fatalf("Failed to get contact: %v", err)
	}
	if loaded == nil {
		t.Fatal("Expected contact, got nil")
	}
	if loaded.FirstName != "John" || loaded.LastName != "Smith" {
		t.Errorf("Unexpected name: %s %s", loaded.FirstName, loaded.LastName)
	}
	if loaded.Email != "john@example.com" {
		t.Errorf("Unexpected email: %s", loaded.Email)
	}
}

func TestCreateContactRequiresFirstName(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	err := CreateContact(db, &models.Contact{LastName: "Smith"})
	if err == nil {
		t.Error("Expected error for missing first name")
	}
}

func TestGetContactNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact, err := GetContact(db, 99999)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if contact != nil {
		t.Error("Expected nil for missing contact")
	}
}

func TestContactCompanyNameDenormalized(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	company := &models.Company{Name: "Acme Corp"}
	if err := CreateCompany(db, company); err != nil {
		t.Fatalf("Failed to create company: %v", err)
	}

	contact := mustCreateContact(t, db, &models.Contact{FirstName: "Jane", CompanyID: &company.ID})

	loaded, err := GetContact(db, contact.ID)
	if err != nil {
		t.Fatalf("Failed to get contact: %v", err)
	}
	if loaded.CompanyName != "Acme Corp" {
		t.Errorf("Expected denormalized company name, got %q", loaded.CompanyName)
	}
}

func TestListContactsByCompany(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	company := &models.Company{Name: "Acme Corp"}
	if err := CreateCompany(db, company); err != nil {
		t.Fatalf("Failed to create company: %v", err)
	}

	mustCreateContact(t, db, &models.Contact{FirstName: "Jane", CompanyID: &company.ID})
	mustCreateContact(t, db, &models.Contact{FirstName: "Bob"})

	contacts, err := ListContacts(db, &company.ID, 50)
	if err != nil {
		t.Fatalf("Failed to list contacts: %v", err)
	}
	if len(contacts) != 1 {
		t.Fatalf("Expected 1 contact at company, got %d", len(contacts))
	}
	if contacts[0].FirstName != "Jane" {
		t.Errorf("Expected Jane, got %s", contacts[0].FirstName)
	}

	all, err := ListContacts(db, nil, 50)
	if err != nil {
		t.Fatalf("Failed to list all contacts: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 contacts total, got %d", len(all))
	}
}

func TestUpdateContact(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := mustCreateContact(t, db, &models.Contact{FirstName: "John", Email: "old@example.com"})

	contact.Email = "new@example.com"
	contact.Nickname = "Johnny"
	found, err := UpdateContact(db, contact.ID, contact)
	if err != nil {
		t.Fatalf("Failed to update contact: %v", err)
	}
	if !found {
		t.Fatal("Expected update to find the contact")
	}

	loaded, err := GetContact(db, contact.ID)
	if err != nil {
		t.Fatalf("Failed to get contact: %v", err)
	}
	if loaded.Email != "new@example.com" {
		t.Errorf("Expected updated email, got %s", loaded.Email)
	}
	if loaded.Nickname != "Johnny" {
		t.Errorf("Expected updated nickname, got %s", loaded.Nickname)
	}
}

func TestUpdateContactNotFound(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	found, err := UpdateContact(db, 99999, &models.Contact{FirstName: "Ghost"})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found {
		t.Error("Expected found == false for missing contact")
	}
}

func TestDeleteContact(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := mustCreateContact(t, db, &models.Contact{FirstName: "John"})

	found, err := DeleteContact(db, contact.ID)
	if err != nil {
		t.Fatalf("Failed to delete contact: %v", err)
	}
	if !found {
		t.Error("Expected delete to report the contact existed")
	}

	loaded, err := GetContact(db, contact.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if loaded != nil {
		t.Error("Expected contact to be gone")
	}

	found, err = DeleteContact(db, contact.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found {
		t.Error("Expected second delete to report not found")
	}
}

func TestContactCustomFields(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := &models.Contact{FirstName: "John"}
	if err := contact.SetCustomFields(map[string]string{"twitter": "@john"}); err != nil {
		t.Fatalf("Failed to set custom fields: %v", err)
	}
	mustCreateContact(t, db, contact)

	loaded, err := GetContact(db, contact.ID)
	if err != nil {
		t.Fatalf("Failed to get contact: %v", err)
	}

	fields, err := loaded.GetCustomFields()
	if err != nil {
		t.Fatalf("Failed to decode custom fields: %v", err)
	}
	if fields["twitter"] != "@john" {
		t.Errorf("Expected custom field to round-trip, got %v", fields)
	}
}
