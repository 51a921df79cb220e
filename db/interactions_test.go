// ABOUTME: Test suite for interaction database operations
// ABOUTME: Verifies defaults, contact-name joins, and deletion
package db

import (
	"testing"
	"time"

	"github.com/harperreed/rolo/models"
)

func TestCreateInteractionDefaults(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := mustCreateContact(t, db, &models.Contact{FirstName: "John", LastName: "Smith"})

	interaction := &models.Interaction{
		ContactID: contact.ID,
		Summary:   "Caught up over coffee",
	}
	if err := CreateInteraction(db, interaction); err != nil {
		t.Fatalf("Failed to create interaction: %v", err)
	}

	if interaction.ID == 0 {
		t.Error("Expected ID to be assigned")
	}
	if interaction.Type != models.InteractionNote {
		t.Errorf("Expected default type note, got %s", interaction.Type)
	}
	if interaction.HappenedAt.IsZero() {
		t.Error("Expected HappenedAt to default to now")
	}
}

func TestListInteractionsByContact(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	john := mustCreateContact(t, db, &models.Contact{FirstName: "John", LastName: "Smith"})
	jane := mustCreateContact(t, db, &models.Contact{FirstName: "Jane"})

	older := &models.Interaction{
		ContactID:  john.ID,
		Type:       models.InteractionCall,
		Summary:    "Quarterly call",
		HappenedAt: time.Now().Add(-48 * time.Hour),
	}
	if err := CreateInteraction(db, older); err != nil {
		t.Fatalf("Failed to create interaction: %v", err)
	}

	newer := &models.Interaction{
		ContactID: john.ID,
		Type:      models.InteractionMeeting,
		Summary:   "Lunch meeting",
	}
	if err := CreateInteraction(db, newer); err != nil {
		t.Fatalf("Failed to create interaction: %v", err)
	}

	if err := CreateInteraction(db, &models.Interaction{ContactID: jane.ID, Summary: "Text"}); err != nil {
		t.Fatalf("Failed to create interaction: %v", err)
	}

	interactions, err := ListInteractionsByContact(db, john.ID, 50)
	if err != nil {
		t.Fatalf("Failed to list interactions: %v", err)
	}
	if len(interactions) != 2 {
		t.Fatalf("Expected 2 interactions for John, got %d", len(interactions))
	}

	// Newest first
	if interactions[0].Summary != "Lunch meeting" {
		t.Errorf("Expected newest interaction first, got %s", interactions[0].Summary)
	}
	if interactions[0].ContactName != "John Smith" {
		t.Errorf("Expected joined contact name, got %q", interactions[0].ContactName)
	}

	all, err := ListAllInteractions(db, 50)
	if err != nil {
		t.Fatalf("Failed to list all interactions: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 interactions total, got %d", len(all))
	}
}

func TestDeleteInteraction(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := mustCreateContact(t, db, &models.Contact{FirstName: "John"})
	interaction := &models.Interaction{ContactID: contact.ID, Summary: "Call"}
	if err := CreateInteraction(db, interaction); err != nil {
		t.Fatalf("Failed to create interaction: %v", err)
	}

	found, err := DeleteInteraction(db, interaction.ID)
	if err != nil {
		t.Fatalf("Failed to delete interaction: %v", err)
	}
	if !found {
		t.Error("Expected delete to report the interaction existed")
	}

	found, err = DeleteInteraction(db, interaction.ID)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if found {
		t.Error("Expected second delete to report not found")
	}
}
