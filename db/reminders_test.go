// ABOUTME: Test suite for reminder database operations
// ABOUTME: Verifies type validation and the upcoming date window
package db

import (
	"testing"
	"time"

	"github.com/harperreed/rolo/models"
)

func TestCreateReminderValidation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := mustCreateContact(t, db, &models.Contact{FirstName: "John"})

	err := CreateReminder(db, &models.Reminder{
		ContactID:  contact.ID,
		Type:       "holiday",
		TargetDate: "2026-12-25",
	})
	if err == nil {
		t.Error("Expected error for invalid reminder type")
	}

	err = CreateReminder(db, &models.Reminder{
		ContactID: contact.ID,
		Type:      models.ReminderBirthday,
	})
	if err == nil {
		t.Error("Expected error for missing target date")
	}

	reminder := &models.Reminder{
		ContactID:  contact.ID,
		Type:       models.ReminderBirthday,
		TargetDate: "2026-12-25",
		Message:    "Birthday!",
	}
	if err := CreateReminder(db, reminder); err != nil {
		t.Fatalf("Failed to create reminder: %v", err)
	}
	if reminder.ID == 0 {
		t.Error("Expected ID to be assigned")
	}
}

func TestUpcomingReminders(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	contact := mustCreateContact(t, db, &models.Contact{FirstName: "John", LastName: "Smith"})

	soon := time.Now().AddDate(0, 0, 5).Format("2006-01-02")
	far := time.Now().AddDate(0, 0, 90).Format("2006-01-02")
	past := time.Now().AddDate(0, 0, -5).Format("2006-01-02")

	for _, date := range []string{soon, far, past} {
		if err := CreateReminder(db, &models.Reminder{
			ContactID:  contact.ID,
			Type:       models.ReminderCustom,
			TargetDate: date,
		}); err != nil {
			t.Fatalf("Failed to create reminder: %v", err)
		}
	}

	upcoming, err := UpcomingReminders(db, 30)
	if err != nil {
		t.Fatalf("Failed to list upcoming reminders: %v", err)
	}
	if len(upcoming) != 1 {
		t.Fatalf("Expected 1 upcoming reminder, got %d", len(upcoming))
	}
	if upcoming[0].TargetDate != soon {
		t.Errorf("Expected reminder on %s, got %s", soon, upcoming[0].TargetDate)
	}
	if upcoming[0].ContactName != "John Smith" {
		t.Errorf("Expected joined contact name, got %q", upcoming[0].ContactName)
	}
}

func TestListRemindersByContact(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	john := mustCreateContact(t, db, &models.Contact{FirstName: "John"})
	jane := mustCreateContact(t, db, &models.Contact{FirstName: "Jane"})

	if err := CreateReminder(db, &models.Reminder{ContactID: john.ID, Type: models.ReminderCustom, TargetDate: "2026-10-01"}); err != nil {
		t.Fatalf("Failed to create reminder: %v", err)
	}
	if err := CreateReminder(db, &models.Reminder{ContactID: jane.ID, Type: models.ReminderCustom, TargetDate: "2026-09-01"}); err != nil {
		t.Fatalf("Failed to create reminder: %v", err)
	}

	johnOnly, err := ListReminders(db, &john.ID)
	if err != nil {
		t.Fatalf("Failed to list reminders: %v", err)
	}
	if len(johnOnly) != 1 {
		t.Errorf("Expected 1 reminder for John, got %d", len(johnOnly))
	}

	all, err := ListReminders(db, nil)
	if err != nil {
		t.Fatalf("Failed to list reminders: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected 2 reminders total, got %d", len(all))
	}
	// Soonest first
	if all[0].TargetDate != "2026-09-01" {
		t.Errorf("Expected soonest reminder first, got %s", all[0].TargetDate)
	}
}
