// ABOUTME: Reminder MCP tool handlers
// ABOUTME: Implements add_reminder, list_reminders, upcoming_reminders, and delete_reminder tools
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

type ReminderHandlers struct {
	db  *sql.DB
	bus *events.Bus
	// defaultHorizonDays bounds upcoming_reminders when the caller does not
	// supply a window.
	defaultHorizonDays int
}

func NewReminderHandlers(database *sql.DB, bus *events.Bus, defaultHorizonDays int) *ReminderHandlers {
	if defaultHorizonDays <= 0 {
		defaultHorizonDays = 30
	}
	return &ReminderHandlers{db: database, bus: bus, defaultHorizonDays: defaultHorizonDays}
}

type AddReminderInput struct {
	ContactID  int64  `json:"contact_id" jsonschema:"Contact ID (required)"`
	Type       string `json:"type" jsonschema:"Reminder type: birthday, anniversary, or custom (required)"`
	TargetDate string `json:"target_date" jsonschema:"Target date as an ISO date (YYYY-MM-DD, required)"`
	Message    string `json:"message,omitempty" jsonschema:"Optional reminder message"`
}

type ReminderOutput struct {
	ID          int64  `json:"id"`
	ContactID   int64  `json:"contact_id"`
	ContactName string `json:"contact_name,omitempty"`
	Type        string `json:"type"`
	TargetDate  string `json:"target_date"`
	Message     string `json:"message,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func reminderToOutput(reminder *models.Reminder) ReminderOutput {
	return ReminderOutput{
		ID:          reminder.ID,
		ContactID:   reminder.ContactID,
		ContactName: reminder.ContactName,
		Type:        reminder.Type,
		TargetDate:  reminder.TargetDate,
		Message:     reminder.Message,
		CreatedAt:   reminder.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *ReminderHandlers) AddReminder(_ context.Context, request *mcp.CallToolRequest, input AddReminderInput) (*mcp.CallToolResult, ReminderOutput, error) {
	contact, err := db.GetContact(h.db, input.ContactID)
	if err != nil {
		return nil, ReminderOutput{}, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact == nil {
		return nil, ReminderOutput{}, fmt.Errorf("contact not found")
	}

	reminder := &models.Reminder{
		ContactID:  input.ContactID,
		Type:       input.Type,
		TargetDate: input.TargetDate,
		Message:    input.Message,
	}

	if err := db.CreateReminder(h.db, reminder); err != nil {
		return nil, ReminderOutput{}, fmt.Errorf("failed to create reminder: %w", err)
	}

	reminder.ContactName = contact.FullName()
	h.bus.Publish("reminder.created", reminder)

	return nil, reminderToOutput(reminder), nil
}

type ListRemindersInput struct {
	ContactID int64 `json:"contact_id,omitempty" jsonschema:"Filter by contact ID; omit to list across all contacts"`
}

type ListRemindersOutput struct {
	Reminders []ReminderOutput `json:"reminders"`
}

func (h *ReminderHandlers) ListReminders(_ context.Context, request *mcp.CallToolRequest, input ListRemindersInput) (*mcp.CallToolResult, ListRemindersOutput, error) {
	var contactID *int64
	if input.ContactID != 0 {
		contactID = &input.ContactID
	}

	reminders, err := db.ListReminders(h.db, contactID)
	if err != nil {
		return nil, ListRemindersOutput{}, fmt.Errorf("failed to list reminders: %w", err)
	}

	result := make([]ReminderOutput, len(reminders))
	for i, reminder := range reminders {
		result[i] = reminderToOutput(&reminder)
	}

	return nil, ListRemindersOutput{Reminders: result}, nil
}

type UpcomingRemindersInput struct {
	Days int `json:"days,omitempty" jsonschema:"Window in days from today (default from configuration)"`
}

func (h *ReminderHandlers) UpcomingReminders(_ context.Context, request *mcp.CallToolRequest, input UpcomingRemindersInput) (*mcp.CallToolResult, ListRemindersOutput, error) {
	days := input.Days
	if days <= 0 {
		days = h.defaultHorizonDays
	}

	reminders, err := db.UpcomingReminders(h.db, days)
	if err != nil {
		return nil, ListRemindersOutput{}, fmt.Errorf("failed to list upcoming reminders: %w", err)
	}

	result := make([]ReminderOutput, len(reminders))
	for i, reminder := range reminders {
		result[i] = reminderToOutput(&reminder)
	}

	return nil, ListRemindersOutput{Reminders: result}, nil
}

type DeleteReminderInput struct {
	ID int64 `json:"id" jsonschema:"Reminder ID (required)"`
}

func (h *ReminderHandlers) DeleteReminder(_ context.Context, request *mcp.CallToolRequest, input DeleteReminderInput) (*mcp.CallToolResult, DeleteOutput, error) {
	found, err := db.DeleteReminder(h.db, input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete reminder: %w", err)
	}
	if !found {
		return nil, DeleteOutput{Success: false, Message: "reminder not found"}, nil
	}

	return nil, DeleteOutput{Success: true, Message: fmt.Sprintf("Deleted reminder %d", input.ID)}, nil
}
