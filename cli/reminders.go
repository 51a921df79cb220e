// ABOUTME: Reminder CLI commands
// ABOUTME: Commands for adding, listing, and checking upcoming reminders
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

// AddReminderCommand adds a reminder for a contact.
func AddReminderCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-reminder", flag.ExitOnError)
	contactID := fs.Int64("contact", 0, "Contact ID (required)")
	reminderType := fs.String("type", models.ReminderCustom, "Type: birthday, anniversary, or custom")
	message := fs.String("message", "", "Reminder message")
	date := fs.String("date", "", "Target date (YYYY-MM-DD, required)")
	_ = fs.Parse(args)

	if *contactID == 0 {
		return fmt.Errorf("--contact is required")
	}
	if *date == "" {
		return fmt.Errorf("--date is required")
	}

	contact, err := db.GetContact(database, *contactID)
	if err != nil {
		return fmt.Errorf("failed to get contact: %w", err)
	}
	if contact == nil {
		return fmt.Errorf("contact not found: %d", *contactID)
	}

	reminder := &models.Reminder{
		ContactID:  *contactID,
		Type:       *reminderType,
		Message:    *message,
		TargetDate: *date,
	}
	if err := db.CreateReminder(database, reminder); err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}

	fmt.Printf("Created reminder %d for %s on %s\n", reminder.ID, contact.FullName(), reminder.TargetDate)
	return nil
}

// ListRemindersCommand lists reminders, optionally for one contact.
func ListRemindersCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-reminders", flag.ExitOnError)
	contactID := fs.Int64("contact", 0, "Filter by contact ID")
	_ = fs.Parse(args)

	var filter *int64
	if *contactID != 0 {
		filter = contactID
	}

	reminders, err := db.ListReminders(database, filter)
	if err != nil {
		return fmt.Errorf("failed to list reminders: %w", err)
	}

	return printReminders(reminders)
}

// UpcomingRemindersCommand lists reminders falling due soon.
func UpcomingRemindersCommand(database *sql.DB, args []string, defaultHorizonDays int) error {
	fs := flag.NewFlagSet("upcoming-reminders", flag.ExitOnError)
	days := fs.Int("days", defaultHorizonDays, "Horizon in days")
	_ = fs.Parse(args)

	reminders, err := db.UpcomingReminders(database, *days)
	if err != nil {
		return fmt.Errorf("failed to list upcoming reminders: %w", err)
	}

	return printReminders(reminders)
}

func printReminders(reminders []models.Reminder) error {
	if len(reminders) == 0 {
		fmt.Println("No reminders found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tCONTACT\tTYPE\tMESSAGE")
	for _, r := range reminders {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.TargetDate, r.ContactName, r.Type, r.Message)
	}
	return w.Flush()
}

// DeleteReminderCommand deletes a reminder.
func DeleteReminderCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("reminder id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid reminder id: %s", args[0])
	}

	found, err := db.DeleteReminder(database, id)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if !found {
		return fmt.Errorf("reminder not found: %d", id)
	}

	fmt.Printf("Deleted reminder %d\n", id)
	return nil
}
