// ABOUTME: Reminder database operations
// ABOUTME: Birthday, anniversary, and custom reminders with an upcoming-window query
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/rolo/models"
)

func CreateReminder(db *sql.DB, reminder *models.Reminder) error {
	if !models.ValidReminderType(reminder.Type) {
		return fmt.Errorf("invalid reminder type: %q (want birthday, anniversary, or custom)", reminder.Type)
	}
	if reminder.TargetDate == "" {
		return fmt.Errorf("target_date is required")
	}

	reminder.CreatedAt = time.Now()

	res, err := db.Exec(`
		INSERT INTO reminders (contact_id, type, target_date, message, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, reminder.ContactID, reminder.Type, reminder.TargetDate, reminder.Message, reminder.CreatedAt)
	if err != nil {
		return err
	}

	reminder.ID, err = res.LastInsertId()
	return err
}

// ListReminders returns reminders joined with the contact name, soonest first.
// A nil contactID lists reminders for every contact.
func ListReminders(db *sql.DB, contactID *int64) ([]models.Reminder, error) {
	query := `
		SELECT r.id, r.contact_id, c.first_name || CASE WHEN c.last_name = '' THEN '' ELSE ' ' || c.last_name END,
			r.type, r.target_date, r.message, r.created_at
		FROM reminders r
		JOIN contacts c ON c.id = r.contact_id`

	var rows *sql.Rows
	var err error

	if contactID != nil {
		rows, err = db.Query(query+` WHERE r.contact_id = ? ORDER BY r.target_date`, *contactID)
	} else {
		rows, err = db.Query(query + ` ORDER BY r.target_date`)
	}
	if err != nil {
		return nil, err
	}

	return collectReminders(rows)
}

// UpcomingReminders returns reminders with a target date between today and
// today+days inclusive, soonest first. ISO date strings compare correctly as
// text.
func UpcomingReminders(db *sql.DB, days int) ([]models.Reminder, error) {
	if days <= 0 {
		days = 30
	}

	today := time.Now().Format("2006-01-02")
	horizon := time.Now().AddDate(0, 0, days).Format("2006-01-02")

	rows, err := db.Query(`
		SELECT r.id, r.contact_id, c.first_name || CASE WHEN c.last_name = '' THEN '' ELSE ' ' || c.last_name END,
			r.type, r.target_date, r.message, r.created_at
		FROM reminders r
		JOIN contacts c ON c.id = r.contact_id
		WHERE r.target_date >= ? AND r.target_date <= ?
		ORDER BY r.target_date
	`, today, horizon)
	if err != nil {
		return nil, err
	}

	return collectReminders(rows)
}

func collectReminders(rows *sql.Rows) ([]models.Reminder, error) {
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var r models.Reminder
		if err := rows.Scan(&r.ID, &r.ContactID, &r.ContactName, &r.Type, &r.TargetDate,
			&r.Message, &r.CreatedAt); err != nil {
			return nil, err
		}
		reminders = append(reminders, r)
	}

	return reminders, rows.Err()
}

func DeleteReminder(db *sql.DB, id int64) (bool, error) {
	res, err := db.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}
