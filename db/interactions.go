// ABOUTME: Interaction log database operations
// ABOUTME: Records calls, meetings, emails, and other touchpoints per contact
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/rolo/models"
)

func CreateInteraction(db *sql.DB, interaction *models.Interaction) error {
	if interaction.Summary == "" {
		return fmt.Errorf("summary is required")
	}
	if interaction.Type == "" {
		interaction.Type = models.InteractionNote
	}
	if interaction.HappenedAt.IsZero() {
		interaction.HappenedAt = time.Now()
	}
	interaction.CreatedAt = time.Now()

	res, err := db.Exec(`
		INSERT INTO interactions (contact_id, type, summary, notes, happened_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, interaction.ContactID, interaction.Type, interaction.Summary, interaction.Notes,
		interaction.HappenedAt, interaction.CreatedAt)
	if err != nil {
		return err
	}

	interaction.ID, err = res.LastInsertId()
	return err
}

// ListInteractionsByContact returns a contact's interactions, most recent first.
func ListInteractionsByContact(db *sql.DB, contactID int64, limit int) ([]models.Interaction, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT i.id, i.contact_id, c.first_name || CASE WHEN c.last_name = '' THEN '' ELSE ' ' || c.last_name END,
			i.type, i.summary, i.notes, i.happened_at, i.created_at
		FROM interactions i
		JOIN contacts c ON c.id = i.contact_id
		WHERE i.contact_id = ?
		ORDER BY i.happened_at DESC
		LIMIT ?
	`, contactID, limit)
	if err != nil {
		return nil, err
	}

	return collectInteractions(rows)
}

// ListAllInteractions returns interactions across all contacts joined with the
// contact name, most recent first.
func ListAllInteractions(db *sql.DB, limit int) ([]models.Interaction, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT i.id, i.contact_id, c.first_name || CASE WHEN c.last_name = '' THEN '' ELSE ' ' || c.last_name END,
			i.type, i.summary, i.notes, i.happened_at, i.created_at
		FROM interactions i
		JOIN contacts c ON c.id = i.contact_id
		ORDER BY i.happened_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}

	return collectInteractions(rows)
}

func collectInteractions(rows *sql.Rows) ([]models.Interaction, error) {
	defer rows.Close()

	var interactions []models.Interaction
	for rows.Next() {
		var i models.Interaction
		if err := rows.Scan(&i.ID, &i.ContactID, &i.ContactName, &i.Type, &i.Summary,
			&i.Notes, &i.HappenedAt, &i.CreatedAt); err != nil {
			return nil, err
		}
		interactions = append(interactions, i)
	}

	return interactions, rows.Err()
}

func DeleteInteraction(db *sql.DB, id int64) (bool, error) {
	res, err := db.Exec(`DELETE FROM interactions WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}
