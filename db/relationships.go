// ABOUTME: Relationship database operations
// ABOUTME: Directed edges between contacts with a uniqueness constraint on the triple
package db

import (
	"database/sql"
	"time"

	"github.com/harperreed/rolo/models"
)

// CreateRelationship inserts a directed edge. A repeat of the same
// (contact_id, related_contact_id, relationship_type) triple fails on the
// unique constraint; that error propagates to the caller.
func CreateRelationship(db *sql.DB, relationship *models.Relationship) error {
	relationship.CreatedAt = time.Now()

	res, err := db.Exec(`
		INSERT INTO relationships (contact_id, related_contact_id, relationship_type, notes, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, relationship.ContactID, relationship.RelatedContactID, relationship.RelationshipType,
		relationship.Notes, relationship.CreatedAt)
	if err != nil {
		return err
	}

	relationship.ID, err = res.LastInsertId()
	return err
}

// ListRelationshipsByContact returns the edges originating at a contact,
// joined with the related contact's name.
func ListRelationshipsByContact(db *sql.DB, contactID int64) ([]models.Relationship, error) {
	rows, err := db.Query(`
		SELECT r.id, r.contact_id, r.related_contact_id,
			c.first_name || CASE WHEN c.last_name = '' THEN '' ELSE ' ' || c.last_name END,
			r.relationship_type, r.notes, r.created_at
		FROM relationships r
		JOIN contacts c ON c.id = r.related_contact_id
		WHERE r.contact_id = ?
		ORDER BY r.created_at DESC
	`, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var relationships []models.Relationship
	for rows.Next() {
		var r models.Relationship
		if err := rows.Scan(&r.ID, &r.ContactID, &r.RelatedContactID, &r.RelatedName,
			&r.RelationshipType, &r.Notes, &r.CreatedAt); err != nil {
			return nil, err
		}
		relationships = append(relationships, r)
	}

	return relationships, rows.Err()
}

func DeleteRelationship(db *sql.DB, id int64) (bool, error) {
	res, err := db.Exec(`DELETE FROM relationships WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}
