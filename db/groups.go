// ABOUTME: Group and membership database operations
// ABOUTME: Named contact groups with an idempotent many-to-many membership join
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/rolo/models"
)

func CreateGroup(db *sql.DB, group *models.Group) error {
	if group.Name == "" {
		return fmt.Errorf("name is required")
	}

	group.CreatedAt = time.Now()

	res, err := db.Exec(`
		INSERT INTO groups (name, description, created_at)
		VALUES (?, ?, ?)
	`, group.Name, group.Description, group.CreatedAt)
	if err != nil {
		return err
	}

	group.ID, err = res.LastInsertId()
	return err
}

func ListGroups(db *sql.DB) ([]models.Group, error) {
	rows, err := db.Query(`SELECT id, name, description, created_at FROM groups ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}

// DeleteGroup removes the group; memberships cascade.
func DeleteGroup(db *sql.DB, id int64) (bool, error) {
	res, err := db.Exec(`DELETE FROM groups WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}

// AddGroupMember adds a contact to a group. Idempotent: re-adding an existing
// pair is a no-op and reports changed == false.
func AddGroupMember(db *sql.DB, groupID, contactID int64) (bool, error) {
	res, err := db.Exec(`
		INSERT OR IGNORE INTO group_members (group_id, contact_id, added_at)
		VALUES (?, ?, ?)
	`, groupID, contactID, time.Now())
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}

func RemoveGroupMember(db *sql.DB, groupID, contactID int64) (bool, error) {
	res, err := db.Exec(`DELETE FROM group_members WHERE group_id = ? AND contact_id = ?`, groupID, contactID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}

// ListGroupMembers returns the contacts in a group, ordered by name.
func ListGroupMembers(db *sql.DB, groupID int64) ([]models.Contact, error) {
	rows, err := db.Query(`
		SELECT `+contactColumns+` `+contactFrom+`
		JOIN group_members gm ON gm.contact_id = c.id
		WHERE gm.group_id = ?
		ORDER BY c.first_name, c.last_name
	`, groupID)
	if err != nil {
		return nil, err
	}

	return collectContacts(rows)
}

// ListGroupsOfContact returns the groups a contact belongs to.
func ListGroupsOfContact(db *sql.DB, contactID int64) ([]models.Group, error) {
	rows, err := db.Query(`
		SELECT g.id, g.name, g.description, g.created_at
		FROM groups g
		JOIN group_members gm ON gm.group_id = g.id
		WHERE gm.contact_id = ?
		ORDER BY g.name
	`, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var g models.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Description, &g.CreatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}

	return groups, rows.Err()
}
