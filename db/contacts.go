// ABOUTME: Contact database operations
// ABOUTME: Handles contact CRUD with denormalized company names on reads
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/rolo/models"
)

// contactColumns is the shared select list; company_name is denormalized
// from the companies join for display convenience.
const contactColumns = `
	c.id, c.first_name, c.last_name, c.nickname, c.email, c.phone,
	c.company_id, COALESCE(co.name, ''), c.birthday, c.anniversary,
	c.notes, c.avatar_url, c.tags, c.custom_fields, c.created_at, c.updated_at`

const contactFrom = `FROM contacts c LEFT JOIN companies co ON co.id = c.company_id`

func scanContact(row interface{ Scan(...any) error }) (*models.Contact, error) {
	c := &models.Contact{}
	var companyID sql.NullInt64

	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Nickname, &c.Email, &c.Phone,
		&companyID, &c.CompanyName, &c.Birthday, &c.Anniversary,
		&c.Notes, &c.AvatarURL, &c.Tags, &c.CustomFields, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if companyID.Valid {
		c.CompanyID = &companyID.Int64
	}

	return c, nil
}

func collectContacts(rows *sql.Rows) ([]models.Contact, error) {
	defer rows.Close()

	var contacts []models.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}

	return contacts, rows.Err()
}

func CreateContact(db *sql.DB, contact *models.Contact) error {
	if contact.FirstName == "" {
		return fmt.Errorf("first_name is required")
	}

	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	res, err := db.Exec(`
		INSERT INTO contacts (first_name, last_name, nickname, email, phone, company_id,
			birthday, anniversary, notes, avatar_url, tags, custom_fields, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, contact.FirstName, contact.LastName, contact.Nickname, contact.Email, contact.Phone,
		contact.CompanyID, contact.Birthday, contact.Anniversary, contact.Notes,
		contact.AvatarURL, contact.Tags, contact.CustomFields, contact.CreatedAt, contact.UpdatedAt)
	if err != nil {
		return err
	}

	contact.ID, err = res.LastInsertId()
	return err
}

// GetContact returns the contact or (nil, nil) when the id does not exist.
func GetContact(db *sql.DB, id int64) (*models.Contact, error) {
	row := db.QueryRow(`SELECT `+contactColumns+` `+contactFrom+` WHERE c.id = ?`, id)

	contact, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return contact, nil
}

// ListContacts returns contacts ordered by name, optionally filtered by company.
// Text search goes through SearchContacts instead.
func ListContacts(db *sql.DB, companyID *int64, limit int) ([]models.Contact, error) {
	if limit <= 0 {
		limit = 50
	}

	var rows *sql.Rows
	var err error

	if companyID != nil {
		rows, err = db.Query(`
			SELECT `+contactColumns+` `+contactFrom+`
			WHERE c.company_id = ?
			ORDER BY c.first_name, c.last_name
			LIMIT ?
		`, *companyID, limit)
	} else {
		rows, err = db.Query(`
			SELECT `+contactColumns+` `+contactFrom+`
			ORDER BY c.first_name, c.last_name
			LIMIT ?
		`, limit)
	}
	if err != nil {
		return nil, err
	}

	return collectContacts(rows)
}

// AllContacts returns every contact without a limit, ordered by name. Used by
// CSV export and the fuzzy search scan.
func AllContacts(db *sql.DB) ([]models.Contact, error) {
	rows, err := db.Query(`SELECT ` + contactColumns + ` ` + contactFrom + ` ORDER BY c.first_name, c.last_name`)
	if err != nil {
		return nil, err
	}

	return collectContacts(rows)
}

// UpdateContact writes the full contact row. Callers merge partial updates
// onto the loaded record first. Returns false when the id does not exist.
func UpdateContact(db *sql.DB, id int64, contact *models.Contact) (bool, error) {
	if contact.FirstName == "" {
		return false, fmt.Errorf("first_name is required")
	}

	contact.UpdatedAt = time.Now()

	res, err := db.Exec(`
		UPDATE contacts
		SET first_name = ?, last_name = ?, nickname = ?, email = ?, phone = ?, company_id = ?,
			birthday = ?, anniversary = ?, notes = ?, avatar_url = ?, tags = ?, custom_fields = ?,
			updated_at = ?
		WHERE id = ?
	`, contact.FirstName, contact.LastName, contact.Nickname, contact.Email, contact.Phone,
		contact.CompanyID, contact.Birthday, contact.Anniversary, contact.Notes,
		contact.AvatarURL, contact.Tags, contact.CustomFields, contact.UpdatedAt, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}

// DeleteContact removes the contact. Interactions, reminders, relationships on
// either endpoint, and group memberships go with it via foreign key cascades.
func DeleteContact(db *sql.DB, id int64) (bool, error) {
	res, err := db.Exec(`DELETE FROM contacts WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}
