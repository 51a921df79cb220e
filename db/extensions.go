// ABOUTME: Extension field database operations
// ABOUTME: Third-party annotations with upsert semantics keyed by (owner, source, field_name)
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/rolo/models"
)

// UpsertExtensionField inserts or overwrites the annotation for the
// (contact_id|company_id, source, field_name) key. The unique key includes a
// nullable owner column, so the probe uses IS for null-safe comparison
// instead of relying on a unique index.
func UpsertExtensionField(db *sql.DB, field *models.ExtensionField) error {
	if field.Source == "" {
		return fmt.Errorf("source is required")
	}
	if field.FieldName == "" {
		return fmt.Errorf("field_name is required")
	}
	if field.FieldType == "" {
		field.FieldType = models.FieldTypeText
	}
	if !models.ValidFieldType(field.FieldType) {
		return fmt.Errorf("invalid field_type: %q (want text, url, date, number, or json)", field.FieldType)
	}
	if (field.ContactID == nil) == (field.CompanyID == nil) {
		return fmt.Errorf("exactly one of contact_id or company_id is required")
	}

	now := time.Now()

	var existingID int64
	err := db.QueryRow(`
		SELECT id FROM extension_fields
		WHERE contact_id IS ? AND company_id IS ? AND source = ? AND field_name = ?
	`, field.ContactID, field.CompanyID, field.Source, field.FieldName).Scan(&existingID)

	switch {
	case err == sql.ErrNoRows:
		field.CreatedAt = now
		field.UpdatedAt = now
		res, err := db.Exec(`
			INSERT INTO extension_fields (contact_id, company_id, source, field_name, field_value, label, field_type, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, field.ContactID, field.CompanyID, field.Source, field.FieldName,
			field.FieldValue, field.Label, field.FieldType, field.CreatedAt, field.UpdatedAt)
		if err != nil {
			return err
		}
		field.ID, err = res.LastInsertId()
		return err

	case err != nil:
		return err

	default:
		field.ID = existingID
		field.UpdatedAt = now
		_, err := db.Exec(`
			UPDATE extension_fields
			SET field_value = ?, label = ?, field_type = ?, updated_at = ?
			WHERE id = ?
		`, field.FieldValue, field.Label, field.FieldType, field.UpdatedAt, existingID)
		return err
	}
}

// ListExtensionFieldsByContact returns a contact's annotations, optionally
// filtered by source.
func ListExtensionFieldsByContact(db *sql.DB, contactID int64, source string) ([]models.ExtensionField, error) {
	return listExtensionFields(db, "contact_id", contactID, source)
}

// ListExtensionFieldsByCompany returns a company's annotations, optionally
// filtered by source.
func ListExtensionFieldsByCompany(db *sql.DB, companyID int64, source string) ([]models.ExtensionField, error) {
	return listExtensionFields(db, "company_id", companyID, source)
}

func listExtensionFields(db *sql.DB, ownerColumn string, ownerID int64, source string) ([]models.ExtensionField, error) {
	query := `
		SELECT id, contact_id, company_id, source, field_name, field_value, label, field_type, created_at, updated_at
		FROM extension_fields
		WHERE ` + ownerColumn + ` = ?`
	args := []any{ownerID}

	if source != "" {
		query += ` AND source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY source, field_name`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fields []models.ExtensionField
	for rows.Next() {
		var f models.ExtensionField
		var contactID, companyID sql.NullInt64
		if err := rows.Scan(&f.ID, &contactID, &companyID, &f.Source, &f.FieldName,
			&f.FieldValue, &f.Label, &f.FieldType, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		if contactID.Valid {
			f.ContactID = &contactID.Int64
		}
		if companyID.Valid {
			f.CompanyID = &companyID.Int64
		}
		fields = append(fields, f)
	}

	return fields, rows.Err()
}

// DeleteExtensionFieldsBySource removes every annotation a source has written,
// returning the number of rows removed.
func DeleteExtensionFieldsBySource(db *sql.DB, source string) (int64, error) {
	res, err := db.Exec(`DELETE FROM extension_fields WHERE source = ?`, source)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
