// ABOUTME: Company database operations
// ABOUTME: Handles company CRUD and case-insensitive name lookup
package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/harperreed/rolo/models"
)

func CreateCompany(db *sql.DB, company *models.Company) error {
	if company.Name == "" {
		return fmt.Errorf("name is required")
	}

	now := time.Now()
	company.CreatedAt = now
	company.UpdatedAt = now

	res, err := db.Exec(`
		INSERT INTO companies (name, website, industry, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, company.Name, company.Website, company.Industry, company.Notes, company.CreatedAt, company.UpdatedAt)
	if err != nil {
		return err
	}

	company.ID, err = res.LastInsertId()
	return err
}

// GetCompany returns the company or (nil, nil) when the id does not exist.
func GetCompany(db *sql.DB, id int64) (*models.Company, error) {
	company := &models.Company{}

	err := db.QueryRow(`
		SELECT id, name, website, industry, notes, created_at, updated_at
		FROM companies WHERE id = ?
	`, id).Scan(&company.ID, &company.Name, &company.Website, &company.Industry,
		&company.Notes, &company.CreatedAt, &company.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return company, nil
}

// FindCompanyByName does a case-insensitive exact lookup, used by CSV import
// and the add-contact flows to resolve or create a company.
func FindCompanyByName(db *sql.DB, name string) (*models.Company, error) {
	company := &models.Company{}

	err := db.QueryRow(`
		SELECT id, name, website, industry, notes, created_at, updated_at
		FROM companies WHERE LOWER(name) = LOWER(?)
	`, name).Scan(&company.ID, &company.Name, &company.Website, &company.Industry,
		&company.Notes, &company.CreatedAt, &company.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return company, nil
}

func ListCompanies(db *sql.DB, limit int) ([]models.Company, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(`
		SELECT id, name, website, industry, notes, created_at, updated_at
		FROM companies
		ORDER BY name
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}

	return collectCompanies(rows)
}

func collectCompanies(rows *sql.Rows) ([]models.Company, error) {
	defer rows.Close()

	var companies []models.Company
	for rows.Next() {
		var c models.Company
		if err := rows.Scan(&c.ID, &c.Name, &c.Website, &c.Industry, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		companies = append(companies, c)
	}

	return companies, rows.Err()
}

// UpdateCompany writes the full company row. Returns false when the id does
// not exist.
func UpdateCompany(db *sql.DB, id int64, company *models.Company) (bool, error) {
	if company.Name == "" {
		return false, fmt.Errorf("name is required")
	}

	company.UpdatedAt = time.Now()

	res, err := db.Exec(`
		UPDATE companies
		SET name = ?, website = ?, industry = ?, notes = ?, updated_at = ?
		WHERE id = ?
	`, company.Name, company.Website, company.Industry, company.Notes, company.UpdatedAt, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}

// DeleteCompany removes the company. Contacts keep their rows; the company
// reference is nulled out by the foreign key rule, never cascaded.
func DeleteCompany(db *sql.DB, id int64) (bool, error) {
	res, err := db.Exec(`DELETE FROM companies WHERE id = ?`, id)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	return affected > 0, err
}
