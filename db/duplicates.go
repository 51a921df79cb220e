// ABOUTME: Duplicate contact detection
// ABOUTME: Unions an exact email probe with a case-insensitive name probe
package db

import (
	"database/sql"
	"strings"

	"github.com/harperreed/rolo/models"
)

// FindDuplicates returns existing contacts that look like the same person as
// the candidate. Two probes, unioned by id:
//
//   - email equality, case-sensitive, only when an email is supplied — email
//     is the strongest identity signal
//   - case-insensitive exact (first_name, last_name), with a missing last
//     name treated as the empty string on both sides
//
// Deliberately not the fuzzy search engine: exact comparison avoids
// false-positive duplicate flags.
func FindDuplicates(db *sql.DB, email, firstName, lastName string) ([]models.Contact, error) {
	seen := make(map[int64]bool)
	var duplicates []models.Contact

	if strings.TrimSpace(email) != "" {
		rows, err := db.Query(`
			SELECT `+contactColumns+` `+contactFrom+`
			WHERE c.email = ?
			ORDER BY c.id
		`, email)
		if err != nil {
			return nil, err
		}

		byEmail, err := collectContacts(rows)
		if err != nil {
			return nil, err
		}

		for _, c := range byEmail {
			if !seen[c.ID] {
				seen[c.ID] = true
				duplicates = append(duplicates, c)
			}
		}
	}

	rows, err := db.Query(`
		SELECT `+contactColumns+` `+contactFrom+`
		WHERE LOWER(c.first_name) = LOWER(?) AND LOWER(COALESCE(c.last_name, '')) = LOWER(?)
		ORDER BY c.id
	`, firstName, lastName)
	if err != nil {
		return nil, err
	}

	byName, err := collectContacts(rows)
	if err != nil {
		return nil, err
	}

	for _, c := range byName {
		if !seen[c.ID] {
			seen[c.ID] = true
			duplicates = append(duplicates, c)
		}
	}

	return duplicates, nil
}
