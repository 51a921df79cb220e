// ABOUTME: CSV import orchestrator with duplicate detection
// ABOUTME: Maps header synonyms, auto-creates companies, and accounts per-row outcomes
package transfer

import (
	"database/sql"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/rolo/csvio"
	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

// Duplicate records one skipped row: the row number in the CSV (1-based,
// header is row 1), the existing contact it collided with, and the incoming
// "First Last" label. Duplicates are never auto-merged.
type Duplicate struct {
	Row      int            `json:"row"`
	Existing models.Contact `json:"existing"`
	Incoming string         `json:"incoming"`
}

// Result aggregates one import run. The run is not transactional: a partial
// import on interruption is expected and acceptable.
type Result struct {
	BatchID    string      `json:"batch_id"`
	Created    int         `json:"created"`
	Skipped    int         `json:"skipped"`
	Errors     []string    `json:"errors"`
	Duplicates []Duplicate `json:"duplicates"`
}

// headerSynonyms maps normalized header names onto canonical field names.
var headerSynonyms = map[string]string{
	"firstname":     "first_name",
	"first":         "first_name",
	"given_name":    "first_name",
	"forename":      "first_name",
	"lastname":      "last_name",
	"last":          "last_name",
	"surname":       "last_name",
	"family_name":   "last_name",
	"nick":          "nickname",
	"email_address": "email",
	"e_mail":        "email",
	"mail":          "email",
	"phone_number":  "phone",
	"telephone":     "phone",
	"tel":           "phone",
	"mobile":        "phone",
	"company":       "company_name",
	"organization":  "company_name",
	"organisation":  "company_name",
	"org":           "company_name",
	"employer":      "company_name",
	"dob":           "birthday",
	"birth_date":    "birthday",
	"date_of_birth": "birthday",
	"labels":        "tags",
	"note":          "notes",
	"comments":      "notes",
}

// canonicalFields is the set of column names import understands.
var canonicalFields = map[string]bool{
	"first_name": true, "last_name": true, "nickname": true,
	"email": true, "phone": true, "company_name": true,
	"birthday": true, "anniversary": true, "tags": true, "notes": true,
}

// normalizeHeader trims, lowercases, replaces spaces with underscores, and
// resolves synonyms. Unrecognized columns come back as "" and are ignored.
func normalizeHeader(name string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
	if canonical, ok := headerSynonyms[key]; ok {
		return canonical
	}
	if canonicalFields[key] {
		return key
	}
	return ""
}

// ImportContacts bulk-loads contacts from raw CSV text. Rows that collide
// with an existing contact (by email or case-folded name) are recorded as
// duplicates and skipped; rows with a blank first name are counted as
// skipped with an error; any other per-row failure lands in the error list
// without aborting the batch.
func ImportContacts(database *sql.DB, text string) (*Result, error) {
	rows := csvio.Parse(text)
	if len(rows) < 2 {
		return nil, fmt.Errorf("CSV must have a header row and at least one data row")
	}

	columns := make(map[string]int)
	for i, name := range rows[0] {
		if canonical := normalizeHeader(name); canonical != "" {
			if _, exists := columns[canonical]; !exists {
				columns[canonical] = i
			}
		}
	}

	if _, ok := columns["first_name"]; !ok {
		return nil, fmt.Errorf("CSV has no column mapping to first_name")
	}

	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	result := &Result{
		BatchID:    ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String(),
		Errors:     []string{},
		Duplicates: []Duplicate{},
	}
	logger := slog.Default().With("batch_id", result.BatchID)

	cell := func(row []string, field string) string {
		idx, ok := columns[field]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, header is row 1

		if isBlankRow(row) {
			continue
		}

		firstName := cell(row, "first_name")
		if firstName == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: first_name is blank", rowNum))
			result.Skipped++
			continue
		}

		lastName := cell(row, "last_name")
		email := cell(row, "email")

		existing, err := db.FindDuplicates(database, email, firstName, lastName)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: duplicate check failed: %v", rowNum, err))
			result.Skipped++
			continue
		}
		if len(existing) > 0 {
			incoming := firstName
			if lastName != "" {
				incoming += " " + lastName
			}
			result.Duplicates = append(result.Duplicates, Duplicate{
				Row:      rowNum,
				Existing: existing[0],
				Incoming: incoming,
			})
			continue
		}

		contact := &models.Contact{
			FirstName:   firstName,
			LastName:    lastName,
			Nickname:    cell(row, "nickname"),
			Email:       email,
			Phone:       cell(row, "phone"),
			Birthday:    cell(row, "birthday"),
			Anniversary: cell(row, "anniversary"),
			Tags:        cell(row, "tags"),
			Notes:       cell(row, "notes"),
		}

		if companyName := cell(row, "company_name"); companyName != "" {
			companyID, err := resolveCompany(database, companyName)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: company %q: %v", rowNum, companyName, err))
				continue
			}
			contact.CompanyID = &companyID
		}

		if err := db.CreateContact(database, contact); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Created++
	}

	logger.Info("import finished",
		"created", result.Created,
		"skipped", result.Skipped,
		"duplicates", len(result.Duplicates),
		"errors", len(result.Errors))

	return result, nil
}

// resolveCompany finds an existing company by case-insensitive name or
// creates one.
func resolveCompany(database *sql.DB, name string) (int64, error) {
	company, err := db.FindCompanyByName(database, name)
	if err != nil {
		return 0, err
	}
	if company != nil {
		return company.ID, nil
	}

	company = &models.Company{Name: name}
	if err := db.CreateCompany(database, company); err != nil {
		return 0, err
	}
	return company.ID, nil
}

func isBlankRow(row []string) bool {
	for _, field := range row {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
