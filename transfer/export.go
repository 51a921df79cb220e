// ABOUTME: CSV export of the full contact table
// ABOUTME: Fixed column order with the company name denormalized
package transfer

import (
	"database/sql"

	"github.com/harperreed/rolo/csvio"
	"github.com/harperreed/rolo/db"
)

// exportHeader is the fixed, ordered CSV column set. Import understands the
// same canonical names (plus synonyms).
var exportHeader = []string{
	"first_name", "last_name", "email", "phone", "company_name",
	"birthday", "anniversary", "tags", "notes",
}

// ExportContacts serializes every contact to CSV text. Missing values render
// as empty fields.
func ExportContacts(database *sql.DB) (string, error) {
	contacts, err := db.AllContacts(database)
	if err != nil {
		return "", err
	}

	rows := make([][]string, 0, len(contacts)+1)
	rows = append(rows, exportHeader)

	for _, c := range contacts {
		rows = append(rows, []string{
			c.FirstName,
			c.LastName,
			c.Email,
			c.Phone,
			c.CompanyName,
			c.Birthday,
			c.Anniversary,
			c.Tags,
			c.Notes,
		})
	}

	return csvio.Encode(rows), nil
}
