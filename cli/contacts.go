// ABOUTME: Contact CLI commands
// ABOUTME: Human-friendly commands for managing and searching contacts
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

// AddContactCommand adds a new contact.
func AddContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	firstName := fs.String("first-name", "", "First name (required)")
	lastName := fs.String("last-name", "", "Last name")
	nickname := fs.String("nickname", "", "Nickname")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	company := fs.String("company", "", "Company name")
	birthday := fs.String("birthday", "", "Birthday (YYYY-MM-DD)")
	anniversary := fs.String("anniversary", "", "Anniversary (YYYY-MM-DD)")
	tags := fs.String("tags", "", "Comma-separated tags")
	notes := fs.String("notes", "", "Notes about the contact")
	_ = fs.Parse(args)

	if *firstName == "" {
		return fmt.Errorf("--first-name is required")
	}

	contact := &models.Contact{
		FirstName:   *firstName,
		LastName:    *lastName,
		Nickname:    *nickname,
		Email:       *email,
		Phone:       *phone,
		Birthday:    *birthday,
		Anniversary: *anniversary,
		Tags:        *tags,
		Notes:       *notes,
	}

	if *company != "" {
		existing, err := db.FindCompanyByName(database, *company)
		if err != nil {
			return fmt.Errorf("failed to lookup company: %w", err)
		}
		if existing == nil {
			existing = &models.Company{Name: *company}
			if err := db.CreateCompany(database, existing); err != nil {
				return fmt.Errorf("failed to create company: %w", err)
			}
		}
		contact.CompanyID = &existing.ID
	}

	if err := db.CreateContact(database, contact); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	fmt.Printf("Created contact %d: %s\n", contact.ID, contact.FullName())
	return nil
}

// ListContactsCommand lists or searches contacts.
func ListContactsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	query := fs.String("query", "", "Search text (names, nickname, email, phone, tags; fuzzy fallback)")
	company := fs.String("company", "", "Filter by company name")
	limit := fs.Int("limit", 50, "Max results")
	_ = fs.Parse(args)

	var contacts []models.Contact
	var err error

	switch {
	case *query != "":
		contacts, err = db.SearchContacts(database, *query, *limit)
	case *company != "":
		existing, lookupErr := db.FindCompanyByName(database, *company)
		if lookupErr != nil {
			return fmt.Errorf("failed to lookup company: %w", lookupErr)
		}
		if existing == nil {
			return fmt.Errorf("company not found: %s", *company)
		}
		contacts, err = db.ListContacts(database, &existing.ID, *limit)
	default:
		contacts, err = db.ListContacts(database, nil, *limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	if len(contacts) == 0 {
		fmt.Println("No contacts found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tCOMPANY\tTAGS")
	for _, c := range contacts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", c.ID, c.FullName(), c.Email, c.Phone, c.CompanyName, c.Tags)
	}
	return w.Flush()
}

// UpdateContactCommand updates supplied fields on an existing contact.
func UpdateContactCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-contact", flag.ExitOnError)
	firstName := fs.String("first-name", "", "First name")
	lastName := fs.String("last-name", "", "Last name")
	nickname := fs.String("nickname", "", "Nickname")
	email := fs.String("email", "", "Email address")
	phone := fs.String("phone", "", "Phone number")
	birthday := fs.String("birthday", "", "Birthday (YYYY-MM-DD)")
	anniversary := fs.String("anniversary", "", "Anniversary (YYYY-MM-DD)")
	tags := fs.String("tags", "", "Comma-separated tags")
	notes := fs.String("notes", "", "Notes")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("contact id is required (flags must come before the id)")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid contact id: %s", fs.Arg(0))
	}

	contact, err := db.GetContact(database, id)
	if err != nil {
		return fmt.Errorf("failed to get contact: %w", err)
	}
	if contact == nil {
		return fmt.Errorf("contact not found: %d", id)
	}

	if *firstName != "" {
		contact.FirstName = *firstName
	}
	if *lastName != "" {
		contact.LastName = *lastName
	}
	if *nickname != "" {
		contact.Nickname = *nickname
	}
	if *email != "" {
		contact.Email = *email
	}
	if *phone != "" {
		contact.Phone = *phone
	}
	if *birthday != "" {
		contact.Birthday = *birthday
	}
	if *anniversary != "" {
		contact.Anniversary = *anniversary
	}
	if *tags != "" {
		contact.Tags = *tags
	}
	if *notes != "" {
		contact.Notes = *notes
	}

	if _, err := db.UpdateContact(database, id, contact); err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	fmt.Printf("Updated contact %d: %s\n", id, contact.FullName())
	return nil
}

// DeleteContactCommand deletes a contact.
func DeleteContactCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("contact id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid contact id: %s", args[0])
	}

	found, err := db.DeleteContact(database, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if !found {
		return fmt.Errorf("contact not found: %d", id)
	}

	fmt.Printf("Deleted contact %d\n", id)
	return nil
}

// FindDuplicatesCommand checks a candidate against existing contacts.
func FindDuplicatesCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("find-duplicates", flag.ExitOnError)
	email := fs.String("email", "", "Candidate email")
	firstName := fs.String("first-name", "", "Candidate first name (required)")
	lastName := fs.String("last-name", "", "Candidate last name")
	_ = fs.Parse(args)

	if *firstName == "" {
		return fmt.Errorf("--first-name is required")
	}

	matches, err := db.FindDuplicates(database, *email, *firstName, *lastName)
	if err != nil {
		return fmt.Errorf("failed to check duplicates: %w", err)
	}

	if len(matches) == 0 {
		fmt.Println("No duplicates found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
	for _, c := range matches {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.FullName(), c.Email, c.Phone)
	}
	return w.Flush()
}
