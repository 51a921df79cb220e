// ABOUTME: Company CLI commands
// ABOUTME: Commands for adding, listing, updating, and deleting companies
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

// AddCompanyCommand adds a new company.
func AddCompanyCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-company", flag.ExitOnError)
	name := fs.String("name", "", "Company name (required)")
	industry := fs.String("industry", "", "Industry")
	website := fs.String("website", "", "Website URL")
	notes := fs.String("notes", "", "Notes about the company")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	company := &models.Company{
		Name:     *name,
		Industry: *industry,
		Website:  *website,
		Notes:    *notes,
	}
	if err := db.CreateCompany(database, company); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	fmt.Printf("Created company %d: %s\n", company.ID, company.Name)
	return nil
}

// ListCompaniesCommand lists or searches companies.
func ListCompaniesCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-companies", flag.ExitOnError)
	query := fs.String("query", "", "Search text (name, industry, website)")
	limit := fs.Int("limit", 50, "Max results")
	_ = fs.Parse(args)

	var companies []models.Company
	var err error
	if *query != "" {
		companies, err = db.SearchCompanies(database, *query, *limit)
	} else {
		companies, err = db.ListCompanies(database, *limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list companies: %w", err)
	}

	if len(companies) == 0 {
		fmt.Println("No companies found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tINDUSTRY\tWEBSITE")
	for _, c := range companies {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Industry, c.Website)
	}
	return w.Flush()
}

// UpdateCompanyCommand updates supplied fields on an existing company.
func UpdateCompanyCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("update-company", flag.ExitOnError)
	name := fs.String("name", "", "Company name")
	industry := fs.String("industry", "", "Industry")
	website := fs.String("website", "", "Website URL")
	notes := fs.String("notes", "", "Notes")
	_ = fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("company id is required (flags must come before the id)")
	}
	id, err := strconv.ParseInt(fs.Arg(0), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid company id: %s", fs.Arg(0))
	}

	company, err := db.GetCompany(database, id)
	if err != nil {
		return fmt.Errorf("failed to get company: %w", err)
	}
	if company == nil {
		return fmt.Errorf("company not found: %d", id)
	}

	if *name != "" {
		company.Name = *name
	}
	if *industry != "" {
		company.Industry = *industry
	}
	if *website != "" {
		company.Website = *website
	}
	if *notes != "" {
		company.Notes = *notes
	}

	if _, err := db.UpdateCompany(database, id, company); err != nil {
		return fmt.Errorf("failed to update company: %w", err)
	}

	fmt.Printf("Updated company %d: %s\n", id, company.Name)
	return nil
}

// DeleteCompanyCommand deletes a company. Its contacts keep their rows.
func DeleteCompanyCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("company id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid company id: %s", args[0])
	}

	found, err := db.DeleteCompany(database, id)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}
	if !found {
		return fmt.Errorf("company not found: %d", id)
	}

	fmt.Printf("Deleted company %d\n", id)
	return nil
}
