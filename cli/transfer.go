// ABOUTME: CSV import/export CLI commands
// ABOUTME: Reads and writes contact CSV files with per-row import accounting
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/rolo/transfer"
)

// ExportContactsCommand writes all contacts as CSV to a file or stdout.
func ExportContactsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("export-contacts", flag.ExitOnError)
	output := fs.String("output", "", "Output file path (default stdout)")
	_ = fs.Parse(args)

	csvText, err := transfer.ExportContacts(database)
	if err != nil {
		return fmt.Errorf("failed to export contacts: %w", err)
	}

	if *output == "" {
		fmt.Print(csvText)
		return nil
	}

	if err := os.WriteFile(*output, []byte(csvText), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", *output, err)
	}
	fmt.Printf("Exported contacts to %s\n", *output)
	return nil
}

// ImportContactsCommand imports contacts from a CSV file.
func ImportContactsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("import-contacts", flag.ExitOnError)
	input := fs.String("input", "", "Input CSV file path (required)")
	_ = fs.Parse(args)

	if *input == "" {
		return fmt.Errorf("--input is required")
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", *input, err)
	}

	result, err := transfer.ImportContacts(database, string(data))
	if err != nil {
		return fmt.Errorf("failed to import contacts: %w", err)
	}

	fmt.Printf("Import %s: %d created, %d skipped\n", result.BatchID, result.Created, result.Skipped)
	for _, dup := range result.Duplicates {
		fmt.Printf("  row %d: duplicate of contact %d (%s)\n", dup.Row, dup.Existing.ID, dup.Existing.FullName())
	}
	for _, rowErr := range result.Errors {
		fmt.Printf("  error: %s\n", rowErr)
	}
	return nil
}
