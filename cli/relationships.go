// ABOUTME: Relationship CLI commands
// ABOUTME: Commands for linking contacts and reviewing their relationships
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

// LinkContactsCommand creates a directed relationship between two contacts.
func LinkContactsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("link-contacts", flag.ExitOnError)
	contactID := fs.Int64("contact", 0, "Contact ID (required)")
	relatedID := fs.Int64("related", 0, "Related contact ID (required)")
	relationshipType := fs.String("type", "", "Relationship type, e.g. spouse, friend, coworker (required)")
	notes := fs.String("notes", "", "Notes about the relationship")
	_ = fs.Parse(args)

	if *contactID == 0 || *relatedID == 0 {
		return fmt.Errorf("--contact and --related are required")
	}
	if *relationshipType == "" {
		return fmt.Errorf("--type is required")
	}
	if *contactID == *relatedID {
		return fmt.Errorf("a contact cannot be related to itself")
	}

	for _, id := range []int64{*contactID, *relatedID} {
		contact, err := db.GetContact(database, id)
		if err != nil {
			return fmt.Errorf("failed to get contact: %w", err)
		}
		if contact == nil {
			return fmt.Errorf("contact not found: %d", id)
		}
	}

	relationship := &models.Relationship{
		ContactID:        *contactID,
		RelatedContactID: *relatedID,
		RelationshipType: *relationshipType,
		Notes:            *notes,
	}
	if err := db.CreateRelationship(database, relationship); err != nil {
		return fmt.Errorf("failed to create relationship: %w", err)
	}

	fmt.Printf("Linked contact %d to %d as %s (relationship %d)\n",
		*contactID, *relatedID, *relationshipType, relationship.ID)
	return nil
}

// ListRelationshipsCommand lists a contact's relationships.
func ListRelationshipsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-relationships", flag.ExitOnError)
	contactID := fs.Int64("contact", 0, "Contact ID (required)")
	_ = fs.Parse(args)

	if *contactID == 0 {
		return fmt.Errorf("--contact is required")
	}

	relationships, err := db.ListRelationshipsByContact(database, *contactID)
	if err != nil {
		return fmt.Errorf("failed to list relationships: %w", err)
	}

	if len(relationships) == 0 {
		fmt.Println("No relationships found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tRELATED\tNOTES")
	for _, r := range relationships {
		fmt.Fprintf(w, "%d\t%s\t%s (%d)\t%s\n", r.ID, r.RelationshipType, r.RelatedName, r.RelatedContactID, r.Notes)
	}
	return w.Flush()
}

// RemoveRelationshipCommand deletes a relationship.
func RemoveRelationshipCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("relationship id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid relationship id: %s", args[0])
	}

	found, err := db.DeleteRelationship(database, id)
	if err != nil {
		return fmt.Errorf("failed to delete relationship: %w", err)
	}
	if !found {
		return fmt.Errorf("relationship not found: %d", id)
	}

	fmt.Printf("Deleted relationship %d\n", id)
	return nil
}
