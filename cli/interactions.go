// ABOUTME: Interaction CLI commands
// ABOUTME: Commands for logging and reviewing interactions with contacts
package cli

import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/models"
)

// LogInteractionCommand logs an interaction with a contact.
func LogInteractionCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("log-interaction", flag.ExitOnError)
	contactID := fs.Int64("contact", 0, "Contact ID (required)")
	interactionType := fs.String("type", models.InteractionNote, "Type: call, meeting, email, note, gift, or message")
	summary := fs.String("summary", "", "Short summary")
	notes := fs.String("notes", "", "Longer notes")
	when := fs.String("when", "", "When it happened (RFC3339, default now)")
	_ = fs.Parse(args)

	if *contactID == 0 {
		return fmt.Errorf("--contact is required")
	}

	contact, err := db.GetContact(database, *contactID)
	if err != nil {
		return fmt.Errorf("failed to get contact: %w", err)
	}
	if contact == nil {
		return fmt.Errorf("contact not found: %d", *contactID)
	}

	interaction := &models.Interaction{
		ContactID: *contactID,
		Type:      *interactionType,
		Summary:   *summary,
		Notes:     *notes,
	}
	if *when != "" {
		happenedAt, parseErr := time.Parse(time.RFC3339, *when)
		if parseErr != nil {
			return fmt.Errorf("invalid --when value (want RFC3339): %w", parseErr)
		}
		interaction.HappenedAt = happenedAt
	}

	if err := db.CreateInteraction(database, interaction); err != nil {
		return fmt.Errorf("failed to log interaction: %w", err)
	}

	fmt.Printf("Logged %s with %s (interaction %d)\n", interaction.Type, contact.FullName(), interaction.ID)
	return nil
}

// ListInteractionsCommand lists interactions, optionally for one contact.
func ListInteractionsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-interactions", flag.ExitOnError)
	contactID := fs.Int64("contact", 0, "Filter by contact ID")
	limit := fs.Int("limit", 50, "Max results")
	_ = fs.Parse(args)

	var interactions []models.Interaction
	var err error
	if *contactID != 0 {
		interactions, err = db.ListInteractionsByContact(database, *contactID, *limit)
	} else {
		interactions, err = db.ListAllInteractions(database, *limit)
	}
	if err != nil {
		return fmt.Errorf("failed to list interactions: %w", err)
	}

	if len(interactions) == 0 {
		fmt.Println("No interactions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tWHEN\tCONTACT\tTYPE\tSUMMARY")
	for _, i := range interactions {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i.ID, i.HappenedAt.Format("2006-01-02 15:04"), i.ContactName, i.Type, i.Summary)
	}
	return w.Flush()
}

// DeleteInteractionCommand deletes a logged interaction.
func DeleteInteractionCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("interaction id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid interaction id: %s", args[0])
	}

	found, err := db.DeleteInteraction(database, id)
	if err != nil {
		return fmt.Errorf("failed to delete interaction: %w", err)
	}
	if !found {
		return fmt.Errorf("interaction not found: %d", id)
	}

	fmt.Printf("Deleted interaction %d\n", id)
	return nil
}
