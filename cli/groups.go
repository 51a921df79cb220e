// ABOUTME: Group CLI commands
// ABOUTME: Commands for managing contact groups and their memberships
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

// CreateGroupCommand creates a named contact group.
func CreateGroupCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("create-group", flag.ExitOnError)
	name := fs.String("name", "", "Group name (required, unique)")
	description := fs.String("description", "", "Group description")
	_ = fs.Parse(args)

	if *name == "" {
		return fmt.Errorf("--name is required")
	}

	group := &models.Group{Name: *name, Description: *description}
	if err := db.CreateGroup(database, group); err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	fmt.Printf("Created group %d: %s\n", group.ID, group.Name)
	return nil
}

// ListGroupsCommand lists groups, or the groups a contact belongs to.
func ListGroupsCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-groups", flag.ExitOnError)
	contactID := fs.Int64("contact", 0, "List groups this contact belongs to")
	_ = fs.Parse(args)

	var groups []models.Group
	var err error
	if *contactID != 0 {
		groups, err = db.ListGroupsOfContact(database, *contactID)
	} else {
		groups, err = db.ListGroups(database)
	}
	if err != nil {
		return fmt.Errorf("failed to list groups: %w", err)
	}

	if len(groups) == 0 {
		fmt.Println("No groups found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, g := range groups {
		fmt.Fprintf(w, "%d\t%s\t%s\n", g.ID, g.Name, g.Description)
	}
	return w.Flush()
}

// DeleteGroupCommand deletes a group and its memberships.
func DeleteGroupCommand(database *sql.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("group id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid group id: %s", args[0])
	}

	found, err := db.DeleteGroup(database, id)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	if !found {
		return fmt.Errorf("group not found: %d", id)
	}

	fmt.Printf("Deleted group %d\n", id)
	return nil
}

// AddGroupMemberCommand adds a contact to a group. Re-adding is a no-op.
func AddGroupMemberCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("add-group-member", flag.ExitOnError)
	groupID := fs.Int64("group", 0, "Group ID (required)")
	contactID := fs.Int64("contact", 0, "Contact ID (required)")
	_ = fs.Parse(args)

	if *groupID == 0 || *contactID == 0 {
		return fmt.Errorf("--group and --contact are required")
	}

	changed, err := db.AddGroupMember(database, *groupID, *contactID)
	if err != nil {
		return fmt.Errorf("failed to add group member: %w", err)
	}

	if changed {
		fmt.Printf("Added contact %d to group %d\n", *contactID, *groupID)
	} else {
		fmt.Printf("Contact %d is already a member of group %d\n", *contactID, *groupID)
	}
	return nil
}

// RemoveGroupMemberCommand removes a contact from a group.
func RemoveGroupMemberCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("remove-group-member", flag.ExitOnError)
	groupID := fs.Int64("group", 0, "Group ID (required)")
	contactID := fs.Int64("contact", 0, "Contact ID (required)")
	_ = fs.Parse(args)

	if *groupID == 0 || *contactID == 0 {
		return fmt.Errorf("--group and --contact are required")
	}

	changed, err := db.RemoveGroupMember(database, *groupID, *contactID)
	if err != nil {
		return fmt.Errorf("failed to remove group member: %w", err)
	}

	if changed {
		fmt.Printf("Removed contact %d from group %d\n", *contactID, *groupID)
	} else {
		fmt.Printf("Contact %d was not a member of group %d\n", *contactID, *groupID)
	}
	return nil
}

// ListGroupMembersCommand lists the contacts in a group.
func ListGroupMembersCommand(database *sql.DB, args []string) error {
	fs := flag.NewFlagSet("list-group-members", flag.ExitOnError)
	groupID := fs.Int64("group", 0, "Group ID (required)")
	_ = fs.Parse(args)

	if *groupID == 0 {
		return fmt.Errorf("--group is required")
	}

	members, err := db.ListGroupMembers(database, *groupID)
	if err != nil {
		return fmt.Errorf("failed to list group members: %w", err)
	}

	if len(members) == 0 {
		fmt.Println("No members found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE")
	for _, m := range members {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", m.ID, m.FullName(), m.Email, m.Phone)
	}
	return w.Flush()
}
