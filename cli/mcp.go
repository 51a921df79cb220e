// ABOUTME: MCP server subcommand
// ABOUTME: Registers the contact-management tools on a stdio transport
package cli

import (
	"context"
	"database/sql"
	"log"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolo/events"
	"github.com/harperreed/rolo/handlers"
)

// MCPCommand starts the MCP server on stdio.
func MCPCommand(db *sql.DB, bus *events.Bus, reminderHorizonDays int) error {
	log.Println("Starting rolo MCP server...")

	contactHandlers := handlers.NewContactHandlers(db, bus)
	companyHandlers := handlers.NewCompanyHandlers(db, bus)
	interactionHandlers := handlers.NewInteractionHandlers(db, bus)
	reminderHandlers := handlers.NewReminderHandlers(db, bus, reminderHorizonDays)
	relationshipHandlers := handlers.NewRelationshipHandlers(db, bus)
	groupHandlers := handlers.NewGroupHandlers(db, bus)
	extensionHandlers := handlers.NewExtensionHandlers(db, bus)
	transferHandlers := handlers.NewTransferHandlers(db, bus)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "rolo",
		Version: "0.1.0",
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_contact",
		Description: "Add a new contact, looking up or creating the company by name",
	}, contactHandlers.AddContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_contacts",
		Description: "Search contacts by name, nickname, email, phone, or tags, with fuzzy fallback for typos",
	}, contactHandlers.FindContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_contact",
		Description: "Get a single contact by ID",
	}, contactHandlers.GetContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_contact",
		Description: "Update an existing contact; only supplied fields change",
	}, contactHandlers.UpdateContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_contact",
		Description: "Delete a contact and its interactions, reminders, relationships, and group memberships",
	}, contactHandlers.DeleteContact)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check_duplicates",
		Description: "Check whether a candidate contact (email, first name, last name) matches existing contacts",
	}, contactHandlers.CheckDuplicates)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_company",
		Description: "Add a new company",
	}, companyHandlers.AddCompany)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_companies",
		Description: "Search companies by name, industry, or website",
	}, companyHandlers.FindCompanies)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_company",
		Description: "Update an existing company; only supplied fields change",
	}, companyHandlers.UpdateCompany)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_company",
		Description: "Delete a company; its contacts keep their rows without a company",
	}, companyHandlers.DeleteCompany)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_interaction",
		Description: "Log a call, meeting, email, or other interaction with a contact",
	}, interactionHandlers.LogInteraction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_interactions",
		Description: "List interactions for one contact or across all contacts",
	}, interactionHandlers.ListInteractions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_interaction",
		Description: "Delete a logged interaction",
	}, interactionHandlers.DeleteInteraction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_reminder",
		Description: "Add a birthday, anniversary, or custom reminder for a contact",
	}, reminderHandlers.AddReminder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_reminders",
		Description: "List reminders for one contact or across all contacts",
	}, reminderHandlers.ListReminders)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "upcoming_reminders",
		Description: "List reminders falling due within the next N days",
	}, reminderHandlers.UpcomingReminders)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_reminder",
		Description: "Delete a reminder",
	}, reminderHandlers.DeleteReminder)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "link_contacts",
		Description: "Create a directed relationship between two contacts with a type and optional notes",
	}, relationshipHandlers.LinkContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_relationships",
		Description: "List a contact's relationships with the related contact names",
	}, relationshipHandlers.ListRelationships)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_relationship",
		Description: "Delete a relationship between contacts",
	}, relationshipHandlers.RemoveRelationship)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "create_group",
		Description: "Create a named contact group",
	}, groupHandlers.CreateGroup)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_groups",
		Description: "List all contact groups",
	}, groupHandlers.ListGroups)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_group",
		Description: "Delete a group and its memberships",
	}, groupHandlers.DeleteGroup)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_group_member",
		Description: "Add a contact to a group; a no-op when already a member",
	}, groupHandlers.AddGroupMember)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "remove_group_member",
		Description: "Remove a contact from a group",
	}, groupHandlers.RemoveGroupMember)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_group_members",
		Description: "List the contacts in a group",
	}, groupHandlers.ListGroupMembers)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_contact_groups",
		Description: "List the groups a contact belongs to",
	}, groupHandlers.ListContactGroups)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_extension_field",
		Description: "Upsert a third-party annotation field on a contact or company",
	}, extensionHandlers.SetExtensionField)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_extension_fields",
		Description: "List third-party annotation fields for a contact or company, optionally by source",
	}, extensionHandlers.ListExtensionFields)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_extension_source",
		Description: "Remove every annotation field written by a source",
	}, extensionHandlers.ClearExtensionSource)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "export_contacts_csv",
		Description: "Export all contacts as CSV text",
	}, transferHandlers.ExportContacts)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "import_contacts_csv",
		Description: "Import contacts from CSV text with duplicate detection and company auto-creation",
	}, transferHandlers.ImportContacts)

	ctx := context.Background()
	return server.Run(ctx, &mcp.StdioTransport{})
}
