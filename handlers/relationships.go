// ABOUTME: Relationship MCP tool handlers
// ABOUTME: Implements link_contacts, list_relationships, and remove_relationship tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/events"
	"github.com/harperreed/rolo/models"
)

type RelationshipHandlers struct {
	db  *sql.DB
	bus *events.Bus
}

func NewRelationshipHandlers(database *sql.DB, bus *events.Bus) *RelationshipHandlers {
	return &RelationshipHandlers{db: database, bus: bus}
}

type LinkContactsInput struct {
	ContactID        int64  `json:"contact_id" jsonschema:"Source contact ID (required)"`
	RelatedContactID int64  `json:"related_contact_id" jsonschema:"Related contact ID (required)"`
	RelationshipType string `json:"relationship_type,omitempty" jsonschema:"Relationship type, e.g. friend, colleague, parent"`
	Notes            string `json:"notes,omitempty" jsonschema:"Optional notes about the relationship"`
}

type RelationshipOutput struct {
	ID               int64  `json:"id"`
	ContactID        int64  `json:"contact_id"`
	RelatedContactID int64  `json:"related_contact_id"`
	RelatedName      string `json:"related_name,omitempty"`
	RelationshipType string `json:"relationship_type,omitempty"`
	Notes            string `json:"notes,omitempty"`
	CreatedAt        string `json:"created_at"`
}

func relationshipToOutput(relationship *models.Relationship) RelationshipOutput {
	return RelationshipOutput{
		ID:               relationship.ID,
		ContactID:        relationship.ContactID,
		RelatedContactID: relationship.RelatedContactID,
		RelatedName:      relationship.RelatedName,
		RelationshipType: relationship.RelationshipType,
		Notes:            relationship.Notes,
		CreatedAt:        relationship.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *RelationshipHandlers) LinkContacts(_ context.Context, request *mcp.CallToolRequest, input LinkContactsInput) (*mcp.CallToolResult, RelationshipOutput, error) {
	if input.ContactID == input.RelatedContactID {
		return nil, RelationshipOutput{}, fmt.Errorf("cannot link a contact to itself")
	}

	related, err := db.GetContact(h.db, input.RelatedContactID)
	if err != nil {
		return nil, RelationshipOutput{}, fmt.Errorf("failed to get related contact: %w", err)
	}
	if related == nil {
		return nil, RelationshipOutput{}, fmt.Errorf("related contact not found")
	}

	relationship := &models.Relationship{
		ContactID:        input.ContactID,
		RelatedContactID: input.RelatedContactID,
		RelationshipType: input.RelationshipType,
		Notes:            input.Notes,
	}

	if err := db.CreateRelationship(h.db, relationship); err != nil {
		return nil, RelationshipOutput{}, fmt.Errorf("failed to create relationship: %w", err)
	}

	relationship.RelatedName = related.FullName()
	h.bus.Publish("relationship.created", relationship)

	return nil, relationshipToOutput(relationship), nil
}

type ListRelationshipsInput struct {
	ContactID int64 `json:"contact_id" jsonschema:"Contact ID (required)"`
}

type ListRelationshipsOutput struct {
	Relationships []RelationshipOutput `json:"relationships"`
}

func (h *RelationshipHandlers) ListRelationships(_ context.Context, request *mcp.CallToolRequest, input ListRelationshipsInput) (*mcp.CallToolResult, ListRelationshipsOutput, error) {
	relationships, err := db.ListRelationshipsByContact(h.db, input.ContactID)
	if err != nil {
		return nil, ListRelationshipsOutput{}, fmt.Errorf("failed to list relationships: %w", err)
	}

	result := make([]RelationshipOutput, len(relationships))
	for i, relationship := range relationships {
		result[i] = relationshipToOutput(&relationship)
	}

	return nil, ListRelationshipsOutput{Relationships: result}, nil
}

type RemoveRelationshipInput struct {
	ID int64 `json:"id" jsonschema:"Relationship ID (required)"`
}

func (h *RelationshipHandlers) RemoveRelationship(_ context.Context, request *mcp.CallToolRequest, input RemoveRelationshipInput) (*mcp.CallToolResult, DeleteOutput, error) {
	found, err := db.DeleteRelationship(h.db, input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete relationship: %w", err)
	}
	if !found {
		return nil, DeleteOutput{Success: false, Message: "relationship not found"}, nil
	}

	return nil, DeleteOutput{Success: true, Message: fmt.Sprintf("Deleted relationship %d", input.ID)}, nil
}
