// ABOUTME: Interaction MCP tool handlers
// ABOUTME: Implements log_interaction, list_interactions, and delete_interaction tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolo/db"
	"github.com/harperreed/rolo/events"
	"github.com/harperreed/rolo/models"
)

type InteractionHandlers struct {
	db  *sql.DB
	bus *events.Bus
}

func NewInteractionHandlers(database *sql.DB, bus *events.Bus) *InteractionHandlers {
	return &InteractionHandlers{db: database, bus: bus}
}

type LogInteractionInput struct {
	ContactID  int64  `json:"contact_id" jsonschema:"Contact ID (required)"`
	Type       string `json:"type,omitempty" jsonschema:"Interaction type: call, meeting, email, note, gift, message (default note)"`
	Summary    string `json:"summary" jsonschema:"Short summary of the interaction (required)"`
	Notes      string `json:"notes,omitempty" jsonschema:"Longer detail notes"`
	HappenedAt string `json:"happened_at,omitempty" jsonschema:"When it happened (ISO 8601, defaults to now)"`
}

type InteractionOutput struct {
	ID          int64  `json:"id"`
	ContactID   int64  `json:"contact_id"`
	ContactName string `json:"contact_name,omitempty"`
	Type        string `json:"type"`
	Summary     string `json:"summary"`
	Notes       string `json:"notes,omitempty"`
	HappenedAt  string `json:"happened_at"`
	CreatedAt   string `json:"created_at"`
}

func interactionToOutput(interaction *models.Interaction) InteractionOutput {
	return InteractionOutput{
		ID:          interaction.ID,
		ContactID:   interaction.ContactID,
		ContactName: interaction.ContactName,
		Type:        interaction.Type,
		Summary:     interaction.Summary,
		Notes:       interaction.Notes,
		HappenedAt:  interaction.HappenedAt.Format("2006-01-02T15:04:05Z07:00"),
		CreatedAt:   interaction.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *InteractionHandlers) LogInteraction(_ context.Context, request *mcp.CallToolRequest, input LogInteractionInput) (*mcp.CallToolResult, InteractionOutput, error) {
	if input.Summary == "" {
		return nil, InteractionOutput{}, fmt.Errorf("summary is required")
	}

	contact, err := db.GetContact(h.db, input.ContactID)
	if err != nil {
		return nil, InteractionOutput{}, fmt.Errorf("failed to get contact: %w", err)
	}
	if contact == nil {
		return nil, InteractionOutput{}, fmt.Errorf("contact not found")
	}

	interaction := &models.Interaction{
		ContactID: input.ContactID,
		Type:      input.Type,
		Summary:   input.Summary,
		Notes:     input.Notes,
	}

	if input.HappenedAt != "" {
		happenedAt, err := time.Parse(time.RFC3339, input.HappenedAt)
		if err != nil {
			return nil, InteractionOutput{}, fmt.Errorf("invalid happened_at format (use ISO 8601/RFC3339): %w", err)
		}
		interaction.HappenedAt = happenedAt
	}

	if err := db.CreateInteraction(h.db, interaction); err != nil {
		return nil, InteractionOutput{}, fmt.Errorf("failed to log interaction: %w", err)
	}

	interaction.ContactName = contact.FullName()
	h.bus.Publish("interaction.created", interaction)

	return nil, interactionToOutput(interaction), nil
}

type ListInteractionsInput struct {
	ContactID int64 `json:"contact_id,omitempty" jsonschema:"Filter by contact ID; omit to list across all contacts"`
	Limit     int   `json:"limit,omitempty" jsonschema:"Maximum number of results (default 50)"`
}

type ListInteractionsOutput struct {
	Interactions []InteractionOutput `json:"interactions"`
}

func (h *InteractionHandlers) ListInteractions(_ context.Context, request *mcp.CallToolRequest, input ListInteractionsInput) (*mcp.CallToolResult, ListInteractionsOutput, error) {
	var interactions []models.Interaction
	var err error

	if input.ContactID != 0 {
		interactions, err = db.ListInteractionsByContact(h.db, input.ContactID, input.Limit)
	} else {
		interactions, err = db.ListAllInteractions(h.db, input.Limit)
	}
	if err != nil {
		return nil, ListInteractionsOutput{}, fmt.Errorf("failed to list interactions: %w", err)
	}

	result := make([]InteractionOutput, len(interactions))
	for i, interaction := range interactions {
		result[i] = interactionToOutput(&interaction)
	}

	return nil, ListInteractionsOutput{Interactions: result}, nil
}

type DeleteInteractionInput struct {
	ID int64 `json:"id" jsonschema:"Interaction ID (required)"`
}

func (h *InteractionHandlers) DeleteInteraction(_ context.Context, request *mcp.CallToolRequest, input DeleteInteractionInput) (*mcp.CallToolResult, DeleteOutput, error) {
	found, err := db.DeleteInteraction(h.db, input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete interaction: %w", err)
	}
	if !found {
		return nil, DeleteOutput{Success: false, Message: "interaction not found"}, nil
	}

	return nil, DeleteOutput{Success: true, Message: fmt.Sprintf("Deleted interaction %d", input.ID)}, nil
}
