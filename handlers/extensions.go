// ABOUTME: Extension field MCP tool handlers
// ABOUTME: Implements set_extension_field, list_extension_fields, and clear_extension_source tools
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

type ExtensionHandlers struct {
	db  *sql.DB
	bus *events.Bus
}

func NewExtensionHandlers(database *sql.DB, bus *events.Bus) *ExtensionHandlers {
	return &ExtensionHandlers{db: database, bus: bus}
}

type SetExtensionFieldInput struct {
	ContactID  int64  `json:"contact_id,omitempty" jsonschema:"Contact ID (exactly one of contact_id or company_id)"`
	CompanyID  int64  `json:"company_id,omitempty" jsonschema:"Company ID (exactly one of contact_id or company_id)"`
	Source     string `json:"source" jsonschema:"Writing source identifier, e.g. a plugin name (required)"`
	FieldName  string `json:"field_name" jsonschema:"Field name, unique per owner and source (required)"`
	FieldValue string `json:"field_value,omitempty" jsonschema:"Field value"`
	Label      string `json:"label,omitempty" jsonschema:"Display label"`
	FieldType  string `json:"field_type,omitempty" jsonschema:"Field type: text, url, date, number, or json (default text)"`
}

type ExtensionFieldOutput struct {
	ID         int64  `json:"id"`
	ContactID  *int64 `json:"contact_id,omitempty"`
	CompanyID  *int64 `json:"company_id,omitempty"`
	Source     string `json:"source"`
	FieldName  string `json:"field_name"`
	FieldValue string `json:"field_value,omitempty"`
	Label      string `json:"label,omitempty"`
	FieldType  string `json:"field_type"`
	UpdatedAt  string `json:"updated_at"`
}

func extensionFieldToOutput(field *models.ExtensionField) ExtensionFieldOutput {
	return ExtensionFieldOutput{
		ID:         field.ID,
		ContactID:  field.ContactID,
		CompanyID:  field.CompanyID,
		Source:     field.Source,
		FieldName:  field.FieldName,
		FieldValue: field.FieldValue,
		Label:      field.Label,
		FieldType:  field.FieldType,
		UpdatedAt:  field.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// SetExtensionField upserts: writing the same (owner, source, field_name)
// again overwrites value, label, and type.
func (h *ExtensionHandlers) SetExtensionField(_ context.Context, request *mcp.CallToolRequest, input SetExtensionFieldInput) (*mcp.CallToolResult, ExtensionFieldOutput, error) {
	field := &models.ExtensionField{
		Source:     input.Source,
		FieldName:  input.FieldName,
		FieldValue: input.FieldValue,
		Label:      input.Label,
		FieldType:  input.FieldType,
	}
	if input.ContactID != 0 {
		field.ContactID = &input.ContactID
	}
	if input.CompanyID != 0 {
		field.CompanyID = &input.CompanyID
	}

	if err := db.UpsertExtensionField(h.db, field); err != nil {
		return nil, ExtensionFieldOutput{}, fmt.Errorf("failed to set extension field: %w", err)
	}

	h.bus.Publish("extension_field.upserted", field)

	return nil, extensionFieldToOutput(field), nil
}

type ListExtensionFieldsInput struct {
	ContactID int64  `json:"contact_id,omitempty" jsonschema:"Contact ID (exactly one of contact_id or company_id)"`
	CompanyID int64  `json:"company_id,omitempty" jsonschema:"Company ID (exactly one of contact_id or company_id)"`
	Source    string `json:"source,omitempty" jsonschema:"Filter by writing source"`
}

type ListExtensionFieldsOutput struct {
	Fields []ExtensionFieldOutput `json:"fields"`
}

func (h *ExtensionHandlers) ListExtensionFields(_ context.Context, request *mcp.CallToolRequest, input ListExtensionFieldsInput) (*mcp.CallToolResult, ListExtensionFieldsOutput, error) {
	var fields []models.ExtensionField
	var err error

	switch {
	case input.ContactID != 0 && input.CompanyID != 0:
		return nil, ListExtensionFieldsOutput{}, fmt.Errorf("supply exactly one of contact_id or company_id")
	case input.ContactID != 0:
		fields, err = db.ListExtensionFieldsByContact(h.db, input.ContactID, input.Source)
	case input.CompanyID != 0:
		fields, err = db.ListExtensionFieldsByCompany(h.db, input.CompanyID, input.Source)
	default:
		return nil, ListExtensionFieldsOutput{}, fmt.Errorf("supply exactly one of contact_id or company_id")
	}
	if err != nil {
		return nil, ListExtensionFieldsOutput{}, fmt.Errorf("failed to list extension fields: %w", err)
	}

	result := make([]ExtensionFieldOutput, len(fields))
	for i, field := range fields {
		result[i] = extensionFieldToOutput(&field)
	}

	return nil, ListExtensionFieldsOutput{Fields: result}, nil
}

type ClearExtensionSourceInput struct {
	Source string `json:"source" jsonschema:"Writing source whose fields should all be removed (required)"`
}

type ClearExtensionSourceOutput struct {
	Removed int64 `json:"removed"`
}

func (h *ExtensionHandlers) ClearExtensionSource(_ context.Context, request *mcp.CallToolRequest, input ClearExtensionSourceInput) (*mcp.CallToolResult, ClearExtensionSourceOutput, error) {
	if input.Source == "" {
		return nil, ClearExtensionSourceOutput{}, fmt.Errorf("source is required")
	}

	removed, err := db.DeleteExtensionFieldsBySource(h.db, input.Source)
	if err != nil {
		return nil, ClearExtensionSourceOutput{}, fmt.Errorf("failed to clear extension source: %w", err)
	}

	return nil, ClearExtensionSourceOutput{Removed: removed}, nil
}
