// ABOUTME: CSV import/export MCP tool handlers
// ABOUTME: Implements export_contacts_csv and import_contacts_csv tools
package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/rolo/events"
	"github.com/harperreed/rolo/transfer"
)

type TransferHandlers struct {
	db  *sql.DB
	bus *events.Bus
}

func NewTransferHandlers(database *sql.DB, bus *events.Bus) *TransferHandlers {
	return &TransferHandlers{db: database, bus: bus}
}

type ExportContactsInput struct{}

type ExportContactsOutput struct {
	CSV string `json:"csv"`
}

func (h *TransferHandlers) ExportContacts(_ context.Context, request *mcp.CallToolRequest, input ExportContactsInput) (*mcp.CallToolResult, ExportContactsOutput, error) {
	csvText, err := transfer.ExportContacts(h.db)
	if err != nil {
		return nil, ExportContactsOutput{}, fmt.Errorf("failed to export contacts: %w", err)
	}

	return nil, ExportContactsOutput{CSV: csvText}, nil
}

type ImportContactsInput struct {
	CSV string `json:"csv" jsonschema:"Raw CSV text with a header row (required)"`
}

type ImportContactsOutput struct {
	BatchID    string               `json:"batch_id"`
	Created    int                  `json:"created"`
	Skipped    int                  `json:"skipped"`
	Errors     []string             `json:"errors"`
	Duplicates []transfer.Duplicate `json:"duplicates"`
}

func (h *TransferHandlers) ImportContacts(_ context.Context, request *mcp.CallToolRequest, input ImportContactsInput) (*mcp.CallToolResult, ImportContactsOutput, error) {
	if input.CSV == "" {
		return nil, ImportContactsOutput{}, fmt.Errorf("csv is required")
	}

	result, err := transfer.ImportContacts(h.db, input.CSV)
	if err != nil {
		return nil, ImportContactsOutput{}, fmt.Errorf("failed to import contacts: %w", err)
	}

	h.bus.Publish("contacts.imported", result)

	return nil, ImportContactsOutput{
		BatchID:    result.BatchID,
		Created:    result.Created,
		Skipped:    result.Skipped,
		Errors:     result.Errors,
		Duplicates: result.Duplicates,
	}, nil
}
