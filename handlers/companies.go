// ABOUTME: Company MCP tool handlers
// ABOUTME: Implements add_company, find_companies, update_company, and delete_company tools
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

type CompanyHandlers struct {
	db  *sql.DB
	bus *events.Bus
}

func NewCompanyHandlers(database *sql.DB, bus *events.Bus) *CompanyHandlers {
	return &CompanyHandlers{db: database, bus: bus}
}

type AddCompanyInput struct {
	Name     string `json:"name" jsonschema:"Company name (required)"`
	Website  string `json:"website,omitempty" jsonschema:"Company website"`
	Industry string `json:"industry,omitempty" jsonschema:"Industry"`
	Notes    string `json:"notes,omitempty" jsonschema:"Free-text notes"`
}

type CompanyOutput struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Website   string `json:"website,omitempty"`
	Industry  string `json:"industry,omitempty"`
	Notes     string `json:"notes,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func companyToOutput(company *models.Company) CompanyOutput {
	return CompanyOutput{
		ID:        company.ID,
		Name:      company.Name,
		Website:   company.Website,
		Industry:  company.Industry,
		Notes:     company.Notes,
		CreatedAt: company.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: company.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *CompanyHandlers) AddCompany(_ context.Context, request *mcp.CallToolRequest, input AddCompanyInput) (*mcp.CallToolResult, CompanyOutput, error) {
	if input.Name == "" {
		return nil, CompanyOutput{}, fmt.Errorf("name is required")
	}

	company := &models.Company{
		Name:     input.Name,
		Website:  input.Website,
		Industry: input.Industry,
		Notes:    input.Notes,
	}

	if err := db.CreateCompany(h.db, company); err != nil {
		return nil, CompanyOutput{}, fmt.Errorf("failed to create company: %w", err)
	}

	h.bus.Publish("company.created", company)

	return nil, companyToOutput(company), nil
}

type FindCompaniesInput struct {
	Query string `json:"query,omitempty" jsonschema:"Search text across name, industry, and website"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 10)"`
}

type FindCompaniesOutput struct {
	Companies []CompanyOutput `json:"companies"`
}

func (h *CompanyHandlers) FindCompanies(_ context.Context, request *mcp.CallToolRequest, input FindCompaniesInput) (*mcp.CallToolResult, FindCompaniesOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = 10
	}

	var companies []models.Company
	var err error

	if input.Query != "" {
		companies, err = db.SearchCompanies(h.db, input.Query, limit)
	} else {
		companies, err = db.ListCompanies(h.db, limit)
	}
	if err != nil {
		return nil, FindCompaniesOutput{}, fmt.Errorf("failed to find companies: %w", err)
	}

	result := make([]CompanyOutput, len(companies))
	for i, company := range companies {
		result[i] = companyToOutput(&company)
	}

	return nil, FindCompaniesOutput{Companies: result}, nil
}

type UpdateCompanyInput struct {
	ID       int64  `json:"id" jsonschema:"Company ID (required)"`
	Name     string `json:"name,omitempty" jsonschema:"Updated name"`
	Website  string `json:"website,omitempty" jsonschema:"Updated website"`
	Industry string `json:"industry,omitempty" jsonschema:"Updated industry"`
	Notes    string `json:"notes,omitempty" jsonschema:"Updated notes"`
}

// UpdateCompany applies a partial update: only supplied fields mutate.
func (h *CompanyHandlers) UpdateCompany(_ context.Context, request *mcp.CallToolRequest, input UpdateCompanyInput) (*mcp.CallToolResult, CompanyOutput, error) {
	company, err := db.GetCompany(h.db, input.ID)
	if err != nil {
		return nil, CompanyOutput{}, fmt.Errorf("failed to get company: %w", err)
	}
	if company == nil {
		return nil, CompanyOutput{}, fmt.Errorf("company not found")
	}

	if input.Name != "" {
		company.Name = input.Name
	}
	if input.Website != "" {
		company.Website = input.Website
	}
	if input.Industry != "" {
		company.Industry = input.Industry
	}
	if input.Notes != "" {
		company.Notes = input.Notes
	}

	if _, err := db.UpdateCompany(h.db, input.ID, company); err != nil {
		return nil, CompanyOutput{}, fmt.Errorf("failed to update company: %w", err)
	}

	h.bus.Publish("company.updated", company)

	return nil, companyToOutput(company), nil
}

type DeleteCompanyInput struct {
	ID int64 `json:"id" jsonschema:"Company ID (required)"`
}

func (h *CompanyHandlers) DeleteCompany(_ context.Context, request *mcp.CallToolRequest, input DeleteCompanyInput) (*mcp.CallToolResult, DeleteOutput, error) {
	found, err := db.DeleteCompany(h.db, input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete company: %w", err)
	}
	if !found {
		return nil, DeleteOutput{Success: false, Message: "company not found"}, nil
	}

	h.bus.Publish("company.deleted", input.ID)

	return nil, DeleteOutput{
		Success: true,
		Message: fmt.Sprintf("Deleted company %d (its contacts keep their rows without a company)", input.ID),
	}, nil
}
