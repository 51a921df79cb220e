// ABOUTME: Group MCP tool handlers
// ABOUTME: Implements group CRUD and membership tools with idempotent add
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

type GroupHandlers struct {
	db  *sql.DB
	bus *events.Bus
}

func NewGroupHandlers(database *sql.DB, bus *events.Bus) *GroupHandlers {
	return &GroupHandlers{db: database, bus: bus}
}

type CreateGroupInput struct {
	Name        string `json:"name" jsonschema:"Group name, must be unique (required)"`
	Description string `json:"description,omitempty" jsonschema:"Group description"`
}

type GroupOutput struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func groupToOutput(group *models.Group) GroupOutput {
	return GroupOutput{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatedAt:   group.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (h *GroupHandlers) CreateGroup(_ context.Context, request *mcp.CallToolRequest, input CreateGroupInput) (*mcp.CallToolResult, GroupOutput, error) {
	if input.Name == "" {
		return nil, GroupOutput{}, fmt.Errorf("name is required")
	}

	group := &models.Group{Name: input.Name, Description: input.Description}
	if err := db.CreateGroup(h.db, group); err != nil {
		return nil, GroupOutput{}, fmt.Errorf("failed to create group: %w", err)
	}

	h.bus.Publish("group.created", group)

	return nil, groupToOutput(group), nil
}

type ListGroupsInput struct{}

type ListGroupsOutput struct {
	Groups []GroupOutput `json:"groups"`
}

func (h *GroupHandlers) ListGroups(_ context.Context, request *mcp.CallToolRequest, input ListGroupsInput) (*mcp.CallToolResult, ListGroupsOutput, error) {
	groups, err := db.ListGroups(h.db)
	if err != nil {
		return nil, ListGroupsOutput{}, fmt.Errorf("failed to list groups: %w", err)
	}

	result := make([]GroupOutput, len(groups))
	for i, group := range groups {
		result[i] = groupToOutput(&group)
	}

	return nil, ListGroupsOutput{Groups: result}, nil
}

type DeleteGroupInput struct {
	ID int64 `json:"id" jsonschema:"Group ID (required)"`
}

func (h *GroupHandlers) DeleteGroup(_ context.Context, request *mcp.CallToolRequest, input DeleteGroupInput) (*mcp.CallToolResult, DeleteOutput, error) {
	found, err := db.DeleteGroup(h.db, input.ID)
	if err != nil {
		return nil, DeleteOutput{}, fmt.Errorf("failed to delete group: %w", err)
	}
	if !found {
		return nil, DeleteOutput{Success: false, Message: "group not found"}, nil
	}

	return nil, DeleteOutput{Success: true, Message: fmt.Sprintf("Deleted group %d", input.ID)}, nil
}

type GroupMemberInput struct {
	GroupID   int64 `json:"group_id" jsonschema:"Group ID (required)"`
	ContactID int64 `json:"contact_id" jsonschema:"Contact ID (required)"`
}

type GroupMemberOutput struct {
	Changed bool   `json:"changed"`
	Message string `json:"message"`
}

// AddGroupMember is idempotent: adding an existing member reports
// changed == false without an error.
func (h *GroupHandlers) AddGroupMember(_ context.Context, request *mcp.CallToolRequest, input GroupMemberInput) (*mcp.CallToolResult, GroupMemberOutput, error) {
	changed, err := db.AddGroupMember(h.db, input.GroupID, input.ContactID)
	if err != nil {
		return nil, GroupMemberOutput{}, fmt.Errorf("failed to add group member: %w", err)
	}

	message := fmt.Sprintf("Contact %d added to group %d", input.ContactID, input.GroupID)
	if !changed {
		message = fmt.Sprintf("Contact %d is already a member of group %d", input.ContactID, input.GroupID)
	}

	return nil, GroupMemberOutput{Changed: changed, Message: message}, nil
}

func (h *GroupHandlers) RemoveGroupMember(_ context.Context, request *mcp.CallToolRequest, input GroupMemberInput) (*mcp.CallToolResult, GroupMemberOutput, error) {
	changed, err := db.RemoveGroupMember(h.db, input.GroupID, input.ContactID)
	if err != nil {
		return nil, GroupMemberOutput{}, fmt.Errorf("failed to remove group member: %w", err)
	}

	message := fmt.Sprintf("Contact %d removed from group %d", input.ContactID, input.GroupID)
	if !changed {
		message = fmt.Sprintf("Contact %d was not a member of group %d", input.ContactID, input.GroupID)
	}

	return nil, GroupMemberOutput{Changed: changed, Message: message}, nil
}

type ListGroupMembersInput struct {
	GroupID int64 `json:"group_id" jsonschema:"Group ID (required)"`
}

type ListGroupMembersOutput struct {
	Members []ContactOutput `json:"members"`
}

func (h *GroupHandlers) ListGroupMembers(_ context.Context, request *mcp.CallToolRequest, input ListGroupMembersInput) (*mcp.CallToolResult, ListGroupMembersOutput, error) {
	members, err := db.ListGroupMembers(h.db, input.GroupID)
	if err != nil {
		return nil, ListGroupMembersOutput{}, fmt.Errorf("failed to list group members: %w", err)
	}

	result := make([]ContactOutput, len(members))
	for i, member := range members {
		result[i] = contactToOutput(&member)
	}

	return nil, ListGroupMembersOutput{Members: result}, nil
}

type ListContactGroupsInput struct {
	ContactID int64 `json:"contact_id" jsonschema:"Contact ID (required)"`
}

func (h *GroupHandlers) ListContactGroups(_ context.Context, request *mcp.CallToolRequest, input ListContactGroupsInput) (*mcp.CallToolResult, ListGroupsOutput, error) {
	groups, err := db.ListGroupsOfContact(h.db, input.ContactID)
	if err != nil {
		return nil, ListGroupsOutput{}, fmt.Errorf("failed to list contact groups: %w", err)
	}

	result := make([]GroupOutput, len(groups))
	for i, group := range groups {
		result[i] = groupToOutput(&group)
	}

	return nil, ListGroupsOutput{Groups: result}, nil
}
