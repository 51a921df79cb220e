// ABOUTME: Data models for contact-management entities
// ABOUTME: Defines Contact, Company, Interaction, Reminder, Relationship, Group, and ExtensionField structs
package models

import (
	"encoding/json"
	"strings"
	"time"
)

type Contact struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name,omitempty"`
	Nickname     string    `json:"nickname,omitempty"`
	Email        string    `json:"email,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	CompanyID    *int64    `json:"company_id,omitempty"`
	CompanyName  string    `json:"company_name,omitempty"` // denormalized on reads
	Birthday     string    `json:"birthday,omitempty"`     // ISO date string
	Anniversary  string    `json:"anniversary,omitempty"`  // ISO date string
	Notes        string    `json:"notes,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Tags         string    `json:"tags,omitempty"`          // comma-joined
	CustomFields string    `json:"custom_fields,omitempty"` // JSON blob
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FullName returns "First Last" with the last name omitted when empty.
func (c *Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// TagList splits the comma-joined tag field into trimmed tags.
func (c *Contact) TagList() []string {
	if strings.TrimSpace(c.Tags) == "" {
		return nil
	}
	parts := strings.Split(c.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// SetCustomFields encodes the map as the JSON custom-field blob.
func (c *Contact) SetCustomFields(fields map[string]string) error {
	if len(fields) == 0 {
		c.CustomFields = ""
		return nil
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	c.CustomFields = string(data)
	return nil
}

// GetCustomFields decodes the JSON custom-field blob. An empty blob yields an empty map.
func (c *Contact) GetCustomFields() (map[string]string, error) {
	if strings.TrimSpace(c.CustomFields) == "" {
		return map[string]string{}, nil
	}
	var fields map[string]string
	if err := json.Unmarshal([]byte(c.CustomFields), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

type Company struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Website   string    `json:"website,omitempty"`
	Industry  string    `json:"industry,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Interaction struct {
	ID          int64     `json:"id"`
	ContactID   int64     `json:"contact_id"`
	ContactName string    `json:"contact_name,omitempty"` // denormalized on joined reads
	Type        string    `json:"type"`
	Summary     string    `json:"summary"`
	Notes       string    `json:"notes,omitempty"`
	HappenedAt  time.Time `json:"happened_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// Common interaction types. The column is an open string; these are conventions.
const (
	InteractionCall    = "call"
	InteractionMeeting = "meeting"
	InteractionEmail   = "email"
	InteractionNote    = "note"
	InteractionGift    = "gift"
	InteractionMessage = "message"
)

type Reminder struct {
	ID          int64     `json:"id"`
	ContactID   int64     `json:"contact_id"`
	ContactName string    `json:"contact_name,omitempty"`
	Type        string    `json:"type"`
	TargetDate  string    `json:"target_date"` // ISO date string
	Message     string    `json:"message,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Reminder type constants. Closed set, enforced on create.
const (
	ReminderBirthday    = "birthday"
	ReminderAnniversary = "anniversary"
	ReminderCustom      = "custom"
)

// ValidReminderType reports whether t is one of the closed reminder types.
func ValidReminderType(t string) bool {
	switch t {
	case ReminderBirthday, ReminderAnniversary, ReminderCustom:
		return true
	}
	return false
}

type Relationship struct {
	ID               int64     `json:"id"`
	ContactID        int64     `json:"contact_id"`
	RelatedContactID int64     `json:"related_contact_id"`
	RelatedName      string    `json:"related_name,omitempty"` // denormalized on joined reads
	RelationshipType string    `json:"relationship_type"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type Group struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type GroupMember struct {
	GroupID   int64     `json:"group_id"`
	ContactID int64     `json:"contact_id"`
	AddedAt   time.Time `json:"added_at"`
}

type ExtensionField struct {
	ID         int64     `json:"id"`
	ContactID  *int64    `json:"contact_id,omitempty"`
	CompanyID  *int64    `json:"company_id,omitempty"`
	Source     string    `json:"source"`
	FieldName  string    `json:"field_name"`
	FieldValue string    `json:"field_value,omitempty"`
	Label      string    `json:"label,omitempty"`
	FieldType  string    `json:"field_type"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Extension field type constants. Closed set, enforced on upsert.
const (
	FieldTypeText   = "text"
	FieldTypeURL    = "url"
	FieldTypeDate   = "date"
	FieldTypeNumber = "number"
	FieldTypeJSON   = "json"
)

// ValidFieldType reports whether t is one of the closed extension field types.
func ValidFieldType(t string) bool {
	switch t {
	case FieldTypeText, FieldTypeURL, FieldTypeDate, FieldTypeNumber, FieldTypeJSON:
		return true
	}
	return false
}
