// ABOUTME: Tests for model helper methods and type validators
// ABOUTME: Covers name formatting, tag splitting, and custom field round-trips
package models

import (
	"reflect"
	"testing"
)

func TestFullName(t *testing.T) {
	cases := []struct {
		first, last, want string
	}{
		{"John", "Smith", "John Smith"},
		{"Cher", "", "Cher"},
	}
	for _, tc := range cases {
		c := Contact{FirstName: tc.first, LastName: tc.last}
		if got := c.FullName(); got != tc.want {
			t.Errorf("FullName(%q, %q) = %q, want %q", tc.first, tc.last, got, tc.want)
		}
	}
}

func TestTagList(t *testing.T) {
	cases := []struct {
		tags string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"friend", []string{"friend"}},
		{"friend, golf , neighbor", []string{"friend", "golf", "neighbor"}},
		{"a,,b", []string{"a", "b"}},
	}
	for _, tc := range cases {
		c := Contact{Tags: tc.tags}
		if got := c.TagList(); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("TagList(%q) = %v, want %v", tc.tags, got, tc.want)
		}
	}
}

func TestCustomFieldsRoundTrip(t *testing.T) {
	c := Contact{}

	fields, err := c.GetCustomFields()
	if err != nil {
		t.Fatalf("GetCustomFields on empty blob failed: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("Expected empty map, got %v", fields)
	}

	in := map[string]string{"twitter": "@john", "website": "https://example.com"}
	if err := c.SetCustomFields(in); err != nil {
		t.Fatalf("SetCustomFields failed: %v", err)
	}

	out, err := c.GetCustomFields()
	if err != nil {
		t.Fatalf("GetCustomFields failed: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("Round trip mismatch: %v != %v", in, out)
	}

	if err := c.SetCustomFields(nil); err != nil {
		t.Fatalf("SetCustomFields(nil) failed: %v", err)
	}
	if c.CustomFields != "" {
		t.Errorf("Expected empty blob after clearing, got %q", c.CustomFields)
	}
}

func TestGetCustomFieldsInvalidJSON(t *testing.T) {
	c := Contact{CustomFields: "{not json"}
	if _, err := c.GetCustomFields(); err == nil {
		t.Error("Expected error for invalid JSON blob")
	}
}

func TestValidReminderType(t *testing.T) {
	for _, valid := range []string{ReminderBirthday, ReminderAnniversary, ReminderCustom} {
		if !ValidReminderType(valid) {
			t.Errorf("Expected %q to be valid", valid)
		}
	}
	for _, invalid := range []string{"", "holiday", "BIRTHDAY"} {
		if ValidReminderType(invalid) {
			t.Errorf("Expected %q to be invalid", invalid)
		}
	}
}

func TestValidFieldType(t *testing.T) {
	for _, valid := range []string{FieldTypeText, FieldTypeURL, FieldTypeDate, FieldTypeNumber, FieldTypeJSON} {
		if !ValidFieldType(valid) {
			t.Errorf("Expected %q to be valid", valid)
		}
	}
	for _, invalid := range []string{"", "blob", "TEXT"} {
		if ValidFieldType(invalid) {
			t.Errorf("Expected %q to be invalid", invalid)
		}
	}
}
