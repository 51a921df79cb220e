// ABOUTME: Tests for the CSV parser and encoder
// ABOUTME: Covers quoting, embedded delimiters, CR handling, and the round-trip law
package csvio

import (
	"reflect"
	"testing"
)

func TestParseSimple(t *testing.T) {
	rows := Parse("a,b,c\nd,e,f\n")
	want := [][]string{{"a", "b", "c"}, {"d", "e", "f"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Parse = %v, want %v", rows, want)
	}
}

func TestParseNoTrailingNewline(t *testing.T) {
	rows := Parse("a,b\nc,d")
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Parse = %v, want %v", rows, want)
	}
}

func TestParseQuotedFields(t *testing.T) {
	rows := Parse(`name,notes` + "\n" + `"Smith, John","He said ""hi""` + "\nsecond line\"\n")
	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d: %v", len(rows), rows)
	}
	if rows[1][0] != "Smith, John" {
		t.Errorf("Expected embedded comma preserved, got %q", rows[1][0])
	}
	if rows[1][1] != "He said \"hi\"\nsecond line" {
		t.Errorf("Expected doubled quote and newline preserved, got %q", rows[1][1])
	}
}

func TestParseDropsCarriageReturns(t *testing.T) {
	rows := Parse("a,b\r\nc,d\r\n")
	want := [][]string{{"a", "b"}, {"c", "d"}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Parse = %v, want %v", rows, want)
	}
}

func TestParseEmptyFields(t *testing.T) {
	rows := Parse("a,,c\n,,\n")
	want := [][]string{{"a", "", "c"}, {"", "", ""}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Parse = %v, want %v", rows, want)
	}
}

func TestEncodeField(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"", ""},
		{"has,comma", `"has,comma"`},
		{`has"quote`, `"has""quote"`},
		{"has\nnewline", "\"has\nnewline\""},
	}
	for _, tc := range cases {
		if got := EncodeField(tc.in); got != tc.want {
			t.Errorf("EncodeField(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rows := [][]string{
		{"first_name", "notes"},
		{"John", "likes golf, hates mornings"},
		{"Jane", "quoted \"nickname\" here"},
		{"Multi", "line one\nline two"},
		{"", ""},
	}

	parsed := Parse(Encode(rows))
	if !reflect.DeepEqual(parsed, rows) {
		t.Errorf("Round trip mismatch:\n got %v\nwant %v", parsed, rows)
	}
}
