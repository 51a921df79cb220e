// ABOUTME: Tests for the edit-distance scorer
// ABOUTME: Covers identity, symmetry, empty strings, and multibyte runes
package fuzzy

import "testing"

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"john", "john", 0},
		{"john", "jon", 1},
		{"john", "jhon", 2},
		{"kitten", "sitting", 3},
		{"smith", "smyth", 1},
		{"a", "b", 1},
		{"flaw", "lawn", 2},
	}
	for _, tc := range cases {
		if got := Distance(tc.a, tc.b); got != tc.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestDistanceSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"john", "jonathan"},
		{"garcia", "garza"},
		{"", "anything"},
	}
	for _, p := range pairs {
		if Distance(p[0], p[1]) != Distance(p[1], p[0]) {
			t.Errorf("Distance(%q, %q) is not symmetric", p[0], p[1])
		}
	}
}

func TestDistanceMultibyte(t *testing.T) {
	// Runes, not bytes: one accented character is one edit
	if got := Distance("rené", "rene"); got != 1 {
		t.Errorf("Distance(rené, rene) = %d, want 1", got)
	}
	if got := Distance("日本語", "日本"); got != 1 {
		t.Errorf("Distance(日本語, 日本) = %d, want 1", got)
	}
}
