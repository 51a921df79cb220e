// ABOUTME: Test suite for the layered contact search pipeline
// ABOUTME: Exercises exact multi-term, comma-reversed, substring, and fuzzy stages
package db

import (
	"testing"

	"github.com/harperreed/rolo/models"
)

func TestSearchContactsEmptyQuery(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	mustCreateContact(t, db, &models.Contact{FirstName: "John", LastName: "Smith"})

	results, err := SearchContacts(db, "   ", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results for blank query, got %d", len(results))
	}
}

func TestSearchContactsMultiTermBothOrders(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	mustCreateContact(t, db, &models.Contact{FirstName: "John", LastName: "Smith"})
	mustCreateContact(t, db, &models.Contact{FirstName: "Jane", LastName: "Doe"})

	for _, query := range []string{"John Smith", "Smith John", "john smith"} {
		results, err := SearchContacts(db, query, 10)
		if err != nil {
			t.Fatalf("Search %q failed: %v", query, err)
		}
		if len(results) != 1 {
			t.Fatalf("Search %q: expected 1 result, got %d", query, len(results))
		}
		if results[0].LastName != "Smith" {
			t.Errorf("Search %q: expected Smith, got %s", query, results[0].LastName)
		}
	}
}

func TestSearchContactsCommaReversed(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	mustCreateContact(t, db, &models.Contact{FirstName: "John", LastName: "Smith"})
	mustCreateContact(t, db, &models.Contact{FirstName: "Sarah", LastName: "Johnson"})

	results, err := SearchContacts(db, "Smith, John", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].FirstName != "John" {
		t.Errorf("Expected John, got %s", results[0].FirstName)
	}
}

func TestSearchContactsSubstringFields(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	mustCreateContact(t, db, &models.Contact{
		FirstName: "John",
		LastName:  "Smith",
		Nickname:  "Johnny",
		Email:     "jsmith@example.com",
		Phone:     "555-867-5309",
		Tags:      "golf,neighbor",
	})

	queries := []string{"jsmith", "867", "golf", "johnny"}
	for _, query := range queries {
		results, err := SearchContacts(db, query, 10)
		if err != nil {
			t.Fatalf("Search %q failed: %v", query, err)
		}
		if len(results) != 1 {
			t.Errorf("Search %q: expected 1 result, got %d", query, len(results))
		}
	}
}

func TestSearchContactsFuzzyTypo(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	mustCreateContact(t, db, &models.Contact{FirstName: "John", LastName: "Smith"})
	mustCreateContact(t, db, &models.Contact{FirstName: "Jane", LastName: "Doe"})

	// "Jhon" is not a substring of anything; only the fuzzy stage finds it
	results, err := SearchContacts(db, "Jhon", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("Expected fuzzy match for typo query")
	}
	if results[0].FirstName != "John" {
		t.Errorf("Expected John ranked first, got %s", results[0].FirstName)
	}
}

func TestSearchContactsFuzzyRanking(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	mustCreateContact(t, db, &models.Contact{FirstName: "Dana"})
	mustCreateContact(t, db, &models.Contact{FirstName: "Dan"})

	// "Dann" is distance 1 from both Dan and Dana, so both land within the
	// threshold and both come back
	results, err := SearchContacts(db, "Dann", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected both fuzzy matches, got %d", len(results))
	}
}

func TestSearchContactsUnrelatedQuery(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	mustCreateContact(t, db, &models.Contact{FirstName: "John", LastName: "Smith"})

	results, err := SearchContacts(db, "Zebra Xylophone", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no results for unrelated query, got %d", len(results))
	}
}

func TestFuzzyThreshold(t *testing.T) {
	cases := []struct {
		term string
		want int
	}{
		{"ab", 2},
		{"abcdef", 2},
		{"abcdefghi", 3},
		{"abcdefghijkl", 4},
	}
	for _, tc := range cases {
		if got := fuzzyThreshold(tc.term); got != tc.want {
			t.Errorf("fuzzyThreshold(%q) = %d, want %d", tc.term, got, tc.want)
		}
	}
}

func TestSearchCompanies(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := CreateCompany(db, &models.Company{Name: "Acme Corp", Industry: "Technology"}); err != nil {
		t.Fatalf("Failed to create company: %v", err)
	}
	if err := CreateCompany(db, &models.Company{Name: "Globex", Industry: "Energy"}); err != nil {
		t.Fatalf("Failed to create company: %v", err)
	}

	results, err := SearchCompanies(db, "tech", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Acme Corp" {
		t.Errorf("Expected Acme Corp by industry, got %+v", results)
	}

	empty, err := SearchCompanies(db, "", 10)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected no results for empty query, got %d", len(empty))
	}
}
