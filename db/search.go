// ABOUTME: Layered contact search pipeline
// ABOUTME: Exact multi-term, comma-reversed, substring, and fuzzy edit-distance stages
package db

import (
	"database/sql"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/harperreed/rolo/fuzzy"
	"github.com/harperreed/rolo/models"
)

// Fuzzy acceptance threshold for a term is max(FuzzyMinDistance,
// len(term)/FuzzyLengthDivisor). The constants are empirical; tune here
// rather than re-deriving.
var (
	FuzzyMinDistance   = 2
	FuzzyLengthDivisor = 3
)

// SearchContacts resolves free-text queries against the contact table.
// Stages run strictly in order, each only when the previous one found
// nothing:
//
//  1. every whitespace term must substring-match first or last name (>=2 terms)
//  2. "Last, First" comma split, matched against last/first name
//  3. the whole query as one substring across name, nickname, email, phone, tags
//  4. fuzzy edit-distance scan over all contacts, ranked by summed distance
//
// An empty or whitespace-only query returns no results without touching
// storage.
func SearchContacts(db *sql.DB, query string, limit int) ([]models.Contact, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	terms := strings.Fields(trimmed)

	if len(terms) >= 2 {
		contacts, err := searchExactTerms(db, terms, limit)
		if err != nil {
			return nil, err
		}
		if len(contacts) > 0 {
			return contacts, nil
		}
	}

	if strings.Contains(query, ",") {
		contacts, err := searchCommaReversed(db, query, limit)
		if err != nil {
			return nil, err
		}
		if len(contacts) > 0 {
			return contacts, nil
		}
	}

	contacts, err := searchSubstring(db, trimmed, limit)
	if err != nil {
		return nil, err
	}
	if len(contacts) > 0 {
		return contacts, nil
	}

	return searchFuzzy(db, terms, limit)
}

// searchExactTerms requires every term to appear in first or last name, so
// "John Smith", "Smith John", and "John Michael Smith" all reach a contact
// named "John Smith".
func searchExactTerms(db *sql.DB, terms []string, limit int) ([]models.Contact, error) {
	and := sq.And{}
	for _, term := range terms {
		pattern := "%" + strings.ToLower(term) + "%"
		and = append(and, sq.Or{
			sq.Like{"LOWER(c.first_name)": pattern},
			sq.Like{"LOWER(c.last_name)": pattern},
		})
	}

	return runContactQuery(db, and, limit)
}

// searchCommaReversed handles "Last, First" input by splitting on the first
// comma only.
func searchCommaReversed(db *sql.DB, query string, limit int) ([]models.Contact, error) {
	lastPart, firstPart, _ := strings.Cut(query, ",")
	lastPattern := "%" + strings.ToLower(strings.TrimSpace(lastPart)) + "%"
	firstPattern := "%" + strings.ToLower(strings.TrimSpace(firstPart)) + "%"

	where := sq.And{
		sq.Like{"LOWER(c.last_name)": lastPattern},
		sq.Like{"LOWER(c.first_name)": firstPattern},
	}

	return runContactQuery(db, where, limit)
}

// searchSubstring matches the whole query as one pattern OR'd across the
// searchable contact fields.
func searchSubstring(db *sql.DB, query string, limit int) ([]models.Contact, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	where := sq.Or{
		sq.Like{"LOWER(c.first_name)": pattern},
		sq.Like{"LOWER(c.last_name)": pattern},
		sq.Like{"LOWER(c.nickname)": pattern},
		sq.Like{"LOWER(c.email)": pattern},
		sq.Like{"LOWER(c.phone)": pattern},
		sq.Like{"LOWER(c.tags)": pattern},
	}

	return runContactQuery(db, where, limit)
}

func runContactQuery(db *sql.DB, where sq.Sqlizer, limit int) ([]models.Contact, error) {
	query, args, err := sq.Select(contactColumns).
		From("contacts c").
		LeftJoin("companies co ON co.id = c.company_id").
		Where(where).
		OrderBy("c.first_name", "c.last_name").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}

	return collectContacts(rows)
}

type fuzzyMatch struct {
	contact models.Contact
	score   int
}

// searchFuzzy scans the full contact table and accepts a contact only when
// every query term lands within its edit-distance threshold against one of
// the contact's name fields. Rejected contacts are discarded, not scored.
func searchFuzzy(db *sql.DB, terms []string, limit int) ([]models.Contact, error) {
	contacts, err := AllContacts(db)
	if err != nil {
		return nil, err
	}

	var matches []fuzzyMatch
	for _, contact := range contacts {
		fields := fuzzyFields(&contact)

		total := 0
		accepted := true
		for _, term := range terms {
			term = strings.ToLower(term)
			best := bestDistance(term, fields)
			if best > fuzzyThreshold(term) {
				accepted = false
				break
			}
			total += best
		}

		if accepted {
			matches = append(matches, fuzzyMatch{contact: contact, score: total})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score < matches[j].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	results := make([]models.Contact, len(matches))
	for i, m := range matches {
		results[i] = m.contact
	}

	return results, nil
}

// fuzzyFields collects the comparison targets for one contact: first name,
// last name, nickname, and each word within the first name.
func fuzzyFields(contact *models.Contact) []string {
	fields := []string{
		strings.ToLower(contact.FirstName),
		strings.ToLower(contact.LastName),
		strings.ToLower(contact.Nickname),
	}
	fields = append(fields, strings.Fields(strings.ToLower(contact.FirstName))...)
	return fields
}

func bestDistance(term string, fields []string) int {
	best := -1
	for _, field := range fields {
		if field == "" {
			continue
		}
		d := fuzzy.Distance(term, field)
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return len([]rune(term)) // contact had no usable name fields
	}
	return best
}

func fuzzyThreshold(term string) int {
	threshold := len([]rune(term)) / FuzzyLengthDivisor
	if threshold < FuzzyMinDistance {
		threshold = FuzzyMinDistance
	}
	return threshold
}

// SearchCompanies is a single-stage substring match across name, industry,
// and website. Companies collide rarely enough that no fuzzy fallback is
// warranted.
func SearchCompanies(db *sql.DB, query string, limit int) ([]models.Company, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 10
	}

	pattern := "%" + strings.ToLower(trimmed) + "%"

	sqlText, args, err := sq.Select("id", "name", "website", "industry", "notes", "created_at", "updated_at").
		From("companies").
		Where(sq.Or{
			sq.Like{"LOWER(name)": pattern},
			sq.Like{"LOWER(industry)": pattern},
			sq.Like{"LOWER(website)": pattern},
		}).
		OrderBy("name").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := db.Query(sqlText, args...)
	if err != nil {
		return nil, err
	}

	return collectCompanies(rows)
}
