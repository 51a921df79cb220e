// ABOUTME: CSV parser and encoder for contact import/export
// ABOUTME: Handles quoted fields, embedded commas/newlines, and doubled quotes
package csvio

import "strings"

// Parse converts raw CSV text into rows of string fields.
//
// Fields are comma-delimited. A field wrapped in double quotes may contain
// commas and newlines; a doubled quote inside a quoted field is a literal
// quote. Bare \r characters are insignificant and dropped. A trailing empty
// line produces no phantom row.
func Parse(text string) [][]string {
	var rows [][]string
	var row []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		if ch == '\r' {
			continue
		}

		if inQuotes {
			if ch == '"' {
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
				} else {
					inQuotes = false
				}
			} else {
				field.WriteRune(ch)
			}
			continue
		}

		switch ch {
		case '"':
			inQuotes = true
		case ',':
			row = append(row, field.String())
			field.Reset()
		case '\n':
			row = append(row, field.String())
			field.Reset()
			rows = append(rows, row)
			row = nil
		default:
			field.WriteRune(ch)
		}
	}

	// Flush the final row unless the text ended on a line break.
	if field.Len() > 0 || len(row) > 0 {
		row = append(row, field.String())
		rows = append(rows, row)
	}

	return rows
}

// EncodeField renders a single value. Values containing a comma, quote, or
// newline are wrapped in quotes with internal quotes doubled; everything
// else passes through untouched.
func EncodeField(value string) string {
	if !strings.ContainsAny(value, ",\"\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// Encode renders rows as CSV text, one line per row.
func Encode(rows [][]string) string {
	var sb strings.Builder
	for _, row := range rows {
		for i, field := range row {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(EncodeField(field))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
