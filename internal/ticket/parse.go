package ticket

// parse.go turns delimited ticket text into records.
//
// The format is deliberately lenient:
//   - the first non-empty line is the header
//   - a comma inside a double-quoted span is content, not a separator
//   - a doubled quote ("") inside a quoted span is a literal quote
//   - rows shorter than the header get "" for the missing fields
//   - blank lines are skipped
//
// Parsing never fails; malformed rows degrade to empty fields.

import "strings"

// Row maps header names to the trimmed values of one data line.
type Row map[string]string

// ParseRows parses delimited text into rows keyed by header name.
// Empty input yields an empty (nil) slice.
func ParseRows(text string) []Row {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")
	header := splitHeader(lines[0])

	rows := make([]Row, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		values := splitLine(line)
		row := make(Row, len(header))
		for i, name := range header {
			val := ""
			if i < len(values) {
				val = values[i]
			}
			row[name] = val
		}
		rows = append(rows, row)
	}
	return rows
}

// Parse parses delimited text into tickets.
func Parse(text string) []Ticket {
	rows := ParseRows(text)
	tickets := make([]Ticket, len(rows))
	for i, row := range rows {
		tickets[i] = FromRow(row)
	}
	return tickets
}

func splitHeader(line string) []string {
	names := strings.Split(line, ",")
	for i := range names {
		names[i] = strings.TrimSpace(names[i])
	}
	return names
}

// splitLine scans one line, tracking whether the cursor is inside a quoted
// span. Quote characters themselves are never part of a value, except for
// the doubled-quote escape inside a span.
func splitLine(line string) []string {
	var (
		values   []string
		current  strings.Builder
		inQuotes bool
	)

	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"' && inQuotes && i+1 < len(line) && line[i+1] == '"':
			current.WriteByte('"')
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			values = append(values, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	values = append(values, strings.TrimSpace(current.String()))

	return values
}
