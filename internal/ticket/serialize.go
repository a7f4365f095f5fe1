package ticket

import (
	"io"
	"strings"
)

// ExportFileName is the name of the downloadable ticket file.
const ExportFileName = "tickets.csv"

// Serialize renders tickets as delimited text: an unquoted header line,
// then one line per ticket with every value quote-wrapped and inner quotes
// doubled. Lines are joined by "\n" without a trailing newline.
func Serialize(tickets []Ticket) string {
	var b strings.Builder
	// strings.Builder never returns a write error.
	_ = WriteCSV(&b, tickets)
	return b.String()
}

// WriteCSV writes the Serialize form of tickets to w. The only error
// returned is the writer's.
func WriteCSV(w io.Writer, tickets []Ticket) error {
	if _, err := io.WriteString(w, strings.Join(Fields, ",")); err != nil {
		return err
	}

	values := make([]string, len(Fields))
	for _, t := range tickets {
		for i, field := range Fields {
			values[i] = quote(t.Get(field))
		}
		if _, err := io.WriteString(w, "\n"+strings.Join(values, ",")); err != nil {
			return err
		}
	}
	return nil
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
