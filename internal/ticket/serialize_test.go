package ticket

import (
	"errors"
	"strings"
	"testing"
)

func TestSerialize_Example(t *testing.T) {
	input := header + "\n" + `1,"Printer, broken",Alice,Open,High,2024-01-01,Bob,,0`

	out := Serialize(Parse(input))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	if lines[0] != header {
		t.Errorf("header = %q, want %q", lines[0], header)
	}

	want := `"1","Printer, broken","Alice","Open","High","2024-01-01","Bob","","0"`
	if !strings.HasPrefix(lines[1], want) {
		t.Errorf("line = %q, want prefix %q", lines[1], want)
	}
}

func TestSerialize_Escaping(t *testing.T) {
	out := Serialize([]Ticket{{ID: "7", Title: `the "big" one`}})

	want := header + "\n" + `"7","the ""big"" one","","","","","","",""`
	if out != want {
		t.Errorf("Serialize =\n%s\nwant\n%s", out, want)
	}
}

func TestSerialize_Empty(t *testing.T) {
	if got := Serialize(nil); got != header {
		t.Errorf("Serialize(nil) = %q, want header only", got)
	}
}

func TestSerialize_NoTrailingNewline(t *testing.T) {
	out := Serialize(sampleTickets())
	if strings.HasSuffix(out, "\n") {
		t.Error("output ends with a newline")
	}
}

func TestSerialize_FixedFieldOrder(t *testing.T) {
	input := "progress,id,title\n33,5,Desk"
	out := Serialize(Parse(input))

	want := header + "\n" + `"5","Desk","","","","","","","33"`
	if out != want {
		t.Errorf("Serialize =\n%s\nwant\n%s", out, want)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name: "plain and quoted values",
			input: header + "\n" +
				`1,"Printer, broken",Alice,Open,High,2024-01-01,Bob,,0` + "\n" +
				`2,VPN,Carl,Closed,Low,2024-02-11,,"Restart, then retry",100`,
		},
		{
			name:  "embedded quotes",
			input: header + "\n" + `3,"Error ""42""",Dana,Open,Medium,2024-03-01,,"He said ""no""",5`,
		},
		{
			name:  "out of range progress kept",
			input: header + "\n" + `4,Overdue,Eve,Open,Low,2024-04-01,,,250`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			s.Load(Parse(tt.input))

			original := ParseRows(tt.input)
			again := ParseRows(Serialize(s.All()))

			if len(again) != len(original) {
				t.Fatalf("round trip rows = %d, want %d", len(again), len(original))
			}
			for i := range original {
				for _, field := range Fields {
					if again[i][field] != original[i][field] {
						t.Errorf("row %d %s = %q, want %q", i, field, again[i][field], original[i][field])
					}
				}
			}
		})
	}
}

func TestRoundTrip_AfterUpdate(t *testing.T) {
	s := NewStore()
	s.Load(sampleTickets())
	s.UpdateByID("2", Patch{Status: "Open", Priority: "Low", Description: `uses "quotes", commas`, Progress: -3})

	back := Parse(Serialize(s.All()))
	tk := back[1]
	if tk.Description != `uses "quotes", commas` || tk.Progress != "-3" {
		t.Errorf("after round trip = %+v", tk)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteCSV_WriterError(t *testing.T) {
	if err := WriteCSV(failingWriter{}, sampleTickets()); err == nil {
		t.Error("WriteCSV expected writer error")
	}
}
