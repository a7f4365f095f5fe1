package ticket

import (
	"testing"
)

const header = "id,title,requester,status,priority,date,assignedTo,description,progress"

// ----------------------------------------------------------------------------
// ParseRows Tests
// ----------------------------------------------------------------------------

func TestParseRows_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\n"} {
		if rows := ParseRows(input); len(rows) != 0 {
			t.Errorf("ParseRows(%q) = %d rows, want 0", input, len(rows))
		}
	}
}

func TestParseRows_HeaderOnly(t *testing.T) {
	if rows := ParseRows(header); len(rows) != 0 {
		t.Errorf("header only: got %d rows, want 0", len(rows))
	}
}

func TestParseRows_CountAndFields(t *testing.T) {
	input := header + "\n" +
		"1,A,Alice,Open,High,2024-01-01,Bob,desc,10\n" +
		"2,B,Carl,Closed,Low,2024-01-02,,,\n" +
		"3,C,Dana,Open,Medium,2024-01-03,Eve,x,50"

	rows := ParseRows(input)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	for i, row := range rows {
		for _, field := range Fields {
			if _, ok := row[field]; !ok {
				t.Errorf("row %d missing field %q", i, field)
			}
		}
	}

	if rows[1][FieldAssignedTo] != "" || rows[1][FieldProgress] != "" {
		t.Errorf("row 1 empty fields = %q/%q, want empty", rows[1][FieldAssignedTo], rows[1][FieldProgress])
	}
}

func TestParseRows_QuotedComma(t *testing.T) {
	input := header + "\n" + `1,"Printer, broken",Alice,Open,High,2024-01-01,Bob,,0`

	rows := ParseRows(input)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	row := rows[0]
	if row[FieldTitle] != "Printer, broken" {
		t.Errorf("title = %q, want %q", row[FieldTitle], "Printer, broken")
	}
	if row[FieldRequester] != "Alice" {
		t.Errorf("requester = %q, want Alice (comma inside quotes must not shift columns)", row[FieldRequester])
	}
	if row[FieldProgress] != "0" {
		t.Errorf("progress = %q, want 0", row[FieldProgress])
	}
}

func TestParseRows_Values(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		field string
		want  string
	}{
		{"plain value trimmed", "1,  spaced  ,x", FieldTitle, "spaced"},
		{"quoted value", `1,"quoted",x`, FieldTitle, "quoted"},
		{"doubled quote decoded", `1,"say ""hi""",x`, FieldTitle, `say "hi"`},
		{"quoted empty", `1,"",x`, FieldTitle, ""},
		{"only escaped quote", `1,"""",x`, FieldTitle, `"`},
		{"carriage return trimmed", "1,A,Alice\r", FieldRequester, "Alice"},
		{"short row defaults empty", "1", FieldStatus, ""},
		{"extra values ignored", "1,A,B,C,D,E,F,G,H,I,J", FieldProgress, "H"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := ParseRows(header + "\n" + tt.line)
			if len(rows) != 1 {
				t.Fatalf("got %d rows, want 1", len(rows))
			}
			if got := rows[0][tt.field]; got != tt.want {
				t.Errorf("%s = %q, want %q", tt.field, got, tt.want)
			}
		})
	}
}

func TestParseRows_SkipsBlankLines(t *testing.T) {
	input := header + "\n1,A\n\n   \n2,B\n"
	rows := ParseRows(input)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[1][FieldID] != "2" {
		t.Errorf("second row id = %q, want 2", rows[1][FieldID])
	}
}

func TestParseRows_HeaderOrderIndependent(t *testing.T) {
	input := "progress, title ,id\n75,Laptop,9"
	rows := ParseRows(input)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}

	tk := FromRow(rows[0])
	if tk.ID != "9" || tk.Title != "Laptop" || tk.Progress != "75" {
		t.Errorf("FromRow = %+v, want id=9 title=Laptop progress=75", tk)
	}
	if tk.Status != "" {
		t.Errorf("status = %q, want empty for a column absent from the header", tk.Status)
	}
}

// ----------------------------------------------------------------------------
// Ticket helpers
// ----------------------------------------------------------------------------

func TestProgressValue(t *testing.T) {
	tests := []struct {
		progress    string
		wantValue   int
		wantPercent int
	}{
		{"", 0, 0},
		{"abc", 0, 0},
		{"42", 42, 42},
		{" 7 ", 7, 7},
		{"150", 150, 100},
		{"-5", -5, 0},
	}

	for _, tt := range tests {
		tk := Ticket{Progress: tt.progress}
		if got := tk.ProgressValue(); got != tt.wantValue {
			t.Errorf("ProgressValue(%q) = %d, want %d", tt.progress, got, tt.wantValue)
		}
		if got := tk.ProgressPercent(); got != tt.wantPercent {
			t.Errorf("ProgressPercent(%q) = %d, want %d", tt.progress, got, tt.wantPercent)
		}
	}
}

func TestPriorityRank(t *testing.T) {
	tests := map[string]int{
		"High":   3,
		"Medium": 2,
		"Low":    1,
		"high":   0,
		"Urgent": 0,
		"":       0,
	}
	for priority, want := range tests {
		if got := PriorityRank(priority); got != want {
			t.Errorf("PriorityRank(%q) = %d, want %d", priority, got, want)
		}
	}
}
