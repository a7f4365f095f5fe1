package core

import (
	"testing"
	"time"

	db "github.com/JonMunkholm/ticketdesk/internal/database"
	"github.com/jackc/pgx/v5/pgtype"
)

func TestToPgText(t *testing.T) {
	if got := toPgText(""); got.Valid {
		t.Error("empty string should be NULL")
	}
	if got := toPgText("10.0.0.1"); !got.Valid || got.String != "10.0.0.1" {
		t.Errorf("toPgText() = %+v", got)
	}
}

func TestToPgUUID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"empty", "", false},
		{"invalid", "not-a-uuid", false},
		{"valid", "6f1c2a3e-8d4b-4c5e-9f70-1a2b3c4d5e6f", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toPgUUID(tt.input)
			if got.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v", got.Valid, tt.valid)
			}
			if tt.valid && uuidToString(got) != tt.input {
				t.Errorf("round trip = %q, want %q", uuidToString(got), tt.input)
			}
		})
	}
}

func TestDBTicketAuditToEntry(t *testing.T) {
	created := time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC)
	row := db.TicketAudit{
		ID:            toPgUUID("6f1c2a3e-8d4b-4c5e-9f70-1a2b3c4d5e6f"),
		Action:        string(ActionTicketSave),
		TicketID:      toPgText("1001"),
		ChangedFields: []byte(`{"status":{"old":"Open","new":"Closed"}}`),
		IpAddress:     toPgText("192.0.2.7"),
		CreatedAt:     pgtype.Timestamptz{Time: created, Valid: true},
	}

	e := dbTicketAuditToEntry(row)

	if e.Action != ActionTicketSave || e.TicketID != "1001" || e.IPAddress != "192.0.2.7" {
		t.Errorf("entry = %+v", e)
	}
	if e.ExportID != "" || e.UserAgent != "" {
		t.Errorf("NULL columns should map to empty strings: %+v", e)
	}
	if got := e.Changes["status"]; got.Old != "Open" || got.New != "Closed" {
		t.Errorf("changes = %+v", e.Changes)
	}
	if !e.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", e.CreatedAt, created)
	}
}
