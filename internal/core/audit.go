package core

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	db "github.com/JonMunkholm/ticketdesk/internal/database"
)

// AuditAction represents the type of action being audited.
type AuditAction string

const (
	ActionTicketSave   AuditAction = "ticket_save"
	ActionExport       AuditAction = "export"
	ActionSettingsSave AuditAction = "settings_save"
)

// DefaultAuditLimit is the page size when listing audit entries.
const DefaultAuditLimit = 50

// ErrAuditDisabled is returned when listing entries from a sink that only
// writes to the log.
var ErrAuditDisabled = errors.New("audit log not enabled")

// FieldChange is one edited field of a saved ticket.
type FieldChange struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// AuditEntry represents a single audit log entry.
type AuditEntry struct {
	ID        string                 `json:"id"`
	Action    AuditAction            `json:"action"`
	TicketID  string                 `json:"ticketId,omitempty"`
	Changes   map[string]FieldChange `json:"changes,omitempty"`
	ExportID  string                 `json:"exportId,omitempty"`
	IPAddress string                 `json:"ipAddress,omitempty"`
	UserAgent string                 `json:"userAgent,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// AuditSink records audit entries.
type AuditSink interface {
	Record(ctx context.Context, entry AuditEntry) error
}

// AuditReader lists recorded entries, newest first.
type AuditReader interface {
	List(ctx context.Context, limit, offset int) ([]AuditEntry, error)
}

// LogSink writes audit entries to the structured log.
type LogSink struct {
	Logger *slog.Logger
}

func (s LogSink) Record(ctx context.Context, e AuditEntry) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "audit",
		"audit_id", e.ID,
		"action", e.Action,
		"ticket_id", e.TicketID,
		"export_id", e.ExportID,
		"changed_fields", len(e.Changes),
		"ip", e.IPAddress,
	)
	return nil
}

// PgSink stores audit entries in the ticket_audit table.
type PgSink struct {
	DB db.DBTX
}

func (s PgSink) Record(ctx context.Context, e AuditEntry) error {
	var changes []byte
	if len(e.Changes) > 0 {
		var err error
		changes, err = json.Marshal(e.Changes)
		if err != nil {
			changes = nil
		}
	}

	_, err := db.New(s.DB).InsertTicketAudit(ctx, db.InsertTicketAuditParams{
		ID:            toPgUUID(e.ID),
		Action:        string(e.Action),
		TicketID:      toPgText(e.TicketID),
		ChangedFields: changes,
		ExportID:      toPgUUID(e.ExportID),
		IpAddress:     toPgText(e.IPAddress),
		UserAgent:     toPgText(e.UserAgent),
	})
	return err
}

// Prune deletes entries older than days.
func (s PgSink) Prune(ctx context.Context, days int) (int64, error) {
	return db.New(s.DB).PurgeTicketAudit(ctx, int32(days))
}

func (s PgSink) List(ctx context.Context, limit, offset int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}

	rows, err := db.New(s.DB).ListTicketAudit(ctx, db.ListTicketAuditParams{
		Limit:  int32(limit),
		Offset: int32(max(offset, 0)),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]AuditEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dbTicketAuditToEntry(row))
	}
	return entries, nil
}

// changedFields diffs the editable fields of a ticket before and after a
// save.
func changedFields(before, after map[string]string) map[string]FieldChange {
	changes := make(map[string]FieldChange)
	for field, old := range before {
		if now := after[field]; now != old {
			changes[field] = FieldChange{Old: old, New: now}
		}
	}
	return changes
}

// Helper functions for type conversion

func dbTicketAuditToEntry(row db.TicketAudit) AuditEntry {
	entry := AuditEntry{
		ID:        uuidToString(row.ID),
		Action:    AuditAction(row.Action),
		TicketID:  fromPgText(row.TicketID),
		ExportID:  uuidToString(row.ExportID),
		IPAddress: fromPgText(row.IpAddress),
		UserAgent: fromPgText(row.UserAgent),
		CreatedAt: row.CreatedAt.Time,
	}
	if row.ChangedFields != nil {
		_ = json.Unmarshal(row.ChangedFields, &entry.Changes)
	}
	return entry
}
