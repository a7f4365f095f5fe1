package core

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// SQLiteSink stores audit entries in a local SQLite database opened with
// database.OpenSQLite.
type SQLiteSink struct {
	DB *sql.DB
}

func (s SQLiteSink) Record(ctx context.Context, e AuditEntry) error {
	changes := ""
	if len(e.Changes) > 0 {
		if b, err := json.Marshal(e.Changes); err == nil {
			changes = string(b)
		}
	}
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}

	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO ticket_audit (id, action, ticket_id, changed_fields, export_id, ip_address, user_agent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Action), e.TicketID, changes, e.ExportID, e.IPAddress, e.UserAgent, created.UTC(),
	)
	return err
}

func (s SQLiteSink) List(ctx context.Context, limit, offset int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = DefaultAuditLimit
	}

	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, action, ticket_id, changed_fields, export_id, ip_address, user_agent, created_at
		 FROM ticket_audit ORDER BY created_at DESC, rowid DESC LIMIT ? OFFSET ?`,
		limit, max(offset, 0),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []AuditEntry{}
	for rows.Next() {
		var (
			e       AuditEntry
			action  string
			changes string
		)
		err := rows.Scan(&e.ID, &action, &e.TicketID, &changes, &e.ExportID,
			&e.IPAddress, &e.UserAgent, &e.CreatedAt)
		if err != nil {
			return nil, err
		}
		e.Action = AuditAction(action)
		if changes != "" {
			_ = json.Unmarshal([]byte(changes), &e.Changes)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than days.
func (s SQLiteSink) Prune(ctx context.Context, days int) (int64, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	res, err := s.DB.ExecContext(ctx, `DELETE FROM ticket_audit WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
