package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const createTicketAuditSQLite = `
CREATE TABLE IF NOT EXISTS ticket_audit (
    id             TEXT PRIMARY KEY,
    action         TEXT NOT NULL,
    ticket_id      TEXT DEFAULT '',
    changed_fields TEXT DEFAULT '',
    export_id      TEXT DEFAULT '',
    ip_address     TEXT DEFAULT '',
    user_agent     TEXT DEFAULT '',
    created_at     DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_ticket_audit_created_at ON ticket_audit(created_at);
CREATE INDEX IF NOT EXISTS idx_ticket_audit_ticket_id ON ticket_audit(ticket_id);
`

// OpenSQLite opens the SQLite audit store at path and creates its table.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTicketAuditSQLite); err != nil {
		db.Close()
		return nil, fmt.Errorf("create ticket_audit: %w", err)
	}
	return db, nil
}
