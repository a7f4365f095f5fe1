package database

import (
	"context"
	"fmt"
)

const createTicketAudit = `
CREATE TABLE IF NOT EXISTS ticket_audit (
    id             UUID PRIMARY KEY,
    action         TEXT NOT NULL,
    ticket_id      TEXT,
    changed_fields JSONB,
    export_id      UUID,
    ip_address     TEXT,
    user_agent     TEXT,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS ticket_audit_created_at_idx ON ticket_audit (created_at DESC);
CREATE INDEX IF NOT EXISTS ticket_audit_ticket_id_idx ON ticket_audit (ticket_id);
`

// EnsureSchema creates the audit table and its indexes when missing.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, createTicketAudit); err != nil {
		return fmt.Errorf("create ticket_audit: %w", err)
	}
	return nil
}
