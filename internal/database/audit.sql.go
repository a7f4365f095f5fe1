package database

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const insertTicketAudit = `-- name: InsertTicketAudit :one
INSERT INTO ticket_audit (id, action, ticket_id, changed_fields, export_id, ip_address, user_agent)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id, action, ticket_id, changed_fields, export_id, ip_address, user_agent, created_at
`

type InsertTicketAuditParams struct {
	ID            pgtype.UUID
	Action        string
	TicketID      pgtype.Text
	ChangedFields []byte
	ExportID      pgtype.UUID
	IpAddress     pgtype.Text
	UserAgent     pgtype.Text
}

func (q *Queries) InsertTicketAudit(ctx context.Context, arg InsertTicketAuditParams) (TicketAudit, error) {
	row := q.db.QueryRow(ctx, insertTicketAudit,
		arg.ID,
		arg.Action,
		arg.TicketID,
		arg.ChangedFields,
		arg.ExportID,
		arg.IpAddress,
		arg.UserAgent,
	)
	var i TicketAudit
	err := row.Scan(
		&i.ID,
		&i.Action,
		&i.TicketID,
		&i.ChangedFields,
		&i.ExportID,
		&i.IpAddress,
		&i.UserAgent,
		&i.CreatedAt,
	)
	return i, err
}

const listTicketAudit = `-- name: ListTicketAudit :many
SELECT id, action, ticket_id, changed_fields, export_id, ip_address, user_agent, created_at
FROM ticket_audit
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

type ListTicketAuditParams struct {
	Limit  int32
	Offset int32
}

func (q *Queries) ListTicketAudit(ctx context.Context, arg ListTicketAuditParams) ([]TicketAudit, error) {
	rows, err := q.db.Query(ctx, listTicketAudit, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []TicketAudit
	for rows.Next() {
		var i TicketAudit
		if err := rows.Scan(
			&i.ID,
			&i.Action,
			&i.TicketID,
			&i.ChangedFields,
			&i.ExportID,
			&i.IpAddress,
			&i.UserAgent,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countTicketAudit = `-- name: CountTicketAudit :one
SELECT count(*) FROM ticket_audit
`

func (q *Queries) CountTicketAudit(ctx context.Context) (int64, error) {
	row := q.db.QueryRow(ctx, countTicketAudit)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const purgeTicketAudit = `-- name: PurgeTicketAudit :execrows
DELETE FROM ticket_audit
WHERE created_at < now() - make_interval(days => $1::int)
`

func (q *Queries) PurgeTicketAudit(ctx context.Context, days int32) (int64, error) {
	result, err := q.db.Exec(ctx, purgeTicketAudit, days)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
