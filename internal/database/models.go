package database

import (
	"github.com/jackc/pgx/v5/pgtype"
)

type TicketAudit struct {
	ID            pgtype.UUID
	Action        string
	TicketID      pgtype.Text
	ChangedFields []byte
	ExportID      pgtype.UUID
	IpAddress     pgtype.Text
	UserAgent     pgtype.Text
	CreatedAt     pgtype.Timestamptz
}
