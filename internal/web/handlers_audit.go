package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/ticketdesk/internal/core"
)

// AuditLogResponse is the body of GET /api/audit.
type AuditLogResponse struct {
	Entries []core.AuditEntry `json:"entries"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
}

// handleAPIAuditLog lists recorded saves and exports, newest first.
func (s *Server) handleAPIAuditLog(w http.ResponseWriter, r *http.Request) {
	limit := parseIntParam(r, "limit", core.DefaultAuditLimit)
	if limit == 0 {
		limit = core.DefaultAuditLimit
	}
	if limit > 500 {
		limit = 500
	}
	offset := parseIntParam(r, "offset", 0)

	entries, err := s.service.AuditLog(r.Context(), limit, offset)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if entries == nil {
		entries = []core.AuditEntry{}
	}

	writeJSON(w, AuditLogResponse{Entries: entries, Limit: limit, Offset: offset})
}

// parseIntParam parses a non-negative integer query parameter, returning
// defaultVal when absent or invalid.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return defaultVal
	}
	return v
}
