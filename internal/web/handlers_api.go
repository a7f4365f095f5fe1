package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"slices"

	"github.com/JonMunkholm/ticketdesk/internal/core"
	"github.com/JonMunkholm/ticketdesk/internal/ticket"
	"github.com/go-chi/chi/v5"
)

// TicketsResponse is the body of GET /api/tickets.
type TicketsResponse struct {
	Tickets  []ticket.Ticket `json:"tickets"`
	Count    int             `json:"count"`
	Statuses []string        `json:"statuses"`
}

// TicketPatch is the body of PATCH /api/tickets/{id}. Absent fields keep
// their current value.
type TicketPatch struct {
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	AssignedTo  *string `json:"assignedTo"`
	Progress    *int    `json:"progress"`
}

// apply overlays the present fields on p.
func (tp TicketPatch) apply(p ticket.Patch) ticket.Patch {
	if tp.Description != nil {
		p.Description = *tp.Description
	}
	if tp.Status != nil {
		p.Status = *tp.Status
	}
	if tp.Priority != nil {
		p.Priority = *tp.Priority
	}
	if tp.AssignedTo != nil {
		p.AssignedTo = *tp.AssignedTo
	}
	if tp.Progress != nil {
		p.Progress = *tp.Progress
	}
	return p
}

// handleHealth reports liveness and whether the ticket file is loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":         "ok",
		"tickets_loaded": s.service.LoadErr() == nil,
	})
}

// handleAPIListTickets returns tickets filtered and sorted by the query
// without changing the dashboard's state.
func (s *Server) handleAPIListTickets(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	field := q.Get("sort")
	if field != "" && !slices.Contains(ticket.Fields, field) {
		writeError(w, http.StatusBadRequest, "unknown sort field: "+field)
		return
	}

	tickets, err := s.service.Query(q.Get("status"), field, ticket.ParseDirection(q.Get("dir")))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if tickets == nil {
		tickets = []ticket.Ticket{}
	}

	writeJSON(w, TicketsResponse{
		Tickets:  tickets,
		Count:    len(tickets),
		Statuses: s.service.Statuses(),
	})
}

// handleAPIGetTicket returns one ticket.
func (s *Server) handleAPIGetTicket(w http.ResponseWriter, r *http.Request) {
	tk, err := s.service.Find(chi.URLParam(r, "id"))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, tk)
}

// handleAPIPatchTicket saves the present fields of the body over ticket id.
// An unknown id answers 404 with found=false and changes nothing.
func (s *Server) handleAPIPatchTicket(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body TicketPatch
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.respondError(w, r, errors.New("invalid request body: "+err.Error()), http.StatusBadRequest)
		return
	}

	current, err := s.service.Find(id)
	if errors.Is(err, core.ErrTicketNotFound) {
		writeJSONStatus(w, http.StatusNotFound, core.SaveResult{Found: false})
		return
	}
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	res, err := s.service.OnSaveRequested(WithRequestMetadata(r.Context(), r), id, body.apply(ticket.PatchFrom(current)))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if !res.Found {
		writeJSONStatus(w, http.StatusNotFound, res)
		return
	}
	w.Header().Set("X-Export-ID", res.ExportID)
	writeJSON(w, res)
}

// handleAPIExport downloads the whole collection.
func (s *Server) handleAPIExport(w http.ResponseWriter, r *http.Request) {
	res, err := s.service.Export(WithRequestMetadata(r.Context(), r))
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeCSVAttachment(w, res.FileName, res.ID, res.CSV)
}

// handleAPISettings returns the active settings.
func (s *Server) handleAPISettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.service.Settings())
}

// handleAPITranslations returns the translation table of one language.
func (s *Server) handleAPITranslations(w http.ResponseWriter, r *http.Request) {
	lang := chi.URLParam(r, "lang")
	table, ok := s.service.Catalog(lang)
	if !ok {
		writeError(w, http.StatusNotFound, "no translations for "+lang)
		return
	}
	writeJSON(w, table)
}
