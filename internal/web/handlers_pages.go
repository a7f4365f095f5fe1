package web

import (
	"errors"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/JonMunkholm/ticketdesk/internal/core"
	"github.com/JonMunkholm/ticketdesk/internal/logging"
	"github.com/JonMunkholm/ticketdesk/internal/settings"
	"github.com/JonMunkholm/ticketdesk/internal/ticket"
	"github.com/JonMunkholm/ticketdesk/internal/web/view"
	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
)

// maxFormBytes caps urlencoded form bodies.
const maxFormBytes = 1 << 20

// page builds the shared layout model from the active settings.
func (s *Server) page(r *http.Request, title, active string) view.Page {
	st := s.service.Settings()
	prefersDark := strings.EqualFold(r.Header.Get("Sec-CH-Prefers-Color-Scheme"), "dark")
	return view.Page{
		Title:  title,
		Theme:  settings.ResolveTheme(st.Theme, prefersDark),
		Lang:   st.Language,
		User:   s.cfg.UI.UserName,
		Active: active,
		T:      s.service.Translator(""),
	}
}

// render writes c as an HTML response. Render failures after the header
// is sent can only be logged.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// parseForm bounds the body and parses it.
func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return errors.New("invalid form: " + err.Error())
	}
	return nil
}

// handleList renders the dashboard. A failed ticket load renders the
// table with a full-width error row rather than an error page.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Tickets", view.NavDashboard)

	filter := ticket.FilterValue(r.URL.Query().Get("status"))
	tickets, err := s.service.OnFilterChanged(filter)
	data := view.ListData{
		Page:     p,
		Tickets:  tickets,
		Statuses: s.service.Statuses(),
		Filter:   filter,
		Sort:     s.service.SortState(),
	}
	if err != nil {
		logging.FromContext(r.Context()).Warn("ticket list unavailable", "error", err)
		msg := core.MapError(err)
		data.Err = &msg
	}

	s.render(w, r, http.StatusOK, view.List(data))
}

// handleSort applies a column sort and redirects back to the dashboard
// with the submitted filter.
func (s *Server) handleSort(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	if !slices.Contains(ticket.Fields, field) {
		s.respondError(w, r, errors.New("invalid form: unknown sort field "+field), http.StatusBadRequest)
		return
	}
	if err := parseForm(w, r); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	status := r.PostForm.Get("status")
	if _, err := s.service.OnFilterChanged(status); err == nil {
		if _, _, err := s.service.OnSortRequested(field); err != nil {
			logging.FromContext(r.Context()).Warn("sort failed", "field", field, "error", err)
		}
	}

	target := "/"
	if status != "" && status != ticket.FilterAll {
		target += "?status=" + url.QueryEscape(status)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// handleNewTicket acknowledges the new-ticket action, which has no
// creation flow yet.
func (s *Server) handleNewTicket(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "New ticket", view.NavDashboard)
	s.render(w, r, http.StatusOK, view.Message(p,
		p.T.Text("tickets.new", "New ticket"),
		p.T.Text("tickets.newPending", "Creating tickets is not available yet."),
		"",
	))
}

// handleDetail renders the editor for one ticket.
func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	tk, err := s.service.Find(id)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	p := s.page(r, tk.Title, view.NavDashboard)
	s.render(w, r, http.StatusOK, view.Detail(view.DetailData{
		Page:     p,
		Ticket:   tk,
		Statuses: s.service.Statuses(),
	}))
}

// handleSave applies the editor form and downloads the updated ticket
// file.
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	current, err := s.service.Find(id)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if err := parseForm(w, r); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	patch := patchFromForm(r, current)
	ctx := WithRequestMetadata(r.Context(), r)
	res, err := s.service.OnSaveRequested(ctx, id, patch)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if !res.Found {
		s.respondError(w, r, core.ErrTicketNotFound, http.StatusNotFound)
		return
	}

	writeCSVAttachment(w, ticket.ExportFileName, res.ExportID, res.CSV)
}

// patchFromForm overlays the submitted fields on the current values.
// A missing or non-numeric progress keeps the current one.
func patchFromForm(r *http.Request, current ticket.Ticket) ticket.Patch {
	patch := ticket.PatchFrom(current)
	form := r.PostForm
	if form.Has("description") {
		patch.Description = form.Get("description")
	}
	if form.Has("status") {
		patch.Status = form.Get("status")
	}
	if form.Has("priority") {
		patch.Priority = form.Get("priority")
	}
	if form.Has("assignedTo") {
		patch.AssignedTo = form.Get("assignedTo")
	}
	if n, err := strconv.Atoi(strings.TrimSpace(form.Get("progress"))); err == nil {
		patch.Progress = n
	}
	return patch
}

// writeCSVAttachment sends a ticket file as a download.
func writeCSVAttachment(w http.ResponseWriter, name, exportID, body string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if exportID != "" {
		w.Header().Set("X-Export-ID", exportID)
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}

// handleSettings renders the preferences form.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	p := s.page(r, "Settings", view.NavSettings)
	s.render(w, r, http.StatusOK, view.Settings(view.SettingsData{
		Page:      p,
		Settings:  s.service.Settings(),
		Languages: s.service.Languages(),
	}))
}

// handleSaveSettings applies the submitted preferences and downloads the
// resulting settings document.
func (s *Server) handleSaveSettings(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	st := settingsFromForm(r, s.service.Settings())
	data, err := s.service.SaveSettings(WithRequestMetadata(r.Context(), r), st)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+settings.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// settingsFromForm overlays the form on current. Empty selects keep the
// current value; unchecked boxes are absent from the form and mean false.
func settingsFromForm(r *http.Request, current settings.Settings) settings.Settings {
	form := r.PostForm
	st := current
	set := func(dst *string, key string) {
		if v := strings.TrimSpace(form.Get(key)); v != "" {
			*dst = v
		}
	}
	set(&st.Language, "language")
	set(&st.DateFormat, "dateFormat")
	set(&st.NumberFormat, "numberFormat")
	set(&st.Timezone, "timezone")
	set(&st.Theme, "theme")
	st.Notifications.Email = form.Get("notifEmail") == "on"
	st.Notifications.StatusChange = form.Get("notifStatus") == "on"
	return st
}

// handleNotFound renders 404 as JSON or as a notice page.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	p := s.page(r, "Not found", "")
	s.render(w, r, http.StatusNotFound, view.Message(p,
		p.T.Text("error.notFound", "Page not found"),
		r.URL.Path,
		"",
	))
}
