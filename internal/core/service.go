package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/JonMunkholm/ticketdesk/internal/logging"
	"github.com/JonMunkholm/ticketdesk/internal/settings"
	"github.com/JonMunkholm/ticketdesk/internal/ticket"
	"github.com/google/uuid"
)

var (
	// ErrTicketsNotLoaded is returned by every ticket operation until the
	// ticket file has loaded successfully.
	ErrTicketsNotLoaded = errors.New("tickets not loaded")

	// ErrTicketNotFound marks a lookup of an unknown identifier.
	ErrTicketNotFound = errors.New("ticket not found")
)

// editableFields are the fields a save may change.
var editableFields = []string{
	ticket.FieldDescription,
	ticket.FieldStatus,
	ticket.FieldPriority,
	ticket.FieldAssignedTo,
	ticket.FieldProgress,
}

// Service provides the desk's command interface over a ticket store.
// It is safe for concurrent use.
type Service struct {
	mu       sync.RWMutex
	store    *ticket.Store
	filter   string
	loaded   bool
	loadErr  error
	settings settings.Settings
	catalog  settings.Catalog

	audit AuditSink
	now   func() time.Time
}

// NewService creates a Service. A nil sink logs audit entries via slog.
func NewService(audit AuditSink) *Service {
	if audit == nil {
		audit = LogSink{}
	}
	return &Service{
		store:    ticket.NewStore(),
		filter:   ticket.FilterAll,
		settings: settings.Defaults(),
		catalog:  settings.Catalog{},
		audit:    audit,
		now:      time.Now,
	}
}

// SetTickets installs a loaded collection and clears any load error.
func (s *Service) SetTickets(tickets []ticket.Ticket) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Load(tickets)
	s.loaded = true
	s.loadErr = nil
}

// SetLoadError puts the service in the failed-load state.
func (s *Service) SetLoadError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.loadErr = err
}

// LoadErr returns nil once tickets are loaded. Otherwise it returns
// ErrTicketsNotLoaded, wrapping the fetch failure when there was one.
func (s *Service) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErrLocked()
}

func (s *Service) loadErrLocked() error {
	if s.loaded {
		return nil
	}
	if s.loadErr != nil {
		return fmt.Errorf("%w: %w", ErrTicketsNotLoaded, s.loadErr)
	}
	return ErrTicketsNotLoaded
}

// SetSettings replaces the active settings.
func (s *Service) SetSettings(st settings.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = st
}

// SetCatalog replaces the translation catalog.
func (s *Service) SetCatalog(c settings.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
}

// Settings returns the active settings.
func (s *Service) Settings() settings.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Translator returns a translator for lang, or for the settings language
// when lang is empty.
func (s *Service) Translator(lang string) settings.Translator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if lang == "" {
		lang = s.settings.Language
	}
	return s.catalog.Translator(lang)
}

// Catalog returns the translation table of one language, nil when absent.
func (s *Service) Catalog(lang string) (map[string]string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	table, ok := s.catalog[lang]
	return table, ok
}

// Languages returns the languages the catalog translates, sorted.
func (s *Service) Languages() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog.Languages()
}

// OnFilterChanged sets the status filter and returns the visible tickets.
// An empty value means FilterAll.
func (s *Service) OnFilterChanged(value string) ([]ticket.Ticket, error) {
	value = ticket.FilterValue(value)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.filter = value
	if err := s.loadErrLocked(); err != nil {
		return nil, err
	}
	return s.store.FilterByField(ticket.FieldStatus, s.filter), nil
}

// OnSortRequested sorts the collection on field. Requesting the current
// field again inverts the direction; a new field starts ascending. The
// current filter is re-applied to the result.
func (s *Service) OnSortRequested(field string) (ticket.SortState, []ticket.Ticket, error) {
	return s.applySort(func(st *ticket.Store) ticket.SortState { return st.SortBy(field) })
}

// SortBy sorts the collection on field in dir, whatever the current state.
func (s *Service) SortBy(field string, dir ticket.Direction) (ticket.SortState, []ticket.Ticket, error) {
	return s.applySort(func(st *ticket.Store) ticket.SortState { return st.SortTo(field, dir) })
}

func (s *Service) applySort(apply func(*ticket.Store) ticket.SortState) (ticket.SortState, []ticket.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadErrLocked(); err != nil {
		return ticket.SortState{}, nil, err
	}
	state := apply(s.store)
	return state, s.store.FilterByField(ticket.FieldStatus, s.filter), nil
}

// Query filters by status and sorts a copy, leaving the store's order and
// sort state untouched. An empty field keeps store order.
func (s *Service) Query(status, field string, dir ticket.Direction) ([]ticket.Ticket, error) {
	status = ticket.FilterValue(status)

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loadErrLocked(); err != nil {
		return nil, err
	}
	out := s.store.FilterByField(ticket.FieldStatus, status)
	if field != "" {
		ticket.SortStable(out, field, dir)
	}
	return out, nil
}

// SortState returns the active sort.
func (s *Service) SortState() ticket.SortState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.SortState()
}

// Statuses returns the distinct statuses present, for the filter control.
func (s *Service) Statuses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Statuses()
}

// Find returns the first ticket with id.
func (s *Service) Find(id string) (ticket.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.loadErrLocked(); err != nil {
		return ticket.Ticket{}, err
	}
	t, ok := s.store.FindByID(id)
	if !ok {
		return ticket.Ticket{}, fmt.Errorf("%w: %s", ErrTicketNotFound, id)
	}
	return t, nil
}

// SaveResult is the outcome of OnSaveRequested.
type SaveResult struct {
	Found    bool          `json:"found"`
	Ticket   ticket.Ticket `json:"ticket"`
	ExportID string        `json:"exportId,omitempty"`
	CSV      string        `json:"-"`
}

// OnSaveRequested overwrites the editable fields of ticket id and returns
// the serialized collection for download. When id is unknown nothing
// changes and Found is false.
func (s *Service) OnSaveRequested(ctx context.Context, id string, patch ticket.Patch) (SaveResult, error) {
	logger := logging.FromContext(ctx)

	s.mu.Lock()
	if err := s.loadErrLocked(); err != nil {
		s.mu.Unlock()
		return SaveResult{}, err
	}

	before, _ := s.store.FindByID(id)
	if !s.store.UpdateByID(id, patch) {
		s.mu.Unlock()
		logger.Warn("save requested for unknown ticket", "ticket_id", id)
		return SaveResult{Found: false}, nil
	}
	after, _ := s.store.FindByID(id)
	csv := ticket.Serialize(s.store.All())
	s.mu.Unlock()

	exportID := uuid.New().String()
	s.record(ctx, AuditEntry{
		Action:   ActionTicketSave,
		TicketID: id,
		Changes:  changedFields(snapshot(before), snapshot(after)),
		ExportID: exportID,
	})
	logger.Info("ticket saved", "ticket_id", id, "export_id", exportID)

	return SaveResult{Found: true, Ticket: after, ExportID: exportID, CSV: csv}, nil
}

// ExportResult is a serialized snapshot of the collection.
type ExportResult struct {
	ID       string
	FileName string
	CSV      string
}

// Export serializes the whole collection in store order.
func (s *Service) Export(ctx context.Context) (ExportResult, error) {
	s.mu.RLock()
	if err := s.loadErrLocked(); err != nil {
		s.mu.RUnlock()
		return ExportResult{}, err
	}
	csv := ticket.Serialize(s.store.All())
	s.mu.RUnlock()

	id := uuid.New().String()
	s.record(ctx, AuditEntry{Action: ActionExport, ExportID: id})

	return ExportResult{ID: id, FileName: ticket.ExportFileName, CSV: csv}, nil
}

// SaveSettings makes st the active settings and returns the document to
// download.
func (s *Service) SaveSettings(ctx context.Context, st settings.Settings) ([]byte, error) {
	data, err := st.Marshal()
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	s.SetSettings(st)
	s.record(ctx, AuditEntry{Action: ActionSettingsSave})
	return data, nil
}

// AuditLog lists recorded entries when the sink supports reading.
func (s *Service) AuditLog(ctx context.Context, limit, offset int) ([]AuditEntry, error) {
	reader, ok := s.audit.(AuditReader)
	if !ok {
		return nil, ErrAuditDisabled
	}
	return reader.List(ctx, limit, offset)
}

// record fills in the entry's identity and client details and hands it to
// the sink. Failures are logged only.
func (s *Service) record(ctx context.Context, e AuditEntry) {
	e.ID = uuid.New().String()
	e.IPAddress = IPAddressFromContext(ctx)
	e.UserAgent = UserAgentFromContext(ctx)
	e.CreatedAt = s.now()

	if err := s.audit.Record(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("audit record failed",
			"action", e.Action,
			"ticket_id", e.TicketID,
			"error", err,
		)
	}
}

func snapshot(t ticket.Ticket) map[string]string {
	m := make(map[string]string, len(editableFields))
	for _, f := range editableFields {
		m[f] = t.Get(f)
	}
	return m
}
