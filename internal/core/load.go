package core

import (
	"context"

	"github.com/JonMunkholm/ticketdesk/internal/logging"
	"github.com/JonMunkholm/ticketdesk/internal/settings"
	"github.com/JonMunkholm/ticketdesk/internal/source"
	"github.com/JonMunkholm/ticketdesk/internal/ticket"
	"golang.org/x/sync/errgroup"
)

// Files names the documents fetched at startup.
type Files struct {
	Tickets      string
	Settings     string
	Translations string
}

// Load fetches the ticket file and the settings documents concurrently.
// Neither fetch cancels the other: a ticket failure puts the service in
// the failed-load state and is returned, settings failures are logged and
// defaults stay in effect.
func (s *Service) Load(ctx context.Context, f source.Fetcher, files Files) error {
	// No WithContext: a failed fetch must not cancel the other.
	var g errgroup.Group

	g.Go(func() error {
		s.loadTickets(ctx, f, files.Tickets)
		return nil
	})
	g.Go(func() error {
		s.loadSettings(ctx, f, files)
		return nil
	})

	_ = g.Wait()
	return s.LoadErr()
}

func (s *Service) loadTickets(ctx context.Context, f source.Fetcher, name string) {
	logger := logging.FromContext(ctx)

	data, err := f.Fetch(ctx, name)
	if err != nil {
		logger.Error("ticket load failed", "file", name, "error", err)
		s.SetLoadError(err)
		return
	}

	tickets := ticket.Parse(source.Text(data))
	s.SetTickets(tickets)
	logger.Info("tickets loaded", "file", name, "count", len(tickets))
}

// loadSettings reads translations before settings so the settings
// language can be resolved against a complete catalog.
func (s *Service) loadSettings(ctx context.Context, f source.Fetcher, files Files) {
	logger := logging.FromContext(ctx)

	if files.Translations != "" {
		if data, err := f.Fetch(ctx, files.Translations); err != nil {
			logger.Warn("translations unavailable", "file", files.Translations, "error", err)
		} else if catalog, err := settings.ParseCatalog([]byte(source.Text(data))); err != nil {
			logger.Warn("translations invalid", "file", files.Translations, "error", err)
		} else {
			s.SetCatalog(catalog)
			logger.Info("translations loaded", "languages", catalog.Languages())
		}
	}

	if files.Settings != "" {
		if data, err := f.Fetch(ctx, files.Settings); err != nil {
			logger.Warn("settings unavailable, using defaults", "file", files.Settings, "error", err)
		} else if st, err := settings.Parse([]byte(source.Text(data))); err != nil {
			logger.Warn("settings invalid, using defaults", "file", files.Settings, "error", err)
		} else {
			s.SetSettings(st)
			logger.Info("settings loaded", "language", st.Language, "theme", st.Theme)
		}
	}
}
