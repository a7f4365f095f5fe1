package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JonMunkholm/ticketdesk/internal/config"
	"github.com/JonMunkholm/ticketdesk/internal/core"
	db "github.com/JonMunkholm/ticketdesk/internal/database"
	"github.com/JonMunkholm/ticketdesk/internal/logging"
	"github.com/JonMunkholm/ticketdesk/internal/source"
	"github.com/JonMunkholm/ticketdesk/internal/web"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"source", cfg.Source.Base,
		"audit_db", cfg.Database.Enabled(),
		"audit_sqlite", cfg.Database.SQLiteEnabled(),
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	ctx := context.Background()

	var sink core.AuditSink
	if cfg.Database.Enabled() {
		pool, err := openPool(ctx, cfg.Database)
		if err != nil {
			slog.Error("failed to open audit database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		sink = core.PgSink{DB: pool}
	} else if cfg.Database.SQLiteEnabled() {
		conn, err := db.OpenSQLite(cfg.Database.SQLitePath)
		if err != nil {
			slog.Error("failed to open audit store", "path", cfg.Database.SQLitePath, "error", err)
			os.Exit(1)
		}
		defer conn.Close()
		slog.Info("audit store opened", "path", cfg.Database.SQLitePath)
		sink = core.SQLiteSink{DB: conn}
	}

	fetcher, err := source.New(cfg.Source.Base, cfg.Source.FetchTimeout, cfg.Source.MaxBytes)
	if err != nil {
		slog.Error("invalid ticket source", "error", err)
		os.Exit(1)
	}

	service := core.NewService(sink)
	files := core.Files{
		Tickets:      cfg.Source.TicketsFile,
		Settings:     cfg.Source.SettingsFile,
		Translations: cfg.Source.TranslationsFile,
	}
	// A failed load keeps the server up; the dashboard shows the error.
	if err := service.Load(ctx, fetcher, files); err != nil {
		slog.Warn("tickets unavailable", "error", err)
	}

	server := web.NewServer(service, cfg)

	// Create cancellable context for background jobs
	jobCtx, cancelJobs := context.WithCancel(context.Background())
	go service.StartAuditRetention(jobCtx, core.RetentionConfig{
		Days:          cfg.Database.AuditRetentionDays,
		Schedule:      cfg.Database.AuditSchedule,
		CheckInterval: cfg.Database.AuditCheckInterval,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		// Stop background jobs
		cancelJobs()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	if err := server.Start(); err != nil {
		slog.Info("server stopped", "error", err)
	}
}

// openPool connects to the audit database and makes sure its table exists.
func openPool(ctx context.Context, dc config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(dc.URL)
	if err != nil {
		return nil, err
	}

	poolConfig.MaxConns = int32(dc.MaxConns)
	poolConfig.MinConns = int32(dc.MinConns)
	poolConfig.MaxConnLifetime = dc.MaxConnLifetime
	poolConfig.MaxConnIdleTime = dc.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if u, err := url.Parse(dc.URL); err == nil {
		slog.Info("connected to database", "name", strings.TrimPrefix(u.Path, "/"))
	}

	if err := db.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
