package core

// scheduler.go provides background maintenance of the audit table.
//
// When the audit sink supports pruning, entries older than the retention
// window are deleted on startup and then on every tick of the schedule:
// a 5-field cron expression when one is configured, a fixed interval
// otherwise. Failures are logged and the next run tries again.

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// RetentionConfig holds configuration for the audit retention job.
type RetentionConfig struct {
	Days          int           // entries older than this are deleted (default: 90)
	Schedule      string        // cron expression, e.g. "30 3 * * *"; overrides CheckInterval
	CheckInterval time.Duration // how often to run without a schedule (default: 24h)
}

// AuditPruner deletes entries older than a number of days.
type AuditPruner interface {
	Prune(ctx context.Context, days int) (int64, error)
}

// errNeverFires marks a schedule with no matching time, such as "0 0 30 2 *".
var errNeverFires = errors.New("schedule never fires")

// nextRun returns when the job runs after now. A zero time means the
// schedule has no further run.
func (cfg RetentionConfig) nextRun() (func(time.Time) time.Time, error) {
	schedule := strings.TrimSpace(cfg.Schedule)
	if schedule == "" {
		interval := cfg.CheckInterval
		return func(now time.Time) time.Time { return now.Add(interval) }, nil
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	sched, err := parser.Parse(schedule)
	if err != nil {
		return nil, err
	}
	if sched.Next(time.Now()).IsZero() {
		return nil, errNeverFires
	}
	return sched.Next, nil
}

// StartAuditRetention blocks running the retention job until ctx is done.
// It returns immediately when the sink cannot prune or the schedule is
// invalid or never fires.
func (s *Service) StartAuditRetention(ctx context.Context, cfg RetentionConfig) {
	pruner, ok := s.audit.(AuditPruner)
	if !ok {
		return
	}
	if cfg.Days <= 0 {
		cfg.Days = 90
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 24 * time.Hour
	}

	next, err := cfg.nextRun()
	if err != nil {
		slog.Error("invalid audit schedule, retention disabled", "schedule", cfg.Schedule, "error", err)
		return
	}

	slog.Info("audit retention started",
		"retention_days", cfg.Days,
		"schedule", cfg.Schedule,
		"interval", cfg.CheckInterval,
	)

	s.runRetentionJob(ctx, pruner, cfg.Days)

	for {
		now := s.now()
		at := next(now)
		if at.IsZero() {
			slog.Error("audit schedule has no further run, retention stopped", "schedule", cfg.Schedule)
			return
		}
		timer := time.NewTimer(at.Sub(now))

		select {
		case <-ctx.Done():
			timer.Stop()
			slog.Info("audit retention stopped")
			return
		case <-timer.C:
			s.runRetentionJob(ctx, pruner, cfg.Days)
		}
	}
}

func (s *Service) runRetentionJob(ctx context.Context, pruner AuditPruner, days int) {
	start := time.Now()
	purged, err := pruner.Prune(ctx, days)
	if err != nil {
		slog.Error("audit purge failed", "error", err)
		return
	}
	slog.Info("purged audit entries",
		"entries_purged", purged,
		"duration_ms", time.Since(start).Milliseconds(),
	)
}
