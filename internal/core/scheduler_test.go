package core

import (
	"context"
	"errors"
	"testing"
	"time"
)

// pruningSink counts Prune calls and cancels once enough have run.
type pruningSink struct {
	fakeSink
	calls  int
	days   int
	err    error
	cancel context.CancelFunc
	stopAt int
}

func (p *pruningSink) Prune(ctx context.Context, days int) (int64, error) {
	p.calls++
	p.days = days
	if p.calls >= p.stopAt {
		p.cancel()
	}
	return 3, p.err
}

func TestStartAuditRetention_RunsUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &pruningSink{cancel: cancel, stopAt: 2}
	svc := NewService(sink)

	done := make(chan struct{})
	go func() {
		svc.StartAuditRetention(ctx, RetentionConfig{Days: 30, CheckInterval: time.Millisecond})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("retention job did not stop after cancel")
	}

	if sink.calls < 2 {
		t.Errorf("Prune called %d times, want at least 2", sink.calls)
	}
	if sink.days != 30 {
		t.Errorf("days = %d, want 30", sink.days)
	}
}

func TestStartAuditRetention_FailureKeepsRunning(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sink := &pruningSink{cancel: cancel, stopAt: 2, err: errors.New("connection refused")}
	svc := NewService(sink)
	svc.StartAuditRetention(ctx, RetentionConfig{Days: 1, CheckInterval: time.Millisecond})

	if sink.calls < 2 {
		t.Errorf("Prune called %d times, want at least 2", sink.calls)
	}
}

func TestStartAuditRetention_SinkWithoutPrune(t *testing.T) {
	svc := NewService(&fakeSink{})

	done := make(chan struct{})
	go func() {
		svc.StartAuditRetention(context.Background(), RetentionConfig{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("retention job should return at once for a sink that cannot prune")
	}
}

func TestRetentionConfig_NextRun(t *testing.T) {
	now := time.Date(2024, 3, 4, 10, 15, 0, 0, time.UTC)

	tests := []struct {
		name    string
		cfg     RetentionConfig
		want    time.Time
		wantErr bool
	}{
		{
			name: "interval",
			cfg:  RetentionConfig{CheckInterval: time.Hour},
			want: now.Add(time.Hour),
		},
		{
			name: "daily cron",
			cfg:  RetentionConfig{Schedule: "30 3 * * *", CheckInterval: time.Hour},
			want: time.Date(2024, 3, 5, 3, 30, 0, 0, time.UTC),
		},
		{
			name:    "invalid cron",
			cfg:     RetentionConfig{Schedule: "every day"},
			wantErr: true,
		},
		{
			name:    "cron that never fires",
			cfg:     RetentionConfig{Schedule: "0 0 30 2 *"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := tt.cfg.nextRun()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("nextRun() error = %v", err)
			}
			if got := next(now); !got.Equal(tt.want) {
				t.Errorf("next = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStartAuditRetention_InvalidSchedule(t *testing.T) {
	for _, schedule := range []string{"not cron", "0 0 30 2 *"} {
		t.Run(schedule, func(t *testing.T) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sink := &pruningSink{cancel: cancel, stopAt: 100}
			svc := NewService(sink)

			done := make(chan struct{})
			go func() {
				svc.StartAuditRetention(ctx, RetentionConfig{Days: 30, Schedule: schedule})
				close(done)
			}()

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("retention job kept running")
			}
			if sink.calls != 0 {
				t.Errorf("Prune called %d times with schedule %q", sink.calls, schedule)
			}
		})
	}
}
