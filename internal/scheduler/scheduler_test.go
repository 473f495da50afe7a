package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	applogger "FarmPulse/pkg/logger"
)

func testLogger(t *testing.T) *applogger.Logger {
	t.Helper()
	log, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestCheckDueFiresOncePerOccurrence(t *testing.T) {
	s := New(testLogger(t), time.Minute)
	runs := 0
	if err := s.Register("daily", Daily{Hour: 8}, func(ctx context.Context) error {
		runs++
		return nil
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	base := time.Date(2024, time.October, 15, 7, 0, 0, 0, time.UTC)
	s.jobs[0].lastRun = base

	// Before the occurrence: nothing fires.
	s.checkDue(context.Background(), base.Add(30*time.Minute))
	if runs != 0 {
		t.Fatalf("fired before occurrence")
	}

	// A late tick past 08:00 fires exactly once.
	s.checkDue(context.Background(), base.Add(90*time.Minute))
	s.checkDue(context.Background(), base.Add(95*time.Minute))
	if runs != 1 {
		t.Fatalf("expected 1 run, got %d", runs)
	}

	// Next day's occurrence fires again.
	s.checkDue(context.Background(), base.Add(25*time.Hour))
	if runs != 2 {
		t.Fatalf("expected 2 runs, got %d", runs)
	}
}

func TestRunNowDoesNotAdvanceSchedule(t *testing.T) {
	s := New(testLogger(t), time.Minute)
	runs := 0
	_ = s.Register("daily", Daily{Hour: 8}, func(ctx context.Context) error {
		runs++
		return nil
	})

	base := time.Date(2024, time.October, 15, 7, 0, 0, 0, time.UTC)
	s.jobs[0].lastRun = base

	if err := s.RunNow(context.Background(), "daily"); err != nil {
		t.Fatalf("run now: %v", err)
	}
	if runs != 1 {
		t.Fatalf("manual run missing")
	}

	// The scheduled 08:00 occurrence still fires.
	s.checkDue(context.Background(), base.Add(2*time.Hour))
	if runs != 2 {
		t.Fatalf("manual run consumed the scheduled occurrence")
	}
}

func TestRunNowUnknownJob(t *testing.T) {
	s := New(testLogger(t), time.Minute)
	if err := s.RunNow(context.Background(), "nope"); err == nil {
		t.Fatalf("expected error for unknown job")
	}
}

func TestJobFailuresAreIsolated(t *testing.T) {
	s := New(testLogger(t), time.Minute)
	ran := false
	_ = s.Register("panics", Daily{Hour: 8}, func(ctx context.Context) error {
		panic("boom")
	})
	_ = s.Register("errors", Daily{Hour: 8}, func(ctx context.Context) error {
		return errors.New("nope")
	})
	_ = s.Register("healthy", Daily{Hour: 8}, func(ctx context.Context) error {
		ran = true
		return nil
	})

	base := time.Date(2024, time.October, 15, 7, 0, 0, 0, time.UTC)
	for _, j := range s.jobs {
		j.lastRun = base
	}

	s.checkDue(context.Background(), base.Add(2*time.Hour))
	if !ran {
		t.Fatalf("healthy job blocked by failing siblings")
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	s := New(testLogger(t), time.Minute)
	_ = s.Register("job", Daily{Hour: 8}, func(ctx context.Context) error { return nil })
	if err := s.Register("job", Daily{Hour: 9}, func(ctx context.Context) error { return nil }); err == nil {
		t.Fatalf("duplicate registration must fail")
	}
}

func TestStartStopLifecycle(t *testing.T) {
	s := New(testLogger(t), 10*time.Millisecond)
	_ = s.Register("noop", Daily{Hour: 8}, func(ctx context.Context) error { return nil })

	ctx := context.Background()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := s.Start(ctx); err == nil {
		t.Fatalf("double start must fail")
	}

	s.Stop()
	s.Stop() // idempotent
}

func TestJobsListsRegistrationOrder(t *testing.T) {
	s := New(testLogger(t), time.Minute)
	_ = s.Register("b", Daily{Hour: 8}, func(ctx context.Context) error { return nil })
	_ = s.Register("a", Daily{Hour: 9}, func(ctx context.Context) error { return nil })

	names := s.Jobs()
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Fatalf("unexpected job list %v", names)
	}
}
