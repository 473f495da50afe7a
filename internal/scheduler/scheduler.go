package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	applogger "FarmPulse/pkg/logger"
)

// JobFunc is one scheduled unit of work.
type JobFunc func(ctx context.Context) error

type job struct {
	name    string
	trigger Trigger
	run     JobFunc
	lastRun time.Time
}

// Scheduler drives registered jobs from a single ticking goroutine. Jobs run
// serially; a job that panics or errors is isolated and the loop continues.
type Scheduler struct {
	log  *applogger.Logger
	tick time.Duration
	now  func() time.Time

	mu      sync.Mutex
	jobs    []*job
	started bool
	stop    chan struct{}
	done    chan struct{}
}

// New creates a scheduler ticking at the given interval (default one minute).
func New(log *applogger.Logger, tick time.Duration) *Scheduler {
	if tick <= 0 {
		tick = time.Minute
	}
	return &Scheduler{log: log, tick: tick, now: time.Now}
}

// Register adds a job. Must be called before Start.
func (s *Scheduler) Register(name string, trigger Trigger, fn JobFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return fmt.Errorf("scheduler already started")
	}
	for _, j := range s.jobs {
		if j.name == name {
			return fmt.Errorf("job %q already registered", name)
		}
	}
	s.jobs = append(s.jobs, &job{name: name, trigger: trigger, run: fn})
	return nil
}

// Jobs lists the registered job names in registration order.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.jobs))
	for i, j := range s.jobs {
		names[i] = j.name
	}
	return names
}

// Start launches the tick loop. Occurrences that predate Start are not
// replayed: each job's baseline is the start instant.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return fmt.Errorf("scheduler already started")
	}
	s.started = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	start := s.now()
	for _, j := range s.jobs {
		j.lastRun = start
	}
	jobCount := len(s.jobs)
	s.mu.Unlock()

	s.log.Info("scheduler started",
		applogger.Int("jobs", jobCount),
		applogger.Duration("tick", s.tick))

	go s.loop(ctx)
	return nil
}

func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stop:
			return
		case <-ticker.C:
			s.checkDue(ctx, s.now())
		}
	}
}

// checkDue runs every job whose trigger has fired since its last run.
func (s *Scheduler) checkDue(ctx context.Context, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		prev := j.trigger.PrevFire(now)
		if !prev.After(j.lastRun) {
			continue
		}
		j.lastRun = prev
		s.runJob(ctx, j)
	}
}

// RunNow executes one job immediately, bypassing its trigger. The job's
// schedule is unaffected: lastRun is not advanced.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, j := range s.jobs {
		if j.name == name {
			s.runJob(ctx, j)
			return nil
		}
	}
	return fmt.Errorf("unknown job %q", name)
}

// runJob executes with panic isolation. Caller holds s.mu, so jobs never
// overlap each other or a manual trigger.
func (s *Scheduler) runJob(ctx context.Context, j *job) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("job panicked",
				applogger.String("job", j.name),
				applogger.Any("panic", r))
		}
	}()

	start := s.now()
	if err := j.run(ctx); err != nil {
		s.log.Error("job failed",
			applogger.String("job", j.name),
			applogger.Error(err))
		return
	}
	s.log.Info("job complete",
		applogger.String("job", j.name),
		applogger.Duration("took", s.now().Sub(start)))
}

// Stop halts the tick loop and waits for it to exit, bounded to avoid
// hanging shutdown behind a long-running job. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		s.log.Warn("scheduler stop timed out waiting for loop")
	}
	s.log.Info("scheduler stopped")
}
