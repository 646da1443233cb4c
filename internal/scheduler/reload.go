package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Reloader re-imports the songbook and returns the import report.
type Reloader interface {
	Reload(ctx context.Context) (string, error)
}

var scheduleParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a five field cron expression.
func ValidateSchedule(schedule string) error {
	if _, err := scheduleParser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", schedule, err)
	}
	return nil
}

// ReloadScheduler periodically re-imports the songbook CSV.
type ReloadScheduler struct {
	reloader Reloader
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	runMu     sync.Mutex
	lastRun   time.Time
	lastErr   error
}

// NewReloadScheduler creates a scheduler; an empty schedule disables it.
func NewReloadScheduler(reloader Reloader, schedule string) *ReloadScheduler {
	return &ReloadScheduler{
		reloader: reloader,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(scheduleParser)),
	}
}

// Start registers the reload job and starts the cron loop. The scheduler
// stops when ctx is cancelled.
func (s *ReloadScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if s.schedule == "" {
		log.Printf("Reload scheduler: disabled")
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return err
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		if err := s.RunNow(ctx); err != nil {
			log.Printf("Catalog reload: failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reload job: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true

	log.Printf("Reload scheduler: started with schedule '%s'. Next run: %v", s.schedule, s.nextRunLocked())

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running reload and stops the cron loop.
func (s *ReloadScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.cron.Remove(s.entryID)
	s.isRunning = false

	log.Printf("Reload scheduler: stopped")
}

// RunNow reloads immediately. Concurrent runs are serialized.
func (s *ReloadScheduler) RunNow(ctx context.Context) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	diagnostics, err := s.reloader.Reload(ctx)
	s.lastRun = start
	s.lastErr = err
	if err != nil {
		return err
	}

	log.Printf("Catalog reload: finished in %v (%d bytes of diagnostics)",
		time.Since(start).Round(time.Millisecond), len(diagnostics))
	return nil
}

// LastRun returns the start time and error of the most recent reload.
func (s *ReloadScheduler) LastRun() (time.Time, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.lastRun, s.lastErr
}

// IsRunning returns whether the cron loop is active.
func (s *ReloadScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next reload will occur.
func (s *ReloadScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isRunning {
		return nil
	}
	t := s.nextRunLocked()
	if t.IsZero() {
		return nil
	}
	return &t
}

func (s *ReloadScheduler) nextRunLocked() time.Time {
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			return entry.Next
		}
	}
	return time.Time{}
}
