package scheduler

import (
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-dashboard/internal/metrics"
	"github.com/i474232898/weather-dashboard/internal/store"
)

const defaultInterval = time.Minute

// Scheduler periodically evicts idle dashboard sessions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	sessions  *store.SessionStore
	metrics   *metrics.Metrics
	logger    *slog.Logger
	interval  time.Duration
}

// New creates a new Scheduler. A non-positive interval falls back to one minute.
func New(sessions *store.SessionStore, interval time.Duration, m *metrics.Metrics, logger *slog.Logger) *Scheduler {
	if interval <= 0 {
		interval = defaultInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
		metrics:   m,
		logger:    logger,
		interval:  interval,
	}
}

// Start schedules the sweep job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.sweep)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) sweep() {
	removed := s.sessions.Purge(time.Now())
	remaining := s.sessions.Len()

	s.metrics.AddPurged(removed)
	s.metrics.SetSessions(remaining)

	if removed > 0 {
		s.logger.Debug("scheduler: purged idle sessions", "removed", removed, "remaining", remaining)
	}
}
