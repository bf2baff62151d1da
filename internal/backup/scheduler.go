package backup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultInterval between automatic snapshots.
const DefaultInterval = 5 * time.Minute

// Scheduler takes a snapshot at start and then on a fixed interval.
type Scheduler struct {
	mu        sync.Mutex
	cron      *cron.Cron
	service   *Service
	interval  time.Duration
	logger    *zap.Logger
	isRunning bool
}

func NewScheduler(service *Service, interval time.Duration, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		service:  service,
		interval: interval,
		logger:   logger,
	}
}

// Start takes the startup snapshot and schedules the periodic one on a fresh
// cron, so a stopped scheduler can be started again. ctx bounds
// every snapshot the scheduler runs.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if err := s.service.CreateSnapshot(ctx); err != nil {
		s.logger.Error("Startup backup failed", zap.Error(err))
	}

	c := cron.New()
	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := c.AddFunc(spec, func() {
		if err := s.service.CreateSnapshot(ctx); err != nil {
			s.logger.Error("Scheduled backup failed", zap.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("schedule backup %q: %w", spec, err)
	}

	c.Start()
	s.cron = c
	s.isRunning = true
	s.logger.Info("Backup scheduler started", zap.Duration("interval", s.interval))
	return nil
}

// Stop halts scheduling and waits for a running snapshot to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
	s.isRunning = false
	s.logger.Info("Backup scheduler stopped")
}
