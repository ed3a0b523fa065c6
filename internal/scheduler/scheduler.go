package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// Checkpointer persists state on demand; *season.Service satisfies it.
type Checkpointer interface {
	Checkpoint() error
}

// Scheduler periodically saves the season snapshot so a crash loses at most
// one interval of state.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Checkpointer
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler.
func New(interval time.Duration, target Checkpointer, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	return &Scheduler{
		scheduler: s,
		target:    target,
		interval:  interval,
		logger:    logger,
	}
}

// Start schedules the checkpoint job and starts the underlying scheduler.
// A non-positive interval disables periodic saves.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("scheduler: checkpoint interval not set; periodic saves disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().Do(s.run)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

func (s *Scheduler) run() {
	if err := s.target.Checkpoint(); err != nil {
		s.logger.Warn("scheduler: checkpoint failed", zap.Error(err))
		return
	}
	s.logger.Debug("scheduler: checkpoint saved")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
