package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/Marga-Ghale/ora-identity-services/internal/logger"
	"github.com/robfig/cron/v3"
)

const refreshTimeout = 30 * time.Second

// KeyRefresher reloads signing keys from the identity platform.
type KeyRefresher interface {
	Refresh(ctx context.Context) error
}

// Scheduler handles scheduled tasks
type Scheduler struct {
	cron *cron.Cron
	keys KeyRefresher
}

// NewScheduler creates a new scheduler. Overlapping runs of the same job are
// skipped.
func NewScheduler(keys KeyRefresher) *Scheduler {
	log := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(log),
			cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
		),
		keys: keys,
	}
}

// Start registers the jobs and starts the scheduler. refreshSpec uses the
// robfig/cron syntax, e.g. "@every 1h" or "0 * * * *".
func (s *Scheduler) Start(refreshSpec string) error {
	if s.keys != nil {
		if _, err := s.cron.AddFunc(refreshSpec, func() {
			logger.L().Debug("[Cron] Refreshing session signing keys...")
			s.refreshKeys()
		}); err != nil {
			return fmt.Errorf("invalid key refresh schedule %q: %w", refreshSpec, err)
		}
	}

	s.cron.Start()
	logger.L().Infof("[Cron] Scheduler started with %d job(s)", len(s.cron.Entries()))
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	logger.L().Info("[Cron] Scheduler stopped")
}

func (s *Scheduler) refreshKeys() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := s.keys.Refresh(ctx); err != nil {
		logger.L().Errorf("[Cron] Failed to refresh signing keys: %v", err)
		return
	}
	logger.L().Debug("[Cron] Signing keys refreshed")
}

// cronLogger routes robfig/cron's own logging through zap.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.L().Debugw("[Cron] "+msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.L().Errorw("[Cron] "+msg, append(keysAndValues, "error", err)...)
}
