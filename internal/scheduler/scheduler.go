package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/Kamar-Folarin/github-release-tracker/internal/config"
	"github.com/Kamar-Folarin/github-release-tracker/internal/models"
)

// BulkSyncer is the operation the scheduler triggers on every tick
type BulkSyncer interface {
	SyncAllRepositories(ctx context.Context) (*models.BulkSyncResult, error)
}

// Scheduler runs a bulk sync every interval. Ticks are not serialized: a
// slow run may overlap the next one.
type Scheduler struct {
	cron     *cron.Cron
	interval time.Duration
	syncer   BulkSyncer
	logger   *logrus.Logger
	cancel   context.CancelFunc
}

func New(syncer BulkSyncer, cfg *config.SyncConfig, logger *logrus.Logger) *Scheduler {
	cronLogger := cron.PrintfLogger(logger)
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cronLogger), cron.WithChain(cron.Recover(cronLogger))),
		interval: cfg.Interval,
		syncer:   syncer,
		logger:   logger,
	}
}

// Spec describes the schedule in cron descriptor form
func (s *Scheduler) Spec() string {
	return fmt.Sprintf("@every %s", s.interval)
}

// Start schedules the periodic sync. Jobs run with a context derived from
// ctx that Stop cancels.
func (s *Scheduler) Start(ctx context.Context) {
	jobCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.cron.Schedule(cron.Every(s.interval), cron.FuncJob(func() {
		s.RunOnce(jobCtx)
	}))
	s.cron.Start()

	s.logger.WithField("schedule", s.Spec()).Info("Scheduled periodic release sync")
}

// Stop cancels running jobs and waits for them to return
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	<-s.cron.Stop().Done()
	s.logger.Info("Stopped periodic release sync")
}

// RunOnce performs a single bulk sync and logs its outcome
func (s *Scheduler) RunOnce(ctx context.Context) {
	result, err := s.syncer.SyncAllRepositories(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Scheduled sync failed")
		return
	}
	s.logger.WithFields(logrus.Fields{
		"total":    result.Total,
		"synced":   result.Synced,
		"failed":   result.Failed,
		"duration": result.FinishedAt.Sub(result.StartedAt).String(),
	}).Info("Scheduled sync completed")
}
