package scheduler

import (
	"fmt"

	"github.com/kometa-tools/utsk/internal/controllers"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler re-runs the pipeline on a cron schedule. Each run stays a
// synchronous batch; cron only decides when the next one starts.
type Scheduler struct {
	cron     *cron.Cron
	pipeline *controllers.Pipeline
	logger   *logrus.Logger
}

// NewScheduler creates a new scheduler
func NewScheduler(pipeline *controllers.Pipeline, logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		pipeline: pipeline,
		logger:   logger,
	}
}

// Start registers the pipeline job and starts the cron loop, running
// one pass immediately
func (s *Scheduler) Start(schedule string) error {
	s.logger.WithField("schedule", schedule).Info("Starting scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		s.runPipeline()
	})
	if err != nil {
		return fmt.Errorf("failed to add pipeline job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Scheduler started")

	// First pass runs right away rather than waiting a full interval
	go s.runPipeline()

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping scheduler")
	s.cron.Stop()
}

// runPipeline executes one scheduled run; failures are logged and the
// schedule keeps going
func (s *Scheduler) runPipeline() {
	s.logger.Info("Running scheduled pipeline")

	if err := s.pipeline.Run(); err != nil {
		s.logger.WithError(err).Error("Scheduled run failed")
	} else {
		s.logger.Info("Scheduled run completed successfully")
	}
}
