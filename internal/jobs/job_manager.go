package jobs

import (
	"fmt"
	"log/slog"

	"freightmatch/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	reservationSweepJob    *ReservationSweepJob
	recommendationSweepJob *RecommendationSweepJob
}

// NewJobManager creates a job manager running both expiration sweeps on the
// given cron schedule.
func NewJobManager(
	reservationSweepHandler *commands.ProcessExpiredReservationsCommandHandler,
	recommendationSweepHandler *commands.ProcessExpiredRecommendationsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		reservationSweepJob:    NewReservationSweepJob(reservationSweepHandler, schedule, logger),
		recommendationSweepJob: NewRecommendationSweepJob(recommendationSweepHandler, schedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.reservationSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start reservation sweep job: %w", err)
	}

	if err := jm.recommendationSweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.reservationSweepJob.Stop()
		return fmt.Errorf("failed to start recommendation sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.reservationSweepJob.Stop()
	jm.recommendationSweepJob.Stop()
}
