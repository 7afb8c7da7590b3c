package jobs

import (
	"context"
	"log/slog"
	"time"

	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/observability"

	"github.com/robfig/cron/v3"
)

// RecommendationSweepJob periodically expires recommendations whose TTL has
// lapsed. Matches left recommended with no remaining outstanding offers are
// expired in the same pass.
type RecommendationSweepJob struct {
	handler  *commands.ProcessExpiredRecommendationsCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewRecommendationSweepJob creates the recommendation sweep on the given
// cron schedule (seconds-granularity spec).
func NewRecommendationSweepJob(
	handler *commands.ProcessExpiredRecommendationsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *RecommendationSweepJob {
	return &RecommendationSweepJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "recommendation_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *RecommendationSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		started := time.Now()

		processed, err := j.handler.Handle(ctx, commands.NewProcessExpiredRecommendationsCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "recommendation sweep failed", "error", err)
			return
		}

		observability.SweepDuration.WithLabelValues("recommendations").Observe(time.Since(started).Seconds())
		if processed > 0 {
			observability.SweepProcessedTotal.WithLabelValues("recommendations").Add(float64(processed))
			j.logger.InfoContext(ctx, "recommendation sweep completed", "processed", processed)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "recommendation sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep.
func (j *RecommendationSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "recommendation sweep job stopped")
}
