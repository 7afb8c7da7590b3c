package jobs

import (
	"context"
	"log/slog"
	"time"

	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/observability"

	"github.com/robfig/cron/v3"
)

// ReservationSweepJob periodically expires reservations whose deadline has
// passed, together with the matches they were holding. A sweep failure is
// logged and retried on the next tick; the job never stops on error.
type ReservationSweepJob struct {
	handler  *commands.ProcessExpiredReservationsCommandHandler
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// NewReservationSweepJob creates the reservation sweep on the given cron
// schedule (seconds-granularity spec, e.g. "*/30 * * * * *").
func NewReservationSweepJob(
	handler *commands.ProcessExpiredReservationsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ReservationSweepJob {
	return &ReservationSweepJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		logger:   logger.With("component", "reservation_sweep_job"),
	}
}

// Start schedules the sweep.
func (j *ReservationSweepJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx := context.Background()
		started := time.Now()

		processed, err := j.handler.Handle(ctx, commands.NewProcessExpiredReservationsCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "reservation sweep failed", "error", err)
			return
		}

		observability.SweepDuration.WithLabelValues("reservations").Observe(time.Since(started).Seconds())
		if processed > 0 {
			observability.SweepProcessedTotal.WithLabelValues("reservations").Add(float64(processed))
			j.logger.InfoContext(ctx, "reservation sweep completed", "processed", processed)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "reservation sweep job started", "schedule", j.schedule)
	return nil
}

// Stop stops the sweep.
func (j *ReservationSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "reservation sweep job stopped")
}
