// Package jobs provides scheduled background tasks for the match engine.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to run the expiration sweeps at a configurable interval.
//
// # Available Jobs
//
// 1. ReservationSweepJob - Expires lapsed reservations and the matches they hold
// 2. RecommendationSweepJob - Expires lapsed offers and abandoned recommended matches
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(reservationSweepHandler, recommendationSweepHandler, "*/30 * * * * *", logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A sweep pass that fails as a whole is logged and retried at the next tick.
// Per-record failures inside a pass are already isolated by the command
// handlers and surface only as skipped records in the processed count.
package jobs
