package cmd

import "time"

// Config carries all runtime settings loaded from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost            string
	KafkaMatchEventTopic string

	// SweepSchedule is a seconds-granularity cron expression for the
	// expiration sweeps, e.g. "*/30 * * * * *".
	SweepSchedule string

	// DefaultReservationTTL is applied when a reserve request does not
	// specify its own hold duration.
	DefaultReservationTTL time.Duration
}
