package ports

import (
	"context"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
)

// MatchRepository defines the persistence contract for match aggregates.
//
// UpdateFrom is the single write primitive for status-bearing mutations: it
// persists the aggregate only if the stored row still carries the status the
// caller read. Zero rows affected means another writer won the race and the
// repository returns a Conflict error. Matches are never deleted.
type MatchRepository interface {
	// Add persists a new match aggregate to storage.
	Add(ctx context.Context, aggregate *match.Match) error

	// Get retrieves a match aggregate by its unique identifier.
	// Returns an ObjectNotFound error if no such match exists.
	Get(ctx context.Context, id kernel.UUID) (*match.Match, error)

	// GetByDriver retrieves matches referencing the given driver,
	// optionally filtered to the supplied statuses.
	GetByDriver(ctx context.Context, driverID kernel.UUID, statuses []match.Status) ([]*match.Match, error)

	// GetByLoad retrieves matches referencing the given load,
	// optionally filtered to the supplied statuses.
	GetByLoad(ctx context.Context, loadID kernel.UUID, statuses []match.Status) ([]*match.Match, error)

	// GetReservedWithDeadlineBefore retrieves matches still marked Reserved
	// whose reservation deadline is at or before the given instant. The
	// sweeper uses it to reconcile matches whose reservation record has
	// already lapsed.
	GetReservedWithDeadlineBefore(ctx context.Context, deadline time.Time) ([]*match.Match, error)

	// UpdateFrom persists the aggregate's current state conditionally: the
	// write succeeds only if the stored row still has the prior status.
	// Returns a Conflict error when the conditional write affects zero rows
	// and an ObjectNotFound error when the match does not exist at all.
	UpdateFrom(ctx context.Context, aggregate *match.Match, prior match.Status) error
}
