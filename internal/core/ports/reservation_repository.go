package ports

import (
	"context"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/reservation"
)

// ReservationRepository defines the persistence contract for reservation
// aggregates. "Active" in the lookup methods always means status Active AND
// expiry strictly after the supplied instant; callers must treat these
// lookups as authoritative over the raw expiry timestamp, since the sweeper
// only lapses records at its own interval.
type ReservationRepository interface {
	// Add persists a new reservation to storage.
	Add(ctx context.Context, aggregate *reservation.Reservation) error

	// Get retrieves a reservation by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error)

	// GetActiveByMatch retrieves the active, unexpired reservation holding
	// the given match. Returns an ObjectNotFound error if there is none.
	GetActiveByMatch(ctx context.Context, matchID kernel.UUID, now time.Time) (*reservation.Reservation, error)

	// GetActiveByDriver retrieves the active, unexpired reservation held by
	// the given driver across all loads.
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID, now time.Time) (*reservation.Reservation, error)

	// GetActiveByLoad retrieves the active, unexpired reservation holding
	// the given load across all drivers.
	GetActiveByLoad(ctx context.Context, loadID kernel.UUID, now time.Time) (*reservation.Reservation, error)

	// HasActiveConflict reports whether an active, unexpired reservation
	// exists that would collide with a new hold by driverID on loadID:
	// the driver already holding a different load, or the load already held
	// by a different driver.
	HasActiveConflict(ctx context.Context, driverID kernel.UUID, loadID kernel.UUID, now time.Time) (bool, error)

	// GetAllExpired retrieves reservations still marked Active whose expiry
	// is at or before the given instant.
	GetAllExpired(ctx context.Context, now time.Time) ([]*reservation.Reservation, error)

	// UpdateFrom persists the aggregate's current state conditionally on the
	// stored row still having the prior status. Zero rows affected maps to a
	// Conflict error; a missing row maps to ObjectNotFound.
	UpdateFrom(ctx context.Context, aggregate *reservation.Reservation, prior reservation.Status) error
}
