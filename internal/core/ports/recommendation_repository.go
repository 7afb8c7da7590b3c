package ports

import (
	"context"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/recommendation"
)

// RecommendationRepository defines the persistence contract for
// recommendation aggregates.
type RecommendationRepository interface {
	// Add persists a new recommendation to storage.
	Add(ctx context.Context, aggregate *recommendation.Recommendation) error

	// Get retrieves a recommendation by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*recommendation.Recommendation, error)

	// GetByDriver retrieves recommendations offered to the given driver,
	// optionally filtered to the supplied statuses.
	GetByDriver(ctx context.Context, driverID kernel.UUID, statuses []recommendation.Status) ([]*recommendation.Recommendation, error)

	// GetOutstandingByMatch retrieves the Active and Viewed recommendations
	// tied to the given match.
	GetOutstandingByMatch(ctx context.Context, matchID kernel.UUID) ([]*recommendation.Recommendation, error)

	// GetOutstandingByLoad retrieves the Active and Viewed recommendations
	// tied to the given load across all matches.
	GetOutstandingByLoad(ctx context.Context, loadID kernel.UUID) ([]*recommendation.Recommendation, error)

	// GetAllExpired retrieves recommendations still outstanding (Active or
	// Viewed) whose expiry is at or before the given instant.
	GetAllExpired(ctx context.Context, now time.Time) ([]*recommendation.Recommendation, error)

	// UpdateFrom persists the aggregate's current state conditionally on the
	// stored row still having the prior status. Zero rows affected maps to a
	// Conflict error; a missing row maps to ObjectNotFound.
	UpdateFrom(ctx context.Context, aggregate *recommendation.Recommendation, prior recommendation.Status) error
}
