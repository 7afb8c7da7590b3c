package queries

import (
	"errors"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/pkg/guard"
)

var (
	ErrGetDriverRecommendationsQueryIsNotConstructed = errors.New(
		"GetDriverRecommendationsQuery must be created via NewGetDriverRecommendationsQuery constructor",
	)
)

// GetDriverRecommendationsQuery retrieves the recommendation feed for a
// driver, optionally narrowed to a set of statuses. The common case is the
// outstanding feed: Active and Viewed offers the driver can still act on.
type GetDriverRecommendationsQuery struct {
	guard    guard.ConstructorGuard
	driverID kernel.UUID
	statuses []recommendation.Status
}

// NewGetDriverRecommendationsQuery creates a recommendation feed query.
// An empty statuses slice means no status filter.
func NewGetDriverRecommendationsQuery(
	driverID kernel.UUID,
	statuses []recommendation.Status,
) (GetDriverRecommendationsQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetDriverRecommendationsQuery{}, err
	}
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return GetDriverRecommendationsQuery{}, err
		}
	}

	return GetDriverRecommendationsQuery{
		guard:    guard.NewConstructorGuard(),
		driverID: driverID,
		statuses: append([]recommendation.Status(nil), statuses...),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverRecommendationsQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverRecommendationsQueryIsNotConstructed)
}

// DriverID returns the driver whose feed is requested.
func (q GetDriverRecommendationsQuery) DriverID() kernel.UUID {
	return q.driverID
}

// Statuses returns the status filter, empty when unfiltered.
func (q GetDriverRecommendationsQuery) Statuses() []recommendation.Status {
	return append([]recommendation.Status(nil), q.statuses...)
}

// RecommendationResponse represents one offer in a driver's feed.
type RecommendationResponse struct {
	ID              kernel.UUID
	MatchID         kernel.UUID
	LoadID          kernel.UUID
	Score           float64
	ProposedRate    float64
	Origin          string
	Destination     string
	EquipmentType   string
	WeightLbs       float64
	EmptyMiles      float64
	LoadedMiles     float64
	DeadheadPercent float64
	Status          string
	ExpiresAt       time.Time
	ViewedAt        *time.Time
	CreatedAt       time.Time
}
