package queries

import (
	"errors"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var (
	ErrGetActiveReservationQueryIsNotConstructed = errors.New(
		"GetActiveReservationQuery must be created via one of its constructors",
	)
)

// reservationScope names the column the active-reservation lookup filters on.
type reservationScope string

const (
	scopeMatch  reservationScope = "match_id"
	scopeDriver reservationScope = "driver_id"
	scopeLoad   reservationScope = "load_id"
)

// GetActiveReservationQuery retrieves the active, unexpired reservation for a
// match, a driver, or a load. At most one such reservation can exist per
// scope; exclusivity is enforced at reserve time.
type GetActiveReservationQuery struct {
	guard guard.ConstructorGuard
	scope reservationScope
	id    kernel.UUID
}

// NewGetActiveReservationForMatchQuery creates a query scoped to a match.
func NewGetActiveReservationForMatchQuery(matchID kernel.UUID) (GetActiveReservationQuery, error) {
	return newGetActiveReservationQuery(scopeMatch, matchID)
}

// NewGetActiveReservationForDriverQuery creates a query scoped to a driver.
func NewGetActiveReservationForDriverQuery(driverID kernel.UUID) (GetActiveReservationQuery, error) {
	return newGetActiveReservationQuery(scopeDriver, driverID)
}

// NewGetActiveReservationForLoadQuery creates a query scoped to a load.
func NewGetActiveReservationForLoadQuery(loadID kernel.UUID) (GetActiveReservationQuery, error) {
	return newGetActiveReservationQuery(scopeLoad, loadID)
}

func newGetActiveReservationQuery(scope reservationScope, id kernel.UUID) (GetActiveReservationQuery, error) {
	if err := id.Validate(); err != nil {
		return GetActiveReservationQuery{}, err
	}

	return GetActiveReservationQuery{
		guard: guard.NewConstructorGuard(),
		scope: scope,
		id:    id,
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetActiveReservationQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveReservationQueryIsNotConstructed)
}

// ID returns the identifier the lookup is scoped to.
func (q GetActiveReservationQuery) ID() kernel.UUID {
	return q.id
}

// ReservationResponse represents reservation information for read-side consumers.
type ReservationResponse struct {
	ID        kernel.UUID
	MatchID   kernel.UUID
	DriverID  kernel.UUID
	LoadID    kernel.UUID
	Status    string
	CreatedAt time.Time
	ExpiresAt time.Time
}
