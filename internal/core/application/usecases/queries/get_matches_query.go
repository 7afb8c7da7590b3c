package queries

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/pkg/guard"
)

var (
	ErrGetMatchesQueryIsNotConstructed = errors.New(
		"GetMatchesQuery must be created via NewGetMatchesForDriverQuery or NewGetMatchesForLoadQuery constructor",
	)
)

// GetMatchesQuery retrieves the matches referencing a driver or a load,
// optionally narrowed to a set of statuses. Exactly one of the two scopes is
// set, depending on the constructor used.
type GetMatchesQuery struct {
	guard    guard.ConstructorGuard
	driverID kernel.UUID
	loadID   kernel.UUID
	statuses []match.Status
}

// NewGetMatchesForDriverQuery creates a query for the matches referencing a driver.
// An empty statuses slice means no status filter.
func NewGetMatchesForDriverQuery(driverID kernel.UUID, statuses []match.Status) (GetMatchesQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetMatchesQuery{}, err
	}
	if err := validateStatuses(statuses); err != nil {
		return GetMatchesQuery{}, err
	}

	return GetMatchesQuery{
		guard:    guard.NewConstructorGuard(),
		driverID: driverID,
		statuses: append([]match.Status(nil), statuses...),
	}, nil
}

// NewGetMatchesForLoadQuery creates a query for the matches referencing a load.
// An empty statuses slice means no status filter.
func NewGetMatchesForLoadQuery(loadID kernel.UUID, statuses []match.Status) (GetMatchesQuery, error) {
	if err := loadID.Validate(); err != nil {
		return GetMatchesQuery{}, err
	}
	if err := validateStatuses(statuses); err != nil {
		return GetMatchesQuery{}, err
	}

	return GetMatchesQuery{
		guard:    guard.NewConstructorGuard(),
		loadID:   loadID,
		statuses: append([]match.Status(nil), statuses...),
	}, nil
}

// Validate ensures the query was created through a constructor.
func (q GetMatchesQuery) Validate() error {
	return q.guard.Validate(ErrGetMatchesQueryIsNotConstructed)
}

// DriverID returns the driver scope, zero when the query is load-scoped.
func (q GetMatchesQuery) DriverID() kernel.UUID {
	return q.driverID
}

// LoadID returns the load scope, zero when the query is driver-scoped.
func (q GetMatchesQuery) LoadID() kernel.UUID {
	return q.loadID
}

// Statuses returns the status filter, empty when unfiltered.
func (q GetMatchesQuery) Statuses() []match.Status {
	return append([]match.Status(nil), q.statuses...)
}

func validateStatuses(statuses []match.Status) error {
	for _, s := range statuses {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
