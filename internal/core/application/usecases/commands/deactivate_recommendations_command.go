package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var ErrDeactivateRecommendationsCommandIsNotConstructed = errors.New(
	"DeactivateRecommendationsCommand must be created via one of its constructors",
)

// DeactivateRecommendationsCommand bulk-withdraws the outstanding offers tied
// to a match or to a load. Used when the underlying entity leaves a state
// compatible with open offers, for example when another driver took the load.
type DeactivateRecommendationsCommand struct { //nolint:recvcheck //using for validation
	matchID kernel.UUID
	loadID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewDeactivateRecommendationsForMatchCommand creates a command withdrawing
// all outstanding offers of the given match.
func NewDeactivateRecommendationsForMatchCommand(matchID kernel.UUID) (DeactivateRecommendationsCommand, error) {
	if err := matchID.Validate(); err != nil {
		return DeactivateRecommendationsCommand{}, err
	}

	return DeactivateRecommendationsCommand{
		matchID: matchID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewDeactivateRecommendationsForLoadCommand creates a command withdrawing
// all outstanding offers of the given load across every match.
func NewDeactivateRecommendationsForLoadCommand(loadID kernel.UUID) (DeactivateRecommendationsCommand, error) {
	if err := loadID.Validate(); err != nil {
		return DeactivateRecommendationsCommand{}, err
	}

	return DeactivateRecommendationsCommand{
		loadID: loadID,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c DeactivateRecommendationsCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateRecommendationsCommandIsNotConstructed)
}

// MatchID returns the targeted match, or the zero UUID for load-scoped commands.
func (c DeactivateRecommendationsCommand) MatchID() kernel.UUID {
	return c.matchID
}

// LoadID returns the targeted load, or the zero UUID for match-scoped commands.
func (c DeactivateRecommendationsCommand) LoadID() kernel.UUID {
	return c.loadID
}
