package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var ErrAcceptRecommendationCommandIsNotConstructed = errors.New(
	"AcceptRecommendationCommand must be created via NewAcceptRecommendationCommand constructor",
)

// AcceptRecommendationCommand records a driver's interest in an offer.
// Accepting the recommendation does not commit the driver to the match;
// that happens through the reserve and accept match operations.
type AcceptRecommendationCommand struct { //nolint:recvcheck //using for validation
	recommendationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptRecommendationCommand creates a command marking an offer accepted.
func NewAcceptRecommendationCommand(recommendationID kernel.UUID) (AcceptRecommendationCommand, error) {
	command := AcceptRecommendationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setRecommendationID(recommendationID); err != nil {
		return AcceptRecommendationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptRecommendationCommand) Validate() error {
	return c.guard.Validate(ErrAcceptRecommendationCommandIsNotConstructed)
}

// RecommendationID returns the identifier of the accepted recommendation.
func (c AcceptRecommendationCommand) RecommendationID() kernel.UUID {
	return c.recommendationID
}

func (c *AcceptRecommendationCommand) setRecommendationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.recommendationID = id
	return nil
}
