package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var ErrViewRecommendationCommandIsNotConstructed = errors.New(
	"ViewRecommendationCommand must be created via NewViewRecommendationCommand constructor",
)

// ViewRecommendationCommand records that a driver has seen an offer.
// Viewing an already-viewed recommendation is a harmless repeat.
type ViewRecommendationCommand struct { //nolint:recvcheck //using for validation
	recommendationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewViewRecommendationCommand creates a command marking an offer as seen.
func NewViewRecommendationCommand(recommendationID kernel.UUID) (ViewRecommendationCommand, error) {
	command := ViewRecommendationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setRecommendationID(recommendationID); err != nil {
		return ViewRecommendationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ViewRecommendationCommand) Validate() error {
	return c.guard.Validate(ErrViewRecommendationCommandIsNotConstructed)
}

// RecommendationID returns the identifier of the viewed recommendation.
func (c ViewRecommendationCommand) RecommendationID() kernel.UUID {
	return c.recommendationID
}

func (c *ViewRecommendationCommand) setRecommendationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.recommendationID = id
	return nil
}
