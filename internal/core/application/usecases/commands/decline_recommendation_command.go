package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var ErrDeclineRecommendationCommandIsNotConstructed = errors.New(
	"DeclineRecommendationCommand must be created via NewDeclineRecommendationCommand constructor",
)

// DeclineRecommendationCommand records a driver passing on an offer, with an
// optional reason.
type DeclineRecommendationCommand struct { //nolint:recvcheck //using for validation
	recommendationID kernel.UUID
	reason           string

	guard guard.ConstructorGuard
}

// NewDeclineRecommendationCommand creates a command marking an offer declined.
func NewDeclineRecommendationCommand(recommendationID kernel.UUID, reason string) (DeclineRecommendationCommand, error) {
	command := DeclineRecommendationCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := command.setRecommendationID(recommendationID); err != nil {
		return DeclineRecommendationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineRecommendationCommand) Validate() error {
	return c.guard.Validate(ErrDeclineRecommendationCommandIsNotConstructed)
}

// RecommendationID returns the identifier of the declined recommendation.
func (c DeclineRecommendationCommand) RecommendationID() kernel.UUID {
	return c.recommendationID
}

// Reason returns the decline reason, possibly empty.
func (c DeclineRecommendationCommand) Reason() string {
	return c.reason
}

func (c *DeclineRecommendationCommand) setRecommendationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.recommendationID = id
	return nil
}
