package commands

import (
	"errors"

	"freightmatch/internal/pkg/guard"
)

var ErrProcessExpiredRecommendationsCommandIsNotConstructed = errors.New(
	"ProcessExpiredRecommendationsCommand must be created via NewProcessExpiredRecommendationsCommand constructor",
)

// ProcessExpiredRecommendationsCommand triggers one sweep over outstanding
// recommendations whose expiry has passed.
type ProcessExpiredRecommendationsCommand struct {
	guard guard.ConstructorGuard
}

// NewProcessExpiredRecommendationsCommand creates a command to sweep expired recommendations.
func NewProcessExpiredRecommendationsCommand() ProcessExpiredRecommendationsCommand {
	return ProcessExpiredRecommendationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ProcessExpiredRecommendationsCommand) Validate() error {
	return c.guard.Validate(ErrProcessExpiredRecommendationsCommandIsNotConstructed)
}
