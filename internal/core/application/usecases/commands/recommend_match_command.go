package commands

import (
	"errors"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/pkg/guard"
)

var ErrRecommendMatchCommandIsNotConstructed = errors.New(
	"RecommendMatchCommand must be created via NewRecommendMatchCommand constructor",
)

// RecommendMatchCommand represents offering a pending match to its driver.
// The match transitions to recommended and a time-bounded recommendation is
// created, copying the score and rate the driver is shown. A non-positive
// ttl falls back to the recommendation default of 24 hours.
type RecommendMatchCommand struct { //nolint:recvcheck //using for validation
	recommendationID kernel.UUID
	matchID          kernel.UUID
	loadSummary      recommendation.LoadSummary
	emptyMiles       float64
	loadedMiles      float64
	ttl              time.Duration

	guard guard.ConstructorGuard
}

// NewRecommendMatchCommand creates a command to offer a match to its driver.
func NewRecommendMatchCommand(
	recommendationID kernel.UUID,
	matchID kernel.UUID,
	loadSummary recommendation.LoadSummary,
	emptyMiles float64,
	loadedMiles float64,
	ttl time.Duration,
) (RecommendMatchCommand, error) {
	command := RecommendMatchCommand{
		loadSummary: loadSummary,
		emptyMiles:  emptyMiles,
		loadedMiles: loadedMiles,
		ttl:         ttl,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRecommendationID(recommendationID),
		command.setMatchID(matchID),
	); err != nil {
		return RecommendMatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecommendMatchCommand) Validate() error {
	return c.guard.Validate(ErrRecommendMatchCommandIsNotConstructed)
}

// RecommendationID returns the identifier for the new recommendation.
func (c RecommendMatchCommand) RecommendationID() kernel.UUID {
	return c.recommendationID
}

// MatchID returns the identifier of the match being offered.
func (c RecommendMatchCommand) MatchID() kernel.UUID {
	return c.matchID
}

// LoadSummary returns the display fields shown with the offer.
func (c RecommendMatchCommand) LoadSummary() recommendation.LoadSummary {
	return c.loadSummary
}

// EmptyMiles returns the deadhead distance to the load's origin.
func (c RecommendMatchCommand) EmptyMiles() float64 {
	return c.emptyMiles
}

// LoadedMiles returns the loaded distance of the haul.
func (c RecommendMatchCommand) LoadedMiles() float64 {
	return c.loadedMiles
}

// TTL returns the offer's time to live. Non-positive means the default.
func (c RecommendMatchCommand) TTL() time.Duration {
	return c.ttl
}

func (c *RecommendMatchCommand) setRecommendationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.recommendationID = id
	return nil
}

func (c *RecommendMatchCommand) setMatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.matchID = id
	return nil
}
