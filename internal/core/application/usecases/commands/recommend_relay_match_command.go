package commands

import (
	"errors"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var ErrRecommendRelayMatchCommandIsNotConstructed = errors.New(
	"RecommendRelayMatchCommand must be created via NewRecommendRelayMatchCommand constructor",
)

// RecommendRelayMatchCommand represents offering a pending relay match to the
// drivers of its segments. The match transitions to recommended once, and one
// recommendation per segment driver is created; each offer carries that
// segment's route endpoints and rate. A non-positive ttl falls back to the
// recommendation default of 24 hours.
type RecommendRelayMatchCommand struct { //nolint:recvcheck //using for validation
	matchID       kernel.UUID
	equipmentType string
	weightLbs     float64
	ttl           time.Duration

	guard guard.ConstructorGuard
}

// NewRecommendRelayMatchCommand creates a command to offer a relay match to
// its segment drivers.
func NewRecommendRelayMatchCommand(
	matchID kernel.UUID,
	equipmentType string,
	weightLbs float64,
	ttl time.Duration,
) (RecommendRelayMatchCommand, error) {
	command := RecommendRelayMatchCommand{
		equipmentType: equipmentType,
		weightLbs:     weightLbs,
		ttl:           ttl,
		guard:         guard.NewConstructorGuard(),
	}

	if err := command.setMatchID(matchID); err != nil {
		return RecommendRelayMatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecommendRelayMatchCommand) Validate() error {
	return c.guard.Validate(ErrRecommendRelayMatchCommandIsNotConstructed)
}

// MatchID returns the identifier of the relay match being offered.
func (c RecommendRelayMatchCommand) MatchID() kernel.UUID {
	return c.matchID
}

// EquipmentType returns the equipment description shown with each offer.
func (c RecommendRelayMatchCommand) EquipmentType() string {
	return c.equipmentType
}

// WeightLbs returns the load weight shown with each offer.
func (c RecommendRelayMatchCommand) WeightLbs() float64 {
	return c.weightLbs
}

// TTL returns the offers' time to live. Non-positive means the default.
func (c RecommendRelayMatchCommand) TTL() time.Duration {
	return c.ttl
}

func (c *RecommendRelayMatchCommand) setMatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.matchID = id
	return nil
}
