package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/pkg/guard"
)

var (
	ErrCreateRelayMatchCommandIsNotConstructed = errors.New(
		"CreateRelayMatchCommand must be created via NewCreateRelayMatchCommand constructor",
	)
	ErrSegmentsAreRequired = errors.New("a relay match requires at least two segments")
)

// CreateRelayMatchCommand represents a request to register a relay match:
// one load hauled by an ordered chain of driver segments. The proposed rate
// is derived from the segment rates.
type CreateRelayMatchCommand struct { //nolint:recvcheck //using for validation
	matchID      kernel.UUID
	loadID       kernel.UUID
	score        float64
	scoreFactors map[string]float64
	segments     []match.Segment

	guard guard.ConstructorGuard
}

// NewCreateRelayMatchCommand creates a command to register a relay match.
// Segments must already be constructed value objects; ordering and
// contiguity are enforced by the match aggregate.
func NewCreateRelayMatchCommand(
	matchID kernel.UUID,
	loadID kernel.UUID,
	score float64,
	scoreFactors map[string]float64,
	segments []match.Segment,
) (CreateRelayMatchCommand, error) {
	command := CreateRelayMatchCommand{
		score:        score,
		scoreFactors: scoreFactors,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setMatchID(matchID),
		command.setLoadID(loadID),
		command.setSegments(segments),
	); err != nil {
		return CreateRelayMatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRelayMatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateRelayMatchCommandIsNotConstructed)
}

// MatchID returns the unique identifier for the match.
func (c CreateRelayMatchCommand) MatchID() kernel.UUID {
	return c.matchID
}

// LoadID returns the referenced load's identifier.
func (c CreateRelayMatchCommand) LoadID() kernel.UUID {
	return c.loadID
}

// Score returns the efficiency score supplied by the optimizer.
func (c CreateRelayMatchCommand) Score() float64 {
	return c.score
}

// ScoreFactors returns the weighted score sub-factors.
func (c CreateRelayMatchCommand) ScoreFactors() map[string]float64 {
	return c.scoreFactors
}

// Segments returns the ordered driver segments.
func (c CreateRelayMatchCommand) Segments() []match.Segment {
	return c.segments
}

func (c *CreateRelayMatchCommand) setMatchID(matchID kernel.UUID) error {
	if err := matchID.Validate(); err != nil {
		return err
	}

	c.matchID = matchID
	return nil
}

func (c *CreateRelayMatchCommand) setLoadID(loadID kernel.UUID) error {
	if err := loadID.Validate(); err != nil {
		return err
	}

	c.loadID = loadID
	return nil
}

func (c *CreateRelayMatchCommand) setSegments(segments []match.Segment) error {
	if len(segments) < 2 {
		return ErrSegmentsAreRequired
	}

	c.segments = segments
	return nil
}
