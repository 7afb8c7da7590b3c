package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var (
	ErrUpdateMatchCommandIsNotConstructed = errors.New(
		"UpdateMatchCommand must be created via NewUpdateMatchCommand constructor",
	)
	ErrNoFieldsToUpdate = errors.New("at least one field to update is required")
)

// UpdateMatchCommand represents a partial update of a match's mutable fields.
// Nil pointers mean "leave unchanged". Status is never updated this way; the
// lifecycle commands own status transitions.
type UpdateMatchCommand struct { //nolint:recvcheck //using for validation
	matchID      kernel.UUID
	proposedRate *float64
	score        *float64
	scoreFactors map[string]float64

	guard guard.ConstructorGuard
}

// NewUpdateMatchCommand creates a command to update a match's proposed rate
// and/or score. At least one field must be supplied.
func NewUpdateMatchCommand(
	matchID kernel.UUID,
	proposedRate *float64,
	score *float64,
	scoreFactors map[string]float64,
) (UpdateMatchCommand, error) {
	command := UpdateMatchCommand{
		proposedRate: proposedRate,
		score:        score,
		scoreFactors: scoreFactors,
		guard:        guard.NewConstructorGuard(),
	}

	if err := command.setMatchID(matchID); err != nil {
		return UpdateMatchCommand{}, err
	}

	if proposedRate == nil && score == nil {
		return UpdateMatchCommand{}, ErrNoFieldsToUpdate
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateMatchCommand) Validate() error {
	return c.guard.Validate(ErrUpdateMatchCommandIsNotConstructed)
}

// MatchID returns the identifier of the match to update.
func (c UpdateMatchCommand) MatchID() kernel.UUID {
	return c.matchID
}

// ProposedRate returns the new proposed rate, or nil to leave it unchanged.
func (c UpdateMatchCommand) ProposedRate() *float64 {
	return c.proposedRate
}

// Score returns the new efficiency score, or nil to leave it unchanged.
func (c UpdateMatchCommand) Score() *float64 {
	return c.score
}

// ScoreFactors returns the new score sub-factors, applied with Score.
func (c UpdateMatchCommand) ScoreFactors() map[string]float64 {
	return c.scoreFactors
}

func (c *UpdateMatchCommand) setMatchID(matchID kernel.UUID) error {
	if err := matchID.Validate(); err != nil {
		return err
	}

	c.matchID = matchID
	return nil
}
