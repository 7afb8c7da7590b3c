package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var ErrCancelMatchCommandIsNotConstructed = errors.New(
	"CancelMatchCommand must be created via NewCancelMatchCommand constructor",
)

// CancelMatchCommand represents withdrawing a match from circulation, for
// example because the load was cancelled or re-planned.
type CancelMatchCommand struct { //nolint:recvcheck //using for validation
	matchID kernel.UUID
	reason  string

	guard guard.ConstructorGuard
}

// NewCancelMatchCommand creates a command to cancel a match.
// The reason is optional.
func NewCancelMatchCommand(matchID kernel.UUID, reason string) (CancelMatchCommand, error) {
	command := CancelMatchCommand{
		reason: reason,
		guard:  guard.NewConstructorGuard(),
	}

	if err := command.setMatchID(matchID); err != nil {
		return CancelMatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelMatchCommand) Validate() error {
	return c.guard.Validate(ErrCancelMatchCommandIsNotConstructed)
}

// MatchID returns the identifier of the match being cancelled.
func (c CancelMatchCommand) MatchID() kernel.UUID {
	return c.matchID
}

// Reason returns the cancellation reason, possibly empty.
func (c CancelMatchCommand) Reason() string {
	return c.reason
}

func (c *CancelMatchCommand) setMatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.matchID = id
	return nil
}
