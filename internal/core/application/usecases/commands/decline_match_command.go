package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var (
	ErrDeclineMatchCommandIsNotConstructed = errors.New(
		"DeclineMatchCommand must be created via NewDeclineMatchCommand constructor",
	)
	ErrDeclineReasonIsRequired = errors.New("decline reason is required")
)

// DeclineMatchCommand represents a driver refusing an offered or held match,
// with a coded reason and optional free-form notes.
type DeclineMatchCommand struct { //nolint:recvcheck //using for validation
	matchID  kernel.UUID
	driverID kernel.UUID
	reason   string
	notes    string

	guard guard.ConstructorGuard
}

// NewDeclineMatchCommand creates a command recording a driver's refusal.
func NewDeclineMatchCommand(matchID kernel.UUID, driverID kernel.UUID, reason string, notes string) (DeclineMatchCommand, error) {
	command := DeclineMatchCommand{
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setMatchID(matchID),
		command.setDriverID(driverID),
		command.setReason(reason),
	); err != nil {
		return DeclineMatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DeclineMatchCommand) Validate() error {
	return c.guard.Validate(ErrDeclineMatchCommandIsNotConstructed)
}

// MatchID returns the identifier of the match being declined.
func (c DeclineMatchCommand) MatchID() kernel.UUID {
	return c.matchID
}

// DriverID returns the identifier of the declining driver.
func (c DeclineMatchCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Reason returns the coded decline reason.
func (c DeclineMatchCommand) Reason() string {
	return c.reason
}

// Notes returns the free-form decline notes.
func (c DeclineMatchCommand) Notes() string {
	return c.notes
}

func (c *DeclineMatchCommand) setMatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.matchID = id
	return nil
}

func (c *DeclineMatchCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *DeclineMatchCommand) setReason(reason string) error {
	if reason == "" {
		return ErrDeclineReasonIsRequired
	}

	c.reason = reason
	return nil
}
