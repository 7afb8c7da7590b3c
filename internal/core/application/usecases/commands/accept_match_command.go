package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var (
	ErrAcceptMatchCommandIsNotConstructed = errors.New(
		"AcceptMatchCommand must be created via NewAcceptMatchCommand constructor",
	)
	ErrAcceptedRateIsInvalid = errors.New("accepted rate must not be negative")
)

// AcceptMatchCommand represents a driver committing to a match they hold a
// reservation on, at the given rate.
type AcceptMatchCommand struct { //nolint:recvcheck //using for validation
	matchID      kernel.UUID
	driverID     kernel.UUID
	acceptedRate float64

	guard guard.ConstructorGuard
}

// NewAcceptMatchCommand creates a command recording a driver's acceptance.
func NewAcceptMatchCommand(matchID kernel.UUID, driverID kernel.UUID, acceptedRate float64) (AcceptMatchCommand, error) {
	command := AcceptMatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setMatchID(matchID),
		command.setDriverID(driverID),
		command.setAcceptedRate(acceptedRate),
	); err != nil {
		return AcceptMatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptMatchCommand) Validate() error {
	return c.guard.Validate(ErrAcceptMatchCommandIsNotConstructed)
}

// MatchID returns the identifier of the match being accepted.
func (c AcceptMatchCommand) MatchID() kernel.UUID {
	return c.matchID
}

// DriverID returns the identifier of the accepting driver.
func (c AcceptMatchCommand) DriverID() kernel.UUID {
	return c.driverID
}

// AcceptedRate returns the rate the driver committed at.
func (c AcceptMatchCommand) AcceptedRate() float64 {
	return c.acceptedRate
}

func (c *AcceptMatchCommand) setMatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.matchID = id
	return nil
}

func (c *AcceptMatchCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *AcceptMatchCommand) setAcceptedRate(rate float64) error {
	if rate < 0 {
		return ErrAcceptedRateIsInvalid
	}

	c.acceptedRate = rate
	return nil
}
