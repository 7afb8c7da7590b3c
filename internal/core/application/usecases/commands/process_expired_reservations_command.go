package commands

import (
	"errors"

	"freightmatch/internal/pkg/guard"
)

var ErrProcessExpiredReservationsCommandIsNotConstructed = errors.New(
	"ProcessExpiredReservationsCommand must be created via NewProcessExpiredReservationsCommand constructor",
)

// ProcessExpiredReservationsCommand triggers one sweep over reservations
// whose expiry has passed. This is a parameterless batch command invoked by
// the scheduler.
//
// Example:
//
//	cmd := NewProcessExpiredReservationsCommand()
//	handler := NewProcessExpiredReservationsCommandHandler(uowFactory, publisher, logger)
//
//	processed, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("sweep failed: %v", err)
//	}
type ProcessExpiredReservationsCommand struct {
	guard guard.ConstructorGuard
}

// NewProcessExpiredReservationsCommand creates a command to sweep expired reservations.
func NewProcessExpiredReservationsCommand() ProcessExpiredReservationsCommand {
	return ProcessExpiredReservationsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ProcessExpiredReservationsCommand) Validate() error {
	return c.guard.Validate(ErrProcessExpiredReservationsCommandIsNotConstructed)
}
