package commands

import (
	"errors"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/pkg/guard"
)

var (
	ErrReserveMatchCommandIsNotConstructed = errors.New(
		"ReserveMatchCommand must be created via NewReserveMatchCommand constructor",
	)
	ErrTTLIsInvalid = errors.New("ttl must be greater than 0")
)

// ReserveMatchCommand represents a driver placing a time-bounded exclusive
// hold on a match before accepting it.
//
// Example:
//
//	cmd, err := NewReserveMatchCommand(kernel.NewUUID(), matchID, driverID, 15*time.Minute)
//	if err != nil {
//	    return err
//	}
//
//	handler := NewReserveMatchCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("reservation failed: %w", err)
//	}
type ReserveMatchCommand struct { //nolint:recvcheck //using for validation
	reservationID kernel.UUID
	matchID       kernel.UUID
	driverID      kernel.UUID
	ttl           time.Duration

	guard guard.ConstructorGuard
}

// NewReserveMatchCommand creates a command to place a hold on a match.
// The ttl must be positive; callers apply their own default before
// constructing the command.
func NewReserveMatchCommand(
	reservationID kernel.UUID,
	matchID kernel.UUID,
	driverID kernel.UUID,
	ttl time.Duration,
) (ReserveMatchCommand, error) {
	command := ReserveMatchCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setReservationID(reservationID),
		command.setMatchID(matchID),
		command.setDriverID(driverID),
		command.setTTL(ttl),
	); err != nil {
		return ReserveMatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c ReserveMatchCommand) Validate() error {
	return c.guard.Validate(ErrReserveMatchCommandIsNotConstructed)
}

// ReservationID returns the identifier for the new reservation.
func (c ReserveMatchCommand) ReservationID() kernel.UUID {
	return c.reservationID
}

// MatchID returns the identifier of the match being held.
func (c ReserveMatchCommand) MatchID() kernel.UUID {
	return c.matchID
}

// DriverID returns the identifier of the driver placing the hold.
func (c ReserveMatchCommand) DriverID() kernel.UUID {
	return c.driverID
}

// TTL returns how long the hold lasts.
func (c ReserveMatchCommand) TTL() time.Duration {
	return c.ttl
}

func (c *ReserveMatchCommand) setReservationID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.reservationID = id
	return nil
}

func (c *ReserveMatchCommand) setMatchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.matchID = id
	return nil
}

func (c *ReserveMatchCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *ReserveMatchCommand) setTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return ErrTTLIsInvalid
	}

	c.ttl = ttl
	return nil
}
