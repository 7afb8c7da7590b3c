package commands

import (
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/pkg/guard"
)

var (
	ErrCreateMatchCommandIsNotConstructed = errors.New(
		"CreateMatchCommand must be created via NewCreateMatchCommand constructor",
	)
	ErrRelayKindNotAllowed = errors.New("relay matches must be created via CreateRelayMatchCommand")
)

// CreateMatchCommand represents a request to register a new load-driver match
// proposed by the optimization engine. The match starts in pending status.
//
// Example:
//
//	matchID := kernel.NewUUID()
//	cmd, err := NewCreateMatchCommand(matchID, loadID, driverID, vehicleID,
//	    match.KindDirect, 87.5, factors, 1250)
//	if err != nil {
//	    return fmt.Errorf("invalid match data: %w", err)
//	}
//
//	handler := NewCreateMatchCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create match: %w", err)
//	}
type CreateMatchCommand struct { //nolint:recvcheck //using for validation
	matchID      kernel.UUID
	loadID       kernel.UUID
	driverID     kernel.UUID
	vehicleID    kernel.UUID
	kind         match.Kind
	score        float64
	scoreFactors map[string]float64
	proposedRate float64

	guard guard.ConstructorGuard
}

// NewCreateMatchCommand creates a command to register a new match.
// Validates that all entity references are present and the kind is a
// single-driver kind. Returns an error if any validation fails.
func NewCreateMatchCommand(
	matchID kernel.UUID,
	loadID kernel.UUID,
	driverID kernel.UUID,
	vehicleID kernel.UUID,
	kind match.Kind,
	score float64,
	scoreFactors map[string]float64,
	proposedRate float64,
) (CreateMatchCommand, error) {
	command := CreateMatchCommand{
		score:        score,
		scoreFactors: scoreFactors,
		proposedRate: proposedRate,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setMatchID(matchID),
		command.setLoadID(loadID),
		command.setDriverID(driverID),
		command.setVehicleID(vehicleID),
		command.setKind(kind),
	); err != nil {
		return CreateMatchCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateMatchCommandIsNotConstructed if validation fails.
func (c CreateMatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateMatchCommandIsNotConstructed)
}

// MatchID returns the unique identifier for the match.
func (c CreateMatchCommand) MatchID() kernel.UUID {
	return c.matchID
}

// LoadID returns the referenced load's identifier.
func (c CreateMatchCommand) LoadID() kernel.UUID {
	return c.loadID
}

// DriverID returns the referenced driver's identifier.
func (c CreateMatchCommand) DriverID() kernel.UUID {
	return c.driverID
}

// VehicleID returns the referenced vehicle's identifier.
func (c CreateMatchCommand) VehicleID() kernel.UUID {
	return c.vehicleID
}

// Kind returns the match kind.
func (c CreateMatchCommand) Kind() match.Kind {
	return c.kind
}

// Score returns the efficiency score supplied by the optimizer.
func (c CreateMatchCommand) Score() float64 {
	return c.score
}

// ScoreFactors returns the weighted score sub-factors.
func (c CreateMatchCommand) ScoreFactors() map[string]float64 {
	return c.scoreFactors
}

// ProposedRate returns the rate proposed to the driver.
func (c CreateMatchCommand) ProposedRate() float64 {
	return c.proposedRate
}

func (c *CreateMatchCommand) setMatchID(matchID kernel.UUID) error {
	if err := matchID.Validate(); err != nil {
		return err
	}

	c.matchID = matchID
	return nil
}

func (c *CreateMatchCommand) setLoadID(loadID kernel.UUID) error {
	if err := loadID.Validate(); err != nil {
		return err
	}

	c.loadID = loadID
	return nil
}

func (c *CreateMatchCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *CreateMatchCommand) setVehicleID(vehicleID kernel.UUID) error {
	if err := vehicleID.Validate(); err != nil {
		return err
	}

	c.vehicleID = vehicleID
	return nil
}

func (c *CreateMatchCommand) setKind(kind match.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if kind == match.KindRelay {
		return ErrRelayKindNotAllowed
	}

	c.kind = kind
	return nil
}
