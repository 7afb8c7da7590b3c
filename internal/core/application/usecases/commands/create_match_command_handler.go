package commands

import (
	"context"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/ports"
)

// CreateMatchCommandHandler handles the business logic for match creation.
// New matches start in pending status awaiting recommendation to a driver.
//
// Example:
//
//	handler := NewCreateMatchCommandHandler(uowFactory, publisher)
//	cmd, _ := NewCreateMatchCommand(matchID, loadID, driverID, vehicleID,
//	    match.KindDirect, 87.5, factors, 1250)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("match creation failed: %w", err)
//	}
type CreateMatchCommandHandler struct {
	uowFactory MatchUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateMatchCommandHandler creates a handler for match creation operations.
// Requires a MatchUoWFactory for transactional persistence and an
// EventPublisher for the post-commit lifecycle event.
func NewCreateMatchCommandHandler(uowFactory MatchUoWFactory, publisher ports.EventPublisher) CreateMatchCommandHandler {
	return CreateMatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the match creation command.
// Persists the new match in pending status and publishes a match-created
// event once the transaction has committed.
func (h *CreateMatchCommandHandler) Handle(ctx context.Context, cmd CreateMatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	m, err := match.NewMatch(
		cmd.MatchID(),
		cmd.LoadID(),
		cmd.DriverID(),
		cmd.VehicleID(),
		cmd.Kind(),
		cmd.Score(),
		cmd.ScoreFactors(),
		cmd.ProposedRate(),
	)
	if err != nil {
		return err
	}

	if err = uow.MatchRepository().Add(ctx, m); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishMatchEvent(ctx, h.publisher, events.TypeMatchCreated, m)

	return nil
}
