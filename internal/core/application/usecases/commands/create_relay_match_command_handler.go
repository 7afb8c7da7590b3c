package commands

import (
	"context"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/ports"
)

// CreateRelayMatchCommandHandler handles relay match creation. The aggregate
// enforces segment ordering and derives the proposed rate from the segment
// rates.
type CreateRelayMatchCommandHandler struct {
	uowFactory MatchUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateRelayMatchCommandHandler creates a handler for relay match creation.
func NewCreateRelayMatchCommandHandler(uowFactory MatchUoWFactory, publisher ports.EventPublisher) CreateRelayMatchCommandHandler {
	return CreateRelayMatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the relay match creation command.
func (h *CreateRelayMatchCommandHandler) Handle(ctx context.Context, cmd CreateRelayMatchCommand) error {
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

	m, err := match.NewRelayMatch(
		cmd.MatchID(),
		cmd.LoadID(),
		cmd.Score(),
		cmd.ScoreFactors(),
		cmd.Segments(),
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
