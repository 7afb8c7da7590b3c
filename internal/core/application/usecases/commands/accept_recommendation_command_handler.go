package commands

import (
	"context"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/ports"
)

// AcceptRecommendationCommandHandler marks an outstanding recommendation as
// accepted by the driver.
type AcceptRecommendationCommandHandler struct {
	uowFactory RecommendationUoWFactory
	publisher  ports.EventPublisher
}

// NewAcceptRecommendationCommandHandler creates a handler for recommendation acceptance.
func NewAcceptRecommendationCommandHandler(
	uowFactory RecommendationUoWFactory,
	publisher ports.EventPublisher,
) AcceptRecommendationCommandHandler {
	return AcceptRecommendationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the accept command.
// Returns a Conflict if the recommendation is already terminal.
func (h *AcceptRecommendationCommandHandler) Handle(ctx context.Context, cmd AcceptRecommendationCommand) error {
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

	repo := uow.RecommendationRepository()
	rec, err := repo.Get(ctx, cmd.RecommendationID())
	if err != nil {
		return err
	}

	prior := rec.Status()
	if err = rec.MarkAccepted(); err != nil {
		return err
	}

	if err = repo.UpdateFrom(ctx, rec, prior); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishRecommendationEvent(ctx, h.publisher, events.TypeRecommendationAccepted, rec)

	return nil
}
