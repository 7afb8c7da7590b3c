package commands

import (
	"context"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/ports"
)

// DeclineRecommendationCommandHandler marks an outstanding recommendation as
// declined by the driver.
type DeclineRecommendationCommandHandler struct {
	uowFactory RecommendationUoWFactory
	publisher  ports.EventPublisher
}

// NewDeclineRecommendationCommandHandler creates a handler for recommendation declines.
func NewDeclineRecommendationCommandHandler(
	uowFactory RecommendationUoWFactory,
	publisher ports.EventPublisher,
) DeclineRecommendationCommandHandler {
	return DeclineRecommendationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the decline command.
// Returns a Conflict if the recommendation is already terminal.
func (h *DeclineRecommendationCommandHandler) Handle(ctx context.Context, cmd DeclineRecommendationCommand) error {
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
	if err = rec.MarkDeclined(cmd.Reason()); err != nil {
		return err
	}

	if err = repo.UpdateFrom(ctx, rec, prior); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishRecommendationEvent(ctx, h.publisher, events.TypeRecommendationDeclined, rec)

	return nil
}
