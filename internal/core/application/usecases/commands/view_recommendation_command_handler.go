package commands

import (
	"context"
	"time"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/core/ports"
)

// ViewRecommendationCommandHandler marks a recommendation as seen by the
// driver. Repeat views keep the first viewed-at timestamp and publish no
// further events; viewing a terminal recommendation is a Conflict.
type ViewRecommendationCommandHandler struct {
	uowFactory RecommendationUoWFactory
	publisher  ports.EventPublisher
}

// NewViewRecommendationCommandHandler creates a handler for view operations.
func NewViewRecommendationCommandHandler(
	uowFactory RecommendationUoWFactory,
	publisher ports.EventPublisher,
) ViewRecommendationCommandHandler {
	return ViewRecommendationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the view command.
func (h *ViewRecommendationCommandHandler) Handle(ctx context.Context, cmd ViewRecommendationCommand) error {
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

	if rec.Status() == recommendation.Viewed {
		return uow.Commit(ctx)
	}

	prior := rec.Status()
	if err = rec.MarkViewed(time.Now().UTC()); err != nil {
		return err
	}

	if err = repo.UpdateFrom(ctx, rec, prior); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishRecommendationEvent(ctx, h.publisher, events.TypeRecommendationViewed, rec)

	return nil
}
