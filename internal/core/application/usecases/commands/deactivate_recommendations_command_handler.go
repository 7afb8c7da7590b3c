package commands

import (
	"context"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/core/ports"
)

// DeactivateRecommendationsCommandHandler bulk-expires the outstanding
// recommendations for a match or load.
type DeactivateRecommendationsCommandHandler struct {
	uowFactory RecommendationUoWFactory
	publisher  ports.EventPublisher
}

// NewDeactivateRecommendationsCommandHandler creates a handler for bulk withdrawal.
func NewDeactivateRecommendationsCommandHandler(
	uowFactory RecommendationUoWFactory,
	publisher ports.EventPublisher,
) DeactivateRecommendationsCommandHandler {
	return DeactivateRecommendationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the deactivation command and returns the number of
// recommendations withdrawn.
func (h *DeactivateRecommendationsCommandHandler) Handle(ctx context.Context, cmd DeactivateRecommendationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.RecommendationRepository()

	lookup := func() ([]*recommendation.Recommendation, error) {
		if !cmd.MatchID().IsZero() {
			return repo.GetOutstandingByMatch(ctx, cmd.MatchID())
		}
		return repo.GetOutstandingByLoad(ctx, cmd.LoadID())
	}

	withdrawn, err := withdrawOutstandingRecommendations(ctx, repo, lookup)
	if err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	for _, rec := range withdrawn {
		publishRecommendationEvent(ctx, h.publisher, events.TypeRecommendationExpired, rec)
	}

	return len(withdrawn), nil
}
