package commands

import (
	"context"
	"log/slog"
	"time"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/core/ports"
)

// ProcessExpiredRecommendationsCommandHandler lapses outstanding
// recommendations whose expiry has passed. When an expired offer was the
// match's reason for being in recommended status, the match is expired in
// the same transaction.
//
// Same failure-isolation contract as the reservation sweep: one record's
// failure is logged and skipped, never aborting the batch.
type ProcessExpiredRecommendationsCommandHandler struct {
	uowFactory MatchRecommendationUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewProcessExpiredRecommendationsCommandHandler creates a handler for the recommendation sweep.
func NewProcessExpiredRecommendationsCommandHandler(
	uowFactory MatchRecommendationUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ProcessExpiredRecommendationsCommandHandler {
	return ProcessExpiredRecommendationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle runs one sweep and returns the number of recommendations
// successfully expired.
func (h *ProcessExpiredRecommendationsCommandHandler) Handle(ctx context.Context, cmd ProcessExpiredRecommendationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	expired, err := h.listExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, rec := range expired {
		if err := h.expireOne(ctx, rec); err != nil {
			h.logger.WarnContext(ctx, "skipping expired recommendation",
				slog.String("recommendation_id", rec.ID().String()),
				slog.String("error", err.Error()))
			continue
		}
		processed++
	}

	return processed, nil
}

func (h *ProcessExpiredRecommendationsCommandHandler) listExpired(ctx context.Context, now time.Time) ([]*recommendation.Recommendation, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.RecommendationRepository().GetAllExpired(ctx, now)
}

func (h *ProcessExpiredRecommendationsCommandHandler) expireOne(ctx context.Context, rec *recommendation.Recommendation) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	prior := rec.Status()
	if err := rec.MarkExpired(); err != nil {
		return err
	}

	recommendationRepo := uow.RecommendationRepository()
	if err := recommendationRepo.UpdateFrom(ctx, rec, prior); err != nil {
		return err
	}

	m, expiredMatch, err := h.expireRecommendedMatch(ctx, uow, rec)
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishRecommendationEvent(ctx, h.publisher, events.TypeRecommendationExpired, rec)
	if expiredMatch {
		publishMatchEvent(ctx, h.publisher, events.TypeMatchExpired, m)
	}

	return nil
}

// expireRecommendedMatch expires the owning match when it sits in
// recommended status and the lapsed offer was its last outstanding one.
// Matches in any other status are left alone; a reserved match is owned by
// the reservation sweep.
func (h *ProcessExpiredRecommendationsCommandHandler) expireRecommendedMatch(
	ctx context.Context,
	uow MatchRecommendationUoW,
	rec *recommendation.Recommendation,
) (*match.Match, bool, error) {
	matchRepo := uow.MatchRepository()

	m, err := matchRepo.Get(ctx, rec.MatchID())
	if err != nil {
		return nil, false, err
	}

	if m.Status() != match.Recommended {
		return nil, false, nil
	}

	remaining, err := uow.RecommendationRepository().GetOutstandingByMatch(ctx, m.ID())
	if err != nil {
		return nil, false, err
	}
	if len(remaining) > 0 {
		return nil, false, nil
	}

	prior := m.Status()
	if err = m.Expire(); err != nil {
		return nil, false, err
	}

	if err = matchRepo.UpdateFrom(ctx, m, prior); err != nil {
		return nil, false, err
	}

	return m, true, nil
}
