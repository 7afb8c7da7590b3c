package commands

import (
	"context"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/core/ports"
	"freightmatch/internal/pkg/errs"
)

// RecommendMatchCommandHandler offers a pending match to its driver.
// Transitions the match to recommended and creates the recommendation record
// in the same transaction, so a driver never sees an offer for a match that
// did not actually move.
type RecommendMatchCommandHandler struct {
	uowFactory MatchRecommendationUoWFactory
	publisher  ports.EventPublisher
}

// NewRecommendMatchCommandHandler creates a handler for match recommendation operations.
func NewRecommendMatchCommandHandler(
	uowFactory MatchRecommendationUoWFactory,
	publisher ports.EventPublisher,
) RecommendMatchCommandHandler {
	return RecommendMatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the recommend command.
// The recommendation copies the score and proposed rate from the match at
// this moment; later re-scoring does not alter what the driver was offered.
func (h *RecommendMatchCommandHandler) Handle(ctx context.Context, cmd RecommendMatchCommand) error {
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

	matchRepo := uow.MatchRepository()
	m, err := matchRepo.Get(ctx, cmd.MatchID())
	if err != nil {
		return err
	}

	// A relay has no top-level driver to offer to; its segments are offered
	// through RecommendRelayMatch.
	if m.Kind() == match.KindRelay {
		return errs.NewConflictError("match", "relay matches are recommended per segment")
	}

	prior := m.Status()
	if err = m.Recommend(); err != nil {
		return err
	}

	rec, err := recommendation.NewRecommendation(
		cmd.RecommendationID(),
		m.ID(),
		m.LoadID(),
		m.DriverID(),
		m.Score(),
		m.ScoreFactors(),
		m.ProposedRate(),
		cmd.LoadSummary(),
		cmd.EmptyMiles(),
		cmd.LoadedMiles(),
		cmd.TTL(),
	)
	if err != nil {
		return err
	}

	if err = matchRepo.UpdateFrom(ctx, m, prior); err != nil {
		return err
	}

	if err = uow.RecommendationRepository().Add(ctx, rec); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishMatchEvent(ctx, h.publisher, events.TypeMatchRecommended, m)
	publishRecommendationEvent(ctx, h.publisher, events.TypeRecommendationCreated, rec)

	return nil
}
