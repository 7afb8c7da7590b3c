package commands

import (
	"context"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/core/ports"
	"freightmatch/internal/pkg/errs"
)

// RecommendRelayMatchCommandHandler offers a pending relay match to all of
// its segment drivers at once. Each driver is offered only their own leg:
// the recommendation carries the segment's origin, destination and rate,
// while the score comes from the relay as a whole.
type RecommendRelayMatchCommandHandler struct {
	uowFactory MatchRecommendationUoWFactory
	publisher  ports.EventPublisher
}

// NewRecommendRelayMatchCommandHandler creates a handler for relay recommendation operations.
func NewRecommendRelayMatchCommandHandler(
	uowFactory MatchRecommendationUoWFactory,
	publisher ports.EventPublisher,
) RecommendRelayMatchCommandHandler {
	return RecommendRelayMatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the relay recommend command. The match transition and all
// per-segment recommendation inserts commit in one transaction; the created
// recommendation identifiers are returned in segment order.
func (h *RecommendRelayMatchCommandHandler) Handle(
	ctx context.Context,
	cmd RecommendRelayMatchCommand,
) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	matchRepo := uow.MatchRepository()
	m, err := matchRepo.Get(ctx, cmd.MatchID())
	if err != nil {
		return nil, err
	}

	if m.Kind() != match.KindRelay {
		return nil, errs.NewConflictError("match", "only relay matches are recommended per segment")
	}

	prior := m.Status()
	if err = m.Recommend(); err != nil {
		return nil, err
	}

	recommendationRepo := uow.RecommendationRepository()
	recs := make([]*recommendation.Recommendation, 0, len(m.Segments()))
	for _, seg := range m.Segments() {
		rec, recErr := recommendation.NewRecommendation(
			kernel.NewUUID(),
			m.ID(),
			m.LoadID(),
			seg.DriverID(),
			m.Score(),
			m.ScoreFactors(),
			seg.Rate(),
			recommendation.LoadSummary{
				Origin:        seg.Origin(),
				Destination:   seg.Destination(),
				EquipmentType: cmd.EquipmentType(),
				WeightLbs:     cmd.WeightLbs(),
			},
			0, 0,
			cmd.TTL(),
		)
		if recErr != nil {
			return nil, recErr
		}
		recs = append(recs, rec)
	}

	if err = matchRepo.UpdateFrom(ctx, m, prior); err != nil {
		return nil, err
	}

	for _, rec := range recs {
		if err = recommendationRepo.Add(ctx, rec); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishMatchEvent(ctx, h.publisher, events.TypeMatchRecommended, m)

	ids := make([]kernel.UUID, 0, len(recs))
	for _, rec := range recs {
		publishRecommendationEvent(ctx, h.publisher, events.TypeRecommendationCreated, rec)
		ids = append(ids, rec.ID())
	}

	return ids, nil
}
