package commands

import (
	"context"
	"errors"
	"time"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/core/ports"
	"freightmatch/internal/pkg/errs"
)

// AcceptMatchCommandHandler converts a driver's reservation into acceptance.
//
// In one transaction: the reservation converts, the match moves to accepted
// with the committed rate, and every outstanding recommendation for the load
// is withdrawn, so no other driver keeps seeing an offer for a load that is
// already taken.
type AcceptMatchCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewAcceptMatchCommandHandler creates a handler for match acceptance operations.
func NewAcceptMatchCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) AcceptMatchCommandHandler {
	return AcceptMatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the accept command.
// Requires an active, unexpired reservation on the match held by this
// driver; otherwise returns a Conflict.
func (h *AcceptMatchCommandHandler) Handle(ctx context.Context, cmd AcceptMatchCommand) error {
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
	reservationRepo := uow.ReservationRepository()
	recommendationRepo := uow.RecommendationRepository()

	m, err := matchRepo.Get(ctx, cmd.MatchID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()

	res, err := reservationRepo.GetActiveByMatch(ctx, m.ID(), now)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return errs.NewConflictError("reservation", "no active reservation")
		}
		return err
	}

	if !res.DriverID().IsEqual(cmd.DriverID()) {
		return errs.NewConflictError("reservation", "no active reservation")
	}

	resPrior := res.Status()
	if err = res.Convert(); err != nil {
		return err
	}

	matchPrior := m.Status()
	if err = m.Accept(cmd.AcceptedRate()); err != nil {
		return err
	}

	if err = reservationRepo.UpdateFrom(ctx, res, resPrior); err != nil {
		return err
	}

	if err = matchRepo.UpdateFrom(ctx, m, matchPrior); err != nil {
		return err
	}

	withdrawn, err := withdrawOutstandingRecommendations(ctx, recommendationRepo, func() ([]*recommendation.Recommendation, error) {
		return recommendationRepo.GetOutstandingByLoad(ctx, m.LoadID())
	})
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishReservationEvent(ctx, h.publisher, events.TypeReservationConverted, res)
	publishMatchEvent(ctx, h.publisher, events.TypeMatchAccepted, m)
	for _, rec := range withdrawn {
		publishRecommendationEvent(ctx, h.publisher, events.TypeRecommendationExpired, rec)
	}

	return nil
}

// withdrawOutstandingRecommendations bulk-expires the recommendations the
// lookup returns and persists each with a conditional write. Returns the
// recommendations actually withdrawn so the caller can publish for them
// after commit.
func withdrawOutstandingRecommendations(
	ctx context.Context,
	repo ports.RecommendationRepository,
	lookup func() ([]*recommendation.Recommendation, error),
) ([]*recommendation.Recommendation, error) {
	outstanding, err := lookup()
	if err != nil {
		return nil, err
	}

	withdrawn := make([]*recommendation.Recommendation, 0, len(outstanding))
	for _, rec := range outstanding {
		prior := rec.Status()
		if err := rec.MarkExpired(); err != nil {
			return nil, err
		}

		if err := repo.UpdateFrom(ctx, rec, prior); err != nil {
			return nil, err
		}

		withdrawn = append(withdrawn, rec)
	}

	return withdrawn, nil
}
