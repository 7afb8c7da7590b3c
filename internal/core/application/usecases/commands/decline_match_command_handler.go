package commands

import (
	"context"
	"errors"
	"time"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/ports"
	"freightmatch/internal/pkg/errs"
)

// DeclineMatchCommandHandler records a driver's refusal of a match.
// If the driver held an active reservation on the match it is released in
// the same transaction, so the load immediately becomes holdable again.
type DeclineMatchCommandHandler struct {
	uowFactory MatchReservationUoWFactory
	publisher  ports.EventPublisher
}

// NewDeclineMatchCommandHandler creates a handler for match decline operations.
func NewDeclineMatchCommandHandler(
	uowFactory MatchReservationUoWFactory,
	publisher ports.EventPublisher,
) DeclineMatchCommandHandler {
	return DeclineMatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the decline command.
// Allowed only while the match is recommended or reserved; any other state
// surfaces as a Conflict from the status transition.
func (h *DeclineMatchCommandHandler) Handle(ctx context.Context, cmd DeclineMatchCommand) error {
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

	m, err := matchRepo.Get(ctx, cmd.MatchID())
	if err != nil {
		return err
	}

	res, err := reservationRepo.GetActiveByMatch(ctx, m.ID(), time.Now().UTC())
	if err != nil && !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if res != nil {
		resPrior := res.Status()
		if err = res.Cancel(cmd.Reason()); err != nil {
			return err
		}

		if err = reservationRepo.UpdateFrom(ctx, res, resPrior); err != nil {
			return err
		}
	}

	prior := m.Status()
	if err = m.Decline(cmd.Reason(), cmd.Notes()); err != nil {
		return err
	}

	if err = matchRepo.UpdateFrom(ctx, m, prior); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if res != nil {
		publishReservationEvent(ctx, h.publisher, events.TypeReservationCancelled, res)
	}
	publishMatchEvent(ctx, h.publisher, events.TypeMatchDeclined, m)

	return nil
}
