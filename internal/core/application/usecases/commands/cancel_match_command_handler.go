package commands

import (
	"context"
	"errors"
	"time"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/ports"
	"freightmatch/internal/pkg/errs"
)

// CancelMatchCommandHandler withdraws a match from any non-terminal state.
// An active reservation on the match is released in the same transaction.
type CancelMatchCommandHandler struct {
	uowFactory MatchReservationUoWFactory
	publisher  ports.EventPublisher
}

// NewCancelMatchCommandHandler creates a handler for match cancellation operations.
func NewCancelMatchCommandHandler(
	uowFactory MatchReservationUoWFactory,
	publisher ports.EventPublisher,
) CancelMatchCommandHandler {
	return CancelMatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancel command.
func (h *CancelMatchCommandHandler) Handle(ctx context.Context, cmd CancelMatchCommand) error {
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
	if err = m.Cancel(); err != nil {
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
	publishMatchEvent(ctx, h.publisher, events.TypeMatchCancelled, m)

	return nil
}
