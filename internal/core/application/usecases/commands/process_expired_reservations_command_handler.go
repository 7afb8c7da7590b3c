package commands

import (
	"context"
	"log/slog"
	"time"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/domain/model/reservation"
	"freightmatch/internal/core/ports"
)

// ProcessExpiredReservationsCommandHandler lapses reservations whose expiry
// has passed and expires their matches.
//
// Each record is processed in its own transaction: a failure on one record
// is logged and does not abort the remainder. Concurrent sweepers race
// safely on the conditional updates; the loser's Conflict is just another
// logged, skipped record. After the reservation pass the handler reconciles
// matches left in reserved status past their deadline without a live
// reservation record.
type ProcessExpiredReservationsCommandHandler struct {
	uowFactory MatchReservationUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewProcessExpiredReservationsCommandHandler creates a handler for the reservation sweep.
func NewProcessExpiredReservationsCommandHandler(
	uowFactory MatchReservationUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ProcessExpiredReservationsCommandHandler {
	return ProcessExpiredReservationsCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger,
	}
}

// Handle runs one sweep and returns the number of reservations successfully
// expired. Only the listing query can fail the sweep as a whole.
func (h *ProcessExpiredReservationsCommandHandler) Handle(ctx context.Context, cmd ProcessExpiredReservationsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	now := time.Now().UTC()

	expired, err := h.listExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, res := range expired {
		if err := h.expireOne(ctx, res); err != nil {
			h.logger.WarnContext(ctx, "skipping expired reservation",
				slog.String("reservation_id", res.ID().String()),
				slog.String("error", err.Error()))
			continue
		}
		processed++
	}

	h.reconcileOrphanedMatches(ctx, now)

	return processed, nil
}

func (h *ProcessExpiredReservationsCommandHandler) listExpired(ctx context.Context, now time.Time) ([]*reservation.Reservation, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.ReservationRepository().GetAllExpired(ctx, now)
}

// expireOne lapses a single reservation and its match in one transaction.
// A record another sweeper already handled fails the conditional write here,
// not the batch.
func (h *ProcessExpiredReservationsCommandHandler) expireOne(ctx context.Context, res *reservation.Reservation) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	resPrior := res.Status()
	if err := res.Expire(); err != nil {
		return err
	}

	reservationRepo := uow.ReservationRepository()
	if err := reservationRepo.UpdateFrom(ctx, res, resPrior); err != nil {
		return err
	}

	matchRepo := uow.MatchRepository()
	m, err := matchRepo.Get(ctx, res.MatchID())
	if err != nil {
		return err
	}

	var matchExpired bool
	if !m.Status().IsTerminal() {
		matchPrior := m.Status()
		if err = m.Expire(); err != nil {
			return err
		}

		if err = matchRepo.UpdateFrom(ctx, m, matchPrior); err != nil {
			return err
		}
		matchExpired = true
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishReservationEvent(ctx, h.publisher, events.TypeReservationExpired, res)
	if matchExpired {
		publishMatchEvent(ctx, h.publisher, events.TypeMatchExpired, m)
	}

	return nil
}

// reconcileOrphanedMatches expires matches still marked reserved past their
// deadline whose reservation record is already gone or lapsed. Failures are
// logged and swallowed like any other sweep record.
func (h *ProcessExpiredReservationsCommandHandler) reconcileOrphanedMatches(ctx context.Context, now time.Time) {
	orphaned, err := h.listOrphaned(ctx, now)
	if err != nil {
		h.logger.WarnContext(ctx, "listing orphaned reserved matches failed",
			slog.String("error", err.Error()))
		return
	}

	for _, m := range orphaned {
		if err := h.expireOrphanedMatch(ctx, m); err != nil {
			h.logger.WarnContext(ctx, "skipping orphaned reserved match",
				slog.String("match_id", m.ID().String()),
				slog.String("error", err.Error()))
		}
	}
}

func (h *ProcessExpiredReservationsCommandHandler) listOrphaned(ctx context.Context, now time.Time) ([]*match.Match, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.MatchRepository().GetReservedWithDeadlineBefore(ctx, now)
}

func (h *ProcessExpiredReservationsCommandHandler) expireOrphanedMatch(ctx context.Context, m *match.Match) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	prior := m.Status()
	if err := m.Expire(); err != nil {
		return err
	}

	if err := uow.MatchRepository().UpdateFrom(ctx, m, prior); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	publishMatchEvent(ctx, h.publisher, events.TypeMatchExpired, m)

	return nil
}
