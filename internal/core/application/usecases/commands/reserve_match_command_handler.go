package commands

import (
	"context"
	"errors"
	"time"

	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/reservation"
	"freightmatch/internal/core/ports"
	"freightmatch/internal/pkg/errs"
)

// ReserveMatchCommandHandler places an exclusive hold on a match.
//
// Exclusivity is checked inside the transaction before writing:
//  1. the match must exist,
//  2. no active, unexpired reservation may already hold the match,
//  3. the driver must not hold another load, and the load must not be held
//     by another driver.
//
// The reservation insert and the match transition to reserved commit
// atomically. The checks alone cannot close every race: two writers
// reserving different matches for the same load never touch the same match
// row, so the conditional update on the match misses that collision. The
// store's partial unique indexes on active driver and active load catch it
// at insert time; either the conditional match update or the insert fails
// for the loser, and both surface as a Conflict.
type ReserveMatchCommandHandler struct {
	uowFactory MatchReservationUoWFactory
	publisher  ports.EventPublisher
}

// NewReserveMatchCommandHandler creates a handler for reservation operations.
func NewReserveMatchCommandHandler(
	uowFactory MatchReservationUoWFactory,
	publisher ports.EventPublisher,
) ReserveMatchCommandHandler {
	return ReserveMatchCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the reserve command.
// On any Conflict the match is left unchanged and the Conflict is surfaced.
func (h *ReserveMatchCommandHandler) Handle(ctx context.Context, cmd ReserveMatchCommand) error {
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

	now := time.Now().UTC()

	if _, err = reservationRepo.GetActiveByMatch(ctx, m.ID(), now); err == nil {
		return errs.NewConflictError("reservation", "already reserved")
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	conflicting, err := reservationRepo.HasActiveConflict(ctx, cmd.DriverID(), m.LoadID(), now)
	if err != nil {
		return err
	}
	if conflicting {
		return errs.NewConflictError("reservation", "driver or load already committed elsewhere")
	}

	expiresAt := now.Add(cmd.TTL())

	res, err := reservation.NewReservation(cmd.ReservationID(), m.ID(), cmd.DriverID(), m.LoadID(), expiresAt)
	if err != nil {
		return err
	}

	prior := m.Status()
	if err = m.Reserve(expiresAt); err != nil {
		return err
	}

	if err = reservationRepo.Add(ctx, res); err != nil {
		return err
	}

	if err = matchRepo.UpdateFrom(ctx, m, prior); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishReservationEvent(ctx, h.publisher, events.TypeReservationCreated, res)
	publishMatchEvent(ctx, h.publisher, events.TypeMatchReserved, m)

	return nil
}
