package commands_test

import (
	"io"
	"log/slog"
	"testing"

	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/domain/model/reservation"
	"freightmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProcessExpiredReservationsCommandHandler_Handle_ExpiresReservationAndMatch(t *testing.T) {
	ctx := t.Context()
	m := newReservedMatch(t)
	res := newActiveReservation(t, m, m.DriverID())

	matchRepo := new(MockMatchRepository)
	reservationRepo := new(MockReservationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("MatchRepository").Return(matchRepo)
	uow.On("ReservationRepository").Return(reservationRepo)

	reservationRepo.On("GetAllExpired", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*reservation.Reservation{res}, nil).Once()
	reservationRepo.On("UpdateFrom", mock.Anything, res, reservation.Active).Return(nil).Once()
	matchRepo.On("Get", mock.Anything, m.ID()).Return(m, nil).Once()
	matchRepo.On("UpdateFrom", mock.Anything, m, match.Reserved).Return(nil).Once()
	matchRepo.On("GetReservedWithDeadlineBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*match.Match{}, nil).Once()

	factory := new(MockMatchReservationUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)
	h := commands.NewProcessExpiredReservationsCommandHandler(factory, publisher, discardLogger())

	cmd := commands.NewProcessExpiredReservationsCommand()
	processed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	assert.Equal(t, reservation.Expired, res.Status())
	assert.Equal(t, match.Expired, m.Status())
	assert.Nil(t, m.ReservedUntil())
	assert.Equal(t, []string{events.TypeReservationExpired, events.TypeMatchExpired}, publisher.Types())
	reservationRepo.AssertExpectations(t)
	matchRepo.AssertExpectations(t)
}

func TestProcessExpiredReservationsCommandHandler_Handle_FailureIsolation(t *testing.T) {
	ctx := t.Context()
	m1 := newReservedMatch(t)
	lost := newActiveReservation(t, m1, m1.DriverID())
	m2 := newReservedMatch(t)
	won := newActiveReservation(t, m2, m2.DriverID())

	matchRepo := new(MockMatchRepository)
	reservationRepo := new(MockReservationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("MatchRepository").Return(matchRepo)
	uow.On("ReservationRepository").Return(reservationRepo)

	reservationRepo.On("GetAllExpired", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*reservation.Reservation{lost, won}, nil).Once()
	// another sweeper already claimed the first record
	reservationRepo.On("UpdateFrom", mock.Anything, lost, reservation.Active).
		Return(errs.NewConflictError("reservation", "zero rows affected")).Once()
	reservationRepo.On("UpdateFrom", mock.Anything, won, reservation.Active).Return(nil).Once()
	matchRepo.On("Get", mock.Anything, m2.ID()).Return(m2, nil).Once()
	matchRepo.On("UpdateFrom", mock.Anything, m2, match.Reserved).Return(nil).Once()
	matchRepo.On("GetReservedWithDeadlineBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*match.Match{}, nil).Once()

	factory := new(MockMatchReservationUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)
	h := commands.NewProcessExpiredReservationsCommandHandler(factory, publisher, discardLogger())

	cmd := commands.NewProcessExpiredReservationsCommand()
	processed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, match.Expired, m2.Status())
	reservationRepo.AssertExpectations(t)
}

func TestProcessExpiredReservationsCommandHandler_Handle_ReconcilesOrphanedMatches(t *testing.T) {
	ctx := t.Context()
	orphan := newReservedMatch(t)

	matchRepo := new(MockMatchRepository)
	reservationRepo := new(MockReservationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("MatchRepository").Return(matchRepo)
	uow.On("ReservationRepository").Return(reservationRepo)

	reservationRepo.On("GetAllExpired", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*reservation.Reservation{}, nil).Once()
	matchRepo.On("GetReservedWithDeadlineBefore", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*match.Match{orphan}, nil).Once()
	matchRepo.On("UpdateFrom", mock.Anything, orphan, match.Reserved).Return(nil).Once()

	factory := new(MockMatchReservationUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)
	h := commands.NewProcessExpiredReservationsCommandHandler(factory, publisher, discardLogger())

	cmd := commands.NewProcessExpiredReservationsCommand()
	processed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
	assert.Equal(t, match.Expired, orphan.Status())
	assert.Equal(t, []string{events.TypeMatchExpired}, publisher.Types())
	matchRepo.AssertExpectations(t)
}

func TestProcessExpiredReservationsCommand_ValidateUnconstructed(t *testing.T) {
	var cmd commands.ProcessExpiredReservationsCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrProcessExpiredReservationsCommandIsNotConstructed)
}
