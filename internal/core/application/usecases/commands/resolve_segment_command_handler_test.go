package commands_test

import (
	"testing"

	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func resolveSegment(
	t *testing.T,
	m *match.Match,
	cmd commands.ResolveSegmentCommand,
	prior match.Status,
) (*MockEventPublisher, error) {
	t.Helper()

	ctx := t.Context()
	matchRepo := new(MockMatchRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("MatchRepository").Return(matchRepo).Once()
	matchRepo.On("Get", mock.Anything, m.ID()).Return(m, nil).Once()
	matchRepo.On("UpdateFrom", mock.Anything, m, prior).Return(nil).Maybe()
	uow.On("Commit", ctx).Return(nil).Maybe()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockMatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	h := commands.NewResolveSegmentCommandHandler(factory, publisher)
	return publisher, h.Handle(ctx, cmd)
}

func TestResolveSegmentCommandHandler_Handle_AcceptOneSegment(t *testing.T) {
	m := newPendingRelayMatch(t)
	cmd, err := commands.NewAcceptSegmentCommand(m.ID(), 0)
	require.NoError(t, err)

	publisher, err := resolveSegment(t, m, cmd, match.Pending)
	require.NoError(t, err)

	assert.Equal(t, match.Accepted, m.Segments()[0].Status())
	assert.Equal(t, match.Pending, m.Status())
	assert.Equal(t, []string{events.TypeSegmentAccepted}, publisher.Types())
}

func TestResolveSegmentCommandHandler_Handle_LastAcceptSettlesRelay(t *testing.T) {
	m := newPendingRelayMatch(t)
	require.NoError(t, m.AcceptSegment(0))
	cmd, err := commands.NewAcceptSegmentCommand(m.ID(), 1)
	require.NoError(t, err)

	publisher, err := resolveSegment(t, m, cmd, match.Pending)
	require.NoError(t, err)

	assert.Equal(t, match.Accepted, m.Status())
	require.NotNil(t, m.AcceptedRate())
	assert.InEpsilon(t, m.ProposedRate(), *m.AcceptedRate(), 1e-9)
	assert.Equal(t, []string{events.TypeSegmentAccepted, events.TypeMatchAccepted}, publisher.Types())
}

func TestResolveSegmentCommandHandler_Handle_DeclineCollapsesRelay(t *testing.T) {
	m := newPendingRelayMatch(t)
	cmd, err := commands.NewDeclineSegmentCommand(m.ID(), 1)
	require.NoError(t, err)

	publisher, err := resolveSegment(t, m, cmd, match.Pending)
	require.NoError(t, err)

	assert.Equal(t, match.Declined, m.Segments()[1].Status())
	assert.Equal(t, match.Cancelled, m.Status())
	assert.Equal(t, []string{events.TypeSegmentDeclined, events.TypeMatchCancelled}, publisher.Types())
}

func TestResolveSegmentCommandHandler_Handle_ExpireCollapsesRelay(t *testing.T) {
	m := newPendingRelayMatch(t)
	cmd, err := commands.NewExpireSegmentCommand(m.ID(), 0)
	require.NoError(t, err)

	publisher, err := resolveSegment(t, m, cmd, match.Pending)
	require.NoError(t, err)

	assert.Equal(t, match.Cancelled, m.Status())
	assert.Equal(t, []string{events.TypeSegmentExpired, events.TypeMatchCancelled}, publisher.Types())
}

func TestResolveSegmentCommandHandler_Handle_DirectMatch(t *testing.T) {
	m := newPendingMatch(t)
	cmd, err := commands.NewAcceptSegmentCommand(m.ID(), 0)
	require.NoError(t, err)

	_, err = resolveSegment(t, m, cmd, m.Status())
	require.ErrorIs(t, err, errs.ErrConflict)
}

func TestResolveSegmentCommandHandler_Handle_UnknownSegment(t *testing.T) {
	m := newPendingRelayMatch(t)
	cmd, err := commands.NewAcceptSegmentCommand(m.ID(), 5)
	require.NoError(t, err)

	_, err = resolveSegment(t, m, cmd, m.Status())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestResolveSegmentCommandHandler_Handle_SegmentAlreadySettled(t *testing.T) {
	m := newPendingRelayMatch(t)
	require.NoError(t, m.AcceptSegment(0))
	cmd, err := commands.NewAcceptSegmentCommand(m.ID(), 0)
	require.NoError(t, err)

	_, err = resolveSegment(t, m, cmd, m.Status())
	require.ErrorIs(t, err, errs.ErrConflict)
}
