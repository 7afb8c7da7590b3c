package commands_test

import (
	"testing"
	"time"

	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestViewRecommendationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	rec := newActiveRecommendation(t, newRecommendedMatch(t))
	cmd, err := commands.NewViewRecommendationCommand(rec.ID())
	require.NoError(t, err)

	repo := new(MockRecommendationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RecommendationRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, rec.ID()).Return(rec, nil).Once()
	repo.On("UpdateFrom", mock.Anything, rec, recommendation.Active).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRecommendationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	h := commands.NewViewRecommendationCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, recommendation.Viewed, rec.Status())
	require.NotNil(t, rec.ViewedAt())
	assert.Equal(t, []string{events.TypeRecommendationViewed}, publisher.Types())
}

func TestViewRecommendationCommandHandler_Handle_RepeatViewIsNoOp(t *testing.T) {
	ctx := t.Context()
	rec := newActiveRecommendation(t, newRecommendedMatch(t))
	require.NoError(t, rec.MarkViewed(time.Now().Add(-time.Minute)))
	firstViewed := *rec.ViewedAt()

	cmd, err := commands.NewViewRecommendationCommand(rec.ID())
	require.NoError(t, err)

	repo := new(MockRecommendationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RecommendationRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, rec.ID()).Return(rec, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRecommendationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	h := commands.NewViewRecommendationCommandHandler(factory, publisher)
	require.NoError(t, h.Handle(ctx, cmd))

	assert.Equal(t, firstViewed, *rec.ViewedAt())
	assert.Empty(t, publisher.Events)
	repo.AssertNotCalled(t, "UpdateFrom", mock.Anything, mock.Anything, mock.Anything)
}

func TestViewRecommendationCommandHandler_Handle_TerminalIsConflict(t *testing.T) {
	ctx := t.Context()
	rec := newActiveRecommendation(t, newRecommendedMatch(t))
	require.NoError(t, rec.MarkAccepted())

	cmd, err := commands.NewViewRecommendationCommand(rec.ID())
	require.NoError(t, err)

	repo := new(MockRecommendationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RecommendationRepository").Return(repo).Once()
	repo.On("Get", mock.Anything, rec.ID()).Return(rec, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRecommendationUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewViewRecommendationCommandHandler(factory, new(MockEventPublisher))
	err = h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrConflict)
}
