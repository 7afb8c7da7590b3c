package commands_test

import (
	"testing"

	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/recommendation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestDeactivateRecommendationsCommandHandler_Handle_ForLoad(t *testing.T) {
	ctx := t.Context()
	m := newRecommendedMatch(t)
	first := newActiveRecommendation(t, m)
	second := newActiveRecommendation(t, m)
	require.NoError(t, second.MarkViewed(second.CreatedAt()))

	cmd, err := commands.NewDeactivateRecommendationsForLoadCommand(m.LoadID())
	require.NoError(t, err)

	repo := new(MockRecommendationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RecommendationRepository").Return(repo).Once()
	repo.On("GetOutstandingByLoad", mock.Anything, m.LoadID()).
		Return([]*recommendation.Recommendation{first, second}, nil).Once()
	repo.On("UpdateFrom", mock.Anything, first, recommendation.Active).Return(nil).Once()
	repo.On("UpdateFrom", mock.Anything, second, recommendation.Viewed).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRecommendationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	h := commands.NewDeactivateRecommendationsCommandHandler(factory, publisher)
	count, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	assert.Equal(t, recommendation.Expired, first.Status())
	assert.Equal(t, recommendation.Expired, second.Status())
	assert.Equal(t, []string{events.TypeRecommendationExpired, events.TypeRecommendationExpired}, publisher.Types())
}

func TestDeactivateRecommendationsCommandHandler_Handle_ForMatchEmpty(t *testing.T) {
	ctx := t.Context()
	matchID := kernel.NewUUID()

	cmd, err := commands.NewDeactivateRecommendationsForMatchCommand(matchID)
	require.NoError(t, err)

	repo := new(MockRecommendationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("RecommendationRepository").Return(repo).Once()
	repo.On("GetOutstandingByMatch", mock.Anything, matchID).
		Return([]*recommendation.Recommendation{}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockRecommendationUoWFactory)
	factory.On("Create").Return(uow).Once()

	publisher := new(MockEventPublisher)
	h := commands.NewDeactivateRecommendationsCommandHandler(factory, publisher)
	count, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, publisher.Events)
}
