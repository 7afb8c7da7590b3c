package commands_test

import (
	"testing"

	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/domain/model/recommendation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProcessExpiredRecommendationsCommandHandler_Handle_ExpiresOfferAndMatch(t *testing.T) {
	ctx := t.Context()
	m := newRecommendedMatch(t)
	rec := newActiveRecommendation(t, m)

	matchRepo := new(MockMatchRepository)
	recommendationRepo := new(MockRecommendationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("MatchRepository").Return(matchRepo)
	uow.On("RecommendationRepository").Return(recommendationRepo)

	recommendationRepo.On("GetAllExpired", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*recommendation.Recommendation{rec}, nil).Once()
	recommendationRepo.On("UpdateFrom", mock.Anything, rec, recommendation.Active).Return(nil).Once()
	matchRepo.On("Get", mock.Anything, m.ID()).Return(m, nil).Once()
	recommendationRepo.On("GetOutstandingByMatch", mock.Anything, m.ID()).
		Return([]*recommendation.Recommendation{}, nil).Once()
	matchRepo.On("UpdateFrom", mock.Anything, m, match.Recommended).Return(nil).Once()

	factory := new(MockMatchRecommendationUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)
	h := commands.NewProcessExpiredRecommendationsCommandHandler(factory, publisher, discardLogger())

	cmd := commands.NewProcessExpiredRecommendationsCommand()
	processed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, recommendation.Expired, rec.Status())
	assert.Equal(t, match.Expired, m.Status())
	assert.Equal(t, []string{events.TypeRecommendationExpired, events.TypeMatchExpired}, publisher.Types())
}

func TestProcessExpiredRecommendationsCommandHandler_Handle_MatchKeptWhileOffersRemain(t *testing.T) {
	ctx := t.Context()
	m := newRecommendedMatch(t)
	lapsed := newActiveRecommendation(t, m)
	remaining := newActiveRecommendation(t, m)

	matchRepo := new(MockMatchRepository)
	recommendationRepo := new(MockRecommendationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("MatchRepository").Return(matchRepo)
	uow.On("RecommendationRepository").Return(recommendationRepo)

	recommendationRepo.On("GetAllExpired", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*recommendation.Recommendation{lapsed}, nil).Once()
	recommendationRepo.On("UpdateFrom", mock.Anything, lapsed, recommendation.Active).Return(nil).Once()
	matchRepo.On("Get", mock.Anything, m.ID()).Return(m, nil).Once()
	recommendationRepo.On("GetOutstandingByMatch", mock.Anything, m.ID()).
		Return([]*recommendation.Recommendation{remaining}, nil).Once()

	factory := new(MockMatchRecommendationUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)
	h := commands.NewProcessExpiredRecommendationsCommandHandler(factory, publisher, discardLogger())

	cmd := commands.NewProcessExpiredRecommendationsCommand()
	processed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, match.Recommended, m.Status())
	assert.Equal(t, []string{events.TypeRecommendationExpired}, publisher.Types())
	matchRepo.AssertNotCalled(t, "UpdateFrom", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessExpiredRecommendationsCommandHandler_Handle_ReservedMatchLeftAlone(t *testing.T) {
	ctx := t.Context()
	m := newReservedMatch(t)
	rec := newActiveRecommendation(t, m)

	matchRepo := new(MockMatchRepository)
	recommendationRepo := new(MockRecommendationRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil)
	uow.On("Commit", ctx).Return(nil)
	uow.On("Rollback", ctx).Return(nil)
	uow.On("MatchRepository").Return(matchRepo)
	uow.On("RecommendationRepository").Return(recommendationRepo)

	recommendationRepo.On("GetAllExpired", mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*recommendation.Recommendation{rec}, nil).Once()
	recommendationRepo.On("UpdateFrom", mock.Anything, rec, recommendation.Active).Return(nil).Once()
	matchRepo.On("Get", mock.Anything, m.ID()).Return(m, nil).Once()

	factory := new(MockMatchRecommendationUoWFactory)
	factory.On("Create").Return(uow)

	publisher := new(MockEventPublisher)
	h := commands.NewProcessExpiredRecommendationsCommandHandler(factory, publisher, discardLogger())

	cmd := commands.NewProcessExpiredRecommendationsCommand()
	processed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)
	assert.Equal(t, match.Reserved, m.Status())
}
