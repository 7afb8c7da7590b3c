package commands_test

import (
	"context"
	"time"

	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/core/domain/events"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/core/domain/model/reservation"
	"freightmatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockMatchRepository struct{ mock.Mock }

func (m *MockMatchRepository) Add(ctx context.Context, aggregate *match.Match) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockMatchRepository) Get(ctx context.Context, id kernel.UUID) (*match.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*match.Match), args.Error(1)
}

func (m *MockMatchRepository) GetByDriver(ctx context.Context, driverID kernel.UUID, statuses []match.Status) ([]*match.Match, error) {
	args := m.Called(ctx, driverID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*match.Match), args.Error(1)
}

func (m *MockMatchRepository) GetByLoad(ctx context.Context, loadID kernel.UUID, statuses []match.Status) ([]*match.Match, error) {
	args := m.Called(ctx, loadID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*match.Match), args.Error(1)
}

func (m *MockMatchRepository) GetReservedWithDeadlineBefore(ctx context.Context, deadline time.Time) ([]*match.Match, error) {
	args := m.Called(ctx, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*match.Match), args.Error(1)
}

func (m *MockMatchRepository) UpdateFrom(ctx context.Context, aggregate *match.Match, prior match.Status) error {
	args := m.Called(ctx, aggregate, prior)
	return args.Error(0)
}

type MockReservationRepository struct{ mock.Mock }

func (m *MockReservationRepository) Add(ctx context.Context, aggregate *reservation.Reservation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockReservationRepository) Get(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetActiveByMatch(ctx context.Context, matchID kernel.UUID, now time.Time) (*reservation.Reservation, error) {
	args := m.Called(ctx, matchID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID, now time.Time) (*reservation.Reservation, error) {
	args := m.Called(ctx, driverID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) GetActiveByLoad(ctx context.Context, loadID kernel.UUID, now time.Time) (*reservation.Reservation, error) {
	args := m.Called(ctx, loadID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) HasActiveConflict(ctx context.Context, driverID kernel.UUID, loadID kernel.UUID, now time.Time) (bool, error) {
	args := m.Called(ctx, driverID, loadID, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockReservationRepository) GetAllExpired(ctx context.Context, now time.Time) ([]*reservation.Reservation, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*reservation.Reservation), args.Error(1)
}

func (m *MockReservationRepository) UpdateFrom(ctx context.Context, aggregate *reservation.Reservation, prior reservation.Status) error {
	args := m.Called(ctx, aggregate, prior)
	return args.Error(0)
}

type MockRecommendationRepository struct{ mock.Mock }

func (m *MockRecommendationRepository) Add(ctx context.Context, aggregate *recommendation.Recommendation) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockRecommendationRepository) Get(ctx context.Context, id kernel.UUID) (*recommendation.Recommendation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recommendation.Recommendation), args.Error(1)
}

func (m *MockRecommendationRepository) GetByDriver(ctx context.Context, driverID kernel.UUID, statuses []recommendation.Status) ([]*recommendation.Recommendation, error) {
	args := m.Called(ctx, driverID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recommendation.Recommendation), args.Error(1)
}

func (m *MockRecommendationRepository) GetOutstandingByMatch(ctx context.Context, matchID kernel.UUID) ([]*recommendation.Recommendation, error) {
	args := m.Called(ctx, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recommendation.Recommendation), args.Error(1)
}

func (m *MockRecommendationRepository) GetOutstandingByLoad(ctx context.Context, loadID kernel.UUID) ([]*recommendation.Recommendation, error) {
	args := m.Called(ctx, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recommendation.Recommendation), args.Error(1)
}

func (m *MockRecommendationRepository) GetAllExpired(ctx context.Context, now time.Time) ([]*recommendation.Recommendation, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recommendation.Recommendation), args.Error(1)
}

func (m *MockRecommendationRepository) UpdateFrom(ctx context.Context, aggregate *recommendation.Recommendation, prior recommendation.Status) error {
	args := m.Called(ctx, aggregate, prior)
	return args.Error(0)
}

// MockUoW satisfies every unit of work composition the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) MatchRepository() ports.MatchRepository {
	args := m.Called()
	return args.Get(0).(ports.MatchRepository)
}

func (m *MockUoW) ReservationRepository() ports.ReservationRepository {
	args := m.Called()
	return args.Get(0).(ports.ReservationRepository)
}

func (m *MockUoW) RecommendationRepository() ports.RecommendationRepository {
	args := m.Called()
	return args.Get(0).(ports.RecommendationRepository)
}

type MockMatchUoWFactory struct{ mock.Mock }

func (m *MockMatchUoWFactory) Create() commands.MatchUoW {
	args := m.Called()
	return args.Get(0).(commands.MatchUoW)
}

type MockRecommendationUoWFactory struct{ mock.Mock }

func (m *MockRecommendationUoWFactory) Create() commands.RecommendationUoW {
	args := m.Called()
	return args.Get(0).(commands.RecommendationUoW)
}

type MockMatchReservationUoWFactory struct{ mock.Mock }

func (m *MockMatchReservationUoWFactory) Create() commands.MatchReservationUoW {
	args := m.Called()
	return args.Get(0).(commands.MatchReservationUoW)
}

type MockMatchRecommendationUoWFactory struct{ mock.Mock }

func (m *MockMatchRecommendationUoWFactory) Create() commands.MatchRecommendationUoW {
	args := m.Called()
	return args.Get(0).(commands.MatchRecommendationUoW)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// MockEventPublisher records published events for assertions.
type MockEventPublisher struct {
	Events []events.Event
}

func (m *MockEventPublisher) Publish(_ context.Context, event events.Event) {
	m.Events = append(m.Events, event)
}

func (m *MockEventPublisher) Types() []string {
	types := make([]string, 0, len(m.Events))
	for _, e := range m.Events {
		types = append(types, e.Metadata.Type)
	}
	return types
}
