package queries_test

import (
	"context"
	"testing"
	"time"

	"freightmatch/internal/adapters/out/postgres/matchrepo"
	"freightmatch/internal/adapters/out/postgres/recommendationrepo"
	"freightmatch/internal/adapters/out/postgres/reservationrepo"
	"freightmatch/internal/core/application/usecases/queries"
	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/core/domain/model/reservation"
	"freightmatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// mockAggregateTracker is a no-op tracker; query tests do not care about
// aggregate tracking.
type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ interface{}) {}

type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB

	matchRepo          *matchrepo.GormMatchRepository
	reservationRepo    *reservationrepo.GormReservationRepository
	recommendationRepo *recommendationrepo.GormRecommendationRepository
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&matchrepo.MatchDTO{},
		&matchrepo.SegmentDTO{},
		&reservationrepo.ReservationDTO{},
		&recommendationrepo.RecommendationDTO{},
	)
	suite.Require().NoError(err)

	tracker := &mockAggregateTracker{}
	suite.matchRepo = matchrepo.NewGormMatchRepository(db, tracker)
	suite.reservationRepo = reservationrepo.NewGormReservationRepository(db, tracker)
	suite.recommendationRepo = recommendationrepo.NewGormRecommendationRepository(db, tracker)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE matches, match_segments, reservations, recommendations CASCADE").Error,
	)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetMatch_ReturnsMatchWithSegments() {
	ctx := context.Background()

	first, err := match.NewSegment(0, kernel.NewUUID(), "Chicago, IL", "St. Louis, MO", 450)
	suite.Require().NoError(err)
	second, err := match.NewSegment(1, kernel.NewUUID(), "St. Louis, MO", "Dallas, TX", 700)
	suite.Require().NoError(err)

	relay, err := match.NewRelayMatch(
		kernel.NewUUID(), kernel.NewUUID(), 91.0,
		map[string]float64{"deadhead": 0.1},
		[]match.Segment{first, second},
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.matchRepo.Add(ctx, relay))

	query, err := queries.NewGetMatchQuery(relay.ID())
	suite.Require().NoError(err)

	handler := queries.NewGetMatchQueryHandler(suite.db)
	response, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(relay.ID(), response.ID)
	suite.Equal(relay.LoadID(), response.LoadID)
	suite.True(response.DriverID.IsZero())
	suite.Equal("relay", response.Kind)
	suite.Equal("Pending", response.Status)
	suite.InDelta(1150.0, response.ProposedRate, 0.001)
	suite.Require().Len(response.Segments, 2)
	suite.Equal("Chicago, IL", response.Segments[0].Origin)
	suite.Equal("Dallas, TX", response.Segments[1].Destination)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetMatch_NonExistent_ReturnsNotFoundError() {
	query, err := queries.NewGetMatchQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	handler := queries.NewGetMatchQueryHandler(suite.db)
	_, err = handler.Handle(context.Background(), query)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetMatches_FiltersByDriverAndStatus() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	suite.seedMatch(driverID)
	recommended := suite.seedMatch(driverID)
	suite.Require().NoError(recommended.Recommend())
	suite.Require().NoError(suite.matchRepo.UpdateFrom(ctx, recommended, match.Pending))
	suite.seedMatch(kernel.NewUUID()) // other driver, must not appear

	query, err := queries.NewGetMatchesForDriverQuery(driverID, nil)
	suite.Require().NoError(err)

	handler := queries.NewGetMatchesQueryHandler(suite.db)
	all, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Len(all, 2)

	query, err = queries.NewGetMatchesForDriverQuery(driverID, []match.Status{match.Recommended})
	suite.Require().NoError(err)

	filtered, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(filtered, 1)
	suite.Equal(recommended.ID(), filtered[0].ID)
	suite.Equal("Recommended", filtered[0].Status)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetMatches_ForLoad() {
	ctx := context.Background()

	m := suite.seedMatch(kernel.NewUUID())

	query, err := queries.NewGetMatchesForLoadQuery(m.LoadID(), nil)
	suite.Require().NoError(err)

	handler := queries.NewGetMatchesQueryHandler(suite.db)
	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(m.ID(), result[0].ID)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetActiveReservation_AllScopes() {
	ctx := context.Background()

	res, err := reservation.NewReservation(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		time.Now().UTC().Add(15*time.Minute),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.reservationRepo.Add(ctx, res))

	handler := queries.NewGetActiveReservationQueryHandler(suite.db)

	byMatch, err := queries.NewGetActiveReservationForMatchQuery(res.MatchID())
	suite.Require().NoError(err)
	byDriver, err := queries.NewGetActiveReservationForDriverQuery(res.DriverID())
	suite.Require().NoError(err)
	byLoad, err := queries.NewGetActiveReservationForLoadQuery(res.LoadID())
	suite.Require().NoError(err)

	for _, query := range []queries.GetActiveReservationQuery{byMatch, byDriver, byLoad} {
		response, handleErr := handler.Handle(ctx, query)
		suite.Require().NoError(handleErr)
		suite.Equal(res.ID(), response.ID)
		suite.Equal("Active", response.Status)
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetActiveReservation_CancelledHold_NotFound() {
	ctx := context.Background()

	res, err := reservation.NewReservation(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		time.Now().UTC().Add(15*time.Minute),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.reservationRepo.Add(ctx, res))

	prior := res.Status()
	suite.Require().NoError(res.Cancel("driver changed plans"))
	suite.Require().NoError(suite.reservationRepo.UpdateFrom(ctx, res, prior))

	query, err := queries.NewGetActiveReservationForMatchQuery(res.MatchID())
	suite.Require().NoError(err)

	handler := queries.NewGetActiveReservationQueryHandler(suite.db)
	_, err = handler.Handle(ctx, query)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetDriverRecommendations_OrderedByScore() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	low := suite.seedRecommendation(driverID, 72.5)
	high := suite.seedRecommendation(driverID, 94.0)
	suite.seedRecommendation(kernel.NewUUID(), 99.0) // other driver

	query, err := queries.NewGetDriverRecommendationsQuery(driverID, nil)
	suite.Require().NoError(err)

	handler := queries.NewGetDriverRecommendationsQueryHandler(suite.db)
	feed, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(feed, 2)
	suite.Equal(high.ID(), feed[0].ID)
	suite.Equal(low.ID(), feed[1].ID)
	suite.Equal("Active", feed[0].Status)
	suite.Equal("Dallas, TX", feed[0].Destination)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetStatistics_CountsLifecycleState() {
	ctx := context.Background()

	suite.seedMatch(kernel.NewUUID())
	recommended := suite.seedMatch(kernel.NewUUID())
	suite.Require().NoError(recommended.Recommend())
	suite.Require().NoError(suite.matchRepo.UpdateFrom(ctx, recommended, match.Pending))

	res, err := reservation.NewReservation(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		time.Now().UTC().Add(15*time.Minute),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.reservationRepo.Add(ctx, res))

	suite.seedRecommendation(kernel.NewUUID(), 80.0)

	handler := queries.NewGetStatisticsQueryHandler(suite.db)
	stats, err := handler.Handle(ctx, queries.NewGetStatisticsQuery())
	suite.Require().NoError(err)

	suite.Equal(int64(1), stats.MatchesByStatus["Pending"])
	suite.Equal(int64(1), stats.MatchesByStatus["Recommended"])
	suite.Equal(int64(1), stats.ActiveReservations)
	suite.Equal(int64(1), stats.OutstandingRecommendations)
}

// seedMatch persists a Pending direct match for the given driver.
func (suite *QueryHandlersIntegrationTestSuite) seedMatch(driverID kernel.UUID) *match.Match {
	m, err := match.NewMatch(
		kernel.NewUUID(), kernel.NewUUID(), driverID, kernel.NewUUID(),
		match.KindDirect, 87.5, map[string]float64{"deadhead": 0.2}, 1250,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.matchRepo.Add(context.Background(), m))
	return m
}

// seedRecommendation persists an active offer for the given driver.
func (suite *QueryHandlersIntegrationTestSuite) seedRecommendation(
	driverID kernel.UUID, score float64,
) *recommendation.Recommendation {
	rec, err := recommendation.NewRecommendation(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), driverID,
		score, map[string]float64{"deadhead": 0.15}, 1250,
		recommendation.LoadSummary{
			Origin:        "Chicago, IL",
			Destination:   "Dallas, TX",
			EquipmentType: "Dry Van",
			WeightLbs:     42000,
		},
		60, 340, time.Hour,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.recommendationRepo.Add(context.Background(), rec))
	return rec
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
