package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"freightmatch/cmd"
	httpadapter "freightmatch/internal/adapters/in/http"
	"freightmatch/internal/adapters/out/postgres/matchrepo"
	"freightmatch/internal/adapters/out/postgres/recommendationrepo"
	"freightmatch/internal/adapters/out/postgres/reservationrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	config := getConfig(logger)

	gormDB, err := openDatabase(config)
	if err != nil {
		logger.Error("connecting to database failed", "error", err)
		os.Exit(1)
	}

	if err := migrate(gormDB); err != nil {
		logger.Error("applying schema failed", "error", err)
		os.Exit(1)
	}

	root := cmd.NewCompositionRoot(config, gormDB, logger)

	jobManager := root.CreateJobManager(config.SweepSchedule)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("starting background jobs failed", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(root, config, logger)
}

func getConfig(logger *slog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Warn("no .env file found, using process environment")
	}

	reservationTTL := 15 * time.Minute
	if raw := os.Getenv("RESERVATION_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			logger.Error("invalid RESERVATION_TTL", "value", raw, "error", err)
			os.Exit(1)
		}
		reservationTTL = parsed
	}

	sweepSchedule := os.Getenv("SWEEP_SCHEDULE")
	if sweepSchedule == "" {
		sweepSchedule = "*/30 * * * * *"
	}

	return cmd.Config{
		HTTPPort:              os.Getenv("HTTP_PORT"),
		DBHost:                os.Getenv("DB_HOST"),
		DBPort:                os.Getenv("DB_PORT"),
		DBUser:                os.Getenv("DB_USER"),
		DBPassword:            os.Getenv("DB_PASSWORD"),
		DBName:                os.Getenv("DB_NAME"),
		DBSslMode:             os.Getenv("DB_SSLMODE"),
		KafkaHost:             os.Getenv("KAFKA_HOST"),
		KafkaMatchEventTopic:  os.Getenv("KAFKA_MATCH_EVENT_TOPIC"),
		SweepSchedule:         sweepSchedule,
		DefaultReservationTTL: reservationTTL,
	}
}

func openDatabase(config cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)

	// TranslateError surfaces unique violations as gorm.ErrDuplicatedKey,
	// which the reservation repository maps to a Conflict.
	return gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&matchrepo.MatchDTO{},
		&matchrepo.SegmentDTO{},
		&reservationrepo.ReservationDTO{},
		&recommendationrepo.RecommendationDTO{},
	)
}

func startWebServer(root cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) {
	handlers := httpadapter.Handlers{
		CreateMatch:               root.CreateCreateMatchCommandHandler(),
		CreateRelayMatch:          root.CreateCreateRelayMatchCommandHandler(),
		UpdateMatch:               root.CreateUpdateMatchCommandHandler(),
		RecommendMatch:            root.CreateRecommendMatchCommandHandler(),
		RecommendRelayMatch:       root.CreateRecommendRelayMatchCommandHandler(),
		ResolveSegment:            root.CreateResolveSegmentCommandHandler(),
		ReserveMatch:              root.CreateReserveMatchCommandHandler(),
		AcceptMatch:               root.CreateAcceptMatchCommandHandler(),
		DeclineMatch:              root.CreateDeclineMatchCommandHandler(),
		CancelMatch:               root.CreateCancelMatchCommandHandler(),
		ViewRecommendation:        root.CreateViewRecommendationCommandHandler(),
		AcceptRecommendation:      root.CreateAcceptRecommendationCommandHandler(),
		DeclineRecommendation:     root.CreateDeclineRecommendationCommandHandler(),
		DeactivateRecommendations: root.CreateDeactivateRecommendationsCommandHandler(),
		GetMatch:                  root.CreateGetMatchQueryHandler(),
		GetMatches:                root.CreateGetMatchesQueryHandler(),
		GetActiveReservation:      root.CreateGetActiveReservationQueryHandler(),
		GetDriverRecommendations:  root.CreateGetDriverRecommendationsQueryHandler(),
		GetStatistics:             root.CreateGetStatisticsQueryHandler(),
	}

	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	httpadapter.NewServer(handlers, config.DefaultReservationTTL).RegisterRoutes(e)

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil {
		logger.Error("http server stopped", "error", err)
		os.Exit(1)
	}
}
