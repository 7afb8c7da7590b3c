package cmd

import (
	"log/slog"

	"freightmatch/internal/adapters/out/kafka"
	"freightmatch/internal/adapters/out/postgres"
	"freightmatch/internal/core/application/usecases/commands"
	"freightmatch/internal/core/application/usecases/queries"
	"freightmatch/internal/core/ports"
	"freightmatch/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires application dependencies together.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  kafka.NewPublisher([]string{config.KafkaHost}, config.KafkaMatchEventTopic, logger),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateCreateMatchCommandHandler() commands.CreateMatchCommandHandler {
	var f commands.MatchUoWFactory = FuncMatchUoWFactory(func() commands.MatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateMatchCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCreateRelayMatchCommandHandler() commands.CreateRelayMatchCommandHandler {
	var f commands.MatchUoWFactory = FuncMatchUoWFactory(func() commands.MatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRelayMatchCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateUpdateMatchCommandHandler() commands.UpdateMatchCommandHandler {
	var f commands.MatchUoWFactory = FuncMatchUoWFactory(func() commands.MatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateMatchCommandHandler(f)
}

func (c *CompositionRoot) CreateRecommendMatchCommandHandler() commands.RecommendMatchCommandHandler {
	var f commands.MatchRecommendationUoWFactory = FuncMatchRecommendationUoWFactory(func() commands.MatchRecommendationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecommendMatchCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateRecommendRelayMatchCommandHandler() commands.RecommendRelayMatchCommandHandler {
	var f commands.MatchRecommendationUoWFactory = FuncMatchRecommendationUoWFactory(func() commands.MatchRecommendationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRecommendRelayMatchCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateResolveSegmentCommandHandler() commands.ResolveSegmentCommandHandler {
	var f commands.MatchUoWFactory = FuncMatchUoWFactory(func() commands.MatchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveSegmentCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateReserveMatchCommandHandler() commands.ReserveMatchCommandHandler {
	var f commands.MatchReservationUoWFactory = FuncMatchReservationUoWFactory(func() commands.MatchReservationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReserveMatchCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAcceptMatchCommandHandler() commands.AcceptMatchCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptMatchCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateDeclineMatchCommandHandler() commands.DeclineMatchCommandHandler {
	var f commands.MatchReservationUoWFactory = FuncMatchReservationUoWFactory(func() commands.MatchReservationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeclineMatchCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateCancelMatchCommandHandler() commands.CancelMatchCommandHandler {
	var f commands.MatchReservationUoWFactory = FuncMatchReservationUoWFactory(func() commands.MatchReservationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelMatchCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateViewRecommendationCommandHandler() commands.ViewRecommendationCommandHandler {
	var f commands.RecommendationUoWFactory = FuncRecommendationUoWFactory(func() commands.RecommendationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewViewRecommendationCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateAcceptRecommendationCommandHandler() commands.AcceptRecommendationCommandHandler {
	var f commands.RecommendationUoWFactory = FuncRecommendationUoWFactory(func() commands.RecommendationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAcceptRecommendationCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateDeclineRecommendationCommandHandler() commands.DeclineRecommendationCommandHandler {
	var f commands.RecommendationUoWFactory = FuncRecommendationUoWFactory(func() commands.RecommendationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeclineRecommendationCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateDeactivateRecommendationsCommandHandler() commands.DeactivateRecommendationsCommandHandler {
	var f commands.RecommendationUoWFactory = FuncRecommendationUoWFactory(func() commands.RecommendationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeactivateRecommendationsCommandHandler(f, c.publisher)
}

func (c *CompositionRoot) CreateProcessExpiredReservationsCommandHandler() commands.ProcessExpiredReservationsCommandHandler {
	var f commands.MatchReservationUoWFactory = FuncMatchReservationUoWFactory(func() commands.MatchReservationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessExpiredReservationsCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateProcessExpiredRecommendationsCommandHandler() commands.ProcessExpiredRecommendationsCommandHandler {
	var f commands.MatchRecommendationUoWFactory = FuncMatchRecommendationUoWFactory(func() commands.MatchRecommendationUoW {
		return c.uowFactory.Create()
	})
	return commands.NewProcessExpiredRecommendationsCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateGetMatchQueryHandler() queries.GetMatchQueryHandler {
	return queries.NewGetMatchQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetMatchesQueryHandler() queries.GetMatchesQueryHandler {
	return queries.NewGetMatchesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveReservationQueryHandler() queries.GetActiveReservationQueryHandler {
	return queries.NewGetActiveReservationQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetDriverRecommendationsQueryHandler() queries.GetDriverRecommendationsQueryHandler {
	return queries.NewGetDriverRecommendationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetStatisticsQueryHandler() queries.GetStatisticsQueryHandler {
	return queries.NewGetStatisticsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager(schedule string) *jobs.JobManager {
	reservationSweep := c.CreateProcessExpiredReservationsCommandHandler()
	recommendationSweep := c.CreateProcessExpiredRecommendationsCommandHandler()
	return jobs.NewJobManager(&reservationSweep, &recommendationSweep, schedule, c.logger)
}

type FuncMatchUoWFactory func() commands.MatchUoW

func (f FuncMatchUoWFactory) Create() commands.MatchUoW {
	return f()
}

type FuncRecommendationUoWFactory func() commands.RecommendationUoW

func (f FuncRecommendationUoWFactory) Create() commands.RecommendationUoW {
	return f()
}

type FuncMatchReservationUoWFactory func() commands.MatchReservationUoW

func (f FuncMatchReservationUoWFactory) Create() commands.MatchReservationUoW {
	return f()
}

type FuncMatchRecommendationUoWFactory func() commands.MatchRecommendationUoW

func (f FuncMatchRecommendationUoWFactory) Create() commands.MatchRecommendationUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
