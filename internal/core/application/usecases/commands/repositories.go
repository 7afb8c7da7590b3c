// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management,
// conditional persistence, and post-commit event publication.
package commands

import (
	"context"

	"freightmatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// MatchRepoFactory provides access to the match repository within a transaction.
	MatchRepoFactory interface {
		MatchRepository() ports.MatchRepository
	}

	// ReservationRepoFactory provides access to the reservation repository within a transaction.
	ReservationRepoFactory interface {
		ReservationRepository() ports.ReservationRepository
	}

	// RecommendationRepoFactory provides access to the recommendation repository within a transaction.
	RecommendationRepoFactory interface {
		RecommendationRepository() ports.RecommendationRepository
	}

	// MatchUoW manages transactions for match-only operations.
	MatchUoW interface {
		TxManager
		MatchRepoFactory
	}

	// MatchUoWFactory creates new match unit of work instances.
	MatchUoWFactory interface {
		Create() MatchUoW
	}

	// RecommendationUoW manages transactions for recommendation-only operations.
	RecommendationUoW interface {
		TxManager
		RecommendationRepoFactory
	}

	// RecommendationUoWFactory creates new recommendation unit of work instances.
	RecommendationUoWFactory interface {
		Create() RecommendationUoW
	}

	// MatchReservationUoW manages transactions spanning match and reservation
	// aggregates. Used by reserve, decline and reservation-expiry operations,
	// which must commit both records atomically.
	MatchReservationUoW interface {
		TxManager
		MatchRepoFactory
		ReservationRepoFactory
	}

	// MatchReservationUoWFactory creates new match+reservation unit of work instances.
	MatchReservationUoWFactory interface {
		Create() MatchReservationUoW
	}

	// MatchRecommendationUoW manages transactions spanning match and
	// recommendation aggregates.
	MatchRecommendationUoW interface {
		TxManager
		MatchRepoFactory
		RecommendationRepoFactory
	}

	// MatchRecommendationUoWFactory creates new match+recommendation unit of work instances.
	MatchRecommendationUoWFactory interface {
		Create() MatchRecommendationUoW
	}

	// UoW manages transactions across all three aggregate types.
	// Used by accept, which converts the reservation, accepts the match and
	// withdraws competing recommendations in one transaction.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   matchRepo := uow.MatchRepository()
	//   reservationRepo := uow.ReservationRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		MatchRepoFactory
		ReservationRepoFactory
		RecommendationRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
