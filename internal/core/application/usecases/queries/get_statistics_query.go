package queries

import (
	"errors"

	"freightmatch/internal/pkg/guard"
)

var (
	ErrGetStatisticsQueryIsNotConstructed = errors.New(
		"GetStatisticsQuery must be created via NewGetStatisticsQuery constructor",
	)
)

// GetStatisticsQuery retrieves lifecycle counters for operational dashboards.
//
// Example:
//
//	query := NewGetStatisticsQuery()
//	handler := NewGetStatisticsQueryHandler(db)
//
//	stats, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get statistics: %w", err)
//	}
//	fmt.Printf("%d matches reserved, %d active holds\n",
//	    stats.MatchesByStatus["Reserved"], stats.ActiveReservations)
type GetStatisticsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetStatisticsQuery creates a parameterless statistics query.
func NewGetStatisticsQuery() GetStatisticsQuery {
	return GetStatisticsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetStatisticsQueryIsNotConstructed)
}

// StatisticsResponse aggregates match counts by status plus the number of
// currently active reservations and outstanding recommendations.
type StatisticsResponse struct {
	MatchesByStatus            map[string]int64
	ActiveReservations         int64
	OutstandingRecommendations int64
}
