package queries

import (
	"context"
	"time"

	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/core/domain/model/reservation"

	"gorm.io/gorm"
)

// GetStatisticsQueryHandler computes lifecycle counters from the database.
type GetStatisticsQueryHandler struct {
	db *gorm.DB
}

// NewGetStatisticsQueryHandler creates a handler for statistics queries.
// Requires a GORM database connection for query execution.
func NewGetStatisticsQueryHandler(db *gorm.DB) GetStatisticsQueryHandler {
	return GetStatisticsQueryHandler{db: db}
}

// Handle executes the query. Reservation and recommendation counters follow
// the same activity rule as the lookups: status alone is not enough, the
// expiry must also still be in the future.
func (h GetStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetStatisticsQuery,
) (StatisticsResponse, error) {
	if err := query.Validate(); err != nil {
		return StatisticsResponse{}, err
	}

	now := time.Now().UTC()
	response := StatisticsResponse{
		MatchesByStatus: make(map[string]int64),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			status,
			COUNT(*)
		FROM matches
		GROUP BY status
	`).Rows()
	if err != nil {
		return StatisticsResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var status int
		var count int64
		if err = rows.Scan(&status, &count); err != nil {
			return StatisticsResponse{}, err
		}
		response.MatchesByStatus[match.Status(status).String()] = count
	}
	if err = rows.Err(); err != nil {
		return StatisticsResponse{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM reservations
		WHERE status = ? AND expires_at > ?
	`, int(reservation.Active), now).Row().Scan(&response.ActiveReservations)
	if err != nil {
		return StatisticsResponse{}, err
	}

	err = h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*)
		FROM recommendations
		WHERE status IN ? AND expires_at > ?
	`, []int{int(recommendation.Active), int(recommendation.Viewed)}, now).
		Row().Scan(&response.OutstandingRecommendations)
	if err != nil {
		return StatisticsResponse{}, err
	}

	return response, nil
}
