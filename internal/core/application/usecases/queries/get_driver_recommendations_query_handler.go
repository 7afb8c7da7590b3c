package queries

import (
	"context"
	"database/sql"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/recommendation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDriverRecommendationsQueryHandler retrieves a driver's recommendation
// feed from the database, best offers first.
type GetDriverRecommendationsQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverRecommendationsQueryHandler creates a handler for recommendation feed queries.
// Requires a GORM database connection for query execution.
func NewGetDriverRecommendationsQueryHandler(db *gorm.DB) GetDriverRecommendationsQueryHandler {
	return GetDriverRecommendationsQueryHandler{db: db}
}

// Handle executes the query. Results are ordered by score descending so the
// strongest offers lead the feed.
func (h GetDriverRecommendationsQueryHandler) Handle(
	ctx context.Context,
	query GetDriverRecommendationsQuery,
) ([]RecommendationResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			id,
			match_id,
			load_id,
			score,
			proposed_rate,
			origin,
			destination,
			equipment_type,
			weight_lbs,
			empty_miles,
			loaded_miles,
			deadhead_percent,
			status,
			expires_at,
			viewed_at,
			created_at
		FROM recommendations
		WHERE driver_id = ?`

	args := []any{query.DriverID().Bytes()}
	if statuses := query.Statuses(); len(statuses) > 0 {
		values := make([]int, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, int(s))
		}
		sqlText += ` AND status IN ?`
		args = append(args, values)
	}

	sqlText += ` ORDER BY score DESC, created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	feed := make([]RecommendationResponse, 0)
	for rows.Next() {
		var (
			id, matchID, loadID uuid.UUID
			status              int
			viewedAt            sql.NullTime
			response            RecommendationResponse
		)

		err = rows.Scan(
			&id,
			&matchID,
			&loadID,
			&response.Score,
			&response.ProposedRate,
			&response.Origin,
			&response.Destination,
			&response.EquipmentType,
			&response.WeightLbs,
			&response.EmptyMiles,
			&response.LoadedMiles,
			&response.DeadheadPercent,
			&status,
			&response.ExpiresAt,
			&viewedAt,
			&response.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if response.MatchID, err = kernel.UUIDFromBytes(matchID[:]); err != nil {
			return nil, err
		}
		if response.LoadID, err = kernel.UUIDFromBytes(loadID[:]); err != nil {
			return nil, err
		}

		response.Status = recommendation.Status(status).String()
		if viewedAt.Valid {
			at := viewedAt.Time
			response.ViewedAt = &at
		}

		feed = append(feed, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return feed, nil
}
