package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetMatchesQueryHandler retrieves matches for a driver or a load from the
// database. Segments are not loaded; read the individual match for those.
type GetMatchesQueryHandler struct {
	db *gorm.DB
}

// NewGetMatchesQueryHandler creates a handler for match listing queries.
// Requires a GORM database connection for query execution.
func NewGetMatchesQueryHandler(db *gorm.DB) GetMatchesQueryHandler {
	return GetMatchesQueryHandler{db: db}
}

// Handle executes the query. Results are ordered newest first.
func (h GetMatchesQueryHandler) Handle(ctx context.Context, query GetMatchesQuery) ([]MatchResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sqlText := `
		SELECT
			id,
			load_id,
			driver_id,
			vehicle_id,
			kind,
			status,
			score,
			proposed_rate,
			accepted_rate,
			reserved_until,
			decline_reason,
			created_at
		FROM matches
		WHERE `

	var args []any
	if !query.DriverID().IsZero() {
		sqlText += `driver_id = ?`
		args = append(args, query.DriverID().Bytes())
	} else {
		sqlText += `load_id = ?`
		args = append(args, query.LoadID().Bytes())
	}

	if statuses := query.Statuses(); len(statuses) > 0 {
		values := make([]int, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, int(s))
		}
		sqlText += ` AND status IN ?`
		args = append(args, values)
	}

	sqlText += ` ORDER BY created_at DESC`

	rows, err := h.db.WithContext(ctx).Raw(sqlText, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]MatchResponse, 0)
	for rows.Next() {
		response, scanErr := scanMatchRow(rows.Scan)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return matches, nil
}
