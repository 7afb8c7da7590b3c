package queries

import (
	"context"
	"database/sql"
	"errors"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetMatchQueryHandler retrieves a single match from the database.
type GetMatchQueryHandler struct {
	db *gorm.DB
}

// NewGetMatchQueryHandler creates a handler for single match queries.
// Requires a GORM database connection for query execution.
func NewGetMatchQueryHandler(db *gorm.DB) GetMatchQueryHandler {
	return GetMatchQueryHandler{db: db}
}

// Handle executes the query. Returns an ObjectNotFound error when no match
// with the given identifier exists.
func (h GetMatchQueryHandler) Handle(ctx context.Context, query GetMatchQuery) (MatchResponse, error) {
	if err := query.Validate(); err != nil {
		return MatchResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
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
		WHERE id = ?
	`, query.MatchID().Bytes()).Row()

	response, err := scanMatchRow(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MatchResponse{}, errs.NewObjectNotFoundError("match", query.MatchID().String())
		}
		return MatchResponse{}, err
	}

	segments, err := h.loadSegments(ctx, query.MatchID())
	if err != nil {
		return MatchResponse{}, err
	}
	response.Segments = segments

	return response, nil
}

func (h GetMatchQueryHandler) loadSegments(ctx context.Context, matchID kernel.UUID) ([]SegmentResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			idx,
			driver_id,
			origin,
			destination,
			rate,
			status
		FROM match_segments
		WHERE match_id = ?
		ORDER BY idx
	`, matchID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	segments := make([]SegmentResponse, 0)
	for rows.Next() {
		var (
			idx                 int
			driverID            uuid.UUID
			origin, destination string
			rate                float64
			status              int
		)

		if err = rows.Scan(&idx, &driverID, &origin, &destination, &rate, &status); err != nil {
			return nil, err
		}

		segmentDriver, idErr := kernel.UUIDFromBytes(driverID[:])
		if idErr != nil {
			return nil, idErr
		}

		segments = append(segments, SegmentResponse{
			Index:       idx,
			DriverID:    segmentDriver,
			Origin:      origin,
			Destination: destination,
			Rate:        rate,
			Status:      match.Status(status).String(),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return segments, nil
}

// scanMatchRow maps one matches row to a MatchResponse. The scan callback
// lets it serve both sql.Row and sql.Rows sources.
func scanMatchRow(scan func(dest ...any) error) (MatchResponse, error) {
	var (
		id, loadID          uuid.UUID
		driverID, vehicleID uuid.NullUUID
		kind, status        int
		score, proposedRate float64
		acceptedRate        sql.NullFloat64
		reservedUntil       sql.NullTime
		declineReason       string
		createdAt           sql.NullTime
	)

	err := scan(
		&id,
		&loadID,
		&driverID,
		&vehicleID,
		&kind,
		&status,
		&score,
		&proposedRate,
		&acceptedRate,
		&reservedUntil,
		&declineReason,
		&createdAt,
	)
	if err != nil {
		return MatchResponse{}, err
	}

	response := MatchResponse{
		Kind:          match.Kind(kind).String(),
		Status:        match.Status(status).String(),
		Score:         score,
		ProposedRate:  proposedRate,
		DeclineReason: declineReason,
		CreatedAt:     createdAt.Time,
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return MatchResponse{}, err
	}
	if response.LoadID, err = kernel.UUIDFromBytes(loadID[:]); err != nil {
		return MatchResponse{}, err
	}
	if driverID.Valid {
		if response.DriverID, err = kernel.UUIDFromBytes(driverID.UUID[:]); err != nil {
			return MatchResponse{}, err
		}
	}
	if vehicleID.Valid {
		if response.VehicleID, err = kernel.UUIDFromBytes(vehicleID.UUID[:]); err != nil {
			return MatchResponse{}, err
		}
	}
	if acceptedRate.Valid {
		rate := acceptedRate.Float64
		response.AcceptedRate = &rate
	}
	if reservedUntil.Valid {
		until := reservedUntil.Time
		response.ReservedUntil = &until
	}

	return response, nil
}
