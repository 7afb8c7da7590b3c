package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/reservation"
	"freightmatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveReservationQueryHandler retrieves the active reservation for a
// match, driver, or load scope from the database.
type GetActiveReservationQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveReservationQueryHandler creates a handler for active reservation queries.
// Requires a GORM database connection for query execution.
func NewGetActiveReservationQueryHandler(db *gorm.DB) GetActiveReservationQueryHandler {
	return GetActiveReservationQueryHandler{db: db}
}

// Handle executes the query. A reservation counts as active only while its
// status is Active and its expiry is still in the future; a lapsed record the
// sweeper has not visited yet is treated as absent. Returns an ObjectNotFound
// error when there is no active reservation for the scope.
func (h GetActiveReservationQueryHandler) Handle(
	ctx context.Context,
	query GetActiveReservationQuery,
) (ReservationResponse, error) {
	if err := query.Validate(); err != nil {
		return ReservationResponse{}, err
	}

	sqlText := fmt.Sprintf(`
		SELECT
			id,
			match_id,
			driver_id,
			load_id,
			status,
			created_at,
			expires_at
		FROM reservations
		WHERE %s = ? AND status = ? AND expires_at > ?
	`, query.scope)

	row := h.db.WithContext(ctx).
		Raw(sqlText, query.ID().Bytes(), int(reservation.Active), time.Now().UTC()).
		Row()

	var (
		id, matchID, driverID, loadID uuid.UUID
		status                        int
		createdAt, expiresAt          time.Time
	)

	err := row.Scan(&id, &matchID, &driverID, &loadID, &status, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ReservationResponse{}, errs.NewObjectNotFoundError("reservation", query.ID().String())
		}
		return ReservationResponse{}, err
	}

	response := ReservationResponse{
		Status:    reservation.Status(status).String(),
		CreatedAt: createdAt,
		ExpiresAt: expiresAt,
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ReservationResponse{}, err
	}
	if response.MatchID, err = kernel.UUIDFromBytes(matchID[:]); err != nil {
		return ReservationResponse{}, err
	}
	if response.DriverID, err = kernel.UUIDFromBytes(driverID[:]); err != nil {
		return ReservationResponse{}, err
	}
	if response.LoadID, err = kernel.UUIDFromBytes(loadID[:]); err != nil {
		return ReservationResponse{}, err
	}

	return response, nil
}
