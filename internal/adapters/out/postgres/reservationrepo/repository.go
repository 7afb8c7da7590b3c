package reservationrepo

import (
	"context"
	"errors"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/reservation"
	"freightmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReservationRepository implements ReservationRepository using GORM.
type GormReservationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormReservationRepository creates a new GORM reservation repository.
func NewGormReservationRepository(db *gorm.DB, tracker aggregateTracker) *GormReservationRepository {
	return &GormReservationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new reservation to the database.
// A unique-violation on the active-driver or active-load index means a
// concurrent writer holds the slot; that loss surfaces as a Conflict so the
// caller treats it like any other lost race.
func (r *GormReservationRepository) Add(ctx context.Context, aggregate *reservation.Reservation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictError("reservation", "driver or load already holds an active reservation")
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a reservation by ID.
func (r *GormReservationRepository) Get(ctx context.Context, id kernel.UUID) (*reservation.Reservation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReservationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("reservation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByMatch retrieves the active, unexpired reservation holding the match.
func (r *GormReservationRepository) GetActiveByMatch(
	ctx context.Context,
	matchID kernel.UUID,
	now time.Time,
) (*reservation.Reservation, error) {
	if err := matchID.Validate(); err != nil {
		return nil, err
	}

	return r.getActive(ctx, "match_id = ?", matchID, now)
}

// GetActiveByDriver retrieves the active, unexpired reservation held by the driver.
func (r *GormReservationRepository) GetActiveByDriver(
	ctx context.Context,
	driverID kernel.UUID,
	now time.Time,
) (*reservation.Reservation, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	return r.getActive(ctx, "driver_id = ?", driverID, now)
}

// GetActiveByLoad retrieves the active, unexpired reservation holding the load.
func (r *GormReservationRepository) GetActiveByLoad(
	ctx context.Context,
	loadID kernel.UUID,
	now time.Time,
) (*reservation.Reservation, error) {
	if err := loadID.Validate(); err != nil {
		return nil, err
	}

	return r.getActive(ctx, "load_id = ?", loadID, now)
}

func (r *GormReservationRepository) getActive(
	ctx context.Context,
	condition string,
	id kernel.UUID,
	now time.Time,
) (*reservation.Reservation, error) {
	var dto ReservationDTO
	err := r.db.WithContext(ctx).
		Where(condition, id.Bytes()).
		Where("status = ? AND expires_at > ?", int(reservation.Active), now).
		First(&dto).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("reservation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// HasActiveConflict reports whether a hold by driverID on loadID would collide
// with an existing active reservation: the driver already committed to another
// load, or the load already held by another driver.
func (r *GormReservationRepository) HasActiveConflict(
	ctx context.Context,
	driverID kernel.UUID,
	loadID kernel.UUID,
	now time.Time,
) (bool, error) {
	if err := errors.Join(driverID.Validate(), loadID.Validate()); err != nil {
		return false, err
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&ReservationDTO{}).
		Where("status = ? AND expires_at > ?", int(reservation.Active), now).
		Where(
			"(driver_id = ? AND load_id <> ?) OR (load_id = ? AND driver_id <> ?)",
			driverID.Bytes(), loadID.Bytes(), loadID.Bytes(), driverID.Bytes(),
		).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// GetAllExpired retrieves reservations still marked Active whose expiry has passed.
func (r *GormReservationRepository) GetAllExpired(
	ctx context.Context,
	now time.Time,
) ([]*reservation.Reservation, error) {
	var dtos []ReservationDTO
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at <= ?", int(reservation.Active), now).
		Order("expires_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	reservations := make([]*reservation.Reservation, 0, len(dtos))
	for _, dto := range dtos {
		res, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		reservations = append(reservations, res)
	}

	return reservations, nil
}

// UpdateFrom saves the reservation conditionally on the stored row still
// carrying the prior status.
func (r *GormReservationRepository) UpdateFrom(
	ctx context.Context,
	aggregate *reservation.Reservation,
	prior reservation.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	columns := map[string]any{
		"status":   dto.Status,
		"metadata": dto.Metadata,
	}

	result := r.db.WithContext(ctx).Model(&ReservationDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(prior)).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&ReservationDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("reservation", aggregate.ID().String())
		}
		return errs.NewConflictError("reservation", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
