// Package reservationrepo provides data transfer objects and mapping
// functions for reservation persistence.
package reservationrepo

import (
	"encoding/json"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/reservation"

	"github.com/google/uuid"
)

// ReservationDTO represents the database structure for persisting
// reservation aggregates.
//
// The partial unique indexes on driver_id and load_id (status = 1 is
// reservation.Active) are what makes exclusivity hold under concurrent
// inserts: two transactions can both pass the application-level conflict
// check, but only one insert commits. A row that leaves Active frees its
// slot; a lapsed-but-unswept Active row keeps blocking until the sweeper
// retires it.
type ReservationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	MatchID   uuid.UUID `gorm:"type:uuid;index"`
	DriverID  uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uniq_reservations_active_driver,where:status = 1"`
	LoadID    uuid.UUID `gorm:"type:uuid;index;uniqueIndex:uniq_reservations_active_load,where:status = 1"`
	Status    int       `gorm:"index"`
	Metadata  []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

// TableName specifies the database table name for reservation entities.
func (ReservationDTO) TableName() string {
	return "reservations"
}

// fromDomain converts a reservation domain aggregate to its database representation.
func fromDomain(aggregate *reservation.Reservation) (ReservationDTO, error) {
	metadata, err := json.Marshal(aggregate.Metadata())
	if err != nil {
		return ReservationDTO{}, err
	}

	return ReservationDTO{
		ID:        aggregate.ID().Bytes(),
		MatchID:   aggregate.MatchID().Bytes(),
		DriverID:  aggregate.DriverID().Bytes(),
		LoadID:    aggregate.LoadID().Bytes(),
		Status:    int(aggregate.Status()),
		Metadata:  metadata,
		CreatedAt: aggregate.CreatedAt(),
		ExpiresAt: aggregate.ExpiresAt(),
	}, nil
}

// toDomain converts a database DTO to a reservation domain aggregate.
func toDomain(dto ReservationDTO) (*reservation.Reservation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	matchID, err := kernel.UUIDFromBytes(dto.MatchID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	loadID, err := kernel.UUIDFromBytes(dto.LoadID[:])
	if err != nil {
		return nil, err
	}

	var metadata map[string]string
	if len(dto.Metadata) > 0 {
		if err = json.Unmarshal(dto.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	return reservation.RestoreReservation(
		id,
		matchID,
		driverID,
		loadID,
		reservation.Status(dto.Status),
		dto.CreatedAt,
		dto.ExpiresAt,
		metadata,
	)
}
