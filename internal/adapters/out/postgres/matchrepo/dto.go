// Package matchrepo provides data transfer objects and mapping functions for
// match persistence. It implements the repository pattern for the match
// aggregate, handling conversion between domain entities and database rows.
package matchrepo

import (
	"encoding/json"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"

	"github.com/google/uuid"
)

// MatchDTO represents the database structure for persisting match aggregates.
// Indexed for the lookups the application performs: by driver, by load, by
// status, and by reservation deadline.
type MatchDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	LoadID        uuid.UUID  `gorm:"type:uuid;index"`
	DriverID      *uuid.UUID `gorm:"type:uuid;index"`
	VehicleID     *uuid.UUID `gorm:"type:uuid"`
	Kind          int
	Status        int `gorm:"index"`
	Score         float64
	ScoreFactors  []byte `gorm:"type:jsonb"`
	ProposedRate  float64
	AcceptedRate  *float64
	ReservedUntil *time.Time `gorm:"index"`
	DeclineReason string
	DeclineNotes  string
	Segments      []SegmentDTO `gorm:"foreignKey:MatchID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the database table name for match entities.
func (MatchDTO) TableName() string {
	return "matches"
}

// SegmentDTO represents one relay segment row. Segments are value objects
// owned by their match; the composite key is (match_id, idx).
type SegmentDTO struct {
	MatchID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Idx         int       `gorm:"primaryKey;column:idx"`
	DriverID    uuid.UUID `gorm:"type:uuid;index"`
	Origin      string
	Destination string
	Rate        float64
	Status      int
}

// TableName specifies the database table name for relay segments.
func (SegmentDTO) TableName() string {
	return "match_segments"
}

// fromDomain converts a match domain aggregate to its database representation.
func fromDomain(aggregate *match.Match) (MatchDTO, error) {
	factors, err := json.Marshal(aggregate.ScoreFactors())
	if err != nil {
		return MatchDTO{}, err
	}

	var driverID, vehicleID *uuid.UUID
	if id := aggregate.DriverID(); !id.IsZero() {
		raw := id.Bytes()
		driverID = &raw
	}
	if id := aggregate.VehicleID(); !id.IsZero() {
		raw := id.Bytes()
		vehicleID = &raw
	}

	segments := aggregate.Segments()
	segmentDTOs := make([]SegmentDTO, 0, len(segments))
	for _, s := range segments {
		segmentDTOs = append(segmentDTOs, SegmentDTO{
			MatchID:     aggregate.ID().Bytes(),
			Idx:         s.Index(),
			DriverID:    s.DriverID().Bytes(),
			Origin:      s.Origin(),
			Destination: s.Destination(),
			Rate:        s.Rate(),
			Status:      int(s.Status()),
		})
	}

	return MatchDTO{
		ID:            aggregate.ID().Bytes(),
		LoadID:        aggregate.LoadID().Bytes(),
		DriverID:      driverID,
		VehicleID:     vehicleID,
		Kind:          int(aggregate.Kind()),
		Status:        int(aggregate.Status()),
		Score:         aggregate.Score(),
		ScoreFactors:  factors,
		ProposedRate:  aggregate.ProposedRate(),
		AcceptedRate:  aggregate.AcceptedRate(),
		ReservedUntil: aggregate.ReservedUntil(),
		DeclineReason: aggregate.DeclineReason(),
		DeclineNotes:  aggregate.DeclineNotes(),
		Segments:      segmentDTOs,
		CreatedAt:     aggregate.CreatedAt(),
		UpdatedAt:     aggregate.UpdatedAt(),
	}, nil
}

// toDomain converts a database DTO to a match domain aggregate using RestoreMatch.
func toDomain(dto MatchDTO) (*match.Match, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loadID, err := kernel.UUIDFromBytes(dto.LoadID[:])
	if err != nil {
		return nil, err
	}

	var driverID, vehicleID kernel.UUID
	if dto.DriverID != nil {
		if driverID, err = kernel.UUIDFromBytes((*dto.DriverID)[:]); err != nil {
			return nil, err
		}
	}
	if dto.VehicleID != nil {
		if vehicleID, err = kernel.UUIDFromBytes((*dto.VehicleID)[:]); err != nil {
			return nil, err
		}
	}

	var factors map[string]float64
	if len(dto.ScoreFactors) > 0 {
		if err = json.Unmarshal(dto.ScoreFactors, &factors); err != nil {
			return nil, err
		}
	}

	segments := make([]match.Segment, 0, len(dto.Segments))
	for _, s := range dto.Segments {
		segmentDriver, segErr := kernel.UUIDFromBytes(s.DriverID[:])
		if segErr != nil {
			return nil, segErr
		}

		segment, segErr := match.RestoreSegment(s.Idx, segmentDriver, s.Origin, s.Destination, s.Rate, match.Status(s.Status))
		if segErr != nil {
			return nil, segErr
		}
		segments = append(segments, segment)
	}

	return match.RestoreMatch(
		id,
		loadID,
		driverID,
		vehicleID,
		match.Kind(dto.Kind),
		match.Status(dto.Status),
		dto.Score,
		factors,
		dto.ProposedRate,
		dto.AcceptedRate,
		dto.ReservedUntil,
		dto.DeclineReason,
		dto.DeclineNotes,
		segments,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
