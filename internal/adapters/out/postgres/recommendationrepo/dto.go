// Package recommendationrepo provides data transfer objects and mapping
// functions for recommendation persistence. Load summary fields are stored
// denormalized so an offer renders without a join against load data.
package recommendationrepo

import (
	"encoding/json"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/recommendation"

	"github.com/google/uuid"
)

// RecommendationDTO represents the database structure for persisting
// recommendation aggregates.
type RecommendationDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	MatchID  uuid.UUID `gorm:"type:uuid;index"`
	LoadID   uuid.UUID `gorm:"type:uuid;index"`
	DriverID uuid.UUID `gorm:"type:uuid;index"`

	Score        float64
	ScoreFactors []byte `gorm:"type:jsonb"`
	ProposedRate float64

	Origin        string
	Destination   string
	EquipmentType string
	WeightLbs     float64

	EmptyMiles      float64
	LoadedMiles     float64
	DeadheadPercent float64

	Status        int `gorm:"index"`
	DeclineReason string
	ExpiresAt     time.Time `gorm:"index"`
	ViewedAt      *time.Time
	CreatedAt     time.Time
}

// TableName specifies the database table name for recommendation entities.
func (RecommendationDTO) TableName() string {
	return "recommendations"
}

// fromDomain converts a recommendation domain aggregate to its database representation.
func fromDomain(aggregate *recommendation.Recommendation) (RecommendationDTO, error) {
	factors, err := json.Marshal(aggregate.ScoreFactors())
	if err != nil {
		return RecommendationDTO{}, err
	}

	summary := aggregate.LoadSummary()

	return RecommendationDTO{
		ID:              aggregate.ID().Bytes(),
		MatchID:         aggregate.MatchID().Bytes(),
		LoadID:          aggregate.LoadID().Bytes(),
		DriverID:        aggregate.DriverID().Bytes(),
		Score:           aggregate.Score(),
		ScoreFactors:    factors,
		ProposedRate:    aggregate.ProposedRate(),
		Origin:          summary.Origin,
		Destination:     summary.Destination,
		EquipmentType:   summary.EquipmentType,
		WeightLbs:       summary.WeightLbs,
		EmptyMiles:      aggregate.EmptyMiles(),
		LoadedMiles:     aggregate.LoadedMiles(),
		DeadheadPercent: aggregate.DeadheadPercent(),
		Status:          int(aggregate.Status()),
		DeclineReason:   aggregate.DeclineReason(),
		ExpiresAt:       aggregate.ExpiresAt(),
		ViewedAt:        aggregate.ViewedAt(),
		CreatedAt:       aggregate.CreatedAt(),
	}, nil
}

// toDomain converts a database DTO to a recommendation domain aggregate.
func toDomain(dto RecommendationDTO) (*recommendation.Recommendation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	matchID, err := kernel.UUIDFromBytes(dto.MatchID[:])
	if err != nil {
		return nil, err
	}

	loadID, err := kernel.UUIDFromBytes(dto.LoadID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	var factors map[string]float64
	if len(dto.ScoreFactors) > 0 {
		if err = json.Unmarshal(dto.ScoreFactors, &factors); err != nil {
			return nil, err
		}
	}

	return recommendation.RestoreRecommendation(
		id,
		matchID,
		loadID,
		driverID,
		dto.Score,
		factors,
		dto.ProposedRate,
		recommendation.LoadSummary{
			Origin:        dto.Origin,
			Destination:   dto.Destination,
			EquipmentType: dto.EquipmentType,
			WeightLbs:     dto.WeightLbs,
		},
		dto.EmptyMiles,
		dto.LoadedMiles,
		dto.DeadheadPercent,
		recommendation.Status(dto.Status),
		dto.DeclineReason,
		dto.ExpiresAt,
		dto.ViewedAt,
		dto.CreatedAt,
	)
}
