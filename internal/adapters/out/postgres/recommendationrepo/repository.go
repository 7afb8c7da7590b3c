package recommendationrepo

import (
	"context"
	"errors"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/recommendation"
	"freightmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRecommendationRepository implements RecommendationRepository using GORM.
type GormRecommendationRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormRecommendationRepository creates a new GORM recommendation repository.
func NewGormRecommendationRepository(db *gorm.DB, tracker aggregateTracker) *GormRecommendationRepository {
	return &GormRecommendationRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new recommendation to the database.
func (r *GormRecommendationRepository) Add(ctx context.Context, aggregate *recommendation.Recommendation) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a recommendation by ID.
func (r *GormRecommendationRepository) Get(ctx context.Context, id kernel.UUID) (*recommendation.Recommendation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto RecommendationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("recommendation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByDriver retrieves recommendations offered to the driver, optionally
// filtered by status.
func (r *GormRecommendationRepository) GetByDriver(
	ctx context.Context,
	driverID kernel.UUID,
	statuses []recommendation.Status,
) ([]*recommendation.Recommendation, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Where("driver_id = ?", driverID.Bytes())
	if len(statuses) > 0 {
		values := make([]int, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, int(s))
		}
		query = query.Where("status IN ?", values)
	}

	var dtos []RecommendationDTO
	if err := query.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetOutstandingByMatch retrieves the Active and Viewed recommendations tied
// to the match.
func (r *GormRecommendationRepository) GetOutstandingByMatch(
	ctx context.Context,
	matchID kernel.UUID,
) ([]*recommendation.Recommendation, error) {
	if err := matchID.Validate(); err != nil {
		return nil, err
	}

	return r.getOutstanding(ctx, "match_id = ?", matchID)
}

// GetOutstandingByLoad retrieves the Active and Viewed recommendations tied
// to the load across all matches.
func (r *GormRecommendationRepository) GetOutstandingByLoad(
	ctx context.Context,
	loadID kernel.UUID,
) ([]*recommendation.Recommendation, error) {
	if err := loadID.Validate(); err != nil {
		return nil, err
	}

	return r.getOutstanding(ctx, "load_id = ?", loadID)
}

func (r *GormRecommendationRepository) getOutstanding(
	ctx context.Context,
	condition string,
	id kernel.UUID,
) ([]*recommendation.Recommendation, error) {
	var dtos []RecommendationDTO
	err := r.db.WithContext(ctx).
		Where(condition, id.Bytes()).
		Where("status IN ?", []int{int(recommendation.Active), int(recommendation.Viewed)}).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetAllExpired retrieves recommendations still outstanding whose expiry has passed.
func (r *GormRecommendationRepository) GetAllExpired(
	ctx context.Context,
	now time.Time,
) ([]*recommendation.Recommendation, error) {
	var dtos []RecommendationDTO
	err := r.db.WithContext(ctx).
		Where("status IN ? AND expires_at <= ?",
			[]int{int(recommendation.Active), int(recommendation.Viewed)}, now).
		Order("expires_at ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// UpdateFrom saves the recommendation conditionally on the stored row still
// carrying the prior status.
func (r *GormRecommendationRepository) UpdateFrom(
	ctx context.Context,
	aggregate *recommendation.Recommendation,
	prior recommendation.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	columns := map[string]any{
		"status":         dto.Status,
		"decline_reason": dto.DeclineReason,
		"viewed_at":      dto.ViewedAt,
	}

	result := r.db.WithContext(ctx).Model(&RecommendationDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(prior)).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&RecommendationDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("recommendation", aggregate.ID().String())
		}
		return errs.NewConflictError("recommendation", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func toDomainSlice(dtos []RecommendationDTO) ([]*recommendation.Recommendation, error) {
	recommendations := make([]*recommendation.Recommendation, 0, len(dtos))
	for _, dto := range dtos {
		rec, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		recommendations = append(recommendations, rec)
	}
	return recommendations, nil
}
