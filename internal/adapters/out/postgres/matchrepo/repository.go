package matchrepo

import (
	"context"
	"errors"
	"time"

	"freightmatch/internal/core/domain/model/kernel"
	"freightmatch/internal/core/domain/model/match"
	"freightmatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormMatchRepository implements MatchRepository using GORM.
type GormMatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMatchRepository creates a new GORM match repository.
func NewGormMatchRepository(db *gorm.DB, tracker aggregateTracker) *GormMatchRepository {
	return &GormMatchRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new match to the database, segments included.
func (r *GormMatchRepository) Add(ctx context.Context, aggregate *match.Match) error {
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

// Get retrieves a match by ID.
func (r *GormMatchRepository) Get(ctx context.Context, id kernel.UUID) (*match.Match, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto MatchDTO
	err := r.db.WithContext(ctx).Preload("Segments").First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("match", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByDriver retrieves matches referencing the driver, optionally filtered by status.
func (r *GormMatchRepository) GetByDriver(
	ctx context.Context,
	driverID kernel.UUID,
	statuses []match.Status,
) ([]*match.Match, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Preload("Segments").Where("driver_id = ?", driverID.Bytes())
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statusValues(statuses))
	}

	var dtos []MatchDTO
	if err := query.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetByLoad retrieves matches referencing the load, optionally filtered by status.
func (r *GormMatchRepository) GetByLoad(
	ctx context.Context,
	loadID kernel.UUID,
	statuses []match.Status,
) ([]*match.Match, error) {
	if err := loadID.Validate(); err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).Preload("Segments").Where("load_id = ?", loadID.Bytes())
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statusValues(statuses))
	}

	var dtos []MatchDTO
	if err := query.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// GetReservedWithDeadlineBefore retrieves matches still marked Reserved whose
// reservation deadline has passed.
func (r *GormMatchRepository) GetReservedWithDeadlineBefore(
	ctx context.Context,
	deadline time.Time,
) ([]*match.Match, error) {
	var dtos []MatchDTO
	err := r.db.WithContext(ctx).
		Preload("Segments").
		Where("status = ? AND reserved_until IS NOT NULL AND reserved_until <= ?", int(match.Reserved), deadline).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// UpdateFrom saves the match conditionally on the stored row still carrying
// the prior status. Zero rows affected means a concurrent writer moved the
// match first; that maps to a Conflict error unless the row is gone entirely.
func (r *GormMatchRepository) UpdateFrom(
	ctx context.Context,
	aggregate *match.Match,
	prior match.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	// A map, not the DTO struct, so cleared columns are written as NULL.
	columns := map[string]any{
		"status":         dto.Status,
		"score":          dto.Score,
		"score_factors":  dto.ScoreFactors,
		"proposed_rate":  dto.ProposedRate,
		"accepted_rate":  dto.AcceptedRate,
		"reserved_until": dto.ReservedUntil,
		"decline_reason": dto.DeclineReason,
		"decline_notes":  dto.DeclineNotes,
		"updated_at":     dto.UpdatedAt,
	}

	result := r.db.WithContext(ctx).Model(&MatchDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(prior)).
		Updates(columns)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&MatchDTO{}).
			Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("match", aggregate.ID().String())
		}
		return errs.NewConflictError("match", aggregate.ID().String())
	}

	for _, segment := range dto.Segments {
		err := r.db.WithContext(ctx).Model(&SegmentDTO{}).
			Where("match_id = ? AND idx = ?", segment.MatchID, segment.Idx).
			Update("status", segment.Status).Error
		if err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func statusValues(statuses []match.Status) []int {
	values := make([]int, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, int(s))
	}
	return values
}

func toDomainSlice(dtos []MatchDTO) ([]*match.Match, error) {
	matches := make([]*match.Match, 0, len(dtos))
	for _, dto := range dtos {
		m, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, nil
}
