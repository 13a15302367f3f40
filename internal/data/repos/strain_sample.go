package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/types"
)

type StrainSampleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.StrainSample) ([]*types.StrainSample, error)
	GetByUserWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.StrainSample, error)
}

type strainSampleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStrainSampleRepo(db *gorm.DB, baseLog *logger.Logger) StrainSampleRepo {
	return &strainSampleRepo{db: db, log: baseLog.With("repo", "StrainSampleRepo")}
}

func (r *strainSampleRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.StrainSample) ([]*types.StrainSample, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.StrainSample{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *strainSampleRepo) GetByUserWindow(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.StrainSample, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.StrainSample
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND recorded_at >= ? AND recorded_at < ?", userID, from, to).
		Order("recorded_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
