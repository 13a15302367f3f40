package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/types"
)

type IntensityScoreRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.IntensityScoreRecord) (*types.IntensityScoreRecord, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, exerciseID *uuid.UUID, limit int) ([]*types.IntensityScoreRecord, error)
}

type intensityScoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIntensityScoreRepo(db *gorm.DB, baseLog *logger.Logger) IntensityScoreRepo {
	return &intensityScoreRepo{db: db, log: baseLog.With("repo", "IntensityScoreRepo")}
}

func (r *intensityScoreRepo) Create(ctx context.Context, tx *gorm.DB, row *types.IntensityScoreRecord) (*types.IntensityScoreRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// GetByUser returns the user's score history ordered oldest first, optionally
// scoped to one exercise. limit <= 0 means no limit; when limited, the most
// recent rows are kept.
func (r *intensityScoreRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, exerciseID *uuid.UUID, limit int) ([]*types.IntensityScoreRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if exerciseID != nil {
		q = q.Where("exercise_id = ?", *exerciseID)
	}

	var results []*types.IntensityScoreRecord
	if limit > 0 {
		// Newest-first page, then reverse to chronological order.
		if err := q.Order("created_at DESC").Limit(limit).Find(&results).Error; err != nil {
			return nil, err
		}
		for i, j := 0, len(results)-1; i < j; i, j = i+1, j-1 {
			results[i], results[j] = results[j], results[i]
		}
		return results, nil
	}

	if err := q.Order("created_at ASC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
