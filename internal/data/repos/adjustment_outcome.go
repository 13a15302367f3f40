package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/types"
)

type AdjustmentOutcomeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.AdjustmentOutcome) (*types.AdjustmentOutcome, error)
	GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.AdjustmentOutcome, error)
}

type adjustmentOutcomeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdjustmentOutcomeRepo(db *gorm.DB, baseLog *logger.Logger) AdjustmentOutcomeRepo {
	return &adjustmentOutcomeRepo{db: db, log: baseLog.With("repo", "AdjustmentOutcomeRepo")}
}

func (r *adjustmentOutcomeRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AdjustmentOutcome) (*types.AdjustmentOutcome, error) {
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

// GetByUser returns recent outcomes for audit views, newest first.
func (r *adjustmentOutcomeRepo) GetByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.AdjustmentOutcome, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*types.AdjustmentOutcome
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
