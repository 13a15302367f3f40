package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/types"
)

type AdjustmentPolicyRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.AdjustmentPolicy, error)
	// GetByUserIDForUpdate takes a row lock; callers must hold a transaction.
	GetByUserIDForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.AdjustmentPolicy, error)
	Create(ctx context.Context, tx *gorm.DB, row *types.AdjustmentPolicy) (*types.AdjustmentPolicy, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error
}

type adjustmentPolicyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdjustmentPolicyRepo(db *gorm.DB, baseLog *logger.Logger) AdjustmentPolicyRepo {
	return &adjustmentPolicyRepo{db: db, log: baseLog.With("repo", "AdjustmentPolicyRepo")}
}

func (r *adjustmentPolicyRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.AdjustmentPolicy, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return r.getByUserID(ctx, transaction, userID, false)
}

func (r *adjustmentPolicyRepo) GetByUserIDForUpdate(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.AdjustmentPolicy, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return r.getByUserID(ctx, transaction, userID, true)
}

func (r *adjustmentPolicyRepo) getByUserID(ctx context.Context, transaction *gorm.DB, userID uuid.UUID, forUpdate bool) (*types.AdjustmentPolicy, error) {
	q := transaction.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var result types.AdjustmentPolicy
	err := q.Where("user_id = ?", userID).First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Create inserts the user's policy row. A concurrent creator wins silently;
// callers re-read after a no-op insert.
func (r *adjustmentPolicyRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AdjustmentPolicy) (*types.AdjustmentPolicy, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.getByUserID(ctx, transaction, row.UserID, false)
}

func (r *adjustmentPolicyRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]any) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(updates) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.AdjustmentPolicy{}).
		Where("id = ?", id).
		Updates(updates).Error
}
