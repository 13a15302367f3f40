package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/types"
)

type AdjustmentDecisionRepo interface {
	GetByKey(ctx context.Context, tx *gorm.DB, userID, exerciseID uuid.UUID, weekStart time.Time) (*types.AdjustmentDecision, error)
	// GetByKeyForUpdate takes a row lock; callers must hold a transaction.
	GetByKeyForUpdate(ctx context.Context, tx *gorm.DB, userID, exerciseID uuid.UUID, weekStart time.Time) (*types.AdjustmentDecision, error)
	// Create inserts the write-once decision. created reports whether this
	// call won the insert; on conflict the stored row is returned untouched.
	Create(ctx context.Context, tx *gorm.DB, row *types.AdjustmentDecision) (result *types.AdjustmentDecision, created bool, err error)
	MarkOutcomeRecorded(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error
}

type adjustmentDecisionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdjustmentDecisionRepo(db *gorm.DB, baseLog *logger.Logger) AdjustmentDecisionRepo {
	return &adjustmentDecisionRepo{db: db, log: baseLog.With("repo", "AdjustmentDecisionRepo")}
}

func (r *adjustmentDecisionRepo) GetByKey(ctx context.Context, tx *gorm.DB, userID, exerciseID uuid.UUID, weekStart time.Time) (*types.AdjustmentDecision, error) {
	return r.getByKey(ctx, tx, userID, exerciseID, weekStart, false)
}

func (r *adjustmentDecisionRepo) GetByKeyForUpdate(ctx context.Context, tx *gorm.DB, userID, exerciseID uuid.UUID, weekStart time.Time) (*types.AdjustmentDecision, error) {
	return r.getByKey(ctx, tx, userID, exerciseID, weekStart, true)
}

func (r *adjustmentDecisionRepo) getByKey(ctx context.Context, tx *gorm.DB, userID, exerciseID uuid.UUID, weekStart time.Time, forUpdate bool) (*types.AdjustmentDecision, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(ctx)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var result types.AdjustmentDecision
	err := q.
		Where("user_id = ? AND exercise_id = ? AND week_start = ?", userID, exerciseID, weekStart).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *adjustmentDecisionRepo) Create(ctx context.Context, tx *gorm.DB, row *types.AdjustmentDecision) (*types.AdjustmentDecision, bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, false, nil
	}

	res := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "exercise_id"}, {Name: "week_start"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected == 0 {
		existing, err := r.getByKey(ctx, transaction, row.UserID, row.ExerciseID, row.WeekStart, false)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	return row, true, nil
}

func (r *adjustmentDecisionRepo) MarkOutcomeRecorded(ctx context.Context, tx *gorm.DB, id uuid.UUID, at time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(ctx).
		Model(&types.AdjustmentDecision{}).
		Where("id = ?", id).
		Update("outcome_recorded_at", at).Error
}
