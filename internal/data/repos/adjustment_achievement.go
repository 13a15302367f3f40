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

type AdjustmentAchievementRepo interface {
	GetByKey(ctx context.Context, tx *gorm.DB, userID, exerciseID uuid.UUID, weekStart time.Time) (*types.AdjustmentAchievement, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.AdjustmentAchievement) (*types.AdjustmentAchievement, error)
}

type adjustmentAchievementRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAdjustmentAchievementRepo(db *gorm.DB, baseLog *logger.Logger) AdjustmentAchievementRepo {
	return &adjustmentAchievementRepo{db: db, log: baseLog.With("repo", "AdjustmentAchievementRepo")}
}

func (r *adjustmentAchievementRepo) GetByKey(ctx context.Context, tx *gorm.DB, userID, exerciseID uuid.UUID, weekStart time.Time) (*types.AdjustmentAchievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.AdjustmentAchievement
	err := transaction.WithContext(ctx).
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

// Upsert overwrites by (user, exercise, week_start); the achievement log is
// the one week-keyed record where latest-write-wins is correct.
func (r *adjustmentAchievementRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.AdjustmentAchievement) (*types.AdjustmentAchievement, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "exercise_id"}, {Name: "week_start"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"adjustment_type", "planned_value", "achieved_value", "updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.GetByKey(ctx, transaction, row.UserID, row.ExerciseID, row.WeekStart)
}
