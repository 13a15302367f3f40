package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/types"
)

// ExercisePair identifies one (user, exercise) stream of performance data.
type ExercisePair struct {
	UserID     uuid.UUID
	ExerciseID uuid.UUID
}

type PerformanceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.PerformanceRecord) ([]*types.PerformanceRecord, error)
	GetByUserExerciseWindow(ctx context.Context, tx *gorm.DB, userID, exerciseID uuid.UUID, from, to time.Time) ([]*types.PerformanceRecord, error)
	DistinctPairsInWindow(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]ExercisePair, error)
}

type performanceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPerformanceRepo(db *gorm.DB, baseLog *logger.Logger) PerformanceRepo {
	return &performanceRepo{db: db, log: baseLog.With("repo", "PerformanceRepo")}
}

func (r *performanceRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.PerformanceRecord) ([]*types.PerformanceRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.PerformanceRecord{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetByUserExerciseWindow returns records with performed_at in [from, to).
func (r *performanceRepo) GetByUserExerciseWindow(ctx context.Context, tx *gorm.DB, userID, exerciseID uuid.UUID, from, to time.Time) ([]*types.PerformanceRecord, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.PerformanceRecord
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND exercise_id = ? AND performed_at >= ? AND performed_at < ?", userID, exerciseID, from, to).
		Order("performed_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *performanceRepo) DistinctPairsInWindow(ctx context.Context, tx *gorm.DB, from, to time.Time) ([]ExercisePair, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []ExercisePair
	if err := transaction.WithContext(ctx).
		Model(&types.PerformanceRecord{}).
		Distinct("user_id", "exercise_id").
		Where("performed_at >= ? AND performed_at < ?", from, to).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
