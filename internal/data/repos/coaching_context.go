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

type CoachingContextRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CoachingContext, error)
	Upsert(ctx context.Context, tx *gorm.DB, row *types.CoachingContext) (*types.CoachingContext, error)
}

type coachingContextRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCoachingContextRepo(db *gorm.DB, baseLog *logger.Logger) CoachingContextRepo {
	return &coachingContextRepo{db: db, log: baseLog.With("repo", "CoachingContextRepo")}
}

func (r *coachingContextRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.CoachingContext, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var result types.CoachingContext
	err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&result).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Upsert writes the user's single live context row; last write wins.
func (r *coachingContextRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.CoachingContext) (*types.CoachingContext, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil, nil
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"strain_zone", "session_phase", "persona", "voice_enabled",
				"last_message", "last_updated_at",
			}),
		}).
		Create(row).Error; err != nil {
		return nil, err
	}
	return r.GetByUserID(ctx, transaction, row.UserID)
}
