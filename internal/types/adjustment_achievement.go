package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdjustmentAchievement reconciles what the policy planned against what the
// user actually did for a week. Unlike the decision it is upsertable; the
// latest write wins because users revise their week as it happens.
type AdjustmentAchievement struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index:idx_adjustment_achievement_key,unique,priority:1" json:"user_id"`
	User           *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ExerciseID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_adjustment_achievement_key,unique,priority:2" json:"exercise_id"`
	WeekStart      time.Time      `gorm:"column:week_start;not null;index:idx_adjustment_achievement_key,unique,priority:3" json:"week_start"`
	AdjustmentType string         `gorm:"column:adjustment_type;not null" json:"adjustment_type"`
	PlannedValue   float64        `gorm:"column:planned_value;not null" json:"planned_value"`
	AchievedValue  float64        `gorm:"column:achieved_value;not null" json:"achieved_value"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AdjustmentAchievement) TableName() string { return "adjustment_achievement" }
