package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AdjustmentDecision is the write-once arm choice for one
// (user, exercise, weekStart) key. A second choose call for the same key
// returns this row untouched; re-randomizing on retry would corrupt the
// bandit's attribution.
type AdjustmentDecision struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index:idx_adjustment_decision_key,unique,priority:1" json:"user_id"`
	User              *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ExerciseID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_adjustment_decision_key,unique,priority:2" json:"exercise_id"`
	WeekStart         time.Time      `gorm:"column:week_start;not null;index:idx_adjustment_decision_key,unique,priority:3" json:"week_start"`
	ArmIndex          int            `gorm:"column:arm_index;not null" json:"arm_index"`
	AdjustmentType    string         `gorm:"column:adjustment_type;not null" json:"adjustment_type"`
	OutcomeRecordedAt *time.Time     `gorm:"column:outcome_recorded_at" json:"outcome_recorded_at,omitempty"`
	CreatedAt         time.Time      `gorm:"not null;default:now()" json:"created_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (AdjustmentDecision) TableName() string { return "adjustment_decision" }
