package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AdjustmentOutcome is an append-only audit row per recorded outcome. The
// policy never reads it back; it exists for offline analysis.
type AdjustmentOutcome struct {
	ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ExerciseID      uuid.UUID      `gorm:"type:uuid;not null" json:"exercise_id"`
	WeekStart       time.Time      `gorm:"column:week_start;not null" json:"week_start"`
	ArmIndex        int            `gorm:"column:arm_index;not null" json:"arm_index"`
	Reward          float64        `gorm:"column:reward;not null" json:"reward"`
	RewardBreakdown datatypes.JSON `gorm:"type:jsonb;column:reward_breakdown" json:"reward_breakdown"`
	CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (AdjustmentOutcome) TableName() string { return "adjustment_outcome" }
