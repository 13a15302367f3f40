package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IntensityScoreRecord is one scored set. Immutable once written; later sets
// append new records, never mutate history.
type IntensityScoreRecord struct {
	ID                uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID            uuid.UUID      `gorm:"type:uuid;not null;index:idx_intensity_user_exercise,priority:1" json:"user_id"`
	User              *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SessionID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"session_id"`
	ExerciseID        uuid.UUID      `gorm:"type:uuid;not null;index:idx_intensity_user_exercise,priority:2" json:"exercise_id"`
	SetIndex          int            `gorm:"column:set_index;not null" json:"set_index"`
	TempoScore        float64        `gorm:"column:tempo_score;not null" json:"tempo_score"`
	MotionScore       float64        `gorm:"column:motion_score;not null" json:"motion_score"`
	ConsistencyScore  float64        `gorm:"column:consistency_score;not null" json:"consistency_score"`
	UserFeedbackScore float64        `gorm:"column:user_feedback_score;not null" json:"user_feedback_score"`
	StrainModifier    float64        `gorm:"column:strain_modifier;not null" json:"strain_modifier"`
	TotalScore        float64        `gorm:"column:total_score;not null" json:"total_score"`
	IsEstimated       bool           `gorm:"column:is_estimated;not null;default:false" json:"is_estimated"`
	CreatedAt         time.Time      `gorm:"not null;default:now();index" json:"created_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (IntensityScoreRecord) TableName() string { return "intensity_score_record" }
