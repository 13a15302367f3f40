package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PerformanceRecord is one logged exercise within a workout session.
// Owned by the workout-logging collaborator; this core only reads it
// (plus a thin ingest shim so the service runs end to end).
type PerformanceRecord struct {
	ID          uuid.UUID                    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID                    `gorm:"type:uuid;not null;index:idx_perf_user_exercise,priority:1" json:"user_id"`
	User        *User                        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	SessionID   uuid.UUID                    `gorm:"type:uuid;not null;index" json:"session_id"`
	ExerciseID  uuid.UUID                    `gorm:"type:uuid;not null;index:idx_perf_user_exercise,priority:2" json:"exercise_id"`
	Reps        datatypes.JSONSlice[int]     `gorm:"type:jsonb;column:reps" json:"reps"`
	Weights     datatypes.JSONSlice[float64] `gorm:"type:jsonb;column:weights" json:"weights"`
	RPEs        datatypes.JSONSlice[float64] `gorm:"type:jsonb;column:rpes" json:"rpes"`
	PerformedAt time.Time                    `gorm:"column:performed_at;not null;index" json:"performed_at"`
	CreatedAt   time.Time                    `gorm:"not null;default:now()" json:"created_at"`
	DeletedAt   gorm.DeletedAt               `gorm:"index" json:"deleted_at,omitempty"`
}

func (PerformanceRecord) TableName() string { return "performance_record" }

// Volume is the record's reps x weight sum across sets. Sets missing a
// matching weight entry contribute nothing.
func (p *PerformanceRecord) Volume() float64 {
	if p == nil {
		return 0
	}
	total := 0.0
	for i, reps := range p.Reps {
		if i >= len(p.Weights) {
			break
		}
		total += float64(reps) * p.Weights[i]
	}
	return total
}
