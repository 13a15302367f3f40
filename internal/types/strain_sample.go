package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StrainSample is a normalized [0,1] physiological load reading supplied by
// the wearable-telemetry collaborator. Values are normalized at the ingest
// boundary; nothing past the repo layer sees raw device scales.
type StrainSample struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index:idx_strain_user_time,priority:1" json:"user_id"`
	User       *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Value      float64        `gorm:"column:value;not null" json:"value"`
	Source     string         `gorm:"column:source" json:"source"`
	RecordedAt time.Time      `gorm:"column:recorded_at;not null;index:idx_strain_user_time,priority:2" json:"recorded_at"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (StrainSample) TableName() string { return "strain_sample" }
