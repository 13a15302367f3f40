package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Strain zones supplied by the session from normalized biometric input.
const (
	StrainZoneGreen  = "green"
	StrainZoneYellow = "yellow"
	StrainZoneRed    = "red"
)

// Session phases.
const (
	PhaseWarmup      = "warmup"
	PhaseWorkingSets = "working_sets"
	PhaseCooldown    = "cooldown"
)

// CoachingContext is the single live coaching record per user. Upserted on
// every classification call; last write wins, no history retained: it
// represents current physical state, not a ledger.
type CoachingContext struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User          *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	StrainZone    string         `gorm:"column:strain_zone;not null" json:"strain_zone"`
	SessionPhase  string         `gorm:"column:session_phase;not null" json:"session_phase"`
	Persona       string         `gorm:"column:persona;not null;default:alice" json:"persona"`
	VoiceEnabled  bool           `gorm:"column:voice_enabled;not null;default:true" json:"voice_enabled"`
	LastMessage   string         `gorm:"column:last_message" json:"last_message"`
	LastUpdatedAt time.Time      `gorm:"column:last_updated_at;not null;default:now()" json:"last_updated_at"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CoachingContext) TableName() string { return "coaching_context" }
