package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NumArms is the number of fixed orderings of {sets, reps, volume}.
const NumArms = 6

// Adjustment dimensions.
const (
	AdjustmentSets   = "sets"
	AdjustmentReps   = "reps"
	AdjustmentVolume = "volume"
)

// ArmStat is one arm's running statistics. Plays only ever increases;
// RewardSum accumulates composite rewards in [0,1].
type ArmStat struct {
	Plays     int     `json:"plays"`
	RewardSum float64 `json:"reward_sum"`
}

// Mean is the arm's observed mean reward. Unplayed arms report 0, not an
// optimistic prior.
func (a ArmStat) Mean() float64 {
	if a.Plays <= 0 {
		return 0
	}
	return a.RewardSum / float64(a.Plays)
}

// AdjustmentPolicy is the per-user bandit state: six arm slots plus a fixed
// exploration rate set once at lazy creation.
type AdjustmentPolicy struct {
	ID        uuid.UUID                    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	User      *User                        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Arms      datatypes.JSONSlice[ArmStat] `gorm:"type:jsonb;column:arms;not null" json:"arms"`
	Epsilon   float64                      `gorm:"column:epsilon;not null;default:0.1" json:"epsilon"`
	CreatedAt time.Time                    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time                    `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt               `gorm:"index" json:"deleted_at,omitempty"`
}

func (AdjustmentPolicy) TableName() string { return "adjustment_policy" }

// FreshArms returns six zeroed arm slots.
func FreshArms() datatypes.JSONSlice[ArmStat] {
	return make(datatypes.JSONSlice[ArmStat], NumArms)
}
