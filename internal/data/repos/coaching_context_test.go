package repos

import (
	"context"
	"testing"
	"time"

	"github.com/gitfit/gitfit-backend/internal/data/repos/testutil"
	"github.com/gitfit/gitfit-backend/internal/types"
)

func TestCoachingContextUpsertLastWriteWins(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	log := testutil.Logger(t)

	user := testutil.SeedUser(t, ctx, tx, "coaching-upsert@test.local")
	repo := NewCoachingContextRepo(gdb, log)

	first, err := repo.Upsert(ctx, tx, &types.CoachingContext{
		UserID:        user.ID,
		StrainZone:    types.StrainZoneGreen,
		SessionPhase:  types.PhaseWarmup,
		Persona:       "alice",
		VoiceEnabled:  true,
		LastMessage:   "warming up",
		LastUpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := repo.Upsert(ctx, tx, &types.CoachingContext{
		UserID:        user.ID,
		StrainZone:    types.StrainZoneRed,
		SessionPhase:  types.PhaseWorkingSets,
		Persona:       "aiden",
		VoiceEnabled:  false,
		LastMessage:   "slow down",
		LastUpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("upsert created a second context row for the user")
	}
	if second.StrainZone != types.StrainZoneRed || second.SessionPhase != types.PhaseWorkingSets {
		t.Fatalf("latest write lost: %+v", second)
	}
	if second.Persona != "aiden" || second.VoiceEnabled {
		t.Fatalf("persona/voice flags not overwritten: %+v", second)
	}
}

func TestCoachingContextGetMissingReturnsNil(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	log := testutil.Logger(t)

	user := testutil.SeedUser(t, ctx, tx, "coaching-missing@test.local")
	repo := NewCoachingContextRepo(gdb, log)

	got, err := repo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing context, got %+v", got)
	}
}
