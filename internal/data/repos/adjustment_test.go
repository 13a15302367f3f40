package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gitfit/gitfit-backend/internal/data/repos/testutil"
	"github.com/gitfit/gitfit-backend/internal/types"
)

func TestAdjustmentDecisionWriteOnce(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	log := testutil.Logger(t)

	user := testutil.SeedUser(t, ctx, tx, "decision-write-once@test.local")
	repo := NewAdjustmentDecisionRepo(gdb, log)

	exerciseID := uuid.New()
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	first, created, err := repo.Create(ctx, tx, &types.AdjustmentDecision{
		UserID:         user.ID,
		ExerciseID:     exerciseID,
		WeekStart:      weekStart,
		ArmIndex:       2,
		AdjustmentType: types.AdjustmentReps,
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if !created {
		t.Fatalf("first create reported created=false")
	}

	second, created, err := repo.Create(ctx, tx, &types.AdjustmentDecision{
		UserID:         user.ID,
		ExerciseID:     exerciseID,
		WeekStart:      weekStart,
		ArmIndex:       5,
		AdjustmentType: types.AdjustmentVolume,
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if created {
		t.Fatalf("second create reported created=true")
	}
	if second.ID != first.ID || second.ArmIndex != 2 {
		t.Fatalf("second create did not return the stored row: got arm %d id %s", second.ArmIndex, second.ID)
	}

	got, err := repo.GetByKey(ctx, tx, user.ID, exerciseID, weekStart)
	if err != nil {
		t.Fatalf("get by key: %v", err)
	}
	if got == nil || got.ArmIndex != 2 {
		t.Fatalf("stored decision changed: %+v", got)
	}
}

func TestAdjustmentDecisionMarkOutcomeRecorded(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	log := testutil.Logger(t)

	user := testutil.SeedUser(t, ctx, tx, "decision-outcome@test.local")
	repo := NewAdjustmentDecisionRepo(gdb, log)

	row, _, err := repo.Create(ctx, tx, &types.AdjustmentDecision{
		UserID:         user.ID,
		ExerciseID:     uuid.New(),
		WeekStart:      time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		ArmIndex:       0,
		AdjustmentType: types.AdjustmentSets,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if row.OutcomeRecordedAt != nil {
		t.Fatalf("fresh decision already stamped")
	}

	at := time.Now().UTC()
	if err := repo.MarkOutcomeRecorded(ctx, tx, row.ID, at); err != nil {
		t.Fatalf("mark outcome recorded: %v", err)
	}

	got, err := repo.GetByKey(ctx, tx, row.UserID, row.ExerciseID, row.WeekStart)
	if err != nil {
		t.Fatalf("get by key: %v", err)
	}
	if got.OutcomeRecordedAt == nil {
		t.Fatalf("outcome stamp missing after mark")
	}
}

func TestAdjustmentPolicyCreateIsIdempotent(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	log := testutil.Logger(t)

	user := testutil.SeedUser(t, ctx, tx, "policy-create@test.local")
	repo := NewAdjustmentPolicyRepo(gdb, log)

	first, err := repo.Create(ctx, tx, &types.AdjustmentPolicy{
		UserID:  user.ID,
		Arms:    types.FreshArms(),
		Epsilon: 0.1,
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if len(first.Arms) != types.NumArms {
		t.Fatalf("expected %d arms, got %d", types.NumArms, len(first.Arms))
	}

	second, err := repo.Create(ctx, tx, &types.AdjustmentPolicy{
		UserID:  user.ID,
		Arms:    types.FreshArms(),
		Epsilon: 0.9,
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("second create made a new policy row")
	}
	if second.Epsilon != 0.1 {
		t.Fatalf("second create overwrote epsilon: %v", second.Epsilon)
	}
}

func TestAdjustmentPolicyUpdateFields(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	log := testutil.Logger(t)

	user := testutil.SeedUser(t, ctx, tx, "policy-update@test.local")
	repo := NewAdjustmentPolicyRepo(gdb, log)

	policy, err := repo.Create(ctx, tx, &types.AdjustmentPolicy{
		UserID:  user.ID,
		Arms:    types.FreshArms(),
		Epsilon: 0.1,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	arms := types.FreshArms()
	arms[3] = types.ArmStat{Plays: 1, RewardSum: 0.7}
	if err := repo.UpdateFields(ctx, tx, policy.ID, map[string]any{"arms": arms}); err != nil {
		t.Fatalf("update fields: %v", err)
	}

	got, err := repo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Arms[3].Plays != 1 || got.Arms[3].RewardSum != 0.7 {
		t.Fatalf("arm update lost: %+v", got.Arms[3])
	}
}

func TestAdjustmentAchievementUpsertOverwrites(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	log := testutil.Logger(t)

	user := testutil.SeedUser(t, ctx, tx, "achievement-upsert@test.local")
	repo := NewAdjustmentAchievementRepo(gdb, log)

	exerciseID := uuid.New()
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	first, err := repo.Upsert(ctx, tx, &types.AdjustmentAchievement{
		UserID:         user.ID,
		ExerciseID:     exerciseID,
		WeekStart:      weekStart,
		AdjustmentType: types.AdjustmentSets,
		PlannedValue:   4,
		AchievedValue:  3,
	})
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	second, err := repo.Upsert(ctx, tx, &types.AdjustmentAchievement{
		UserID:         user.ID,
		ExerciseID:     exerciseID,
		WeekStart:      weekStart,
		AdjustmentType: types.AdjustmentSets,
		PlannedValue:   4,
		AchievedValue:  4,
	})
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("upsert created a second row for the same key")
	}
	if second.AchievedValue != 4 {
		t.Fatalf("achieved value not overwritten: %v", second.AchievedValue)
	}
}
