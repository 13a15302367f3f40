package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gitfit/gitfit-backend/internal/data/repos"
	"github.com/gitfit/gitfit-backend/internal/data/repos/testutil"
	errs "github.com/gitfit/gitfit-backend/internal/pkg/errors"
	"github.com/gitfit/gitfit-backend/internal/types"
)

// policyServiceForTest wires the real repos over the test database with a
// zero-epsilon, fixed-seed policy so arm choices are deterministic.
func policyServiceForTest(t *testing.T, gdb *gorm.DB, epsilon float64) PolicyService {
	t.Helper()
	log := testutil.Logger(t)

	policyRepo := repos.NewAdjustmentPolicyRepo(gdb, log)
	decisionRepo := repos.NewAdjustmentDecisionRepo(gdb, log)
	outcomeRepo := repos.NewAdjustmentOutcomeRepo(gdb, log)
	achievementRepo := repos.NewAdjustmentAchievementRepo(gdb, log)
	perfRepo := repos.NewPerformanceRepo(gdb, log)
	strainRepo := repos.NewStrainSampleRepo(gdb, log)

	reward := NewRewardService(gdb, log, perfRepo, strainRepo, &noopReadinessClient{})
	notifier := NewCoachingNotifier(nil)

	return NewPolicyService(
		gdb, log,
		policyRepo, decisionRepo, outcomeRepo, achievementRepo,
		reward, notifier, epsilon, 1,
	)
}

func seedPolicyUser(t *testing.T, gdb *gorm.DB) *types.User {
	t.Helper()
	return testutil.SeedUser(t, context.Background(), gdb,
		fmt.Sprintf("policy-it-%s@test.local", uuid.New()))
}

func TestChooseAdjustmentOrderIdempotent(t *testing.T) {
	gdb := testutil.DB(t)
	svc := policyServiceForTest(t, gdb, 0)
	ctx := context.Background()

	user := seedPolicyUser(t, gdb)
	input := ChooseAdjustmentInput{
		ExerciseID: uuid.New(),
		WeekStart:  time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
	}

	first, err := svc.ChooseAdjustmentOrder(ctx, user.ID, input)
	if err != nil {
		t.Fatalf("first choose: %v", err)
	}
	if first.Reused {
		t.Fatalf("first choose reported reused=true")
	}
	// Fresh policy with epsilon 0: all means tie at 0, lowest index wins.
	if first.Decision.ArmIndex != 0 {
		t.Fatalf("fresh zero-epsilon choose picked arm %d, want 0", first.Decision.ArmIndex)
	}
	if first.Decision.AdjustmentType != types.AdjustmentSets {
		t.Fatalf("arm 0 adjustment type %q, want sets", first.Decision.AdjustmentType)
	}

	second, err := svc.ChooseAdjustmentOrder(ctx, user.ID, input)
	if err != nil {
		t.Fatalf("second choose: %v", err)
	}
	if !second.Reused {
		t.Fatalf("second choose reported reused=false")
	}
	if second.Decision.ID != first.Decision.ID || second.Decision.ArmIndex != first.Decision.ArmIndex {
		t.Fatalf("second choose returned a different decision")
	}
}

func TestRecordOutcomeWithoutDecision(t *testing.T) {
	gdb := testutil.DB(t)
	svc := policyServiceForTest(t, gdb, 0)
	ctx := context.Background()

	user := seedPolicyUser(t, gdb)
	_, err := svc.RecordOutcome(ctx, user.ID, uuid.New(), time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC))
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordOutcomeFoldsRewardIntoArm(t *testing.T) {
	gdb := testutil.DB(t)
	svc := policyServiceForTest(t, gdb, 0)
	ctx := context.Background()

	user := seedPolicyUser(t, gdb)
	exerciseID := uuid.New()
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	chosen, err := svc.ChooseAdjustmentOrder(ctx, user.ID, ChooseAdjustmentInput{
		ExerciseID: exerciseID,
		WeekStart:  weekStart,
	})
	if err != nil {
		t.Fatalf("choose: %v", err)
	}

	result, err := svc.RecordOutcome(ctx, user.ID, exerciseID, weekStart)
	if err != nil {
		t.Fatalf("record outcome: %v", err)
	}
	// No performance, RPE, or strain data: every sub-score is neutral.
	if math.Abs(result.Breakdown.Total-0.5) > 1e-9 {
		t.Fatalf("reward=%v, want neutral 0.5", result.Breakdown.Total)
	}

	policy, err := svc.GetPolicy(ctx, user.ID)
	if err != nil {
		t.Fatalf("get policy: %v", err)
	}
	arm := policy.Arms[chosen.Decision.ArmIndex]
	if arm.Plays != 1 {
		t.Fatalf("arm plays=%d, want 1", arm.Plays)
	}
	if arm.RewardSum != result.Breakdown.Total {
		t.Fatalf("arm rewardSum=%v, want %v", arm.RewardSum, result.Breakdown.Total)
	}

	// Second recording for the same decision must be rejected.
	if _, err := svc.RecordOutcome(ctx, user.ID, exerciseID, weekStart); !errors.Is(err, errs.ErrConflict) {
		t.Fatalf("expected ErrConflict on double record, got %v", err)
	}
}

func TestLogAchievementUpserts(t *testing.T) {
	gdb := testutil.DB(t)
	svc := policyServiceForTest(t, gdb, 0)
	ctx := context.Background()

	user := seedPolicyUser(t, gdb)
	input := LogAchievementInput{
		ExerciseID:     uuid.New(),
		WeekStart:      time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		AdjustmentType: types.AdjustmentSets,
		PlannedValue:   4,
		AchievedValue:  3,
	}

	first, err := svc.LogAchievement(ctx, user.ID, input)
	if err != nil {
		t.Fatalf("first log: %v", err)
	}

	input.AchievedValue = 4
	second, err := svc.LogAchievement(ctx, user.ID, input)
	if err != nil {
		t.Fatalf("second log: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("achievement upsert created a new row")
	}
	if second.AchievedValue != 4 {
		t.Fatalf("achieved value not overwritten: %v", second.AchievedValue)
	}
}

func TestGetPolicyMissingReturnsNil(t *testing.T) {
	gdb := testutil.DB(t)
	svc := policyServiceForTest(t, gdb, 0)

	user := seedPolicyUser(t, gdb)
	policy, err := svc.GetPolicy(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("get policy: %v", err)
	}
	if policy != nil {
		t.Fatalf("expected nil policy before first choose, got %+v", policy)
	}
}

func TestChooseRejectsBadEpsilon(t *testing.T) {
	gdb := testutil.DB(t)
	svc := policyServiceForTest(t, gdb, 0)

	user := seedPolicyUser(t, gdb)
	bad := 1.5
	_, err := svc.ChooseAdjustmentOrder(context.Background(), user.ID, ChooseAdjustmentInput{
		ExerciseID: uuid.New(),
		WeekStart:  time.Now(),
		Epsilon:    &bad,
	})
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}
