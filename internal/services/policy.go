package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gitfit/gitfit-backend/internal/data/repos"
	errs "github.com/gitfit/gitfit-backend/internal/pkg/errors"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/types"
)

// adjustmentOrders are the six orderings of {sets, reps, volume} the policy
// chooses between. Arm indices are stable; reordering this table would
// corrupt every stored policy.
var adjustmentOrders = [types.NumArms][3]string{
	{types.AdjustmentSets, types.AdjustmentReps, types.AdjustmentVolume},
	{types.AdjustmentSets, types.AdjustmentVolume, types.AdjustmentReps},
	{types.AdjustmentReps, types.AdjustmentSets, types.AdjustmentVolume},
	{types.AdjustmentReps, types.AdjustmentVolume, types.AdjustmentSets},
	{types.AdjustmentVolume, types.AdjustmentSets, types.AdjustmentReps},
	{types.AdjustmentVolume, types.AdjustmentReps, types.AdjustmentSets},
}

// AdjustmentOrder returns the ordering for an arm index.
func AdjustmentOrder(armIndex int) ([3]string, error) {
	if armIndex < 0 || armIndex >= types.NumArms {
		return [3]string{}, fmt.Errorf("arm index %d out of range", armIndex)
	}
	return adjustmentOrders[armIndex], nil
}

// randSource is the slice of math/rand the arm selector needs; injected so
// tests can seed it.
type randSource interface {
	Float64() float64
	Intn(n int) int
}

// lockedRand guards a rand.Rand for concurrent request handlers.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Float64()
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

type ChooseAdjustmentInput struct {
	ExerciseID uuid.UUID `json:"exercise_id"`
	WeekStart  time.Time `json:"week_start"`
	// Epsilon only applies when this call lazily creates the user's policy.
	Epsilon *float64 `json:"epsilon,omitempty"`
}

type ChooseAdjustmentResult struct {
	Decision *types.AdjustmentDecision `json:"decision"`
	Order    [3]string                 `json:"order"`
	Reused   bool                      `json:"reused"`
}

type RecordOutcomeResult struct {
	Outcome   *types.AdjustmentOutcome `json:"outcome"`
	Breakdown *RewardBreakdown         `json:"breakdown"`
}

type LogAchievementInput struct {
	ExerciseID     uuid.UUID `json:"exercise_id"`
	WeekStart      time.Time `json:"week_start"`
	AdjustmentType string    `json:"adjustment_type"`
	PlannedValue   float64   `json:"planned_value"`
	AchievedValue  float64   `json:"achieved_value"`
}

type PolicyService interface {
	ChooseAdjustmentOrder(ctx context.Context, userID uuid.UUID, input ChooseAdjustmentInput) (*ChooseAdjustmentResult, error)
	RecordOutcome(ctx context.Context, userID, exerciseID uuid.UUID, weekStart time.Time) (*RecordOutcomeResult, error)
	LogAchievement(ctx context.Context, userID uuid.UUID, input LogAchievementInput) (*types.AdjustmentAchievement, error)
	GetPolicy(ctx context.Context, userID uuid.UUID) (*types.AdjustmentPolicy, error)
}

type policyService struct {
	db              *gorm.DB
	log             *logger.Logger
	policyRepo      repos.AdjustmentPolicyRepo
	decisionRepo    repos.AdjustmentDecisionRepo
	outcomeRepo     repos.AdjustmentOutcomeRepo
	achievementRepo repos.AdjustmentAchievementRepo
	rewards         RewardService
	notifier        CoachingNotifier
	defaultEpsilon  float64
	rng             randSource
}

func NewPolicyService(
	db *gorm.DB,
	baseLog *logger.Logger,
	policyRepo repos.AdjustmentPolicyRepo,
	decisionRepo repos.AdjustmentDecisionRepo,
	outcomeRepo repos.AdjustmentOutcomeRepo,
	achievementRepo repos.AdjustmentAchievementRepo,
	rewards RewardService,
	notifier CoachingNotifier,
	defaultEpsilon float64,
	seed int64,
) PolicyService {
	return &policyService{
		db:              db,
		log:             baseLog.With("service", "PolicyService"),
		policyRepo:      policyRepo,
		decisionRepo:    decisionRepo,
		outcomeRepo:     outcomeRepo,
		achievementRepo: achievementRepo,
		rewards:         rewards,
		notifier:        notifier,
		defaultEpsilon:  defaultEpsilon,
		rng:             &lockedRand{rng: rand.New(rand.NewSource(seed))},
	}
}

// NormalizeWeekStart collapses a week key to midnight UTC of its day so the
// same week never splits across timezone or sub-day variants.
func NormalizeWeekStart(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *policyService) ChooseAdjustmentOrder(ctx context.Context, userID uuid.UUID, input ChooseAdjustmentInput) (*ChooseAdjustmentResult, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	if input.ExerciseID == uuid.Nil {
		return nil, fmt.Errorf("%w: exercise_id is required", errs.ErrInvalidArgument)
	}
	if input.WeekStart.IsZero() {
		return nil, fmt.Errorf("%w: week_start is required", errs.ErrInvalidArgument)
	}
	epsilon := s.defaultEpsilon
	if input.Epsilon != nil {
		epsilon = *input.Epsilon
	}
	if epsilon < 0 || epsilon > 1 {
		return nil, fmt.Errorf("%w: epsilon out of range (0..1)", errs.ErrInvalidArgument)
	}

	weekStart := NormalizeWeekStart(input.WeekStart)

	var result *ChooseAdjustmentResult
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		policy, err := s.ensurePolicyLocked(ctx, tx, userID, epsilon)
		if err != nil {
			return err
		}

		existing, err := s.decisionRepo.GetByKey(ctx, tx, userID, input.ExerciseID, weekStart)
		if err != nil {
			return err
		}
		if existing != nil {
			order, err := AdjustmentOrder(existing.ArmIndex)
			if err != nil {
				return err
			}
			result = &ChooseAdjustmentResult{Decision: existing, Order: order, Reused: true}
			return nil
		}

		armIndex := selectArm(policy.Arms, policy.Epsilon, s.rng)
		order := adjustmentOrders[armIndex]

		row := &types.AdjustmentDecision{
			UserID:         userID,
			ExerciseID:     input.ExerciseID,
			WeekStart:      weekStart,
			ArmIndex:       armIndex,
			AdjustmentType: order[0],
			CreatedAt:      time.Now().UTC(),
		}
		saved, created, err := s.decisionRepo.Create(ctx, tx, row)
		if err != nil {
			return err
		}
		savedOrder, err := AdjustmentOrder(saved.ArmIndex)
		if err != nil {
			return err
		}
		result = &ChooseAdjustmentResult{Decision: saved, Order: savedOrder, Reused: !created}
		return nil
	}); err != nil {
		s.log.Warn("ChooseAdjustmentOrder transaction error", "error", err)
		return nil, err
	}

	s.notifier.AdjustmentDecided(userID, result.Decision, result.Reused)

	s.log.Debug("adjustment order chosen",
		"user_id", userID,
		"exercise_id", input.ExerciseID,
		"week_start", weekStart,
		"arm_index", result.Decision.ArmIndex,
		"reused", result.Reused)
	return result, nil
}

func (s *policyService) RecordOutcome(ctx context.Context, userID, exerciseID uuid.UUID, weekStart time.Time) (*RecordOutcomeResult, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	if exerciseID == uuid.Nil {
		return nil, fmt.Errorf("%w: exercise_id is required", errs.ErrInvalidArgument)
	}
	if weekStart.IsZero() {
		return nil, fmt.Errorf("%w: week_start is required", errs.ErrInvalidArgument)
	}
	weekStart = NormalizeWeekStart(weekStart)

	// Quick existence check before paying for the reward reads.
	if existing, err := s.decisionRepo.GetByKey(ctx, nil, userID, exerciseID, weekStart); err != nil {
		return nil, err
	} else if existing == nil {
		return nil, fmt.Errorf("%w: no adjustment decision for week %s", errs.ErrNotFound, weekStart.Format("2006-01-02"))
	}

	// Read-only and repeatable, so safe to compute outside the transaction.
	breakdown, err := s.rewards.ComputeReward(ctx, userID, exerciseID, weekStart)
	if err != nil {
		return nil, err
	}
	breakdownJSON, err := json.Marshal(breakdown)
	if err != nil {
		return nil, err
	}

	var outcome *types.AdjustmentOutcome
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		decision, err := s.decisionRepo.GetByKeyForUpdate(ctx, tx, userID, exerciseID, weekStart)
		if err != nil {
			return err
		}
		if decision == nil {
			return fmt.Errorf("%w: no adjustment decision for week %s", errs.ErrNotFound, weekStart.Format("2006-01-02"))
		}
		if decision.OutcomeRecordedAt != nil {
			return fmt.Errorf("%w: outcome already recorded for this decision", errs.ErrConflict)
		}

		policy, err := s.policyRepo.GetByUserIDForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}
		if policy == nil {
			return fmt.Errorf("policy missing for user with a decision")
		}
		if decision.ArmIndex < 0 || decision.ArmIndex >= len(policy.Arms) {
			return fmt.Errorf("decision arm index %d out of range", decision.ArmIndex)
		}

		now := time.Now().UTC()

		arms := make(datatypes.JSONSlice[types.ArmStat], len(policy.Arms))
		copy(arms, policy.Arms)
		arms[decision.ArmIndex].Plays++
		arms[decision.ArmIndex].RewardSum += breakdown.Total

		if err := s.policyRepo.UpdateFields(ctx, tx, policy.ID, map[string]any{
			"arms":       arms,
			"updated_at": now,
		}); err != nil {
			return err
		}

		outcome, err = s.outcomeRepo.Create(ctx, tx, &types.AdjustmentOutcome{
			UserID:          userID,
			ExerciseID:      exerciseID,
			WeekStart:       weekStart,
			ArmIndex:        decision.ArmIndex,
			Reward:          breakdown.Total,
			RewardBreakdown: datatypes.JSON(breakdownJSON),
			CreatedAt:       now,
		})
		if err != nil {
			return err
		}

		return s.decisionRepo.MarkOutcomeRecorded(ctx, tx, decision.ID, now)
	}); err != nil {
		s.log.Warn("RecordOutcome transaction error", "error", err)
		return nil, err
	}

	s.notifier.OutcomeRecorded(userID, outcome)

	s.log.Debug("outcome recorded",
		"user_id", userID,
		"exercise_id", exerciseID,
		"week_start", weekStart,
		"reward", breakdown.Total)
	return &RecordOutcomeResult{Outcome: outcome, Breakdown: breakdown}, nil
}

func (s *policyService) LogAchievement(ctx context.Context, userID uuid.UUID, input LogAchievementInput) (*types.AdjustmentAchievement, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	if input.ExerciseID == uuid.Nil {
		return nil, fmt.Errorf("%w: exercise_id is required", errs.ErrInvalidArgument)
	}
	if input.WeekStart.IsZero() {
		return nil, fmt.Errorf("%w: week_start is required", errs.ErrInvalidArgument)
	}
	switch input.AdjustmentType {
	case types.AdjustmentSets, types.AdjustmentReps, types.AdjustmentVolume:
	default:
		return nil, fmt.Errorf("%w: adjustment_type must be one of sets, reps, volume", errs.ErrInvalidArgument)
	}
	if input.PlannedValue < 0 || input.AchievedValue < 0 {
		return nil, fmt.Errorf("%w: planned_value and achieved_value must not be negative", errs.ErrInvalidArgument)
	}

	now := time.Now().UTC()
	row := &types.AdjustmentAchievement{
		UserID:         userID,
		ExerciseID:     input.ExerciseID,
		WeekStart:      NormalizeWeekStart(input.WeekStart),
		AdjustmentType: input.AdjustmentType,
		PlannedValue:   input.PlannedValue,
		AchievedValue:  input.AchievedValue,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	var saved *types.AdjustmentAchievement
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		saved, err = s.achievementRepo.Upsert(ctx, tx, row)
		return err
	}); err != nil {
		s.log.Warn("LogAchievement transaction error", "error", err)
		return nil, err
	}

	s.notifier.AchievementUpdated(userID, saved)
	return saved, nil
}

func (s *policyService) GetPolicy(ctx context.Context, userID uuid.UUID) (*types.AdjustmentPolicy, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	return s.policyRepo.GetByUserID(ctx, nil, userID)
}

// ensurePolicyLocked returns the user's policy row under a FOR UPDATE lock,
// creating it with fresh arms when absent. A concurrent creator's row wins;
// either way the returned row is locked for the rest of the transaction.
func (s *policyService) ensurePolicyLocked(ctx context.Context, tx *gorm.DB, userID uuid.UUID, epsilon float64) (*types.AdjustmentPolicy, error) {
	policy, err := s.policyRepo.GetByUserIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if policy != nil {
		return policy, nil
	}

	if _, err := s.policyRepo.Create(ctx, tx, &types.AdjustmentPolicy{
		UserID:  userID,
		Arms:    types.FreshArms(),
		Epsilon: epsilon,
	}); err != nil {
		return nil, err
	}

	policy, err = s.policyRepo.GetByUserIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, fmt.Errorf("policy vanished after create")
	}
	return policy, nil
}

// selectArm draws the epsilon-greedy choice: explore uniformly with
// probability epsilon, otherwise exploit the highest observed mean. Unplayed
// arms count as mean 0 and ties go to the lowest index, so a fresh policy
// with epsilon 0 always picks arm 0.
func selectArm(arms []types.ArmStat, epsilon float64, rng randSource) int {
	if rng.Float64() < epsilon {
		return rng.Intn(types.NumArms)
	}

	best := 0
	bestMean := arms[0].Mean()
	for i := 1; i < len(arms) && i < types.NumArms; i++ {
		if m := arms[i].Mean(); m > bestMean {
			best = i
			bestMean = m
		}
	}
	return best
}
