package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gitfit/gitfit-backend/internal/types"
)

// seqRand returns scripted draws so the explore/exploit branch is forced.
type seqRand struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *seqRand) Float64() float64 {
	v := s.floats[s.fi]
	s.fi++
	return v
}

func (s *seqRand) Intn(n int) int {
	v := s.ints[s.ii]
	s.ii++
	return v % n
}

func freshStats() []types.ArmStat {
	return make([]types.ArmStat, types.NumArms)
}

func TestSelectArmFreshPolicyZeroEpsilon(t *testing.T) {
	// All arms at zero plays tie on mean 0; ties break to the lowest index.
	rng := &seqRand{floats: []float64{0.99}}
	if got := selectArm(freshStats(), 0, rng); got != 0 {
		t.Fatalf("selectArm(fresh, eps=0)=%d, want 0", got)
	}
}

func TestSelectArmExploitsBestMean(t *testing.T) {
	arms := freshStats()
	arms[2] = types.ArmStat{Plays: 4, RewardSum: 3.2} // mean 0.8
	arms[4] = types.ArmStat{Plays: 2, RewardSum: 1.0} // mean 0.5

	rng := &seqRand{floats: []float64{0.5}}
	if got := selectArm(arms, 0.1, rng); got != 2 {
		t.Fatalf("selectArm=%d, want 2 (highest mean)", got)
	}
}

func TestSelectArmTieBreaksLowestIndex(t *testing.T) {
	arms := freshStats()
	arms[1] = types.ArmStat{Plays: 2, RewardSum: 1.4}
	arms[3] = types.ArmStat{Plays: 2, RewardSum: 1.4}

	rng := &seqRand{floats: []float64{0.9}}
	if got := selectArm(arms, 0.1, rng); got != 1 {
		t.Fatalf("selectArm=%d, want 1 (lowest tied index)", got)
	}
}

func TestSelectArmExploresBelowEpsilon(t *testing.T) {
	arms := freshStats()
	arms[0] = types.ArmStat{Plays: 10, RewardSum: 9} // clear favorite

	rng := &seqRand{floats: []float64{0.05}, ints: []int{5}}
	if got := selectArm(arms, 0.1, rng); got != 5 {
		t.Fatalf("selectArm=%d, want explored arm 5", got)
	}
}

func TestSelectArmSeededDrawIsDeterministic(t *testing.T) {
	arms := freshStats()
	a := selectArm(arms, 0.5, rand.New(rand.NewSource(42)))
	b := selectArm(arms, 0.5, rand.New(rand.NewSource(42)))
	if a != b {
		t.Fatalf("same seed gave different arms: %d vs %d", a, b)
	}
	if a < 0 || a >= types.NumArms {
		t.Fatalf("arm %d out of range", a)
	}
}

func TestUnplayedArmMeanIsZero(t *testing.T) {
	var a types.ArmStat
	if a.Mean() != 0 {
		t.Fatalf("unplayed arm mean=%v, want 0", a.Mean())
	}
	a = types.ArmStat{Plays: 4, RewardSum: 2}
	if a.Mean() != 0.5 {
		t.Fatalf("mean=%v, want 0.5", a.Mean())
	}
}

func TestAdjustmentOrders(t *testing.T) {
	if len(adjustmentOrders) != types.NumArms {
		t.Fatalf("expected %d orders, got %d", types.NumArms, len(adjustmentOrders))
	}

	seen := map[[3]string]bool{}
	for i, order := range adjustmentOrders {
		dims := map[string]bool{}
		for _, d := range order {
			dims[d] = true
		}
		if len(dims) != 3 || !dims[types.AdjustmentSets] || !dims[types.AdjustmentReps] || !dims[types.AdjustmentVolume] {
			t.Fatalf("order %d is not a permutation of sets/reps/volume: %v", i, order)
		}
		if seen[order] {
			t.Fatalf("order %d duplicates %v", i, order)
		}
		seen[order] = true
	}

	// Arm 0 is the ordering a fresh zero-epsilon policy deterministically picks.
	if adjustmentOrders[0] != [3]string{types.AdjustmentSets, types.AdjustmentReps, types.AdjustmentVolume} {
		t.Fatalf("arm 0 order changed: %v", adjustmentOrders[0])
	}

	if _, err := AdjustmentOrder(-1); err == nil {
		t.Fatalf("expected error for negative arm index")
	}
	if _, err := AdjustmentOrder(types.NumArms); err == nil {
		t.Fatalf("expected error for out-of-range arm index")
	}
}

func TestNormalizeWeekStart(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2026, 8, 24, 3, 15, 0, 0, loc) // 2026-08-23T22:15Z
	got := NormalizeWeekStart(in)
	want := time.Date(2026, 8, 23, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("NormalizeWeekStart=%v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Fatalf("week start not in UTC: %v", got.Location())
	}

	// Same instant expressed differently collapses to one key.
	other := NormalizeWeekStart(in.UTC().Add(90 * time.Minute))
	if !other.Equal(want) {
		t.Fatalf("equivalent inputs diverged: %v vs %v", other, want)
	}
}
