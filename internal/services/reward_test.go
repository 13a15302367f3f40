package services

import (
	"math"
	"testing"
)

func TestPerfScore(t *testing.T) {
	cases := []struct {
		name      string
		prev, cur float64
		want      float64
	}{
		{name: "ten_percent_gain", prev: 1000, cur: 1100, want: 1100.0 / 1200.0}, // ~0.9167
		{name: "twenty_percent_gain_is_perfect", prev: 1000, cur: 1200, want: 1},
		{name: "beyond_twenty_percent_caps", prev: 1000, cur: 2000, want: 1},
		{name: "flat_week", prev: 1000, cur: 1000, want: 1000.0 / 1200.0},
		{name: "regression", prev: 1000, cur: 600, want: 0.5},
		{name: "first_productive_week", prev: 0, cur: 500, want: 0.6},
		{name: "no_data_either_week", prev: 0, cur: 0, want: 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := perfScore(tc.prev, tc.cur)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("perfScore(%v,%v)=%v, want %v", tc.prev, tc.cur, got, tc.want)
			}
		})
	}
}

func TestPerfScoreWorkedExample(t *testing.T) {
	got := perfScore(1000, 1100)
	if math.Abs(got-0.9167) > 1e-4 {
		t.Fatalf("perfScore(1000,1100)=%v, want ~0.9167", got)
	}
}

func TestRPEScore(t *testing.T) {
	t.Run("no_samples_is_neutral", func(t *testing.T) {
		if got := rpeScore(nil); got != 0.5 {
			t.Fatalf("rpeScore(nil)=%v, want 0.5", got)
		}
	})

	t.Run("target_average_is_perfect", func(t *testing.T) {
		if got := rpeScore([]float64{8, 8, 8}); got != 1.0 {
			t.Fatalf("rpeScore(all 8)=%v, want 1.0", got)
		}
	})

	t.Run("one_off_target", func(t *testing.T) {
		want := math.Exp(-0.5) // ~0.6065
		if got := rpeScore([]float64{7, 7}); math.Abs(got-want) > 1e-9 {
			t.Fatalf("rpeScore(avg 7)=%v, want %v", got, want)
		}
		if got := rpeScore([]float64{9}); math.Abs(got-want) > 1e-9 {
			t.Fatalf("rpeScore(avg 9)=%v, want %v", got, want)
		}
	})

	t.Run("mixed_samples_average_out", func(t *testing.T) {
		// avg(6, 10) == 8, so the spread does not matter, only the mean.
		if got := rpeScore([]float64{6, 10}); got != 1.0 {
			t.Fatalf("rpeScore(6,10)=%v, want 1.0", got)
		}
	})

	t.Run("far_from_target_decays", func(t *testing.T) {
		got := rpeScore([]float64{4})
		if got >= 0.01 || got <= 0 {
			t.Fatalf("rpeScore(avg 4)=%v, want small positive", got)
		}
	})
}

func TestObjectiveFromStrainAvg(t *testing.T) {
	cases := []struct {
		name string
		avg  float64
		want float64
	}{
		{name: "target_strain", avg: 0.6, want: 1},
		{name: "zero_strain", avg: 0, want: 0},
		{name: "below_target", avg: 0.3, want: 0.5},
		{name: "above_target", avg: 0.9, want: 0.5},
		{name: "max_strain", avg: 1.0, want: 1 - 0.4/0.6},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := objectiveFromStrainAvg(tc.avg)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("objectiveFromStrainAvg(%v)=%v, want %v", tc.avg, got, tc.want)
			}
		})
	}
}

func TestCompositeRewardWeights(t *testing.T) {
	if perfWeight+rpeWeight+objectiveWeight != 1.0 {
		t.Fatalf("reward weights sum to %v, want 1.0", perfWeight+rpeWeight+objectiveWeight)
	}
}
