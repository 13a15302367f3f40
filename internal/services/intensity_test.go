package services

import (
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"

	errs "github.com/gitfit/gitfit-backend/internal/pkg/errors"
)

func TestComputeTotalScore(t *testing.T) {
	cases := []struct {
		name                       string
		tempo, motion, consistency float64
		feedback, modifier         float64
		want                       float64
	}{
		{name: "balanced_no_feedback", tempo: 90, motion: 80, consistency: 70, feedback: 0, modifier: 1.0, want: 80},
		{name: "red_strain_modifier", tempo: 90, motion: 80, consistency: 70, feedback: 0, modifier: 0.85, want: 68},
		{name: "yellow_strain_modifier", tempo: 90, motion: 80, consistency: 70, feedback: 0, modifier: 0.95, want: 76},
		{name: "positive_feedback", tempo: 60, motion: 60, consistency: 60, feedback: 10, modifier: 1.0, want: 70},
		{name: "negative_feedback", tempo: 60, motion: 60, consistency: 60, feedback: -15, modifier: 1.0, want: 45},
		{name: "feedback_cannot_exceed_100", tempo: 100, motion: 100, consistency: 100, feedback: 20, modifier: 1.0, want: 100},
		{name: "feedback_cannot_go_below_0", tempo: 0, motion: 0, consistency: 0, feedback: -15, modifier: 1.0, want: 0},
		{name: "modifier_applies_before_clamp", tempo: 100, motion: 100, consistency: 100, feedback: 20, modifier: 0.85, want: 100},
		{name: "modifier_scales_full_adjusted_value", tempo: 100, motion: 100, consistency: 100, feedback: 15, modifier: 0.85, want: 97.75},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := computeTotalScore(tc.tempo, tc.motion, tc.consistency, tc.feedback, tc.modifier)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("computeTotalScore(%v,%v,%v,%v,%v)=%v, want %v",
					tc.tempo, tc.motion, tc.consistency, tc.feedback, tc.modifier, got, tc.want)
			}
			if got < 0 || got > 100 {
				t.Fatalf("total score %v out of [0,100]", got)
			}
		})
	}
}

func TestValidateScoreSetInput(t *testing.T) {
	valid := ScoreSetInput{
		SessionID:        uuid.New(),
		ExerciseID:       uuid.New(),
		TempoScore:       90,
		MotionScore:      80,
		ConsistencyScore: 70,
		StrainModifier:   1.0,
	}
	if err := validateScoreSetInput(valid); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(in *ScoreSetInput)
	}{
		{name: "missing_session", mutate: func(in *ScoreSetInput) { in.SessionID = uuid.Nil }},
		{name: "missing_exercise", mutate: func(in *ScoreSetInput) { in.ExerciseID = uuid.Nil }},
		{name: "negative_set_index", mutate: func(in *ScoreSetInput) { in.SetIndex = -1 }},
		{name: "tempo_too_high", mutate: func(in *ScoreSetInput) { in.TempoScore = 101 }},
		{name: "motion_negative", mutate: func(in *ScoreSetInput) { in.MotionScore = -1 }},
		{name: "consistency_too_high", mutate: func(in *ScoreSetInput) { in.ConsistencyScore = 100.5 }},
		{name: "feedback_too_low", mutate: func(in *ScoreSetInput) { in.UserFeedbackScore = -16 }},
		{name: "feedback_too_high", mutate: func(in *ScoreSetInput) { in.UserFeedbackScore = 21 }},
		{name: "bad_modifier", mutate: func(in *ScoreSetInput) { in.StrainModifier = 0.9 }},
		{name: "zero_modifier", mutate: func(in *ScoreSetInput) { in.StrainModifier = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			err := validateScoreSetInput(in)
			if err == nil {
				t.Fatalf("expected validation error")
			}
			if !errors.Is(err, errs.ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestClassifyTrend(t *testing.T) {
	flat := func(n int, v float64) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = v
		}
		return out
	}

	t.Run("under_twenty_samples_is_stable", func(t *testing.T) {
		if got := classifyTrend(flat(19, 50)); got != TrendStable {
			t.Fatalf("classifyTrend=%q, want %q", got, TrendStable)
		}
	})

	t.Run("up", func(t *testing.T) {
		totals := append(flat(10, 50), flat(10, 55)...)
		if got := classifyTrend(totals); got != TrendUp {
			t.Fatalf("classifyTrend=%q, want %q", got, TrendUp)
		}
	})

	t.Run("down", func(t *testing.T) {
		totals := append(flat(10, 60), flat(10, 52)...)
		if got := classifyTrend(totals); got != TrendDown {
			t.Fatalf("classifyTrend=%q, want %q", got, TrendDown)
		}
	})

	t.Run("within_band_is_stable", func(t *testing.T) {
		totals := append(flat(10, 50), flat(10, 51.5)...)
		if got := classifyTrend(totals); got != TrendStable {
			t.Fatalf("classifyTrend=%q, want %q", got, TrendStable)
		}
	})

	t.Run("only_last_twenty_count", func(t *testing.T) {
		// A long flat prefix must not drown out a recent jump.
		totals := append(flat(30, 50), append(flat(10, 50), flat(10, 60)...)...)
		if got := classifyTrend(totals); got != TrendUp {
			t.Fatalf("classifyTrend=%q, want %q", got, TrendUp)
		}
	})

	t.Run("literal_labels", func(t *testing.T) {
		// The trend string is part of the history response contract.
		if TrendUp != "up" || TrendDown != "down" || TrendStable != "stable" {
			t.Fatalf("trend labels changed: %q %q %q", TrendUp, TrendDown, TrendStable)
		}
	})
}
