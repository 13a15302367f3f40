package services

import (
	"math"
	"testing"
)

func TestNormalizeStrainValue(t *testing.T) {
	cases := []struct {
		name    string
		value   float64
		scale   string
		want    float64
		wantErr bool
	}{
		{name: "default_scale", value: 0.75, scale: "", want: 0.75},
		{name: "explicit_normalized", value: 0.2, scale: ScaleNormalized, want: 0.2},
		{name: "percent120_full", value: 120, scale: ScalePercent120, want: 1},
		{name: "percent120_mid", value: 72, scale: ScalePercent120, want: 0.6},
		{name: "percent120_zero", value: 0, scale: ScalePercent120, want: 0},
		{name: "normalized_too_high", value: 1.1, scale: "", wantErr: true},
		{name: "normalized_negative", value: -0.1, scale: ScaleNormalized, wantErr: true},
		{name: "percent120_too_high", value: 121, scale: ScalePercent120, wantErr: true},
		{name: "unknown_scale", value: 0.5, scale: "bpm", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalizeStrainValue(tc.value, tc.scale)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("normalizeStrainValue(%v,%q)=%v, want %v", tc.value, tc.scale, got, tc.want)
			}
		})
	}
}
