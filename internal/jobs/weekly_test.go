package jobs

import (
	"testing"
	"time"
)

func TestMondayOf(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "monday_maps_to_itself",
			in:   time.Date(2026, 8, 31, 0, 5, 0, 0, time.UTC), // Monday
			want: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday_maps_back_six_days",
			in:   time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC), // Sunday
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "wednesday_maps_to_monday",
			in:   time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC), // Wednesday
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			// The key tracks the UTC instant, not the server zone: Tuesday
			// evening at UTC-5 is already Wednesday in UTC.
			name: "non_utc_server_keys_by_utc_instant",
			in:   time.Date(2026, 8, 25, 20, 0, 0, 0, time.FixedZone("UTC-5", -5*3600)),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mondayOf(tc.in)
			if !got.Equal(tc.want) {
				t.Fatalf("mondayOf(%v)=%v, want %v", tc.in, got, tc.want)
			}
		})
	}
}
