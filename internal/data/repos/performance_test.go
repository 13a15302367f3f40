package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/gitfit/gitfit-backend/internal/data/repos/testutil"
	"github.com/gitfit/gitfit-backend/internal/types"
)

func TestPerformanceWindowQuery(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()
	log := testutil.Logger(t)

	user := testutil.SeedUser(t, ctx, tx, "perf-window@test.local")
	repo := NewPerformanceRepo(gdb, log)

	exerciseID := uuid.New()
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	rows := []*types.PerformanceRecord{
		{
			UserID:      user.ID,
			SessionID:   uuid.New(),
			ExerciseID:  exerciseID,
			Reps:        datatypes.JSONSlice[int]{10, 8},
			Weights:     datatypes.JSONSlice[float64]{50, 55},
			RPEs:        datatypes.JSONSlice[float64]{7, 8},
			PerformedAt: weekStart.Add(48 * time.Hour),
		},
		{
			UserID:      user.ID,
			SessionID:   uuid.New(),
			ExerciseID:  exerciseID,
			Reps:        datatypes.JSONSlice[int]{10},
			Weights:     datatypes.JSONSlice[float64]{60},
			PerformedAt: weekStart.Add(24 * time.Hour),
		},
		{
			// The week boundary is half-open; this row belongs to next week.
			UserID:      user.ID,
			SessionID:   uuid.New(),
			ExerciseID:  exerciseID,
			Reps:        datatypes.JSONSlice[int]{5},
			Weights:     datatypes.JSONSlice[float64]{100},
			PerformedAt: weekStart.AddDate(0, 0, 7),
		},
	}
	if _, err := repo.Create(ctx, tx, rows); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByUserExerciseWindow(ctx, tx, user.ID, exerciseID, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("window query: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 in-window records, got %d", len(got))
	}
	if !got[0].PerformedAt.Before(got[1].PerformedAt) {
		t.Fatalf("records not in chronological order")
	}

	pairs, err := repo.DistinctPairsInWindow(ctx, tx, weekStart, weekStart.AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("distinct pairs: %v", err)
	}
	found := false
	for _, p := range pairs {
		if p.UserID == user.ID && p.ExerciseID == exerciseID {
			found = true
		}
	}
	if !found {
		t.Fatalf("active pair missing from window listing")
	}
}
