package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron"

	"github.com/gitfit/gitfit-backend/internal/data/repos"
	errs "github.com/gitfit/gitfit-backend/internal/pkg/errors"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/services"
)

// weeklySchedule fires Monday 00:05 in the server's local time (cron v1 has
// no timezone option; deployments run with TZ=UTC). Week keys are normalized
// to UTC in mondayOf regardless, so a non-UTC server only shifts when the
// sweep fires, never which week it closes.
const weeklySchedule = "0 5 0 * * 1"

// WeeklySweep closes the prior training week and opens the new one for every
// (user, exercise) pair with activity in the closing week. Each pair is
// independent; one failure never blocks the rest, and the sweep is safe to
// re-run because outcomes and decisions are idempotent by key.
type WeeklySweep struct {
	log      *logger.Logger
	perfRepo repos.PerformanceRepo
	policy   services.PolicyService
	cron     *cron.Cron
}

func NewWeeklySweep(baseLog *logger.Logger, perfRepo repos.PerformanceRepo, policy services.PolicyService) *WeeklySweep {
	return &WeeklySweep{
		log:      baseLog.With("job", "WeeklySweep"),
		perfRepo: perfRepo,
		policy:   policy,
	}
}

func (w *WeeklySweep) Start() error {
	c := cron.New()
	if err := c.AddFunc(weeklySchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()
		w.Run(ctx, time.Now().UTC())
	}); err != nil {
		return err
	}
	c.Start()
	w.cron = c
	w.log.Info("weekly sweep scheduled", "schedule", weeklySchedule)
	return nil
}

func (w *WeeklySweep) Stop() {
	if w.cron != nil {
		w.cron.Stop()
	}
}

// Run executes one sweep as of now. Exported so operators can trigger a
// catch-up pass manually.
func (w *WeeklySweep) Run(ctx context.Context, now time.Time) {
	thisWeek := mondayOf(now)
	prevWeek := thisWeek.AddDate(0, 0, -7)

	pairs, err := w.perfRepo.DistinctPairsInWindow(ctx, nil, prevWeek, thisWeek)
	if err != nil {
		w.log.Error("weekly sweep: listing active pairs failed", "error", err)
		return
	}
	w.log.Info("weekly sweep starting",
		"week_start", thisWeek.Format("2006-01-02"),
		"active_pairs", len(pairs))

	closed, opened := 0, 0
	for _, pair := range pairs {
		if _, err := w.policy.RecordOutcome(ctx, pair.UserID, pair.ExerciseID, prevWeek); err != nil {
			// No decision, or already closed by an earlier run: nothing to do.
			if !errors.Is(err, errs.ErrNotFound) && !errors.Is(err, errs.ErrConflict) {
				w.log.Warn("weekly sweep: record outcome failed",
					"user_id", pair.UserID, "exercise_id", pair.ExerciseID, "error", err)
				continue
			}
		} else {
			closed++
		}

		if _, err := w.policy.ChooseAdjustmentOrder(ctx, pair.UserID, services.ChooseAdjustmentInput{
			ExerciseID: pair.ExerciseID,
			WeekStart:  thisWeek,
		}); err != nil {
			w.log.Warn("weekly sweep: choose failed",
				"user_id", pair.UserID, "exercise_id", pair.ExerciseID, "error", err)
			continue
		}
		opened++
	}

	w.log.Info("weekly sweep finished", "closed", closed, "opened", opened)
}

// mondayOf returns midnight UTC of the Monday on or before t.
func mondayOf(t time.Time) time.Time {
	day := services.NormalizeWeekStart(t)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
