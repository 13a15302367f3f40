package services

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/gitfit/gitfit-backend/internal/data/repos"
	errs "github.com/gitfit/gitfit-backend/internal/pkg/errors"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/types"
)

// Composite reward weights.
const (
	perfWeight      = 0.55
	rpeWeight       = 0.25
	objectiveWeight = 0.20
)

// Objective-score sources, recorded in the breakdown for audit.
const (
	ObjectiveFromStrain    = "strain"
	ObjectiveFromReadiness = "readiness"
	ObjectiveFromDefault   = "default"
)

// RewardBreakdown is the composite reward with its sub-scores, all in [0,1].
type RewardBreakdown struct {
	Total           float64 `json:"reward"`
	PerfScore       float64 `json:"perf_score"`
	RPEScore        float64 `json:"rpe_score"`
	ObjectiveScore  float64 `json:"objective_score"`
	ObjectiveSource string  `json:"objective_source"`
	CurrentVolume   float64 `json:"current_volume"`
	PreviousVolume  float64 `json:"previous_volume"`
}

type RewardService interface {
	// ComputeReward is read-only and repeatable: same inputs, same reward.
	ComputeReward(ctx context.Context, userID, exerciseID uuid.UUID, weekStart time.Time) (*RewardBreakdown, error)
}

type rewardService struct {
	db         *gorm.DB
	log        *logger.Logger
	perfRepo   repos.PerformanceRepo
	strainRepo repos.StrainSampleRepo
	readiness  ReadinessClient
}

func NewRewardService(db *gorm.DB, baseLog *logger.Logger, perfRepo repos.PerformanceRepo, strainRepo repos.StrainSampleRepo, readiness ReadinessClient) RewardService {
	return &rewardService{
		db:         db,
		log:        baseLog.With("service", "RewardService"),
		perfRepo:   perfRepo,
		strainRepo: strainRepo,
		readiness:  readiness,
	}
}

func (s *rewardService) ComputeReward(ctx context.Context, userID, exerciseID uuid.UUID, weekStart time.Time) (*RewardBreakdown, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}

	weekStart = NormalizeWeekStart(weekStart)
	weekEnd := weekStart.AddDate(0, 0, 7)
	prevStart := weekStart.AddDate(0, 0, -7)

	var (
		current []*types.PerformanceRecord
		prior   []*types.PerformanceRecord
		strain  []*types.StrainSample
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.perfRepo.GetByUserExerciseWindow(gctx, nil, userID, exerciseID, weekStart, weekEnd)
		return err
	})
	g.Go(func() error {
		var err error
		prior, err = s.perfRepo.GetByUserExerciseWindow(gctx, nil, userID, exerciseID, prevStart, weekStart)
		return err
	})
	g.Go(func() error {
		var err error
		strain, err = s.strainRepo.GetByUserWindow(gctx, nil, userID, weekStart, weekEnd)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	curVolume := totalVolume(current)
	prevVolume := totalVolume(prior)
	objective, source := s.objectiveScore(ctx, userID, strain)

	breakdown := &RewardBreakdown{
		PerfScore:       perfScore(prevVolume, curVolume),
		RPEScore:        rpeScore(collectRPEs(current)),
		ObjectiveScore:  objective,
		ObjectiveSource: source,
		CurrentVolume:   curVolume,
		PreviousVolume:  prevVolume,
	}
	breakdown.Total = perfWeight*breakdown.PerfScore +
		rpeWeight*breakdown.RPEScore +
		objectiveWeight*breakdown.ObjectiveScore

	return breakdown, nil
}

// objectiveScore prefers the week's strain average, then the external
// readiness value, then the neutral default. A readiness failure is logged
// and absorbed; it never aborts reward computation.
func (s *rewardService) objectiveScore(ctx context.Context, userID uuid.UUID, strain []*types.StrainSample) (float64, string) {
	if len(strain) > 0 {
		sum := 0.0
		for _, sample := range strain {
			sum += sample.Value
		}
		return objectiveFromStrainAvg(sum / float64(len(strain))), ObjectiveFromStrain
	}

	readiness, err := s.readiness.GetReadiness(ctx, userID)
	if err != nil {
		s.log.Debug("readiness unavailable, using neutral objective", "user_id", userID, "error", err)
		return 0.5, ObjectiveFromDefault
	}
	return clamp(readiness, 0, 1), ObjectiveFromReadiness
}

func totalVolume(records []*types.PerformanceRecord) float64 {
	total := 0.0
	for _, rec := range records {
		total += rec.Volume()
	}
	return total
}

func collectRPEs(records []*types.PerformanceRecord) []float64 {
	var rpes []float64
	for _, rec := range records {
		rpes = append(rpes, rec.RPEs...)
	}
	return rpes
}

// perfScore rewards week-over-week volume progress. First productive week
// scores 0.6; afterwards full credit requires a 20% volume increase.
func perfScore(prevVolume, curVolume float64) float64 {
	switch {
	case prevVolume == 0 && curVolume > 0:
		return 0.6
	case prevVolume > 0:
		return clamp(curVolume/(prevVolume*1.2), 0, 1)
	default:
		return 0.5
	}
}

// rpeScore is a Gaussian around a target average RPE of 8 (sigma 1). No RPE
// samples scores the neutral 0.5.
func rpeScore(rpes []float64) float64 {
	if len(rpes) == 0 {
		return 0.5
	}
	avg := mean(rpes)
	z := (avg - 8.0) / 1.0
	return math.Exp(-0.5 * z * z)
}

// objectiveFromStrainAvg peaks at the moderate-strain target 0.6 and decays
// linearly toward the range edges.
func objectiveFromStrainAvg(avg float64) float64 {
	return clamp(1.0-math.Abs(avg-0.6)/0.6, 0, 1)
}
