package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gitfit/gitfit-backend/internal/data/repos"
	errs "github.com/gitfit/gitfit-backend/internal/pkg/errors"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/types"
)

// Trend labels for score history.
const (
	TrendUp     = "up"
	TrendStable = "stable"
	TrendDown   = "down"
)

// trendWindow is the per-side sample count for the trend comparison. Fewer
// than 2*trendWindow samples always reads as stable.
const trendWindow = 10

type ScoreSetInput struct {
	SessionID         uuid.UUID `json:"session_id"`
	ExerciseID        uuid.UUID `json:"exercise_id"`
	SetIndex          int       `json:"set_index"`
	TempoScore        float64   `json:"tempo_score"`
	MotionScore       float64   `json:"motion_score"`
	ConsistencyScore  float64   `json:"consistency_score"`
	UserFeedbackScore float64   `json:"user_feedback_score"`
	StrainModifier    float64   `json:"strain_modifier"`
	IsEstimated       bool      `json:"is_estimated"`
}

type ScoreHistory struct {
	Records []*types.IntensityScoreRecord `json:"records"`
	Average float64                       `json:"average"`
	Min     float64                       `json:"min"`
	Max     float64                       `json:"max"`
	Trend   string                        `json:"trend"`
}

type IntensityService interface {
	ScoreSet(ctx context.Context, userID uuid.UUID, input ScoreSetInput) (*types.IntensityScoreRecord, error)
	GetScoreHistory(ctx context.Context, userID uuid.UUID, exerciseID *uuid.UUID, limit int) (*ScoreHistory, error)
}

type intensityService struct {
	db        *gorm.DB
	log       *logger.Logger
	scoreRepo repos.IntensityScoreRepo
}

func NewIntensityService(db *gorm.DB, baseLog *logger.Logger, scoreRepo repos.IntensityScoreRepo) IntensityService {
	return &intensityService{
		db:        db,
		log:       baseLog.With("service", "IntensityService"),
		scoreRepo: scoreRepo,
	}
}

func (s *intensityService) ScoreSet(ctx context.Context, userID uuid.UUID, input ScoreSetInput) (*types.IntensityScoreRecord, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	if err := validateScoreSetInput(input); err != nil {
		return nil, err
	}

	row := &types.IntensityScoreRecord{
		UserID:            userID,
		SessionID:         input.SessionID,
		ExerciseID:        input.ExerciseID,
		SetIndex:          input.SetIndex,
		TempoScore:        input.TempoScore,
		MotionScore:       input.MotionScore,
		ConsistencyScore:  input.ConsistencyScore,
		UserFeedbackScore: input.UserFeedbackScore,
		StrainModifier:    input.StrainModifier,
		TotalScore:        computeTotalScore(input.TempoScore, input.MotionScore, input.ConsistencyScore, input.UserFeedbackScore, input.StrainModifier),
		IsEstimated:       input.IsEstimated,
		CreatedAt:         time.Now().UTC(),
	}

	var saved *types.IntensityScoreRecord
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created, err := s.scoreRepo.Create(ctx, tx, row)
		if err != nil {
			return err
		}
		saved = created
		return nil
	}); err != nil {
		s.log.Warn("ScoreSet transaction error", "error", err)
		return nil, err
	}

	s.log.Debug("scored set",
		"user_id", userID,
		"exercise_id", input.ExerciseID,
		"set_index", input.SetIndex,
		"total", saved.TotalScore)
	return saved, nil
}

func (s *intensityService) GetScoreHistory(ctx context.Context, userID uuid.UUID, exerciseID *uuid.UUID, limit int) (*ScoreHistory, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}

	records, err := s.scoreRepo.GetByUser(ctx, nil, userID, exerciseID, limit)
	if err != nil {
		return nil, err
	}

	history := &ScoreHistory{
		Records: records,
		Trend:   TrendStable,
	}
	if len(records) == 0 {
		return history, nil
	}

	totals := make([]float64, len(records))
	for i, rec := range records {
		totals[i] = rec.TotalScore
	}

	minScore, maxScore, sum := totals[0], totals[0], 0.0
	for _, v := range totals {
		if v < minScore {
			minScore = v
		}
		if v > maxScore {
			maxScore = v
		}
		sum += v
	}

	history.Average = sum / float64(len(totals))
	history.Min = minScore
	history.Max = maxScore
	history.Trend = classifyTrend(totals)
	return history, nil
}

func validateScoreSetInput(input ScoreSetInput) error {
	if input.SessionID == uuid.Nil {
		return fmt.Errorf("%w: session_id is required", errs.ErrInvalidArgument)
	}
	if input.ExerciseID == uuid.Nil {
		return fmt.Errorf("%w: exercise_id is required", errs.ErrInvalidArgument)
	}
	if input.SetIndex < 0 {
		return fmt.Errorf("%w: set_index must not be negative", errs.ErrInvalidArgument)
	}
	if input.TempoScore < 0 || input.TempoScore > 100 {
		return fmt.Errorf("%w: tempo_score out of range (0..100)", errs.ErrInvalidArgument)
	}
	if input.MotionScore < 0 || input.MotionScore > 100 {
		return fmt.Errorf("%w: motion_score out of range (0..100)", errs.ErrInvalidArgument)
	}
	if input.ConsistencyScore < 0 || input.ConsistencyScore > 100 {
		return fmt.Errorf("%w: consistency_score out of range (0..100)", errs.ErrInvalidArgument)
	}
	if input.UserFeedbackScore < -15 || input.UserFeedbackScore > 20 {
		return fmt.Errorf("%w: user_feedback_score out of range (-15..20)", errs.ErrInvalidArgument)
	}
	switch input.StrainModifier {
	case 0.85, 0.95, 1.0:
	default:
		return fmt.Errorf("%w: strain_modifier must be one of 0.85, 0.95, 1.0", errs.ErrInvalidArgument)
	}
	return nil
}

// computeTotalScore combines the three technique components, applies the
// athlete's subjective feedback, then scales by the strain modifier. Only the
// final product is clamped: positive feedback can carry a set past 100 before
// the modifier, so a sub-1.0 modifier scales the full adjusted value.
func computeTotalScore(tempo, motion, consistency, feedback, modifier float64) float64 {
	adjusted := (tempo+motion+consistency)/3.0 + feedback
	return clamp(adjusted*modifier, 0, 100)
}

// classifyTrend compares the mean of the most recent trendWindow totals
// against the mean of the trendWindow before them. A gap outside the +/-2
// band marks the direction; anything else, including short histories, is
// stable.
func classifyTrend(totals []float64) string {
	if len(totals) < 2*trendWindow {
		return TrendStable
	}

	recent := mean(totals[len(totals)-trendWindow:])
	prior := mean(totals[len(totals)-2*trendWindow : len(totals)-trendWindow])

	switch diff := recent - prior; {
	case diff > 2:
		return TrendUp
	case diff < -2:
		return TrendDown
	default:
		return TrendStable
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
