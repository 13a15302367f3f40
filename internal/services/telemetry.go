package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/gitfit/gitfit-backend/internal/data/repos"
	errs "github.com/gitfit/gitfit-backend/internal/pkg/errors"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/types"
)

// Strain sample scales accepted at the ingest boundary. Everything is stored
// normalized [0,1]; percent120 covers devices reporting 0-120%.
const (
	ScaleNormalized = "normalized"
	ScalePercent120 = "percent120"
)

type PerformanceInput struct {
	SessionID   uuid.UUID `json:"session_id"`
	ExerciseID  uuid.UUID `json:"exercise_id"`
	Reps        []int     `json:"reps"`
	Weights     []float64 `json:"weights"`
	RPEs        []float64 `json:"rpes"`
	PerformedAt time.Time `json:"performed_at"`
}

type StrainSampleInput struct {
	Value      float64   `json:"value"`
	Scale      string    `json:"scale,omitempty"`
	Source     string    `json:"source,omitempty"`
	RecordedAt time.Time `json:"recorded_at"`
}

type TelemetryService interface {
	IngestPerformance(ctx context.Context, userID uuid.UUID, inputs []PerformanceInput) ([]*types.PerformanceRecord, error)
	IngestStrain(ctx context.Context, userID uuid.UUID, inputs []StrainSampleInput) ([]*types.StrainSample, error)
}

type telemetryService struct {
	db         *gorm.DB
	log        *logger.Logger
	perfRepo   repos.PerformanceRepo
	strainRepo repos.StrainSampleRepo
}

func NewTelemetryService(db *gorm.DB, baseLog *logger.Logger, perfRepo repos.PerformanceRepo, strainRepo repos.StrainSampleRepo) TelemetryService {
	return &telemetryService{
		db:         db,
		log:        baseLog.With("service", "TelemetryService"),
		perfRepo:   perfRepo,
		strainRepo: strainRepo,
	}
}

func (s *telemetryService) IngestPerformance(ctx context.Context, userID uuid.UUID, inputs []PerformanceInput) ([]*types.PerformanceRecord, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one performance record is required", errs.ErrInvalidArgument)
	}

	rows := make([]*types.PerformanceRecord, 0, len(inputs))
	for i, in := range inputs {
		if in.SessionID == uuid.Nil {
			return nil, fmt.Errorf("%w: records[%d].session_id is required", errs.ErrInvalidArgument, i)
		}
		if in.ExerciseID == uuid.Nil {
			return nil, fmt.Errorf("%w: records[%d].exercise_id is required", errs.ErrInvalidArgument, i)
		}
		if in.PerformedAt.IsZero() {
			return nil, fmt.Errorf("%w: records[%d].performed_at is required", errs.ErrInvalidArgument, i)
		}
		if len(in.Reps) == 0 {
			return nil, fmt.Errorf("%w: records[%d].reps must not be empty", errs.ErrInvalidArgument, i)
		}
		if len(in.Weights) != len(in.Reps) {
			return nil, fmt.Errorf("%w: records[%d].weights must match reps length", errs.ErrInvalidArgument, i)
		}
		for _, r := range in.Reps {
			if r < 0 {
				return nil, fmt.Errorf("%w: records[%d].reps must not be negative", errs.ErrInvalidArgument, i)
			}
		}
		for _, w := range in.Weights {
			if w < 0 {
				return nil, fmt.Errorf("%w: records[%d].weights must not be negative", errs.ErrInvalidArgument, i)
			}
		}
		for _, rpe := range in.RPEs {
			if rpe < 1 || rpe > 10 {
				return nil, fmt.Errorf("%w: records[%d].rpes out of range (1..10)", errs.ErrInvalidArgument, i)
			}
		}

		rows = append(rows, &types.PerformanceRecord{
			UserID:      userID,
			SessionID:   in.SessionID,
			ExerciseID:  in.ExerciseID,
			Reps:        datatypes.JSONSlice[int](in.Reps),
			Weights:     datatypes.JSONSlice[float64](in.Weights),
			RPEs:        datatypes.JSONSlice[float64](in.RPEs),
			PerformedAt: in.PerformedAt.UTC(),
		})
	}

	var saved []*types.PerformanceRecord
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		saved, err = s.perfRepo.Create(ctx, tx, rows)
		return err
	}); err != nil {
		s.log.Warn("IngestPerformance transaction error", "error", err)
		return nil, err
	}
	return saved, nil
}

func (s *telemetryService) IngestStrain(ctx context.Context, userID uuid.UUID, inputs []StrainSampleInput) ([]*types.StrainSample, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one strain sample is required", errs.ErrInvalidArgument)
	}

	rows := make([]*types.StrainSample, 0, len(inputs))
	for i, in := range inputs {
		if in.RecordedAt.IsZero() {
			return nil, fmt.Errorf("%w: samples[%d].recorded_at is required", errs.ErrInvalidArgument, i)
		}

		value, err := normalizeStrainValue(in.Value, in.Scale)
		if err != nil {
			return nil, fmt.Errorf("%w: samples[%d]: %v", errs.ErrInvalidArgument, i, err)
		}

		rows = append(rows, &types.StrainSample{
			UserID:     userID,
			Value:      value,
			Source:     in.Source,
			RecordedAt: in.RecordedAt.UTC(),
		})
	}

	var saved []*types.StrainSample
	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		saved, err = s.strainRepo.Create(ctx, tx, rows)
		return err
	}); err != nil {
		s.log.Warn("IngestStrain transaction error", "error", err)
		return nil, err
	}
	return saved, nil
}

// normalizeStrainValue converts a sample to the canonical [0,1] scale.
func normalizeStrainValue(value float64, scale string) (float64, error) {
	switch scale {
	case "", ScaleNormalized:
		if value < 0 || value > 1 {
			return 0, fmt.Errorf("value out of range (0..1)")
		}
		return value, nil
	case ScalePercent120:
		if value < 0 || value > 120 {
			return 0, fmt.Errorf("value out of range (0..120)")
		}
		return value / 120.0, nil
	default:
		return 0, fmt.Errorf("unknown scale %q", scale)
	}
}
