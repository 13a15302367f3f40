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

// Rest extension suggested when the athlete hits the red zone mid-session.
const redZoneRestExtensionSeconds = 30

type ClassifyStrainInput struct {
	StrainZone   string  `json:"strain_zone"`
	SessionPhase string  `json:"session_phase"`
	Persona      *string `json:"persona,omitempty"`
	VoiceEnabled *bool   `json:"voice_enabled,omitempty"`
}

// CoachingDirective is the actionable output of a strain classification.
// Only red carries a structured adjustment signal; yellow and green are
// message-only.
type CoachingDirective struct {
	StrainZone                    string `json:"strain_zone"`
	SessionPhase                  string `json:"session_phase"`
	Message                       string `json:"message"`
	SuggestedRestExtensionSeconds int    `json:"suggested_rest_extension_seconds,omitempty"`
	ShouldReduceIntensity         bool   `json:"should_reduce_intensity"`
	VoiceLine                     string `json:"voice_line,omitempty"`
	Persona                       string `json:"persona"`
}

type ClassifyStrainResult struct {
	Context   *types.CoachingContext `json:"context"`
	Directive *CoachingDirective     `json:"directive"`
}

type CoachingService interface {
	ClassifyStrain(ctx context.Context, userID uuid.UUID, input ClassifyStrainInput) (*ClassifyStrainResult, error)
	GetContext(ctx context.Context, userID uuid.UUID) (*types.CoachingContext, error)
}

type coachingService struct {
	db        *gorm.DB
	log       *logger.Logger
	ctxRepo   repos.CoachingContextRepo
	voicepack *Voicepack
	notifier  CoachingNotifier
}

func NewCoachingService(db *gorm.DB, baseLog *logger.Logger, ctxRepo repos.CoachingContextRepo, voicepack *Voicepack, notifier CoachingNotifier) CoachingService {
	return &coachingService{
		db:        db,
		log:       baseLog.With("service", "CoachingService"),
		ctxRepo:   ctxRepo,
		voicepack: voicepack,
		notifier:  notifier,
	}
}

func (s *coachingService) ClassifyStrain(ctx context.Context, userID uuid.UUID, input ClassifyStrainInput) (*ClassifyStrainResult, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}

	switch input.StrainZone {
	case types.StrainZoneGreen, types.StrainZoneYellow, types.StrainZoneRed:
	default:
		return nil, fmt.Errorf("%w: strain_zone must be one of green, yellow, red", errs.ErrInvalidArgument)
	}
	switch input.SessionPhase {
	case types.PhaseWarmup, types.PhaseWorkingSets, types.PhaseCooldown:
	default:
		return nil, fmt.Errorf("%w: session_phase must be one of warmup, working_sets, cooldown", errs.ErrInvalidArgument)
	}
	if input.Persona != nil && !s.voicepack.HasPersona(*input.Persona) {
		return nil, fmt.Errorf("%w: unknown persona %q", errs.ErrInvalidArgument, *input.Persona)
	}

	var saved *types.CoachingContext
	var directive *CoachingDirective

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prev, err := s.ctxRepo.GetByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}

		persona := DefaultPersona
		voiceEnabled := true
		if prev != nil {
			persona = prev.Persona
			voiceEnabled = prev.VoiceEnabled
		}
		if input.Persona != nil {
			persona = *input.Persona
		}
		if input.VoiceEnabled != nil {
			voiceEnabled = *input.VoiceEnabled
		}

		directive = s.buildDirective(input.StrainZone, input.SessionPhase, persona, voiceEnabled)

		row := &types.CoachingContext{
			UserID:        userID,
			StrainZone:    input.StrainZone,
			SessionPhase:  input.SessionPhase,
			Persona:       persona,
			VoiceEnabled:  voiceEnabled,
			LastMessage:   directive.Message,
			LastUpdatedAt: time.Now().UTC(),
		}

		saved, err = s.ctxRepo.Upsert(ctx, tx, row)
		return err
	}); err != nil {
		s.log.Warn("ClassifyStrain transaction error", "error", err)
		return nil, err
	}

	s.notifier.Directive(userID, directive)

	s.log.Debug("classified strain",
		"user_id", userID,
		"zone", input.StrainZone,
		"phase", input.SessionPhase)
	return &ClassifyStrainResult{Context: saved, Directive: directive}, nil
}

func (s *coachingService) GetContext(ctx context.Context, userID uuid.UUID) (*types.CoachingContext, error) {
	if userID == uuid.Nil {
		return nil, errs.ErrUnauthorized
	}
	return s.ctxRepo.GetByUserID(ctx, nil, userID)
}

// buildDirective maps (zone, phase) to coaching output. Red demands recovery:
// a rest extension plus an intensity reduction, with a spoken line only
// during working sets. Yellow holds steady; green invites more load in the
// message text alone.
func (s *coachingService) buildDirective(zone, phase, persona string, voiceEnabled bool) *CoachingDirective {
	d := &CoachingDirective{
		StrainZone:   zone,
		SessionPhase: phase,
		Persona:      persona,
	}

	switch zone {
	case types.StrainZoneRed:
		d.Message = "Strain is critically high. Extend your rest and reduce intensity before the next set."
		d.SuggestedRestExtensionSeconds = redZoneRestExtensionSeconds
		d.ShouldReduceIntensity = true
		if voiceEnabled && phase == types.PhaseWorkingSets {
			d.VoiceLine = s.voicepack.Line(zone, phase, persona)
		}
	case types.StrainZoneYellow:
		d.Message = "Strain is elevated but manageable. Maintain your current pace."
	case types.StrainZoneGreen:
		d.Message = "Strain is low. You have headroom to increase intensity if it feels right."
	}

	return d
}
