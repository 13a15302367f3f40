package app

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/gitfit/gitfit-backend/internal/jobs"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/realtime"
	"github.com/gitfit/gitfit-backend/internal/services"
)

type Services struct {
	Intensity services.IntensityService
	Coaching  services.CoachingService
	Reward    services.RewardService
	Policy    services.PolicyService
	Telemetry services.TelemetryService

	Notifier    services.CoachingNotifier
	WeeklySweep *jobs.WeeklySweep
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos, clients Clients, hub *realtime.Hub) (Services, error) {
	voicepack, err := services.LoadVoicepack(cfg.VoicepackPath)
	if err != nil {
		return Services{}, fmt.Errorf("load voicepack: %w", err)
	}

	// Local broadcasts go straight to the hub. With redis configured the bus
	// carries them instead, and the forwarder feeds every instance's hub.
	var emitter services.Emitter = &services.HubEmitter{Hub: hub}
	if clients.DirectiveBus != nil {
		emitter = &services.RedisEmitter{Bus: clients.DirectiveBus}
	}
	notifier := services.NewCoachingNotifier(emitter)

	intensity := services.NewIntensityService(db, log, reposet.IntensityScore)
	coaching := services.NewCoachingService(db, log, reposet.CoachingContext, voicepack, notifier)
	reward := services.NewRewardService(db, log, reposet.Performance, reposet.StrainSample, clients.Readiness)
	policy := services.NewPolicyService(
		db, log,
		reposet.AdjustmentPolicy,
		reposet.AdjustmentDecision,
		reposet.AdjustmentOutcome,
		reposet.AdjustmentAchievement,
		reward,
		notifier,
		cfg.DefaultEpsilon,
		cfg.PolicySeed,
	)
	telemetry := services.NewTelemetryService(db, log, reposet.Performance, reposet.StrainSample)

	return Services{
		Intensity:   intensity,
		Coaching:    coaching,
		Reward:      reward,
		Policy:      policy,
		Telemetry:   telemetry,
		Notifier:    notifier,
		WeeklySweep: jobs.NewWeeklySweep(log, reposet.Performance, policy),
	}, nil
}
