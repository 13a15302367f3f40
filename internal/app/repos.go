package app

import (
	"gorm.io/gorm"

	"github.com/gitfit/gitfit-backend/internal/data/repos"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
)

type Repos struct {
	User                  repos.UserRepo
	Performance           repos.PerformanceRepo
	StrainSample          repos.StrainSampleRepo
	IntensityScore        repos.IntensityScoreRepo
	CoachingContext       repos.CoachingContextRepo
	AdjustmentPolicy      repos.AdjustmentPolicyRepo
	AdjustmentDecision    repos.AdjustmentDecisionRepo
	AdjustmentOutcome     repos.AdjustmentOutcomeRepo
	AdjustmentAchievement repos.AdjustmentAchievementRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		User:                  repos.NewUserRepo(db, log),
		Performance:           repos.NewPerformanceRepo(db, log),
		StrainSample:          repos.NewStrainSampleRepo(db, log),
		IntensityScore:        repos.NewIntensityScoreRepo(db, log),
		CoachingContext:       repos.NewCoachingContextRepo(db, log),
		AdjustmentPolicy:      repos.NewAdjustmentPolicyRepo(db, log),
		AdjustmentDecision:    repos.NewAdjustmentDecisionRepo(db, log),
		AdjustmentOutcome:     repos.NewAdjustmentOutcomeRepo(db, log),
		AdjustmentAchievement: repos.NewAdjustmentAchievementRepo(db, log),
	}
}
