package db

import (
	"gorm.io/gorm"

	"github.com/gitfit/gitfit-backend/internal/types"
)

func (s *PostgresService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}

func AutoMigrateAll(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&types.User{},

		&types.PerformanceRecord{},
		&types.StrainSample{},
		&types.IntensityScoreRecord{},

		&types.CoachingContext{},

		&types.AdjustmentPolicy{},
		&types.AdjustmentDecision{},
		&types.AdjustmentOutcome{},
		&types.AdjustmentAchievement{},
	)
}
