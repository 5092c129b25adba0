package seeders

import (
	"gorm.io/gorm"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/logger"
)

// SeedAllData runs all seeders.
func SeedAllData(db *gorm.DB) {
	logger.L().Info("starting database seeding")
	SeedUsers(db)
	logger.L().Info("database seeding completed")
}
