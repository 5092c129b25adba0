package seeders

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/logger"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/models"

	"go.uber.org/zap"
)

// SeedUsers creates the default admin and a demo player with starting
// fichas grants.
func SeedUsers(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		logger.L().Info("users already exist, skipping seed")
		return
	}

	adminPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := models.User{
		Username: "admin",
		Email:    "admin@casino.local",
		Password: string(adminPassword),
		Role:     "admin",
		Status:   "active",
	}
	if err := db.Create(&admin).Error; err != nil {
		logger.L().Error("seed admin user", zap.Error(err))
		return
	}
	if err := db.Create(&models.Balance{UserID: admin.ID, Balance: 100000}).Error; err != nil {
		logger.L().Error("seed admin balance", zap.Error(err))
		return
	}

	userPassword, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
	user := models.User{
		Username: "demo",
		Email:    "demo@casino.local",
		Password: string(userPassword),
		Role:     "user",
		Status:   "active",
	}
	if err := db.Create(&user).Error; err != nil {
		logger.L().Error("seed demo user", zap.Error(err))
		return
	}
	if err := db.Create(&models.Balance{UserID: user.ID, Balance: 10000}).Error; err != nil {
		logger.L().Error("seed demo balance", zap.Error(err))
		return
	}

	logger.L().Info("users seeded",
		zap.String("admin", admin.Email),
		zap.String("demo", user.Email))
}
