package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/logger"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/models"

	"go.uber.org/zap"
)

// LoadEnv reads .env when present; real environments set variables directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.L().Warn(".env file not found, using system environment variables")
	}
}

// ConnectDB opens the MySQL connection and migrates the schema. The
// returned handle is injected into the services; nothing holds it as a
// package global so tests can substitute their own.
func ConnectDB() (*gorm.DB, error) {
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")

	if dbUser == "" || dbHost == "" || dbPort == "" || dbName == "" {
		return nil, fmt.Errorf("missing required database environment variables")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		dbUser,
		dbPass,
		dbHost,
		dbPort,
		dbName)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	logger.L().Info("database connected", zap.String("host", dbHost), zap.String("name", dbName))
	return db, nil
}

// Migrate creates/updates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Balance{},
		&models.GameRound{},
		&models.GameHistory{},
		&models.Transaction{},
		&models.TransactionStatusHistory{},
		&models.BlacklistedToken{},
	)
}

// ExchangeRate returns the configured fiat-per-ficha rate (EXCHANGE_RATE,
// default 1).
func ExchangeRate() decimal.Decimal {
	raw := os.Getenv("EXCHANGE_RATE")
	if raw == "" {
		return decimal.NewFromInt(1)
	}
	rate, err := decimal.NewFromString(raw)
	if err != nil || rate.LessThanOrEqual(decimal.Zero) {
		logger.L().Warn("invalid EXCHANGE_RATE, falling back to 1", zap.String("value", raw))
		return decimal.NewFromInt(1)
	}
	return rate
}

// Currency returns the fiat currency code deposits are denominated in.
func Currency() string {
	if c := os.Getenv("CURRENCY"); c != "" {
		return c
	}
	return "IDR"
}
