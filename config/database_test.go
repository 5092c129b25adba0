package config

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	return db
}

// The schema must migrate on sqlite too, so the column types stay
// dialect-neutral; status vocabularies live in the model constants.
func TestMigrate(t *testing.T) {
	db := testDB(t)
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate() error = %v", err)
	}

	user := models.User{
		Username: "admin",
		Email:    "admin@casino.local",
		Password: "secret",
		Role:     "admin",
		Status:   "active",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	var gotUser models.User
	if err := db.First(&gotUser, user.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if gotUser.Role != "admin" || gotUser.Status != "active" {
		t.Errorf("user round-trip = %s/%s, want admin/active", gotUser.Role, gotUser.Status)
	}

	tx := models.Transaction{
		UserID:    user.ID,
		Direction: models.TxDeposit,
		Method:    models.MethodGateway,
		Status:    models.TxPending,
		Reference: "ref-1",
	}
	if err := db.Create(&tx).Error; err != nil {
		t.Fatalf("create transaction: %v", err)
	}
	if err := db.Create(&models.TransactionStatusHistory{
		TransactionID: tx.ID,
		NewStatus:     models.TxPending,
		Reason:        "created",
		ActorKind:     models.ActorSystem,
	}).Error; err != nil {
		t.Fatalf("create status history: %v", err)
	}

	round := models.GameRound{UserID: user.ID, Variant: "blackjack", Bet: 10, Stage: "player_turn", Status: models.RoundActive}
	if err := db.Create(&round).Error; err != nil {
		t.Fatalf("create round: %v", err)
	}
	history := models.GameHistory{UserID: user.ID, Variant: "blackjack", Bet: 10, Win: 20, Result: models.ResultWin}
	if err := db.Create(&history).Error; err != nil {
		t.Fatalf("create history: %v", err)
	}
}
