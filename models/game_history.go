package models

import (
	"gorm.io/gorm"
)

// Round results
const (
	ResultWin  = "win"
	ResultLoss = "loss"
	ResultTie  = "tie"
)

// GameHistory records one settled round. Immutable once written; exactly
// one row is created per settlement, after the balance mutation committed.
type GameHistory struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index"`
	Variant string `gorm:"not null;index"`
	Bet     int64  `gorm:"not null"`
	Win     int64  `gorm:"not null;default:0"`
	Result  string `gorm:"not null"`
	Detail  string // game-specific result payload, JSON
	User    *User  `gorm:"belongsTo:User"`
}
