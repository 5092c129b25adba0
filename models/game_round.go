package models

import (
	"gorm.io/gorm"
)

// Round statuses
const (
	RoundActive  = "active"
	RoundSettled = "settled"
)

// GameRound holds the server-side state of a multi-step round (blackjack,
// three-card poker) between requests. State stores only the raw dealt
// cards; totals and winnings are recomputed from it on every step. Once a
// stake has been debited the round must reach settled, there is no refund
// path other than an explicit fold.
type GameRound struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index"`
	Variant string `gorm:"not null"`
	Bet     int64  `gorm:"not null"`
	Stage   string `gorm:"not null"`
	State   string // raw dealt cards, JSON
	Status  string `gorm:"not null;default:'active'"`
	User    *User  `gorm:"belongsTo:User"`
}
