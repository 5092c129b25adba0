package models

import (
	"gorm.io/gorm"
)

// Balance holds a user's spendable fichas plus the amount reserved by
// in-flight operations. Both columns stay >= 0 at all times; all writes
// go through the ledger service, never directly through gorm callers.
type Balance struct {
	gorm.Model
	UserID  uint  `gorm:"not null;uniqueIndex"`
	Balance int64 `gorm:"not null;default:0"`
	Locked  int64 `gorm:"not null;default:0"`
	User    *User `gorm:"belongsTo:User"`
}
