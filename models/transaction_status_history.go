package models

import (
	"gorm.io/gorm"
)

// Actor kinds responsible for a status transition.
const (
	ActorUser   = "user"
	ActorAdmin  = "admin"
	ActorSystem = "system"
)

// TransactionStatusHistory is the append-only audit trail: one row per
// status transition, written in the same database transaction as the
// balance effect of that transition.
type TransactionStatusHistory struct {
	gorm.Model
	TransactionID uint         `gorm:"not null;index"`
	OldStatus     string       `gorm:"not null"`
	NewStatus     string       `gorm:"not null"`
	Reason        string       `gorm:"not null"`
	ActorKind     string       `gorm:"not null"`
	ActorID       uint         `gorm:"not null;default:0"`
	Transaction   *Transaction `gorm:"belongsTo:Transaction"`
}
