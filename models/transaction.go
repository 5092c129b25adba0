package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction directions
const (
	TxDeposit  = "deposit"
	TxWithdraw = "withdraw"
)

// Transaction lifecycle statuses: pending -> processing -> completed,
// or pending -> rejected, or pending -> cancelled.
const (
	TxPending    = "pending"
	TxProcessing = "processing"
	TxCompleted  = "completed"
	TxRejected   = "rejected"
	TxCancelled  = "cancelled"
)

// Transaction methods
const (
	MethodGateway = "gateway"
	MethodBank    = "bank"
	MethodCrypto  = "crypto"
	MethodManual  = "manual"
)

type Transaction struct {
	gorm.Model
	UserID    uint            `gorm:"not null;index"`
	Direction string          `gorm:"not null;index"`
	Method    string          `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"` // requested fiat amount
	Fichas    int64           `gorm:"not null"`                    // fichas credited/debited on completion
	Status    string          `gorm:"not null;default:'pending'"`
	Reference string          `gorm:"uniqueIndex;not null"` // operator-side reference
	// GatewayRef is the preference identifier handed to the payment gateway;
	// PaymentID is the provider's payment identifier from the confirmation
	// event. PaymentID is unique so the same confirmation can never apply twice.
	GatewayRef string  `gorm:"index"`
	PaymentID  *string `gorm:"uniqueIndex"`
	Detail     string  // method-specific payload (bank details, crypto address)
	User       *User   `gorm:"belongsTo:User"`

	StatusHistory []TransactionStatusHistory `gorm:"hasMany:TransactionStatusHistory"`
}

// Transitionable reports whether the transaction can still change status.
func (t *Transaction) Transitionable() bool {
	return t.Status == TxPending || t.Status == TxProcessing
}
