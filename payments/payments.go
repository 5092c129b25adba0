// Package payments owns the transaction ledger and its settlement
// workflow: deposit initiation and confirmation, withdrawal request and
// admin-gated completion/rejection, user cancellation, and manual
// adjustments. Every status transition appends a status-history row in
// the same database transaction as its balance effect.
package payments

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/ledger"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/metrics"
	"github.com/DanielXT1021S/Nimetsu-casino-sub000/models"
)

var (
	ErrNotFound              = errors.New("transaction not found")
	ErrNotTransitionable     = errors.New("transaction is not in a transitionable state")
	ErrDuplicateConfirmation = errors.New("payment confirmation already applied")
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrNotOwner              = errors.New("transaction belongs to another user")
)

// Gateway event kinds and payment statuses as delivered by the provider.
const (
	EventPayment = "payment"

	PaymentApproved  = "approved"
	PaymentInProcess = "in_process"
	PaymentRejected  = "rejected"
	PaymentCancelled = "cancelled"
)

// GatewayRequest is the outbound payment-request descriptor handed to
// the gateway when a deposit is initiated.
type GatewayRequest struct {
	PreferenceID string          `json:"preference_id"`
	Reference    string          `json:"reference"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
	PayerEmail   string          `json:"payer_email"`
}

// GatewayEvent is the inbound asynchronous confirmation the gateway
// delivers. PaymentID is the provider's payment identifier and the
// idempotency key; the transport may redeliver the same event.
type GatewayEvent struct {
	Kind         string          `json:"kind"`
	PaymentID    string          `json:"payment_id"`
	PreferenceID string          `json:"preference_id"`
	Status       string          `json:"status"`
	Amount       decimal.Decimal `json:"amount"`
}

// AdminCommand is the administrator action surface: a target status plus
// a reason, issued by an identified admin.
type AdminCommand struct {
	AdminID uint
	Reason  string
}

type Service struct {
	db       *gorm.DB
	ledger   *ledger.Service
	rate     decimal.Decimal // fiat units per ficha
	currency string
	log      *zap.Logger
}

func New(db *gorm.DB, lgr *ledger.Service, rate decimal.Decimal, currency string, log *zap.Logger) *Service {
	if rate.LessThanOrEqual(decimal.Zero) {
		rate = decimal.NewFromInt(1)
	}
	return &Service{db: db, ledger: lgr, rate: rate, currency: currency, log: log}
}

// FichasFor converts a fiat amount into whole fichas, rounding down.
func (s *Service) FichasFor(amount decimal.Decimal) int64 {
	return amount.Div(s.rate).Floor().IntPart()
}

// FiatFor converts fichas back to the fiat amount at the current rate.
func (s *Service) FiatFor(fichas int64) decimal.Decimal {
	return decimal.NewFromInt(fichas).Mul(s.rate)
}

// recordTransition persists the status change and its audit row inside tx.
func recordTransition(tx *gorm.DB, t *models.Transaction, newStatus, reason, actorKind string, actorID uint) error {
	old := t.Status
	t.Status = newStatus
	if err := tx.Save(t).Error; err != nil {
		return err
	}
	return tx.Create(&models.TransactionStatusHistory{
		TransactionID: t.ID,
		OldStatus:     old,
		NewStatus:     newStatus,
		Reason:        reason,
		ActorKind:     actorKind,
		ActorID:       actorID,
	}).Error
}

// InitiateDeposit creates the pending deposit transaction and the
// payment-request descriptor for the gateway. No balance effect yet.
func (s *Service) InitiateDeposit(userID uint, amount decimal.Decimal, payerEmail string) (*models.Transaction, *GatewayRequest, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil, ErrInvalidAmount
	}
	fichas := s.FichasFor(amount)
	if fichas < 1 {
		return nil, nil, ErrInvalidAmount
	}

	t := models.Transaction{
		UserID:     userID,
		Direction:  models.TxDeposit,
		Method:     models.MethodGateway,
		Amount:     amount,
		Fichas:     fichas,
		Status:     models.TxPending,
		Reference:  uuid.New().String(),
		GatewayRef: uuid.New().String(),
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		return tx.Create(&models.TransactionStatusHistory{
			TransactionID: t.ID,
			OldStatus:     "",
			NewStatus:     models.TxPending,
			Reason:        "deposit requested",
			ActorKind:     models.ActorUser,
			ActorID:       userID,
		}).Error
	})
	if err != nil {
		return nil, nil, err
	}

	s.log.Info("deposit initiated",
		zap.Uint("user_id", userID),
		zap.String("reference", t.Reference),
		zap.Int64("fichas", fichas))

	return &t, &GatewayRequest{
		PreferenceID: t.GatewayRef,
		Reference:    t.Reference,
		Amount:       amount,
		Currency:     s.currency,
		PayerEmail:   payerEmail,
	}, nil
}

// ConfirmDeposit consumes a gateway confirmation event. An approved
// payment credits the fichas amount of the original request and
// completes the transaction; an in-process payment moves it to
// processing; a rejected or cancelled payment rejects it. Applying the
// same provider payment identifier twice fails with
// ErrDuplicateConfirmation and leaves the balance untouched.
func (s *Service) ConfirmDeposit(ev GatewayEvent) (*models.Transaction, error) {
	if ev.Kind != EventPayment {
		return nil, fmt.Errorf("unsupported event kind %q", ev.Kind)
	}

	var t models.Transaction
	err := s.db.Where("gateway_ref = ? AND direction = ?", ev.PreferenceID, models.TxDeposit).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	err = s.ledger.Exclusive(t.UserID, func(tx *gorm.DB) error {
		// Re-read inside the exclusion window; a redelivered event may
		// have raced us to the commit.
		if err := tx.First(&t, t.ID).Error; err != nil {
			return err
		}
		if t.PaymentID != nil && *t.PaymentID == ev.PaymentID {
			return ErrDuplicateConfirmation
		}
		if !t.Transitionable() {
			return ErrNotTransitionable
		}

		switch ev.Status {
		case PaymentApproved:
			paymentID := ev.PaymentID
			t.PaymentID = &paymentID
			if _, err := s.ledger.ApplyDelta(tx, t.UserID, t.Fichas); err != nil {
				return err
			}
			reason := fmt.Sprintf("payment %s approved by gateway", ev.PaymentID)
			return recordTransition(tx, &t, models.TxCompleted, reason, models.ActorSystem, 0)
		case PaymentInProcess:
			if t.Status == models.TxProcessing {
				return nil // no-op, gateway repeated the intermediate status
			}
			reason := fmt.Sprintf("payment %s in process at gateway", ev.PaymentID)
			return recordTransition(tx, &t, models.TxProcessing, reason, models.ActorSystem, 0)
		case PaymentRejected, PaymentCancelled:
			reason := fmt.Sprintf("payment %s %s by gateway", ev.PaymentID, ev.Status)
			return recordTransition(tx, &t, models.TxRejected, reason, models.ActorSystem, 0)
		default:
			return fmt.Errorf("unsupported payment status %q", ev.Status)
		}
	})
	if err != nil {
		return nil, err
	}

	if t.Status == models.TxCompleted {
		metrics.DepositsConfirmed.Inc()
		s.log.Info("deposit confirmed",
			zap.Uint("user_id", t.UserID),
			zap.String("payment_id", ev.PaymentID),
			zap.Int64("fichas", t.Fichas))
	}
	return &t, nil
}

// RequestWithdrawal moves the fichas from the spendable balance into the
// locked reserve and creates the pending transaction; the reserve holds
// them while the operator prepares the real-world transfer.
func (s *Service) RequestWithdrawal(userID uint, fichas int64, method, detail string) (*models.Transaction, error) {
	if fichas <= 0 {
		return nil, ErrInvalidAmount
	}
	t := models.Transaction{
		UserID:    userID,
		Direction: models.TxWithdraw,
		Method:    method,
		Amount:    s.FiatFor(fichas),
		Fichas:    fichas,
		Status:    models.TxPending,
		Reference: uuid.New().String(),
		Detail:    detail,
	}
	err := s.ledger.Exclusive(userID, func(tx *gorm.DB) error {
		if _, err := s.ledger.ApplyReserve(tx, userID, fichas); err != nil {
			return err
		}
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		return tx.Create(&models.TransactionStatusHistory{
			TransactionID: t.ID,
			OldStatus:     "",
			NewStatus:     models.TxPending,
			Reason:        "withdrawal requested, fichas reserved",
			ActorKind:     models.ActorUser,
			ActorID:       userID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("withdrawal requested",
		zap.Uint("user_id", userID),
		zap.String("reference", t.Reference),
		zap.Int64("fichas", fichas))
	return &t, nil
}

// loadWithdrawal fetches a withdrawal by id.
func (s *Service) loadWithdrawal(txID uint) (*models.Transaction, error) {
	var t models.Transaction
	err := s.db.Where("id = ? AND direction = ?", txID, models.TxWithdraw).First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// MarkWithdrawalProcessing moves a pending withdrawal to processing once
// an administrator starts the transfer. No balance effect.
func (s *Service) MarkWithdrawalProcessing(txID uint, cmd AdminCommand) (*models.Transaction, error) {
	t, err := s.loadWithdrawal(txID)
	if err != nil {
		return nil, err
	}
	err = s.ledger.Exclusive(t.UserID, func(tx *gorm.DB) error {
		if err := tx.First(t, t.ID).Error; err != nil {
			return err
		}
		if t.Status != models.TxPending {
			return ErrNotTransitionable
		}
		return recordTransition(tx, t, models.TxProcessing, cmd.Reason, models.ActorAdmin, cmd.AdminID)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CompleteWithdrawal records the administrator's confirmation that the
// transfer occurred and consumes the reserved fichas. The spendable
// balance is untouched; it already shrank at request time.
func (s *Service) CompleteWithdrawal(txID uint, cmd AdminCommand) (*models.Transaction, error) {
	t, err := s.loadWithdrawal(txID)
	if err != nil {
		return nil, err
	}
	err = s.ledger.Exclusive(t.UserID, func(tx *gorm.DB) error {
		if err := tx.First(t, t.ID).Error; err != nil {
			return err
		}
		if !t.Transitionable() {
			return ErrNotTransitionable
		}
		if err := s.ledger.ApplyConsume(tx, t.UserID, t.Fichas); err != nil {
			return err
		}
		return recordTransition(tx, t, models.TxCompleted, cmd.Reason, models.ActorAdmin, cmd.AdminID)
	})
	if err != nil {
		return nil, err
	}
	metrics.WithdrawalsSettled.WithLabelValues(models.TxCompleted).Inc()
	s.log.Info("withdrawal completed",
		zap.Uint("transaction_id", t.ID),
		zap.Uint("admin_id", cmd.AdminID))
	return t, nil
}

// RejectWithdrawal releases the reserved fichas back into the spendable
// balance and marks the transaction rejected, both in one transaction.
func (s *Service) RejectWithdrawal(txID uint, cmd AdminCommand) (*models.Transaction, error) {
	t, err := s.loadWithdrawal(txID)
	if err != nil {
		return nil, err
	}
	err = s.ledger.Exclusive(t.UserID, func(tx *gorm.DB) error {
		if err := tx.First(t, t.ID).Error; err != nil {
			return err
		}
		if !t.Transitionable() {
			return ErrNotTransitionable
		}
		if _, err := s.ledger.ApplyRelease(tx, t.UserID, t.Fichas); err != nil {
			return err
		}
		return recordTransition(tx, t, models.TxRejected, cmd.Reason, models.ActorAdmin, cmd.AdminID)
	})
	if err != nil {
		return nil, err
	}
	metrics.WithdrawalsSettled.WithLabelValues(models.TxRejected).Inc()
	s.log.Info("withdrawal rejected, fichas returned",
		zap.Uint("transaction_id", t.ID),
		zap.Int64("fichas", t.Fichas))
	return t, nil
}

// CancelWithdrawal lets the requesting user cancel their own withdrawal
// while it is still pending; the reserved fichas are released back.
func (s *Service) CancelWithdrawal(txID, userID uint, reason string) (*models.Transaction, error) {
	t, err := s.loadWithdrawal(txID)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrNotOwner
	}
	err = s.ledger.Exclusive(t.UserID, func(tx *gorm.DB) error {
		if err := tx.First(t, t.ID).Error; err != nil {
			return err
		}
		if t.Status != models.TxPending {
			return ErrNotTransitionable
		}
		if _, err := s.ledger.ApplyRelease(tx, t.UserID, t.Fichas); err != nil {
			return err
		}
		return recordTransition(tx, t, models.TxCancelled, reason, models.ActorUser, userID)
	})
	if err != nil {
		return nil, err
	}
	metrics.WithdrawalsSettled.WithLabelValues(models.TxCancelled).Inc()
	return t, nil
}

// ManualAdjust applies an administrator-initiated credit (positive
// delta) or debit (negative delta) outside the game and gateway flows,
// recorded as an already-completed transaction for audit parity.
func (s *Service) ManualAdjust(userID uint, delta int64, cmd AdminCommand) (*models.Transaction, error) {
	if delta == 0 {
		return nil, ErrInvalidAmount
	}
	direction := models.TxDeposit
	fichas := delta
	if delta < 0 {
		direction = models.TxWithdraw
		fichas = -delta
	}
	t := models.Transaction{
		UserID:    userID,
		Direction: direction,
		Method:    models.MethodManual,
		Amount:    s.FiatFor(fichas),
		Fichas:    fichas,
		Status:    models.TxCompleted,
		Reference: uuid.New().String(),
	}
	err := s.ledger.Exclusive(userID, func(tx *gorm.DB) error {
		if _, err := s.ledger.ApplyDelta(tx, userID, delta); err != nil {
			return err
		}
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		return tx.Create(&models.TransactionStatusHistory{
			TransactionID: t.ID,
			OldStatus:     "",
			NewStatus:     models.TxCompleted,
			Reason:        cmd.Reason,
			ActorKind:     models.ActorAdmin,
			ActorID:       cmd.AdminID,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("manual balance adjustment",
		zap.Uint("user_id", userID),
		zap.Int64("delta", delta),
		zap.Uint("admin_id", cmd.AdminID))
	return &t, nil
}
