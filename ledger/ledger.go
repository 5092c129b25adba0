// Package ledger is the balance store: the only writer of the Balance
// table. Every mutation runs under a per-user mutex plus a database
// transaction, so at most one balance mutation per user is in flight at
// any instant and a settlement's debit/credit pair commits atomically
// with its history rows.
package ledger

import (
	"errors"
	"sync"

	"gorm.io/gorm"

	"github.com/DanielXT1021S/Nimetsu-casino-sub000/models"
)

var (
	ErrNoBalance         = errors.New("no balance exists for user")
	ErrBalanceExists     = errors.New("balance already exists for user")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
)

type Service struct {
	db    *gorm.DB
	locks sync.Map // userID -> *sync.Mutex
}

func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) userLock(userID uint) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Exclusive runs fn holding the user's mutex and a database transaction.
// All balance mutations of one settlement belong inside a single
// Exclusive call; fn returning an error rolls everything back.
func (s *Service) Exclusive(userID uint, fn func(tx *gorm.DB) error) error {
	mu := s.userLock(userID)
	mu.Lock()
	defer mu.Unlock()
	return s.db.Transaction(fn)
}

// ApplyDelta mutates the user's balance inside tx. Call only from within
// Exclusive for the same user. Rejects any delta that would leave the
// balance negative and returns the new balance; a zero delta reports the
// current balance.
func (s *Service) ApplyDelta(tx *gorm.DB, userID uint, delta int64) (int64, error) {
	var balance models.Balance
	if err := tx.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoBalance
		}
		return 0, err
	}
	next := balance.Balance + delta
	if next < 0 {
		return 0, ErrInsufficientFunds
	}
	if err := tx.Model(&balance).Update("balance", next).Error; err != nil {
		return 0, err
	}
	return next, nil
}

// ApplyReserve moves amount from the spendable balance into the locked
// reserve inside tx. Call only from within Exclusive for the same user.
// Returns the new spendable balance.
func (s *Service) ApplyReserve(tx *gorm.DB, userID uint, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	var balance models.Balance
	if err := tx.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoBalance
		}
		return 0, err
	}
	if balance.Balance < amount {
		return 0, ErrInsufficientFunds
	}
	next := balance.Balance - amount
	err := tx.Model(&balance).Updates(map[string]interface{}{
		"balance": next,
		"locked":  balance.Locked + amount,
	}).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// ApplyRelease returns a previously reserved amount to the spendable
// balance, for operations that were rejected or cancelled. Returns the
// new spendable balance.
func (s *Service) ApplyRelease(tx *gorm.DB, userID uint, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	var balance models.Balance
	if err := tx.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoBalance
		}
		return 0, err
	}
	if balance.Locked < amount {
		return 0, ErrInsufficientFunds
	}
	next := balance.Balance + amount
	err := tx.Model(&balance).Updates(map[string]interface{}{
		"balance": next,
		"locked":  balance.Locked - amount,
	}).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

// ApplyConsume burns a previously reserved amount once the operation it
// backed has settled; the fichas leave the ledger entirely.
func (s *Service) ApplyConsume(tx *gorm.DB, userID uint, amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	var balance models.Balance
	if err := tx.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoBalance
		}
		return err
	}
	if balance.Locked < amount {
		return ErrInsufficientFunds
	}
	return tx.Model(&balance).Update("locked", balance.Locked-amount).Error
}

// Locked returns the amount currently held in the user's reserve.
func (s *Service) Locked(userID uint) (int64, error) {
	var balance models.Balance
	if err := s.db.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoBalance
		}
		return 0, err
	}
	return balance.Locked, nil
}

// Balance returns the user's current balance, ErrNoBalance when no row
// exists yet.
func (s *Service) Balance(userID uint) (int64, error) {
	var balance models.Balance
	if err := s.db.Where("user_id = ?", userID).First(&balance).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNoBalance
		}
		return 0, err
	}
	return balance.Balance, nil
}

// GetOrCreate returns the existing balance, creating a zero-initialized
// row on first need.
func (s *Service) GetOrCreate(userID uint) (int64, error) {
	var out int64
	err := s.Exclusive(userID, func(tx *gorm.DB) error {
		var balance models.Balance
		err := tx.Where("user_id = ?", userID).First(&balance).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			balance = models.Balance{UserID: userID}
			if err := tx.Create(&balance).Error; err != nil {
				return err
			}
			out = 0
			return nil
		}
		if err != nil {
			return err
		}
		out = balance.Balance
		return nil
	})
	return out, err
}

// Create creates the user's balance with an initial grant. Fails with
// ErrBalanceExists when a row already exists.
func (s *Service) Create(userID uint, initial int64) (int64, error) {
	if initial < 0 {
		return 0, ErrInvalidAmount
	}
	err := s.Exclusive(userID, func(tx *gorm.DB) error {
		var existing models.Balance
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		if err == nil {
			return ErrBalanceExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&models.Balance{UserID: userID, Balance: initial}).Error
	})
	if err != nil {
		return 0, err
	}
	return initial, nil
}

// CanBet reports whether the user's balance covers the amount. False for
// non-positive amounts and for users without a balance row.
func (s *Service) CanBet(userID uint, amount int64) bool {
	if amount <= 0 {
		return false
	}
	balance, err := s.Balance(userID)
	if err != nil {
		return false
	}
	return balance >= amount
}

// Update applies a single delta in its own exclusion window and returns
// the new balance.
func (s *Service) Update(userID uint, delta int64) (int64, error) {
	var out int64
	err := s.Exclusive(userID, func(tx *gorm.DB) error {
		next, err := s.ApplyDelta(tx, userID, delta)
		if err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return 0, err
	}
	return out, nil
}
