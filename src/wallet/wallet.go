package wallet

import (
	"errors"
	"fmt"

	"hbs/src/models"
	"hbs/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInsufficientFunds = errors.New("insufficient balance")
	// ErrWalletMissing means a financial transition cannot proceed
	// because a required ledger does not exist. Callers must abort the
	// whole transition, never skip the leg.
	ErrWalletMissing = errors.New("wallet not found for actor")
)

// Find loads an actor's wallet with a row lock, failing with
// ErrWalletMissing when it does not exist.
func Find(tx *gorm.DB, actor types.ActorRef) (*models.Wallet, error) {
	var w models.Wallet
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(&models.Wallet{ActorKind: actor.Kind, ActorID: actor.ID}).
		First(&w).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrWalletMissing, actor)
		}
		return nil, err
	}
	return &w, nil
}

// GetOrCreate returns the actor's wallet, creating an empty one when
// absent. Used on enrollment paths only; financial reversals go through
// Find so a missing wallet aborts loudly.
func GetOrCreate(tx *gorm.DB, actor types.ActorRef) (*models.Wallet, error) {
	w, err := Find(tx, actor)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, ErrWalletMissing) {
		return nil, err
	}
	nw := models.Wallet{ActorKind: actor.Kind, ActorID: actor.ID}
	if err := tx.Create(&nw).Error; err != nil {
		return nil, err
	}
	return &nw, nil
}

// Credit increases the wallet balance and appends one completed
// transaction. Pure top-ups do not count as earnings.
func Credit(tx *gorm.DB, w *models.Wallet, amount float64, category types.TransactionCategory, description, referenceID string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("invalid credit amount %.2f", amount)
	}
	w.Balance += amount
	if category != types.TXN_TOPUP {
		w.TotalEarnings += amount
	}
	if err := tx.
		Model(&models.Wallet{}).
		Where(&models.Wallet{ID: w.ID}).
		Updates(map[string]any{
			"balance":        w.Balance,
			"total_earnings": w.TotalEarnings,
		}).
		Error; err != nil {
		return nil, err
	}
	txn := models.Transaction{
		WalletID:    w.ID,
		Amount:      amount,
		Direction:   models.TXN_CREDIT,
		Category:    category,
		Description: description,
		ReferenceID: referenceID,
		Status:      types.TRANSACTION_COMPLETED,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

// Debit decreases the wallet balance and appends one completed
// transaction. It fails closed: when amount exceeds the balance no row
// is touched.
func Debit(tx *gorm.DB, w *models.Wallet, amount float64, category types.TransactionCategory, description, referenceID string) (*models.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("invalid debit amount %.2f", amount)
	}
	if amount > w.Balance {
		return nil, fmt.Errorf("%w: have %.2f, need %.2f", ErrInsufficientFunds, w.Balance, amount)
	}
	w.Balance -= amount
	w.TotalWithdrawals += amount
	if err := tx.
		Model(&models.Wallet{}).
		Where(&models.Wallet{ID: w.ID}).
		Updates(map[string]any{
			"balance":           w.Balance,
			"total_withdrawals": w.TotalWithdrawals,
		}).
		Error; err != nil {
		return nil, err
	}
	txn := models.Transaction{
		WalletID:    w.ID,
		Amount:      amount,
		Direction:   models.TXN_DEBIT,
		Category:    category,
		Description: description,
		ReferenceID: referenceID,
		Status:      types.TRANSACTION_COMPLETED,
	}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}
