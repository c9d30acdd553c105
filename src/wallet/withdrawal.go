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
	ErrBelowMinimum       = errors.New("amount is below the minimum withdrawal")
	ErrWithdrawalActioned = errors.New("withdrawal is not pending")
	ErrNoBankDetails      = errors.New("wallet has no bank details on file")
)

// RequestWithdrawal deducts the amount from the wallet immediately and
// records the withdrawal as pending with its withdrawal-category
// transaction. The transaction stays pending until the request is
// actioned.
func RequestWithdrawal(db *gorm.DB, actor types.ActorRef, amount, minAmount float64) (*models.Withdrawal, error) {
	var wd models.Withdrawal
	err := db.Transaction(func(tx *gorm.DB) error {
		w, err := Find(tx, actor)
		if err != nil {
			return err
		}
		if minAmount > 0 && amount < minAmount {
			return fmt.Errorf("%w: minimum %.0f", ErrBelowMinimum, minAmount)
		}
		if amount > w.Balance {
			return fmt.Errorf("%w: have %.2f, need %.2f", ErrInsufficientFunds, w.Balance, amount)
		}
		if actor.Kind == types.ACTOR_PARTNER && w.BankDetails == nil {
			return ErrNoBankDetails
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
			return err
		}
		txn := models.Transaction{
			WalletID:    w.ID,
			Amount:      amount,
			Direction:   models.TXN_DEBIT,
			Category:    types.TXN_WITHDRAWAL,
			Description: fmt.Sprintf("Withdrawal request by %s", actor),
			Status:      types.TRANSACTION_PENDING,
		}
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		wd = models.Withdrawal{
			WalletID:      w.ID,
			Amount:        amount,
			Status:        types.WITHDRAWAL_PENDING,
			TransactionID: &txn.ID,
		}
		return tx.Create(&wd).Error
	})
	if err != nil {
		return nil, err
	}
	return &wd, nil
}

// ActionWithdrawal moves a pending withdrawal to completed or rejected.
// Approval completes the already-deducted transaction; rejection marks
// it failed, credits the amount back with a refund transaction and
// rolls the withdrawals counter back. Re-actioning a non-pending
// withdrawal is rejected.
func ActionWithdrawal(db *gorm.DB, id uint, approve bool, adminID uint, remark string) (*models.Withdrawal, error) {
	var wd models.Withdrawal
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(&models.Withdrawal{ID: id}).
			First(&wd).
			Error; err != nil {
			return err
		}
		if wd.Status != types.WITHDRAWAL_PENDING {
			return fmt.Errorf("%w: status is %s", ErrWithdrawalActioned, wd.Status)
		}
		if approve {
			if wd.TransactionID != nil {
				if err := tx.
					Model(&models.Transaction{}).
					Where("id = ?", *wd.TransactionID).
					Update("status", types.TRANSACTION_COMPLETED).
					Error; err != nil {
					return err
				}
			}
			wd.Status = types.WITHDRAWAL_COMPLETED
		} else {
			if wd.TransactionID != nil {
				if err := tx.
					Model(&models.Transaction{}).
					Where("id = ?", *wd.TransactionID).
					Update("status", types.TRANSACTION_FAILED).
					Error; err != nil {
					return err
				}
			}
			var w models.Wallet
			if err := tx.
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Where(&models.Wallet{ID: wd.WalletID}).
				First(&w).
				Error; err != nil {
				return err
			}
			w.Balance += wd.Amount
			w.TotalWithdrawals -= wd.Amount
			if err := tx.
				Model(&models.Wallet{}).
				Where(&models.Wallet{ID: w.ID}).
				Updates(map[string]any{
					"balance":           w.Balance,
					"total_withdrawals": w.TotalWithdrawals,
				}).
				Error; err != nil {
				return err
			}
			txn := models.Transaction{
				WalletID:    w.ID,
				Amount:      wd.Amount,
				Direction:   models.TXN_CREDIT,
				Category:    types.TXN_REFUND,
				Description: fmt.Sprintf("Withdrawal #%d rejected", wd.ID),
				Status:      types.TRANSACTION_COMPLETED,
			}
			if err := tx.Create(&txn).Error; err != nil {
				return err
			}
			wd.Status = types.WITHDRAWAL_REJECTED
		}
		wd.ActionedBy = &adminID
		if remark != "" {
			wd.Remark = &remark
		}
		return tx.
			Model(&models.Withdrawal{}).
			Where(&models.Withdrawal{ID: wd.ID}).
			Updates(map[string]any{
				"status":      wd.Status,
				"actioned_by": adminID,
				"remark":      wd.Remark,
			}).
			Error
	})
	if err != nil {
		return nil, err
	}
	return &wd, nil
}
