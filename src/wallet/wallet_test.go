package wallet

import (
	"testing"

	"hbs/src/models"
	"hbs/src/types"

	"github.com/stretchr/testify/assert"
)

// Debit must fail closed: an insufficient balance is rejected before
// any row is touched, so a nil handle never gets used.
func TestDebitInsufficientFunds(t *testing.T) {
	w := &models.Wallet{ID: 1, Balance: 100}

	txn, err := Debit(nil, w, 250, types.TXN_REFUND_DEDUCTION, "refund reversal", "booking:1")

	assert.Nil(t, txn)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, float64(100), w.Balance)
	assert.Equal(t, float64(0), w.TotalWithdrawals)
}

func TestDebitInvalidAmount(t *testing.T) {
	w := &models.Wallet{ID: 1, Balance: 100}

	_, err := Debit(nil, w, 0, types.TXN_COMMISSION_DEDUCTION, "", "")
	assert.NotNil(t, err)

	_, err = Debit(nil, w, -50, types.TXN_COMMISSION_DEDUCTION, "", "")
	assert.NotNil(t, err)
	assert.Equal(t, float64(100), w.Balance)
}

func TestCreditInvalidAmount(t *testing.T) {
	w := &models.Wallet{ID: 1, Balance: 100}

	_, err := Credit(nil, w, 0, types.TXN_BOOKING_PAYMENT, "", "")
	assert.NotNil(t, err)

	_, err = Credit(nil, w, -10, types.TXN_BOOKING_PAYMENT, "", "")
	assert.NotNil(t, err)
	assert.Equal(t, float64(100), w.Balance)
}
