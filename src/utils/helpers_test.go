package utils

import (
	"fmt"
	"net/http"
	"testing"

	"hbs/src/booking"
	"hbs/src/payments"
	"hbs/src/pricing"
	"hbs/src/wallet"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestStatusForError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusForError(gorm.ErrRecordNotFound))
	assert.Equal(t, http.StatusConflict, StatusForError(wallet.ErrWalletMissing))
	assert.Equal(t, http.StatusBadRequest, StatusForError(payments.ErrInvalidSignature))

	// Business rule violations map to 422
	assert.Equal(t, http.StatusUnprocessableEntity, StatusForError(wallet.ErrInsufficientFunds))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusForError(booking.ErrIllegalTransition))
	assert.Equal(t, http.StatusUnprocessableEntity, StatusForError(pricing.ErrOfferExhausted))

	// Wrapped sentinels still resolve
	wrapped := fmt.Errorf("context: %w", wallet.ErrInsufficientFunds)
	assert.Equal(t, http.StatusUnprocessableEntity, StatusForError(wrapped))

	assert.Equal(t, http.StatusInternalServerError, StatusForError(fmt.Errorf("boom")))
}

func TestGenerateJWT(t *testing.T) {
	token, err := GenerateJWT("someone@example.com", 1, "user")
	assert.Nil(t, err)
	assert.NotEmpty(t, token)
}
