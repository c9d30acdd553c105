package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	testOrderID   = "order_7f3d"
	testPaymentID = "pay_001"
	testSecret    = "topsecret"
)

func TestSignature(t *testing.T) {
	sig := Signature(testOrderID, testPaymentID, testSecret)
	assert.Equal(t, "9416cbaf0a78a5dbfac1edc482b225403227161cabbd7c1e6b5ce3a2112e5640", sig)
	assert.Len(t, sig, 64)
}

func TestVerifySignature(t *testing.T) {
	sig := Signature(testOrderID, testPaymentID, testSecret)
	assert.Nil(t, VerifySignature(testOrderID, testPaymentID, sig, testSecret))

	assert.ErrorIs(t,
		VerifySignature(testOrderID, testPaymentID, sig, "wrongsecret"),
		ErrInvalidSignature)
	assert.ErrorIs(t,
		VerifySignature(testOrderID, "pay_002", sig, testSecret),
		ErrInvalidSignature)
	assert.ErrorIs(t,
		VerifySignature("order_other", testPaymentID, sig, testSecret),
		ErrInvalidSignature)
	assert.ErrorIs(t,
		VerifySignature(testOrderID, testPaymentID, "", testSecret),
		ErrInvalidSignature)

	// Swapping the ids must not verify: the separator pins the field order
	swapped := Signature(testPaymentID, testOrderID, testSecret)
	assert.ErrorIs(t,
		VerifySignature(testOrderID, testPaymentID, swapped, testSecret),
		ErrInvalidSignature)
}
