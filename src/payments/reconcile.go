package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"hbs/src/booking"
	"hbs/src/models"
	"hbs/src/types"

	"gorm.io/gorm"
)

var ErrInvalidSignature = errors.New("payment signature verification failed")

// Signature computes the gateway's HMAC-SHA256 signature over
// orderId|paymentId, hex encoded.
func Signature(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a supplied signature in constant time.
func VerifySignature(orderID, paymentID, signature, secret string) error {
	expected := Signature(orderID, paymentID, secret)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// Reconcile verifies a payment confirmation and applies it to the
// booking through the state machine's confirm transition. Nothing is
// mutated on a signature mismatch, and replaying a verified
// confirmation against an already-paid booking is a no-op.
func Reconcile(db *gorm.DB, svc *booking.Service, body *types.PaymentCallbackRequestBody, secret string) (*models.Booking, error) {
	if err := VerifySignature(body.OrderID, body.PaymentID, body.Signature, secret); err != nil {
		return nil, err
	}
	var b models.Booking
	if err := db.Where(&models.Booking{OrderID: body.OrderID}).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("no booking for order %s: %w", body.OrderID, err)
		}
		return nil, err
	}
	if err := svc.Confirm(b.ID, &body.PaymentID); err != nil {
		return nil, err
	}
	if err := db.Where(&models.Booking{ID: b.ID}).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}
