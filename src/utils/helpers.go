package utils

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"hbs/src/booking"
	"hbs/src/ledger"
	"hbs/src/models"
	"hbs/src/payments"
	"hbs/src/pricing"
	"hbs/src/types"
	"hbs/src/wallet"

	"github.com/golang-jwt/jwt/v4"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var jwtKey = []byte(os.Getenv("JWT_SECRET"))

func GenerateJWT(email string, userID uint, role string) (string, error) {
	claims := types.Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// PropertySlug builds a unique slug from the property name.
func PropertySlug(tx *gorm.DB, name string) (string, error) {
	base := slug.Make(name)
	candidate := base
	for i := 2; ; i++ {
		var count int64
		if err := tx.
			Model(&models.Property{}).
			Where(&models.Property{Slug: candidate}).
			Count(&count).
			Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}

// StatusForError maps the domain error taxonomy onto HTTP statuses.
// Consistency hazards get their own status so callers can tell a
// missing precondition from a business rejection.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound
	case errors.Is(err, wallet.ErrWalletMissing):
		return http.StatusConflict
	case errors.Is(err, payments.ErrInvalidSignature):
		return http.StatusBadRequest
	case errors.Is(err, booking.ErrPlatformClosed),
		errors.Is(err, booking.ErrIllegalTransition),
		errors.Is(err, ledger.ErrNoInventory),
		errors.Is(err, wallet.ErrInsufficientFunds),
		errors.Is(err, wallet.ErrBelowMinimum),
		errors.Is(err, wallet.ErrWithdrawalActioned),
		errors.Is(err, wallet.ErrNoBankDetails),
		errors.Is(err, pricing.ErrOfferInactive),
		errors.Is(err, pricing.ErrOfferWindow),
		errors.Is(err, pricing.ErrOfferMinAmount),
		errors.Is(err, pricing.ErrOfferExhausted),
		errors.Is(err, pricing.ErrOfferUserLimit),
		errors.Is(err, pricing.ErrOccupancy),
		errors.Is(err, pricing.ErrRoomTypeMismatch):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
