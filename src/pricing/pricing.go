package pricing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"hbs/src/models"
	"hbs/src/types"

	"gorm.io/gorm"
)

var (
	ErrOfferInactive    = errors.New("offer is not active")
	ErrOfferWindow      = errors.New("offer is not valid for this date")
	ErrOfferMinAmount   = errors.New("booking amount is below the offer minimum")
	ErrOfferExhausted   = errors.New("offer usage limit reached")
	ErrOfferUserLimit   = errors.New("offer usage limit reached for this user")
	ErrOccupancy        = errors.New("guest count exceeds room capacity")
	ErrRoomTypeMismatch = errors.New("room type does not belong to this property")
)

// Quote is the full charge breakdown for one booking, computed once at
// creation time and copied onto the booking row.
type Quote struct {
	Nights       uint
	BaseAmount   float64
	ExtraCharges float64
	Taxes        float64
	Discount     float64
	TotalAmount  float64
}

// Nights counts whole days between check-in and check-out, rounding up
// and never returning less than one night.
func Nights(checkIn, checkOut time.Time) uint {
	n := math.Ceil(checkOut.Sub(checkIn).Hours() / 24)
	if n < 1 {
		return 1
	}
	return uint(n)
}

// ExtraGuests returns how many adults and children exceed the room
// type's included occupancy.
func ExtraGuests(rt *models.RoomType, adults, children uint) (extraAdults, extraChildren uint) {
	if adults > rt.MaxAdults {
		extraAdults = adults - rt.MaxAdults
	}
	if children > rt.MaxChildren {
		extraChildren = children - rt.MaxChildren
	}
	return
}

// ValidateOccupancy enforces hard occupancy caps for property types
// that do not admit extra guests.
func ValidateOccupancy(propertyType types.PropertyType, rt *models.RoomType, adults, children uint) error {
	if propertyType != types.PROPERTY_RESORT {
		return nil
	}
	if adults > rt.MaxAdults || children > rt.MaxChildren {
		return fmt.Errorf("%w: max %d adults and %d children", ErrOccupancy, rt.MaxAdults, rt.MaxChildren)
	}
	return nil
}

// Discount computes the discount an offer yields on amount. Percentage
// discounts are floored and capped at MaxDiscount when set; flat
// discounts are floored and never exceed the amount itself.
func Discount(offer *models.Offer, amount float64) float64 {
	var d float64
	switch offer.Kind {
	case types.OFFER_PERCENTAGE:
		d = math.Floor(amount * offer.Value / 100)
		if offer.MaxDiscount > 0 && d > offer.MaxDiscount {
			d = offer.MaxDiscount
		}
	case types.OFFER_FLAT:
		d = math.Floor(offer.Value)
	}
	if d > amount {
		d = amount
	}
	return d
}

// CheckOffer validates an offer against the usage counts supplied by
// the caller, in the mandated order: window, minimum amount, global
// limit, per-user limit.
func CheckOffer(offer *models.Offer, now time.Time, amount float64, userRedemptions int64) error {
	if !offer.Active {
		return ErrOfferInactive
	}
	if now.Before(offer.StartsAt) || now.After(offer.EndsAt) {
		return ErrOfferWindow
	}
	if offer.MinBookingAmount > 0 && amount < offer.MinBookingAmount {
		return fmt.Errorf("%w: minimum %.0f", ErrOfferMinAmount, offer.MinBookingAmount)
	}
	if offer.UsageLimit > 0 && offer.UsageCount >= offer.UsageLimit {
		return ErrOfferExhausted
	}
	if offer.PerUserLimit > 0 && userRedemptions >= int64(offer.PerUserLimit) {
		return ErrOfferUserLimit
	}
	return nil
}

// TaxOn computes the tax due on a pre-tax amount at the platform's
// configured percentage, floored to a whole unit.
func TaxOn(amount, taxPercent float64) float64 {
	return math.Floor(amount * taxPercent / 100)
}

// ComputeQuote prices a stay from the room type's rate snapshot. Taxes
// come in as an absolute amount; the offer, when present, must already
// have passed CheckOffer.
func ComputeQuote(rt *models.RoomType, nights, adults, children uint, taxes float64, offer *models.Offer) Quote {
	extraAdults, extraChildren := ExtraGuests(rt, adults, children)
	base := rt.PricePerNight * float64(nights)
	extra := (float64(extraAdults)*rt.ExtraAdultPrice + float64(extraChildren)*rt.ExtraChildPrice) * float64(nights)
	pre := base + extra + taxes
	var discount float64
	if offer != nil {
		discount = Discount(offer, pre)
	}
	total := pre - discount
	if total < 0 {
		total = 0
	}
	return Quote{
		Nights:       nights,
		BaseAmount:   base,
		ExtraCharges: extra,
		Taxes:        taxes,
		Discount:     discount,
		TotalAmount:  total,
	}
}

// ResolveOffer loads an offer by code and validates it for the given
// user and pre-discount amount. A zero userID skips the per-user check.
func ResolveOffer(tx *gorm.DB, code string, userID uint, amount float64, now time.Time) (*models.Offer, error) {
	var offer models.Offer
	if err := tx.Where(&models.Offer{Code: code}).First(&offer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown code %q", ErrOfferInactive, code)
		}
		return nil, err
	}
	var userRedemptions int64
	if userID != 0 {
		if err := tx.
			Model(&models.OfferRedemption{}).
			Where(&models.OfferRedemption{OfferID: offer.ID, UserID: userID}).
			Count(&userRedemptions).
			Error; err != nil {
			return nil, err
		}
	}
	if err := CheckOffer(&offer, now, amount, userRedemptions); err != nil {
		return nil, err
	}
	return &offer, nil
}

// RecordRedemption bumps the offer's global usage counter and appends
// the redemption row. Called only after the booking row is persisted,
// inside the same transaction, so a failed request never consumes
// usage.
func RecordRedemption(tx *gorm.DB, offer *models.Offer, userID, bookingID uint) error {
	if err := tx.
		Model(&models.Offer{}).
		Where(&models.Offer{ID: offer.ID}).
		Update("usage_count", gorm.Expr("usage_count + 1")).
		Error; err != nil {
		return err
	}
	return tx.Create(&models.OfferRedemption{
		OfferID:   offer.ID,
		UserID:    userID,
		BookingID: bookingID,
	}).Error
}
