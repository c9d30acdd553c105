package pricing

import (
	"testing"
	"time"

	"hbs/src/models"
	"hbs/src/types"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestNights(t *testing.T) {
	assert.Equal(t, uint(3), Nights(date("2026-10-01"), date("2026-10-04")))
	assert.Equal(t, uint(1), Nights(date("2026-10-01"), date("2026-10-02")))
	// Same-day stays still bill one night
	assert.Equal(t, uint(1), Nights(date("2026-10-01"), date("2026-10-01")))
	// Partial days round up
	in, _ := time.Parse(time.RFC3339, "2026-10-01T14:00:00Z")
	out, _ := time.Parse(time.RFC3339, "2026-10-04T11:00:00Z")
	assert.Equal(t, uint(3), Nights(in, out))
}

func TestExtraGuests(t *testing.T) {
	rt := &models.RoomType{MaxAdults: 2, MaxChildren: 1}

	adults, children := ExtraGuests(rt, 3, 1)
	assert.Equal(t, uint(1), adults)
	assert.Equal(t, uint(0), children)

	adults, children = ExtraGuests(rt, 2, 3)
	assert.Equal(t, uint(0), adults)
	assert.Equal(t, uint(2), children)
}

func TestValidateOccupancy(t *testing.T) {
	rt := &models.RoomType{MaxAdults: 2, MaxChildren: 1}

	err := ValidateOccupancy(types.PROPERTY_RESORT, rt, 3, 0)
	assert.ErrorIs(t, err, ErrOccupancy)

	assert.Nil(t, ValidateOccupancy(types.PROPERTY_RESORT, rt, 2, 1))
	// Only resorts enforce the hard cap
	assert.Nil(t, ValidateOccupancy(types.PROPERTY_HOTEL, rt, 4, 2))
}

func TestDiscount(t *testing.T) {
	percentage := &models.Offer{Kind: types.OFFER_PERCENTAGE, Value: 10, MaxDiscount: 300}
	assert.Equal(t, float64(200), Discount(percentage, 2000))
	assert.Equal(t, float64(300), Discount(percentage, 7600))

	// Fractional discounts floor to a whole unit
	uncapped := &models.Offer{Kind: types.OFFER_PERCENTAGE, Value: 15}
	assert.Equal(t, float64(150), Discount(uncapped, 1005))

	flat := &models.Offer{Kind: types.OFFER_FLAT, Value: 500}
	assert.Equal(t, float64(500), Discount(flat, 2000))
	// A flat discount never exceeds the amount itself
	assert.Equal(t, float64(400), Discount(flat, 400))
}

func TestCheckOffer(t *testing.T) {
	now := date("2026-10-02")
	offer := &models.Offer{
		Kind:             types.OFFER_PERCENTAGE,
		Value:            10,
		MinBookingAmount: 1000,
		UsageLimit:       5,
		PerUserLimit:     1,
		StartsAt:         date("2026-10-01"),
		EndsAt:           date("2026-10-31"),
		Active:           true,
	}

	assert.Nil(t, CheckOffer(offer, now, 2000, 0))

	inactive := *offer
	inactive.Active = false
	assert.ErrorIs(t, CheckOffer(&inactive, now, 2000, 0), ErrOfferInactive)

	assert.ErrorIs(t, CheckOffer(offer, date("2026-11-01"), 2000, 0), ErrOfferWindow)
	assert.ErrorIs(t, CheckOffer(offer, date("2026-09-30"), 2000, 0), ErrOfferWindow)
	assert.ErrorIs(t, CheckOffer(offer, now, 999, 0), ErrOfferMinAmount)

	exhausted := *offer
	exhausted.UsageCount = 5
	assert.ErrorIs(t, CheckOffer(&exhausted, now, 2000, 0), ErrOfferExhausted)

	assert.ErrorIs(t, CheckOffer(offer, now, 2000, 1), ErrOfferUserLimit)

	// Window check outranks the amount check
	assert.ErrorIs(t, CheckOffer(offer, date("2026-11-01"), 500, 0), ErrOfferWindow)
}

func TestTaxOn(t *testing.T) {
	assert.Equal(t, float64(100), TaxOn(2000, 5))
	assert.Equal(t, float64(0), TaxOn(2000, 0))
	assert.Equal(t, float64(37), TaxOn(755, 5))
}

func TestComputeQuote(t *testing.T) {
	rt := &models.RoomType{
		PricePerNight:   2000,
		ExtraAdultPrice: 500,
		ExtraChildPrice: 250,
		MaxAdults:       2,
		MaxChildren:     1,
	}

	t.Run("three nights with one extra adult and a capped offer", func(t *testing.T) {
		offer := &models.Offer{Kind: types.OFFER_PERCENTAGE, Value: 10, MaxDiscount: 300}
		q := ComputeQuote(rt, 3, 3, 0, 100, offer)

		assert.Equal(t, float64(6000), q.BaseAmount)
		assert.Equal(t, float64(1500), q.ExtraCharges)
		assert.Equal(t, float64(100), q.Taxes)
		assert.Equal(t, float64(300), q.Discount)
		assert.Equal(t, float64(7300), q.TotalAmount)
	})

	t.Run("no extras and no offer", func(t *testing.T) {
		q := ComputeQuote(rt, 2, 2, 1, 0, nil)

		assert.Equal(t, float64(4000), q.BaseAmount)
		assert.Equal(t, float64(0), q.ExtraCharges)
		assert.Equal(t, float64(0), q.Discount)
		assert.Equal(t, float64(4000), q.TotalAmount)
	})

	t.Run("oversized flat discount clamps the total at zero", func(t *testing.T) {
		offer := &models.Offer{Kind: types.OFFER_FLAT, Value: 100000}
		q := ComputeQuote(rt, 1, 1, 0, 0, offer)

		assert.Equal(t, float64(0), q.TotalAmount)
	})
}
