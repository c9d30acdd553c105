package booking

import (
	"fmt"
	"log"
	"math"
	"time"

	"hbs/src/config"
	"hbs/src/events"
	"hbs/src/ledger"
	"hbs/src/models"
	"hbs/src/platform"
	"hbs/src/pricing"
	"hbs/src/types"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service orchestrates booking status transitions, coordinating the
// pricing engine, the inventory ledger and the wallet ledger. All
// financial legs of one transition run in a single database
// transaction; domain events are emitted only after commit.
type Service struct {
	DB       *gorm.DB
	Settings *platform.Settings
	Events   events.Emitter
}

func NewService(db *gorm.DB, settings *platform.Settings, emitter events.Emitter) *Service {
	return &Service{DB: db, Settings: settings, Events: emitter}
}

// Create validates the request, prices the stay and persists the
// booking together with its inventory hold and offer redemption. A
// booking never exists durably without a hold: both are written in one
// transaction.
func (s *Service) Create(userID uint, params *types.CreateBookingRequestBody) (*models.Booking, error) {
	if !s.Settings.IsOpen() {
		return nil, ErrPlatformClosed
	}
	checkIn, err := time.Parse(config.DATE_PARSE_FORMAT, params.CheckIn)
	if err != nil {
		return nil, fmt.Errorf("invalid check_in date: %w", err)
	}
	checkOut, err := time.Parse(config.DATE_PARSE_FORMAT, params.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("invalid check_out date: %w", err)
	}

	var booking models.Booking
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var property models.Property
		if err := tx.Where(&models.Property{ID: params.PropertyID}).First(&property).Error; err != nil {
			return err
		}
		var rt models.RoomType
		if err := tx.Where(&models.RoomType{ID: params.RoomTypeID}).First(&rt).Error; err != nil {
			return err
		}
		if rt.PropertyID != property.ID {
			return pricing.ErrRoomTypeMismatch
		}
		if err := pricing.ValidateOccupancy(property.Type, &rt, params.Adults, params.Children); err != nil {
			return err
		}

		nights := pricing.Nights(checkIn, checkOut)
		base := pricing.ComputeQuote(&rt, nights, params.Adults, params.Children, 0, nil)
		taxes := pricing.TaxOn(base.BaseAmount+base.ExtraCharges, s.Settings.TaxPercent())

		var offer *models.Offer
		if params.OfferCode != "" {
			preDiscount := base.BaseAmount + base.ExtraCharges + taxes
			offer, err = pricing.ResolveOffer(tx, params.OfferCode, userID, preDiscount, time.Now())
			if err != nil {
				return err
			}
		}
		quote := pricing.ComputeQuote(&rt, nights, params.Adults, params.Children, taxes, offer)

		commission := math.Floor((quote.TotalAmount - quote.Taxes) * s.Settings.CommissionPercent() / 100)
		payout := quote.TotalAmount - commission - quote.Taxes
		if payout < 0 {
			payout = 0
		}

		booking = models.Booking{
			UserID:        userID,
			PropertyID:    property.ID,
			RoomTypeID:    rt.ID,
			CheckIn:       checkIn,
			CheckOut:      checkOut,
			Nights:        quote.Nights,
			Adults:        params.Adults,
			Children:      params.Children,
			PricePerNight: rt.PricePerNight,
			BaseAmount:    quote.BaseAmount,
			ExtraCharges:  quote.ExtraCharges,
			Taxes:         quote.Taxes,
			Discount:      quote.Discount,
			TotalAmount:   quote.TotalAmount,
			Commission:    commission,
			PartnerPayout: payout,
			PaymentMethod: types.PaymentMethod(params.PaymentMethod),
			PaymentStatus: types.PAYMENT_PENDING,
			Status:        types.BOOKING_PENDING,
			OrderID:       fmt.Sprintf("order_%s", uuid.NewString()),
			NotifyFlags:   types.JSONB{},
		}
		if offer != nil {
			booking.OfferCode = &offer.Code
		}
		if err := tx.Create(&booking).Error; err != nil {
			return err
		}
		if err := ledger.Acquire(tx, rt.ID, checkIn, checkOut, booking.ID, types.HOLD_PLATFORM); err != nil {
			return err
		}
		// Usage is consumed only once the booking row exists; a failed
		// request never burns offer usage.
		if offer != nil {
			if err := pricing.RecordRedemption(tx, offer, userID, booking.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Events.Emit(events.BookingCreated, types.JSONB{
		"booking_id": booking.ID,
		"user_id":    booking.UserID,
		"property":   booking.PropertyID,
		"total":      booking.TotalAmount,
	})
	return &booking, nil
}

// lockBooking loads a booking with a row lock inside tx.
func lockBooking(tx *gorm.DB, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(&models.Booking{ID: id}).
		First(&b).
		Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// Reject moves a pending booking to rejected, releasing its hold. No
// money has moved yet on a pending booking.
func (s *Service) Reject(bookingID uint, reason string) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.rejectInTx(tx, bookingID, reason)
	})
	if err != nil {
		return err
	}
	s.Events.Emit(events.BookingCancelled, types.JSONB{"booking_id": bookingID, "rejected": true})
	return nil
}

func (s *Service) rejectInTx(tx *gorm.DB, bookingID uint, reason string) error {
	b, err := lockBooking(tx, bookingID)
	if err != nil {
		return err
	}
	if err := checkTransition(b.Status, types.BOOKING_REJECTED); err != nil {
		return err
	}
	if b.MoneyMoved() {
		return fmt.Errorf("%w: paid booking must be cancelled, not rejected", ErrIllegalTransition)
	}
	if err := ledger.Release(tx, b.ID); err != nil {
		return err
	}
	return tx.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: b.ID}).
		Updates(map[string]any{
			"status":        types.BOOKING_REJECTED,
			"cancel_reason": reason,
		}).
		Error
}

// Transition advances a booking one step along the lifecycle
// (checked_in, checked_out, completed). Completion triggers the
// one-time referral bonus for the guest's referrer.
func (s *Service) Transition(bookingID uint, to types.BookingStatus) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		b, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if err := checkTransition(b.Status, to); err != nil {
			return err
		}
		if err := tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: b.ID}).
			Update("status", to).
			Error; err != nil {
			return err
		}
		if to == types.BOOKING_COMPLETED {
			if err := s.creditReferralBonus(tx, b); err != nil {
				// Bonus is a bounty, not a ledger obligation tied to
				// the stay itself.
				log.Printf("Referral bonus for booking %d not applied: %s\n", b.ID, err.Error())
			}
		}
		return nil
	})
	return err
}
