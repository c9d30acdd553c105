package booking

import (
	"fmt"

	"hbs/src/events"
	"hbs/src/models"
	"hbs/src/types"
	"hbs/src/wallet"

	"gorm.io/gorm"
)

// Confirm moves a pending booking to confirmed and applies the
// partner-payout and platform-commission wallet legs. Each leg is its
// own transaction row keyed by the booking id so cancellation can
// replay exact inverses. Confirm is idempotent: a booking already paid
// short-circuits without touching any wallet.
func (s *Service) Confirm(bookingID uint, paymentRef *string) error {
	var outcome confirmOutcome
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		outcome, err = s.confirmInTx(tx, bookingID, paymentRef)
		return err
	})
	if err != nil {
		return err
	}
	s.emitConfirmed(bookingID, outcome)
	return nil
}

type confirmOutcome struct {
	already bool
	paid    bool
}

func (s *Service) emitConfirmed(bookingID uint, outcome confirmOutcome) {
	if outcome.already {
		return
	}
	event := events.BookingConfirmed
	if outcome.paid {
		event = events.PaymentConfirmed
	}
	s.Events.Emit(event, types.JSONB{"booking_id": bookingID})
}

func (s *Service) confirmInTx(tx *gorm.DB, bookingID uint, paymentRef *string) (confirmOutcome, error) {
	var out confirmOutcome
	err := func() error {
		b, err := lockBooking(tx, bookingID)
		if err != nil {
			return err
		}
		if b.PaymentStatus == types.PAYMENT_PAID {
			out.already = true
			return nil
		}
		if err := checkTransition(b.Status, types.BOOKING_CONFIRMED); err != nil {
			return err
		}

		ref := fmt.Sprintf("booking:%d", b.ID)
		updates := map[string]any{
			"status": types.BOOKING_CONFIRMED,
		}
		switch b.PaymentMethod {
		case types.PAY_ONLINE:
			// Guest money is with the platform; split it between the
			// partner payout and the platform's commission and tax.
			pw, err := wallet.Find(tx, types.Partner(partnerOf(tx, b)))
			if err != nil {
				return err
			}
			aw, err := wallet.Find(tx, adminActor(tx))
			if err != nil {
				return err
			}
			if b.PartnerPayout > 0 {
				if _, err := wallet.Credit(tx, pw, b.PartnerPayout, types.TXN_BOOKING_PAYMENT,
					fmt.Sprintf("Payout for booking #%d", b.ID), ref); err != nil {
					return err
				}
			}
			if b.Commission > 0 {
				if _, err := wallet.Credit(tx, aw, b.Commission, types.TXN_COMMISSION_DEDUCTION,
					fmt.Sprintf("Commission for booking #%d", b.ID), ref); err != nil {
					return err
				}
			}
			if b.Taxes > 0 {
				if _, err := wallet.Credit(tx, aw, b.Taxes, types.TXN_COMMISSION_TAX,
					fmt.Sprintf("Tax for booking #%d", b.ID), ref); err != nil {
					return err
				}
			}
			updates["payment_status"] = types.PAYMENT_PAID
			if paymentRef != nil {
				updates["payment_ref"] = *paymentRef
			}
			out.paid = true
		case types.PAY_AT_HOTEL:
			// Guest pays on site; the platform pre-deducts its
			// commission and tax from the partner now, reversed on
			// cancellation. Payment stays pending until collection.
			deduction := b.Commission + b.Taxes
			if deduction > 0 {
				pw, err := wallet.Find(tx, types.Partner(partnerOf(tx, b)))
				if err != nil {
					return err
				}
				aw, err := wallet.Find(tx, adminActor(tx))
				if err != nil {
					return err
				}
				if _, err := wallet.Debit(tx, pw, deduction, types.TXN_COMMISSION_DEDUCTION,
					fmt.Sprintf("Commission and tax for booking #%d", b.ID), ref); err != nil {
					return err
				}
				if b.Commission > 0 {
					if _, err := wallet.Credit(tx, aw, b.Commission, types.TXN_COMMISSION_DEDUCTION,
						fmt.Sprintf("Commission for booking #%d", b.ID), ref); err != nil {
						return err
					}
				}
				if b.Taxes > 0 {
					if _, err := wallet.Credit(tx, aw, b.Taxes, types.TXN_COMMISSION_TAX,
						fmt.Sprintf("Tax for booking #%d", b.ID), ref); err != nil {
						return err
					}
				}
			}
		default:
			return fmt.Errorf("unknown payment method %q", b.PaymentMethod)
		}
		return tx.
			Model(&models.Booking{}).
			Where(&models.Booking{ID: b.ID}).
			Updates(updates).
			Error
	}()
	return out, err
}

// partnerOf resolves the partner who owns the booked property. A zero
// return surfaces downstream as a missing-wallet failure.
func partnerOf(tx *gorm.DB, b *models.Booking) uint {
	var property models.Property
	if err := tx.Where(&models.Property{ID: b.PropertyID}).First(&property).Error; err != nil {
		return 0
	}
	return property.PartnerID
}

// adminActor is the platform ledger owner. A single admin wallet holds
// commission and tax.
func adminActor(tx *gorm.DB) types.ActorRef {
	var admin models.User
	if err := tx.Where(&models.User{Role: "admin"}).Order("id").First(&admin).Error; err != nil {
		return types.Admin(0)
	}
	return types.Admin(admin.ID)
}

// creditReferralBonus pays the configured bounty to the guest's
// referrer on the guest's first completed booking.
func (s *Service) creditReferralBonus(tx *gorm.DB, b *models.Booking) error {
	bonus := s.Settings.ReferralBonusAmount()
	if bonus <= 0 {
		return nil
	}
	var user models.User
	if err := tx.Where(&models.User{ID: b.UserID}).First(&user).Error; err != nil {
		return err
	}
	if user.ReferredBy == nil {
		return nil
	}
	var completed int64
	if err := tx.
		Model(&models.Booking{}).
		Where("user_id = ? AND status = ? AND id <> ?", b.UserID, types.BOOKING_COMPLETED, b.ID).
		Count(&completed).
		Error; err != nil {
		return err
	}
	if completed > 0 {
		return nil
	}
	rw, err := wallet.GetOrCreate(tx, types.Guest(*user.ReferredBy))
	if err != nil {
		return err
	}
	_, err = wallet.Credit(tx, rw, bonus, types.TXN_REFERRAL_BONUS,
		fmt.Sprintf("Referral bonus for user #%d's first stay", b.UserID),
		fmt.Sprintf("booking:%d", b.ID))
	return err
}
