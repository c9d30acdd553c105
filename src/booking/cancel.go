package booking

import (
	"fmt"
	"time"

	"hbs/src/events"
	"hbs/src/ledger"
	"hbs/src/models"
	"hbs/src/types"
	"hbs/src/wallet"

	"gorm.io/gorm"
)

// Cancel reverses a booking. Ordering is the safety-critical rule of
// this system: wallet reversal legs run first, and any failure
// (including a missing partner or admin wallet) aborts the whole
// transition with the booking unchanged. The inventory hold is released
// only after every leg succeeds, and the status flips last. Partial
// financial application is worse than rejecting the request.
func (s *Service) Cancel(bookingID uint, reason string) error {
	var moneyMoved bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		moneyMoved, err = s.cancelInTx(tx, bookingID, reason)
		return err
	})
	if err != nil {
		return err
	}
	s.Events.Emit(events.BookingCancelled, types.JSONB{
		"booking_id": bookingID,
		"refunded":   moneyMoved,
		"reason":     reason,
	})
	return nil
}

func (s *Service) cancelInTx(tx *gorm.DB, bookingID uint, reason string) (bool, error) {
	b, err := lockBooking(tx, bookingID)
	if err != nil {
		return false, err
	}
	if err := checkTransition(b.Status, types.BOOKING_CANCELLED); err != nil {
		return false, err
	}

	moneyMoved, err := s.reverseFinancials(tx, b)
	if err != nil {
		return false, err
	}
	if err := ledger.Release(tx, b.ID); err != nil {
		return false, err
	}
	now := time.Now()
	updates := map[string]any{
		"status":        types.BOOKING_CANCELLED,
		"cancel_reason": reason,
		"cancelled_at":  now,
	}
	if moneyMoved {
		updates["payment_status"] = types.PAYMENT_REFUNDED
	}
	err = tx.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: b.ID}).
		Updates(updates).
		Error
	return moneyMoved, err
}

// reverseFinancials replays the exact inverse of the transactions the
// confirmation applied, from the snapshots on the booking row. Returns
// whether guest money was returned.
func (s *Service) reverseFinancials(tx *gorm.DB, b *models.Booking) (bool, error) {
	ref := fmt.Sprintf("booking:%d", b.ID)
	confirmed := b.Status == types.BOOKING_CONFIRMED ||
		b.Status == types.BOOKING_CHECKED_IN ||
		b.Status == types.BOOKING_CHECKED_OUT

	switch {
	case b.MoneyMoved():
		// Paid or partially paid online: full refund to the guest,
		// payout clawed back from the partner, commission and tax
		// clawed back from the platform.
		gw, err := wallet.GetOrCreate(tx, types.Guest(b.UserID))
		if err != nil {
			return false, err
		}
		pw, err := wallet.Find(tx, types.Partner(partnerOf(tx, b)))
		if err != nil {
			return false, err
		}
		aw, err := wallet.Find(tx, adminActor(tx))
		if err != nil {
			return false, err
		}
		if b.TotalAmount > 0 {
			if _, err := wallet.Credit(tx, gw, b.TotalAmount, types.TXN_REFUND,
				fmt.Sprintf("Refund for booking #%d", b.ID), ref); err != nil {
				return false, err
			}
		}
		if b.PartnerPayout > 0 {
			if _, err := wallet.Debit(tx, pw, b.PartnerPayout, types.TXN_REFUND_DEDUCTION,
				fmt.Sprintf("Payout reversal for booking #%d", b.ID), ref); err != nil {
				return false, err
			}
		}
		if b.Commission+b.Taxes > 0 {
			if _, err := wallet.Debit(tx, aw, b.Commission+b.Taxes, types.TXN_REFUND_DEDUCTION,
				fmt.Sprintf("Commission and tax reversal for booking #%d", b.ID), ref); err != nil {
				return false, err
			}
		}
		return true, nil

	case b.PaymentMethod == types.PAY_AT_HOTEL && confirmed:
		// Pre-deducted commission and tax go back to the partner.
		deduction := b.Commission + b.Taxes
		if deduction <= 0 {
			return false, nil
		}
		pw, err := wallet.Find(tx, types.Partner(partnerOf(tx, b)))
		if err != nil {
			return false, err
		}
		aw, err := wallet.Find(tx, adminActor(tx))
		if err != nil {
			return false, err
		}
		if _, err := wallet.Credit(tx, pw, deduction, types.TXN_COMMISSION_REFUND,
			fmt.Sprintf("Commission and tax returned for booking #%d", b.ID), ref); err != nil {
			return false, err
		}
		if _, err := wallet.Debit(tx, aw, deduction, types.TXN_REFUND_DEDUCTION,
			fmt.Sprintf("Commission and tax reversal for booking #%d", b.ID), ref); err != nil {
			return false, err
		}
		return false, nil
	}
	// Nothing to refund on an unconfirmed, unpaid booking. This is a
	// no-op, distinct from a missing-wallet failure above.
	return false, nil
}

// AdminOverride forces a status transition on an administrator's
// authority. Cancellation goes through the same
// reversal-before-release discipline as a guest cancellation, and the
// audit trail commits in the same transaction as the transition: an
// override either happens with its trail record or not at all.
func (s *Service) AdminOverride(bookingID uint, to types.BookingStatus, adminID uint, reason string) error {
	trail := func(tx *gorm.DB) error {
		detail := types.JSONB{"status": string(to)}
		if reason != "" {
			detail["reason"] = reason
		}
		return tx.Create(&models.TrailLog{
			Type:      "booking_override",
			Initiator: fmt.Sprintf("admin:%d", adminID),
			Reference: fmt.Sprintf("booking:%d", bookingID),
			Detail:    &detail,
		}).Error
	}

	var moneyMoved bool
	var outcome confirmOutcome
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		switch to {
		case types.BOOKING_CANCELLED:
			moneyMoved, err = s.cancelInTx(tx, bookingID, reason)
		case types.BOOKING_CONFIRMED:
			outcome, err = s.confirmInTx(tx, bookingID, nil)
		case types.BOOKING_REJECTED:
			err = s.rejectInTx(tx, bookingID, reason)
		default:
			err = func() error {
				b, err := lockBooking(tx, bookingID)
				if err != nil {
					return err
				}
				if b.Terminal() {
					return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, b.Status, to)
				}
				return tx.
					Model(&models.Booking{}).
					Where(&models.Booking{ID: b.ID}).
					Update("status", to).
					Error
			}()
		}
		if err != nil {
			return err
		}
		return trail(tx)
	})
	if err != nil {
		return err
	}
	switch to {
	case types.BOOKING_CANCELLED:
		s.Events.Emit(events.BookingCancelled, types.JSONB{
			"booking_id": bookingID,
			"refunded":   moneyMoved,
			"reason":     reason,
		})
	case types.BOOKING_CONFIRMED:
		s.emitConfirmed(bookingID, outcome)
	}
	s.Events.Emit(events.BookingOverride, types.JSONB{
		"booking_id": bookingID,
		"status":     string(to),
		"admin":      adminID,
	})
	return nil
}
