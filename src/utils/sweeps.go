package utils

import (
	"log"
	"time"

	"hbs/src/booking"
	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/notify"
	"hbs/src/platform"
	"hbs/src/types"

	"gorm.io/gorm"
)

const flagCheckInReminder = "checkin_reminder"

// MarkNotified sets a one-shot notification flag on the booking,
// returning false when the flag had already fired. Sweeps call it
// before sending so repeated runs never re-send the same message.
func MarkNotified(tx *gorm.DB, b *models.Booking, flag string) (bool, error) {
	if b.NotifyFlags != nil {
		if fired, ok := b.NotifyFlags[flag].(bool); ok && fired {
			return false, nil
		}
	}
	flags := types.JSONB{}
	for k, v := range b.NotifyFlags {
		flags[k] = v
	}
	flags[flag] = true
	err := tx.
		Model(&models.Booking{}).
		Where(&models.Booking{ID: b.ID}).
		Update("notify_flags", flags).
		Error
	if err != nil {
		return false, err
	}
	b.NotifyFlags = flags
	return true, nil
}

// EnqueueSweeps schedules the reminder and expiry sweeps.
func EnqueueSweeps(svc *booking.Service, settings *platform.Settings) {
	if _, err := lib.CreateCronJob(func() { reminderSweep() }, 15*time.Minute); err != nil {
		log.Printf("Error scheduling reminder sweep: %s\n", err.Error())
	}
	if _, err := lib.CreateCronJob(func() { expirySweep(svc, settings) }, 5*time.Minute); err != nil {
		log.Printf("Error scheduling expiry sweep: %s\n", err.Error())
	}
	sched, err := lib.GetScheduler()
	if err != nil {
		return
	}
	sched.Start()
}

// reminderSweep nudges guests one day before check-in, once per
// booking.
func reminderSweep() {
	d := db.GetDb()
	now := time.Now()
	cutoff := now.Add(24 * time.Hour)
	var bookings []models.Booking
	if err := d.
		Where("status = ? AND check_in >= ? AND check_in <= ?", types.BOOKING_CONFIRMED, now, cutoff).
		Preload("Property").
		Find(&bookings).
		Error; err != nil {
		log.Printf("Reminder sweep query failed: %s\n", err.Error())
		return
	}
	for i := range bookings {
		b := &bookings[i]
		fresh, err := MarkNotified(d, b, flagCheckInReminder)
		if err != nil {
			log.Printf("Could not flag reminder for booking %d: %s\n", b.ID, err.Error())
			continue
		}
		if !fresh {
			continue
		}
		name := ""
		if b.Property != nil {
			name = b.Property.Name
		}
		notify.SendToActor(types.Guest(b.UserID), notify.Message{
			Title: "Your stay is coming up",
			Body:  "Check-in at " + name + " opens tomorrow.",
		})
	}
}

// expirySweep cancels online bookings whose payment never arrived
// within the hold TTL so their inventory holds release through the
// normal cancellation path. Cancellation is attempted on every run
// until it succeeds; a booking that failed to expire once must not be
// skipped forever. The cancel itself is idempotent through the status
// check, and the guest hears about it through the cancellation event,
// so no one-shot flag is involved here.
func expirySweep(svc *booking.Service, settings *platform.Settings) {
	d := db.GetDb()
	ttl := settings.BookingHoldTTL()
	if ttl <= 0 {
		return
	}
	cutoff := time.Now().Add(-ttl)
	var bookings []models.Booking
	if err := d.
		Where("status = ? AND payment_status = ? AND payment_method = ? AND created_at < ?",
			types.BOOKING_PENDING, types.PAYMENT_PENDING, types.PAY_ONLINE, cutoff).
		Find(&bookings).
		Error; err != nil {
		log.Printf("Expiry sweep query failed: %s\n", err.Error())
		return
	}
	for i := range bookings {
		b := &bookings[i]
		if err := svc.Cancel(b.ID, "payment window expired"); err != nil {
			log.Printf("Could not expire booking %d: %s\n", b.ID, err.Error())
		}
	}
}
