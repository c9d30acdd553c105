package common

import (
	"fmt"
	"log"

	"hbs/src/db"
	"hbs/src/events"
	"hbs/src/lib"
	"hbs/src/models"
	"hbs/src/notify"
	"hbs/src/types"

	"github.com/tidwall/gjson"
)

// BookingEventsConsumer drains the booking-events topic and fans each
// event out to the affected guest, partner and admin. It runs beside
// the API process; a dispatch failure here never touches the booking
// itself.
func BookingEventsConsumer() {
	log.Printf("%s: Listening for messages...", events.Topic)
	lib.KafkaConsume("notifications", events.Topic, func(body string) {
		if !gjson.Valid(body) {
			log.Printf("[%s]: Received invalid json body. Aborting", events.Topic)
			return
		}
		event := gjson.Get(body, "event").String()
		bookingID := uint(gjson.Get(body, "booking_id").Uint())
		if bookingID == 0 {
			log.Printf("[%s]: event %s carries no booking id", events.Topic, event)
			return
		}
		dispatch(event, bookingID, body)
	})
}

func dispatch(event string, bookingID uint, raw string) {
	d := db.GetDb()
	var b models.Booking
	if err := d.
		Where(&models.Booking{ID: bookingID}).
		Preload("Property").
		First(&b).
		Error; err != nil {
		log.Printf("Error loading booking %d for event %s: %s\n", bookingID, event, err.Error())
		return
	}

	propertyName := ""
	var partnerID uint
	if b.Property != nil {
		propertyName = b.Property.Name
		partnerID = b.Property.PartnerID
	}

	var guestMsg, partnerMsg notify.Message
	switch event {
	case events.BookingCreated:
		guestMsg = notify.Message{
			Title: "Booking received",
			Body:  fmt.Sprintf("Your booking at %s is awaiting confirmation.", propertyName),
		}
		partnerMsg = notify.Message{
			Title: "New booking",
			Body:  fmt.Sprintf("Booking #%d received for %s.", b.ID, propertyName),
		}
	case events.BookingConfirmed, events.PaymentConfirmed:
		guestMsg = notify.Message{
			Title: "Booking confirmed",
			Body:  fmt.Sprintf("Your stay at %s is confirmed.", propertyName),
		}
		partnerMsg = notify.Message{
			Title: "Booking confirmed",
			Body:  fmt.Sprintf("Booking #%d at %s is confirmed.", b.ID, propertyName),
		}
	case events.BookingCancelled:
		refunded := gjson.Get(raw, "refunded").Bool()
		body := fmt.Sprintf("Booking #%d at %s was cancelled.", b.ID, propertyName)
		if refunded {
			body += " The amount has been refunded to the wallet."
		}
		guestMsg = notify.Message{Title: "Booking cancelled", Body: body}
		partnerMsg = notify.Message{Title: "Booking cancelled", Body: body}
	case events.BookingOverride:
		status := gjson.Get(raw, "status").String()
		body := fmt.Sprintf("Booking #%d was moved to %s by support.", b.ID, status)
		guestMsg = notify.Message{Title: "Booking updated", Body: body}
		partnerMsg = notify.Message{Title: "Booking updated", Body: body}
	default:
		log.Printf("[%s]: unhandled event %s", events.Topic, event)
		return
	}

	data := map[string]string{
		"booking_id": fmt.Sprint(b.ID),
		"event":      event,
	}
	guestMsg.Data = data
	partnerMsg.Data = data

	notify.SendToActor(types.Guest(b.UserID), guestMsg)
	if partnerID != 0 {
		notify.SendToActor(types.Partner(partnerID), partnerMsg)
	}

	// Admin audit copy for money-moving events.
	if event == events.BookingCancelled || event == events.BookingOverride {
		var admin models.User
		if err := d.Where(&models.User{Role: "admin"}).Order("id").First(&admin).Error; err == nil {
			notify.SendToActor(types.Admin(admin.ID), notify.Message{
				Title: guestMsg.Title,
				Body:  guestMsg.Body,
				Data:  data,
			})
		}
	}
}
