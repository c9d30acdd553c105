package events

import (
	"log"

	"hbs/src/lib"
	"hbs/src/types"
)

const Topic = "booking-events"

const (
	BookingCreated   = "BookingCreated"
	BookingConfirmed = "BookingConfirmed"
	BookingCancelled = "BookingCancelled"
	PaymentConfirmed = "PaymentConfirmed"
	BookingOverride  = "BookingOverride"
)

// Emitter publishes domain events after the owning transaction commits.
// Delivery is best effort; the core never waits on it.
type Emitter interface {
	Emit(event string, payload types.JSONB)
}

// KafkaEmitter sends events to the booking-events topic via the shared
// producer.
type KafkaEmitter struct {
	ClientID string
}

func (e *KafkaEmitter) Emit(event string, payload types.JSONB) {
	body := types.JSONB{"event": event}
	for k, v := range payload {
		body[k] = v
	}
	go func() {
		if err := lib.KafkaProduceMessage(e.ClientID, Topic, body); err != nil {
			log.Printf("[events] failed to publish %s: %s\n", event, err.Error())
		}
	}()
}

// NopEmitter drops events; used in tests.
type NopEmitter struct{}

func (NopEmitter) Emit(string, types.JSONB) {}
