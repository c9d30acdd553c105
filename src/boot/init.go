package boot

import (
	"log"

	"hbs/src/booking"
	"hbs/src/common"
	"hbs/src/db"
	"hbs/src/events"
	"hbs/src/lib"
	"hbs/src/platform"
	"hbs/src/utils"

	"hbs/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Property{},
		&models.RoomType{},
		&models.Booking{},
		&models.InventoryHold{},
		&models.Wallet{},
		&models.Transaction{},
		&models.Withdrawal{},
		&models.Offer{},
		&models.OfferRedemption{},
		&models.Setting{},
		&models.Notification{},
		&models.TrailLog{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitSettings seeds the platform configuration rows and returns the
// injected settings service.
func InitSettings(d *gorm.DB) *platform.Settings {
	settings := platform.NewSettings(d, lib.GetRedisClient())
	if err := settings.Seed(); err != nil {
		log.Printf("Error seeding settings: %s\n", err.Error())
	}
	return settings
}

func InitBroker() {
	go lib.KafkaCreateTopics(events.Topic)
	go common.BookingEventsConsumer()
}

func InitScheduler(svc *booking.Service, settings *platform.Settings) {
	utils.EnqueueSweeps(svc, settings)
}
