package ledger

import (
	"errors"
	"fmt"
	"time"

	"hbs/src/models"
	"hbs/src/types"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNoInventory = errors.New("no inventory available for the selected dates")

// Acquire claims one inventory unit for the stay. It locks the room
// type row so the overlap count and the insert are atomic with respect
// to concurrent bookings for the same room type; two requests can never
// both take the last unit.
func Acquire(tx *gorm.DB, roomTypeID uint, checkIn, checkOut time.Time, bookingID uint, source types.HoldSource) error {
	var rt models.RoomType
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(&models.RoomType{ID: roomTypeID}).
		First(&rt).
		Error; err != nil {
		return err
	}
	active, err := CountActive(tx, roomTypeID, checkIn, checkOut)
	if err != nil {
		return err
	}
	if active >= int64(rt.TotalInventory) {
		return fmt.Errorf("%w: %d of %d units held", ErrNoInventory, active, rt.TotalInventory)
	}
	hold := models.InventoryHold{
		PropertyID: rt.PropertyID,
		RoomTypeID: roomTypeID,
		BookingID:  bookingID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Units:      1,
		Source:     source,
	}
	return tx.Create(&hold).Error
}

// Release deletes every hold tied to the booking. Callers run it only
// after the booking's financial reversal has succeeded; a failed
// reversal leaves the hold in place rather than double-selling the
// room.
func Release(tx *gorm.DB, bookingID uint) error {
	return tx.
		Where(&models.InventoryHold{BookingID: bookingID}).
		Delete(&models.InventoryHold{}).
		Error
}

// CountActive sums hold units overlapping [checkIn, checkOut) for the
// room type.
func CountActive(tx *gorm.DB, roomTypeID uint, checkIn, checkOut time.Time) (int64, error) {
	var total *int64
	err := tx.
		Model(&models.InventoryHold{}).
		Where("room_type_id = ? AND check_in < ? AND check_out > ?", roomTypeID, checkOut, checkIn).
		Select("COALESCE(SUM(units), 0)").
		Scan(&total).
		Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// Available reports how many units remain free for the date range.
func Available(tx *gorm.DB, rt *models.RoomType, checkIn, checkOut time.Time) (int64, error) {
	held, err := CountActive(tx, rt.ID, checkIn, checkOut)
	if err != nil {
		return 0, err
	}
	free := int64(rt.TotalInventory) - held
	if free < 0 {
		free = 0
	}
	return free, nil
}
