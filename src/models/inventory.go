package models

import (
	"time"

	"hbs/src/types"

	"github.com/google/uuid"
)

// InventoryHold claims one unit of a room type's inventory for a date
// range. Holds are created with their booking and deleted on release;
// the sum of active hold units for overlapping ranges must never exceed
// the room type's total inventory.
type InventoryHold struct {
	ID         uuid.UUID        `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	PropertyID uint             `json:"property_id,omitempty"`
	RoomTypeID uint             `gorm:"index" json:"room_type_id,omitempty"`
	BookingID  uint             `gorm:"index" json:"booking_id,omitempty"`
	CheckIn    time.Time        `json:"check_in,omitempty"`
	CheckOut   time.Time        `json:"check_out,omitempty"`
	Units      int              `gorm:"default:1" json:"units,omitempty"`
	Source     types.HoldSource `gorm:"default:'platform'" json:"source,omitempty"`

	Booking *Booking `gorm:"foreignKey:booking_id" json:"-"`

	types.Timestamps
}
