package models

import (
	"time"

	"hbs/src/types"
)

// Booking is the unit of consistency: every money or inventory mutation
// traces back to exactly one booking id. Price and commission fields are
// snapshots taken at creation; later catalog or settings changes never
// alter an existing booking.
type Booking struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `json:"user_id,omitempty"`
	PropertyID uint      `json:"property_id,omitempty"`
	RoomTypeID uint      `json:"room_type_id,omitempty"`
	CheckIn    time.Time `json:"check_in,omitempty"`
	CheckOut   time.Time `json:"check_out,omitempty"`
	Nights     uint      `json:"nights,omitempty"`
	Adults     uint      `json:"adults,omitempty"`
	Children   uint      `json:"children,omitempty"`

	PricePerNight float64 `json:"price_per_night,omitempty"`
	BaseAmount    float64 `json:"base_amount,omitempty"`
	ExtraCharges  float64 `json:"extra_charges,omitempty"`
	Taxes         float64 `json:"taxes,omitempty"`
	Discount      float64 `json:"discount,omitempty"`
	TotalAmount   float64 `json:"total_amount,omitempty"`
	Commission    float64 `json:"commission,omitempty"`
	PartnerPayout float64 `json:"partner_payout,omitempty"`
	OfferCode     *string `json:"offer_code,omitempty"`

	PaymentMethod types.PaymentMethod `json:"payment_method,omitempty"`
	PaymentStatus types.PaymentStatus `gorm:"default:'pending'" json:"payment_status,omitempty"`
	Status        types.BookingStatus `gorm:"default:'pending'" json:"status,omitempty"`
	OrderID       string              `gorm:"index" json:"order_id,omitempty"`
	PaymentRef    *string             `json:"payment_ref,omitempty"`

	CancelReason *string    `json:"cancel_reason,omitempty"`
	CancelledAt  *time.Time `json:"cancelled_at,omitempty"`

	// NotifyFlags records which one-shot notifications have fired so
	// repeated sweep runs never re-send the same message.
	NotifyFlags types.JSONB `gorm:"type:jsonb" json:"-"`

	User     *User     `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Property *Property `gorm:"foreignKey:property_id" json:"property,omitempty"`
	RoomType *RoomType `gorm:"foreignKey:room_type_id" json:"room_type,omitempty"`

	types.Timestamps
}

func (b *Booking) Terminal() bool {
	return b.Status == types.BOOKING_COMPLETED || b.Status == types.BOOKING_CANCELLED
}

func (b *Booking) MoneyMoved() bool {
	return b.PaymentStatus == types.PAYMENT_PAID || b.PaymentStatus == types.PAYMENT_PARTIAL
}
