package models

import (
	"time"

	"hbs/src/types"
)

type Offer struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	Code             string          `gorm:"uniqueIndex" json:"code,omitempty"`
	Kind             types.OfferKind `json:"kind,omitempty"`
	Value            float64         `json:"value,omitempty"`
	MaxDiscount      float64         `json:"max_discount,omitempty"`
	MinBookingAmount float64         `json:"min_booking_amount,omitempty"`
	UsageLimit       uint            `json:"usage_limit,omitempty"`
	PerUserLimit     uint            `json:"per_user_limit,omitempty"`
	UsageCount       uint            `json:"usage_count,omitempty"`
	StartsAt         time.Time       `json:"starts_at,omitempty"`
	EndsAt           time.Time       `json:"ends_at,omitempty"`
	Active           bool            `gorm:"default:true" json:"active,omitempty"`

	types.Timestamps
}

// OfferRedemption records one applied offer per booking, used to count
// per-user usage against PerUserLimit.
type OfferRedemption struct {
	ID        uint `gorm:"primarykey" json:"id"`
	OfferID   uint `gorm:"index" json:"offer_id,omitempty"`
	UserID    uint `gorm:"index" json:"user_id,omitempty"`
	BookingID uint `json:"booking_id,omitempty"`

	types.Timestamps
}
