package models

import "hbs/src/types"

type User struct {
	ID         uint    `gorm:"primarykey" json:"id"`
	Name       string  `json:"name,omitempty"`
	Email      string  `gorm:"uniqueIndex" json:"email,omitempty"`
	Phone      string  `json:"phone,omitempty"`
	Role       string  `gorm:"default:'guest'" json:"role,omitempty"`
	ReferredBy *uint   `json:"referred_by,omitempty"`
	FCMToken   *string `json:"-"`

	Bookings []*Booking `json:"bookings,omitempty"`

	types.Timestamps
}
