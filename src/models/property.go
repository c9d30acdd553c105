package models

import "hbs/src/types"

type Property struct {
	ID        uint                 `gorm:"primarykey" json:"id"`
	Name      string               `json:"name,omitempty"`
	Slug      string               `gorm:"uniqueIndex" json:"slug,omitempty"`
	Type      types.PropertyType   `json:"type,omitempty"`
	About     *string              `json:"about,omitempty"`
	City      string               `json:"city,omitempty"`
	Address   string               `json:"address,omitempty"`
	Status    types.PropertyStatus `gorm:"default:'draft'" json:"status,omitempty"`
	PartnerID uint                 `json:"partner_id,omitempty"`

	Partner   *User       `gorm:"foreignKey:partner_id" json:"partner,omitempty"`
	RoomTypes []*RoomType `json:"room_types,omitempty"`

	types.Timestamps
}
