package models

import "hbs/src/types"

type RoomType struct {
	ID              uint                `gorm:"primarykey" json:"id"`
	PropertyID      uint                `json:"property_id,omitempty"`
	Name            string              `json:"name,omitempty"`
	Unit            types.InventoryUnit `json:"unit,omitempty"`
	PricePerNight   float64             `json:"price_per_night,omitempty"`
	ExtraAdultPrice float64             `json:"extra_adult_price,omitempty"`
	ExtraChildPrice float64             `json:"extra_child_price,omitempty"`
	MaxAdults       uint                `json:"max_adults,omitempty"`
	MaxChildren     uint                `json:"max_children,omitempty"`
	TotalInventory  uint                `json:"total_inventory,omitempty"`

	Property *Property `gorm:"foreignKey:property_id" json:"property,omitempty"`

	types.Timestamps
}
