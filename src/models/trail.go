package models

import (
	"hbs/src/types"

	"github.com/google/uuid"
)

// TrailLog records on whose authority an admin override or withdrawal
// action was taken.
type TrailLog struct {
	ID        uuid.UUID    `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	Type      string       `json:"type"`
	Initiator string       `json:"initiator"`
	Reference string       `json:"reference,omitempty"`
	Detail    *types.JSONB `gorm:"type:jsonb" json:"detail,omitempty"`

	types.Timestamps
}
