package models

import (
	"hbs/src/types"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID       `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`
	ActorKind types.ActorKind `gorm:"index:idx_notification_actor" json:"actor_kind,omitempty"`
	ActorID   uint            `gorm:"index:idx_notification_actor" json:"actor_id,omitempty"`
	Title     string          `json:"title"`
	Body      string          `json:"body,omitempty"`
	Data      *types.JSONB    `gorm:"type:jsonb" json:"data,omitempty"`
	Read      bool            `json:"read"`

	types.Timestamps
}
