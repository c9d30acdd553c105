package models

import (
	"hbs/src/types"

	"github.com/google/uuid"
)

// Transaction is an immutable append-only record of one credit or debit
// against exactly one wallet. Every wallet balance mutation writes one.
type Transaction struct {
	ID uuid.UUID `gorm:"primarykey;type:uuid;default:gen_random_uuid()" json:"id"`

	WalletID    uint                      `gorm:"index" json:"wallet_id,omitempty"`
	Amount      float64                   `json:"amount"`
	Direction   string                    `json:"direction,omitempty"`
	Category    types.TransactionCategory `json:"category,omitempty"`
	Description string                    `json:"description,omitempty"`
	ReferenceID string                    `gorm:"index" json:"reference_id,omitempty"`
	Status      types.TransactionStatus   `gorm:"default:'pending'" json:"status,omitempty"`
	Metadata    *types.JSONB              `gorm:"type:jsonb" json:"metadata,omitempty"`

	Wallet *Wallet `gorm:"foreignKey:wallet_id" json:"-"`

	types.Timestamps
}

const (
	TXN_CREDIT = "credit"
	TXN_DEBIT  = "debit"
)
