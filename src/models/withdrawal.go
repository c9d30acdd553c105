package models

import (
	"hbs/src/types"

	"github.com/google/uuid"
)

type Withdrawal struct {
	ID            uint                   `gorm:"primarykey" json:"id"`
	WalletID      uint                   `json:"wallet_id,omitempty"`
	Amount        float64                `json:"amount"`
	Status        types.WithdrawalStatus `gorm:"default:'pending'" json:"status,omitempty"`
	TransactionID *uuid.UUID             `gorm:"type:uuid" json:"transaction_id,omitempty"`
	ActionedBy    *uint                  `json:"actioned_by,omitempty"`
	Remark        *string                `json:"remark,omitempty"`

	Wallet      *Wallet      `gorm:"foreignKey:wallet_id" json:"wallet,omitempty"`
	Transaction *Transaction `gorm:"foreignKey:transaction_id" json:"transaction,omitempty"`

	types.Timestamps
}
