package models

import "hbs/src/types"

// Wallet holds the running balance for one (actor kind, actor id) pair.
// Balance is reconstructable as the sum of completed transactions and
// must never go negative from a debit.
type Wallet struct {
	ID               uint            `gorm:"primarykey" json:"id"`
	ActorKind        types.ActorKind `gorm:"uniqueIndex:idx_wallet_actor" json:"actor_kind,omitempty"`
	ActorID          uint            `gorm:"uniqueIndex:idx_wallet_actor" json:"actor_id,omitempty"`
	Balance          float64         `json:"balance"`
	TotalEarnings    float64         `json:"total_earnings,omitempty"`
	TotalWithdrawals float64         `json:"total_withdrawals,omitempty"`
	PendingClearance float64         `json:"pending_clearance,omitempty"`
	BankDetails      *types.JSONB    `gorm:"type:jsonb" json:"bank_details,omitempty"`

	Transactions []*Transaction `json:"transactions,omitempty"`

	types.Timestamps
}

func (w Wallet) Actor() types.ActorRef {
	return types.ActorRef{Kind: w.ActorKind, ID: w.ActorID}
}
