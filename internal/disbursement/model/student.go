package model

import (
	ledgermodel "github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

// StudentRecord is the per-student state of a milestone treasury. Each flag
// only ever moves from false to true.
type StudentRecord struct {
	Address            ledgermodel.Address `json:"address"`
	OptedIn            bool                `json:"opted_in"`
	Registered         bool                `json:"registered"`
	MilestoneCompleted bool                `json:"milestone_completed"`
	Paid               bool                `json:"paid"`
}

// Stage names the furthest step the student has reached.
func (r StudentRecord) Stage() string {
	switch {
	case r.Paid:
		return "paid"
	case r.MilestoneCompleted:
		return "milestone_completed"
	case r.Registered:
		return "registered"
	case r.OptedIn:
		return "opted_in"
	default:
		return "not_opted_in"
	}
}

// TreasuryState is the global state of a milestone treasury.
type TreasuryState struct {
	TotalBudget  uint64              `json:"total_budget"`
	SpentBudget  uint64              `json:"spent_budget"`
	PayoutAmount uint64              `json:"payout_amount"`
	Active       bool                `json:"active"`
	Authority    ledgermodel.Address `json:"authority"`
}

// Remaining is the budget still available for payouts.
func (t TreasuryState) Remaining() uint64 {
	if t.SpentBudget >= t.TotalBudget {
		return 0
	}
	return t.TotalBudget - t.SpentBudget
}
