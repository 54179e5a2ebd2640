package model

import (
	"time"

	ledgermodel "github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

// AuditEvent is one contract event as recorded in the audit trail.
type AuditEvent struct {
	AppID    ledgermodel.AppID `json:"app_id"`
	TxID     ledgermodel.TxID  `json:"tx_id"`
	LogIndex uint16            `json:"log_index"`
	Name     string            `json:"event"`
	Method   string            `json:"method"`
	SchemeID uint64            `json:"scheme_id"`
	Sender   string            `json:"sender"`
	Subject  string            `json:"subject,omitempty"`
	Amount   uint64            `json:"amount,omitempty"`
	Value    uint64            `json:"value,omitempty"`

	ConfirmedRound ledgermodel.Round `json:"confirmed_round"`
	RoundTime      time.Time         `json:"round_time"`
	// PageToken is the history token of the page the event was read from.
	PageToken string `json:"-"`
}
