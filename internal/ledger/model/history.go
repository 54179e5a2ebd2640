package model

import "time"

// HistoryQuery selects confirmed operations that touched an application.
type HistoryQuery struct {
	AppID AppID `json:"application-id"`
	Limit int   `json:"limit,omitempty"`
	// Next is the opaque continuation token of a previous page.
	Next string `json:"next,omitempty"`
}

// HistoryTransaction is a confirmed operation as seen by the history index.
type HistoryTransaction struct {
	ID             TxID          `json:"id"`
	Type           OperationType `json:"tx-type"`
	Sender         Address       `json:"sender"`
	Group          GroupID       `json:"group"`
	ConfirmedRound Round         `json:"confirmed-round"`
	RoundTime      time.Time     `json:"round-time"`
	AppID          AppID         `json:"application-id,omitempty"`
	Method         string        `json:"method,omitempty"`
	Args           [][]byte      `json:"application-args,omitempty"`
	Accounts       []Address     `json:"accounts,omitempty"`
	Amount         uint64        `json:"amount,omitempty"`
	Receiver       Address       `json:"receiver"`
	Logs           [][]byte      `json:"logs,omitempty"`
}

// HistoryPage is one page of history results in confirmation order.
type HistoryPage struct {
	Transactions []HistoryTransaction `json:"transactions"`
	Next         string               `json:"next-token,omitempty"`
}
