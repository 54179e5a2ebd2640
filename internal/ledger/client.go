// Package ledger defines the narrow ledger surface the disbursement core depends on.
package ledger

import (
	"context"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

// Client is the complete set of ledger features used by the core.
type Client interface {
	// SuggestedParams returns the current fee and validity window.
	SuggestedParams(ctx context.Context) (model.SuggestedParams, error)
	// SendGroup submits a fully signed atomic group and returns the id of its first operation.
	SendGroup(ctx context.Context, signed [][]byte) (model.TxID, error)
	// WaitForConfirmation blocks until txID is confirmed or waitRounds rounds have passed.
	WaitForConfirmation(ctx context.Context, txID model.TxID, waitRounds uint64) (*model.PendingInfo, error)
	// ApplicationState reads application global state.
	ApplicationState(ctx context.Context, app model.AppID) (model.State, error)
	// AccountApplicationState reads an account's local state for an application.
	AccountApplicationState(ctx context.Context, account model.Address, app model.AppID) (model.State, error)
	// Box reads one named storage record.
	Box(ctx context.Context, app model.AppID, name []byte) (*model.Box, error)
	// BoxNames lists storage record names that start with prefix.
	BoxNames(ctx context.Context, app model.AppID, prefix []byte) ([][]byte, error)
	// History pages through confirmed operations that touched an application.
	History(ctx context.Context, q model.HistoryQuery) (*model.HistoryPage, error)
}
