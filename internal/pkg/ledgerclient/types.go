// Package ledgerclient decorates a ledger client with metrics and read retries.
package ledgerclient

import (
	"context"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Ledger has the method set of ledger.Client.
	Ledger interface {
		SuggestedParams(ctx context.Context) (model.SuggestedParams, error)
		SendGroup(ctx context.Context, signed [][]byte) (model.TxID, error)
		WaitForConfirmation(ctx context.Context, txID model.TxID, waitRounds uint64) (*model.PendingInfo, error)
		ApplicationState(ctx context.Context, app model.AppID) (model.State, error)
		AccountApplicationState(ctx context.Context, account model.Address, app model.AppID) (model.State, error)
		Box(ctx context.Context, app model.AppID, name []byte) (*model.Box, error)
		BoxNames(ctx context.Context, app model.AppID, prefix []byte) ([][]byte, error)
		History(ctx context.Context, q model.HistoryQuery) (*model.HistoryPage, error)
	}
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}
)
