package composer

import (
	"context"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	LedgerClient interface {
		SuggestedParams(ctx context.Context) (model.SuggestedParams, error)
		SendGroup(ctx context.Context, signed [][]byte) (model.TxID, error)
		WaitForConfirmation(ctx context.Context, txID model.TxID, waitRounds uint64) (*model.PendingInfo, error)
	}
	Signer interface {
		Sign(ctx context.Context, group []model.Operation, indexes []int) ([][]byte, error)
	}
	Metrics interface {
		ObserveGroup(err error, operations int, started time.Time)
	}
)
