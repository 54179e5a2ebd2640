package factory

import (
	"context"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Ledger interface {
		ApplicationState(ctx context.Context, app model.AppID) (model.State, error)
		Box(ctx context.Context, app model.AppID, name []byte) (*model.Box, error)
		BoxNames(ctx context.Context, app model.AppID, prefix []byte) ([][]byte, error)
		History(ctx context.Context, q model.HistoryQuery) (*model.HistoryPage, error)
	}
)
