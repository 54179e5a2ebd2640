package audit

import (
	"context"
	"time"

	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// History pages through the confirmed calls of the followed contract.
	History interface {
		Transactions(ctx context.Context, limit int, next string) (*model.HistoryPage, error)
	}
	Repository interface {
		InsertEvents(ctx context.Context, events []dmodel.AuditEvent) error
		ResumeToken(ctx context.Context, app model.AppID) (string, error)
	}
	Metrics interface {
		ObserveFetchPage(err error, started time.Time)
		ObserveStoreBatch(err error, events int, started time.Time)
		ObserveCursor(round uint64)
	}
)
