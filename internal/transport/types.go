package transport

import (
	"context"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract"
	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// AuditTrail serves the stored audit events of a factory.
	AuditTrail interface {
		SchemeEvents(ctx context.Context, app model.AppID, schemeID uint64, limit int) ([]dmodel.AuditEvent, error)
	}
	// Accounts resolves the acting wallet address into a signing account.
	Accounts interface {
		Account(addr model.Address) (contract.Account, error)
	}
	Metrics interface {
		Observe(route, method string, code int, started time.Time)
	}
)
