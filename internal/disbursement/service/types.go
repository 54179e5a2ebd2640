package service

import (
	"context"

	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract"
	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Factory interface {
		CreateScheme(ctx context.Context, from contract.Account, cfg dmodel.SchemeConfig) (uint64, []model.TxID, error)
		Fund(ctx context.Context, from contract.Account, id, amount uint64) ([]model.TxID, error)
		Activate(ctx context.Context, from contract.Account, id uint64) ([]model.TxID, error)
		Pause(ctx context.Context, from contract.Account, id uint64) ([]model.TxID, error)
		Resume(ctx context.Context, from contract.Account, id uint64) ([]model.TxID, error)
		Close(ctx context.Context, from contract.Account, id uint64) ([]model.TxID, error)
		Complete(ctx context.Context, from contract.Account, id uint64) ([]model.TxID, error)
		Register(ctx context.Context, from contract.Account, id uint64) ([]model.TxID, error)
		Verify(ctx context.Context, from contract.Account, id uint64, beneficiary model.Address) ([]model.TxID, error)
		Approve(ctx context.Context, from contract.Account, id uint64, beneficiary model.Address) ([]model.TxID, error)
		Reject(ctx context.Context, from contract.Account, id uint64, beneficiary model.Address) ([]model.TxID, error)
		Release(ctx context.Context, from contract.Account, id uint64, beneficiary model.Address) ([]model.TxID, error)
		BatchRelease(ctx context.Context, from contract.Account, id uint64, beneficiaries []model.Address) ([]model.TxID, error)
		Stats(ctx context.Context) (dmodel.FactoryStats, error)
		Scheme(ctx context.Context, id uint64) (dmodel.Scheme, error)
		Schemes(ctx context.Context) ([]dmodel.Scheme, error)
		Beneficiary(ctx context.Context, id uint64, addr model.Address) (dmodel.Beneficiary, error)
		Beneficiaries(ctx context.Context, id uint64) ([]dmodel.Beneficiary, error)
		IsAuthorizedAdmin(ctx context.Context, addr model.Address) (bool, error)
	}
	Tokens interface {
		MaxBatch() int
		Create(ctx context.Context, authority contract.Account, cfg dmodel.TokenConfig) (model.AssetID, []model.TxID, error)
		OptIn(ctx context.Context, holder contract.Account, asset model.AssetID) ([]model.TxID, error)
		Transfer(ctx context.Context, from contract.Account, asset model.AssetID, to model.Address, amount uint64) ([]model.TxID, error)
		BatchTransfer(ctx context.Context, from contract.Account, asset model.AssetID, recipients []dmodel.Recipient) ([]model.TxID, error)
	}
	Treasury interface {
		OptIn(ctx context.Context, student contract.Account) ([]model.TxID, error)
		Register(ctx context.Context, student contract.Account) ([]model.TxID, error)
		MarkMilestoneComplete(ctx context.Context, authority contract.Account, student model.Address) ([]model.TxID, error)
		ReleasePayout(ctx context.Context, from contract.Account, student model.Address) ([]model.TxID, error)
		State(ctx context.Context) (dmodel.TreasuryState, error)
		Student(ctx context.Context, addr model.Address) (dmodel.StudentRecord, error)
	}
	Identities interface {
		Identity(ctx context.Context, addr model.Address) (dmodel.Identity, error)
		Stats(ctx context.Context) (dmodel.IdentityStats, error)
	}
)
