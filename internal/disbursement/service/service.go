// Package service composes the contract clients into the disbursement
// workflows offered to the presentation layer.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/apperr"
	"github.com/goodnatureofminers/benefitchain-backend/internal/clock"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract"
	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"go.uber.org/zap"
)

// ErrTreasuryNotConfigured is returned by student operations when no
// milestone treasury is deployed.
var ErrTreasuryNotConfigured = errors.New("milestone treasury is not configured")

// Result is the uniform outcome of a write.
type Result struct {
	Success bool         `json:"success"`
	TxIDs   []model.TxID `json:"tx_ids,omitempty"`
	Error   string       `json:"error,omitempty"`
	Kind    apperr.Kind  `json:"-"`
}

func newResult(ids []model.TxID, err error) Result {
	if err != nil {
		return Result{TxIDs: ids, Error: apperr.Message(err), Kind: apperr.KindOf(err)}
	}
	return Result{Success: true, TxIDs: ids}
}

// CreateResult reports a createFullScheme run.
type CreateResult struct {
	Result
	SchemeID     uint64        `json:"scheme_id,omitempty"`
	TokenAssetID model.AssetID `json:"token_asset_id,omitempty"`
}

// Progress is one step of a multi-step workflow.
type Progress struct {
	Step    int    `json:"step"`
	Total   int    `json:"total"`
	Message string `json:"message"`
}

// ProgressFunc receives workflow progress. It must not block.
type ProgressFunc func(Progress)

// Statistics is the dashboard summary of the factory.
type Statistics struct {
	dmodel.FactoryStats
	EscrowHeld uint64 `json:"escrow_held"`
}

// Config wires a Service.
type Config struct {
	Factory    Factory
	Tokens     Tokens
	Treasury   Treasury
	Identities Identities
	Clock      clock.Clock
	CacheTTL   time.Duration
	// TokenSupply is the token total for schemes without a beneficiary
	// ceiling. Zero means dmodel.DefaultTokenSupply.
	TokenSupply uint64
}

// Service is the orchestration layer. The scheme cache is its only state.
type Service struct {
	factory    Factory
	tokens     Tokens
	treasury   Treasury
	identities Identities
	clock       clock.Clock
	cache       *SchemeCache
	tokenSupply uint64
	logger      *zap.Logger
}

// New builds a Service. Factory and Tokens are required; the treasury and
// identity registry are optional deployments.
func New(cfg Config, logger *zap.Logger) (*Service, error) {
	if cfg.Factory == nil {
		return nil, errors.New("factory is required")
	}
	if cfg.Tokens == nil {
		return nil, errors.New("tokens is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.System{}
	}
	if cfg.TokenSupply == 0 {
		cfg.TokenSupply = dmodel.DefaultTokenSupply
	}
	return &Service{
		factory:    cfg.Factory,
		tokens:     cfg.Tokens,
		treasury:   cfg.Treasury,
		identities: cfg.Identities,
		clock:      cfg.Clock,
		cache:       NewSchemeCache(cfg.Clock, cfg.CacheTTL),
		tokenSupply: cfg.TokenSupply,
		logger:      logger.Named("disbursement_service"),
	}, nil
}

// Cache exposes the scheme cache.
func (s *Service) Cache() *SchemeCache {
	return s.cache
}

func (s *Service) write(op string, ids []model.TxID, err error) Result {
	if err != nil {
		s.logger.Warn("write failed",
			zap.String("op", op),
			zap.Stringer("kind", apperr.KindOf(err)),
			zap.Int("confirmed", len(ids)),
			zap.Error(err))
	}
	return newResult(ids, err)
}

// schemeWrite runs a write that may change a scheme record.
func (s *Service) schemeWrite(op string, ids []model.TxID, err error) Result {
	s.cache.Invalidate()
	return s.write(op, ids, err)
}

// CreateFullScheme validates cfg, creates the scheme and, when requested,
// its token. progress may be nil.
func (s *Service) CreateFullScheme(ctx context.Context, authority contract.Account, cfg dmodel.SchemeConfig, progress ProgressFunc) CreateResult {
	const total = 4
	if progress == nil {
		progress = func(Progress) {}
	}

	progress(Progress{Step: 1, Total: total, Message: "Validating scheme configuration"})
	now := s.clock.Now()
	if err := cfg.Validate(now); err != nil {
		return CreateResult{Result: s.write("create scheme", nil, err)}
	}

	progress(Progress{Step: 2, Total: total, Message: "Creating scheme on ledger"})
	id, ids, err := s.factory.CreateScheme(ctx, authority, cfg)
	s.cache.Invalidate()
	if err != nil {
		return CreateResult{Result: s.write("create scheme", ids, err)}
	}
	res := CreateResult{SchemeID: id}
	txIDs := append([]model.TxID(nil), ids...)

	if cfg.TokenEnabled {
		progress(Progress{Step: 3, Total: total, Message: "Creating scheme token"})
		tokenCfg := cfg
		if tokenCfg.MaxBeneficiaries == 0 {
			tokenCfg.MaxBeneficiaries = s.tokenSupply
		}
		asset, tids, err := s.tokens.Create(ctx, authority, dmodel.SchemeTokenConfig(tokenCfg, now))
		txIDs = append(txIDs, tids...)
		if err != nil {
			res.Result = s.write("create scheme token", txIDs, err)
			return res
		}
		res.TokenAssetID = asset
	}

	progress(Progress{Step: 4, Total: total, Message: "Finalizing scheme"})
	res.Result = newResult(txIDs, nil)
	s.logger.Info("scheme created",
		zap.Uint64("scheme_id", id),
		zap.Uint64("token_asset_id", uint64(res.TokenAssetID)),
		zap.Stringer("authority", authority.Address()))
	return res
}

// ActivateScheme moves a draft scheme to active.
func (s *Service) ActivateScheme(ctx context.Context, authority contract.Account, id uint64) Result {
	ids, err := s.factory.Activate(ctx, authority, id)
	return s.schemeWrite("activate scheme", ids, err)
}

// PauseActiveScheme pauses an active scheme.
func (s *Service) PauseActiveScheme(ctx context.Context, authority contract.Account, id uint64) Result {
	ids, err := s.factory.Pause(ctx, authority, id)
	return s.schemeWrite("pause scheme", ids, err)
}

// ResumeScheme reactivates a paused scheme.
func (s *Service) ResumeScheme(ctx context.Context, authority contract.Account, id uint64) Result {
	ids, err := s.factory.Resume(ctx, authority, id)
	return s.schemeWrite("resume scheme", ids, err)
}

// TerminateScheme cancels a scheme and refunds what is left in escrow.
func (s *Service) TerminateScheme(ctx context.Context, authority contract.Account, id uint64) Result {
	ids, err := s.factory.Close(ctx, authority, id)
	return s.schemeWrite("close scheme", ids, err)
}

// CompleteScheme marks a scheme completed and refunds what is left in escrow.
func (s *Service) CompleteScheme(ctx context.Context, authority contract.Account, id uint64) Result {
	ids, err := s.factory.Complete(ctx, authority, id)
	return s.schemeWrite("complete scheme", ids, err)
}

// AddFundsToScheme moves amount into the scheme escrow.
func (s *Service) AddFundsToScheme(ctx context.Context, authority contract.Account, id, amount uint64) Result {
	ids, err := s.factory.Fund(ctx, authority, id, amount)
	return s.schemeWrite("fund scheme", ids, err)
}

// RegisterSchemeApplicant registers the applicant's own account.
func (s *Service) RegisterSchemeApplicant(ctx context.Context, applicant contract.Account, id uint64) Result {
	ids, err := s.factory.Register(ctx, applicant, id)
	return s.schemeWrite("register applicant", ids, err)
}

// VerifySchemeApplicant marks a registered applicant verified.
func (s *Service) VerifySchemeApplicant(ctx context.Context, authority contract.Account, id uint64, applicant model.Address) Result {
	ids, err := s.factory.Verify(ctx, authority, id, applicant)
	return s.write("verify applicant", ids, err)
}

// ApproveSchemeApplicant approves an applicant for payout.
func (s *Service) ApproveSchemeApplicant(ctx context.Context, authority contract.Account, id uint64, applicant model.Address) Result {
	ids, err := s.factory.Approve(ctx, authority, id, applicant)
	return s.write("approve applicant", ids, err)
}

// RejectSchemeApplicant rejects an applicant.
func (s *Service) RejectSchemeApplicant(ctx context.Context, authority contract.Account, id uint64, applicant model.Address) Result {
	ids, err := s.factory.Reject(ctx, authority, id, applicant)
	return s.write("reject applicant", ids, err)
}

// DisburseFunds releases the scheme payout to one approved beneficiary.
func (s *Service) DisburseFunds(ctx context.Context, from contract.Account, id uint64, beneficiary model.Address) Result {
	ids, err := s.factory.Release(ctx, from, id, beneficiary)
	return s.schemeWrite("disburse funds", ids, err)
}

// BatchDisburseFunds releases to several beneficiaries in one atomic group.
// Lists above the release ceiling are rejected before submission.
func (s *Service) BatchDisburseFunds(ctx context.Context, from contract.Account, id uint64, beneficiaries []model.Address) Result {
	ids, err := s.factory.BatchRelease(ctx, from, id, beneficiaries)
	return s.schemeWrite("batch disburse funds", ids, err)
}

// MintBeneficiaryToken sends amount scheme tokens to one beneficiary.
func (s *Service) MintBeneficiaryToken(ctx context.Context, authority contract.Account, asset model.AssetID, beneficiary model.Address, amount uint64) Result {
	ids, err := s.tokens.Transfer(ctx, authority, asset, beneficiary, amount)
	return s.write("mint token", ids, err)
}

// BatchMintBeneficiaryTokens sends tokens to every recipient, one atomic group
// per chunk of the transfer ceiling. Chunks run in order; the first failure
// stops the run and the ids of the confirmed chunks are returned with it.
func (s *Service) BatchMintBeneficiaryTokens(ctx context.Context, authority contract.Account, asset model.AssetID, recipients []dmodel.Recipient) Result {
	const op = "batch mint tokens"
	if len(recipients) == 0 {
		return s.write(op, nil, apperr.Validation(op, "no recipients"))
	}
	for i, r := range recipients {
		if r.Amount == 0 {
			return s.write(op, nil, apperr.Validation(op, "recipient %d has zero amount", i))
		}
	}

	size := s.tokens.MaxBatch()
	var txIDs []model.TxID
	for start := 0; start < len(recipients); start += size {
		end := min(start+size, len(recipients))
		ids, err := s.tokens.BatchTransfer(ctx, authority, asset, recipients[start:end])
		txIDs = append(txIDs, ids...)
		if err != nil {
			return s.write(op, txIDs, fmt.Errorf("chunk %d-%d: %w", start, end-1, err))
		}
	}
	return newResult(txIDs, nil)
}

// OptInToSchemeToken lets holder receive the scheme token.
func (s *Service) OptInToSchemeToken(ctx context.Context, holder contract.Account, asset model.AssetID) Result {
	ids, err := s.tokens.OptIn(ctx, holder, asset)
	return s.write("opt in to token", ids, err)
}

// CachedSchemes returns the scheme list, from the cache while it is fresh.
// A failed refresh falls back to the last list seen.
func (s *Service) CachedSchemes(ctx context.Context, forceRefresh bool) []dmodel.Scheme {
	if !forceRefresh {
		if schemes, ok := s.cache.Fresh(); ok {
			return schemes
		}
	}
	schemes, err := s.factory.Schemes(ctx)
	if err != nil {
		s.logger.Warn("refresh schemes failed", zap.Error(err))
		return s.cache.Stale()
	}
	s.cache.Store(schemes)
	return schemes
}

// SchemeStatistics reads the factory counters. Failures yield zero values.
func (s *Service) SchemeStatistics(ctx context.Context) Statistics {
	stats, err := s.factory.Stats(ctx)
	if err != nil {
		s.logger.Warn("read factory stats failed", zap.Error(err))
		return Statistics{}
	}
	out := Statistics{FactoryStats: stats}
	for _, sc := range s.CachedSchemes(ctx, false) {
		out.EscrowHeld += sc.Available()
	}
	return out
}

// SchemeByID returns one scheme, preferring the cache. ok is false when the
// scheme does not exist or cannot be read.
func (s *Service) SchemeByID(ctx context.Context, id uint64) (dmodel.Scheme, bool) {
	if sc, ok := s.cache.Lookup(id); ok {
		return sc, true
	}
	sc, err := s.factory.Scheme(ctx, id)
	if err != nil {
		s.readFailed("read scheme", err)
		return dmodel.Scheme{}, false
	}
	return sc, true
}

// BeneficiarySchemeStatus returns the registration of addr in scheme id.
func (s *Service) BeneficiarySchemeStatus(ctx context.Context, addr model.Address, id uint64) (dmodel.Beneficiary, bool) {
	b, err := s.factory.Beneficiary(ctx, id, addr)
	if err != nil {
		s.readFailed("read beneficiary", err)
		return dmodel.Beneficiary{}, false
	}
	return b, true
}

// SchemeBeneficiaries lists the registrations of scheme id.
func (s *Service) SchemeBeneficiaries(ctx context.Context, id uint64) []dmodel.Beneficiary {
	list, err := s.factory.Beneficiaries(ctx, id)
	if err != nil {
		s.readFailed("list beneficiaries", err)
		return nil
	}
	return list
}

// IsAuthorizedAdmin reports whether addr may administer schemes. It fails
// closed.
func (s *Service) IsAuthorizedAdmin(ctx context.Context, addr model.Address) bool {
	ok, err := s.factory.IsAuthorizedAdmin(ctx, addr)
	if err != nil {
		s.readFailed("read admin role", err)
		return false
	}
	return ok
}

func (s *Service) readFailed(op string, err error) {
	if errors.Is(err, ledger.ErrNotFound) {
		return
	}
	s.logger.Warn("read failed", zap.String("op", op), zap.Error(err))
}
