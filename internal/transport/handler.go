// Package transport exposes the disbursement service over JSON/HTTP.
package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract"
	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/service"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// WalletHeader carries the address of the acting wallet.
const WalletHeader = "X-Wallet-Address"

const (
	defaultEventsLimit = 100
	maxEventsLimit     = 1000
)

// Config wires a Handler.
type Config struct {
	Service  *service.Service
	Accounts Accounts
	Metrics  Metrics
	// Audit is optional; without it the events route answers 501.
	Audit      AuditTrail
	FactoryApp model.AppID

	RateLimitRPS   float64
	RateLimitBurst int
}

// Handler serves the disbursement HTTP API.
type Handler struct {
	svc        *service.Service
	accounts   Accounts
	metrics    Metrics
	audit      AuditTrail
	factoryApp model.AppID
	limiter    *clientLimiter
	logger     *zap.Logger
}

func NewHandler(cfg Config, logger *zap.Logger) (*Handler, error) {
	if cfg.Service == nil {
		return nil, errors.New("service is required")
	}
	if cfg.Accounts == nil {
		return nil, errors.New("accounts is required")
	}
	if cfg.Metrics == nil {
		return nil, errors.New("metrics is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Handler{
		svc:        cfg.Service,
		accounts:   cfg.Accounts,
		metrics:    cfg.Metrics,
		audit:      cfg.Audit,
		factoryApp: cfg.FactoryApp,
		limiter:    newClientLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 0),
		logger:     logger.Named("http_handler"),
	}, nil
}

// Router builds the route table.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(h.recoverMiddleware, h.metricsMiddleware, h.rateLimitMiddleware)

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/stats", h.stats).Methods(http.MethodGet)
	v1.HandleFunc("/admins/{address}", h.isAdmin).Methods(http.MethodGet)

	v1.HandleFunc("/schemes", h.listSchemes).Methods(http.MethodGet)
	v1.HandleFunc("/schemes", h.createScheme).Methods(http.MethodPost)
	v1.HandleFunc("/schemes/{id:[0-9]+}", h.getScheme).Methods(http.MethodGet)
	v1.HandleFunc("/schemes/{id:[0-9]+}/fund", h.fundScheme).Methods(http.MethodPost)
	v1.HandleFunc("/schemes/{id:[0-9]+}/release-batch", h.releaseBatch).Methods(http.MethodPost)
	v1.HandleFunc("/schemes/{id:[0-9]+}/events", h.schemeEvents).Methods(http.MethodGet)
	v1.HandleFunc("/schemes/{id:[0-9]+}/{action:activate|pause|resume|close|complete}", h.schemeAction).Methods(http.MethodPost)
	v1.HandleFunc("/schemes/{id:[0-9]+}/beneficiaries", h.listBeneficiaries).Methods(http.MethodGet)
	v1.HandleFunc("/schemes/{id:[0-9]+}/beneficiaries/{address}", h.getBeneficiary).Methods(http.MethodGet)
	v1.HandleFunc("/schemes/{id:[0-9]+}/beneficiaries/{address}/{action:register|verify|approve|reject|release}", h.beneficiaryAction).Methods(http.MethodPost)

	v1.HandleFunc("/tokens/{asset:[0-9]+}/opt-in", h.tokenOptIn).Methods(http.MethodPost)
	v1.HandleFunc("/tokens/{asset:[0-9]+}/mint", h.tokenMint).Methods(http.MethodPost)
	v1.HandleFunc("/tokens/{asset:[0-9]+}/mint-batch", h.tokenMintBatch).Methods(http.MethodPost)

	v1.HandleFunc("/treasury", h.treasuryState).Methods(http.MethodGet)
	v1.HandleFunc("/students/{address}", h.getStudent).Methods(http.MethodGet)
	v1.HandleFunc("/students/{address}/{action:opt-in|register|milestone|payout}", h.studentAction).Methods(http.MethodPost)

	v1.HandleFunc("/identity/stats", h.identityStats).Methods(http.MethodGet)
	v1.HandleFunc("/citizens/{address}", h.getCitizen).Methods(http.MethodGet)

	return r
}

// actor resolves the signing account named by the wallet header. On failure
// the response is already written.
func (h *Handler) actor(w http.ResponseWriter, r *http.Request) (contract.Account, bool) {
	raw := strings.TrimSpace(r.Header.Get(WalletHeader))
	if raw == "" {
		h.writeError(w, http.StatusUnauthorized, errNoWallet.Error())
		return nil, false
	}
	addr, err := model.ParseAddress(raw)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid "+WalletHeader+": "+err.Error())
		return nil, false
	}
	acct, err := h.accounts.Account(addr)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return acct, true
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// schemeView adds display fields to a scheme record.
type schemeView struct {
	dmodel.Scheme
	StatusLabel string `json:"status_label"`
	Available   uint64 `json:"available"`
	Utilization int    `json:"utilization"`
}

func newSchemeView(s dmodel.Scheme) schemeView {
	return schemeView{
		Scheme:      s,
		StatusLabel: s.Status.Label(),
		Available:   s.Available(),
		Utilization: s.Utilization(),
	}
}

func (h *Handler) listSchemes(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") == "true"
	schemes := h.svc.CachedSchemes(r.Context(), refresh)
	views := make([]schemeView, 0, len(schemes))
	for _, s := range schemes {
		views = append(views, newSchemeView(s))
	}
	h.writeJSON(w, http.StatusOK, views)
}

func (h *Handler) createScheme(w http.ResponseWriter, r *http.Request) {
	var cfg dmodel.SchemeConfig
	if err := decodeBody(w, r, &cfg); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	acct, ok := h.actor(w, r)
	if !ok {
		return
	}
	logger := h.logger.With(zap.String("scheme", cfg.Name))
	res := h.svc.CreateFullScheme(r.Context(), acct, cfg, func(p service.Progress) {
		logger.Debug("create scheme progress", zap.Int("step", p.Step), zap.Int("total", p.Total), zap.String("message", p.Message))
	})
	h.writeResult(w, http.StatusCreated, res.Result, res)
}

func (h *Handler) getScheme(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s, ok := h.svc.SchemeByID(r.Context(), id)
	if !ok {
		h.writeError(w, http.StatusNotFound, "scheme not found")
		return
	}
	h.writeJSON(w, http.StatusOK, newSchemeView(s))
}

func (h *Handler) schemeAction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	acct, ok := h.actor(w, r)
	if !ok {
		return
	}

	var (
		ctx = r.Context()
		res service.Result
	)
	switch mux.Vars(r)["action"] {
	case "activate":
		res = h.svc.ActivateScheme(ctx, acct, id)
	case "pause":
		res = h.svc.PauseActiveScheme(ctx, acct, id)
	case "resume":
		res = h.svc.ResumeScheme(ctx, acct, id)
	case "close":
		res = h.svc.TerminateScheme(ctx, acct, id)
	case "complete":
		res = h.svc.CompleteScheme(ctx, acct, id)
	}
	h.writeResult(w, http.StatusOK, res, res)
}

type fundRequest struct {
	Amount uint64 `json:"amount"`
}

func (h *Handler) fundScheme(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req fundRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	acct, ok := h.actor(w, r)
	if !ok {
		return
	}
	res := h.svc.AddFundsToScheme(r.Context(), acct, id, req.Amount)
	h.writeResult(w, http.StatusOK, res, res)
}

type releaseBatchRequest struct {
	Beneficiaries []model.Address `json:"beneficiaries"`
}

func (h *Handler) releaseBatch(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req releaseBatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	acct, ok := h.actor(w, r)
	if !ok {
		return
	}
	res := h.svc.BatchDisburseFunds(r.Context(), acct, id, req.Beneficiaries)
	h.writeResult(w, http.StatusOK, res, res)
}

func (h *Handler) schemeEvents(w http.ResponseWriter, r *http.Request) {
	if h.audit == nil {
		h.writeError(w, http.StatusNotImplemented, "audit trail is not configured")
		return
	}
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := queryInt(r, "limit", defaultEventsLimit, maxEventsLimit)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	events, err := h.audit.SchemeEvents(r.Context(), h.factoryApp, id, limit)
	if err != nil {
		h.logger.Error("read audit trail", zap.Uint64("scheme_id", id), zap.Error(err))
		h.writeError(w, http.StatusBadGateway, "audit trail unavailable")
		return
	}
	if events == nil {
		events = []dmodel.AuditEvent{}
	}
	h.writeJSON(w, http.StatusOK, events)
}

func (h *Handler) listBeneficiaries(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	list := h.svc.SchemeBeneficiaries(r.Context(), id)
	if list == nil {
		list = []dmodel.Beneficiary{}
	}
	h.writeJSON(w, http.StatusOK, list)
}

func (h *Handler) getBeneficiary(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	addr, err := pathAddress(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	b, ok := h.svc.BeneficiarySchemeStatus(r.Context(), addr, id)
	if !ok {
		h.writeError(w, http.StatusNotFound, "beneficiary not found")
		return
	}
	h.writeJSON(w, http.StatusOK, b)
}

func (h *Handler) beneficiaryAction(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	addr, err := pathAddress(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	acct, ok := h.actor(w, r)
	if !ok {
		return
	}

	var (
		ctx = r.Context()
		res service.Result
	)
	switch mux.Vars(r)["action"] {
	case "register":
		if acct.Address() != addr {
			h.writeError(w, http.StatusForbidden, errWrongAccount.Error())
			return
		}
		res = h.svc.RegisterSchemeApplicant(ctx, acct, id)
	case "verify":
		res = h.svc.VerifySchemeApplicant(ctx, acct, id, addr)
	case "approve":
		res = h.svc.ApproveSchemeApplicant(ctx, acct, id, addr)
	case "reject":
		res = h.svc.RejectSchemeApplicant(ctx, acct, id, addr)
	case "release":
		res = h.svc.DisburseFunds(ctx, acct, id, addr)
	}
	h.writeResult(w, http.StatusOK, res, res)
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.SchemeStatistics(r.Context()))
}

func (h *Handler) isAdmin(w http.ResponseWriter, r *http.Request) {
	addr, err := pathAddress(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]bool{"authorized": h.svc.IsAuthorizedAdmin(r.Context(), addr)})
}

func (h *Handler) tokenOptIn(w http.ResponseWriter, r *http.Request) {
	asset, err := pathUint(r, "asset")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	acct, ok := h.actor(w, r)
	if !ok {
		return
	}
	res := h.svc.OptInToSchemeToken(r.Context(), acct, model.AssetID(asset))
	h.writeResult(w, http.StatusOK, res, res)
}

func (h *Handler) tokenMint(w http.ResponseWriter, r *http.Request) {
	asset, err := pathUint(r, "asset")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req dmodel.Recipient
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	acct, ok := h.actor(w, r)
	if !ok {
		return
	}
	res := h.svc.MintBeneficiaryToken(r.Context(), acct, model.AssetID(asset), req.Address, req.Amount)
	h.writeResult(w, http.StatusOK, res, res)
}

type mintBatchRequest struct {
	Recipients []dmodel.Recipient `json:"recipients"`
}

func (h *Handler) tokenMintBatch(w http.ResponseWriter, r *http.Request) {
	asset, err := pathUint(r, "asset")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req mintBatchRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	acct, ok := h.actor(w, r)
	if !ok {
		return
	}
	res := h.svc.BatchMintBeneficiaryTokens(r.Context(), acct, model.AssetID(asset), req.Recipients)
	h.writeResult(w, http.StatusOK, res, res)
}

func (h *Handler) treasuryState(w http.ResponseWriter, r *http.Request) {
	st, ok := h.svc.TreasuryState(r.Context())
	if !ok {
		h.writeError(w, http.StatusNotFound, "treasury state unavailable")
		return
	}
	h.writeJSON(w, http.StatusOK, st)
}

func (h *Handler) getStudent(w http.ResponseWriter, r *http.Request) {
	addr, err := pathAddress(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.writeJSON(w, http.StatusOK, h.svc.LookupStudent(r.Context(), addr))
}

func (h *Handler) studentAction(w http.ResponseWriter, r *http.Request) {
	addr, err := pathAddress(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	acct, ok := h.actor(w, r)
	if !ok {
		return
	}

	action := mux.Vars(r)["action"]
	if (action == "opt-in" || action == "register") && acct.Address() != addr {
		h.writeError(w, http.StatusForbidden, errWrongAccount.Error())
		return
	}

	var (
		ctx = r.Context()
		res service.Result
	)
	switch action {
	case "opt-in":
		res = h.svc.OptInStudent(ctx, acct)
	case "register":
		res = h.svc.RegisterStudent(ctx, acct)
	case "milestone":
		res = h.svc.CompleteStudentMilestone(ctx, acct, addr)
	case "payout":
		res = h.svc.ReleaseStudentPayout(ctx, acct, addr)
	}
	h.writeResult(w, http.StatusOK, res, res)
}

func (h *Handler) getCitizen(w http.ResponseWriter, r *http.Request) {
	addr, err := pathAddress(r)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id, ok := h.svc.CitizenIdentity(r.Context(), addr)
	if !ok {
		h.writeError(w, http.StatusNotFound, "identity not found")
		return
	}
	h.writeJSON(w, http.StatusOK, id)
}

func (h *Handler) identityStats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.IdentityStatistics(r.Context()))
}

// Serve runs srv until ctx is done, then shuts it down within grace.
func Serve(ctx context.Context, srv *http.Server, grace time.Duration, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down the http server", zap.String("addr", srv.Addr))
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
