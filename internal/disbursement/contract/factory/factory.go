// Package factory is the client of the scheme factory contract.
package factory

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/goodnatureofminers/benefitchain-backend/internal/apperr"
	"github.com/goodnatureofminers/benefitchain-backend/internal/clock"
	"github.com/goodnatureofminers/benefitchain-backend/internal/composer"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract"
	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	programfactory "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/program/factory"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/storage"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/pkg/safe"
	"github.com/goodnatureofminers/benefitchain-backend/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	defaultDecodeWorkers = 4
	// DefaultMaxReleaseGroup bounds one batch release group. Each release
	// carries an inner payment.
	DefaultMaxReleaseGroup = 4
)

// Option customises a Client.
type Option func(*Client)

// WithClock sets the clock used for local validation.
func WithClock(c clock.Clock) Option {
	return func(cl *Client) {
		cl.clock = c
	}
}

// WithDecodeWorkers sets the number of workers decoding enumerated records.
func WithDecodeWorkers(n int) Option {
	return func(cl *Client) {
		cl.workers = n
	}
}

// WithMaxReleaseGroup sets the batch release ceiling.
func WithMaxReleaseGroup(n int) Option {
	return func(cl *Client) {
		cl.maxRelease = n
	}
}

// Client talks to one factory deployment.
type Client struct {
	ledger     Ledger
	exec       contract.Executor
	app        model.AppID
	clock      clock.Clock
	workers    int
	maxRelease int
	logger     *zap.Logger
}

// New constructs a Client for app.
func New(l Ledger, exec contract.Executor, app model.AppID, logger *zap.Logger, opts ...Option) (*Client, error) {
	if l == nil {
		return nil, errors.New("ledger is required")
	}
	if exec == nil {
		return nil, errors.New("executor is required")
	}
	if app == 0 {
		return nil, errors.New("factory app id is required")
	}
	c := &Client{
		ledger:     l,
		exec:       exec,
		app:        app,
		clock:      clock.System{},
		workers:    defaultDecodeWorkers,
		maxRelease: DefaultMaxReleaseGroup,
		logger:     logger.Named("factory_client").With(zap.Uint64("app_id", uint64(app))),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Deploy creates a factory whose primary authority is authority.
func Deploy(ctx context.Context, exec contract.Executor, creator contract.Account, authority model.Address) (model.AppID, []model.TxID, error) {
	app, ids, err := contract.Deploy(ctx, exec, creator, programfactory.ProgramName, nil, []model.Address{authority})
	if err != nil {
		return app, ids, apperr.Wrap("deploy factory", err)
	}
	return app, ids, nil
}

// AppID returns the factory application id.
func (c *Client) AppID() model.AppID {
	return c.app
}

// Escrow returns the account holding scheme funds.
func (c *Client) Escrow() model.Address {
	return model.ApplicationAddress(c.app)
}

func (c *Client) call(method string, args [][]byte, accounts []model.Address, boxes ...[]byte) contract.Call {
	return contract.Call{App: c.app, Method: method, Args: args, Accounts: accounts, Boxes: boxes}
}

// adminCall references the sender's secondary authority box so the contract
// can check it.
func (c *Client) adminCall(from contract.Account, method string, args [][]byte, accounts []model.Address, boxes ...[]byte) contract.Call {
	return c.call(method, args, accounts, append(boxes, storage.AdminKey(from.Address()))...)
}

func (c *Client) execute(ctx context.Context, op string, items ...composer.Item) (*composer.Outcome, []model.TxID, error) {
	out, err := c.exec.Execute(ctx, items)
	if err != nil {
		c.logger.Warn("group failed", zap.String("op", op), zap.Error(err))
		return out, contract.TxIDs(out), apperr.Wrap(op, err)
	}
	return out, out.TxIDs, nil
}

// CreateScheme creates a DRAFT scheme and returns its id. The id is predicted
// from scheme_count so the new box can be referenced.
func (c *Client) CreateScheme(ctx context.Context, from contract.Account, cfg dmodel.SchemeConfig) (uint64, []model.TxID, error) {
	const op = "create scheme"
	if err := cfg.Validate(c.clock.Now()); err != nil {
		return 0, nil, err
	}
	deadline, err := safe.Uint64(cfg.Deadline.Unix())
	if err != nil {
		return 0, nil, apperr.Validation(op, "deadline: %v", err)
	}
	stats, err := c.Stats(ctx)
	if err != nil {
		return 0, nil, apperr.Wrap(op, err)
	}
	id := stats.TotalSchemes + 1
	key := storage.SchemeKey(id)

	args := [][]byte{[]byte(cfg.Name), contract.Uint64(cfg.Budget), contract.Uint64(cfg.Payout), contract.Uint64(deadline)}
	out, ids, err := c.execute(ctx, op,
		contract.Payment(from, c.Escrow(), storage.BoxCost(key, storage.SchemeRecordSize)),
		c.adminCall(from, programfactory.MethodCreateScheme, args, nil, key).Item(from),
	)
	if err != nil {
		return 0, ids, err
	}
	got, ok := out.ReturnUint(1)
	if !ok {
		return 0, ids, apperr.Wrap(op, errors.New("create_scheme returned no id"))
	}
	c.logger.Info("scheme created", zap.Uint64("scheme_id", got), zap.String("name", cfg.Name))
	return got, ids, nil
}

// Fund transfers amount into the escrow on behalf of scheme id.
func (c *Client) Fund(ctx context.Context, from contract.Account, id, amount uint64) ([]model.TxID, error) {
	const op = "fund scheme"
	if amount == 0 {
		return nil, apperr.Validation(op, "amount must be positive")
	}
	_, ids, err := c.execute(ctx, op,
		contract.Payment(from, c.Escrow(), amount),
		c.call(programfactory.MethodFundScheme, [][]byte{contract.Uint64(id)}, nil, storage.SchemeKey(id)).Item(from),
	)
	return ids, err
}

func (c *Client) schemeAction(ctx context.Context, op, method string, inner bool, from contract.Account, id uint64) ([]model.TxID, error) {
	call := c.adminCall(from, method, [][]byte{contract.Uint64(id)}, nil, storage.SchemeKey(id))
	call.Inner = inner
	_, ids, err := c.execute(ctx, op, call.Item(from))
	return ids, err
}

// Activate moves a DRAFT scheme to ACTIVE.
func (c *Client) Activate(ctx context.Context, from contract.Account, id uint64) ([]model.TxID, error) {
	return c.schemeAction(ctx, "activate scheme", programfactory.MethodActivateScheme, false, from, id)
}

// Pause moves an ACTIVE scheme to PAUSED.
func (c *Client) Pause(ctx context.Context, from contract.Account, id uint64) ([]model.TxID, error) {
	return c.schemeAction(ctx, "pause scheme", programfactory.MethodPauseScheme, false, from, id)
}

// Resume moves a PAUSED scheme back to ACTIVE.
func (c *Client) Resume(ctx context.Context, from contract.Account, id uint64) ([]model.TxID, error) {
	return c.schemeAction(ctx, "resume scheme", programfactory.MethodResumeScheme, false, from, id)
}

// Close cancels a scheme and refunds the unspent escrow to its authority.
func (c *Client) Close(ctx context.Context, from contract.Account, id uint64) ([]model.TxID, error) {
	return c.schemeAction(ctx, "close scheme", programfactory.MethodCloseScheme, true, from, id)
}

// Complete finishes a scheme and refunds the unspent escrow to its authority.
func (c *Client) Complete(ctx context.Context, from contract.Account, id uint64) ([]model.TxID, error) {
	return c.schemeAction(ctx, "complete scheme", programfactory.MethodCompleteScheme, true, from, id)
}

// Register enrols the sender as a beneficiary of scheme id.
func (c *Client) Register(ctx context.Context, from contract.Account, id uint64) ([]model.TxID, error) {
	key := storage.BeneficiaryKey(id, from.Address())
	_, ids, err := c.execute(ctx, "register beneficiary",
		contract.Payment(from, c.Escrow(), storage.BoxCost(key, storage.BeneficiaryRecordSize)),
		c.call(programfactory.MethodRegisterBeneficiary, [][]byte{contract.Uint64(id)}, nil, storage.SchemeKey(id), key).Item(from),
	)
	return ids, err
}

func (c *Client) review(ctx context.Context, op, method string, from contract.Account, id uint64, beneficiary model.Address) ([]model.TxID, error) {
	call := c.adminCall(from, method, [][]byte{contract.Uint64(id)}, []model.Address{beneficiary},
		storage.SchemeKey(id), storage.BeneficiaryKey(id, beneficiary))
	_, ids, err := c.execute(ctx, op, call.Item(from))
	return ids, err
}

// Verify marks a REGISTERED beneficiary VERIFIED.
func (c *Client) Verify(ctx context.Context, from contract.Account, id uint64, beneficiary model.Address) ([]model.TxID, error) {
	return c.review(ctx, "verify beneficiary", programfactory.MethodVerifyBeneficiary, from, id, beneficiary)
}

// Approve marks a REGISTERED or VERIFIED beneficiary APPROVED.
func (c *Client) Approve(ctx context.Context, from contract.Account, id uint64, beneficiary model.Address) ([]model.TxID, error) {
	return c.review(ctx, "approve beneficiary", programfactory.MethodApproveBeneficiary, from, id, beneficiary)
}

// Reject marks a non-terminal beneficiary REJECTED.
func (c *Client) Reject(ctx context.Context, from contract.Account, id uint64, beneficiary model.Address) ([]model.TxID, error) {
	return c.review(ctx, "reject beneficiary", programfactory.MethodRejectBeneficiary, from, id, beneficiary)
}

func (c *Client) releaseItem(from contract.Account, id uint64, beneficiary model.Address) composer.Item {
	call := c.adminCall(from, programfactory.MethodReleaseFunds, [][]byte{contract.Uint64(id)}, []model.Address{beneficiary},
		storage.SchemeKey(id), storage.BeneficiaryKey(id, beneficiary))
	call.Inner = true
	return call.Item(from)
}

// Release pays the scheme payout to an APPROVED beneficiary.
func (c *Client) Release(ctx context.Context, from contract.Account, id uint64, beneficiary model.Address) ([]model.TxID, error) {
	_, ids, err := c.execute(ctx, "release funds", c.releaseItem(from, id, beneficiary))
	return ids, err
}

// BatchRelease pays several beneficiaries of one scheme in one atomic group.
func (c *Client) BatchRelease(ctx context.Context, from contract.Account, id uint64, beneficiaries []model.Address) ([]model.TxID, error) {
	const op = "batch release"
	if len(beneficiaries) == 0 {
		return nil, apperr.Validation(op, "no beneficiaries")
	}
	if len(beneficiaries) > c.maxRelease {
		return nil, apperr.Validation(op, "%d releases exceed the group limit of %d", len(beneficiaries), c.maxRelease)
	}
	items := make([]composer.Item, len(beneficiaries))
	for i, b := range beneficiaries {
		items[i] = c.releaseItem(from, id, b)
	}
	_, ids, err := c.execute(ctx, op, items...)
	return ids, err
}

// UpdateAuthority hands the primary authority over to next.
func (c *Client) UpdateAuthority(ctx context.Context, from contract.Account, next model.Address) ([]model.TxID, error) {
	call := c.call(programfactory.MethodUpdateAuthority, [][]byte{next.Bytes()}, nil)
	_, ids, err := c.execute(ctx, "update authority", call.Item(from))
	return ids, err
}

// AddSecondaryAuthority registers admin as a secondary authority.
func (c *Client) AddSecondaryAuthority(ctx context.Context, from contract.Account, admin model.Address) ([]model.TxID, error) {
	key := storage.AdminKey(admin)
	_, ids, err := c.execute(ctx, "add secondary authority",
		contract.Payment(from, c.Escrow(), storage.BoxCost(key, storage.AdminRecordSize)),
		c.call(programfactory.MethodAddSecondary, nil, []model.Address{admin}, key).Item(from),
	)
	return ids, err
}

// RemoveSecondaryAuthority drops admin from the secondary authorities.
func (c *Client) RemoveSecondaryAuthority(ctx context.Context, from contract.Account, admin model.Address) ([]model.TxID, error) {
	call := c.call(programfactory.MethodRemoveSecondary, nil, []model.Address{admin}, storage.AdminKey(admin))
	_, ids, err := c.execute(ctx, "remove secondary authority", call.Item(from))
	return ids, err
}

// Stats reads the factory counters.
func (c *Client) Stats(ctx context.Context) (dmodel.FactoryStats, error) {
	st, err := c.ledger.ApplicationState(ctx, c.app)
	if err != nil {
		return dmodel.FactoryStats{}, fmt.Errorf("read factory state: %w", err)
	}
	return dmodel.FactoryStats{
		TotalSchemes:       st.Uint(programfactory.KeySchemeCount),
		TotalFunded:        st.Uint(programfactory.KeyTotalFunded),
		TotalDisbursed:     st.Uint(programfactory.KeyTotalDisbursed),
		TotalBeneficiaries: st.Uint(programfactory.KeyTotalBeneficiaries),
		Authority:          st.Address(programfactory.KeyAuthority),
	}, nil
}

// Scheme reads one scheme. A missing scheme yields ledger.ErrNotFound.
func (c *Client) Scheme(ctx context.Context, id uint64) (dmodel.Scheme, error) {
	box, err := c.ledger.Box(ctx, c.app, storage.SchemeKey(id))
	if err != nil {
		return dmodel.Scheme{}, fmt.Errorf("read scheme %d: %w", id, err)
	}
	return storage.DecodeScheme(id, box.Value)
}

// Schemes enumerates every scheme by prefix scan, in id order.
func (c *Client) Schemes(ctx context.Context) ([]dmodel.Scheme, error) {
	names, err := c.ledger.BoxNames(ctx, c.app, storage.SchemePrefix)
	if err != nil {
		return nil, fmt.Errorf("list schemes: %w", err)
	}
	ids := make([]uint64, 0, len(names))
	for _, name := range names {
		id, err := storage.ParseSchemeKey(name)
		if err != nil {
			c.logger.Warn("skip foreign box", zap.ByteString("name", name))
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return workerpool.Map(ctx, c.workers, ids, c.Scheme)
}

// Beneficiary reads the record of addr in scheme id.
func (c *Client) Beneficiary(ctx context.Context, id uint64, addr model.Address) (dmodel.Beneficiary, error) {
	box, err := c.ledger.Box(ctx, c.app, storage.BeneficiaryKey(id, addr))
	if err != nil {
		return dmodel.Beneficiary{}, fmt.Errorf("read beneficiary %s of scheme %d: %w", addr, id, err)
	}
	return storage.DecodeBeneficiary(id, addr, box.Value)
}

// Beneficiaries enumerates the beneficiaries of scheme id.
func (c *Client) Beneficiaries(ctx context.Context, id uint64) ([]dmodel.Beneficiary, error) {
	names, err := c.ledger.BoxNames(ctx, c.app, storage.BeneficiarySchemePrefix(id))
	if err != nil {
		return nil, fmt.Errorf("list beneficiaries of scheme %d: %w", id, err)
	}
	addrs := make([]model.Address, 0, len(names))
	for _, name := range names {
		sid, addr, err := storage.ParseBeneficiaryKey(name)
		if err != nil || sid != id {
			continue
		}
		addrs = append(addrs, addr)
	}
	return workerpool.Map(ctx, c.workers, addrs, func(ctx context.Context, addr model.Address) (dmodel.Beneficiary, error) {
		return c.Beneficiary(ctx, id, addr)
	})
}

// Role reports whether addr administers the factory.
func (c *Client) Role(ctx context.Context, addr model.Address) (dmodel.AdminRole, error) {
	stats, err := c.Stats(ctx)
	if err != nil {
		return dmodel.RoleNone, err
	}
	if stats.Authority == addr {
		return dmodel.RolePrimary, nil
	}
	_, err = c.ledger.Box(ctx, c.app, storage.AdminKey(addr))
	switch {
	case err == nil:
		return dmodel.RoleSecondary, nil
	case errors.Is(err, ledger.ErrNotFound):
		return dmodel.RoleNone, nil
	default:
		return dmodel.RoleNone, fmt.Errorf("read admin box: %w", err)
	}
}

// IsAuthorizedAdmin reports whether addr is the primary or a secondary authority.
func (c *Client) IsAuthorizedAdmin(ctx context.Context, addr model.Address) (bool, error) {
	role, err := c.Role(ctx, addr)
	return role != dmodel.RoleNone, err
}

// Transactions pages through the factory's confirmed calls.
func (c *Client) Transactions(ctx context.Context, limit int, next string) (*model.HistoryPage, error) {
	page, err := c.ledger.History(ctx, model.HistoryQuery{AppID: c.app, Limit: limit, Next: next})
	if err != nil {
		return nil, fmt.Errorf("read factory history: %w", err)
	}
	return page, nil
}
