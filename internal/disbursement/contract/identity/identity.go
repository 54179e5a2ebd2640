// Package identity is the client of the citizen identity registry.
package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/apperr"
	"github.com/goodnatureofminers/benefitchain-backend/internal/composer"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract"
	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	programidentity "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/program/identity"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/pkg/workerpool"
	"go.uber.org/zap"
)

// Ledger is the read side the client needs.
type Ledger interface {
	ApplicationState(ctx context.Context, app model.AppID) (model.State, error)
	AccountApplicationState(ctx context.Context, account model.Address, app model.AppID) (model.State, error)
}

// Client talks to one registry deployment.
type Client struct {
	ledger Ledger
	exec   contract.Executor
	app    model.AppID
	logger *zap.Logger
}

// New constructs a Client for app.
func New(l Ledger, exec contract.Executor, app model.AppID, logger *zap.Logger) (*Client, error) {
	if l == nil {
		return nil, errors.New("ledger is required")
	}
	if exec == nil {
		return nil, errors.New("executor is required")
	}
	if app == 0 {
		return nil, errors.New("identity app id is required")
	}
	return &Client{
		ledger: l,
		exec:   exec,
		app:    app,
		logger: logger.Named("identity_client").With(zap.Uint64("app_id", uint64(app))),
	}, nil
}

// Deploy creates a registry administered by authority.
func Deploy(ctx context.Context, exec contract.Executor, creator contract.Account, authority model.Address) (model.AppID, []model.TxID, error) {
	app, ids, err := contract.Deploy(ctx, exec, creator, programidentity.ProgramName, nil, []model.Address{authority})
	if err != nil {
		return app, ids, apperr.Wrap("deploy identity registry", err)
	}
	return app, ids, nil
}

func (c *Client) AppID() model.AppID {
	return c.app
}

func (c *Client) execute(ctx context.Context, op string, items ...composer.Item) (*composer.Outcome, []model.TxID, error) {
	out, err := c.exec.Execute(ctx, items)
	if err != nil {
		c.logger.Warn("group failed", zap.String("op", op), zap.Error(err))
		return out, contract.TxIDs(out), apperr.Wrap(op, err)
	}
	return out, out.TxIDs, nil
}

// OptIn allocates the citizen's local record.
func (c *Client) OptIn(ctx context.Context, citizen contract.Account) ([]model.TxID, error) {
	_, ids, err := c.execute(ctx, "opt in to identity registry", contract.OptIn(citizen, c.app))
	return ids, err
}

// Mint creates the sender's identity. nationalID is hashed here and never
// leaves the caller in clear. When optIn is set the opt-in rides in the same group.
func (c *Client) Mint(ctx context.Context, citizen contract.Account, name, nationalID string, optIn bool) (uint64, []model.TxID, error) {
	const op = "mint identity"
	if name == "" {
		return 0, nil, apperr.Validation(op, "name is required")
	}
	if nationalID == "" {
		return 0, nil, apperr.Validation(op, "national id is required")
	}
	var items []composer.Item
	if optIn {
		items = append(items, contract.OptIn(citizen, c.app))
	}
	call := contract.Call{
		App:    c.app,
		Method: programidentity.MethodMintIdentity,
		Args:   [][]byte{[]byte(name), []byte(dmodel.HashNationalID(nationalID))},
	}
	items = append(items, call.Item(citizen))
	out, ids, err := c.execute(ctx, op, items...)
	if err != nil {
		return 0, ids, err
	}
	id, ok := out.ReturnUint(len(items) - 1)
	if !ok {
		return 0, ids, apperr.Wrap(op, errors.New("mint_identity returned no id"))
	}
	return id, ids, nil
}

func (c *Client) adminCall(ctx context.Context, op, method string, authority contract.Account, citizen model.Address, arg uint64) ([]model.TxID, error) {
	call := contract.Call{
		App:      c.app,
		Method:   method,
		Accounts: []model.Address{citizen},
	}
	if method != programidentity.MethodRevokeIdentity {
		call.Args = [][]byte{contract.Uint64(arg)}
	}
	_, ids, err := c.execute(ctx, op, call.Item(authority))
	return ids, err
}

// VerifyKYC sets the citizen's KYC level.
func (c *Client) VerifyKYC(ctx context.Context, authority contract.Account, citizen model.Address, level dmodel.KYCLevel) ([]model.TxID, error) {
	if level > dmodel.KYCComplete {
		return nil, apperr.Validation("verify kyc", "kyc level %d out of range", level)
	}
	return c.adminCall(ctx, "verify kyc", programidentity.MethodVerifyKYC, authority, citizen, uint64(level))
}

// UpdateEligibility replaces the citizen's eligibility categories.
func (c *Client) UpdateEligibility(ctx context.Context, authority contract.Account, citizen model.Address, e dmodel.Eligibility) ([]model.TxID, error) {
	return c.adminCall(ctx, "update eligibility", programidentity.MethodUpdateEligibility, authority, citizen, uint64(e.Pack()))
}

// Revoke deactivates the citizen's identity. The record is kept.
func (c *Client) Revoke(ctx context.Context, authority contract.Account, citizen model.Address) ([]model.TxID, error) {
	return c.adminCall(ctx, "revoke identity", programidentity.MethodRevokeIdentity, authority, citizen, 0)
}

// Identity reads the identity of addr. An account that never opted in or
// minted yields ledger.ErrNotFound.
func (c *Client) Identity(ctx context.Context, addr model.Address) (dmodel.Identity, error) {
	st, err := c.ledger.AccountApplicationState(ctx, addr, c.app)
	if err != nil {
		return dmodel.Identity{}, fmt.Errorf("read identity of %s: %w", addr, err)
	}
	id := st.Uint(programidentity.KeyIdentityID)
	if id == 0 {
		return dmodel.Identity{}, fmt.Errorf("identity of %s: %w", addr, ledger.ErrNotFound)
	}
	return dmodel.Identity{
		Address:     addr,
		IdentityID:  id,
		Name:        string(st.Bytes(programidentity.KeyName)),
		IDHash:      string(st.Bytes(programidentity.KeyIDHash)),
		KYCLevel:    dmodel.KYCLevel(st.Uint(programidentity.KeyKYCLevel)),
		Eligibility: dmodel.UnpackEligibility(uint8(st.Uint(programidentity.KeyEligibilityFlags))),
		Active:      st.Uint(programidentity.KeyIsActive) == 1,
		MintedAt:    unixTime(st.Uint(programidentity.KeyMintedAt)),
	}, nil
}

// Identities reads the identities of addrs, skipping accounts without one.
func (c *Client) Identities(ctx context.Context, addrs []model.Address) ([]dmodel.Identity, error) {
	type found struct {
		id dmodel.Identity
		ok bool
	}
	res, err := workerpool.Map(ctx, 4, addrs, func(ctx context.Context, addr model.Address) (found, error) {
		id, err := c.Identity(ctx, addr)
		if errors.Is(err, ledger.ErrNotFound) {
			return found{}, nil
		}
		return found{id: id, ok: err == nil}, err
	})
	if err != nil {
		return nil, err
	}
	out := make([]dmodel.Identity, 0, len(res))
	for _, r := range res {
		if r.ok {
			out = append(out, r.id)
		}
	}
	return out, nil
}

// CountEligible counts active identities among addrs that cover required.
func (c *Client) CountEligible(ctx context.Context, addrs []model.Address, required dmodel.Eligibility) (int, error) {
	ids, err := c.Identities(ctx, addrs)
	if err != nil {
		return 0, err
	}
	return dmodel.CountEligible(ids, required), nil
}

// Stats reads the registry counters.
func (c *Client) Stats(ctx context.Context) (dmodel.IdentityStats, error) {
	st, err := c.ledger.ApplicationState(ctx, c.app)
	if err != nil {
		return dmodel.IdentityStats{}, fmt.Errorf("read registry state: %w", err)
	}
	return dmodel.IdentityStats{
		TotalIdentities:  st.Uint(programidentity.KeyTotalIdentities),
		ActiveIdentities: st.Uint(programidentity.KeyActiveIdentities),
		RevokedCount:     st.Uint(programidentity.KeyRevokedCount),
		Authority:        st.Address(programidentity.KeyAuthority),
	}, nil
}

func unixTime(sec uint64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0).UTC()
}
