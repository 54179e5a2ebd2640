// Package treasury is the client of the milestone treasury contract.
package treasury

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/benefitchain-backend/internal/apperr"
	"github.com/goodnatureofminers/benefitchain-backend/internal/composer"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract"
	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	programtreasury "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/program/treasury"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"go.uber.org/zap"
)

// Ledger is the read side the client needs.
type Ledger interface {
	ApplicationState(ctx context.Context, app model.AppID) (model.State, error)
	AccountApplicationState(ctx context.Context, account model.Address, app model.AppID) (model.State, error)
}

// Client talks to one treasury deployment.
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
		return nil, errors.New("treasury app id is required")
	}
	return &Client{
		ledger: l,
		exec:   exec,
		app:    app,
		logger: logger.Named("treasury_client").With(zap.Uint64("app_id", uint64(app))),
	}, nil
}

// Deploy creates a treasury paying payout per student out of totalBudget.
func Deploy(ctx context.Context, exec contract.Executor, creator contract.Account, authority model.Address, totalBudget, payout uint64) (model.AppID, []model.TxID, error) {
	const op = "deploy treasury"
	if payout == 0 || payout > totalBudget {
		return 0, nil, apperr.Validation(op, "payout %d must be in (0, %d]", payout, totalBudget)
	}
	args := [][]byte{authority.Bytes(), contract.Uint64(totalBudget), contract.Uint64(payout)}
	app, ids, err := contract.Deploy(ctx, exec, creator, programtreasury.ProgramName, args, nil)
	if err != nil {
		return app, ids, apperr.Wrap(op, err)
	}
	return app, ids, nil
}

func (c *Client) AppID() model.AppID {
	return c.app
}

// Escrow returns the account payouts are made from.
func (c *Client) Escrow() model.Address {
	return model.ApplicationAddress(c.app)
}

func (c *Client) execute(ctx context.Context, op string, items ...composer.Item) ([]model.TxID, error) {
	out, err := c.exec.Execute(ctx, items)
	if err != nil {
		c.logger.Warn("group failed", zap.String("op", op), zap.Error(err))
		return contract.TxIDs(out), apperr.Wrap(op, err)
	}
	return out.TxIDs, nil
}

// Fund is a plain transfer into the treasury escrow.
func (c *Client) Fund(ctx context.Context, from contract.Account, amount uint64) ([]model.TxID, error) {
	if amount == 0 {
		return nil, apperr.Validation("fund treasury", "amount must be positive")
	}
	return c.execute(ctx, "fund treasury", contract.Payment(from, c.Escrow(), amount))
}

// OptIn allocates the student's local record.
func (c *Client) OptIn(ctx context.Context, student contract.Account) ([]model.TxID, error) {
	return c.execute(ctx, "opt in to treasury", contract.OptIn(student, c.app))
}

// Register marks the opted-in sender as a registered student.
func (c *Client) Register(ctx context.Context, student contract.Account) ([]model.TxID, error) {
	call := contract.Call{App: c.app, Method: programtreasury.MethodRegisterStudent}
	return c.execute(ctx, "register student", call.Item(student))
}

// MarkMilestoneComplete is called by the authority for student.
func (c *Client) MarkMilestoneComplete(ctx context.Context, authority contract.Account, student model.Address) ([]model.TxID, error) {
	call := contract.Call{App: c.app, Method: programtreasury.MethodMarkMilestone, Accounts: []model.Address{student}}
	return c.execute(ctx, "mark milestone complete", call.Item(authority))
}

// ReleasePayout pays student. The caller pays the doubled fee only.
func (c *Client) ReleasePayout(ctx context.Context, from contract.Account, student model.Address) ([]model.TxID, error) {
	call := contract.Call{App: c.app, Method: programtreasury.MethodReleasePayout, Accounts: []model.Address{student}, Inner: true}
	return c.execute(ctx, "release payout", call.Item(from))
}

// SetActive suspends or resumes payouts.
func (c *Client) SetActive(ctx context.Context, authority contract.Account, active bool) ([]model.TxID, error) {
	var v uint64
	if active {
		v = 1
	}
	call := contract.Call{App: c.app, Method: programtreasury.MethodSetActive, Args: [][]byte{contract.Uint64(v)}}
	return c.execute(ctx, "set treasury active", call.Item(authority))
}

// State reads the treasury globals.
func (c *Client) State(ctx context.Context) (dmodel.TreasuryState, error) {
	st, err := c.ledger.ApplicationState(ctx, c.app)
	if err != nil {
		return dmodel.TreasuryState{}, fmt.Errorf("read treasury state: %w", err)
	}
	return dmodel.TreasuryState{
		TotalBudget:  st.Uint(programtreasury.KeyTotalBudget),
		SpentBudget:  st.Uint(programtreasury.KeySpentBudget),
		PayoutAmount: st.Uint(programtreasury.KeyPayoutAmount),
		Active:       st.Uint(programtreasury.KeySchemeActive) == 1,
		Authority:    st.Address(programtreasury.KeyAuthority),
	}, nil
}

// Student reads the record of addr. A student who never opted in gets a
// zero record with OptedIn false.
func (c *Client) Student(ctx context.Context, addr model.Address) (dmodel.StudentRecord, error) {
	st, err := c.ledger.AccountApplicationState(ctx, addr, c.app)
	if errors.Is(err, ledger.ErrNotFound) {
		return dmodel.StudentRecord{Address: addr}, nil
	}
	if err != nil {
		return dmodel.StudentRecord{}, fmt.Errorf("read student %s: %w", addr, err)
	}
	return dmodel.StudentRecord{
		Address:            addr,
		OptedIn:            true,
		Registered:         st.Uint(programtreasury.KeyIsRegistered) == 1,
		MilestoneCompleted: st.Uint(programtreasury.KeyMilestoneCompleted) == 1,
		Paid:               st.Uint(programtreasury.KeyHasBeenPaid) == 1,
	}, nil
}

// IsOptedIn reports whether addr holds local state in the treasury.
func (c *Client) IsOptedIn(ctx context.Context, addr model.Address) (bool, error) {
	rec, err := c.Student(ctx, addr)
	return rec.OptedIn, err
}
