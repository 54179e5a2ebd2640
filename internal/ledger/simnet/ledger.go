// Package simnet is an in-memory ledger that hosts contract programs with
// atomic group semantics. It backs scenario tests and the local development node.
package simnet

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/program"
	"go.uber.org/zap"
)

const (
	DefaultMinFee         = 1_000
	DefaultGenesisID      = "simnet-v1"
	DefaultValidityWindow = 1_000
)

// Option customises a Ledger.
type Option func(*Ledger)

// WithClock overrides the round timestamp source.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// WithMinFee overrides the per-operation minimum fee.
func WithMinFee(fee uint64) Option {
	return func(l *Ledger) {
		l.minFee = fee
	}
}

// WithGenesisID overrides the network identifier.
func WithGenesisID(id string) Option {
	return func(l *Ledger) {
		l.genesisID = id
	}
}

// Ledger is a single-node, instantly confirming ledger. Every accepted group
// produces one round.
type Ledger struct {
	mu        sync.Mutex
	logger    *zap.Logger
	programs  program.Registry
	genesisID string
	minFee    uint64
	now       func() time.Time

	round     model.Round
	state     *state
	confirmed map[model.TxID]model.PendingInfo
	history   []model.HistoryTransaction
}

// New creates an empty ledger hosting programs.
func New(logger *zap.Logger, programs program.Registry, opts ...Option) *Ledger {
	l := &Ledger{
		logger:    logger.Named("simnet"),
		programs:  programs,
		genesisID: DefaultGenesisID,
		minFee:    DefaultMinFee,
		now:       time.Now,
		state:     newState(),
		confirmed: make(map[model.TxID]model.PendingInfo),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewAccount derives a deterministic account address from a seed, for fixtures.
func NewAccount(seed string) model.Address {
	return model.Address(chainhash.HashH([]byte("account:" + seed)))
}

// Signature computes the simulated signature simnet expects from signer for txID.
func Signature(txID model.TxID, signer model.Address) []byte {
	buf := make([]byte, 0, 3+len(txID)+model.AddressSize)
	buf = append(buf, "SIG"...)
	buf = append(buf, txID...)
	buf = append(buf, signer[:]...)
	return chainhash.HashB(buf)
}

// Fund credits amount to addr out of thin air. It is the development faucet.
func (l *Ledger) Fund(addr model.Address, amount uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state.account(addr).balance += amount
}

// Balance returns the native balance of addr.
func (l *Ledger) Balance(addr model.Address) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	if acc, ok := l.state.accounts[addr]; ok {
		return acc.balance
	}
	return 0
}

// AssetHolding returns the holding of addr for asset and whether addr opted in.
func (l *Ledger) AssetHolding(addr model.Address, id model.AssetID) (amount uint64, frozen bool, optedIn bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.state.accounts[addr]
	if !ok {
		return 0, false, false
	}
	h, ok := acc.holdings[id]
	if !ok {
		return 0, false, false
	}
	return h.amount, h.frozen, true
}

// AssetParams returns the parameters of an existing asset.
func (l *Ledger) AssetParams(id model.AssetID) (model.AssetParams, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	as, ok := l.state.assets[id]
	if !ok {
		return model.AssetParams{}, ledger.ErrNotFound
	}
	return as.params, nil
}

// Status returns the last committed round.
func (l *Ledger) Status(ctx context.Context) (model.NodeStatus, error) {
	if err := ctx.Err(); err != nil {
		return model.NodeStatus{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return model.NodeStatus{LastRound: l.round}, nil
}

func (l *Ledger) SuggestedParams(ctx context.Context) (model.SuggestedParams, error) {
	if err := ctx.Err(); err != nil {
		return model.SuggestedParams{}, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return model.SuggestedParams{
		MinFee:     l.minFee,
		FirstValid: l.round,
		LastValid:  l.round + DefaultValidityWindow,
		GenesisID:  l.genesisID,
	}, nil
}

func (l *Ledger) SendGroup(ctx context.Context, signed [][]byte) (model.TxID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(signed) == 0 {
		return "", errors.New("empty group")
	}
	if len(signed) > model.MaxGroupSize {
		return "", fmt.Errorf("%w: %d operations", ledger.ErrGroupTooLarge, len(signed))
	}

	group := make([]model.SignedOperation, len(signed))
	for i, raw := range signed {
		s, err := model.DecodeSigned(raw)
		if err != nil {
			return "", ledger.Reject(i, "malformed operation: %v", err)
		}
		group[i] = s
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	infos, err := l.apply(group)
	if err != nil {
		l.logger.Debug("group rejected", zap.Error(err))
		return "", err
	}
	return infos[0].TxID, nil
}

func (l *Ledger) WaitForConfirmation(ctx context.Context, txID model.TxID, _ uint64) (*model.PendingInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	info, ok := l.confirmed[txID]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return &info, nil
}

// PendingInfo returns the confirmation record of txID.
func (l *Ledger) PendingInfo(ctx context.Context, txID model.TxID) (*model.PendingInfo, error) {
	return l.WaitForConfirmation(ctx, txID, 0)
}

func (l *Ledger) ApplicationState(ctx context.Context, app model.AppID) (model.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.state.apps[app]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return a.global.Clone(), nil
}

func (l *Ledger) AccountApplicationState(ctx context.Context, addr model.Address, app model.AppID) (model.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.state.accounts[addr]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	st, ok := acc.local[app]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return st.Clone(), nil
}

func (l *Ledger) Box(ctx context.Context, app model.AppID, name []byte) (*model.Box, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.state.apps[app]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	v, ok := a.boxes[string(name)]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	value := make([]byte, len(v))
	copy(value, v)
	return &model.Box{Name: append([]byte(nil), name...), Value: value, Round: l.round}, nil
}

func (l *Ledger) BoxNames(ctx context.Context, app model.AppID, prefix []byte) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	a, ok := l.state.apps[app]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	return a.boxNames(prefix), nil
}

func (l *Ledger) History(ctx context.Context, q model.HistoryQuery) (*model.HistoryPage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := 0
	if q.Next != "" {
		n, err := strconv.Atoi(q.Next)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid next token %q", q.Next)
		}
		start = n
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	page := &model.HistoryPage{}
	i := start
	for ; i < len(l.history) && len(page.Transactions) < limit; i++ {
		tx := l.history[i]
		if tx.Type != model.TypeAppCall || tx.AppID != q.AppID {
			continue
		}
		page.Transactions = append(page.Transactions, tx)
	}
	// The token always points past the scanned range so followers can resume from it.
	page.Next = strconv.Itoa(i)
	return page, nil
}
