// Package simnettest wires a simnet ledger, a development wallet and a
// composer for tests that exercise contracts end to end.
package simnettest

import (
	"testing"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/clock"
	"github.com/goodnatureofminers/benefitchain-backend/internal/composer"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/program/factory"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/program/identity"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/program/treasury"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/program"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/simnet"
	"github.com/goodnatureofminers/benefitchain-backend/internal/signer"
	"go.uber.org/zap"
)

// Genesis is the starting time of every test ledger.
var Genesis = time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)

// Env is one isolated ledger with its wallet and composer.
type Env struct {
	Ledger   *simnet.Ledger
	Wallet   *simnet.Wallet
	Composer *composer.Composer
	Clock    *clock.Manual
	Logger   *zap.Logger
}

// Programs hosts every disbursement contract.
func Programs() program.Registry {
	return program.NewRegistry(factory.Program{}, treasury.Program{}, identity.Program{})
}

type nopMetrics struct{}

func (nopMetrics) ObserveGroup(error, int, time.Time) {}

// New builds an Env whose ledger time is driven by Env.Clock.
func New(t testing.TB) *Env {
	t.Helper()
	logger := zap.NewNop()
	clk := clock.NewManual(Genesis)
	l := simnet.New(logger, Programs(), simnet.WithClock(clk.Now))
	c, err := composer.New(l, nopMetrics{}, logger)
	if err != nil {
		t.Fatalf("composer: %v", err)
	}
	return &Env{Ledger: l, Wallet: simnet.NewWallet(), Composer: c, Clock: clk, Logger: logger}
}

// Account creates a funded account managed by the wallet.
func (e *Env) Account(t testing.TB, seed string, balance uint64) *signer.WalletSigner {
	t.Helper()
	addr := simnet.NewAccount(seed)
	e.Wallet.Add(addr)
	if balance > 0 {
		e.Ledger.Fund(addr, balance)
	}
	s, err := signer.NewWalletSigner(e.Wallet, addr, e.Logger)
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	return s
}

// Balance is a shortcut for the ledger balance of addr.
func (e *Env) Balance(addr model.Address) uint64 {
	return e.Ledger.Balance(addr)
}
