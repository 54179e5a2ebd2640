package simnet

import (
	"context"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/signer"
)

// Wallet stands in for an external wallet during development and tests. It
// produces the simulated signatures simnet accepts for the accounts it manages.
type Wallet struct {
	mu       sync.Mutex
	accounts map[model.Address]struct{}
	decline  bool
	requests int
}

var _ signer.Wallet = (*Wallet)(nil)

// NewWallet manages accounts.
func NewWallet(accounts ...model.Address) *Wallet {
	w := &Wallet{accounts: make(map[model.Address]struct{})}
	w.Add(accounts...)
	return w
}

// Add registers more managed accounts.
func (w *Wallet) Add(accounts ...model.Address) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, a := range accounts {
		w.accounts[a] = struct{}{}
	}
}

// SetDecline makes every following request fail as if the user refused it.
func (w *Wallet) SetDecline(decline bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.decline = decline
}

// Requests returns the number of signing requests received.
func (w *Wallet) Requests() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.requests
}

func (w *Wallet) SignTransactions(ctx context.Context, txns []signer.WalletTransaction) ([][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.requests++
	if w.decline {
		return nil, signer.ErrDeclined
	}

	out := make([][]byte, len(txns))
	for i, txn := range txns {
		if len(txn.Signers) == 0 {
			continue
		}
		if len(txn.Signers) > 1 {
			return nil, fmt.Errorf("operation %d: multisig is not supported", i)
		}
		who := txn.Signers[0]
		if _, ok := w.accounts[who]; !ok {
			return nil, fmt.Errorf("operation %d: account %s is not managed by this wallet", i, who)
		}
		id, err := txn.Operation.ID()
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		raw, err := model.EncodeSigned(model.SignedOperation{
			Operation: txn.Operation,
			Signer:    who,
			Signature: Signature(id, who),
		})
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		out[i] = raw
	}
	return out, nil
}
