// Package signer bridges externally custodied wallets to group submission.
// Nothing in this package ever sees private key material.
package signer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"go.uber.org/zap"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// ErrDeclined is returned when the wallet owner refuses to sign.
var ErrDeclined = errors.New("signing declined by wallet")

// Signer signs the operations at indexes of a proposed group and returns the
// signed bytes in ascending index order, or ErrDeclined.
type Signer interface {
	Sign(ctx context.Context, group []model.Operation, indexes []int) ([][]byte, error)
}

// WalletTransaction is one entry of a wallet signing request. An empty Signers
// list asks the wallet to skip the entry.
type WalletTransaction struct {
	Operation model.Operation
	Signers   []model.Address
}

// Wallet is an out-of-process signer that holds the keys.
type Wallet interface {
	SignTransactions(ctx context.Context, txns []WalletTransaction) ([][]byte, error)
}

// WalletSigner signs on behalf of one account through a Wallet.
type WalletSigner struct {
	wallet  Wallet
	account model.Address
	logger  *zap.Logger
}

// NewWalletSigner constructs a WalletSigner for account.
func NewWalletSigner(wallet Wallet, account model.Address, logger *zap.Logger) (*WalletSigner, error) {
	if wallet == nil {
		return nil, errors.New("wallet is required")
	}
	if account.IsZero() {
		return nil, errors.New("signer account is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalletSigner{
		wallet:  wallet,
		account: account,
		logger:  logger.Named("wallet_signer").With(zap.Stringer("account", account)),
	}, nil
}

// Address returns the account this signer acts for.
func (s *WalletSigner) Address() model.Address {
	return s.account
}

func (s *WalletSigner) Sign(ctx context.Context, group []model.Operation, indexes []int) ([][]byte, error) {
	if len(indexes) == 0 {
		return nil, nil
	}
	wanted := make(map[int]struct{}, len(indexes))
	for _, i := range indexes {
		if i < 0 || i >= len(group) {
			return nil, fmt.Errorf("sign index %d out of range [0, %d)", i, len(group))
		}
		wanted[i] = struct{}{}
	}

	txns := make([]WalletTransaction, len(group))
	for i, op := range group {
		txns[i].Operation = op
		if _, ok := wanted[i]; ok {
			txns[i].Signers = []model.Address{s.account}
		} else {
			txns[i].Signers = []model.Address{}
		}
	}

	signed, err := s.wallet.SignTransactions(ctx, txns)
	if err != nil {
		if IsDeclined(err) {
			s.logger.Info("wallet declined signing", zap.Int("operations", len(indexes)))
			if errors.Is(err, ErrDeclined) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %v", ErrDeclined, err)
		}
		return nil, fmt.Errorf("wallet sign: %w", err)
	}

	return reassemble(signed, len(group), indexes)
}

// reassemble keeps only the entries for indexes, sorted ascending whatever
// order the caller gave. Wallets may answer with one slot per group position
// or with just the signed entries, and the latter carry no index.
func reassemble(signed [][]byte, groupSize int, indexes []int) ([][]byte, error) {
	ordered := append([]int(nil), indexes...)
	sort.Ints(ordered)

	out := make([][]byte, 0, len(ordered))
	if len(signed) == groupSize {
		for _, i := range ordered {
			if len(signed[i]) == 0 {
				return nil, fmt.Errorf("wallet returned no signature for operation %d", i)
			}
			out = append(out, signed[i])
		}
		return out, nil
	}

	for _, b := range signed {
		if len(b) > 0 {
			out = append(out, b)
		}
	}
	if len(out) != len(ordered) {
		return nil, fmt.Errorf("wallet returned %d signatures, expected %d", len(out), len(ordered))
	}
	return out, nil
}

// declinePhrases are the refusal messages wallets send when the user
// dismisses a signing request.
var declinePhrases = []string{
	"user rejected request",
	"user rejected the request",
	"rejected by user",
	"declined by user",
	"user declined",
}

// IsDeclined reports whether err means the user refused to sign. Transport
// errors that merely mention a rejection do not count.
func IsDeclined(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDeclined) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, phrase := range declinePhrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
