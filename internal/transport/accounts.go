package transport

import (
	"errors"

	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/signer"
	"go.uber.org/zap"
)

// WalletAccounts signs for any address through one wallet bridge. The wallet
// decides whether it holds the key.
type WalletAccounts struct {
	wallet signer.Wallet
	logger *zap.Logger
}

var _ Accounts = (*WalletAccounts)(nil)

func NewWalletAccounts(wallet signer.Wallet, logger *zap.Logger) (*WalletAccounts, error) {
	if wallet == nil {
		return nil, errors.New("wallet is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &WalletAccounts{wallet: wallet, logger: logger}, nil
}

func (a *WalletAccounts) Account(addr model.Address) (contract.Account, error) {
	return signer.NewWalletSigner(a.wallet, addr, a.logger)
}
