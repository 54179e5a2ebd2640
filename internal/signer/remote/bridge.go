package remote

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/signer"
	"go.uber.org/zap"
)

const maxSignRequestBytes = 4 << 20

// Bridge serves the wallet bridge protocol on top of a local wallet. It backs
// development setups where no browser wallet is involved.
type Bridge struct {
	wallet signer.Wallet
	logger *zap.Logger
}

func NewBridge(wallet signer.Wallet, logger *zap.Logger) (*Bridge, error) {
	if wallet == nil {
		return nil, errors.New("wallet is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Bridge{wallet: wallet, logger: logger.Named("wallet_bridge")}, nil
}

func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SignRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSignRequestBytes)).Decode(&req); err != nil {
		http.Error(w, "decode request: "+err.Error(), http.StatusBadRequest)
		return
	}
	txns, err := decodeTransactions(req.Transactions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	logger := b.logger.With(zap.String("request_id", req.RequestID), zap.String("service_id", req.ServiceID))
	resp := SignResponse{RequestID: req.RequestID}
	signed, err := b.wallet.SignTransactions(r.Context(), txns)
	switch {
	case errors.Is(err, signer.ErrDeclined):
		logger.Info("signing declined")
		resp.Declined = true
		resp.Reason = err.Error()
	case err != nil:
		logger.Warn("signing failed", zap.Error(err))
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	default:
		logger.Debug("signed", zap.Int("transactions", len(txns)))
		resp.Signed = signed
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logger.Warn("write response", zap.Error(err))
	}
}

func decodeTransactions(in []signTransaction) ([]signer.WalletTransaction, error) {
	out := make([]signer.WalletTransaction, len(in))
	for i, t := range in {
		var op model.Operation
		if err := json.Unmarshal(t.Txn, &op); err != nil {
			return nil, fmt.Errorf("decode transaction %d: %w", i, err)
		}
		out[i] = signer.WalletTransaction{Operation: op, Signers: t.Signers}
	}
	return out, nil
}
