// Package remote talks to a wallet bridge over HTTP. The bridge forwards
// signing requests to the user's wallet and relays the answer.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/signer"
	"github.com/google/uuid"
)

const defaultTimeout = 2 * time.Minute

// Config holds client configuration.
type Config struct {
	BaseURL   string
	ServiceID string
	// Timeout bounds the whole round trip including the time the user needs to approve.
	Timeout time.Duration
}

// Client implements signer.Wallet against a wallet bridge.
type Client struct {
	baseURL    string
	serviceID  string
	httpClient *http.Client
	newID      func() string
}

var _ signer.Wallet = (*Client)(nil)

// New creates a wallet bridge client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("wallet bridge url is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		serviceID:  cfg.ServiceID,
		httpClient: &http.Client{Timeout: timeout},
		newID:      func() string { return uuid.NewString() },
	}, nil
}

type signTransaction struct {
	Txn     []byte          `json:"txn"`
	Signers []model.Address `json:"signers"`
}

// SignRequest is the body posted to the bridge.
type SignRequest struct {
	RequestID    string            `json:"request_id"`
	ServiceID    string            `json:"service_id,omitempty"`
	Transactions []signTransaction `json:"transactions"`
}

// SignResponse is the bridge answer. Signed has one slot per transaction;
// skipped entries are null.
type SignResponse struct {
	RequestID string   `json:"request_id"`
	Signed    [][]byte `json:"signed"`
	Declined  bool     `json:"declined"`
	Reason    string   `json:"reason,omitempty"`
}

func (c *Client) SignTransactions(ctx context.Context, txns []signer.WalletTransaction) ([][]byte, error) {
	req := SignRequest{
		RequestID:    c.newID(),
		ServiceID:    c.serviceID,
		Transactions: make([]signTransaction, len(txns)),
	}
	for i, txn := range txns {
		encoded, err := txn.Operation.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode transaction %d: %w", i, err)
		}
		signers := txn.Signers
		if signers == nil {
			signers = []model.Address{}
		}
		req.Transactions[i] = signTransaction{Txn: encoded, Signers: signers}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/sign", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", req.RequestID)
	if c.serviceID != "" {
		httpReq.Header.Set("X-Service-ID", c.serviceID)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden, http.StatusConflict:
		return nil, fmt.Errorf("%w: %s", signer.ErrDeclined, strings.TrimSpace(string(respBody)))
	default:
		return nil, fmt.Errorf("request failed: %s - %s", resp.Status, strings.TrimSpace(string(respBody)))
	}

	var result SignResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if result.Declined {
		return nil, fmt.Errorf("%w: %s", signer.ErrDeclined, result.Reason)
	}
	if len(result.Signed) != len(txns) {
		return nil, fmt.Errorf("bridge returned %d entries for %d transactions", len(result.Signed), len(txns))
	}
	return result.Signed, nil
}
