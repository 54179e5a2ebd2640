package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/benefitchain-backend/internal/clock"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultPollInterval = time.Second
	maxResponseBytes    = 8 << 20
)

// Config configures the JSON-RPC ledger client.
type Config struct {
	Endpoint     string
	Timeout      time.Duration
	PollInterval time.Duration
	// HTTPClient overrides the default client, mostly for tests.
	HTTPClient *http.Client
}

// Client implements ledger.Client against a JSON-RPC ledger node.
type Client struct {
	endpoint     string
	httpClient   *http.Client
	pollInterval time.Duration
	logger       *zap.Logger
	nextID       atomic.Uint64
}

var _ ledger.Client = (*Client)(nil)

// NewClient validates cfg and builds a Client.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	poll := cfg.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}
	return &Client{
		endpoint:     cfg.Endpoint,
		httpClient:   httpClient,
		pollInterval: poll,
		logger:       logger.Named("ledger_rpc"),
	}, nil
}

func (c *Client) call(ctx context.Context, method string, params []interface{}) (json.RawMessage, error) {
	req, err := btcjson.NewRequest(btcjson.RpcVersion2, c.nextID.Add(1), method, params)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal %s request: %w", method, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: http status %d: %w", method, resp.StatusCode, ledger.ErrUnavailable)
	}

	var rpcResp response
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", method, err)
	}
	if rpcResp.Error != nil {
		return nil, fromRPCError(method, rpcResp.Error)
	}
	return rpcResp.Result, nil
}

func (c *Client) callInto(ctx context.Context, method string, out interface{}, params ...interface{}) error {
	result, err := c.call(ctx, method, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(result, out); err != nil {
		return fmt.Errorf("decode %s result: %w", method, err)
	}
	return nil
}

func (c *Client) SuggestedParams(ctx context.Context) (model.SuggestedParams, error) {
	var sp model.SuggestedParams
	err := c.callInto(ctx, MethodSuggestedParams, &sp)
	return sp, err
}

func (c *Client) SendGroup(ctx context.Context, signed [][]byte) (model.TxID, error) {
	if len(signed) > model.MaxGroupSize {
		return "", fmt.Errorf("%w: %d operations", ledger.ErrGroupTooLarge, len(signed))
	}
	var txID model.TxID
	if err := c.callInto(ctx, MethodSendGroup, &txID, signed); err != nil {
		return "", err
	}
	c.logger.Debug("group submitted", zap.String("txid", string(txID)), zap.Int("size", len(signed)))
	return txID, nil
}

// Status returns the node's last committed round.
func (c *Client) Status(ctx context.Context) (model.NodeStatus, error) {
	result, err := c.call(ctx, MethodStatus, nil)
	if err != nil {
		return model.NodeStatus{}, err
	}
	last := gjson.GetBytes(result, "last-round")
	if !last.Exists() {
		return model.NodeStatus{}, fmt.Errorf("decode %s result: missing last-round", MethodStatus)
	}
	return model.NodeStatus{LastRound: model.Round(last.Uint())}, nil
}

// PendingInfo returns the current confirmation record of txID.
func (c *Client) PendingInfo(ctx context.Context, txID model.TxID) (*model.PendingInfo, error) {
	var info model.PendingInfo
	if err := c.callInto(ctx, MethodPendingInfo, &info, txID); err != nil {
		return nil, err
	}
	return &info, nil
}

// WaitForConfirmation polls the node until txID is confirmed or waitRounds
// rounds have been committed since the first poll.
func (c *Client) WaitForConfirmation(ctx context.Context, txID model.TxID, waitRounds uint64) (*model.PendingInfo, error) {
	status, err := c.Status(ctx)
	if err != nil {
		return nil, err
	}
	deadline := status.LastRound + model.Round(waitRounds)

	for {
		info, err := c.PendingInfo(ctx, txID)
		switch {
		case err == nil && info.Confirmed():
			return info, nil
		case err == nil && info.PoolError != "":
			return nil, &ledger.RejectedError{Index: -1, Reason: info.PoolError}
		case err != nil && !errors.Is(err, ledger.ErrNotFound):
			return nil, err
		}

		status, err = c.Status(ctx)
		if err != nil {
			return nil, err
		}
		if status.LastRound >= deadline {
			return nil, &ledger.TimeoutError{TxID: txID, Rounds: waitRounds}
		}
		if err := clock.SleepWithContext(ctx, c.pollInterval); err != nil {
			return nil, err
		}
	}
}

func (c *Client) ApplicationState(ctx context.Context, app model.AppID) (model.State, error) {
	var st model.State
	err := c.callInto(ctx, MethodApplicationState, &st, app)
	return st, err
}

func (c *Client) AccountApplicationState(ctx context.Context, account model.Address, app model.AppID) (model.State, error) {
	var st model.State
	err := c.callInto(ctx, MethodAccountApplicationState, &st, account, app)
	return st, err
}

func (c *Client) Box(ctx context.Context, app model.AppID, name []byte) (*model.Box, error) {
	var box model.Box
	if err := c.callInto(ctx, MethodBox, &box, app, name); err != nil {
		return nil, err
	}
	return &box, nil
}

func (c *Client) BoxNames(ctx context.Context, app model.AppID, prefix []byte) ([][]byte, error) {
	var names [][]byte
	err := c.callInto(ctx, MethodBoxNames, &names, app, prefix)
	return names, err
}

func (c *Client) History(ctx context.Context, q model.HistoryQuery) (*model.HistoryPage, error) {
	var page model.HistoryPage
	if err := c.callInto(ctx, MethodHistory, &page, q); err != nil {
		return nil, err
	}
	return &page, nil
}
