package ledgerclient

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/goodnatureofminers/benefitchain-backend/internal/config"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"go.uber.org/zap"
)

// RetryingClient retries reads with exponential backoff. SendGroup and
// WaitForConfirmation are called exactly once: a write that may have reached
// the ledger must never be submitted again.
type RetryingClient struct {
	client Ledger
	policy config.Retry
	logger *zap.Logger
}

var _ ledger.Client = (*RetryingClient)(nil)

func NewRetryingClient(client Ledger, policy config.Retry, logger *zap.Logger) *RetryingClient {
	return &RetryingClient{
		client: client,
		policy: policy,
		logger: logger.Named("ledger_retry"),
	}
}

// retryable reports whether a failed read may succeed on another attempt.
func retryable(err error) bool {
	var rejected *ledger.RejectedError
	switch {
	case errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, ledger.ErrGroupTooLarge),
		errors.Is(err, context.Canceled),
		errors.As(err, &rejected):
		return false
	default:
		return true
	}
}

func (c *RetryingClient) backOff(ctx context.Context) backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if c.policy.InitialInterval > 0 {
		b.InitialInterval = c.policy.InitialInterval
	}
	b.MaxElapsedTime = c.policy.MaxElapsedTime
	return backoff.WithContext(backoff.WithMaxRetries(b, c.policy.MaxRetries), ctx)
}

func read[T any](ctx context.Context, c *RetryingClient, operation string, fn func() (T, error)) (T, error) {
	attempt := func() (T, error) {
		v, err := fn()
		if err != nil && !retryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("ledger read failed, retrying",
			zap.String("operation", operation),
			zap.Duration("wait", wait),
			zap.Error(err))
	}
	return backoff.RetryNotifyWithData(attempt, c.backOff(ctx), notify)
}

func (c *RetryingClient) SuggestedParams(ctx context.Context) (model.SuggestedParams, error) {
	return read(ctx, c, "suggested_params", func() (model.SuggestedParams, error) {
		return c.client.SuggestedParams(ctx)
	})
}

func (c *RetryingClient) SendGroup(ctx context.Context, signed [][]byte) (model.TxID, error) {
	return c.client.SendGroup(ctx, signed)
}

func (c *RetryingClient) WaitForConfirmation(ctx context.Context, txID model.TxID, waitRounds uint64) (*model.PendingInfo, error) {
	return c.client.WaitForConfirmation(ctx, txID, waitRounds)
}

func (c *RetryingClient) ApplicationState(ctx context.Context, app model.AppID) (model.State, error) {
	return read(ctx, c, "application_state", func() (model.State, error) {
		return c.client.ApplicationState(ctx, app)
	})
}

func (c *RetryingClient) AccountApplicationState(ctx context.Context, account model.Address, app model.AppID) (model.State, error) {
	return read(ctx, c, "account_application_state", func() (model.State, error) {
		return c.client.AccountApplicationState(ctx, account, app)
	})
}

func (c *RetryingClient) Box(ctx context.Context, app model.AppID, name []byte) (*model.Box, error) {
	return read(ctx, c, "box", func() (*model.Box, error) {
		return c.client.Box(ctx, app, name)
	})
}

func (c *RetryingClient) BoxNames(ctx context.Context, app model.AppID, prefix []byte) ([][]byte, error) {
	return read(ctx, c, "box_names", func() ([][]byte, error) {
		return c.client.BoxNames(ctx, app, prefix)
	})
}

func (c *RetryingClient) History(ctx context.Context, q model.HistoryQuery) (*model.HistoryPage, error) {
	return read(ctx, c, "history", func() (*model.HistoryPage, error) {
		return c.client.History(ctx, q)
	})
}
