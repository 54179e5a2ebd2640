// Package audit follows the factory contract's history and records the
// events it emits.
package audit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/clock"
	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/pkg/batcher"
	"go.uber.org/zap"
)

// Config tunes the ingester.
type Config struct {
	App           model.AppID
	PageSize      int
	PollInterval  time.Duration
	FlushSize     int
	FlushInterval time.Duration
	// FlushRPS caps repository writes per second.
	FlushRPS int
}

// Ingester copies contract events into the audit repository. Progress is
// derived from what was stored, so a restarted ingester resumes from the
// newest stored page.
type Ingester struct {
	cfg     Config
	history History
	repo    Repository
	metrics Metrics
	logger  *zap.Logger
}

func NewIngester(cfg Config, history History, repo Repository, metrics Metrics, logger *zap.Logger) (*Ingester, error) {
	if cfg.App == 0 {
		return nil, errors.New("app id is required")
	}
	if history == nil {
		return nil, errors.New("history is required")
	}
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	if metrics == nil {
		return nil, errors.New("metrics is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.FlushSize <= 0 {
		cfg.FlushSize = 500
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = time.Second
	}
	if cfg.FlushRPS <= 0 {
		cfg.FlushRPS = 10
	}
	return &Ingester{
		cfg:     cfg,
		history: history,
		repo:    repo,
		metrics: metrics,
		logger:  logger.Named("audit_ingester").With(zap.Uint64("app_id", uint64(cfg.App))),
	}, nil
}

func (i *Ingester) store(ctx context.Context, events []dmodel.AuditEvent) error {
	started := time.Now()
	err := i.repo.InsertEvents(ctx, events)
	i.metrics.ObserveStoreBatch(err, len(events), started)
	return err
}

// Run follows the history until ctx is canceled or storing fails.
func (i *Ingester) Run(ctx context.Context) error {
	token, err := i.repo.ResumeToken(ctx, i.cfg.App)
	if err != nil {
		return fmt.Errorf("read resume token: %w", err)
	}
	i.logger.Info("audit ingester started", zap.String("token", token))

	b := batcher.New(i.logger, i.store, i.cfg.FlushSize, i.cfg.FlushInterval, i.cfg.FlushRPS)
	b.Start(ctx)
	defer b.Stop()

	for {
		if err := b.Err(); err != nil {
			return fmt.Errorf("store events: %w", err)
		}

		started := time.Now()
		page, err := i.history.Transactions(ctx, i.cfg.PageSize, token)
		i.metrics.ObserveFetchPage(err, started)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			i.logger.Warn("fetch history page", zap.String("token", token), zap.Error(err))
			if err := clock.SleepWithContext(ctx, i.cfg.PollInterval); err != nil {
				return nil
			}
			continue
		}

		for _, tx := range page.Transactions {
			for _, ev := range Decode(i.cfg.App, tx, token) {
				if err := b.Add(ctx, ev); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return fmt.Errorf("queue event: %w", err)
				}
			}
			i.metrics.ObserveCursor(uint64(tx.ConfirmedRound))
		}

		if page.Next != "" {
			token = page.Next
		}
		if len(page.Transactions) < i.cfg.PageSize {
			if err := clock.SleepWithContext(ctx, i.cfg.PollInterval); err != nil {
				return nil
			}
		}
	}
}
