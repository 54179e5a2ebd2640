package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/composer"
	"github.com/goodnatureofminers/benefitchain-backend/internal/config"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/audit"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract/factory"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/repository/clickhouse"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/rpc"
	"github.com/goodnatureofminers/benefitchain-backend/internal/metrics"
	"github.com/goodnatureofminers/benefitchain-backend/internal/pkg/ledgerclient"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ingesterConfig struct {
	ClickhouseDSN  string        `long:"clickhouse-dsn" env:"AUDIT_INGESTER_CLICKHOUSE_DSN" description:"ClickHouse DSN" required:"true"`
	ProtocolConfig string        `long:"protocol-config" env:"AUDIT_INGESTER_PROTOCOL_CONFIG" description:"protocol YAML file, built-in defaults when empty"`
	LedgerURL      string        `long:"ledger-url" env:"AUDIT_INGESTER_LEDGER_URL" description:"ledger JSON-RPC URL, overrides the protocol file"`
	Network        string        `long:"network" env:"AUDIT_INGESTER_NETWORK" description:"network label for metrics" default:"testnet"`
	PageSize       int           `long:"page-size" env:"AUDIT_INGESTER_PAGE_SIZE" description:"history page size" default:"100"`
	PollInterval   time.Duration `long:"poll-interval" env:"AUDIT_INGESTER_POLL_INTERVAL" description:"wait between polls once caught up" default:"2s"`
	FlushSize      int           `long:"flush-size" env:"AUDIT_INGESTER_FLUSH_SIZE" description:"events per ClickHouse insert" default:"500"`
	FlushInterval  time.Duration `long:"flush-interval" env:"AUDIT_INGESTER_FLUSH_INTERVAL" description:"max delay before buffered events are written" default:"1s"`
	FlushRPS       int           `long:"flush-rps" env:"AUDIT_INGESTER_FLUSH_RPS" description:"max ClickHouse inserts per second" default:"10"`
	MetricsAddr    string        `long:"metrics-addr" env:"AUDIT_INGESTER_METRICS_ADDR" description:"address for metrics server" default:":2112"`
}

func main() {
	cfg := ingesterConfig{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("audit ingester failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg ingesterConfig, logger *zap.Logger) error {
	proto, err := config.Load(cfg.ProtocolConfig)
	if err != nil {
		return err
	}
	if cfg.LedgerURL != "" {
		proto.Endpoint = cfg.LedgerURL
	}
	if proto.Apps.Factory == 0 {
		return errors.New("factory app id is required in the protocol config")
	}

	startMetricsServer(ctx, cfg.MetricsAddr, logger)

	repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewAuditRepository(cfg.Network))
	if err != nil {
		return fmt.Errorf("init repository: %w", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Warn("close repository", zap.Error(err))
		}
	}()

	rpcClient, err := rpc.NewClient(rpc.Config{Endpoint: proto.Endpoint}, logger)
	if err != nil {
		return fmt.Errorf("init ledger client: %w", err)
	}
	ledger := ledgerclient.NewRetryingClient(
		ledgerclient.NewObservedClient(rpcClient, metrics.NewLedgerClient(cfg.Network)),
		proto.ReadRetry,
		logger,
	)
	exec, err := composer.New(ledger, metrics.NewComposer(cfg.Network), logger)
	if err != nil {
		return fmt.Errorf("init composer: %w", err)
	}
	fc, err := factory.New(ledger, exec, proto.Apps.Factory, logger)
	if err != nil {
		return fmt.Errorf("init factory client: %w", err)
	}

	ingester, err := audit.NewIngester(audit.Config{
		App:           proto.Apps.Factory,
		PageSize:      cfg.PageSize,
		PollInterval:  cfg.PollInterval,
		FlushSize:     cfg.FlushSize,
		FlushInterval: cfg.FlushInterval,
		FlushRPS:      cfg.FlushRPS,
	}, fc, repo, metrics.NewAuditIngester(cfg.Network), logger)
	if err != nil {
		return err
	}
	return ingester.Run(ctx)
}

func startMetricsServer(ctx context.Context, addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
	}()
}
