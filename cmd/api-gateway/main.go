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
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract/factory"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract/identity"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract/token"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract/treasury"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/repository/clickhouse"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/service"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/rpc"
	"github.com/goodnatureofminers/benefitchain-backend/internal/metrics"
	"github.com/goodnatureofminers/benefitchain-backend/internal/pkg/ledgerclient"
	"github.com/goodnatureofminers/benefitchain-backend/internal/signer/remote"
	"github.com/goodnatureofminers/benefitchain-backend/internal/transport"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

type gatewayConfig struct {
	Addr           string        `long:"addr" env:"API_GATEWAY_ADDR" description:"HTTP listen address" default:":8000"`
	ProtocolConfig string        `long:"protocol-config" env:"API_GATEWAY_PROTOCOL_CONFIG" description:"protocol YAML file, built-in defaults when empty"`
	LedgerURL      string        `long:"ledger-url" env:"API_GATEWAY_LEDGER_URL" description:"ledger JSON-RPC URL, overrides the protocol file"`
	LedgerTimeout  time.Duration `long:"ledger-timeout" env:"API_GATEWAY_LEDGER_TIMEOUT" description:"timeout of one ledger RPC call" default:"15s"`
	Network        string        `long:"network" env:"API_GATEWAY_NETWORK" description:"network label for metrics" default:"testnet"`
	WalletURL      string        `long:"wallet-url" env:"API_GATEWAY_WALLET_URL" description:"wallet bridge base URL" required:"true"`
	WalletService  string        `long:"wallet-service-id" env:"API_GATEWAY_WALLET_SERVICE_ID" description:"service id sent to the wallet bridge" default:"benefitchain"`
	ClickhouseDSN  string        `long:"clickhouse-dsn" env:"API_GATEWAY_CLICKHOUSE_DSN" description:"ClickHouse DSN of the audit trail, disabled when empty"`
	RateLimitRPS   float64       `long:"rate-limit-rps" env:"API_GATEWAY_RATE_LIMIT_RPS" description:"requests per second per client, 0 disables" default:"20"`
	RateLimitBurst int           `long:"rate-limit-burst" env:"API_GATEWAY_RATE_LIMIT_BURST" description:"burst per client" default:"40"`
}

func main() {
	cfg := gatewayConfig{}

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
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("api gateway failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg gatewayConfig, logger *zap.Logger) error {
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

	rpcClient, err := rpc.NewClient(rpc.Config{Endpoint: proto.Endpoint, Timeout: cfg.LedgerTimeout}, logger)
	if err != nil {
		return fmt.Errorf("init ledger client: %w", err)
	}
	ledger := ledgerclient.NewRetryingClient(
		ledgerclient.NewObservedClient(rpcClient, metrics.NewLedgerClient(cfg.Network)),
		proto.ReadRetry,
		logger,
	)
	exec, err := composer.New(ledger, metrics.NewComposer(cfg.Network), logger,
		composer.WithWaitRounds(proto.ConfirmationRounds),
		composer.WithFeeMultipliers(proto.Fees.Ordinary, proto.Fees.Inner),
	)
	if err != nil {
		return fmt.Errorf("init composer: %w", err)
	}

	svcCfg := service.Config{CacheTTL: proto.CacheTTL, TokenSupply: proto.MaxBeneficiaries}
	if svcCfg.Factory, err = factory.New(ledger, exec, proto.Apps.Factory, logger,
		factory.WithMaxReleaseGroup(proto.MaxReleaseGroup)); err != nil {
		return fmt.Errorf("init factory client: %w", err)
	}
	if svcCfg.Tokens, err = token.New(exec, proto.MaxTransferGroup, logger); err != nil {
		return fmt.Errorf("init token client: %w", err)
	}
	if proto.Apps.Treasury != 0 {
		if svcCfg.Treasury, err = treasury.New(ledger, exec, proto.Apps.Treasury, logger); err != nil {
			return fmt.Errorf("init treasury client: %w", err)
		}
	}
	if proto.Apps.Identity != 0 {
		if svcCfg.Identities, err = identity.New(ledger, exec, proto.Apps.Identity, logger); err != nil {
			return fmt.Errorf("init identity client: %w", err)
		}
	}
	svc, err := service.New(svcCfg, logger)
	if err != nil {
		return err
	}

	wallet, err := remote.New(remote.Config{BaseURL: cfg.WalletURL, ServiceID: cfg.WalletService})
	if err != nil {
		return fmt.Errorf("init wallet bridge client: %w", err)
	}
	accounts, err := transport.NewWalletAccounts(wallet, logger)
	if err != nil {
		return err
	}

	handlerCfg := transport.Config{
		Service:        svc,
		Accounts:       accounts,
		Metrics:        metrics.NewHTTPServer(),
		FactoryApp:     proto.Apps.Factory,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
	}
	if cfg.ClickhouseDSN != "" {
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, metrics.NewAuditRepository(cfg.Network))
		if err != nil {
			return fmt.Errorf("init audit repository: %w", err)
		}
		defer func() {
			if err := repo.Close(); err != nil {
				logger.Warn("close audit repository", zap.Error(err))
			}
		}()
		handlerCfg.Audit = repo
	}
	handler, err := transport.NewHandler(handlerCfg, logger)
	if err != nil {
		return err
	}

	router := handler.Router()
	router.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           corsPolicy().Handler(router),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		// Writes wait for wallet approval and ledger confirmation.
		WriteTimeout:   3 * time.Minute,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: http.DefaultMaxHeaderBytes,
	}
	logger.Info("ledger configured",
		zap.String("endpoint", proto.Endpoint),
		zap.Uint64("factory_app", uint64(proto.Apps.Factory)),
		zap.Bool("audit_trail", handlerCfg.Audit != nil))
	return transport.Serve(ctx, s, 10*time.Second, logger)
}

func corsPolicy() *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", transport.WalletHeader},
		MaxAge:         300,
	})
}
