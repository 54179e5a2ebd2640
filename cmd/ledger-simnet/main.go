// Command ledger-simnet runs an in-memory ledger with the disbursement
// contracts deployed, plus a development wallet bridge. It is the local stand-in
// for a real network.
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
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract/treasury"
	programfactory "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/program/factory"
	programidentity "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/program/identity"
	programtreasury "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/program/treasury"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/program"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/rpc"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/simnet"
	"github.com/goodnatureofminers/benefitchain-backend/internal/metrics"
	"github.com/goodnatureofminers/benefitchain-backend/internal/signer"
	"github.com/goodnatureofminers/benefitchain-backend/internal/signer/remote"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type simnetConfig struct {
	Addr           string   `long:"addr" env:"LEDGER_SIMNET_ADDR" description:"HTTP listen address" default:":8645"`
	AuthoritySeed  string   `long:"authority-seed" env:"LEDGER_SIMNET_AUTHORITY_SEED" description:"seed of the deploying authority account" default:"ministry"`
	AuthorityFunds uint64   `long:"authority-funds" env:"LEDGER_SIMNET_AUTHORITY_FUNDS" description:"initial balance of the authority" default:"100000000000"`
	Accounts       []string `long:"account" env:"LEDGER_SIMNET_ACCOUNTS" env-delim:"," description:"seed of an extra funded wallet account, repeatable"`
	AccountFunds   uint64   `long:"account-funds" env:"LEDGER_SIMNET_ACCOUNT_FUNDS" description:"initial balance of every extra account" default:"10000000"`
	TreasuryBudget uint64   `long:"treasury-budget" env:"LEDGER_SIMNET_TREASURY_BUDGET" description:"milestone treasury budget, 0 skips the deployment" default:"5000000"`
	TreasuryPayout uint64   `long:"treasury-payout" env:"LEDGER_SIMNET_TREASURY_PAYOUT" description:"milestone payout per student" default:"100000"`
	WriteProtocol  string   `long:"write-protocol" env:"LEDGER_SIMNET_WRITE_PROTOCOL" description:"write a protocol YAML file with the deployed app ids"`
}

func main() {
	cfg := simnetConfig{}

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
		logger.Fatal("ledger simnet failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg simnetConfig, logger *zap.Logger) error {
	registry := program.NewRegistry(programfactory.Program{}, programtreasury.Program{}, programidentity.Program{})
	l := simnet.New(logger, registry)
	wallet := simnet.NewWallet()

	proto, err := deploy(ctx, cfg, l, wallet, logger)
	if err != nil {
		return err
	}
	if cfg.WriteProtocol != "" {
		if err := writeProtocol(cfg.WriteProtocol, proto); err != nil {
			return err
		}
		logger.Info("protocol file written", zap.String("path", cfg.WriteProtocol))
	}

	rpcServer, err := rpc.NewServer(l, logger)
	if err != nil {
		return err
	}
	bridge, err := remote.NewBridge(wallet, logger)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle("/rpc", rpcServer)
	mux.Handle("/v1/sign", bridge)
	mux.Handle("/metrics", promhttp.Handler())

	s := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", cfg.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// deploy funds the development accounts and creates the contracts. The
// returned protocol points at them.
func deploy(ctx context.Context, cfg simnetConfig, l *simnet.Ledger, wallet *simnet.Wallet, logger *zap.Logger) (config.Protocol, error) {
	proto := config.Default()
	proto.Endpoint = "http://127.0.0.1" + cfg.Addr + "/rpc"

	exec, err := composer.New(l, metrics.NewComposer("simnet"), logger,
		composer.WithWaitRounds(proto.ConfirmationRounds),
		composer.WithFeeMultipliers(proto.Fees.Ordinary, proto.Fees.Inner),
	)
	if err != nil {
		return proto, fmt.Errorf("init composer: %w", err)
	}

	authorityAddr := simnet.NewAccount(cfg.AuthoritySeed)
	wallet.Add(authorityAddr)
	l.Fund(authorityAddr, cfg.AuthorityFunds)
	authority, err := signer.NewWalletSigner(wallet, authorityAddr, logger)
	if err != nil {
		return proto, err
	}
	logger.Info("authority account", zap.String("seed", cfg.AuthoritySeed), zap.Stringer("address", authorityAddr))

	for _, seed := range cfg.Accounts {
		addr := simnet.NewAccount(seed)
		wallet.Add(addr)
		l.Fund(addr, cfg.AccountFunds)
		logger.Info("wallet account", zap.String("seed", seed), zap.Stringer("address", addr))
	}

	if proto.Apps.Factory, _, err = factory.Deploy(ctx, exec, authority, authorityAddr); err != nil {
		return proto, fmt.Errorf("deploy factory: %w", err)
	}
	if proto.Apps.Identity, _, err = identity.Deploy(ctx, exec, authority, authorityAddr); err != nil {
		return proto, fmt.Errorf("deploy identity registry: %w", err)
	}
	if cfg.TreasuryBudget > 0 {
		if proto.Apps.Treasury, _, err = treasury.Deploy(ctx, exec, authority, authorityAddr, cfg.TreasuryBudget, cfg.TreasuryPayout); err != nil {
			return proto, fmt.Errorf("deploy treasury: %w", err)
		}
		tc, err := treasury.New(l, exec, proto.Apps.Treasury, logger)
		if err != nil {
			return proto, err
		}
		if _, err := tc.Fund(ctx, authority, cfg.TreasuryBudget); err != nil {
			return proto, fmt.Errorf("fund treasury: %w", err)
		}
	}

	logger.Info("contracts deployed",
		zap.Uint64("factory", uint64(proto.Apps.Factory)),
		zap.Uint64("identity", uint64(proto.Apps.Identity)),
		zap.Uint64("treasury", uint64(proto.Apps.Treasury)))
	return proto, nil
}

func writeProtocol(path string, proto config.Protocol) error {
	data, err := yaml.Marshal(proto)
	if err != nil {
		return fmt.Errorf("encode protocol config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write protocol config: %w", err)
	}
	return nil
}
