// Package config holds the protocol knobs shared by every binary.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"gopkg.in/yaml.v3"
)

// Protocol is the tunable part of the disbursement protocol.
type Protocol struct {
	// Endpoint is the ledger JSON-RPC URL.
	Endpoint string `yaml:"endpoint"`

	Fees FeeMultipliers `yaml:"fees"`

	// MaxTransferGroup caps token batch transfers per atomic group.
	MaxTransferGroup int `yaml:"maxTransferGroup"`
	// MaxReleaseGroup caps fund releases per atomic group.
	MaxReleaseGroup int `yaml:"maxReleaseGroup"`

	ConfirmationRounds uint64        `yaml:"confirmationRounds"`
	CacheTTL           time.Duration `yaml:"cacheTTL"`

	MaxBeneficiaries uint64 `yaml:"maxBeneficiaries"`

	Apps Applications `yaml:"apps"`

	ReadRetry Retry `yaml:"readRetry"`
}

// FeeMultipliers scale the ledger minimum fee per operation class.
type FeeMultipliers struct {
	Ordinary uint64 `yaml:"ordinary"`
	Inner    uint64 `yaml:"inner"`
}

// Applications are the deployed contract ids. Zero means not deployed.
type Applications struct {
	Factory  model.AppID `yaml:"factory"`
	Treasury model.AppID `yaml:"treasury"`
	Identity model.AppID `yaml:"identity"`
}

// Retry bounds the backoff applied to reads.
type Retry struct {
	MaxRetries      uint64        `yaml:"maxRetries"`
	InitialInterval time.Duration `yaml:"initialInterval"`
	MaxElapsedTime  time.Duration `yaml:"maxElapsedTime"`
}

// Default returns the built-in protocol settings.
func Default() Protocol {
	return Protocol{
		Endpoint:           "http://127.0.0.1:8645/rpc",
		Fees:               FeeMultipliers{Ordinary: 1, Inner: 2},
		MaxTransferGroup:   model.MaxGroupSize,
		MaxReleaseGroup:    4,
		ConfirmationRounds: 4,
		CacheTTL:           60 * time.Second,
		MaxBeneficiaries:   100_000,
		ReadRetry: Retry{
			MaxRetries:      3,
			InitialInterval: 200 * time.Millisecond,
			MaxElapsedTime:  5 * time.Second,
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Protocol, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Protocol{}, fmt.Errorf("read protocol config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Protocol{}, fmt.Errorf("parse protocol config %s: %w", path, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return Protocol{}, err
	}
	return cfg, nil
}

// Validate checks the settings against the ledger limits.
func (p Protocol) Validate() error {
	var errs []error
	if p.Fees.Ordinary == 0 {
		errs = append(errs, errors.New("fees.ordinary must be positive"))
	}
	if p.Fees.Inner < p.Fees.Ordinary {
		errs = append(errs, errors.New("fees.inner must not be below fees.ordinary"))
	}
	if p.MaxTransferGroup < 1 || p.MaxTransferGroup > model.MaxGroupSize {
		errs = append(errs, fmt.Errorf("maxTransferGroup must be within [1, %d]", model.MaxGroupSize))
	}
	if p.MaxReleaseGroup < 1 || p.MaxReleaseGroup > p.MaxTransferGroup {
		errs = append(errs, errors.New("maxReleaseGroup must be within [1, maxTransferGroup]"))
	}
	if p.ConfirmationRounds == 0 {
		errs = append(errs, errors.New("confirmationRounds must be positive"))
	}
	if p.CacheTTL < 0 {
		errs = append(errs, errors.New("cacheTTL must not be negative"))
	}
	if p.MaxBeneficiaries == 0 {
		errs = append(errs, errors.New("maxBeneficiaries must be positive"))
	}
	return errors.Join(errs...)
}
