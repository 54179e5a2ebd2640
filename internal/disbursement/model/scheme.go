// Package model holds the disbursement domain types shared by contracts,
// storage and the orchestration service.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goodnatureofminers/benefitchain-backend/internal/apperr"
	ledgermodel "github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/pkg/safe"
)

// MaxSchemeNameLength is the longest scheme name the record can hold, in bytes.
const MaxSchemeNameLength = 64

// SchemeStatus is the lifecycle state of a scheme.
type SchemeStatus uint64

const (
	SchemeDraft SchemeStatus = iota
	SchemeActive
	SchemePaused
	SchemeCompleted
	SchemeCancelled
)

// Label returns the display name of s.
func (s SchemeStatus) Label() string {
	switch s {
	case SchemeDraft:
		return "Draft"
	case SchemeActive:
		return "Active"
	case SchemePaused:
		return "Paused"
	case SchemeCompleted:
		return "Completed"
	case SchemeCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

func (s SchemeStatus) String() string {
	return strings.ToLower(s.Label())
}

// Terminal reports whether no further transition is possible.
func (s SchemeStatus) Terminal() bool {
	return s == SchemeCompleted || s == SchemeCancelled
}

// Valid reports whether s is a known status.
func (s SchemeStatus) Valid() bool {
	return s <= SchemeCancelled
}

// Scheme is one benefit scheme managed by the factory.
type Scheme struct {
	ID               uint64              `json:"id"`
	Name             string              `json:"name"`
	Budget           uint64              `json:"budget"`
	Payout           uint64              `json:"payout"`
	Deadline         time.Time           `json:"deadline"`
	Status           SchemeStatus        `json:"status"`
	Funded           uint64              `json:"funded"`
	Spent            uint64              `json:"spent"`
	BeneficiaryCount uint64              `json:"beneficiary_count"`
	Authority        ledgermodel.Address `json:"authority"`
	Refunded         uint64              `json:"refunded"`
}

// Available is the funded amount not yet paid out or refunded.
func (s Scheme) Available() uint64 {
	used := s.Spent + s.Refunded
	if used >= s.Funded {
		return 0
	}
	return s.Funded - used
}

// Utilization is the spent share of the budget in whole percent.
func (s Scheme) Utilization() int {
	return safe.Percent(s.Spent, s.Budget)
}

// CheckInvariants verifies payout ≤ budget and spent ≤ funded ≤ budget.
func (s Scheme) CheckInvariants() error {
	var errs []error
	if s.Payout > s.Budget {
		errs = append(errs, fmt.Errorf("payout %d exceeds budget %d", s.Payout, s.Budget))
	}
	if s.Funded > s.Budget {
		errs = append(errs, fmt.Errorf("funded %d exceeds budget %d", s.Funded, s.Budget))
	}
	if s.Spent > s.Funded {
		errs = append(errs, fmt.Errorf("spent %d exceeds funded %d", s.Spent, s.Funded))
	}
	return errors.Join(errs...)
}

// SchemeConfig is the authority-entered configuration of a new scheme.
type SchemeConfig struct {
	Name     string    `json:"name"`
	Budget   uint64    `json:"budget"`
	Payout   uint64    `json:"payout"`
	Deadline time.Time `json:"deadline"`

	Category         string   `json:"category,omitempty"`
	MaxBeneficiaries uint64   `json:"max_beneficiaries,omitempty"`
	KYCLevel         KYCLevel `json:"kyc_level,omitempty"`
	TokenEnabled     bool     `json:"token_enabled,omitempty"`
}

// Validate checks the configuration before anything is submitted.
func (c SchemeConfig) Validate(now time.Time) error {
	const op = "validate scheme"
	n := len(c.Name)
	switch {
	case n == 0 || strings.TrimSpace(c.Name) == "":
		return apperr.Validation(op, "scheme name is required")
	case n > MaxSchemeNameLength:
		return apperr.Validation(op, "scheme name is %d bytes, limit %d", n, MaxSchemeNameLength)
	case !utf8.ValidString(c.Name):
		return apperr.Validation(op, "scheme name is not valid UTF-8")
	case c.Payout == 0:
		return apperr.Validation(op, "payout must be greater than 0")
	case c.Budget == 0:
		return apperr.Validation(op, "budget must be greater than 0")
	case c.Payout > c.Budget:
		return apperr.Validation(op, "payout %d cannot exceed budget %d", c.Payout, c.Budget)
	case !c.Deadline.After(now):
		return apperr.Validation(op, "deadline must be in the future")
	case c.KYCLevel > KYCComplete:
		return apperr.Validation(op, "kyc level %d out of range", c.KYCLevel)
	}
	return nil
}

// FactoryStats are the aggregate counters kept by the factory.
type FactoryStats struct {
	TotalSchemes       uint64              `json:"total_schemes"`
	TotalFunded        uint64              `json:"total_funded"`
	TotalDisbursed     uint64              `json:"total_disbursed"`
	TotalBeneficiaries uint64              `json:"total_beneficiaries"`
	Authority          ledgermodel.Address `json:"authority"`
}

// AdminRole tells how an address is authorised on the factory.
type AdminRole string

const (
	RoleNone      AdminRole = ""
	RolePrimary   AdminRole = "primary"
	RoleSecondary AdminRole = "secondary"
)
