package model

import (
	"strings"
	"time"

	ledgermodel "github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

// BeneficiaryStatus is the state of one beneficiary within a scheme.
type BeneficiaryStatus uint64

const (
	BeneficiaryRegistered BeneficiaryStatus = iota
	BeneficiaryVerified
	BeneficiaryApproved
	BeneficiaryFunded
	BeneficiaryRejected
)

// Label returns the display name of s.
func (s BeneficiaryStatus) Label() string {
	switch s {
	case BeneficiaryRegistered:
		return "Registered"
	case BeneficiaryVerified:
		return "Verified"
	case BeneficiaryApproved:
		return "Approved"
	case BeneficiaryFunded:
		return "Funded"
	case BeneficiaryRejected:
		return "Rejected"
	default:
		return "Unknown"
	}
}

func (s BeneficiaryStatus) String() string {
	return strings.ToLower(s.Label())
}

// Terminal reports whether no further transition is possible.
func (s BeneficiaryStatus) Terminal() bool {
	return s == BeneficiaryFunded || s == BeneficiaryRejected
}

// Valid reports whether s is a known status.
func (s BeneficiaryStatus) Valid() bool {
	return s <= BeneficiaryRejected
}

// Beneficiary is the registration of one address in one scheme.
type Beneficiary struct {
	SchemeID       uint64              `json:"scheme_id"`
	Address        ledgermodel.Address `json:"address"`
	Status         BeneficiaryStatus   `json:"status"`
	AmountReceived uint64              `json:"amount_received"`
	RegisteredAt   time.Time           `json:"registered_at"`
}
