package model

import (
	"encoding/hex"
	"time"

	ledgermodel "github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"golang.org/x/crypto/blake2b"
)

// KYCLevel is the ordinal depth of identity verification.
type KYCLevel uint64

const (
	KYCNone KYCLevel = iota
	KYCBasic
	KYCStandard
	KYCAdvanced
	KYCComplete
)

// Label returns the display name of l.
func (l KYCLevel) Label() string {
	switch l {
	case KYCNone:
		return "Not Verified"
	case KYCBasic:
		return "Basic KYC"
	case KYCStandard:
		return "Standard KYC"
	case KYCAdvanced:
		return "Advanced KYC"
	case KYCComplete:
		return "Complete KYC"
	default:
		return "Unknown"
	}
}

// Eligibility lists the categories a citizen qualifies under. It is packed
// into an 8-bit mask only when stored on the ledger.
type Eligibility struct {
	ScheduledCaste   bool `json:"scheduled_caste"`
	ScheduledTribe   bool `json:"scheduled_tribe"`
	OtherBackward    bool `json:"other_backward"`
	Minority         bool `json:"minority"`
	Female           bool `json:"female"`
	Disabled         bool `json:"disabled"`
	BelowPovertyLine bool `json:"below_poverty_line"`
	MeritQualified   bool `json:"merit_qualified"`
}

const (
	flagScheduledCaste uint8 = 1 << iota
	flagScheduledTribe
	flagOtherBackward
	flagMinority
	flagFemale
	flagDisabled
	flagBelowPovertyLine
	flagMeritQualified
)

func (e Eligibility) fields() []struct {
	set   bool
	flag  uint8
	label string
} {
	return []struct {
		set   bool
		flag  uint8
		label string
	}{
		{e.ScheduledCaste, flagScheduledCaste, "SC Category"},
		{e.ScheduledTribe, flagScheduledTribe, "ST Category"},
		{e.OtherBackward, flagOtherBackward, "OBC Category"},
		{e.Minority, flagMinority, "Minority"},
		{e.Female, flagFemale, "Female"},
		{e.Disabled, flagDisabled, "Disabled"},
		{e.BelowPovertyLine, flagBelowPovertyLine, "Below Poverty Line"},
		{e.MeritQualified, flagMeritQualified, "Merit Qualified"},
	}
}

// Pack encodes e as the stored bitmask.
func (e Eligibility) Pack() uint8 {
	var mask uint8
	for _, f := range e.fields() {
		if f.set {
			mask |= f.flag
		}
	}
	return mask
}

// UnpackEligibility decodes a stored bitmask.
func UnpackEligibility(mask uint8) Eligibility {
	return Eligibility{
		ScheduledCaste:   mask&flagScheduledCaste != 0,
		ScheduledTribe:   mask&flagScheduledTribe != 0,
		OtherBackward:    mask&flagOtherBackward != 0,
		Minority:         mask&flagMinority != 0,
		Female:           mask&flagFemale != 0,
		Disabled:         mask&flagDisabled != 0,
		BelowPovertyLine: mask&flagBelowPovertyLine != 0,
		MeritQualified:   mask&flagMeritQualified != 0,
	}
}

// Labels returns the display names of the set categories.
func (e Eligibility) Labels() []string {
	var out []string
	for _, f := range e.fields() {
		if f.set {
			out = append(out, f.label)
		}
	}
	return out
}

// Covers reports whether every category required is also set in e.
func (e Eligibility) Covers(required Eligibility) bool {
	r := required.Pack()
	return e.Pack()&r == r
}

// Any reports whether e shares at least one category with other.
func (e Eligibility) Any(other Eligibility) bool {
	return e.Pack()&other.Pack() != 0
}

// Identity is a citizen's on-ledger identity record.
type Identity struct {
	Address     ledgermodel.Address `json:"address"`
	IdentityID  uint64              `json:"identity_id"`
	Name        string              `json:"name"`
	IDHash      string              `json:"id_hash"`
	KYCLevel    KYCLevel            `json:"kyc_level"`
	Eligibility Eligibility         `json:"eligibility"`
	Active      bool                `json:"active"`
	MintedAt    time.Time           `json:"minted_at"`
}

// IdentityStats are the registry counters.
type IdentityStats struct {
	TotalIdentities  uint64              `json:"total_identities"`
	ActiveIdentities uint64              `json:"active_identities"`
	RevokedCount     uint64              `json:"revoked_count"`
	Authority        ledgermodel.Address `json:"authority"`
}

// HashNationalID returns the hex BLAKE2b-256 digest stored instead of the raw ID.
func HashNationalID(id string) string {
	sum := blake2b.Sum256([]byte(id))
	return hex.EncodeToString(sum[:])
}

// CountEligible counts active identities whose categories cover required.
func CountEligible(ids []Identity, required Eligibility) int {
	n := 0
	for _, id := range ids {
		if id.Active && id.Eligibility.Covers(required) {
			n++
		}
	}
	return n
}
