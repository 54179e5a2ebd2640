package model

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	ledgermodel "github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

const (
	// MaxUnitNameLength is the ledger limit for asset unit names.
	MaxUnitNameLength = 8
	// MaxAssetNameLength is the ledger limit for asset names.
	MaxAssetNameLength = 32
	// DefaultTokenSupply is used when a scheme sets no beneficiary cap.
	DefaultTokenSupply = 100_000
)

// TokenConfig describes a scheme token to create.
type TokenConfig struct {
	Name         string   `json:"name"`
	UnitName     string   `json:"unit_name"`
	Total        uint64   `json:"total"`
	Decimals     uint32   `json:"decimals"`
	URL          string   `json:"url,omitempty"`
	MetadataHash [32]byte `json:"-"`
}

// Recipient is one entry of a batch token transfer.
type Recipient struct {
	Address ledgermodel.Address `json:"address"`
	Amount  uint64              `json:"amount"`
}

// TokenUnitName derives a unit name from the initials of the scheme name and
// the two-digit year.
func TokenUnitName(schemeName string, now time.Time) string {
	var b strings.Builder
	for _, word := range strings.Fields(schemeName) {
		r := []rune(word)[0]
		b.WriteRune(unicode.ToUpper(r))
	}
	unit := fmt.Sprintf("%s%02d", b.String(), now.Year()%100)
	return truncateUTF8(unit, MaxUnitNameLength)
}

func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

// SchemeTokenConfig builds the token configuration for a scheme.
func SchemeTokenConfig(cfg SchemeConfig, now time.Time) TokenConfig {
	total := cfg.MaxBeneficiaries
	if total == 0 {
		total = DefaultTokenSupply
	}
	const suffix = " Token"
	base := strings.TrimSpace(cfg.Name)
	if len(base)+len(suffix) > MaxAssetNameLength {
		base = strings.TrimSpace(truncateUTF8(base, MaxAssetNameLength-len(suffix)))
	}
	return TokenConfig{
		Name:     base + suffix,
		UnitName: TokenUnitName(cfg.Name, now),
		Total:    total,
		Decimals: 0,
	}
}
