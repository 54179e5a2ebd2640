// Package storage encodes disbursement records into fixed-size ledger boxes.
//
// Every record starts with a schema version byte. Readers refuse versions they
// do not know instead of guessing offsets.
package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	ledgermodel "github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

const (
	// Version1 is the current record schema.
	Version1 byte = 1

	SchemeRecordSize      = 256
	BeneficiaryRecordSize = 33
	AdminRecordSize       = 1

	// Minimum balance charged per box, flat and per byte of key plus value.
	BoxFlatCost = 2_500
	BoxByteCost = 400
)

var (
	SchemePrefix      = []byte("scheme_")
	BeneficiaryPrefix = []byte("ben_")
	AdminPrefix       = []byte("admin_")
)

var (
	// ErrUnsupportedVersion is returned for records written by an unknown schema.
	ErrUnsupportedVersion = errors.New("unsupported record version")
	// ErrRecordSize is returned when a record has the wrong length.
	ErrRecordSize = errors.New("unexpected record size")
	// ErrInvalidKey is returned for keys that do not match the expected layout.
	ErrInvalidKey = errors.New("invalid record key")
)

// Scheme record v1 offsets.
const (
	offVersion     = 0
	offName        = 1
	offBudget      = offName + model.MaxSchemeNameLength
	offPayout      = offBudget + 8
	offDeadline    = offPayout + 8
	offStatus      = offDeadline + 8
	offFunded      = offStatus + 8
	offSpent       = offFunded + 8
	offCount       = offSpent + 8
	offAuthority   = offCount + 8
	offRefunded    = offAuthority + ledgermodel.AddressSize
	offSchemeSpare = offRefunded + 8
)

// Beneficiary record v1 offsets.
const (
	offBenStatus     = 1
	offBenReceived   = offBenStatus + 8
	offBenRegistered = offBenReceived + 8
	offBenSpare      = offBenRegistered + 8
)

// BoxCost is the minimum balance a box with key and size locks.
func BoxCost(key []byte, size int) uint64 {
	return BoxFlatCost + BoxByteCost*uint64(len(key)+size)
}

// SchemeKey is the box name of scheme id.
func SchemeKey(id uint64) []byte {
	return binary.BigEndian.AppendUint64(append([]byte(nil), SchemePrefix...), id)
}

// ParseSchemeKey extracts the scheme id from a box name.
func ParseSchemeKey(key []byte) (uint64, error) {
	if !bytes.HasPrefix(key, SchemePrefix) || len(key) != len(SchemePrefix)+8 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return binary.BigEndian.Uint64(key[len(SchemePrefix):]), nil
}

// BeneficiaryKey is the box name of a beneficiary within a scheme.
func BeneficiaryKey(schemeID uint64, addr ledgermodel.Address) []byte {
	key := binary.BigEndian.AppendUint64(append([]byte(nil), BeneficiaryPrefix...), schemeID)
	return append(key, addr[:]...)
}

// BeneficiarySchemePrefix is the key prefix shared by every beneficiary of a scheme.
func BeneficiarySchemePrefix(schemeID uint64) []byte {
	return binary.BigEndian.AppendUint64(append([]byte(nil), BeneficiaryPrefix...), schemeID)
}

// ParseBeneficiaryKey splits a beneficiary box name.
func ParseBeneficiaryKey(key []byte) (uint64, ledgermodel.Address, error) {
	if !bytes.HasPrefix(key, BeneficiaryPrefix) || len(key) != len(BeneficiaryPrefix)+8+ledgermodel.AddressSize {
		return 0, ledgermodel.ZeroAddress, fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	rest := key[len(BeneficiaryPrefix):]
	addr, err := ledgermodel.AddressFromBytes(rest[8:])
	if err != nil {
		return 0, ledgermodel.ZeroAddress, err
	}
	return binary.BigEndian.Uint64(rest[:8]), addr, nil
}

// AdminKey is the box name marking addr as a secondary authority.
func AdminKey(addr ledgermodel.Address) []byte {
	return append(append([]byte(nil), AdminPrefix...), addr[:]...)
}

// EncodeScheme writes s as a v1 scheme record.
func EncodeScheme(s model.Scheme) ([]byte, error) {
	if len(s.Name) == 0 || len(s.Name) > model.MaxSchemeNameLength {
		return nil, fmt.Errorf("scheme name length %d outside [1, %d]", len(s.Name), model.MaxSchemeNameLength)
	}
	if !s.Status.Valid() {
		return nil, fmt.Errorf("unknown scheme status %d", s.Status)
	}
	buf := make([]byte, SchemeRecordSize)
	buf[offVersion] = Version1
	copy(buf[offName:offBudget], s.Name)
	be := binary.BigEndian
	be.PutUint64(buf[offBudget:], s.Budget)
	be.PutUint64(buf[offPayout:], s.Payout)
	be.PutUint64(buf[offDeadline:], unixSeconds(s.Deadline))
	be.PutUint64(buf[offStatus:], uint64(s.Status))
	be.PutUint64(buf[offFunded:], s.Funded)
	be.PutUint64(buf[offSpent:], s.Spent)
	be.PutUint64(buf[offCount:], s.BeneficiaryCount)
	copy(buf[offAuthority:offRefunded], s.Authority[:])
	be.PutUint64(buf[offRefunded:], s.Refunded)
	return buf, nil
}

// DecodeScheme reads a scheme record. The id is not part of the record.
func DecodeScheme(id uint64, b []byte) (model.Scheme, error) {
	if len(b) == 0 {
		return model.Scheme{}, fmt.Errorf("%w: empty scheme record", ErrRecordSize)
	}
	if b[offVersion] != Version1 {
		return model.Scheme{}, fmt.Errorf("%w: scheme record version %d", ErrUnsupportedVersion, b[offVersion])
	}
	if len(b) != SchemeRecordSize {
		return model.Scheme{}, fmt.Errorf("%w: scheme record is %d bytes, want %d", ErrRecordSize, len(b), SchemeRecordSize)
	}
	be := binary.BigEndian
	authority, err := ledgermodel.AddressFromBytes(b[offAuthority:offRefunded])
	if err != nil {
		return model.Scheme{}, err
	}
	s := model.Scheme{
		ID:               id,
		Name:             string(bytes.TrimRight(b[offName:offBudget], "\x00")),
		Budget:           be.Uint64(b[offBudget:]),
		Payout:           be.Uint64(b[offPayout:]),
		Deadline:         fromUnixSeconds(be.Uint64(b[offDeadline:])),
		Status:           model.SchemeStatus(be.Uint64(b[offStatus:])),
		Funded:           be.Uint64(b[offFunded:]),
		Spent:            be.Uint64(b[offSpent:]),
		BeneficiaryCount: be.Uint64(b[offCount:]),
		Authority:        authority,
		Refunded:         be.Uint64(b[offRefunded:]),
	}
	if !s.Status.Valid() {
		return model.Scheme{}, fmt.Errorf("scheme %d: unknown status %d", id, s.Status)
	}
	return s, nil
}

// EncodeBeneficiary writes b as a v1 beneficiary record.
func EncodeBeneficiary(b model.Beneficiary) ([]byte, error) {
	if !b.Status.Valid() {
		return nil, fmt.Errorf("unknown beneficiary status %d", b.Status)
	}
	buf := make([]byte, BeneficiaryRecordSize)
	buf[offVersion] = Version1
	be := binary.BigEndian
	be.PutUint64(buf[offBenStatus:], uint64(b.Status))
	be.PutUint64(buf[offBenReceived:], b.AmountReceived)
	be.PutUint64(buf[offBenRegistered:], unixSeconds(b.RegisteredAt))
	return buf, nil
}

// DecodeBeneficiary reads a beneficiary record.
func DecodeBeneficiary(schemeID uint64, addr ledgermodel.Address, raw []byte) (model.Beneficiary, error) {
	if len(raw) == 0 {
		return model.Beneficiary{}, fmt.Errorf("%w: empty beneficiary record", ErrRecordSize)
	}
	if raw[offVersion] != Version1 {
		return model.Beneficiary{}, fmt.Errorf("%w: beneficiary record version %d", ErrUnsupportedVersion, raw[offVersion])
	}
	if len(raw) != BeneficiaryRecordSize {
		return model.Beneficiary{}, fmt.Errorf("%w: beneficiary record is %d bytes, want %d", ErrRecordSize, len(raw), BeneficiaryRecordSize)
	}
	be := binary.BigEndian
	b := model.Beneficiary{
		SchemeID:       schemeID,
		Address:        addr,
		Status:         model.BeneficiaryStatus(be.Uint64(raw[offBenStatus:])),
		AmountReceived: be.Uint64(raw[offBenReceived:]),
		RegisteredAt:   fromUnixSeconds(be.Uint64(raw[offBenRegistered:])),
	}
	if !b.Status.Valid() {
		return model.Beneficiary{}, fmt.Errorf("beneficiary %s: unknown status %d", addr, b.Status)
	}
	return b, nil
}

// AdminRecord is the content of a secondary authority marker box.
func AdminRecord() []byte {
	return []byte{Version1}
}

func unixSeconds(t time.Time) uint64 {
	if t.IsZero() || t.Unix() < 0 {
		return 0
	}
	return uint64(t.Unix())
}

func fromUnixSeconds(v uint64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(int64(v), 0).UTC()
}
