package model

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// AddressSize is the length of a raw account public key.
const AddressSize = 32

const addressVersion byte = 0x4c

var (
	// ErrInvalidAddress is returned when a textual address cannot be decoded.
	ErrInvalidAddress = errors.New("invalid address")
)

// Address identifies a ledger account by its 32-byte public key.
type Address [AddressSize]byte

// ZeroAddress is the unset address.
var ZeroAddress Address

// ParseAddress decodes a base58check address string.
func ParseAddress(s string) (Address, error) {
	var addr Address
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return addr, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}
	if version != addressVersion {
		return addr, fmt.Errorf("%w: unexpected version %d", ErrInvalidAddress, version)
	}
	if len(payload) != AddressSize {
		return addr, fmt.Errorf("%w: payload length %d", ErrInvalidAddress, len(payload))
	}
	copy(addr[:], payload)
	return addr, nil
}

// MustParseAddress is ParseAddress that panics on malformed input.
func MustParseAddress(s string) Address {
	addr, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return addr
}

// AddressFromBytes copies a raw 32-byte key into an Address.
func AddressFromBytes(b []byte) (Address, error) {
	var addr Address
	if len(b) != AddressSize {
		return addr, fmt.Errorf("%w: payload length %d", ErrInvalidAddress, len(b))
	}
	copy(addr[:], b)
	return addr, nil
}

// String renders the base58check form.
func (a Address) String() string {
	return base58.CheckEncode(a[:], addressVersion)
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// Bytes returns a copy of the raw key.
func (a Address) Bytes() []byte {
	out := make([]byte, AddressSize)
	copy(out, a[:])
	return out
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ApplicationAddress derives the escrow account controlled by an application.
func ApplicationAddress(id AppID) Address {
	buf := make([]byte, 0, 13)
	buf = append(buf, "appID"...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(id))
	return Address(chainhash.HashH(buf))
}
