package model

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

type (
	// AppID identifies a deployed application (contract).
	AppID uint64
	// AssetID identifies a fungible asset.
	AssetID uint64
	// Round is a ledger round number.
	Round uint64
	// TxID is the textual identifier of a confirmed or pending operation.
	TxID string
)

// OperationType discriminates the operation payload.
type OperationType string

const (
	TypePayment       OperationType = "pay"
	TypeAppCall       OperationType = "appl"
	TypeAssetConfig   OperationType = "acfg"
	TypeAssetTransfer OperationType = "axfer"
	TypeAssetFreeze   OperationType = "afrz"
)

// OnComplete selects the application call flavour.
type OnComplete string

const (
	NoOp   OnComplete = "noop"
	OptIn  OnComplete = "optin"
	Create OnComplete = "create"
)

// MaxGroupSize is the ledger-imposed ceiling for one atomic group.
const MaxGroupSize = 16

// GroupID binds the operations of one atomic group together.
type GroupID [32]byte

// IsZero reports whether the group id is unset.
func (g GroupID) IsZero() bool {
	return g == GroupID{}
}

func (g GroupID) String() string {
	return hex.EncodeToString(g[:])
}

func (g GroupID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

func (g *GroupID) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*g = GroupID{}
		return nil
	}
	raw, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("decode group id: %w", err)
	}
	if len(raw) != len(g) {
		return fmt.Errorf("decode group id: length %d", len(raw))
	}
	copy(g[:], raw)
	return nil
}

// Operation is one unsigned ledger operation.
type Operation struct {
	Type       OperationType `json:"type"`
	Sender     Address       `json:"snd"`
	Fee        uint64        `json:"fee"`
	FirstValid Round         `json:"fv"`
	LastValid  Round         `json:"lv"`
	GenesisID  string        `json:"gen,omitempty"`
	Group      GroupID       `json:"grp"`
	Note       []byte        `json:"note,omitempty"`

	Payment       *Payment       `json:"pay,omitempty"`
	AppCall       *AppCall       `json:"appl,omitempty"`
	AssetConfig   *AssetConfig   `json:"acfg,omitempty"`
	AssetTransfer *AssetTransfer `json:"axfer,omitempty"`
	AssetFreeze   *AssetFreeze   `json:"afrz,omitempty"`
}

// Payment moves native units between accounts.
type Payment struct {
	Receiver Address `json:"rcv"`
	Amount   uint64  `json:"amt"`
}

// AppCall invokes an application method.
type AppCall struct {
	AppID      AppID      `json:"apid"`
	OnComplete OnComplete `json:"apan"`
	// Program names the contract kind on creation calls.
	Program  string    `json:"prog,omitempty"`
	Method   string    `json:"method,omitempty"`
	Args     [][]byte  `json:"apaa,omitempty"`
	Accounts []Address `json:"apat,omitempty"`
	Boxes    []BoxRef  `json:"apbx,omitempty"`
}

// BoxRef declares a box the call is allowed to touch.
type BoxRef struct {
	AppID AppID  `json:"i"`
	Name  []byte `json:"n"`
}

// AssetParams are the immutable and role parameters of an asset.
type AssetParams struct {
	Total         uint64  `json:"t"`
	Decimals      uint32  `json:"dc"`
	DefaultFrozen bool    `json:"df,omitempty"`
	UnitName      string  `json:"un"`
	Name          string  `json:"an"`
	URL           string  `json:"au,omitempty"`
	MetadataHash  []byte  `json:"am,omitempty"`
	Manager       Address `json:"m"`
	Reserve       Address `json:"r"`
	Freeze        Address `json:"f"`
	Clawback      Address `json:"c"`
}

// AssetConfig creates an asset when AssetID is zero.
type AssetConfig struct {
	AssetID AssetID     `json:"caid"`
	Params  AssetParams `json:"apar"`
}

// AssetTransfer moves asset units. A non-zero RevocationTarget makes it a clawback.
type AssetTransfer struct {
	AssetID          AssetID `json:"xaid"`
	Receiver         Address `json:"arcv"`
	Amount           uint64  `json:"aamt"`
	RevocationTarget Address `json:"asnd"`
}

// AssetFreeze toggles the frozen flag of one holding.
type AssetFreeze struct {
	AssetID AssetID `json:"faid"`
	Target  Address `json:"fadd"`
	Frozen  bool    `json:"afrz"`
}

// Encode returns the canonical byte form that signatures commit to.
func (o Operation) Encode() ([]byte, error) {
	b, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("encode operation: %w", err)
	}
	return b, nil
}

// ID computes the operation id.
func (o Operation) ID() (TxID, error) {
	encoded, err := o.Encode()
	if err != nil {
		return "", err
	}
	return txIDFromEncoded(encoded), nil
}

func txIDFromEncoded(encoded []byte) TxID {
	buf := make([]byte, 0, len(encoded)+2)
	buf = append(buf, "TX"...)
	buf = append(buf, encoded...)
	return TxID(chainhash.HashH(buf).String())
}

// ComputeGroupID derives the group id from the ungrouped operation ids.
func ComputeGroupID(ops []Operation) (GroupID, error) {
	buf := []byte("TG")
	for i := range ops {
		op := ops[i]
		op.Group = GroupID{}
		encoded, err := op.Encode()
		if err != nil {
			return GroupID{}, err
		}
		h := chainhash.HashH(append([]byte("TX"), encoded...))
		buf = append(buf, h[:]...)
	}
	return GroupID(chainhash.HashH(buf)), nil
}

// SignedOperation is the wire form produced by a signer.
type SignedOperation struct {
	Operation Operation `json:"txn"`
	Signer    Address   `json:"sgnr"`
	Signature []byte    `json:"sig"`
}

// EncodeSigned serialises a signed operation.
func EncodeSigned(s SignedOperation) ([]byte, error) {
	b, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("encode signed operation: %w", err)
	}
	return b, nil
}

// DecodeSigned parses a signed operation.
func DecodeSigned(b []byte) (SignedOperation, error) {
	var s SignedOperation
	if err := json.Unmarshal(b, &s); err != nil {
		return s, fmt.Errorf("decode signed operation: %w", err)
	}
	return s, nil
}
