package model

import "encoding/binary"

// ValueType tags a stored state value.
type ValueType uint8

const (
	BytesValue ValueType = 1
	UintValue  ValueType = 2
)

// StateValue is one global or local state slot.
type StateValue struct {
	Type  ValueType `json:"tt"`
	Bytes []byte    `json:"tb,omitempty"`
	Uint  uint64    `json:"ui,omitempty"`
}

// UintState builds an integer slot.
func UintState(v uint64) StateValue {
	return StateValue{Type: UintValue, Uint: v}
}

// BytesState builds a byte-string slot.
func BytesState(b []byte) StateValue {
	out := make([]byte, len(b))
	copy(out, b)
	return StateValue{Type: BytesValue, Bytes: out}
}

// State is a key/value snapshot of application global or account local state.
type State map[string]StateValue

// Uint returns the integer stored at key, or zero when absent.
func (s State) Uint(key string) uint64 {
	v, ok := s[key]
	if !ok || v.Type != UintValue {
		return 0
	}
	return v.Uint
}

// Bytes returns the bytes stored at key, or nil when absent.
func (s State) Bytes(key string) []byte {
	v, ok := s[key]
	if !ok || v.Type != BytesValue {
		return nil
	}
	return v.Bytes
}

// Address interprets the bytes at key as an account address.
func (s State) Address(key string) Address {
	addr, err := AddressFromBytes(s.Bytes(key))
	if err != nil {
		return ZeroAddress
	}
	return addr
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		if v.Type == BytesValue {
			v = BytesState(v.Bytes)
		}
		out[k] = v
	}
	return out
}

// Box is a named storage record owned by an application.
type Box struct {
	Name  []byte `json:"name"`
	Value []byte `json:"value"`
	Round Round  `json:"round"`
}

// SuggestedParams carries the fee and validity window for new operations.
type SuggestedParams struct {
	MinFee     uint64 `json:"min-fee"`
	FirstValid Round  `json:"first-valid"`
	LastValid  Round  `json:"last-valid"`
	GenesisID  string `json:"genesis-id"`
}

// NodeStatus reports the last committed round.
type NodeStatus struct {
	LastRound Round `json:"last-round"`
}

// ReturnPrefix marks the log entry that carries a method return value.
var ReturnPrefix = []byte{0x15, 0x1f, 0x7c, 0x75}

// PendingInfo describes the state of a submitted operation.
type PendingInfo struct {
	TxID           TxID     `json:"txid"`
	ConfirmedRound Round    `json:"confirmed-round"`
	PoolError      string   `json:"pool-error,omitempty"`
	ApplicationID  AppID    `json:"application-index,omitempty"`
	AssetID        AssetID  `json:"asset-index,omitempty"`
	Logs           [][]byte `json:"logs,omitempty"`
}

// Confirmed reports whether the operation made it into a round.
func (p PendingInfo) Confirmed() bool {
	return p.ConfirmedRound > 0
}

// ReturnValue extracts the method return value from the logs, if any.
func (p PendingInfo) ReturnValue() ([]byte, bool) {
	for i := len(p.Logs) - 1; i >= 0; i-- {
		entry := p.Logs[i]
		if len(entry) >= len(ReturnPrefix) && string(entry[:len(ReturnPrefix)]) == string(ReturnPrefix) {
			return entry[len(ReturnPrefix):], true
		}
	}
	return nil, false
}

// ReturnUint decodes an 8-byte big-endian return value.
func (p PendingInfo) ReturnUint() (uint64, bool) {
	raw, ok := p.ReturnValue()
	if !ok || len(raw) != 8 {
		return 0, false
	}
	return binary.BigEndian.Uint64(raw), true
}

// EncodeReturn formats a return log entry for v.
func EncodeReturn(v []byte) []byte {
	out := make([]byte, 0, len(ReturnPrefix)+len(v))
	out = append(out, ReturnPrefix...)
	return append(out, v...)
}
