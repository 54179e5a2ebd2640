// Package program defines the execution surface for contract programs hosted by a ledger.
package program

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/pkg/safe"
)

// Program is a deployable contract kind. Implementations are stateless; all
// persistent data lives behind Context.
type Program interface {
	// Name is the identifier used in creation calls.
	Name() string
	Create(ctx Context) error
	OptIn(ctx Context) error
	Call(ctx Context) error
}

// Context is the view a program has of the ledger while one application call executes.
type Context interface {
	AppID() model.AppID
	AppAddress() model.Address
	Sender() model.Address
	Method() string
	Args() [][]byte
	Accounts() []model.Address
	Round() model.Round
	Now() time.Time

	GroupIndex() int
	GroupSize() int
	GroupOperation(i int) model.Operation

	GlobalGet(key string) (model.StateValue, bool)
	GlobalPut(key string, v model.StateValue)

	IsOptedIn(account model.Address) bool
	LocalGet(account model.Address, key string) (model.StateValue, bool, error)
	LocalPut(account model.Address, key string, v model.StateValue) error

	BoxGet(name []byte) ([]byte, bool, error)
	BoxCreate(name []byte, size int) error
	BoxPut(name []byte, value []byte) error
	BoxDelete(name []byte) error

	Balance(account model.Address) uint64
	MinBalance(account model.Address) uint64
	InnerPayment(receiver model.Address, amount uint64) error

	Log(entry []byte)
	Return(value []byte)
}

// Failure is a contract assertion failure.
type Failure struct {
	Reason string
}

func (f *Failure) Error() string {
	return "assert failed: " + f.Reason
}

// Fail builds a Failure.
func Fail(format string, args ...any) error {
	return &Failure{Reason: fmt.Sprintf(format, args...)}
}

// Assert returns a Failure unless cond holds.
func Assert(cond bool, format string, args ...any) error {
	if cond {
		return nil
	}
	return Fail(format, args...)
}

// IsFailure reports whether err carries a contract assertion failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

// Uint64Arg decodes an 8-byte big-endian argument.
func Uint64Arg(args [][]byte, i int) (uint64, error) {
	if i >= len(args) {
		return 0, Fail("missing argument %d", i)
	}
	if len(args[i]) != 8 {
		return 0, Fail("argument %d is not uint64", i)
	}
	return binary.BigEndian.Uint64(args[i]), nil
}

// StringArg returns argument i as a string.
func StringArg(args [][]byte, i int) (string, error) {
	if i >= len(args) {
		return "", Fail("missing argument %d", i)
	}
	return string(args[i]), nil
}

// AccountArg returns the i-th referenced account.
func AccountArg(accounts []model.Address, i int) (model.Address, error) {
	if i >= len(accounts) {
		return model.ZeroAddress, Fail("missing account reference %d", i)
	}
	return accounts[i], nil
}

// Uint64Bytes encodes v as an 8-byte big-endian argument.
func Uint64Bytes(v uint64) []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, 8), v)
}

// Event is the structured log record contracts emit for auditors.
type Event struct {
	Name     string `json:"event"`
	SchemeID uint64 `json:"scheme_id,omitempty"`
	Subject  string `json:"subject,omitempty"`
	Amount   uint64 `json:"amount,omitempty"`
	Value    uint64 `json:"value,omitempty"`
}

// Emit logs an Event as JSON.
func Emit(ctx Context, ev Event) {
	b, err := json.Marshal(ev)
	if err != nil {
		return
	}
	ctx.Log(b)
}

// Registry resolves program names to implementations.
type Registry map[string]Program

// NewRegistry indexes programs by name.
func NewRegistry(programs ...Program) Registry {
	r := make(Registry, len(programs))
	for _, p := range programs {
		r[p.Name()] = p
	}
	return r
}

// PrecedingPayment returns the payment directly before the current call,
// which must pay the application account.
func PrecedingPayment(ctx Context) (model.Operation, error) {
	i := ctx.GroupIndex() - 1
	if i < 0 {
		return model.Operation{}, Fail("%s requires a preceding payment", ctx.Method())
	}
	op := ctx.GroupOperation(i)
	if op.Type != model.TypePayment || op.Payment == nil {
		return model.Operation{}, Fail("operation %d is not a payment", i)
	}
	if op.Payment.Receiver != ctx.AppAddress() {
		return model.Operation{}, Fail("payment %d does not pay the application", i)
	}
	return op, nil
}

// GlobalUint reads a uint global, zero when unset.
func GlobalUint(ctx Context, key string) uint64 {
	v, ok := ctx.GlobalGet(key)
	if !ok || v.Type != model.UintValue {
		return 0
	}
	return v.Uint
}

// GlobalAddress reads an address global, zero when unset.
func GlobalAddress(ctx Context, key string) model.Address {
	v, ok := ctx.GlobalGet(key)
	if !ok || v.Type != model.BytesValue {
		return model.ZeroAddress
	}
	addr, err := model.AddressFromBytes(v.Bytes)
	if err != nil {
		return model.ZeroAddress
	}
	return addr
}

// AddUint adds delta to a uint global. Overflow fails the call.
func AddUint(ctx Context, key string, delta uint64) error {
	sum, err := safe.Add(GlobalUint(ctx, key), delta)
	if err != nil {
		return Fail("global %s: %v", key, err)
	}
	ctx.GlobalPut(key, model.UintState(sum))
	return nil
}

// LocalUint reads a uint local of account, zero when unset.
func LocalUint(ctx Context, account model.Address, key string) (uint64, error) {
	v, ok, err := ctx.LocalGet(account, key)
	if err != nil || !ok || v.Type != model.UintValue {
		return 0, err
	}
	return v.Uint, nil
}

// AddressArg decodes a 32-byte address argument.
func AddressArg(args [][]byte, i int) (model.Address, error) {
	if i >= len(args) {
		return model.ZeroAddress, Fail("missing argument %d", i)
	}
	addr, err := model.AddressFromBytes(args[i])
	if err != nil {
		return model.ZeroAddress, Fail("argument %d is not an address", i)
	}
	return addr, nil
}
