package ledger

import (
	"errors"
	"fmt"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

var (
	// ErrNotFound marks an absent application, account opt-in, box or operation.
	ErrNotFound = errors.New("ledger: not found")
	// ErrGroupTooLarge is returned before submission when a group exceeds model.MaxGroupSize.
	ErrGroupTooLarge = errors.New("ledger: atomic group too large")
	// ErrUnavailable marks a node that answered outside the protocol, such as a
	// non-200 HTTP status.
	ErrUnavailable = errors.New("ledger: node unavailable")
)

// RejectedError is returned when the ledger refuses a group, typically because a
// contract assertion failed.
type RejectedError struct {
	// Index is the position of the offending operation in the group, -1 when unknown.
	Index  int
	Reason string
	// Stale is set when the group was built from outdated parameters: an
	// expired validity window, a foreign genesis or fees under the current
	// minimum. Fetching fresh parameters and resubmitting can succeed.
	Stale bool
}

func (e *RejectedError) Error() string {
	if e.Stale {
		return "ledger rejected stale parameters: " + e.Reason
	}
	if e.Index >= 0 {
		return fmt.Sprintf("ledger rejected operation %d: %s", e.Index, e.Reason)
	}
	return "ledger rejected group: " + e.Reason
}

// Reject builds a RejectedError for the operation at index.
func Reject(index int, format string, args ...any) *RejectedError {
	return &RejectedError{Index: index, Reason: fmt.Sprintf(format, args...)}
}

// RejectStale builds a RejectedError caused by outdated parameters.
func RejectStale(index int, format string, args ...any) *RejectedError {
	r := Reject(index, format, args...)
	r.Stale = true
	return r
}

// TimeoutError is returned when confirmation was not observed within the round budget.
type TimeoutError struct {
	TxID   model.TxID
	Rounds uint64
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("operation %s not confirmed after %d rounds; poll its status manually", e.TxID, e.Rounds)
}
