// Package apperr classifies failures into the categories callers act on.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/signer"
)

// Kind is the failure category.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthorization
	KindUserDeclined
	KindNetwork
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindUserDeclined:
		return "user_declined"
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// DeclinedMessage is shown when the wallet owner refuses to sign.
const DeclinedMessage = "Transaction rejected in wallet"

// Error carries a Kind together with the failed operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports a bad input detected before anything is submitted.
func Validation(op, format string, args ...any) error {
	return &Error{Kind: KindValidation, Op: op, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches op to err and classifies it. A nil err stays nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindOf(err), Op: op, Err: err}
}

// KindOf classifies err, looking through wrapped ledger and signer errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Kind != KindUnknown {
		return appErr.Kind
	}

	var (
		rejected *ledger.RejectedError
		timeout  *ledger.TimeoutError
		netErr   net.Error
	)
	switch {
	case errors.Is(err, signer.ErrDeclined):
		return KindUserDeclined
	case errors.As(err, &rejected) && rejected.Stale:
		return KindNetwork
	case errors.As(err, &rejected):
		return KindAuthorization
	case errors.Is(err, ledger.ErrGroupTooLarge):
		return KindValidation
	case errors.Is(err, ledger.ErrNotFound):
		return KindNotFound
	case errors.As(err, &timeout),
		errors.As(err, &netErr),
		errors.Is(err, ledger.ErrUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return KindNetwork
	default:
		return KindUnknown
	}
}

// Message returns the text shown to end users for err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if KindOf(err) == KindUserDeclined {
		return DeclinedMessage
	}
	return err.Error()
}

// Is reports whether err belongs to kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
