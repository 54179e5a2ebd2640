// Package rpc carries the ledger client over JSON-RPC 2.0.
package rpc

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
)

// Method names.
const (
	MethodSuggestedParams         = "ledger_suggestedParams"
	MethodSendGroup               = "ledger_sendGroup"
	MethodPendingInfo             = "ledger_pendingInfo"
	MethodStatus                  = "ledger_status"
	MethodApplicationState        = "ledger_applicationState"
	MethodAccountApplicationState = "ledger_accountApplicationState"
	MethodBox                     = "ledger_box"
	MethodBoxNames                = "ledger_boxNames"
	MethodHistory                 = "ledger_history"
)

// Application error codes, outside the range reserved by JSON-RPC.
const (
	CodeNotFound      btcjson.RPCErrorCode = -32004
	CodeRejected      btcjson.RPCErrorCode = -32010
	CodeGroupTooLarge btcjson.RPCErrorCode = -32011
	CodeStaleParams   btcjson.RPCErrorCode = -32012
)

// toRPCError maps a ledger error onto the wire.
func toRPCError(err error) *btcjson.RPCError {
	var rejected *ledger.RejectedError
	switch {
	case errors.As(err, &rejected):
		code := CodeRejected
		if rejected.Stale {
			code = CodeStaleParams
		}
		return btcjson.NewRPCError(code, strconv.Itoa(rejected.Index)+":"+rejected.Reason)
	case errors.Is(err, ledger.ErrNotFound):
		return btcjson.NewRPCError(CodeNotFound, err.Error())
	case errors.Is(err, ledger.ErrGroupTooLarge):
		return btcjson.NewRPCError(CodeGroupTooLarge, err.Error())
	default:
		return btcjson.NewRPCError(btcjson.ErrRPCInternal.Code, err.Error())
	}
}

// fromRPCError restores the ledger error a server reported.
func fromRPCError(method string, e *btcjson.RPCError) error {
	switch e.Code {
	case CodeRejected, CodeStaleParams:
		stale := e.Code == CodeStaleParams
		idx, reason, ok := strings.Cut(e.Message, ":")
		index, err := strconv.Atoi(idx)
		if !ok || err != nil {
			return &ledger.RejectedError{Index: -1, Reason: e.Message, Stale: stale}
		}
		return &ledger.RejectedError{Index: index, Reason: reason, Stale: stale}
	case CodeNotFound:
		return fmt.Errorf("%s: %w", method, ledger.ErrNotFound)
	case CodeGroupTooLarge:
		return fmt.Errorf("%s: %w", method, ledger.ErrGroupTooLarge)
	default:
		return fmt.Errorf("%s: rpc error %d: %s", method, e.Code, e.Message)
	}
}
