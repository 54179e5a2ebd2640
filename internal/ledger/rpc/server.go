package rpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"go.uber.org/zap"
)

const maxRequestBytes = 1 << 20

type request struct {
	Jsonrpc string            `json:"jsonrpc"`
	ID      interface{}       `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
}

type response struct {
	Result json.RawMessage   `json:"result"`
	Error  *btcjson.RPCError `json:"error"`
	ID     interface{}       `json:"id"`
}

// Backend is the ledger a Server exposes.
type Backend interface {
	ledger.Client
	Status(ctx context.Context) (model.NodeStatus, error)
	PendingInfo(ctx context.Context, txID model.TxID) (*model.PendingInfo, error)
}

// Server serves the ledger JSON-RPC methods over HTTP.
type Server struct {
	backend Backend
	logger  *zap.Logger
}

// NewServer wraps backend.
func NewServer(backend Backend, logger *zap.Logger) (*Server, error) {
	if backend == nil {
		return nil, errors.New("backend is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Server{backend: backend, logger: logger.Named("ledger_rpc_server")}, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.write(w, nil, nil, btcjson.NewRPCError(btcjson.ErrRPCParse.Code, "parse error"))
		return
	}
	if req.Jsonrpc != string(btcjson.RpcVersion2) || req.Method == "" {
		s.write(w, req.ID, nil, btcjson.NewRPCError(btcjson.ErrRPCInvalidRequest.Code, "invalid request"))
		return
	}

	result, rpcErr := s.dispatch(r.Context(), req.Method, req.Params)
	s.write(w, req.ID, result, rpcErr)
}

func (s *Server) dispatch(ctx context.Context, method string, params []json.RawMessage) (interface{}, *btcjson.RPCError) {
	var (
		result interface{}
		err    error
	)
	switch method {
	case MethodSuggestedParams:
		result, err = s.backend.SuggestedParams(ctx)
	case MethodStatus:
		result, err = s.backend.Status(ctx)
	case MethodSendGroup:
		var signed [][]byte
		if perr := decodeParams(params, &signed); perr != nil {
			return nil, perr
		}
		result, err = s.backend.SendGroup(ctx, signed)
	case MethodPendingInfo:
		var txID model.TxID
		if perr := decodeParams(params, &txID); perr != nil {
			return nil, perr
		}
		result, err = s.backend.PendingInfo(ctx, txID)
	case MethodApplicationState:
		var app model.AppID
		if perr := decodeParams(params, &app); perr != nil {
			return nil, perr
		}
		result, err = s.backend.ApplicationState(ctx, app)
	case MethodAccountApplicationState:
		var (
			account model.Address
			app     model.AppID
		)
		if perr := decodeParams(params, &account, &app); perr != nil {
			return nil, perr
		}
		result, err = s.backend.AccountApplicationState(ctx, account, app)
	case MethodBox:
		var (
			app  model.AppID
			name []byte
		)
		if perr := decodeParams(params, &app, &name); perr != nil {
			return nil, perr
		}
		result, err = s.backend.Box(ctx, app, name)
	case MethodBoxNames:
		var (
			app    model.AppID
			prefix []byte
		)
		if perr := decodeParams(params, &app, &prefix); perr != nil {
			return nil, perr
		}
		result, err = s.backend.BoxNames(ctx, app, prefix)
	case MethodHistory:
		var q model.HistoryQuery
		if perr := decodeParams(params, &q); perr != nil {
			return nil, perr
		}
		result, err = s.backend.History(ctx, q)
	default:
		return nil, btcjson.NewRPCError(btcjson.ErrRPCMethodNotFound.Code, "method not found: "+method)
	}

	if err != nil {
		s.logger.Debug("rpc call failed", zap.String("method", method), zap.Error(err))
		return nil, toRPCError(err)
	}
	return result, nil
}

func decodeParams(params []json.RawMessage, out ...interface{}) *btcjson.RPCError {
	if len(params) != len(out) {
		return btcjson.NewRPCError(btcjson.ErrRPCInvalidParams.Code,
			fmt.Sprintf("expected %d params, got %d", len(out), len(params)))
	}
	for i, dst := range out {
		if err := json.Unmarshal(params[i], dst); err != nil {
			return btcjson.NewRPCError(btcjson.ErrRPCInvalidParams.Code, fmt.Sprintf("param %d: %v", i, err))
		}
	}
	return nil
}

func (s *Server) write(w http.ResponseWriter, id interface{}, result interface{}, rpcErr *btcjson.RPCError) {
	if rpcErr != nil {
		result = nil
	}
	body, err := btcjson.MarshalResponse(btcjson.RpcVersion2, id, result, rpcErr)
	if err != nil {
		s.logger.Error("marshal rpc response", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write(body); err != nil {
		s.logger.Debug("write rpc response", zap.Error(err))
	}
}
