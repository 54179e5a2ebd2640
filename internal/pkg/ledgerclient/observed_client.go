package ledgerclient

import (
	"context"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

// ObservedClient reports every ledger call to RPCMetrics.
type ObservedClient struct {
	client     Ledger
	rpcMetrics RPCMetrics
}

var _ ledger.Client = (*ObservedClient)(nil)

func NewObservedClient(client Ledger, rpcMetrics RPCMetrics) *ObservedClient {
	return &ObservedClient{
		client:     client,
		rpcMetrics: rpcMetrics,
	}
}

func (r *ObservedClient) SuggestedParams(ctx context.Context) (sp model.SuggestedParams, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("suggested_params", err, started)
	}()
	return r.client.SuggestedParams(ctx)
}

func (r *ObservedClient) SendGroup(ctx context.Context, signed [][]byte) (txID model.TxID, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("send_group", err, started)
	}()
	return r.client.SendGroup(ctx, signed)
}

func (r *ObservedClient) WaitForConfirmation(ctx context.Context, txID model.TxID, waitRounds uint64) (info *model.PendingInfo, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("wait_for_confirmation", err, started)
	}()
	return r.client.WaitForConfirmation(ctx, txID, waitRounds)
}

func (r *ObservedClient) ApplicationState(ctx context.Context, app model.AppID) (st model.State, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("application_state", err, started)
	}()
	return r.client.ApplicationState(ctx, app)
}

func (r *ObservedClient) AccountApplicationState(ctx context.Context, account model.Address, app model.AppID) (st model.State, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("account_application_state", err, started)
	}()
	return r.client.AccountApplicationState(ctx, account, app)
}

func (r *ObservedClient) Box(ctx context.Context, app model.AppID, name []byte) (box *model.Box, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("box", err, started)
	}()
	return r.client.Box(ctx, app, name)
}

func (r *ObservedClient) BoxNames(ctx context.Context, app model.AppID, prefix []byte) (names [][]byte, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("box_names", err, started)
	}()
	return r.client.BoxNames(ctx, app, prefix)
}

func (r *ObservedClient) History(ctx context.Context, q model.HistoryQuery) (page *model.HistoryPage, err error) {
	started := time.Now()
	defer func() {
		r.rpcMetrics.Observe("history", err, started)
	}()
	return r.client.History(ctx, q)
}
