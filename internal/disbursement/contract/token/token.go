// Package token issues and moves scheme disbursement tokens.
package token

import (
	"context"
	"errors"

	"github.com/goodnatureofminers/benefitchain-backend/internal/apperr"
	"github.com/goodnatureofminers/benefitchain-backend/internal/composer"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/contract"
	dmodel "github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"go.uber.org/zap"
)

// MaxTransferGroup is the largest number of transfers in one group.
const MaxTransferGroup = model.MaxGroupSize

// Client issues token operations. It holds no state besides its executor.
type Client struct {
	exec     contract.Executor
	maxBatch int
	logger   *zap.Logger
}

// New constructs a Client. maxBatch of zero selects MaxTransferGroup.
func New(exec contract.Executor, maxBatch int, logger *zap.Logger) (*Client, error) {
	if exec == nil {
		return nil, errors.New("executor is required")
	}
	if maxBatch <= 0 || maxBatch > MaxTransferGroup {
		maxBatch = MaxTransferGroup
	}
	return &Client{exec: exec, maxBatch: maxBatch, logger: logger.Named("token_client")}, nil
}

// MaxBatch is the transfer ceiling of one group.
func (c *Client) MaxBatch() int {
	return c.maxBatch
}

func (c *Client) execute(ctx context.Context, op string, items ...composer.Item) (*composer.Outcome, []model.TxID, error) {
	out, err := c.exec.Execute(ctx, items)
	if err != nil {
		c.logger.Warn("group failed", zap.String("op", op), zap.Error(err))
		return out, contract.TxIDs(out), apperr.Wrap(op, err)
	}
	return out, out.TxIDs, nil
}

// Create issues a new asset with every role held by authority.
func (c *Client) Create(ctx context.Context, authority contract.Account, cfg dmodel.TokenConfig) (model.AssetID, []model.TxID, error) {
	const op = "create token"
	switch {
	case cfg.Name == "" || len(cfg.Name) > dmodel.MaxAssetNameLength:
		return 0, nil, apperr.Validation(op, "asset name length %d outside [1, %d]", len(cfg.Name), dmodel.MaxAssetNameLength)
	case cfg.UnitName == "" || len(cfg.UnitName) > dmodel.MaxUnitNameLength:
		return 0, nil, apperr.Validation(op, "unit name length %d outside [1, %d]", len(cfg.UnitName), dmodel.MaxUnitNameLength)
	case cfg.Total == 0:
		return 0, nil, apperr.Validation(op, "total supply must be positive")
	}
	addr := authority.Address()
	params := model.AssetParams{
		Total:    cfg.Total,
		Decimals: cfg.Decimals,
		UnitName: cfg.UnitName,
		Name:     cfg.Name,
		URL:      cfg.URL,
		Manager:  addr,
		Reserve:  addr,
		Freeze:   addr,
		Clawback: addr,
	}
	if cfg.MetadataHash != ([32]byte{}) {
		params.MetadataHash = cfg.MetadataHash[:]
	}
	item := composer.Item{
		Signer: authority,
		Operation: model.Operation{
			Type:        model.TypeAssetConfig,
			Sender:      addr,
			AssetConfig: &model.AssetConfig{Params: params},
		},
	}
	out, ids, err := c.execute(ctx, op, item)
	if err != nil {
		return 0, ids, err
	}
	asset := out.Confirmations[0].AssetID
	c.logger.Info("token created", zap.Uint64("asset_id", uint64(asset)), zap.String("unit", cfg.UnitName))
	return asset, ids, nil
}

func transfer(from contract.Account, asset model.AssetID, to model.Address, amount uint64) composer.Item {
	return composer.Item{
		Signer: from,
		Operation: model.Operation{
			Type:          model.TypeAssetTransfer,
			Sender:        from.Address(),
			AssetTransfer: &model.AssetTransfer{AssetID: asset, Receiver: to, Amount: amount},
		},
	}
}

// OptIn lets holder receive asset: a zero-amount transfer to itself.
func (c *Client) OptIn(ctx context.Context, holder contract.Account, asset model.AssetID) ([]model.TxID, error) {
	_, ids, err := c.execute(ctx, "opt in to token", transfer(holder, asset, holder.Address(), 0))
	return ids, err
}

// Transfer moves amount units to a recipient. From the reserve it is a mint.
func (c *Client) Transfer(ctx context.Context, from contract.Account, asset model.AssetID, to model.Address, amount uint64) ([]model.TxID, error) {
	if amount == 0 {
		return nil, apperr.Validation("transfer token", "amount must be positive")
	}
	_, ids, err := c.execute(ctx, "transfer token", transfer(from, asset, to, amount))
	return ids, err
}

// BatchTransfer sends to every recipient in one atomic group. Callers with
// more recipients than MaxBatch chunk the list themselves.
func (c *Client) BatchTransfer(ctx context.Context, from contract.Account, asset model.AssetID, recipients []dmodel.Recipient) ([]model.TxID, error) {
	const op = "batch transfer token"
	if len(recipients) == 0 {
		return nil, apperr.Validation(op, "no recipients")
	}
	if len(recipients) > c.maxBatch {
		return nil, apperr.Validation(op, "%d transfers exceed the group limit of %d", len(recipients), c.maxBatch)
	}
	items := make([]composer.Item, len(recipients))
	for i, r := range recipients {
		if r.Amount == 0 {
			return nil, apperr.Validation(op, "recipient %d has zero amount", i)
		}
		items[i] = transfer(from, asset, r.Address, r.Amount)
	}
	_, ids, err := c.execute(ctx, op, items...)
	return ids, err
}

// Clawback pulls amount from target back to receiver. Only the clawback role can.
func (c *Client) Clawback(ctx context.Context, clawback contract.Account, asset model.AssetID, target, receiver model.Address, amount uint64) ([]model.TxID, error) {
	item := composer.Item{
		Signer: clawback,
		Operation: model.Operation{
			Type:   model.TypeAssetTransfer,
			Sender: clawback.Address(),
			AssetTransfer: &model.AssetTransfer{
				AssetID:          asset,
				Receiver:         receiver,
				Amount:           amount,
				RevocationTarget: target,
			},
		},
	}
	_, ids, err := c.execute(ctx, "clawback token", item)
	return ids, err
}

// Freeze sets or clears the frozen flag of target's holding.
func (c *Client) Freeze(ctx context.Context, freezer contract.Account, asset model.AssetID, target model.Address, frozen bool) ([]model.TxID, error) {
	item := composer.Item{
		Signer: freezer,
		Operation: model.Operation{
			Type:        model.TypeAssetFreeze,
			Sender:      freezer.Address(),
			AssetFreeze: &model.AssetFreeze{AssetID: asset, Target: target, Frozen: frozen},
		},
	}
	_, ids, err := c.execute(ctx, "freeze token", item)
	return ids, err
}
