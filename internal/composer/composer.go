// Package composer assembles operations into atomic groups, collects the
// signatures from the signers that own them and submits the group.
package composer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"go.uber.org/zap"
)

const (
	defaultWaitRounds = 4
	defaultOrdinary   = 1
	defaultInner      = 2
)

// Item is one operation of a group. Fee and validity fields of Operation are
// filled in by the composer.
type Item struct {
	Operation model.Operation
	Signer    Signer
	// Inner marks operations whose execution issues an inner transaction.
	Inner bool
}

// Outcome describes a confirmed group.
type Outcome struct {
	TxIDs          []model.TxID
	Confirmations  []model.PendingInfo
	ConfirmedRound model.Round
}

// Return decodes the method return value logged by the operation at index.
func (o *Outcome) Return(index int) ([]byte, bool) {
	if index < 0 || index >= len(o.Confirmations) {
		return nil, false
	}
	return o.Confirmations[index].ReturnValue()
}

// ReturnUint decodes a uint64 method return value logged by the operation at index.
func (o *Outcome) ReturnUint(index int) (uint64, bool) {
	if index < 0 || index >= len(o.Confirmations) {
		return 0, false
	}
	return o.Confirmations[index].ReturnUint()
}

// Option customises a Composer.
type Option func(*Composer)

// WithWaitRounds sets the confirmation round budget.
func WithWaitRounds(rounds uint64) Option {
	return func(c *Composer) {
		c.waitRounds = rounds
	}
}

// WithFeeMultipliers sets the fee multipliers for ordinary and inner-bearing operations.
func WithFeeMultipliers(ordinary, inner uint64) Option {
	return func(c *Composer) {
		c.ordinary = ordinary
		c.inner = inner
	}
}

// Composer builds, signs and submits atomic groups. It never retries a submission.
type Composer struct {
	ledger     LedgerClient
	metrics    Metrics
	logger     *zap.Logger
	waitRounds uint64
	ordinary   uint64
	inner      uint64
}

// New constructs a Composer.
func New(client LedgerClient, metrics Metrics, logger *zap.Logger, opts ...Option) (*Composer, error) {
	if client == nil {
		return nil, errors.New("ledger client is required")
	}
	if metrics == nil {
		return nil, errors.New("composer metrics is required")
	}
	c := &Composer{
		ledger:     client,
		metrics:    metrics,
		logger:     logger.Named("composer"),
		waitRounds: defaultWaitRounds,
		ordinary:   defaultOrdinary,
		inner:      defaultInner,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Execute submits items as one atomic group and waits for its confirmation.
func (c *Composer) Execute(ctx context.Context, items []Item) (*Outcome, error) {
	started := time.Now()
	out, err := c.execute(ctx, items)
	c.metrics.ObserveGroup(err, len(items), started)
	return out, err
}

func (c *Composer) execute(ctx context.Context, items []Item) (*Outcome, error) {
	if len(items) == 0 {
		return nil, errors.New("empty group")
	}
	if len(items) > model.MaxGroupSize {
		return nil, fmt.Errorf("%w: %d operations, limit %d", ledger.ErrGroupTooLarge, len(items), model.MaxGroupSize)
	}
	for i, it := range items {
		if it.Signer == nil {
			return nil, fmt.Errorf("operation %d has no signer", i)
		}
	}

	params, err := c.ledger.SuggestedParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("suggested params: %w", err)
	}

	ops, err := c.build(items, params)
	if err != nil {
		return nil, err
	}

	signed, err := c.sign(ctx, items, ops)
	if err != nil {
		return nil, err
	}

	ids := make([]model.TxID, len(ops))
	for i, op := range ops {
		if ids[i], err = op.ID(); err != nil {
			return nil, fmt.Errorf("operation %d id: %w", i, err)
		}
	}

	if _, err = c.ledger.SendGroup(ctx, signed); err != nil {
		return nil, fmt.Errorf("send group: %w", err)
	}
	c.logger.Debug("group submitted", zap.Int("operations", len(ops)), zap.String("first_tx", string(ids[0])))

	outcome := &Outcome{TxIDs: ids, Confirmations: make([]model.PendingInfo, len(ids))}
	for i, id := range ids {
		info, err := c.ledger.WaitForConfirmation(ctx, id, c.waitRounds)
		if err != nil {
			return outcome, fmt.Errorf("wait for %s: %w", id, err)
		}
		outcome.Confirmations[i] = *info
		outcome.ConfirmedRound = info.ConfirmedRound
	}
	return outcome, nil
}

// Params fetches the current fee and validity parameters.
func (c *Composer) Params(ctx context.Context) (model.SuggestedParams, error) {
	return c.ledger.SuggestedParams(ctx)
}

// Fee returns the fee an operation pays under the current minimum fee.
func (c *Composer) Fee(minFee uint64, inner bool) uint64 {
	if inner {
		return minFee * c.inner
	}
	return minFee * c.ordinary
}

func (c *Composer) build(items []Item, params model.SuggestedParams) ([]model.Operation, error) {
	ops := make([]model.Operation, len(items))
	for i, it := range items {
		op := it.Operation
		op.Fee = c.Fee(params.MinFee, it.Inner)
		op.FirstValid = params.FirstValid
		op.LastValid = params.LastValid
		op.GenesisID = params.GenesisID
		op.Group = model.GroupID{}
		ops[i] = op
	}
	if len(ops) == 1 {
		return ops, nil
	}
	gid, err := model.ComputeGroupID(ops)
	if err != nil {
		return nil, fmt.Errorf("compute group id: %w", err)
	}
	for i := range ops {
		ops[i].Group = gid
	}
	return ops, nil
}

// sign asks each distinct signer for its indexes, in ascending order, and
// slots the answers back into group order.
func (c *Composer) sign(ctx context.Context, items []Item, ops []model.Operation) ([][]byte, error) {
	var (
		order   []Signer
		indexes = make(map[Signer][]int)
	)
	for i, it := range items {
		if _, ok := indexes[it.Signer]; !ok {
			order = append(order, it.Signer)
		}
		indexes[it.Signer] = append(indexes[it.Signer], i)
	}

	signed := make([][]byte, len(ops))
	for _, s := range order {
		idx := indexes[s]
		blobs, err := s.Sign(ctx, ops, idx)
		if err != nil {
			return nil, fmt.Errorf("sign group: %w", err)
		}
		if len(blobs) != len(idx) {
			return nil, fmt.Errorf("signer returned %d signatures for %d operations", len(blobs), len(idx))
		}
		for k, i := range idx {
			signed[i] = blobs[k]
		}
	}
	for i, b := range signed {
		if len(b) == 0 {
			return nil, fmt.Errorf("operation %d left unsigned", i)
		}
	}
	return signed, nil
}
