package simnet

import (
	"bytes"
	"errors"
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/program"
)

const (
	maxUnitNameLength  = 8
	maxAssetNameLength = 32
	maxAssetDecimals   = 19
)

// groupRun carries the overlay state while one group executes.
type groupRun struct {
	l       *Ledger
	st      *state
	ops     []model.Operation
	round   model.Round
	now     time.Time
	inner   int
	touched map[model.Address]struct{}
}

func (l *Ledger) apply(group []model.SignedOperation) ([]model.PendingInfo, error) {
	ops := make([]model.Operation, len(group))
	for i := range group {
		ops[i] = group[i].Operation
	}

	ids, err := l.verify(group)
	if err != nil {
		return nil, err
	}

	run := &groupRun{
		l:       l,
		st:      l.state.clone(),
		ops:     ops,
		round:   l.round + 1,
		now:     l.now(),
		touched: make(map[model.Address]struct{}),
	}

	infos := make([]model.PendingInfo, len(ops))
	var feesPaid uint64
	for i := range ops {
		infos[i] = model.PendingInfo{TxID: ids[i], ConfirmedRound: run.round}
		if err := run.execute(i, &infos[i]); err != nil {
			var rejected *ledger.RejectedError
			if errors.As(err, &rejected) {
				return nil, rejected
			}
			return nil, ledger.Reject(i, "%v", err)
		}
		feesPaid += ops[i].Fee
	}

	required := l.minFee * uint64(len(ops)+run.inner)
	if feesPaid < required {
		return nil, ledger.RejectStale(-1, "insufficient fees: paid %d, required %d", feesPaid, required)
	}

	for addr := range run.touched {
		acc := run.st.account(addr)
		if acc.empty() && !run.st.holdsBoxes(addr) {
			continue
		}
		if minimum := run.st.minBalance(addr); acc.balance < minimum {
			return nil, ledger.Reject(-1, "account %s balance %d below minimum %d", addr, acc.balance, minimum)
		}
	}

	l.state = run.st
	l.round = run.round
	for i := range ops {
		l.confirmed[ids[i]] = infos[i]
		l.history = append(l.history, historyEntry(ops[i], infos[i], run.now))
	}
	return infos, nil
}

func (l *Ledger) verify(group []model.SignedOperation) ([]model.TxID, error) {
	ops := make([]model.Operation, len(group))
	for i := range group {
		ops[i] = group[i].Operation
	}

	var expected model.GroupID
	if len(ops) > 1 || !ops[0].Group.IsZero() {
		gid, err := model.ComputeGroupID(ops)
		if err != nil {
			return nil, ledger.Reject(-1, "compute group id: %v", err)
		}
		expected = gid
	}

	next := l.round + 1
	ids := make([]model.TxID, len(ops))
	seen := make(map[model.TxID]struct{}, len(ops))
	for i, s := range group {
		op := s.Operation
		if op.GenesisID != "" && op.GenesisID != l.genesisID {
			return nil, ledger.RejectStale(i, "genesis id %q does not match %q", op.GenesisID, l.genesisID)
		}
		if op.FirstValid > next || op.LastValid < next {
			return nil, ledger.RejectStale(i, "round %d outside validity window [%d, %d]", next, op.FirstValid, op.LastValid)
		}
		if op.Group != expected {
			return nil, ledger.Reject(i, "group id mismatch")
		}
		id, err := op.ID()
		if err != nil {
			return nil, ledger.Reject(i, "operation id: %v", err)
		}
		if _, dup := l.confirmed[id]; dup {
			return nil, ledger.Reject(i, "operation %s already in ledger", id)
		}
		if _, dup := seen[id]; dup {
			return nil, ledger.Reject(i, "duplicate operation %s in group", id)
		}
		seen[id] = struct{}{}
		if s.Signer != op.Sender {
			return nil, ledger.Reject(i, "operation must be signed by its sender")
		}
		if !bytes.Equal(s.Signature, Signature(id, s.Signer)) {
			return nil, ledger.Reject(i, "invalid signature")
		}
		ids[i] = id
	}
	return ids, nil
}

func (r *groupRun) touch(addr model.Address) {
	r.touched[addr] = struct{}{}
}

func (r *groupRun) transfer(from, to model.Address, amount uint64) error {
	src := r.st.account(from)
	if src.balance < amount {
		return program.Fail("overspend: %s has %d, needs %d", from, src.balance, amount)
	}
	dst := r.st.account(to)
	src.balance -= amount
	dst.balance += amount
	r.touch(from)
	r.touch(to)
	return nil
}

func (r *groupRun) execute(i int, info *model.PendingInfo) error {
	op := r.ops[i]
	sender := r.st.account(op.Sender)
	r.touch(op.Sender)
	if sender.balance < op.Fee {
		return program.Fail("sender cannot cover fee %d", op.Fee)
	}
	sender.balance -= op.Fee

	switch op.Type {
	case model.TypePayment:
		if op.Payment == nil {
			return program.Fail("payment body missing")
		}
		return r.transfer(op.Sender, op.Payment.Receiver, op.Payment.Amount)
	case model.TypeAppCall:
		return r.appCall(i, info)
	case model.TypeAssetConfig:
		return r.assetConfig(i, info)
	case model.TypeAssetTransfer:
		return r.assetTransfer(i)
	case model.TypeAssetFreeze:
		return r.assetFreeze(i)
	default:
		return program.Fail("unknown operation type %q", op.Type)
	}
}

func (r *groupRun) appCall(i int, info *model.PendingInfo) error {
	op := r.ops[i]
	call := op.AppCall
	if call == nil {
		return program.Fail("application call body missing")
	}

	if call.OnComplete == model.Create {
		prog, ok := r.l.programs[call.Program]
		if !ok {
			return program.Fail("unknown program %q", call.Program)
		}
		id := model.AppID(r.st.allocateIndex())
		app := &application{
			id:      id,
			program: call.Program,
			creator: op.Sender,
			address: model.ApplicationAddress(id),
			global:  model.State{},
			boxes:   make(map[string][]byte),
		}
		r.st.apps[id] = app
		r.st.appByAddress[app.address] = id
		info.ApplicationID = id
		return prog.Create(r.newContext(i, app, info))
	}

	app, ok := r.st.apps[call.AppID]
	if !ok {
		return program.Fail("application %d does not exist", call.AppID)
	}
	prog, ok := r.l.programs[app.program]
	if !ok {
		return program.Fail("program %q not hosted", app.program)
	}

	switch call.OnComplete {
	case model.OptIn:
		acc := r.st.account(op.Sender)
		if _, ok := acc.local[app.id]; ok {
			return program.Fail("account already opted in to application %d", app.id)
		}
		acc.local[app.id] = model.State{}
		return prog.OptIn(r.newContext(i, app, info))
	case model.NoOp, "":
		return prog.Call(r.newContext(i, app, info))
	default:
		return program.Fail("unsupported on-completion %q", call.OnComplete)
	}
}

func (r *groupRun) assetConfig(i int, info *model.PendingInfo) error {
	op := r.ops[i]
	cfg := op.AssetConfig
	if cfg == nil {
		return program.Fail("asset config body missing")
	}

	if cfg.AssetID == 0 {
		p := cfg.Params
		if p.Total == 0 {
			return program.Fail("asset total must be positive")
		}
		if p.Decimals > maxAssetDecimals {
			return program.Fail("asset decimals %d above %d", p.Decimals, maxAssetDecimals)
		}
		if len(p.UnitName) > maxUnitNameLength {
			return program.Fail("unit name longer than %d", maxUnitNameLength)
		}
		if len(p.Name) > maxAssetNameLength {
			return program.Fail("asset name longer than %d", maxAssetNameLength)
		}
		id := model.AssetID(r.st.allocateIndex())
		r.st.assets[id] = &asset{id: id, creator: op.Sender, params: p}
		r.st.account(op.Sender).holdings[id] = &holding{amount: p.Total}
		info.AssetID = id
		return nil
	}

	as, ok := r.st.assets[cfg.AssetID]
	if !ok {
		return program.Fail("asset %d does not exist", cfg.AssetID)
	}
	if as.params.Manager.IsZero() || op.Sender != as.params.Manager {
		return program.Fail("sender is not the asset manager")
	}
	as.params.Manager = cfg.Params.Manager
	as.params.Reserve = cfg.Params.Reserve
	as.params.Freeze = cfg.Params.Freeze
	as.params.Clawback = cfg.Params.Clawback
	return nil
}

func (r *groupRun) assetTransfer(i int) error {
	op := r.ops[i]
	x := op.AssetTransfer
	if x == nil {
		return program.Fail("asset transfer body missing")
	}
	as, ok := r.st.assets[x.AssetID]
	if !ok {
		return program.Fail("asset %d does not exist", x.AssetID)
	}

	if !x.RevocationTarget.IsZero() {
		if as.params.Clawback.IsZero() || op.Sender != as.params.Clawback {
			return program.Fail("sender is not the clawback account")
		}
		return r.moveAsset(x.AssetID, x.RevocationTarget, x.Receiver, x.Amount, false)
	}

	holder := r.st.account(op.Sender)
	if x.Receiver == op.Sender && x.Amount == 0 {
		if _, ok := holder.holdings[x.AssetID]; !ok {
			holder.holdings[x.AssetID] = &holding{frozen: as.params.DefaultFrozen}
		}
		return nil
	}
	return r.moveAsset(x.AssetID, op.Sender, x.Receiver, x.Amount, true)
}

func (r *groupRun) moveAsset(id model.AssetID, from, to model.Address, amount uint64, honourFreeze bool) error {
	src, ok := r.st.account(from).holdings[id]
	if !ok {
		return program.Fail("account %s not opted in to asset %d", from, id)
	}
	dst, ok := r.st.account(to).holdings[id]
	if !ok {
		return program.Fail("receiver %s not opted in to asset %d", to, id)
	}
	if honourFreeze && src.frozen {
		return program.Fail("holding of %s is frozen", from)
	}
	if honourFreeze && dst.frozen {
		return program.Fail("holding of %s is frozen", to)
	}
	if src.amount < amount {
		return program.Fail("asset overspend: %s has %d, needs %d", from, src.amount, amount)
	}
	src.amount -= amount
	dst.amount += amount
	r.touch(from)
	r.touch(to)
	return nil
}

func (r *groupRun) assetFreeze(i int) error {
	op := r.ops[i]
	f := op.AssetFreeze
	if f == nil {
		return program.Fail("asset freeze body missing")
	}
	as, ok := r.st.assets[f.AssetID]
	if !ok {
		return program.Fail("asset %d does not exist", f.AssetID)
	}
	if as.params.Freeze.IsZero() || op.Sender != as.params.Freeze {
		return program.Fail("sender is not the freeze account")
	}
	h, ok := r.st.account(f.Target).holdings[f.AssetID]
	if !ok {
		return program.Fail("account %s not opted in to asset %d", f.Target, f.AssetID)
	}
	h.frozen = f.Frozen
	return nil
}

func historyEntry(op model.Operation, info model.PendingInfo, at time.Time) model.HistoryTransaction {
	tx := model.HistoryTransaction{
		ID:             info.TxID,
		Type:           op.Type,
		Sender:         op.Sender,
		Group:          op.Group,
		ConfirmedRound: info.ConfirmedRound,
		RoundTime:      at,
		Logs:           info.Logs,
	}
	switch {
	case op.Payment != nil:
		tx.Amount = op.Payment.Amount
		tx.Receiver = op.Payment.Receiver
	case op.AppCall != nil:
		tx.AppID = op.AppCall.AppID
		if info.ApplicationID != 0 {
			tx.AppID = info.ApplicationID
		}
		tx.Method = op.AppCall.Method
		tx.Args = op.AppCall.Args
		tx.Accounts = op.AppCall.Accounts
	case op.AssetTransfer != nil:
		tx.Amount = op.AssetTransfer.Amount
		tx.Receiver = op.AssetTransfer.Receiver
	}
	return tx
}
