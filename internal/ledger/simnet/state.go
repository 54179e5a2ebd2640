package simnet

import (
	"sort"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
)

// Minimum balance requirements, in base units.
const (
	MinAccountBalance = 100_000
	MinAssetHolding   = 100_000
	MinAppOptIn       = 100_000
	BoxFlatMinBalance = 2_500
	BoxByteMinBalance = 400
)

type holding struct {
	amount uint64
	frozen bool
}

type account struct {
	balance  uint64
	local    map[model.AppID]model.State
	holdings map[model.AssetID]*holding
}

func newAccount() *account {
	return &account{
		local:    make(map[model.AppID]model.State),
		holdings: make(map[model.AssetID]*holding),
	}
}

func (a *account) clone() *account {
	out := &account{
		balance:  a.balance,
		local:    make(map[model.AppID]model.State, len(a.local)),
		holdings: make(map[model.AssetID]*holding, len(a.holdings)),
	}
	for id, st := range a.local {
		out.local[id] = st.Clone()
	}
	for id, h := range a.holdings {
		cp := *h
		out.holdings[id] = &cp
	}
	return out
}

func (a *account) empty() bool {
	return a.balance == 0 && len(a.local) == 0 && len(a.holdings) == 0
}

type application struct {
	id      model.AppID
	program string
	creator model.Address
	address model.Address
	global  model.State
	boxes   map[string][]byte
}

func (a *application) clone() *application {
	out := &application{
		id:      a.id,
		program: a.program,
		creator: a.creator,
		address: a.address,
		global:  a.global.Clone(),
		boxes:   make(map[string][]byte, len(a.boxes)),
	}
	for name, v := range a.boxes {
		cp := make([]byte, len(v))
		copy(cp, v)
		out.boxes[name] = cp
	}
	return out
}

func (a *application) boxMinBalance() uint64 {
	var total uint64
	for name, v := range a.boxes {
		total += BoxFlatMinBalance + BoxByteMinBalance*uint64(len(name)+len(v))
	}
	return total
}

func (a *application) boxNames(prefix []byte) [][]byte {
	names := make([]string, 0, len(a.boxes))
	for name := range a.boxes {
		if len(name) >= len(prefix) && name[:len(prefix)] == string(prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	out := make([][]byte, len(names))
	for i, name := range names {
		out[i] = []byte(name)
	}
	return out
}

type asset struct {
	id      model.AssetID
	creator model.Address
	params  model.AssetParams
}

// state is the full mutable ledger state. Groups run against a clone that
// replaces the committed state only on success.
type state struct {
	accounts     map[model.Address]*account
	apps         map[model.AppID]*application
	appByAddress map[model.Address]model.AppID
	assets       map[model.AssetID]*asset
	nextIndex    uint64
}

func newState() *state {
	return &state{
		accounts:     make(map[model.Address]*account),
		apps:         make(map[model.AppID]*application),
		appByAddress: make(map[model.Address]model.AppID),
		assets:       make(map[model.AssetID]*asset),
		nextIndex:    1000,
	}
}

func (s *state) clone() *state {
	out := &state{
		accounts:     make(map[model.Address]*account, len(s.accounts)),
		apps:         make(map[model.AppID]*application, len(s.apps)),
		appByAddress: make(map[model.Address]model.AppID, len(s.appByAddress)),
		assets:       make(map[model.AssetID]*asset, len(s.assets)),
		nextIndex:    s.nextIndex,
	}
	for addr, acc := range s.accounts {
		out.accounts[addr] = acc.clone()
	}
	for id, app := range s.apps {
		out.apps[id] = app.clone()
	}
	for addr, id := range s.appByAddress {
		out.appByAddress[addr] = id
	}
	for id, as := range s.assets {
		cp := *as
		out.assets[id] = &cp
	}
	return out
}

func (s *state) account(addr model.Address) *account {
	acc, ok := s.accounts[addr]
	if !ok {
		acc = newAccount()
		s.accounts[addr] = acc
	}
	return acc
}

func (s *state) allocateIndex() uint64 {
	s.nextIndex++
	return s.nextIndex
}

func (s *state) holdsBoxes(addr model.Address) bool {
	id, ok := s.appByAddress[addr]
	return ok && len(s.apps[id].boxes) > 0
}

func (s *state) minBalance(addr model.Address) uint64 {
	var total uint64
	if acc, ok := s.accounts[addr]; ok {
		total = MinAccountBalance
		total += MinAssetHolding * uint64(len(acc.holdings))
		total += MinAppOptIn * uint64(len(acc.local))
	}
	if id, ok := s.appByAddress[addr]; ok {
		if total == 0 {
			total = MinAccountBalance
		}
		total += s.apps[id].boxMinBalance()
	}
	return total
}
