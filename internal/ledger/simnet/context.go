package simnet

import (
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/program"
)

const maxBoxSize = 32 * 1024

type execContext struct {
	run     *groupRun
	index   int
	app     *application
	info    *model.PendingInfo
	boxRefs map[string]struct{}
}

var _ program.Context = (*execContext)(nil)

func (r *groupRun) newContext(i int, app *application, info *model.PendingInfo) *execContext {
	refs := make(map[string]struct{})
	for _, op := range r.ops {
		if op.AppCall == nil {
			continue
		}
		for _, ref := range op.AppCall.Boxes {
			target := ref.AppID
			if target == 0 {
				target = op.AppCall.AppID
			}
			if target == app.id {
				refs[string(ref.Name)] = struct{}{}
			}
		}
	}
	return &execContext{run: r, index: i, app: app, info: info, boxRefs: refs}
}

func (c *execContext) op() model.Operation {
	return c.run.ops[c.index]
}

func (c *execContext) AppID() model.AppID { return c.app.id }
func (c *execContext) AppAddress() model.Address { return c.app.address }
func (c *execContext) Sender() model.Address { return c.op().Sender }
func (c *execContext) Method() string { return c.op().AppCall.Method }
func (c *execContext) Args() [][]byte { return c.op().AppCall.Args }
func (c *execContext) Accounts() []model.Address { return c.op().AppCall.Accounts }
func (c *execContext) Round() model.Round { return c.run.round }
func (c *execContext) Now() time.Time { return c.run.now }
func (c *execContext) GroupIndex() int { return c.index }
func (c *execContext) GroupSize() int { return len(c.run.ops) }
func (c *execContext) Log(entry []byte) { c.info.Logs = append(c.info.Logs, append([]byte(nil), entry...)) }
func (c *execContext) Return(value []byte) { c.Log(model.EncodeReturn(value)) }
func (c *execContext) GroupOperation(i int) model.Operation {
	return c.run.ops[i]
}

func (c *execContext) GlobalGet(key string) (model.StateValue, bool) {
	v, ok := c.app.global[key]
	return v, ok
}

func (c *execContext) GlobalPut(key string, v model.StateValue) {
	c.app.global[key] = v
}

func (c *execContext) IsOptedIn(account model.Address) bool {
	acc, ok := c.run.st.accounts[account]
	if !ok {
		return false
	}
	_, ok = acc.local[c.app.id]
	return ok
}

func (c *execContext) LocalGet(account model.Address, key string) (model.StateValue, bool, error) {
	acc, ok := c.run.st.accounts[account]
	if !ok {
		return model.StateValue{}, false, program.Fail("account %s not opted in", account)
	}
	local, ok := acc.local[c.app.id]
	if !ok {
		return model.StateValue{}, false, program.Fail("account %s not opted in", account)
	}
	v, ok := local[key]
	return v, ok, nil
}

func (c *execContext) LocalPut(account model.Address, key string, v model.StateValue) error {
	acc, ok := c.run.st.accounts[account]
	if !ok {
		return program.Fail("account %s not opted in", account)
	}
	local, ok := acc.local[c.app.id]
	if !ok {
		return program.Fail("account %s not opted in", account)
	}
	local[key] = v
	return nil
}

func (c *execContext) checkRef(name []byte) error {
	if _, ok := c.boxRefs[string(name)]; !ok {
		return program.Fail("box %q not referenced by the group", name)
	}
	return nil
}

func (c *execContext) BoxGet(name []byte) ([]byte, bool, error) {
	if err := c.checkRef(name); err != nil {
		return nil, false, err
	}
	v, ok := c.app.boxes[string(name)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (c *execContext) BoxCreate(name []byte, size int) error {
	if err := c.checkRef(name); err != nil {
		return err
	}
	if len(name) == 0 || len(name) > 64 {
		return program.Fail("invalid box name length %d", len(name))
	}
	if size <= 0 || size > maxBoxSize {
		return program.Fail("invalid box size %d", size)
	}
	if _, ok := c.app.boxes[string(name)]; ok {
		return program.Fail("box %q already exists", name)
	}
	c.app.boxes[string(name)] = make([]byte, size)
	c.run.touch(c.app.address)
	return nil
}

func (c *execContext) BoxPut(name []byte, value []byte) error {
	if err := c.checkRef(name); err != nil {
		return err
	}
	existing, ok := c.app.boxes[string(name)]
	if !ok {
		return program.Fail("box %q does not exist", name)
	}
	if len(existing) != len(value) {
		return program.Fail("box %q size %d, value size %d", name, len(existing), len(value))
	}
	c.app.boxes[string(name)] = append([]byte(nil), value...)
	return nil
}

func (c *execContext) BoxDelete(name []byte) error {
	if err := c.checkRef(name); err != nil {
		return err
	}
	if _, ok := c.app.boxes[string(name)]; !ok {
		return program.Fail("box %q does not exist", name)
	}
	delete(c.app.boxes, string(name))
	return nil
}

func (c *execContext) Balance(account model.Address) uint64 {
	if acc, ok := c.run.st.accounts[account]; ok {
		return acc.balance
	}
	return 0
}

func (c *execContext) MinBalance(account model.Address) uint64 {
	return c.run.st.minBalance(account)
}

func (c *execContext) InnerPayment(receiver model.Address, amount uint64) error {
	c.run.inner++
	return c.run.transfer(c.app.address, receiver, amount)
}
