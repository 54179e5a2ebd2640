// Package factory is the scheme factory contract. One deployment holds every
// scheme in boxes and escrows their funds in the application account.
package factory

import (
	"time"

	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/storage"
	ledgermodel "github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/program"
)

// ProgramName identifies the factory in creation calls.
const ProgramName = "scheme_factory"

// Methods.
const (
	MethodCreateScheme        = "create_scheme"
	MethodFundScheme          = "fund_scheme"
	MethodActivateScheme      = "activate_scheme"
	MethodPauseScheme         = "pause_scheme"
	MethodResumeScheme        = "resume_scheme"
	MethodCloseScheme         = "close_scheme"
	MethodCompleteScheme      = "complete_scheme"
	MethodRegisterBeneficiary = "register_beneficiary"
	MethodVerifyBeneficiary   = "verify_beneficiary"
	MethodApproveBeneficiary  = "approve_beneficiary"
	MethodRejectBeneficiary   = "reject_beneficiary"
	MethodReleaseFunds        = "release_funds"
	MethodUpdateAuthority     = "update_authority"
	MethodAddSecondary        = "add_secondary_authority"
	MethodRemoveSecondary     = "remove_secondary_authority"
)

// Global state keys.
const (
	KeyAuthority          = "authority"
	KeySchemeCount        = "scheme_count"
	KeyTotalFunded        = "total_funded"
	KeyTotalDisbursed     = "total_disbursed"
	KeyTotalBeneficiaries = "total_beneficiaries"
)

// Program implements program.Program.
type Program struct{}

var _ program.Program = Program{}

func (Program) Name() string { return ProgramName }

// Create takes the primary authority from the first account reference and
// falls back to the creator.
func (Program) Create(ctx program.Context) error {
	authority := ctx.Sender()
	if accounts := ctx.Accounts(); len(accounts) > 0 && !accounts[0].IsZero() {
		authority = accounts[0]
	}
	ctx.GlobalPut(KeyAuthority, ledgermodel.BytesState(authority.Bytes()))
	ctx.GlobalPut(KeySchemeCount, ledgermodel.UintState(0))
	ctx.GlobalPut(KeyTotalFunded, ledgermodel.UintState(0))
	ctx.GlobalPut(KeyTotalDisbursed, ledgermodel.UintState(0))
	ctx.GlobalPut(KeyTotalBeneficiaries, ledgermodel.UintState(0))
	return nil
}

func (Program) OptIn(program.Context) error {
	return program.Fail("factory has no local state")
}

func (Program) Call(ctx program.Context) error {
	switch ctx.Method() {
	case MethodCreateScheme:
		return createScheme(ctx)
	case MethodFundScheme:
		return fundScheme(ctx)
	case MethodActivateScheme:
		return transition(ctx, "scheme_activated", func(s model.SchemeStatus) bool { return s == model.SchemeDraft }, model.SchemeActive)
	case MethodPauseScheme:
		return transition(ctx, "scheme_paused", func(s model.SchemeStatus) bool { return s == model.SchemeActive }, model.SchemePaused)
	case MethodResumeScheme:
		return transition(ctx, "scheme_resumed", func(s model.SchemeStatus) bool { return s == model.SchemePaused }, model.SchemeActive)
	case MethodCloseScheme:
		return settle(ctx, "scheme_closed", func(s model.SchemeStatus) bool { return !s.Terminal() }, model.SchemeCancelled)
	case MethodCompleteScheme:
		return settle(ctx, "scheme_completed", func(s model.SchemeStatus) bool {
			return s == model.SchemeActive || s == model.SchemePaused
		}, model.SchemeCompleted)
	case MethodRegisterBeneficiary:
		return registerBeneficiary(ctx)
	case MethodVerifyBeneficiary:
		return review(ctx, "beneficiary_verified", func(s model.BeneficiaryStatus) bool {
			return s == model.BeneficiaryRegistered
		}, model.BeneficiaryVerified)
	case MethodApproveBeneficiary:
		return review(ctx, "beneficiary_approved", func(s model.BeneficiaryStatus) bool {
			return s == model.BeneficiaryRegistered || s == model.BeneficiaryVerified
		}, model.BeneficiaryApproved)
	case MethodRejectBeneficiary:
		return review(ctx, "beneficiary_rejected", func(s model.BeneficiaryStatus) bool { return !s.Terminal() }, model.BeneficiaryRejected)
	case MethodReleaseFunds:
		return releaseFunds(ctx)
	case MethodUpdateAuthority:
		return updateAuthority(ctx)
	case MethodAddSecondary:
		return addSecondary(ctx)
	case MethodRemoveSecondary:
		return removeSecondary(ctx)
	default:
		return program.Fail("unknown method %q", ctx.Method())
	}
}

func isPrimary(ctx program.Context) bool {
	return ctx.Sender() == program.GlobalAddress(ctx, KeyAuthority)
}

// isAdmin accepts the primary authority or a registered secondary. The
// secondary check reads the sender's admin box, which the call must reference.
func isAdmin(ctx program.Context) (bool, error) {
	if isPrimary(ctx) {
		return true, nil
	}
	_, ok, err := ctx.BoxGet(storage.AdminKey(ctx.Sender()))
	if err != nil {
		return false, err
	}
	return ok, nil
}

func requireAdmin(ctx program.Context) error {
	ok, err := isAdmin(ctx)
	if err != nil {
		return err
	}
	return program.Assert(ok, "sender %s is not an authority", ctx.Sender())
}

func loadScheme(ctx program.Context, id uint64) (model.Scheme, error) {
	raw, ok, err := ctx.BoxGet(storage.SchemeKey(id))
	if err != nil {
		return model.Scheme{}, err
	}
	if !ok {
		return model.Scheme{}, program.Fail("scheme %d does not exist", id)
	}
	s, err := storage.DecodeScheme(id, raw)
	if err != nil {
		return model.Scheme{}, program.Fail("decode scheme %d: %v", id, err)
	}
	return s, nil
}

func saveScheme(ctx program.Context, s model.Scheme) error {
	if err := s.CheckInvariants(); err != nil {
		return program.Fail("scheme %d: %v", s.ID, err)
	}
	raw, err := storage.EncodeScheme(s)
	if err != nil {
		return program.Fail("encode scheme %d: %v", s.ID, err)
	}
	return ctx.BoxPut(storage.SchemeKey(s.ID), raw)
}

func loadBeneficiary(ctx program.Context, schemeID uint64, addr ledgermodel.Address) (model.Beneficiary, error) {
	raw, ok, err := ctx.BoxGet(storage.BeneficiaryKey(schemeID, addr))
	if err != nil {
		return model.Beneficiary{}, err
	}
	if !ok {
		return model.Beneficiary{}, program.Fail("%s is not registered in scheme %d", addr, schemeID)
	}
	b, err := storage.DecodeBeneficiary(schemeID, addr, raw)
	if err != nil {
		return model.Beneficiary{}, program.Fail("decode beneficiary: %v", err)
	}
	return b, nil
}

func saveBeneficiary(ctx program.Context, b model.Beneficiary) error {
	raw, err := storage.EncodeBeneficiary(b)
	if err != nil {
		return program.Fail("encode beneficiary: %v", err)
	}
	return ctx.BoxPut(storage.BeneficiaryKey(b.SchemeID, b.Address), raw)
}

// requireBoxPayment checks that the preceding payment covers the minimum
// balance of a new box.
func requireBoxPayment(ctx program.Context, key []byte, size int) error {
	pay, err := program.PrecedingPayment(ctx)
	if err != nil {
		return err
	}
	cost := storage.BoxCost(key, size)
	return program.Assert(pay.Payment.Amount >= cost, "box payment %d below required %d", pay.Payment.Amount, cost)
}

// create_scheme(name, budget, payout, deadline) -> id
func createScheme(ctx program.Context) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	args := ctx.Args()
	name, err := program.StringArg(args, 0)
	if err != nil {
		return err
	}
	budget, err := program.Uint64Arg(args, 1)
	if err != nil {
		return err
	}
	payout, err := program.Uint64Arg(args, 2)
	if err != nil {
		return err
	}
	deadline, err := program.Uint64Arg(args, 3)
	if err != nil {
		return err
	}
	if err := program.Assert(len(name) > 0 && len(name) <= model.MaxSchemeNameLength, "scheme name length %d", len(name)); err != nil {
		return err
	}
	if err := program.Assert(payout > 0 && payout <= budget, "payout %d outside (0, %d]", payout, budget); err != nil {
		return err
	}
	if err := program.Assert(deadline > uint64(ctx.Now().Unix()), "deadline is not in the future"); err != nil {
		return err
	}

	id := program.GlobalUint(ctx, KeySchemeCount) + 1
	key := storage.SchemeKey(id)
	if err := requireBoxPayment(ctx, key, storage.SchemeRecordSize); err != nil {
		return err
	}
	if err := ctx.BoxCreate(key, storage.SchemeRecordSize); err != nil {
		return err
	}
	s := model.Scheme{
		ID:        id,
		Name:      name,
		Budget:    budget,
		Payout:    payout,
		Deadline:  fromUnix(deadline),
		Status:    model.SchemeDraft,
		Authority: ctx.Sender(),
	}
	if err := saveScheme(ctx, s); err != nil {
		return err
	}
	ctx.GlobalPut(KeySchemeCount, ledgermodel.UintState(id))
	program.Emit(ctx, program.Event{Name: "scheme_created", SchemeID: id, Subject: ctx.Sender().String(), Amount: budget, Value: payout})
	ctx.Return(program.Uint64Bytes(id))
	return nil
}

// fund_scheme(id), preceded by a payment to the escrow.
func fundScheme(ctx program.Context) error {
	id, err := program.Uint64Arg(ctx.Args(), 0)
	if err != nil {
		return err
	}
	pay, err := program.PrecedingPayment(ctx)
	if err != nil {
		return err
	}
	amount := pay.Payment.Amount
	if err := program.Assert(amount > 0, "funding amount must be positive"); err != nil {
		return err
	}
	s, err := loadScheme(ctx, id)
	if err != nil {
		return err
	}
	if err := program.Assert(!s.Status.Terminal(), "scheme %d is %s", id, s.Status); err != nil {
		return err
	}
	if err := program.Assert(amount <= s.Budget-s.Funded, "funding %d exceeds remaining budget %d", amount, s.Budget-s.Funded); err != nil {
		return err
	}
	s.Funded += amount
	if err := saveScheme(ctx, s); err != nil {
		return err
	}
	if err := program.AddUint(ctx, KeyTotalFunded, amount); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: "scheme_funded", SchemeID: id, Subject: pay.Sender.String(), Amount: amount})
	return nil
}

func transition(ctx program.Context, event string, allowed func(model.SchemeStatus) bool, to model.SchemeStatus) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	id, err := program.Uint64Arg(ctx.Args(), 0)
	if err != nil {
		return err
	}
	s, err := loadScheme(ctx, id)
	if err != nil {
		return err
	}
	if err := program.Assert(allowed(s.Status), "scheme %d cannot move from %s to %s", id, s.Status, to); err != nil {
		return err
	}
	s.Status = to
	if err := saveScheme(ctx, s); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: event, SchemeID: id, Subject: ctx.Sender().String()})
	return nil
}

// settle moves a scheme to a terminal status and refunds the unspent escrow
// to the scheme authority.
func settle(ctx program.Context, event string, allowed func(model.SchemeStatus) bool, to model.SchemeStatus) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	id, err := program.Uint64Arg(ctx.Args(), 0)
	if err != nil {
		return err
	}
	s, err := loadScheme(ctx, id)
	if err != nil {
		return err
	}
	if err := program.Assert(allowed(s.Status), "scheme %d cannot move from %s to %s", id, s.Status, to); err != nil {
		return err
	}
	refund := s.Available()
	if refund > 0 {
		if err := ctx.InnerPayment(s.Authority, refund); err != nil {
			return err
		}
		s.Refunded += refund
	}
	s.Status = to
	if err := saveScheme(ctx, s); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: event, SchemeID: id, Subject: s.Authority.String(), Amount: refund})
	return nil
}

// register_beneficiary(id); the sender registers itself.
func registerBeneficiary(ctx program.Context) error {
	id, err := program.Uint64Arg(ctx.Args(), 0)
	if err != nil {
		return err
	}
	s, err := loadScheme(ctx, id)
	if err != nil {
		return err
	}
	if err := program.Assert(s.Status == model.SchemeActive, "scheme %d is %s", id, s.Status); err != nil {
		return err
	}
	if err := program.Assert(!ctx.Now().After(s.Deadline), "scheme %d registration deadline passed", id); err != nil {
		return err
	}
	key := storage.BeneficiaryKey(id, ctx.Sender())
	_, exists, err := ctx.BoxGet(key)
	if err != nil {
		return err
	}
	if err := program.Assert(!exists, "%s already registered in scheme %d", ctx.Sender(), id); err != nil {
		return err
	}
	if err := requireBoxPayment(ctx, key, storage.BeneficiaryRecordSize); err != nil {
		return err
	}
	if err := ctx.BoxCreate(key, storage.BeneficiaryRecordSize); err != nil {
		return err
	}
	b := model.Beneficiary{SchemeID: id, Address: ctx.Sender(), Status: model.BeneficiaryRegistered, RegisteredAt: ctx.Now()}
	if err := saveBeneficiary(ctx, b); err != nil {
		return err
	}
	s.BeneficiaryCount++
	if err := saveScheme(ctx, s); err != nil {
		return err
	}
	if err := program.AddUint(ctx, KeyTotalBeneficiaries, 1); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: "beneficiary_registered", SchemeID: id, Subject: ctx.Sender().String()})
	return nil
}

// review handles the authority decisions on a beneficiary: (id) with the
// beneficiary as the first account reference.
func review(ctx program.Context, event string, allowed func(model.BeneficiaryStatus) bool, to model.BeneficiaryStatus) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	id, err := program.Uint64Arg(ctx.Args(), 0)
	if err != nil {
		return err
	}
	addr, err := program.AccountArg(ctx.Accounts(), 0)
	if err != nil {
		return err
	}
	s, err := loadScheme(ctx, id)
	if err != nil {
		return err
	}
	if err := program.Assert(!s.Status.Terminal(), "scheme %d is %s", id, s.Status); err != nil {
		return err
	}
	b, err := loadBeneficiary(ctx, id, addr)
	if err != nil {
		return err
	}
	if err := program.Assert(allowed(b.Status), "beneficiary cannot move from %s to %s", b.Status, to); err != nil {
		return err
	}
	b.Status = to
	if err := saveBeneficiary(ctx, b); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: event, SchemeID: id, Subject: addr.String()})
	return nil
}

// release_funds(id) pays the scheme payout to the beneficiary in the first
// account reference. Callable by an authority or the beneficiary.
func releaseFunds(ctx program.Context) error {
	id, err := program.Uint64Arg(ctx.Args(), 0)
	if err != nil {
		return err
	}
	addr, err := program.AccountArg(ctx.Accounts(), 0)
	if err != nil {
		return err
	}
	if ctx.Sender() != addr {
		if err := requireAdmin(ctx); err != nil {
			return err
		}
	}
	s, err := loadScheme(ctx, id)
	if err != nil {
		return err
	}
	if err := program.Assert(s.Status == model.SchemeActive, "scheme %d is %s", id, s.Status); err != nil {
		return err
	}
	b, err := loadBeneficiary(ctx, id, addr)
	if err != nil {
		return err
	}
	if err := program.Assert(b.Status != model.BeneficiaryFunded, "beneficiary already funded"); err != nil {
		return err
	}
	if err := program.Assert(b.Status == model.BeneficiaryApproved, "beneficiary is %s, not approved", b.Status); err != nil {
		return err
	}
	if err := program.Assert(s.Payout <= s.Funded-s.Spent, "escrow holds %d, payout is %d", s.Funded-s.Spent, s.Payout); err != nil {
		return err
	}
	if err := ctx.InnerPayment(addr, s.Payout); err != nil {
		return err
	}
	b.Status = model.BeneficiaryFunded
	b.AmountReceived += s.Payout
	s.Spent += s.Payout
	if err := saveBeneficiary(ctx, b); err != nil {
		return err
	}
	if err := saveScheme(ctx, s); err != nil {
		return err
	}
	if err := program.AddUint(ctx, KeyTotalDisbursed, s.Payout); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: "funds_released", SchemeID: id, Subject: addr.String(), Amount: s.Payout})
	return nil
}

// update_authority(address)
func updateAuthority(ctx program.Context) error {
	if err := program.Assert(isPrimary(ctx), "only the primary authority can hand over"); err != nil {
		return err
	}
	next, err := program.AddressArg(ctx.Args(), 0)
	if err != nil {
		return err
	}
	if err := program.Assert(!next.IsZero(), "authority cannot be the zero address"); err != nil {
		return err
	}
	ctx.GlobalPut(KeyAuthority, ledgermodel.BytesState(next.Bytes()))
	program.Emit(ctx, program.Event{Name: "authority_updated", Subject: next.String()})
	return nil
}

// add_secondary_authority with the new admin as first account reference.
func addSecondary(ctx program.Context) error {
	if err := program.Assert(isPrimary(ctx), "only the primary authority manages secondaries"); err != nil {
		return err
	}
	addr, err := program.AccountArg(ctx.Accounts(), 0)
	if err != nil {
		return err
	}
	key := storage.AdminKey(addr)
	_, exists, err := ctx.BoxGet(key)
	if err != nil {
		return err
	}
	if err := program.Assert(!exists, "%s is already a secondary authority", addr); err != nil {
		return err
	}
	if err := requireBoxPayment(ctx, key, storage.AdminRecordSize); err != nil {
		return err
	}
	if err := ctx.BoxCreate(key, storage.AdminRecordSize); err != nil {
		return err
	}
	if err := ctx.BoxPut(key, storage.AdminRecord()); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: "secondary_added", Subject: addr.String()})
	return nil
}

func removeSecondary(ctx program.Context) error {
	if err := program.Assert(isPrimary(ctx), "only the primary authority manages secondaries"); err != nil {
		return err
	}
	addr, err := program.AccountArg(ctx.Accounts(), 0)
	if err != nil {
		return err
	}
	if err := ctx.BoxDelete(storage.AdminKey(addr)); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: "secondary_removed", Subject: addr.String()})
	return nil
}

func fromUnix(sec uint64) time.Time {
	return time.Unix(int64(sec), 0).UTC()
}
