// Package treasury is the per-student milestone treasury contract. Each
// deployment pays one fixed payout per student once their milestone is marked
// complete.
package treasury

import (
	ledgermodel "github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/program"
)

const ProgramName = "milestone_treasury"

const (
	MethodRegisterStudent = "register_student"
	MethodMarkMilestone   = "mark_milestone_complete"
	MethodReleasePayout   = "release_payout"
	MethodSetActive       = "set_active"
	MethodUpdateAuthority = "update_authority"
)

// Global state keys.
const (
	KeyTotalBudget  = "total_budget"
	KeySpentBudget  = "spent_budget"
	KeyPayoutAmount = "payout_amount"
	KeySchemeActive = "scheme_active"
	KeyAuthority    = "authority"
)

// Local state keys.
const (
	KeyIsRegistered       = "is_registered"
	KeyMilestoneCompleted = "milestone_completed"
	KeyHasBeenPaid        = "has_been_paid"
)

type Program struct{}

var _ program.Program = Program{}

func (Program) Name() string { return ProgramName }

// Create expects (authority, total_budget, payout).
func (Program) Create(ctx program.Context) error {
	args := ctx.Args()
	authority, err := program.AddressArg(args, 0)
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
	if err := program.Assert(!authority.IsZero(), "authority is required"); err != nil {
		return err
	}
	if err := program.Assert(payout > 0 && payout <= budget, "payout %d outside (0, %d]", payout, budget); err != nil {
		return err
	}
	ctx.GlobalPut(KeyAuthority, ledgermodel.BytesState(authority.Bytes()))
	ctx.GlobalPut(KeyTotalBudget, ledgermodel.UintState(budget))
	ctx.GlobalPut(KeySpentBudget, ledgermodel.UintState(0))
	ctx.GlobalPut(KeyPayoutAmount, ledgermodel.UintState(payout))
	ctx.GlobalPut(KeySchemeActive, ledgermodel.UintState(1))
	return nil
}

func (Program) OptIn(ctx program.Context) error {
	for _, key := range []string{KeyIsRegistered, KeyMilestoneCompleted, KeyHasBeenPaid} {
		if err := ctx.LocalPut(ctx.Sender(), key, ledgermodel.UintState(0)); err != nil {
			return err
		}
	}
	return nil
}

func (Program) Call(ctx program.Context) error {
	switch ctx.Method() {
	case MethodRegisterStudent:
		return registerStudent(ctx)
	case MethodMarkMilestone:
		return markMilestone(ctx)
	case MethodReleasePayout:
		return releasePayout(ctx)
	case MethodSetActive:
		return setActive(ctx)
	case MethodUpdateAuthority:
		return updateAuthority(ctx)
	default:
		return program.Fail("unknown method %q", ctx.Method())
	}
}

func requireAuthority(ctx program.Context) error {
	return program.Assert(ctx.Sender() == program.GlobalAddress(ctx, KeyAuthority), "sender %s is not the treasury authority", ctx.Sender())
}

func flag(ctx program.Context, student ledgermodel.Address, key string) (bool, error) {
	if !ctx.IsOptedIn(student) {
		return false, program.Fail("student %s has not opted in", student)
	}
	v, err := program.LocalUint(ctx, student, key)
	return v == 1, err
}

func registerStudent(ctx program.Context) error {
	student := ctx.Sender()
	registered, err := flag(ctx, student, KeyIsRegistered)
	if err != nil {
		return err
	}
	if err := program.Assert(!registered, "student %s already registered", student); err != nil {
		return err
	}
	if err := ctx.LocalPut(student, KeyIsRegistered, ledgermodel.UintState(1)); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: "student_registered", Subject: student.String()})
	return nil
}

// mark_milestone_complete with the student as first account reference.
func markMilestone(ctx program.Context) error {
	if err := requireAuthority(ctx); err != nil {
		return err
	}
	student, err := program.AccountArg(ctx.Accounts(), 0)
	if err != nil {
		return err
	}
	if _, err := flag(ctx, student, KeyMilestoneCompleted); err != nil {
		return err
	}
	if err := ctx.LocalPut(student, KeyMilestoneCompleted, ledgermodel.UintState(1)); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: "milestone_completed", Subject: student.String()})
	return nil
}

// release_payout with the student as first account reference. Anyone may
// trigger it; amount and destination come from contract state.
func releasePayout(ctx program.Context) error {
	student, err := program.AccountArg(ctx.Accounts(), 0)
	if err != nil {
		return err
	}
	if err := program.Assert(program.GlobalUint(ctx, KeySchemeActive) == 1, "treasury is not active"); err != nil {
		return err
	}
	done, err := flag(ctx, student, KeyMilestoneCompleted)
	if err != nil {
		return err
	}
	if err := program.Assert(done, "milestone of %s not completed", student); err != nil {
		return err
	}
	paid, err := flag(ctx, student, KeyHasBeenPaid)
	if err != nil {
		return err
	}
	if err := program.Assert(!paid, "student %s already paid", student); err != nil {
		return err
	}
	payout := program.GlobalUint(ctx, KeyPayoutAmount)
	spent := program.GlobalUint(ctx, KeySpentBudget)
	budget := program.GlobalUint(ctx, KeyTotalBudget)
	if err := program.Assert(payout <= budget-spent, "payout %d exceeds remaining budget %d", payout, budget-spent); err != nil {
		return err
	}
	if err := ctx.InnerPayment(student, payout); err != nil {
		return err
	}
	if err := ctx.LocalPut(student, KeyHasBeenPaid, ledgermodel.UintState(1)); err != nil {
		return err
	}
	ctx.GlobalPut(KeySpentBudget, ledgermodel.UintState(spent+payout))
	program.Emit(ctx, program.Event{Name: "payout_released", Subject: student.String(), Amount: payout})
	return nil
}

// set_active(0|1)
func setActive(ctx program.Context) error {
	if err := requireAuthority(ctx); err != nil {
		return err
	}
	v, err := program.Uint64Arg(ctx.Args(), 0)
	if err != nil {
		return err
	}
	if err := program.Assert(v <= 1, "set_active expects 0 or 1"); err != nil {
		return err
	}
	ctx.GlobalPut(KeySchemeActive, ledgermodel.UintState(v))
	program.Emit(ctx, program.Event{Name: "treasury_active", Value: v})
	return nil
}

func updateAuthority(ctx program.Context) error {
	if err := requireAuthority(ctx); err != nil {
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
	return nil
}
