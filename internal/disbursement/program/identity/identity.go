// Package identity is the citizen identity registry contract. Identities live
// in the citizen's local state; the registry keeps only counters.
package identity

import (
	"github.com/goodnatureofminers/benefitchain-backend/internal/disbursement/model"
	ledgermodel "github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/program"
)

const ProgramName = "identity_registry"

const (
	MethodMintIdentity      = "mint_identity"
	MethodVerifyKYC         = "verify_kyc"
	MethodUpdateEligibility = "update_eligibility"
	MethodRevokeIdentity    = "revoke_identity"
)

// Global state keys.
const (
	KeyAuthority        = "authority"
	KeyTotalIdentities  = "total_identities"
	KeyActiveIdentities = "active_identities"
	KeyRevokedCount     = "revoked_count"
)

// Local state keys.
const (
	KeyName             = "name"
	KeyIDHash           = "id_hash"
	KeyKYCLevel         = "kyc_level"
	KeyEligibilityFlags = "eligibility_flags"
	KeyIsActive         = "is_active"
	KeyIdentityID       = "identity_id"
	KeyMintedAt         = "minted_at"
)

const maxValueLength = 64

type Program struct{}

var _ program.Program = Program{}

func (Program) Name() string { return ProgramName }

// Create takes the authority from the first account reference or the creator.
func (Program) Create(ctx program.Context) error {
	authority := ctx.Sender()
	if accounts := ctx.Accounts(); len(accounts) > 0 && !accounts[0].IsZero() {
		authority = accounts[0]
	}
	ctx.GlobalPut(KeyAuthority, ledgermodel.BytesState(authority.Bytes()))
	ctx.GlobalPut(KeyTotalIdentities, ledgermodel.UintState(0))
	ctx.GlobalPut(KeyActiveIdentities, ledgermodel.UintState(0))
	ctx.GlobalPut(KeyRevokedCount, ledgermodel.UintState(0))
	return nil
}

func (Program) OptIn(ctx program.Context) error {
	return ctx.LocalPut(ctx.Sender(), KeyIsActive, ledgermodel.UintState(0))
}

func (Program) Call(ctx program.Context) error {
	switch ctx.Method() {
	case MethodMintIdentity:
		return mint(ctx)
	case MethodVerifyKYC:
		return verifyKYC(ctx)
	case MethodUpdateEligibility:
		return updateEligibility(ctx)
	case MethodRevokeIdentity:
		return revoke(ctx)
	default:
		return program.Fail("unknown method %q", ctx.Method())
	}
}

func requireAuthority(ctx program.Context) error {
	return program.Assert(ctx.Sender() == program.GlobalAddress(ctx, KeyAuthority), "sender %s is not the registry authority", ctx.Sender())
}

// mint_identity(name, id_hash) -> identity id
func mint(ctx program.Context) error {
	citizen := ctx.Sender()
	if err := program.Assert(ctx.IsOptedIn(citizen), "%s has not opted in", citizen); err != nil {
		return err
	}
	active, err := program.LocalUint(ctx, citizen, KeyIsActive)
	if err != nil {
		return err
	}
	if err := program.Assert(active == 0, "%s already holds an active identity", citizen); err != nil {
		return err
	}
	args := ctx.Args()
	name, err := program.StringArg(args, 0)
	if err != nil {
		return err
	}
	hash, err := program.StringArg(args, 1)
	if err != nil {
		return err
	}
	if err := program.Assert(name != "" && len(name) <= maxValueLength, "name length %d", len(name)); err != nil {
		return err
	}
	if err := program.Assert(hash != "" && len(hash) <= maxValueLength, "id hash length %d", len(hash)); err != nil {
		return err
	}

	id := program.GlobalUint(ctx, KeyTotalIdentities) + 1
	values := map[string]ledgermodel.StateValue{
		KeyName:             ledgermodel.BytesState([]byte(name)),
		KeyIDHash:           ledgermodel.BytesState([]byte(hash)),
		KeyKYCLevel:         ledgermodel.UintState(uint64(model.KYCNone)),
		KeyEligibilityFlags: ledgermodel.UintState(0),
		KeyIsActive:         ledgermodel.UintState(1),
		KeyIdentityID:       ledgermodel.UintState(id),
		KeyMintedAt:         ledgermodel.UintState(uint64(ctx.Now().Unix())),
	}
	for k, v := range values {
		if err := ctx.LocalPut(citizen, k, v); err != nil {
			return err
		}
	}
	ctx.GlobalPut(KeyTotalIdentities, ledgermodel.UintState(id))
	if err := program.AddUint(ctx, KeyActiveIdentities, 1); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: "identity_minted", Subject: citizen.String(), Value: id})
	ctx.Return(program.Uint64Bytes(id))
	return nil
}

// activeCitizen returns the first account reference after checking it holds an
// active identity.
func activeCitizen(ctx program.Context) (ledgermodel.Address, error) {
	citizen, err := program.AccountArg(ctx.Accounts(), 0)
	if err != nil {
		return citizen, err
	}
	if !ctx.IsOptedIn(citizen) {
		return citizen, program.Fail("%s has not opted in", citizen)
	}
	active, err := program.LocalUint(ctx, citizen, KeyIsActive)
	if err != nil {
		return citizen, err
	}
	return citizen, program.Assert(active == 1, "%s has no active identity", citizen)
}

// verify_kyc(level)
func verifyKYC(ctx program.Context) error {
	if err := requireAuthority(ctx); err != nil {
		return err
	}
	citizen, err := activeCitizen(ctx)
	if err != nil {
		return err
	}
	level, err := program.Uint64Arg(ctx.Args(), 0)
	if err != nil {
		return err
	}
	if err := program.Assert(level <= uint64(model.KYCComplete), "kyc level %d out of range", level); err != nil {
		return err
	}
	if err := ctx.LocalPut(citizen, KeyKYCLevel, ledgermodel.UintState(level)); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: "kyc_verified", Subject: citizen.String(), Value: level})
	return nil
}

// update_eligibility(mask)
func updateEligibility(ctx program.Context) error {
	if err := requireAuthority(ctx); err != nil {
		return err
	}
	citizen, err := activeCitizen(ctx)
	if err != nil {
		return err
	}
	mask, err := program.Uint64Arg(ctx.Args(), 0)
	if err != nil {
		return err
	}
	if err := program.Assert(mask <= 0xff, "eligibility mask %d out of range", mask); err != nil {
		return err
	}
	if err := ctx.LocalPut(citizen, KeyEligibilityFlags, ledgermodel.UintState(mask)); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: "eligibility_updated", Subject: citizen.String(), Value: mask})
	return nil
}

// revoke_identity keeps the record and clears is_active.
func revoke(ctx program.Context) error {
	if err := requireAuthority(ctx); err != nil {
		return err
	}
	citizen, err := activeCitizen(ctx)
	if err != nil {
		return err
	}
	if err := ctx.LocalPut(citizen, KeyIsActive, ledgermodel.UintState(0)); err != nil {
		return err
	}
	if active := program.GlobalUint(ctx, KeyActiveIdentities); active > 0 {
		ctx.GlobalPut(KeyActiveIdentities, ledgermodel.UintState(active-1))
	}
	if err := program.AddUint(ctx, KeyRevokedCount, 1); err != nil {
		return err
	}
	program.Emit(ctx, program.Event{Name: "identity_revoked", Subject: citizen.String()})
	return nil
}
