// Package contract holds the pieces shared by the contract clients: the
// acting account, the group executor and operation builders.
package contract

import (
	"context"

	"github.com/goodnatureofminers/benefitchain-backend/internal/composer"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/model"
	"github.com/goodnatureofminers/benefitchain-backend/internal/ledger/program"
)

// EscrowMinBalance is the base reserve every application account must hold.
const EscrowMinBalance = 100_000

// Account is a signer that acts for one ledger address.
type Account interface {
	composer.Signer
	Address() model.Address
}

// Executor submits atomic groups.
type Executor interface {
	Execute(ctx context.Context, items []composer.Item) (*composer.Outcome, error)
}

// Payment transfers amount from the account to receiver.
func Payment(from Account, receiver model.Address, amount uint64) composer.Item {
	return composer.Item{
		Signer: from,
		Operation: model.Operation{
			Type:    model.TypePayment,
			Sender:  from.Address(),
			Payment: &model.Payment{Receiver: receiver, Amount: amount},
		},
	}
}

// Call builds a method call on app. Boxes are box names of app.
type Call struct {
	App      model.AppID
	Method   string
	Args     [][]byte
	Accounts []model.Address
	Boxes    [][]byte
	// Inner marks calls that issue an inner transaction and pay the doubled fee.
	Inner bool
}

// Item turns the call into a group item signed by from.
func (c Call) Item(from Account) composer.Item {
	refs := make([]model.BoxRef, 0, len(c.Boxes))
	for _, name := range c.Boxes {
		refs = append(refs, model.BoxRef{AppID: c.App, Name: name})
	}
	return composer.Item{
		Signer: from,
		Inner:  c.Inner,
		Operation: model.Operation{
			Type:   model.TypeAppCall,
			Sender: from.Address(),
			AppCall: &model.AppCall{
				AppID:      c.App,
				OnComplete: model.NoOp,
				Method:     c.Method,
				Args:       c.Args,
				Accounts:   c.Accounts,
				Boxes:      refs,
			},
		},
	}
}

// OptIn allocates the account's local state in app.
func OptIn(from Account, app model.AppID) composer.Item {
	return composer.Item{
		Signer: from,
		Operation: model.Operation{
			Type:    model.TypeAppCall,
			Sender:  from.Address(),
			AppCall: &model.AppCall{AppID: app, OnComplete: model.OptIn},
		},
	}
}

// Deploy creates an application of programName and funds its account with the
// base reserve in a follow-up group.
func Deploy(ctx context.Context, exec Executor, creator Account, programName string, args [][]byte, accounts []model.Address) (model.AppID, []model.TxID, error) {
	create := composer.Item{
		Signer: creator,
		Operation: model.Operation{
			Type:   model.TypeAppCall,
			Sender: creator.Address(),
			AppCall: &model.AppCall{
				OnComplete: model.Create,
				Program:    programName,
				Args:       args,
				Accounts:   accounts,
			},
		},
	}
	out, err := exec.Execute(ctx, []composer.Item{create})
	if err != nil {
		return 0, nil, err
	}
	app := out.Confirmations[0].ApplicationID
	ids := out.TxIDs

	out, err = exec.Execute(ctx, []composer.Item{Payment(creator, model.ApplicationAddress(app), EscrowMinBalance)})
	if err != nil {
		return app, ids, err
	}
	return app, append(ids, out.TxIDs...), nil
}

// Uint64 encodes an integer argument.
func Uint64(v uint64) []byte {
	return program.Uint64Bytes(v)
}

// TxIDs returns the operation ids of a confirmed or partially waited outcome.
func TxIDs(out *composer.Outcome) []model.TxID {
	if out == nil {
		return nil
	}
	return out.TxIDs
}
