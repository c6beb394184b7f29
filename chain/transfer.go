// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"math/big"

	"github.com/ava-labs/deploysdk/auth"
	"github.com/ava-labs/deploysdk/clvalue"
	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/consts"
)

// Transfer moves motes with the native transfer. All of its parameters live
// in the argument map.
type Transfer struct {
	Args clvalue.Args `json:"args"`
}

// TransferParams describe a native transfer. Exactly one of [TargetAccount]
// and [TargetPurse] must be set.
type TransferParams struct {
	Amount        *big.Int
	TargetAccount *auth.PublicKey
	TargetPurse   *clvalue.URef
	SourcePurse   *clvalue.URef
	ID            *uint64
}

// NewTransfer builds the argument map the native transfer expects: amount,
// optional source, target and an id that is always present.
func NewTransfer(params TransferParams) (*Transfer, error) {
	if params.Amount == nil {
		return nil, ErrMissingTransferAmount
	}
	amount, err := clvalue.NewU512(params.Amount)
	if err != nil {
		return nil, err
	}

	var args clvalue.Args
	args.Insert(AmountArg, amount)
	if params.SourcePurse != nil {
		args.Insert(SourceArg, clvalue.NewURefValue(*params.SourcePurse))
	}
	switch {
	case params.TargetAccount != nil && params.TargetPurse != nil:
		return nil, ErrMultipleTargets
	case params.TargetPurse != nil:
		args.Insert(TargetArg, clvalue.NewURefValue(*params.TargetPurse))
	case params.TargetAccount != nil:
		accountHash, err := params.TargetAccount.AccountHash()
		if err != nil {
			return nil, err
		}
		args.Insert(TargetArg, clvalue.NewAccountHash(accountHash))
	default:
		return nil, ErrMissingTransferTarget
	}

	var id clvalue.Value
	if params.ID != nil {
		inner := clvalue.NewU64(*params.ID)
		id, err = clvalue.NewOption(&inner, nil)
	} else {
		id, err = clvalue.NewOption(nil, &clvalue.U64Type)
	}
	if err != nil {
		return nil, err
	}
	args.Insert(IDArg, id)
	return &Transfer{Args: args}, nil
}

func (*Transfer) GetTypeID() uint8 { return TransferID }

func (t *Transfer) Size() int {
	return consts.ByteLen + t.Args.Size()
}

func (t *Transfer) Marshal(p *codec.Packer) {
	p.PackByte(TransferID)
	t.Args.Marshal(p)
}

func (t *Transfer) Bytes() []byte { return itemBytes(t) }

func (t *Transfer) GetArgs() clvalue.Args { return t.Args }

func (t *Transfer) GetArgByName(name string) (clvalue.Value, bool) {
	return t.Args.Get(name)
}

func (*Transfer) isExecutableDeployItem() {}

func unmarshalTransfer(p *codec.Packer) (ExecutableDeployItem, error) {
	args, err := clvalue.UnmarshalArgs(p)
	if err != nil {
		return nil, err
	}
	return &Transfer{Args: args}, nil
}

// NewStandardPayment pays [amount] motes with the system payment code: empty
// module bytes and a single U512 "amount" argument.
func NewStandardPayment(amount *big.Int) (*ModuleBytes, error) {
	v, err := clvalue.NewU512(amount)
	if err != nil {
		return nil, err
	}
	return NewModuleBytes(nil, clvalue.NewArgs(clvalue.NamedArg{Name: AmountArg, Value: v})), nil
}
