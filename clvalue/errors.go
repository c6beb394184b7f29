// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package clvalue

import "errors"

var (
	ErrUnknownType       = errors.New("unknown cl type")
	ErrTypeTooDeep       = errors.New("cl type nested too deep")
	ErrTypeMismatch      = errors.New("cl type mismatch")
	ErrInvalidValue      = errors.New("invalid cl value")
	ErrNegativeValue     = errors.New("negative value for unsigned type")
	ErrValueOverflow     = errors.New("value overflows type")
	ErrMissingOptionType = errors.New("option requires a value or a type")
	ErrMissingInnerType  = errors.New("option and list types require an inner type")
	ErrInvalidURef       = errors.New("invalid uref")
	ErrInvalidKey        = errors.New("invalid key")
	ErrInvalidArg        = errors.New("invalid argument")
	ErrDuplicateArg      = errors.New("duplicate argument name")
)
