// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "errors"

var (
	ErrTooManyItems       = errors.New("too many items")
	ErrDuplicateItem      = errors.New("duplicate item")
	ErrInsufficientLength = errors.New("insufficient length")
	ErrInvalidSize        = errors.New("invalid size")
	ErrTooLarge           = errors.New("too large")
	ErrTrailingBytes      = errors.New("trailing bytes")
	ErrInvalidBool        = errors.New("invalid bool")
	ErrInvalidString      = errors.New("invalid utf-8 string")
	ErrInvalidOptionTag   = errors.New("invalid option tag")
)
