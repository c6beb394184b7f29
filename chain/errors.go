// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrUnknownItemTag        = errors.New("unknown executable deploy item tag")
	ErrNilItem               = errors.New("executable deploy item is nil")
	ErrMissingTransferTarget = errors.New("transfer target is missing")
	ErrMultipleTargets       = errors.New("transfer has more than one target")
	ErrMissingTransferAmount = errors.New("transfer amount is missing")
	ErrNoItem                = errors.New("no executable deploy item is set")
	ErrMultipleItems         = errors.New("more than one executable deploy item is set")
	ErrInvalidBodyHash       = errors.New("invalid body hash")
	ErrInvalidDeployHash     = errors.New("invalid deploy hash")
	ErrDeployTooLarge        = errors.New("deploy too large")
	ErrMissingChainName      = errors.New("chain name is missing")
	ErrMissingHeader         = errors.New("deploy header is missing")
)
