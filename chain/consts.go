// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "time"

const (
	ModuleBytesID                   uint8 = 0
	StoredContractByHashID          uint8 = 1
	StoredContractByNameID          uint8 = 2
	StoredVersionedContractByHashID uint8 = 3
	StoredVersionedContractByNameID uint8 = 4
	TransferID                      uint8 = 5

	DefaultTTL      = 30 * time.Minute
	DefaultGasPrice = 1

	// Argument names of the standard payment and native transfer.
	AmountArg = "amount"
	TargetArg = "target"
	SourceArg = "source"
	IDArg     = "id"
)
