// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

const (
	HashLen   = 32
	ByteLen   = 1
	IntLen    = 4
	Uint32Len = 4
	Uint64Len = 8
	MaxUint32 = ^uint32(0)
	MaxUint   = ^uint(0)
	MaxInt    = int(MaxUint >> 1)

	MillisecondsPerSecond = 1000

	// MaxDeploySize is the largest serialized deploy a node will accept.
	MaxDeploySize = 1024 * 1024
)
