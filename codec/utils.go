// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "github.com/ava-labs/deploysdk/consts"

func BytesLen(msg []byte) int {
	return consts.IntLen + len(msg)
}

func StringLen(msg string) int {
	return consts.IntLen + len(msg)
}

func HashesLen(hs []Hash) int {
	return consts.IntLen + len(hs)*consts.HashLen
}

func OptionalLen(present bool, size int) int {
	if !present {
		return consts.ByteLen
	}
	return consts.ByteLen + size
}
