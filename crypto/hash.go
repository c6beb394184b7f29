// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package crypto holds the digest used to identify deploys and the errors
// shared by the signature schemes in its sub-packages.
package crypto

import (
	"golang.org/x/crypto/blake2b"

	"github.com/ava-labs/deploysdk/codec"
)

// Blake2b256 returns the 32 byte BLAKE2b digest of [msg].
func Blake2b256(msg ...[]byte) codec.Hash {
	// New256 only fails when given a key longer than 64 bytes.
	h, _ := blake2b.New256(nil)
	for _, m := range msg {
		_, _ = h.Write(m)
	}
	var out codec.Hash
	copy(out[:], h.Sum(nil))
	return out
}
