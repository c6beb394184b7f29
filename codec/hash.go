// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"

	"github.com/ava-labs/deploysdk/consts"
)

// Hash is a 32 byte digest. It encodes raw, without a length prefix.
type Hash [consts.HashLen]byte

var EmptyHash = Hash{}

// HexToHash parses a hex encoded hash. A leading "0x" is accepted.
func HexToHash(s string) (Hash, error) {
	b, err := LoadHex(s, consts.HashLen)
	if err != nil {
		return EmptyHash, err
	}
	return Hash(b), nil
}

// String implements fmt.Stringer.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// MarshalText returns the hex representation of h.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText parses a hex-encoded hash.
func (h *Hash) UnmarshalText(input []byte) error {
	parsed, err := HexToHash(string(input))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
