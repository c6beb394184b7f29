// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import "fmt"

// Note: these IDs are the leading tag byte of every serialized public key and
// signature, so they must never be remapped.
const (
	// SystemID tags the ledger's own system account, which never signs.
	SystemID    uint8 = 0
	ED25519ID   uint8 = 1
	SECP256K1ID uint8 = 2

	ED25519Key   = "ed25519"
	Secp256k1Key = "secp256k1"
)

// AlgorithmName returns the lowercase name used when deriving account hashes.
func AlgorithmName(id uint8) (string, error) {
	switch id {
	case ED25519ID:
		return ED25519Key, nil
	case SECP256K1ID:
		return Secp256k1Key, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidKeyType, id)
	}
}

// AlgorithmID is the inverse of AlgorithmName.
func AlgorithmID(name string) (uint8, error) {
	switch name {
	case ED25519Key:
		return ED25519ID, nil
	case Secp256k1Key:
		return SECP256K1ID, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKeyType, name)
	}
}
