// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"fmt"

	"github.com/ava-labs/deploysdk/crypto/ed25519"
	"github.com/ava-labs/deploysdk/crypto/secp256k1"
)

// Factory signs deploy hashes on behalf of one key.
type Factory interface {
	Sign(msg []byte) (Signature, error)
	PublicKey() PublicKey
}

// PrivateKeyFactory generates and loads keys of a single algorithm.
type PrivateKeyFactory interface {
	GeneratePrivateKey() (*PrivateKey, error)
	LoadPrivateKey([]byte) (*PrivateKey, error)
}

// PrivateKey is an algorithm-tagged private key. For ed25519 [Bytes] holds
// the 64 byte expanded key; for secp256k1 the 32 byte scalar.
type PrivateKey struct {
	Algorithm uint8
	Bytes     []byte
}

// GetPrivateKeyFactory returns the PrivateKeyFactory for [algorithm].
func GetPrivateKeyFactory(algorithm uint8) (PrivateKeyFactory, error) {
	switch algorithm {
	case ED25519ID:
		return NewED25519PrivateKeyFactory(), nil
	case SECP256K1ID:
		return NewSECP256K1PrivateKeyFactory(), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyType, algorithm)
	}
}

// GetFactory returns the [Factory] for a given private key.
func GetFactory(pk *PrivateKey) (Factory, error) {
	switch pk.Algorithm {
	case ED25519ID:
		if len(pk.Bytes) != ed25519.PrivateKeyLen {
			return nil, ErrInvalidPrivateKeySize
		}
		return NewED25519Factory(ed25519.PrivateKey(pk.Bytes)), nil
	case SECP256K1ID:
		if len(pk.Bytes) != secp256k1.PrivateKeyLen {
			return nil, ErrInvalidPrivateKeySize
		}
		return NewSECP256K1Factory(secp256k1.PrivateKey(pk.Bytes)), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyType, pk.Algorithm)
	}
}

// PublicKey derives the public key of pk.
func (pk *PrivateKey) PublicKey() (PublicKey, error) {
	f, err := GetFactory(pk)
	if err != nil {
		return PublicKey{}, err
	}
	return f.PublicKey(), nil
}
