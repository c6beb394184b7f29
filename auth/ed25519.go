// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/deploysdk/crypto/ed25519"
)

var _ Factory = (*ED25519Factory)(nil)

type ED25519Factory struct {
	priv ed25519.PrivateKey
}

func NewED25519Factory(priv ed25519.PrivateKey) *ED25519Factory {
	return &ED25519Factory{priv}
}

func (d *ED25519Factory) Sign(msg []byte) (Signature, error) {
	sig := ed25519.Sign(msg, d.priv)
	return Signature{Algorithm: ED25519ID, Raw: sig[:]}, nil
}

func (d *ED25519Factory) PublicKey() PublicKey {
	return NewED25519PublicKey(d.priv.PublicKey())
}

type ED25519PrivateKeyFactory struct{}

func NewED25519PrivateKeyFactory() *ED25519PrivateKeyFactory {
	return &ED25519PrivateKeyFactory{}
}

func (*ED25519PrivateKeyFactory) GeneratePrivateKey() (*PrivateKey, error) {
	p, err := ed25519.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		Algorithm: ED25519ID,
		Bytes:     p[:],
	}, nil
}

// LoadPrivateKey accepts either the 32 byte seed or the 64 byte expanded key.
func (*ED25519PrivateKeyFactory) LoadPrivateKey(p []byte) (*PrivateKey, error) {
	switch len(p) {
	case ed25519.PrivateKeySeedLen:
		pk, err := ed25519.PrivateKeyFromSeed(p)
		if err != nil {
			return nil, err
		}
		return &PrivateKey{Algorithm: ED25519ID, Bytes: pk[:]}, nil
	case ed25519.PrivateKeyLen:
		pk, err := ed25519.PrivateKeyFromSeed(p[:ed25519.PrivateKeySeedLen])
		if err != nil {
			return nil, err
		}
		return &PrivateKey{Algorithm: ED25519ID, Bytes: pk[:]}, nil
	default:
		return nil, ErrInvalidPrivateKeySize
	}
}
