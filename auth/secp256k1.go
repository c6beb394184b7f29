// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"github.com/ava-labs/deploysdk/crypto/secp256k1"
)

var _ Factory = (*SECP256K1Factory)(nil)

type SECP256K1Factory struct {
	priv secp256k1.PrivateKey
}

func NewSECP256K1Factory(priv secp256k1.PrivateKey) *SECP256K1Factory {
	return &SECP256K1Factory{priv}
}

func (d *SECP256K1Factory) Sign(msg []byte) (Signature, error) {
	sig := secp256k1.Sign(msg, d.priv)
	return Signature{Algorithm: SECP256K1ID, Raw: sig[:]}, nil
}

func (d *SECP256K1Factory) PublicKey() PublicKey {
	return NewSECP256K1PublicKey(d.priv.PublicKey())
}

type SECP256K1PrivateKeyFactory struct{}

func NewSECP256K1PrivateKeyFactory() *SECP256K1PrivateKeyFactory {
	return &SECP256K1PrivateKeyFactory{}
}

func (*SECP256K1PrivateKeyFactory) GeneratePrivateKey() (*PrivateKey, error) {
	p, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		Algorithm: SECP256K1ID,
		Bytes:     p[:],
	}, nil
}

func (*SECP256K1PrivateKeyFactory) LoadPrivateKey(p []byte) (*PrivateKey, error) {
	if len(p) != secp256k1.PrivateKeyLen {
		return nil, ErrInvalidPrivateKeySize
	}
	pk, err := secp256k1.ToPrivateKey(p)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{
		Algorithm: SECP256K1ID,
		Bytes:     pk[:],
	}, nil
}
