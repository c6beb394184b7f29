// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"bytes"
	"fmt"

	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/consts"
	"github.com/ava-labs/deploysdk/crypto"
	"github.com/ava-labs/deploysdk/crypto/ed25519"
	"github.com/ava-labs/deploysdk/crypto/secp256k1"
)

// PublicKey is an algorithm-tagged public key. Its canonical bytes are the
// algorithm tag followed by the raw key, without a length prefix.
type PublicKey struct {
	Algorithm uint8
	Raw       []byte
}

func NewED25519PublicKey(pk ed25519.PublicKey) PublicKey {
	return PublicKey{Algorithm: ED25519ID, Raw: pk[:]}
}

func NewSECP256K1PublicKey(pk secp256k1.PublicKey) PublicKey {
	return PublicKey{Algorithm: SECP256K1ID, Raw: pk[:]}
}

func publicKeyLen(algorithm uint8) (int, error) {
	switch algorithm {
	case ED25519ID:
		return ed25519.PublicKeyLen, nil
	case SECP256K1ID:
		return secp256k1.PublicKeyLen, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidKeyType, algorithm)
	}
}

// NewPublicKey checks that [raw] has the length [algorithm] expects.
func NewPublicKey(algorithm uint8, raw []byte) (PublicKey, error) {
	l, err := publicKeyLen(algorithm)
	if err != nil {
		return PublicKey{}, err
	}
	if len(raw) != l {
		return PublicKey{}, fmt.Errorf("%w: %d != %d", ErrInvalidPublicKeySize, len(raw), l)
	}
	return PublicKey{Algorithm: algorithm, Raw: append([]byte(nil), raw...)}, nil
}

// ParsePublicKeyBytes parses tag ++ raw key.
func ParsePublicKeyBytes(b []byte) (PublicKey, error) {
	if len(b) == 0 {
		return PublicKey{}, ErrInvalidPublicKeySize
	}
	return NewPublicKey(b[0], b[1:])
}

// ParsePublicKey parses the hex form produced by String.
func ParsePublicKey(s string) (PublicKey, error) {
	b, err := codec.LoadHex(s, -1)
	if err != nil {
		return PublicKey{}, err
	}
	return ParsePublicKeyBytes(b)
}

func (k PublicKey) Size() int {
	return consts.ByteLen + len(k.Raw)
}

func (k PublicKey) Bytes() []byte {
	b := make([]byte, 0, k.Size())
	b = append(b, k.Algorithm)
	return append(b, k.Raw...)
}

func (k PublicKey) Marshal(p *codec.Packer) {
	p.PackByte(k.Algorithm)
	p.PackFixedBytes(k.Raw)
}

func UnmarshalPublicKey(p *codec.Packer) (PublicKey, error) {
	algorithm := p.UnpackByte()
	if err := p.Err(); err != nil {
		return PublicKey{}, err
	}
	l, err := publicKeyLen(algorithm)
	if err != nil {
		return PublicKey{}, err
	}
	var raw []byte
	p.UnpackFixedBytes(l, &raw)
	if err := p.Err(); err != nil {
		return PublicKey{}, err
	}
	return PublicKey{Algorithm: algorithm, Raw: raw}, nil
}

func (k PublicKey) Equal(o PublicKey) bool {
	return k.Algorithm == o.Algorithm && bytes.Equal(k.Raw, o.Raw)
}

// String returns hex(tag ++ raw).
func (k PublicKey) String() string {
	return codec.ToHex(k.Bytes())
}

func (k PublicKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PublicKey) UnmarshalText(text []byte) error {
	parsed, err := ParsePublicKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// AccountHash derives the account identifier of k.
func (k PublicKey) AccountHash() (AccountHash, error) {
	name, err := AlgorithmName(k.Algorithm)
	if err != nil {
		return AccountHash{}, err
	}
	return AccountHash(crypto.Blake2b256([]byte(name), []byte{0}, k.Raw)), nil
}

// Verify checks [sig] over [msg]. The signature algorithm must match.
func (k PublicKey) Verify(msg []byte, sig Signature) error {
	if sig.Algorithm != k.Algorithm {
		return fmt.Errorf("%w: %d != %d", ErrAlgorithmMismatch, sig.Algorithm, k.Algorithm)
	}
	var ok bool
	switch k.Algorithm {
	case ED25519ID:
		if len(k.Raw) != ed25519.PublicKeyLen || len(sig.Raw) != ed25519.SignatureLen {
			return crypto.ErrInvalidSignature
		}
		ok = ed25519.Verify(msg, ed25519.PublicKey(k.Raw), ed25519.Signature(sig.Raw))
	case SECP256K1ID:
		if len(k.Raw) != secp256k1.PublicKeyLen || len(sig.Raw) != secp256k1.SignatureLen {
			return crypto.ErrInvalidSignature
		}
		ok = secp256k1.Verify(msg, secp256k1.PublicKey(k.Raw), secp256k1.Signature(sig.Raw))
	default:
		return fmt.Errorf("%w: %d", ErrInvalidKeyType, k.Algorithm)
	}
	if !ok {
		return crypto.ErrInvalidSignature
	}
	return nil
}
