// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"fmt"

	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/consts"
	"github.com/ava-labs/deploysdk/crypto/ed25519"
	"github.com/ava-labs/deploysdk/crypto/secp256k1"
)

// Signature is an algorithm-tagged signature, laid out like PublicKey.
type Signature struct {
	Algorithm uint8
	Raw       []byte
}

func signatureLen(algorithm uint8) (int, error) {
	switch algorithm {
	case ED25519ID:
		return ed25519.SignatureLen, nil
	case SECP256K1ID:
		return secp256k1.SignatureLen, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidKeyType, algorithm)
	}
}

// NewSignature checks that [raw] has the length [algorithm] expects.
func NewSignature(algorithm uint8, raw []byte) (Signature, error) {
	l, err := signatureLen(algorithm)
	if err != nil {
		return Signature{}, err
	}
	if len(raw) != l {
		return Signature{}, fmt.Errorf("%w: %d != %d", ErrInvalidSignatureSize, len(raw), l)
	}
	return Signature{Algorithm: algorithm, Raw: append([]byte(nil), raw...)}, nil
}

// ParseSignature parses hex(tag ++ raw).
func ParseSignature(s string) (Signature, error) {
	b, err := codec.LoadHex(s, -1)
	if err != nil {
		return Signature{}, err
	}
	if len(b) == 0 {
		return Signature{}, ErrInvalidSignatureSize
	}
	return NewSignature(b[0], b[1:])
}

func (s Signature) Size() int {
	return consts.ByteLen + len(s.Raw)
}

func (s Signature) Bytes() []byte {
	b := make([]byte, 0, s.Size())
	b = append(b, s.Algorithm)
	return append(b, s.Raw...)
}

func (s Signature) Marshal(p *codec.Packer) {
	p.PackByte(s.Algorithm)
	p.PackFixedBytes(s.Raw)
}

func UnmarshalSignature(p *codec.Packer) (Signature, error) {
	algorithm := p.UnpackByte()
	if err := p.Err(); err != nil {
		return Signature{}, err
	}
	l, err := signatureLen(algorithm)
	if err != nil {
		return Signature{}, err
	}
	var raw []byte
	p.UnpackFixedBytes(l, &raw)
	if err := p.Err(); err != nil {
		return Signature{}, err
	}
	return Signature{Algorithm: algorithm, Raw: raw}, nil
}

func (s Signature) String() string {
	return codec.ToHex(s.Bytes())
}

func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Signature) UnmarshalText(text []byte) error {
	parsed, err := ParseSignature(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
