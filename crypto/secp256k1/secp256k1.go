// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/ava-labs/deploysdk/crypto"
)

const (
	PublicKeyLen  = secp256k1.PubKeyBytesLenCompressed
	PrivateKeyLen = secp256k1.PrivKeyBytesLen
	SignatureLen  = 64 // r || s

	rsLen = 32
)

type (
	PublicKey  [PublicKeyLen]byte
	PrivateKey [PrivateKeyLen]byte
	Signature  [SignatureLen]byte
)

var (
	EmptyPublicKey  = [PublicKeyLen]byte{}
	EmptyPrivateKey = [PrivateKeyLen]byte{}
	EmptySignature  = [SignatureLen]byte{}
)

// GeneratePrivateKey returns a secp256k1 private key.
func GeneratePrivateKey() (PrivateKey, error) {
	k, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k.Serialize()), nil
}

// ToPrivateKey checks that [b] is a scalar in [1, N) and returns it as a
// PrivateKey.
func ToPrivateKey(b []byte) (PrivateKey, error) {
	if len(b) != PrivateKeyLen {
		return EmptyPrivateKey, crypto.ErrInvalidPrivateKey
	}
	var s secp256k1.ModNScalar
	if overflow := s.SetByteSlice(b); overflow || s.IsZero() {
		return EmptyPrivateKey, crypto.ErrInvalidPrivateKey
	}
	return PrivateKey(b), nil
}

// PublicKey returns the SEC1 compressed public key associated with p.
func (p PrivateKey) PublicKey() PublicKey {
	priv := secp256k1.PrivKeyFromBytes(p[:])
	return PublicKey(priv.PubKey().SerializeCompressed())
}

// ToHex converts a PrivateKey to a hex string.
func (p PrivateKey) ToHex() string {
	return hex.EncodeToString(p[:])
}

// Sign returns a deterministic (RFC 6979) signature of the SHA-256 digest of
// msg. [s] is always in the lower half of the curve order.
func Sign(msg []byte, pk PrivateKey) Signature {
	priv := secp256k1.PrivKeyFromBytes(pk[:])
	digest := sha256.Sum256(msg)
	// The first byte of a compact signature is the recovery code.
	compact := ecdsa.SignCompact(priv, digest[:], true)
	return Signature(compact[1:])
}

// Verify returns whether sig is a valid signature of msg by p.
//
// The value of [s] in [sig] must be in the lower half of the curve
// order for the signature to be considered valid.
func Verify(msg []byte, p PublicKey, sig Signature) bool {
	pub, err := secp256k1.ParsePubKey(p[:])
	if err != nil {
		return false
	}

	var r, s secp256k1.ModNScalar
	if overflow := r.SetByteSlice(sig[:rsLen]); overflow || r.IsZero() {
		return false
	}
	if overflow := s.SetByteSlice(sig[rsLen:]); overflow || s.IsZero() {
		return false
	}
	if s.IsOverHalfOrder() {
		return false
	}

	digest := sha256.Sum256(msg)
	return ecdsa.NewSignature(&r, &s).Verify(digest[:], pub)
}

// HexToKey converts a hexadecimal encoded key into a PrivateKey.
func HexToKey(key string) (PrivateKey, error) {
	bytes, err := hex.DecodeString(key)
	if err != nil {
		return EmptyPrivateKey, err
	}
	return ToPrivateKey(bytes)
}
