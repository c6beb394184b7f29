// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"encoding/hex"

	"github.com/hdevalence/ed25519consensus"

	"github.com/ava-labs/deploysdk/crypto"
)

type (
	PublicKey  [ed25519.PublicKeySize]byte
	PrivateKey [ed25519.PrivateKeySize]byte
	Signature  [ed25519.SignatureSize]byte
)

// We use the ZIP-215 specification for ed25519 signature
// verification (https://zips.z.cash/zip-0215) because it provides
// an explicit validity criteria for signatures, supports batch
// verification, and is broadly compatible with signatures produced
// by almost all ed25519 implementations (which don't require
// canonically-encoded points).
const (
	PublicKeyLen  = ed25519.PublicKeySize
	PrivateKeyLen = ed25519.PrivateKeySize
	// PrivateKeySeedLen is defined because ed25519.PrivateKey
	// is formatted as privateKey = seed|publicKey. Key files only
	// carry the seed.
	PrivateKeySeedLen = ed25519.SeedSize
	SignatureLen      = ed25519.SignatureSize
)

var (
	EmptyPublicKey  = [ed25519.PublicKeySize]byte{}
	EmptyPrivateKey = [ed25519.PrivateKeySize]byte{}
	EmptySignature  = [ed25519.SignatureSize]byte{}
)

// GeneratePrivateKey returns a Ed25519 PrivateKey.
func GeneratePrivateKey() (PrivateKey, error) {
	_, k, err := ed25519.GenerateKey(nil)
	if err != nil {
		return EmptyPrivateKey, err
	}
	return PrivateKey(k), nil
}

// PrivateKeyFromSeed expands a 32 byte seed into a PrivateKey.
func PrivateKeyFromSeed(seed []byte) (PrivateKey, error) {
	if len(seed) != PrivateKeySeedLen {
		return EmptyPrivateKey, crypto.ErrInvalidPrivateKey
	}
	return PrivateKey(ed25519.NewKeyFromSeed(seed)), nil
}

// PublicKey returns a PublicKey associated with the Ed25519 PrivateKey p.
// The PublicKey is the last 32 bytes of p.
func (p PrivateKey) PublicKey() PublicKey {
	return PublicKey(p[PrivateKeySeedLen:])
}

// Seed returns the first 32 bytes of p.
func (p PrivateKey) Seed() []byte {
	seed := make([]byte, PrivateKeySeedLen)
	copy(seed, p[:PrivateKeySeedLen])
	return seed
}

// Sign returns a valid signature for msg using pk.
func Sign(msg []byte, pk PrivateKey) Signature {
	sig := ed25519.Sign(pk[:], msg)
	return Signature(sig)
}

// Verify returns whether s is a valid signature of msg by p.
func Verify(msg []byte, p PublicKey, s Signature) bool {
	return ed25519consensus.Verify(p[:], msg, s[:])
}

// HexToKey converts a hex encoded seed or full private key into a
// PrivateKey.
func HexToKey(key string) (PrivateKey, error) {
	bytes, err := hex.DecodeString(key)
	if err != nil {
		return EmptyPrivateKey, err
	}
	switch len(bytes) {
	case PrivateKeySeedLen:
		return PrivateKeyFromSeed(bytes)
	case PrivateKeyLen:
		pk := PrivateKey(bytes)
		if PrivateKey(ed25519.NewKeyFromSeed(pk.Seed())) != pk {
			return EmptyPrivateKey, crypto.ErrInvalidPrivateKey
		}
		return pk, nil
	default:
		return EmptyPrivateKey, crypto.ErrInvalidPrivateKey
	}
}

// Batch verifies many signatures at once. An empty batch verifies.
type Batch struct {
	bv ed25519consensus.BatchVerifier
	n  int
}

func NewBatch(size int) *Batch {
	return &Batch{bv: ed25519consensus.NewPreallocatedBatchVerifier(size)}
}

func (b *Batch) Add(msg []byte, p PublicKey, s Signature) {
	b.bv.Add(p[:], msg, s[:])
	b.n++
}

func (b *Batch) Len() int {
	return b.n
}

// Verify does not say which signature failed. Callers that need to know
// fall back to [Verify] per signature.
func (b *Batch) Verify() error {
	if b.n == 0 || b.bv.Verify() {
		return nil
	}
	return crypto.ErrInvalidSignature
}
