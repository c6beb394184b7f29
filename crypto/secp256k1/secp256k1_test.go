// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package secp256k1

import (
	"encoding/hex"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/deploysdk/crypto"
)

func TestGeneratePrivateKey(t *testing.T) {
	require := require.New(t)
	priv, err := GeneratePrivateKey()
	require.NoError(err)
	require.NotEqual(EmptyPrivateKey, priv)
	require.Len(priv.PublicKey(), PublicKeyLen)
}

func TestPublicKeyOfOne(t *testing.T) {
	require := require.New(t)

	var one PrivateKey
	one[PrivateKeyLen-1] = 1
	pub := one.PublicKey()
	// The compressed generator point.
	require.Equal(
		"0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798",
		hex.EncodeToString(pub[:]),
	)
}

func TestSignVerify(t *testing.T) {
	require := require.New(t)
	for i := 0; i < 100; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(err)

		msg := []byte("hello")
		sig := Sign(msg, priv)
		require.True(Verify(msg, priv.PublicKey(), sig))
		require.False(Verify([]byte("hellO"), priv.PublicKey(), sig))
	}
}

func TestSignDeterministic(t *testing.T) {
	require := require.New(t)

	priv, err := GeneratePrivateKey()
	require.NoError(err)
	require.Equal(Sign([]byte("a"), priv), Sign([]byte("a"), priv))
}

func TestHighSRejected(t *testing.T) {
	require := require.New(t)

	priv, err := GeneratePrivateKey()
	require.NoError(err)
	msg := []byte("hello")
	sig := Sign(msg, priv)

	var s secp256k1.ModNScalar
	s.SetByteSlice(sig[rsLen:])
	require.False(s.IsOverHalfOrder())
	s.Negate()
	high := s.Bytes()

	var malleated Signature
	copy(malleated[:rsLen], sig[:rsLen])
	copy(malleated[rsLen:], high[:])
	require.False(Verify(msg, priv.PublicKey(), malleated))
}

func TestEmptySignature(t *testing.T) {
	require := require.New(t)

	priv, err := GeneratePrivateKey()
	require.NoError(err)
	require.False(Verify([]byte("hello"), priv.PublicKey(), EmptySignature))
	require.False(Verify([]byte("hello"), EmptyPublicKey, Sign([]byte("hello"), priv)))
}

func TestToPrivateKey(t *testing.T) {
	require := require.New(t)

	_, err := ToPrivateKey(make([]byte, PrivateKeyLen))
	require.ErrorIs(err, crypto.ErrInvalidPrivateKey)

	// The curve order itself is out of range.
	n, err := hex.DecodeString("fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141")
	require.NoError(err)
	_, err = ToPrivateKey(n)
	require.ErrorIs(err, crypto.ErrInvalidPrivateKey)

	priv, err := GeneratePrivateKey()
	require.NoError(err)
	parsed, err := HexToKey(priv.ToHex())
	require.NoError(err)
	require.Equal(priv, parsed)
}
