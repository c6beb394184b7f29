// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ed25519

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/deploysdk/crypto"
)

// RFC 8032, section 7.1, test 1.
const (
	testSeedHex      = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	testPublicKeyHex = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
	testSignatureHex = "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b"
)

func TestGeneratePrivateKeyFormat(t *testing.T) {
	require := require.New(t)
	priv, err := GeneratePrivateKey()
	require.NoError(err, "Error Generating PrivateKey")
	require.NotEqual(priv, EmptyPrivateKey, "PrivateKey is empty")
	require.Len(priv, PrivateKeyLen, "PrivateKey has incorrect length")
}

func TestGeneratePrivateKeyDifferent(t *testing.T) {
	require := require.New(t)
	const numKeysToGenerate int = 10

	m := make(map[PrivateKey]bool)
	for i := 0; i < numKeysToGenerate; i++ {
		priv, err := GeneratePrivateKey()
		require.NoError(err, "Error Generating Private Key")
		require.False(m[priv], "Duplicate PrivateKey generated")
		m[priv] = true
	}
}

func TestRFC8032Vector(t *testing.T) {
	require := require.New(t)

	priv, err := HexToKey(testSeedHex)
	require.NoError(err)
	pub := priv.PublicKey()
	require.Equal(testPublicKeyHex, hex.EncodeToString(pub[:]))
	require.Equal(testSeedHex, hex.EncodeToString(priv.Seed()))

	sig := Sign(nil, priv)
	require.Equal(testSignatureHex, hex.EncodeToString(sig[:]))
	require.True(Verify(nil, pub, sig))
}

func TestHexToKeyFullKey(t *testing.T) {
	require := require.New(t)

	priv, err := GeneratePrivateKey()
	require.NoError(err)
	parsed, err := HexToKey(hex.EncodeToString(priv[:]))
	require.NoError(err)
	require.Equal(priv, parsed)

	// Public half that does not match the seed.
	tampered := priv
	tampered[PrivateKeyLen-1]++
	_, err = HexToKey(hex.EncodeToString(tampered[:]))
	require.ErrorIs(err, crypto.ErrInvalidPrivateKey)

	_, err = HexToKey("abcd")
	require.ErrorIs(err, crypto.ErrInvalidPrivateKey)
}

func TestSignSignatureValid(t *testing.T) {
	require := require.New(t)

	priv, err := GeneratePrivateKey()
	require.NoError(err)
	msg := []byte("msg")
	expectedSig := Signature(ed25519.Sign(priv[:], msg))
	require.Equal(expectedSig, Sign(msg, priv), "Signature was incorrect")
}

func TestVerifyInvalidParams(t *testing.T) {
	require := require.New(t)

	priv, err := GeneratePrivateKey()
	require.NoError(err)
	sig := Sign([]byte("msg"), priv)
	require.True(Verify([]byte("msg"), priv.PublicKey(), sig))
	require.False(Verify([]byte("diff msg"), priv.PublicKey(), sig),
		"Verify incorrectly verified a message")
}

func TestBatchAddVerify(t *testing.T) {
	for _, invalid := range []bool{false, true} {
		t.Run(strconv.FormatBool(invalid), func(t *testing.T) {
			require := require.New(t)
			numItems := 64
			bv := NewBatch(numItems)
			for i := 0; i < numItems; i++ {
				priv, err := GeneratePrivateKey()
				require.NoError(err)
				msg := make([]byte, 32)
				_, err = rand.Read(msg)
				require.NoError(err)
				sig := Sign(msg, priv)
				if invalid && i == 10 {
					sig[0]++
				}
				bv.Add(msg, priv.PublicKey(), sig)
			}
			require.Equal(numItems, bv.Len())
			err := bv.Verify()
			if invalid {
				require.ErrorIs(err, crypto.ErrInvalidSignature)
			} else {
				require.NoError(err)
			}
		})
	}
}

func TestEmptyBatch(t *testing.T) {
	require.NoError(t, NewBatch(0).Verify())
}
