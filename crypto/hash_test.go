// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

func TestBlake2b256(t *testing.T) {
	require := require.New(t)

	// BLAKE2b-256 of the empty input.
	require.Equal(
		"0e5751c026e543b2e8ab2eb06099daa1d1e5df47778f7787faab45cdf12fe3a8",
		Blake2b256().String(),
	)

	msg := []byte("deploy")
	require.Equal([32]byte(blake2b.Sum256(msg)), [32]byte(Blake2b256(msg)))
}

func TestBlake2b256Concatenates(t *testing.T) {
	require := require.New(t)

	require.Equal(
		Blake2b256([]byte("paymentsession")),
		Blake2b256([]byte("payment"), []byte("session")),
	)
}
