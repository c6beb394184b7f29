// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ava-labs/deploysdk/auth"
	"github.com/ava-labs/deploysdk/auth/authtest"
	"github.com/ava-labs/deploysdk/crypto"
)

var errSignerOffline = errors.New("signer offline")

func TestBuilder(t *testing.T) {
	require := require.New(t)

	r := prometheus.NewRegistry()
	b, err := NewBuilder(logging.NoLog{}, r)
	require.NoError(err)

	f := newFactory(t, auth.ED25519ID)
	payment, err := NewStandardPayment(big.NewInt(2500000000))
	require.NoError(err)
	params := NewDeployParams(f.PublicKey(), testChainName, WithTimestamp(testTime))

	d, err := b.Build(params, &Transfer{}, payment)
	require.NoError(err)
	d, err = b.Sign(d, f)
	require.NoError(err)

	_, err = b.Build(NewDeployParams(f.PublicKey(), ""), &Transfer{}, payment)
	require.ErrorIs(err, ErrMissingChainName)

	wrong, err := f.Sign([]byte("other"))
	require.NoError(err)
	_, err = b.SetSignature(d, wrong, f.PublicKey())
	require.ErrorIs(err, crypto.ErrInvalidSignature)

	require.Equal(float64(1), testutil.ToFloat64(b.metrics.deploysBuilt))
	require.Equal(float64(1), testutil.ToFloat64(b.metrics.approvalsAdded))
	require.Equal(float64(1), testutil.ToFloat64(b.metrics.buildFailures))
	require.Equal(float64(1), testutil.ToFloat64(b.metrics.signatureFailures))

	// Counters can only be registered once per registry.
	_, err = NewBuilder(nil, r)
	require.Error(err)
}

func TestBuilderSignerFailure(t *testing.T) {
	require := require.New(t)

	ctrl := gomock.NewController(t)
	signer := authtest.NewMockFactory(ctrl)
	signer.EXPECT().Sign(gomock.Any()).Return(auth.Signature{}, errSignerOffline)

	b, err := NewBuilder(nil, prometheus.NewRegistry())
	require.NoError(err)

	d := newTestDeploy(t, newFactory(t, auth.ED25519ID).PublicKey())
	_, err = b.Sign(d, signer)
	require.ErrorIs(err, errSignerOffline)
	require.Empty(d.Approvals)
	require.Equal(float64(1), testutil.ToFloat64(b.metrics.signatureFailures))
}

func TestBuilderSignsDeployHash(t *testing.T) {
	require := require.New(t)

	local := newFactory(t, auth.SECP256K1ID)
	d := newTestDeploy(t, local.PublicKey())

	ctrl := gomock.NewController(t)
	signer := authtest.NewMockFactory(ctrl)
	signer.EXPECT().Sign(d.Hash[:]).DoAndReturn(local.Sign)
	signer.EXPECT().PublicKey().Return(local.PublicKey()).AnyTimes()

	b, err := NewBuilder(nil, prometheus.NewRegistry())
	require.NoError(err)
	signed, err := b.Sign(d, signer)
	require.NoError(err)
	require.NoError(signed.Validate())
}
