// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ava-labs/deploysdk/auth"
)

// Builder wraps deploy assembly and the approval protocol with logging and
// metrics. It is safe for concurrent use.
type Builder struct {
	log     logging.Logger
	metrics *builderMetrics
}

// NewBuilder registers the builder's counters on [r]. A nil [log] disables
// logging.
func NewBuilder(log logging.Logger, r prometheus.Registerer) (*Builder, error) {
	if log == nil {
		log = logging.NoLog{}
	}
	m, err := newMetrics(r)
	if err != nil {
		return nil, err
	}
	return &Builder{log: log, metrics: m}, nil
}

func (b *Builder) Build(params DeployParams, session, payment ExecutableDeployItem) (*Deploy, error) {
	d, err := MakeDeploy(params, session, payment)
	if err != nil {
		b.metrics.buildFailures.Inc()
		b.log.Warn("failed to build deploy",
			zap.String("chainName", params.ChainName),
			zap.Error(err),
		)
		return nil, err
	}
	b.metrics.deploysBuilt.Inc()
	b.log.Info("built deploy",
		zap.Stringer("hash", d.Hash),
		zap.Stringer("account", d.Header.Account),
		zap.Uint64("timestamp", d.Header.Timestamp),
		zap.Uint64("ttl", d.Header.TTL),
		zap.Int("dependencies", len(d.Header.Dependencies)),
		zap.Uint8("payment", payment.GetTypeID()),
		zap.Uint8("session", session.GetTypeID()),
	)
	return d, nil
}

func (b *Builder) Sign(d *Deploy, f auth.Factory) (*Deploy, error) {
	signed, err := Sign(d, f)
	if err != nil {
		b.metrics.signatureFailures.Inc()
		b.log.Warn("failed to sign deploy",
			zap.Stringer("hash", d.Hash),
			zap.Error(err),
		)
		return nil, err
	}
	b.metrics.approvalsAdded.Inc()
	b.log.Debug("signed deploy",
		zap.Stringer("hash", d.Hash),
		zap.Stringer("signer", f.PublicKey()),
		zap.Int("approvals", len(signed.Approvals)),
	)
	return signed, nil
}

func (b *Builder) SetSignature(d *Deploy, sig auth.Signature, pk auth.PublicKey) (*Deploy, error) {
	signed, err := SetSignature(d, sig, pk)
	if err != nil {
		b.metrics.signatureFailures.Inc()
		b.log.Warn("rejected signature",
			zap.Stringer("hash", d.Hash),
			zap.Stringer("signer", pk),
			zap.Error(err),
		)
		return nil, err
	}
	b.metrics.approvalsAdded.Inc()
	b.log.Debug("added signature",
		zap.Stringer("hash", d.Hash),
		zap.Stringer("signer", pk),
		zap.Int("approvals", len(signed.Approvals)),
	)
	return signed, nil
}
