// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type builderMetrics struct {
	deploysBuilt      prometheus.Counter
	approvalsAdded    prometheus.Counter
	buildFailures     prometheus.Counter
	signatureFailures prometheus.Counter
}

func newMetrics(r prometheus.Registerer) (*builderMetrics, error) {
	m := &builderMetrics{
		deploysBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "deploys_built",
			Help: "number of deploys assembled",
		}),
		approvalsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "approvals_added",
			Help: "number of approvals appended to deploys",
		}),
		buildFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "build_failures",
			Help: "number of deploys that failed to assemble",
		}),
		signatureFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "signature_failures",
			Help: "number of signatures that could not be produced or verified",
		}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.deploysBuilt),
		r.Register(m.approvalsAdded),
		r.Register(m.buildFailures),
		r.Register(m.signatureFailures),
	)
	return m, errs.Err
}
