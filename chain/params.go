// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/set"

	"github.com/ava-labs/deploysdk/auth"
	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/utils"
)

// DeployParams are the header fields chosen by the caller. A zero Timestamp
// is replaced by the time MakeDeploy runs; TTL and GasPrice are used as
// given. NewDeployParams fills in DefaultTTL and DefaultGasPrice.
type DeployParams struct {
	Account      auth.PublicKey
	ChainName    string
	Timestamp    uint64
	TTL          uint64
	GasPrice     uint64
	Dependencies []codec.Hash
}

type DeployOption func(*DeployParams)

func NewDeployParams(account auth.PublicKey, chainName string, opts ...DeployOption) DeployParams {
	params := DeployParams{
		Account:   account,
		ChainName: chainName,
		TTL:       uint64(DefaultTTL.Milliseconds()),
		GasPrice:  DefaultGasPrice,
	}
	for _, opt := range opts {
		opt(&params)
	}
	return params
}

func WithTimestamp(t time.Time) DeployOption {
	return func(p *DeployParams) {
		p.Timestamp = utils.UnixMilli(t)
	}
}

func WithTTL(ttl time.Duration) DeployOption {
	return func(p *DeployParams) {
		p.TTL = uint64(ttl.Milliseconds())
	}
}

func WithGasPrice(gasPrice uint64) DeployOption {
	return func(p *DeployParams) {
		p.GasPrice = gasPrice
	}
}

func WithDependencies(deps ...codec.Hash) DeployOption {
	return func(p *DeployParams) {
		p.Dependencies = append(p.Dependencies, deps...)
	}
}

// uniqueDependencies keeps the first occurrence of each hash, in order.
func uniqueDependencies(deps []codec.Hash) []codec.Hash {
	seen := set.NewSet[codec.Hash](len(deps))
	unique := make([]codec.Hash, 0, len(deps))
	for _, dep := range deps {
		if seen.Contains(dep) {
			continue
		}
		seen.Add(dep)
		unique = append(unique, dep)
	}
	return unique
}
