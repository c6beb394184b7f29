// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"encoding/json"
	"fmt"

	"github.com/ava-labs/deploysdk/auth"
	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/consts"
	"github.com/ava-labs/deploysdk/crypto"
	"github.com/ava-labs/deploysdk/utils"
)

// Header carries everything a deploy hash commits to. Timestamp and TTL are
// in milliseconds.
type Header struct {
	Account      auth.PublicKey
	Timestamp    uint64
	TTL          uint64
	GasPrice     uint64
	BodyHash     codec.Hash
	Dependencies []codec.Hash
	ChainName    string
}

func (h *Header) Size() int {
	return h.Account.Size() +
		3*consts.Uint64Len +
		consts.HashLen +
		codec.HashesLen(h.Dependencies) +
		codec.StringLen(h.ChainName)
}

func (h *Header) Marshal(p *codec.Packer) {
	h.Account.Marshal(p)
	p.PackUint64(h.Timestamp)
	p.PackUint64(h.TTL)
	p.PackUint64(h.GasPrice)
	p.PackHash(h.BodyHash)
	p.PackHashes(h.Dependencies)
	p.PackString(h.ChainName)
}

func (h *Header) Bytes() []byte {
	p := codec.NewWriter(h.Size(), consts.MaxInt)
	h.Marshal(p)
	return p.Bytes()
}

// Hash is the deploy hash: the digest of the header bytes.
func (h *Header) Hash() codec.Hash {
	return crypto.Blake2b256(h.Bytes())
}

// Expiry is the first millisecond at which the deploy is no longer valid.
func (h *Header) Expiry() uint64 {
	return h.Timestamp + h.TTL
}

func UnmarshalHeader(p *codec.Packer) (*Header, error) {
	var (
		h   Header
		err error
	)
	h.Account, err = auth.UnmarshalPublicKey(p)
	if err != nil {
		return nil, err
	}
	h.Timestamp = p.UnpackUint64()
	h.TTL = p.UnpackUint64()
	h.GasPrice = p.UnpackUint64()
	p.UnpackHash(&h.BodyHash)
	h.Dependencies = p.UnpackHashes()
	h.ChainName = p.UnpackString()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return &h, nil
}

type headerJSON struct {
	Account      auth.PublicKey `json:"account"`
	Timestamp    string         `json:"timestamp"`
	TTL          string         `json:"ttl"`
	GasPrice     uint64         `json:"gas_price"`
	BodyHash     codec.Hash     `json:"body_hash"`
	Dependencies []codec.Hash   `json:"dependencies"`
	ChainName    string         `json:"chain_name"`
}

func (h *Header) MarshalJSON() ([]byte, error) {
	if h.Timestamp > utils.MaxTimestamp {
		return nil, fmt.Errorf("%w: %d has no four digit year", utils.ErrInvalidTimestamp, h.Timestamp)
	}
	deps := h.Dependencies
	if deps == nil {
		deps = []codec.Hash{}
	}
	return json.Marshal(headerJSON{
		Account:      h.Account,
		Timestamp:    utils.FormatTimestamp(h.Timestamp),
		TTL:          utils.FormatTTL(h.TTL),
		GasPrice:     h.GasPrice,
		BodyHash:     h.BodyHash,
		Dependencies: deps,
		ChainName:    h.ChainName,
	})
}

func (h *Header) UnmarshalJSON(b []byte) error {
	var raw headerJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	timestamp, err := utils.ParseTimestamp(raw.Timestamp)
	if err != nil {
		return err
	}
	ttl, err := utils.ParseTTL(raw.TTL)
	if err != nil {
		return err
	}
	deps := raw.Dependencies
	if deps == nil {
		deps = []codec.Hash{}
	}
	*h = Header{
		Account:      raw.Account,
		Timestamp:    timestamp,
		TTL:          ttl,
		GasPrice:     raw.GasPrice,
		BodyHash:     raw.BodyHash,
		Dependencies: deps,
		ChainName:    raw.ChainName,
	}
	return nil
}
