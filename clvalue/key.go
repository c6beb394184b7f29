// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package clvalue

import (
	"fmt"
	"strings"

	"github.com/ava-labs/deploysdk/auth"
	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/consts"
)

const (
	AccountKeyID uint8 = 0
	HashKeyID    uint8 = 1
	URefKeyID    uint8 = 2

	accountHashPrefix = "account-hash-"
	hashPrefix        = "hash-"
)

// Key addresses global state. Addr holds the account or contract hash; URef
// is only set for uref keys.
type Key struct {
	Tag  uint8
	Addr codec.Hash
	URef URef
}

func NewAccountKey(a auth.AccountHash) Key {
	return Key{Tag: AccountKeyID, Addr: codec.Hash(a)}
}

func NewHashKey(h codec.Hash) Key {
	return Key{Tag: HashKeyID, Addr: h}
}

func NewURefKey(u URef) Key {
	return Key{Tag: URefKeyID, URef: u}
}

func ParseKey(s string) (Key, error) {
	switch {
	case strings.HasPrefix(s, accountHashPrefix):
		a, err := auth.ParseAccountHash(s)
		if err != nil {
			return Key{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		return NewAccountKey(a), nil
	case strings.HasPrefix(s, hashPrefix):
		h, err := codec.HexToHash(strings.TrimPrefix(s, hashPrefix))
		if err != nil {
			return Key{}, fmt.Errorf("%w: %w", ErrInvalidKey, err)
		}
		return NewHashKey(h), nil
	case strings.HasPrefix(s, urefPrefix):
		u, err := ParseURef(s)
		if err != nil {
			return Key{}, err
		}
		return NewURefKey(u), nil
	default:
		return Key{}, fmt.Errorf("%w: %q", ErrInvalidKey, s)
	}
}

func (k Key) String() string {
	switch k.Tag {
	case AccountKeyID:
		return auth.AccountHash(k.Addr).String()
	case HashKeyID:
		return hashPrefix + k.Addr.String()
	default:
		return k.URef.String()
	}
}

func (k Key) Size() int {
	if k.Tag == URefKeyID {
		return consts.ByteLen + URefLen
	}
	return consts.ByteLen + consts.HashLen
}

func (k Key) Marshal(p *codec.Packer) {
	p.PackByte(k.Tag)
	if k.Tag == URefKeyID {
		k.URef.Marshal(p)
		return
	}
	p.PackHash(k.Addr)
}

func UnmarshalKey(p *codec.Packer) (Key, error) {
	tag := p.UnpackByte()
	if err := p.Err(); err != nil {
		return Key{}, err
	}
	switch tag {
	case AccountKeyID, HashKeyID:
		k := Key{Tag: tag}
		p.UnpackHash(&k.Addr)
		return k, p.Err()
	case URefKeyID:
		u, err := UnmarshalURef(p)
		if err != nil {
			return Key{}, err
		}
		return NewURefKey(u), nil
	default:
		return Key{}, fmt.Errorf("%w: tag %d", ErrInvalidKey, tag)
	}
}
