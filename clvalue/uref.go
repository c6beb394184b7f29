// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package clvalue

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/consts"
)

const (
	urefPrefix = "uref-"

	URefLen = consts.HashLen + consts.ByteLen
)

type AccessRights uint8

const (
	AccessNone         AccessRights = 0
	AccessRead         AccessRights = 1
	AccessWrite        AccessRights = 2
	AccessAdd          AccessRights = 4
	AccessReadAdd      AccessRights = AccessRead | AccessAdd
	AccessReadAddWrite AccessRights = AccessRead | AccessAdd | AccessWrite
)

// URef is an unforgeable reference to a value in global state, such as a
// purse.
type URef struct {
	Addr   codec.Hash
	Access AccessRights
}

func NewURef(addr codec.Hash, access AccessRights) URef {
	return URef{Addr: addr, Access: access}
}

// ParseURef parses "uref-<hex>-<octal access rights>".
func ParseURef(s string) (URef, error) {
	if !strings.HasPrefix(s, urefPrefix) {
		return URef{}, fmt.Errorf("%w: missing prefix", ErrInvalidURef)
	}
	addr, access, ok := strings.Cut(strings.TrimPrefix(s, urefPrefix), "-")
	if !ok {
		return URef{}, fmt.Errorf("%w: missing access rights", ErrInvalidURef)
	}
	h, err := codec.HexToHash(addr)
	if err != nil {
		return URef{}, fmt.Errorf("%w: %w", ErrInvalidURef, err)
	}
	rights, err := strconv.ParseUint(access, 8, 8)
	if err != nil || rights > uint64(AccessReadAddWrite) {
		return URef{}, fmt.Errorf("%w: access rights %q", ErrInvalidURef, access)
	}
	return URef{Addr: h, Access: AccessRights(rights)}, nil
}

func (u URef) String() string {
	return fmt.Sprintf("%s%s-%03o", urefPrefix, u.Addr, uint8(u.Access))
}

func (u URef) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *URef) UnmarshalText(text []byte) error {
	parsed, err := ParseURef(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

func (u URef) Marshal(p *codec.Packer) {
	p.PackHash(u.Addr)
	p.PackByte(uint8(u.Access))
}

func UnmarshalURef(p *codec.Packer) (URef, error) {
	var u URef
	p.UnpackHash(&u.Addr)
	u.Access = AccessRights(p.UnpackByte())
	if err := p.Err(); err != nil {
		return URef{}, err
	}
	if u.Access > AccessReadAddWrite {
		return URef{}, fmt.Errorf("%w: access rights %d", ErrInvalidURef, u.Access)
	}
	return u, nil
}
