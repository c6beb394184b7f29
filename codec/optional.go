// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "fmt"

const (
	OptionNone byte = 0
	OptionSome byte = 1
)

// PackOptional writes a single discriminant byte: OptionNone when
// [present] is false, otherwise OptionSome followed by whatever [pack]
// writes.
func (p *Packer) PackOptional(present bool, pack func(*Packer)) {
	if !present {
		p.PackByte(OptionNone)
		return
	}
	p.PackByte(OptionSome)
	pack(p)
}

// UnpackOptional reads the discriminant byte and, when a value is present,
// calls [unpack]. It returns whether a value was present.
func (p *Packer) UnpackOptional(unpack func(*Packer)) bool {
	switch tag := p.UnpackByte(); {
	case p.err != nil:
		return false
	case tag == OptionNone:
		return false
	case tag == OptionSome:
		unpack(p)
		return p.err == nil
	default:
		p.AddErr(fmt.Errorf("%w: %d", ErrInvalidOptionTag, tag))
		return false
	}
}

// PackOptionalUint32 packs [v] as an optional u32; nil is absent.
func (p *Packer) PackOptionalUint32(v *uint32) {
	p.PackOptional(v != nil, func(p *Packer) {
		p.PackUint32(*v)
	})
}

// UnpackOptionalUint32 returns nil when the value is absent.
func (p *Packer) UnpackOptionalUint32() *uint32 {
	var v uint32
	if !p.UnpackOptional(func(p *Packer) { v = p.UnpackUint32() }) {
		return nil
	}
	return &v
}
