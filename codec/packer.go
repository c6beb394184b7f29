// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/ava-labs/deploysdk/consts"
)

// Packer reads and writes the canonical little-endian byte layout.
//
// Writes append to an internal buffer, reads consume from the buffer. The
// first error encountered is sticky: once set, every further call is a no-op
// and the error is reported by [Err].
type Packer struct {
	b       []byte
	offset  int
	maxSize int
	err     error
}

// NewWriter returns an instance of Packer that includes a buffer with
// [initial] capacity. Writes that would grow the buffer past [limit] fail
// with ErrTooLarge.
func NewWriter(initial, limit int) *Packer {
	if initial > limit {
		initial = limit
	}
	return &Packer{
		b:       make([]byte, 0, initial),
		maxSize: limit,
	}
}

// NewReader returns a Packer that reads from [src]. Reads from a [src] longer
// than [limit] fail with ErrTooLarge.
func NewReader(src []byte, limit int) *Packer {
	p := &Packer{
		b:       src,
		maxSize: limit,
	}
	if len(src) > limit {
		p.AddErr(fmt.Errorf("%w: %d > %d", ErrTooLarge, len(src), limit))
	}
	return p
}

// AddErr records [err] unless an error is already set.
func (p *Packer) AddErr(err error) {
	if p.err == nil {
		p.err = err
	}
}

// Err returns the first error encountered.
func (p *Packer) Err() error {
	return p.err
}

// Bytes returns everything written so far (or the full source for readers).
func (p *Packer) Bytes() []byte {
	return p.b
}

// Offset is the read position.
func (p *Packer) Offset() int {
	return p.offset
}

// Empty reports whether a reader consumed all of its input.
func (p *Packer) Empty() bool {
	return p.offset == len(p.b)
}

// Done sets ErrTrailingBytes when a reader did not consume all of its input.
func (p *Packer) Done() {
	if p.err == nil && !p.Empty() {
		p.AddErr(fmt.Errorf("%w: %d", ErrTrailingBytes, len(p.b)-p.offset))
	}
}

func (p *Packer) expand(n int) []byte {
	if p.err != nil {
		return nil
	}
	if len(p.b)+n > p.maxSize {
		p.AddErr(fmt.Errorf("%w: %d > %d", ErrTooLarge, len(p.b)+n, p.maxSize))
		return nil
	}
	start := len(p.b)
	p.b = append(p.b, make([]byte, n)...)
	return p.b[start:]
}

func (p *Packer) next(n int) []byte {
	if p.err != nil {
		return nil
	}
	if n < 0 || len(p.b)-p.offset < n {
		p.AddErr(fmt.Errorf("%w: need %d bytes at offset %d", ErrInsufficientLength, n, p.offset))
		return nil
	}
	b := p.b[p.offset : p.offset+n]
	p.offset += n
	return b
}

func (p *Packer) PackByte(b byte) {
	if dst := p.expand(consts.ByteLen); dst != nil {
		dst[0] = b
	}
}

func (p *Packer) UnpackByte() byte {
	b := p.next(consts.ByteLen)
	if b == nil {
		return 0
	}
	return b[0]
}

func (p *Packer) PackBool(v bool) {
	if v {
		p.PackByte(1)
		return
	}
	p.PackByte(0)
}

// UnpackBool fails with ErrInvalidBool on anything but 0 or 1.
func (p *Packer) UnpackBool() bool {
	switch b := p.UnpackByte(); b {
	case 0:
		return false
	case 1:
		return true
	default:
		p.AddErr(fmt.Errorf("%w: %d", ErrInvalidBool, b))
		return false
	}
}

func (p *Packer) PackUint32(v uint32) {
	if dst := p.expand(consts.Uint32Len); dst != nil {
		binary.LittleEndian.PutUint32(dst, v)
	}
}

func (p *Packer) UnpackUint32() uint32 {
	b := p.next(consts.Uint32Len)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (p *Packer) PackInt32(v int32) {
	p.PackUint32(uint32(v))
}

func (p *Packer) UnpackInt32() int32 {
	return int32(p.UnpackUint32())
}

func (p *Packer) PackUint64(v uint64) {
	if dst := p.expand(consts.Uint64Len); dst != nil {
		binary.LittleEndian.PutUint64(dst, v)
	}
}

func (p *Packer) UnpackUint64() uint64 {
	b := p.next(consts.Uint64Len)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (p *Packer) PackInt64(v int64) {
	p.PackUint64(uint64(v))
}

func (p *Packer) UnpackInt64() int64 {
	return int64(p.UnpackUint64())
}

// PackFixedBytes writes [b] without a length prefix.
func (p *Packer) PackFixedBytes(b []byte) {
	if dst := p.expand(len(b)); dst != nil {
		copy(dst, b)
	}
}

// UnpackFixedBytes reads exactly [size] bytes into [dest].
func (p *Packer) UnpackFixedBytes(size int, dest *[]byte) {
	b := p.next(size)
	if b == nil {
		*dest = nil
		return
	}
	*dest = make([]byte, size)
	copy(*dest, b)
}

// PackBytes writes a u32 length prefix followed by [b].
func (p *Packer) PackBytes(b []byte) {
	if len(b) > int(consts.MaxUint32) {
		p.AddErr(fmt.Errorf("%w: %d", ErrTooLarge, len(b)))
		return
	}
	p.PackUint32(uint32(len(b)))
	p.PackFixedBytes(b)
}

// UnpackBytes reads a length-prefixed byte slice. If [limit] >= 0, lengths
// above it fail with ErrTooLarge.
func (p *Packer) UnpackBytes(limit int, dest *[]byte) {
	l := p.UnpackUint32()
	if p.err != nil {
		*dest = nil
		return
	}
	if limit >= 0 && int(l) > limit {
		p.AddErr(fmt.Errorf("%w: %d > %d", ErrTooLarge, l, limit))
		*dest = nil
		return
	}
	p.UnpackFixedBytes(int(l), dest)
}

// PackString fails with ErrInvalidString on invalid UTF-8, which UnpackString
// would reject.
func (p *Packer) PackString(s string) {
	if !utf8.ValidString(s) {
		p.AddErr(ErrInvalidString)
		return
	}
	p.PackBytes([]byte(s))
}

// UnpackString reads a length-prefixed UTF-8 string.
func (p *Packer) UnpackString() string {
	var b []byte
	p.UnpackBytes(-1, &b)
	if p.err != nil {
		return ""
	}
	if !utf8.Valid(b) {
		p.AddErr(ErrInvalidString)
		return ""
	}
	return string(b)
}

func (p *Packer) PackHash(h Hash) {
	p.PackFixedBytes(h[:])
}

func (p *Packer) UnpackHash(dest *Hash) {
	b := p.next(consts.HashLen)
	if b == nil {
		*dest = EmptyHash
		return
	}
	copy(dest[:], b)
}

// PackHashes writes a u32 count followed by each raw hash.
func (p *Packer) PackHashes(hs []Hash) {
	p.PackUint32(uint32(len(hs)))
	for _, h := range hs {
		p.PackHash(h)
	}
}

func (p *Packer) UnpackHashes() []Hash {
	n := p.UnpackUint32()
	if p.err != nil {
		return nil
	}
	if int(n) > (len(p.b)-p.offset)/consts.HashLen {
		p.AddErr(fmt.Errorf("%w: %d hashes", ErrTooManyItems, n))
		return nil
	}
	hs := make([]Hash, n)
	for i := range hs {
		p.UnpackHash(&hs[i])
	}
	return hs
}
