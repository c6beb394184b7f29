// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/near/borsh-go"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/deploysdk/consts"
)

func TestPackerIntegersLittleEndian(t *testing.T) {
	require := require.New(t)

	p := NewWriter(0, consts.MaxInt)
	p.PackUint32(1)
	p.PackUint64(0x0102030405060708)
	p.PackInt32(-1)
	require.NoError(p.Err())
	require.Equal([]byte{
		1, 0, 0, 0,
		8, 7, 6, 5, 4, 3, 2, 1,
		0xff, 0xff, 0xff, 0xff,
	}, p.Bytes())

	r := NewReader(p.Bytes(), consts.MaxInt)
	require.Equal(uint32(1), r.UnpackUint32())
	require.Equal(uint64(0x0102030405060708), r.UnpackUint64())
	require.Equal(int32(-1), r.UnpackInt32())
	r.Done()
	require.NoError(r.Err())
}

func TestPackerMatchesBorsh(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		pack  func(*Packer)
	}{
		{
			name:  "uint64",
			value: uint64(1_700_000_000_000),
			pack:  func(p *Packer) { p.PackUint64(1_700_000_000_000) },
		},
		{
			name:  "string",
			value: "casper-test",
			pack:  func(p *Packer) { p.PackString("casper-test") },
		},
		{
			name:  "empty string",
			value: "",
			pack:  func(p *Packer) { p.PackString("") },
		},
		{
			name:  "hashes",
			value: [][32]byte{{1}, {2, 3}},
			pack:  func(p *Packer) { p.PackHashes([]Hash{{1}, {2, 3}}) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			expected, err := borsh.Serialize(tt.value)
			require.NoError(err)

			p := NewWriter(0, consts.MaxInt)
			tt.pack(p)
			require.NoError(p.Err())
			require.Equal(expected, p.Bytes())
		})
	}
}

func TestPackerBytes(t *testing.T) {
	require := require.New(t)

	p := NewWriter(0, consts.MaxInt)
	p.PackBytes(nil)
	p.PackBytes([]byte{0xaa, 0xbb})
	p.PackFixedBytes([]byte{0xcc})
	require.Equal([]byte{0, 0, 0, 0, 2, 0, 0, 0, 0xaa, 0xbb, 0xcc}, p.Bytes())

	r := NewReader(p.Bytes(), consts.MaxInt)
	var empty, two, one []byte
	r.UnpackBytes(-1, &empty)
	r.UnpackBytes(-1, &two)
	r.UnpackFixedBytes(1, &one)
	require.NoError(r.Err())
	require.Empty(empty)
	require.Equal([]byte{0xaa, 0xbb}, two)
	require.Equal([]byte{0xcc}, one)
	require.True(r.Empty())
}

func TestPackerUnpackBytesLimit(t *testing.T) {
	require := require.New(t)

	p := NewWriter(0, consts.MaxInt)
	p.PackBytes([]byte{1, 2, 3})

	r := NewReader(p.Bytes(), consts.MaxInt)
	var b []byte
	r.UnpackBytes(2, &b)
	require.ErrorIs(r.Err(), ErrTooLarge)
	require.Nil(b)
}

func TestPackerInsufficientLength(t *testing.T) {
	require := require.New(t)

	r := NewReader([]byte{1, 2, 3}, consts.MaxInt)
	require.Zero(r.UnpackUint64())
	require.ErrorIs(r.Err(), ErrInsufficientLength)

	// Errors are sticky.
	require.Zero(r.UnpackByte())
	require.ErrorIs(r.Err(), ErrInsufficientLength)
}

func TestPackerLengthPrefixOverflow(t *testing.T) {
	require := require.New(t)

	// Claims 255 bytes but carries one.
	r := NewReader([]byte{0xff, 0, 0, 0, 1}, consts.MaxInt)
	var b []byte
	r.UnpackBytes(-1, &b)
	require.ErrorIs(r.Err(), ErrInsufficientLength)
}

func TestPackerTrailingBytes(t *testing.T) {
	require := require.New(t)

	r := NewReader([]byte{1, 0}, consts.MaxInt)
	require.Equal(byte(1), r.UnpackByte())
	r.Done()
	require.ErrorIs(r.Err(), ErrTrailingBytes)
}

func TestPackerWriterLimit(t *testing.T) {
	require := require.New(t)

	p := NewWriter(0, 4)
	p.PackUint32(1)
	require.NoError(p.Err())
	p.PackByte(1)
	require.ErrorIs(p.Err(), ErrTooLarge)
	require.Len(p.Bytes(), 4)
}

func TestPackerReaderLimit(t *testing.T) {
	require := require.New(t)

	r := NewReader(make([]byte, 10), 4)
	require.ErrorIs(r.Err(), ErrTooLarge)
}

func TestPackerBool(t *testing.T) {
	require := require.New(t)

	p := NewWriter(0, consts.MaxInt)
	p.PackBool(true)
	p.PackBool(false)
	require.Equal([]byte{1, 0}, p.Bytes())

	r := NewReader([]byte{1, 0, 2}, consts.MaxInt)
	require.True(r.UnpackBool())
	require.False(r.UnpackBool())
	require.False(r.UnpackBool())
	require.ErrorIs(r.Err(), ErrInvalidBool)
}

func TestPackerString(t *testing.T) {
	require := require.New(t)

	p := NewWriter(0, consts.MaxInt)
	p.PackString("héllo")
	r := NewReader(p.Bytes(), consts.MaxInt)
	require.Equal("héllo", r.UnpackString())
	require.NoError(r.Err())

	r = NewReader([]byte{1, 0, 0, 0, 0xff}, consts.MaxInt)
	require.Empty(r.UnpackString())
	require.ErrorIs(r.Err(), ErrInvalidString)
}

func TestPackerHashes(t *testing.T) {
	require := require.New(t)

	hs := []Hash{{1}, {2}, {3}}
	p := NewWriter(HashesLen(hs), consts.MaxInt)
	p.PackHashes(hs)
	require.Len(p.Bytes(), HashesLen(hs))

	r := NewReader(p.Bytes(), consts.MaxInt)
	require.Equal(hs, r.UnpackHashes())
	require.NoError(r.Err())

	// Count larger than the remaining input.
	r = NewReader([]byte{9, 0, 0, 0, 1}, consts.MaxInt)
	require.Nil(r.UnpackHashes())
	require.ErrorIs(r.Err(), ErrTooManyItems)
}

func TestPackStringInvalidUTF8(t *testing.T) {
	require := require.New(t)

	p := NewWriter(0, consts.MaxInt)
	p.PackString("\xff")
	require.ErrorIs(p.Err(), ErrInvalidString)
	require.Empty(p.Bytes())

	// Sticky: later writes are dropped.
	p.PackString("ok")
	require.ErrorIs(p.Err(), ErrInvalidString)
	require.Empty(p.Bytes())
}
