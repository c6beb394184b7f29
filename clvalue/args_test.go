// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package clvalue

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/consts"
)

func TestArgsEncoding(t *testing.T) {
	require := require.New(t)

	args := NewArgs(NamedArg{Name: "amount", Value: NewU512FromUint64(2500000000)})
	require.Equal(mustHex(t, "0100000006000000616d6f756e74050000000400f9029508"), args.Bytes())
	require.Len(args.Bytes(), args.Size())

	var empty Args
	require.Equal([]byte{0, 0, 0, 0}, empty.Bytes())
}

func TestArgsInsertGet(t *testing.T) {
	require := require.New(t)

	var args Args
	args.Insert("a", NewU8(1))
	args.Insert("b", NewU8(2))
	args.Insert("a", NewU8(3))
	require.Equal(2, args.Len())

	entries := args.Entries()
	require.Equal("a", entries[0].Name)
	require.Equal(NewU8(3), entries[0].Value)
	require.Equal("b", entries[1].Name)

	v, ok := args.Get("b")
	require.True(ok)
	require.Equal(NewU8(2), v)
	_, ok = args.Get("missing")
	require.False(ok)
}

func TestArgsRoundTrip(t *testing.T) {
	require := require.New(t)

	none, err := NewOption(nil, &U64Type)
	require.NoError(err)
	args := NewArgs(
		NamedArg{Name: "amount", Value: NewU512FromUint64(10)},
		NamedArg{Name: "id", Value: none},
		NamedArg{Name: "memo", Value: NewString("hi")},
	)

	p := codec.NewReader(args.Bytes(), consts.MaxInt)
	parsed, err := UnmarshalArgs(p)
	require.NoError(err)
	require.True(p.Empty())
	require.Equal(args, parsed)

	b, err := json.Marshal(args)
	require.NoError(err)
	var fromJSON Args
	require.NoError(json.Unmarshal(b, &fromJSON))
	require.Equal(args, fromJSON)

	p = codec.NewReader(Args{}.Bytes(), consts.MaxInt)
	parsed, err = UnmarshalArgs(p)
	require.NoError(err)
	require.Equal(Args{}, parsed)
}

func TestArgsJSONShape(t *testing.T) {
	args := NewArgs(NamedArg{Name: "amount", Value: NewU512FromUint64(2500000000)})
	b, err := json.Marshal(args)
	require.NoError(t, err)
	require.JSONEq(t, `[["amount",{"cl_type":"U512","bytes":"0400f90295","parsed":"2500000000"}]]`, string(b))
}

func TestUnmarshalArgsInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		err  error
	}{
		{"count exceeds input", "ffffffff", codec.ErrTooManyItems},
		{"duplicate name", "02000000" + "0100000061" + "010000000703" + "0100000061" + "010000000803", ErrDuplicateArg},
		{"truncated value", "01000000" + "0100000061" + "0400000001", codec.ErrInsufficientLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalArgs(codec.NewReader(mustHex(t, tt.in), consts.MaxInt))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestArgsValidate(t *testing.T) {
	tests := []struct {
		name string
		args Args
		err  error
	}{
		{"valid", NewArgs(NamedArg{Name: "target", Value: NewString("casper")}), nil},
		{"invalid name", NewArgs(NamedArg{Name: "\xff", Value: NewU8(1)}), codec.ErrInvalidString},
		{"invalid string value", NewArgs(NamedArg{Name: "target", Value: NewString("\xff")}), codec.ErrInvalidString},
		{"truncated data", NewArgs(NamedArg{Name: "n", Value: Value{Type: U64Type, Data: []byte{1}}}), ErrInvalidValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.args.Validate(), tt.err)
		})
	}
}

func TestNewStringKeepsBytes(t *testing.T) {
	require := require.New(t)

	v := NewString("\xff")
	require.Equal([]byte{1, 0, 0, 0, 0xff}, v.Data)

	// the encoding is not accepted back
	_, err := UnmarshalValue(codec.NewReader(marshalValue(v), consts.MaxInt))
	require.ErrorIs(err, codec.ErrInvalidString)
}
