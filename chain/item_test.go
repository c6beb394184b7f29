// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"encoding/hex"
	"encoding/json"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ava-labs/deploysdk/auth"
	"github.com/ava-labs/deploysdk/clvalue"
	"github.com/ava-labs/deploysdk/codec"
)

func mustHex(t *testing.T, s string) []byte {
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	require.NoError(t, err)
	return b
}

func testArgs() clvalue.Args {
	return clvalue.NewArgs(
		clvalue.NamedArg{Name: "amount", Value: clvalue.NewU512FromUint64(1000)},
		clvalue.NamedArg{Name: "memo", Value: clvalue.NewString("hello")},
	)
}

func testItems(t *testing.T) map[string]ExecutableDeployItem {
	version := uint32(2)
	transfer, err := NewTransfer(TransferParams{
		Amount:      big.NewInt(2500000000),
		TargetPurse: &clvalue.URef{Addr: codec.Hash{7}, Access: clvalue.AccessReadAddWrite},
	})
	require.NoError(t, err)
	return map[string]ExecutableDeployItem{
		"module bytes":                     NewModuleBytes([]byte{0x00, 0x61, 0x73, 0x6d}, testArgs()),
		"empty module bytes":               NewModuleBytes(nil, clvalue.Args{}),
		"stored contract by hash":          NewStoredContractByHash(codec.Hash{1}, "call", testArgs()),
		"stored contract by name":          NewStoredContractByName("faucet", "call", testArgs()),
		"stored versioned by hash":         NewStoredVersionedContractByHash(codec.Hash{2}, &version, "call", testArgs()),
		"stored versioned by hash, latest": NewStoredVersionedContractByHash(codec.Hash{3}, nil, "call", clvalue.Args{}),
		"stored versioned by name":         NewStoredVersionedContractByName("counter", &version, "inc", testArgs()),
		"stored versioned by name, latest": NewStoredVersionedContractByName("counter", nil, "inc", clvalue.Args{}),
		"transfer":                         transfer,
	}
}

func TestStandardPaymentFixture(t *testing.T) {
	require := require.New(t)

	payment, err := NewStandardPayment(big.NewInt(2500000000))
	require.NoError(err)
	require.Equal(
		mustHex(t, "00 00000000 01000000 06000000 616d6f756e74 05000000 0400f90295 08"),
		payment.Bytes(),
	)
	require.Len(payment.Bytes(), payment.Size())
}

func TestItemEncodingLayout(t *testing.T) {
	version := uint32(2)
	tests := []struct {
		name string
		item ExecutableDeployItem
		want string
	}{
		{
			"module bytes",
			NewModuleBytes([]byte{1, 2, 3}, clvalue.NewArgs(clvalue.NamedArg{Name: "x", Value: clvalue.NewU8(7)})),
			"00 03000000 010203 01000000 01000000 78 01000000 07 03",
		},
		{
			"stored contract by hash",
			NewStoredContractByHash(codec.Hash{0xaa}, "go", clvalue.Args{}),
			"01 aa" + strings.Repeat("00", 31) + " 02000000 676f 00000000",
		},
		{
			"stored contract by name",
			NewStoredContractByName("c", "go", clvalue.Args{}),
			"02 01000000 63 02000000 676f 00000000",
		},
		{
			"stored versioned by hash",
			NewStoredVersionedContractByHash(codec.Hash{0xbb}, &version, "go", clvalue.Args{}),
			"03 bb" + strings.Repeat("00", 31) + " 01 02000000 02000000 676f 00000000",
		},
		{
			"stored versioned by hash, latest",
			NewStoredVersionedContractByHash(codec.Hash{0xbb}, nil, "go", clvalue.Args{}),
			"03 bb" + strings.Repeat("00", 31) + " 00 02000000 676f 00000000",
		},
		{
			"stored versioned by name",
			NewStoredVersionedContractByName("c", &version, "go", clvalue.Args{}),
			"04 01000000 63 01 02000000 02000000 676f 00000000",
		},
		{
			"stored versioned by name, latest",
			NewStoredVersionedContractByName("c", nil, "go", clvalue.Args{}),
			"04 01000000 63 00 02000000 676f 00000000",
		},
		{
			"transfer",
			&Transfer{},
			"05 00000000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, mustHex(t, tt.want), tt.item.Bytes())
			require.Len(t, tt.item.Bytes(), tt.item.Size())
		})
	}
}

func TestItemRoundTrip(t *testing.T) {
	for name, item := range testItems(t) {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			b := item.Bytes()
			require.Len(b, item.Size())
			require.Equal(item.GetTypeID(), b[0])

			parsed, err := ParseExecutableDeployItem(b)
			require.NoError(err)
			require.Equal(item, parsed)
			require.Equal(b, parsed.Bytes())

			j, err := json.Marshal(WrapItem(item))
			require.NoError(err)
			var o OneOf
			require.NoError(json.Unmarshal(j, &o))
			fromJSON, err := o.Item()
			require.NoError(err)
			require.Equal(item, fromJSON)
		})
	}
}

func TestParseItemInvalid(t *testing.T) {
	require := require.New(t)

	_, err := ParseExecutableDeployItem([]byte{6, 0, 0, 0, 0})
	require.ErrorIs(err, ErrUnknownItemTag)

	_, err = ParseExecutableDeployItem([]byte{5, 0, 0, 0, 0, 0})
	require.ErrorIs(err, codec.ErrTrailingBytes)

	_, err = ParseExecutableDeployItem([]byte{1, 0})
	require.ErrorIs(err, codec.ErrInsufficientLength)

	_, err = ParseExecutableDeployItem(nil)
	require.ErrorIs(err, codec.ErrInsufficientLength)

	// A well formed item whose argument value does not decode as its type.
	bad := mustHex(t, "05 01000000 01000000 61 01000000 02 00")
	_, err = ParseExecutableDeployItem(bad)
	require.ErrorIs(err, clvalue.ErrInvalidValue)
}

func TestGetArgByName(t *testing.T) {
	for name, item := range testItems(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := item.GetArgByName("missing")
			require.False(t, ok)
			for _, e := range item.GetArgs().Entries() {
				v, ok := item.GetArgByName(e.Name)
				require.True(t, ok)
				require.Equal(t, e.Value, v)
			}
		})
	}
}

func TestItemJSONShape(t *testing.T) {
	require := require.New(t)

	version := uint32(1)
	b, err := json.Marshal(WrapItem(NewStoredVersionedContractByName("counter", &version, "inc", clvalue.Args{})))
	require.NoError(err)
	require.JSONEq(`{"StoredVersionedContractByName":{"name":"counter","version":1,"entry_point":"inc","args":[]}}`, string(b))

	b, err = json.Marshal(WrapItem(NewModuleBytes(nil, clvalue.Args{})))
	require.NoError(err)
	require.JSONEq(`{"ModuleBytes":{"module_bytes":"","args":[]}}`, string(b))

	b, err = json.Marshal(WrapItem(NewStoredVersionedContractByHash(codec.Hash{}, nil, "x", clvalue.Args{})))
	require.NoError(err)
	require.Contains(string(b), `"version":null`)
}

func TestTransfer(t *testing.T) {
	require := require.New(t)

	f := newFactory(t, auth.ED25519ID)
	target := f.PublicKey()
	accountHash, err := target.AccountHash()
	require.NoError(err)

	transfer, err := NewTransfer(TransferParams{
		Amount:        big.NewInt(2500000000),
		TargetAccount: &target,
	})
	require.NoError(err)

	names := []string{}
	for _, e := range transfer.GetArgs().Entries() {
		names = append(names, e.Name)
	}
	require.Equal([]string{AmountArg, TargetArg, IDArg}, names)

	v, ok := transfer.GetArgByName(TargetArg)
	require.True(ok)
	require.Equal(clvalue.NewAccountHash(accountHash), v)

	id, ok := transfer.GetArgByName(IDArg)
	require.True(ok)
	require.Equal(clvalue.OptionType(clvalue.U64Type), id.Type)
	require.Equal([]byte{0x00}, id.Data)

	amount, ok := transfer.GetArgByName(AmountArg)
	require.True(ok)
	n, err := amount.AsBigInt()
	require.NoError(err)
	require.Equal(big.NewInt(2500000000), n)
}

func TestTransferWithSourceAndID(t *testing.T) {
	require := require.New(t)

	source := clvalue.URef{Addr: codec.Hash{1}, Access: clvalue.AccessReadAddWrite}
	target := clvalue.URef{Addr: codec.Hash{2}, Access: clvalue.AccessAdd}
	id := uint64(42)
	transfer, err := NewTransfer(TransferParams{
		Amount:      big.NewInt(1),
		TargetPurse: &target,
		SourcePurse: &source,
		ID:          &id,
	})
	require.NoError(err)

	names := []string{}
	for _, e := range transfer.GetArgs().Entries() {
		names = append(names, e.Name)
	}
	require.Equal([]string{AmountArg, SourceArg, TargetArg, IDArg}, names)

	v, ok := transfer.GetArgByName(IDArg)
	require.True(ok)
	inner, err := v.AsOption()
	require.NoError(err)
	require.NotNil(inner)
	got, err := inner.AsUint64()
	require.NoError(err)
	require.Equal(id, got)

	v, ok = transfer.GetArgByName(TargetArg)
	require.True(ok)
	u, err := v.AsURef()
	require.NoError(err)
	require.Equal(target, u)
}

func TestTransferInvalid(t *testing.T) {
	purse := clvalue.URef{Addr: codec.Hash{1}, Access: clvalue.AccessReadAddWrite}
	pk := newFactory(t, auth.SECP256K1ID).PublicKey()

	tests := []struct {
		name   string
		params TransferParams
		err    error
	}{
		{"no target", TransferParams{Amount: big.NewInt(1)}, ErrMissingTransferTarget},
		{"no amount", TransferParams{TargetPurse: &purse}, ErrMissingTransferAmount},
		{"two targets", TransferParams{Amount: big.NewInt(1), TargetPurse: &purse, TargetAccount: &pk}, ErrMultipleTargets},
		{"negative amount", TransferParams{Amount: big.NewInt(-1), TargetPurse: &purse}, clvalue.ErrNegativeValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTransfer(tt.params)
			require.ErrorIs(t, err, tt.err)
		})
	}
}
