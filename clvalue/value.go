// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package clvalue

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ava-labs/deploysdk/auth"
	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/consts"
)

const (
	u128Len = 16
	u256Len = 32
	u512Len = 64

	maxUnitListLen = 1 << 16
)

// Value is a typed value in its serialized form. Data is the value encoding
// without the length prefix.
type Value struct {
	Type Type
	Data []byte
}

func encode(t Type, pack func(*codec.Packer)) Value {
	p := codec.NewWriter(consts.Uint64Len, consts.MaxInt)
	pack(p)
	data := p.Bytes()
	if data == nil {
		data = []byte{}
	}
	return Value{Type: t, Data: data}
}

func NewBool(v bool) Value {
	return encode(BoolType, func(p *codec.Packer) { p.PackBool(v) })
}

func NewI32(v int32) Value {
	return encode(I32Type, func(p *codec.Packer) { p.PackInt32(v) })
}

func NewI64(v int64) Value {
	return encode(I64Type, func(p *codec.Packer) { p.PackInt64(v) })
}

func NewU8(v uint8) Value {
	return encode(U8Type, func(p *codec.Packer) { p.PackByte(v) })
}

func NewU32(v uint32) Value {
	return encode(U32Type, func(p *codec.Packer) { p.PackUint32(v) })
}

func NewU64(v uint64) Value {
	return encode(U64Type, func(p *codec.Packer) { p.PackUint64(v) })
}

func newBig(t Type, maxLen int, v *big.Int) (Value, error) {
	if v.Sign() < 0 {
		return Value{}, fmt.Errorf("%w: %s", ErrNegativeValue, v)
	}
	if len(v.Bytes()) > maxLen {
		return Value{}, fmt.Errorf("%w: %s does not fit %s", ErrValueOverflow, v, t)
	}
	return encode(t, func(p *codec.Packer) { packBig(p, v) }), nil
}

func NewU128(v *big.Int) (Value, error) {
	return newBig(U128Type, u128Len, v)
}

func NewU256(v *big.Int) (Value, error) {
	return newBig(U256Type, u256Len, v)
}

func NewU512(v *big.Int) (Value, error) {
	return newBig(U512Type, u512Len, v)
}

// NewU512FromUint64 cannot fail: every uint64 fits a U512.
func NewU512FromUint64(v uint64) Value {
	return encode(U512Type, func(p *codec.Packer) { packBig(p, new(big.Int).SetUint64(v)) })
}

func NewUnit() Value {
	return Value{Type: UnitType, Data: []byte{}}
}

// NewString keeps [s] as given. Invalid UTF-8 is reported by Parsed and
// Args.Validate.
func NewString(s string) Value {
	return encode(StringType, func(p *codec.Packer) { p.PackBytes([]byte(s)) })
}

func NewByteArray(b []byte) Value {
	return Value{Type: ByteArrayType(uint32(len(b))), Data: append([]byte{}, b...)}
}

// NewAccountHash stores [a] as a ByteArray(32), the shape transfer targets
// use.
func NewAccountHash(a auth.AccountHash) Value {
	return NewByteArray(a[:])
}

func NewURefValue(u URef) Value {
	return encode(URefType, u.Marshal)
}

func NewKeyValue(k Key) Value {
	return encode(KeyType, k.Marshal)
}

func NewPublicKey(pk auth.PublicKey) Value {
	return encode(PublicKeyType, pk.Marshal)
}

// NewList requires every element to be of type [t].
func NewList(t Type, vs []Value) (Value, error) {
	if err := t.Validate(); err != nil {
		return Value{}, err
	}
	for i, v := range vs {
		if !v.Type.Equal(t) {
			return Value{}, fmt.Errorf("%w: element %d is %s, want %s", ErrTypeMismatch, i, v.Type, t)
		}
	}
	return encode(ListType(t), func(p *codec.Packer) {
		p.PackUint32(uint32(len(vs)))
		for _, v := range vs {
			p.PackFixedBytes(v.Data)
		}
	}), nil
}

// NewOption wraps [v], which may be nil. When [v] is nil the inner type must
// be supplied by [t]; when both are set they must agree.
func NewOption(v *Value, t *Type) (Value, error) {
	switch {
	case v == nil && t == nil:
		return Value{}, ErrMissingOptionType
	case v == nil:
		if err := t.Validate(); err != nil {
			return Value{}, err
		}
		return Value{Type: OptionType(*t), Data: []byte{codec.OptionNone}}, nil
	case t != nil && !t.Equal(v.Type):
		return Value{}, fmt.Errorf("%w: %s != %s", ErrTypeMismatch, v.Type, t)
	}
	return encode(OptionType(v.Type), func(p *codec.Packer) {
		p.PackOptional(true, func(p *codec.Packer) { p.PackFixedBytes(v.Data) })
	}), nil
}

func (v Value) Size() int {
	p := codec.NewWriter(consts.ByteLen, consts.MaxInt)
	v.Type.Marshal(p)
	return codec.BytesLen(v.Data) + len(p.Bytes())
}

func (v Value) Marshal(p *codec.Packer) {
	p.PackBytes(v.Data)
	v.Type.Marshal(p)
}

// UnmarshalValue reads a value and checks that its data is a well-formed
// encoding of its type.
func UnmarshalValue(p *codec.Packer) (Value, error) {
	var v Value
	p.UnpackBytes(-1, &v.Data)
	if err := p.Err(); err != nil {
		return Value{}, err
	}
	t, err := UnmarshalType(p)
	if err != nil {
		return Value{}, err
	}
	v.Type = t
	if _, err := v.Parsed(); err != nil {
		return Value{}, err
	}
	return v, nil
}

func (v Value) Equal(o Value) bool {
	return v.Type.Equal(o.Type) && string(v.Data) == string(o.Data)
}

// Parsed decodes Data into a JSON friendly form: numbers up to 64 bits as
// numbers, big integers as decimal strings, keys, urefs and byte arrays as
// their text form.
func (v Value) Parsed() (any, error) {
	p := codec.NewReader(v.Data, consts.MaxInt)
	parsed, err := decodeValue(p, v.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidValue, v.Type, err)
	}
	p.Done()
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidValue, v.Type, err)
	}
	return parsed, nil
}

func decodeValue(p *codec.Packer, t Type) (any, error) {
	if (t.Tag == OptionID || t.Tag == ListID) && t.Inner == nil {
		return nil, ErrMissingInnerType
	}
	var out any
	switch t.Tag {
	case BoolID:
		out = p.UnpackBool()
	case I32ID:
		out = p.UnpackInt32()
	case I64ID:
		out = p.UnpackInt64()
	case U8ID:
		out = p.UnpackByte()
	case U32ID:
		out = p.UnpackUint32()
	case U64ID:
		out = p.UnpackUint64()
	case U128ID, U256ID, U512ID:
		n, err := unpackBig(p, t)
		if err != nil {
			return nil, err
		}
		out = n.String()
	case UnitID:
		return nil, nil
	case StringID:
		out = p.UnpackString()
	case KeyID:
		k, err := UnmarshalKey(p)
		if err != nil {
			return nil, err
		}
		out = k.String()
	case URefID:
		u, err := UnmarshalURef(p)
		if err != nil {
			return nil, err
		}
		out = u.String()
	case PublicKeyID:
		pk, err := auth.UnmarshalPublicKey(p)
		if err != nil {
			return nil, err
		}
		out = pk.String()
	case ByteArrayID:
		var b []byte
		p.UnpackFixedBytes(int(t.Size), &b)
		out = codec.ToHex(b)
	case OptionID:
		var inner any
		var innerErr error
		p.UnpackOptional(func(p *codec.Packer) {
			inner, innerErr = decodeValue(p, *t.Inner)
		})
		if innerErr != nil {
			return nil, innerErr
		}
		out = inner
	case ListID:
		n := p.UnpackUint32()
		if err := p.Err(); err != nil {
			return nil, err
		}
		remaining := len(p.Bytes()) - p.Offset()
		if (t.Inner.Tag == UnitID && n > maxUnitListLen) || (t.Inner.Tag != UnitID && int(n) > remaining) {
			return nil, fmt.Errorf("%w: list of %d", codec.ErrTooManyItems, n)
		}
		items := make([]any, 0, n)
		for i := uint32(0); i < n; i++ {
			item, err := decodeValue(p, *t.Inner)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		out = items
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, t.Tag)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func bigLen(tag uint8) int {
	switch tag {
	case U128ID:
		return u128Len
	case U256ID:
		return u256Len
	default:
		return u512Len
	}
}

// packBig writes one length byte and the minimal little-endian magnitude.
// unpackBig also accepts trailing zero bytes, as the node does.
func packBig(p *codec.Packer, v *big.Int) {
	be := v.Bytes()
	le := make([]byte, len(be))
	for i, b := range be {
		le[len(be)-1-i] = b
	}
	p.PackByte(uint8(len(le)))
	p.PackFixedBytes(le)
}

func unpackBig(p *codec.Packer, t Type) (*big.Int, error) {
	maxLen := bigLen(t.Tag)
	n := int(p.UnpackByte())
	if err := p.Err(); err != nil {
		return nil, err
	}
	if n > maxLen {
		return nil, fmt.Errorf("%w: %d bytes for %s", ErrValueOverflow, n, t)
	}
	var le []byte
	p.UnpackFixedBytes(n, &le)
	if err := p.Err(); err != nil {
		return nil, err
	}
	be := make([]byte, n)
	for i, b := range le {
		be[n-1-i] = b
	}
	return new(big.Int).SetBytes(be), nil
}

func (v Value) decodeAs(tag uint8) (any, error) {
	if v.Type.Tag != tag {
		return nil, fmt.Errorf("%w: have %s", ErrTypeMismatch, v.Type)
	}
	return v.Parsed()
}

// AsBigInt returns the value of a U128, U256 or U512.
func (v Value) AsBigInt() (*big.Int, error) {
	switch v.Type.Tag {
	case U128ID, U256ID, U512ID:
	default:
		return nil, fmt.Errorf("%w: have %s", ErrTypeMismatch, v.Type)
	}
	return unpackBig(codec.NewReader(v.Data, consts.MaxInt), v.Type)
}

func (v Value) AsUint64() (uint64, error) {
	parsed, err := v.decodeAs(U64ID)
	if err != nil {
		return 0, err
	}
	return parsed.(uint64), nil
}

func (v Value) AsString() (string, error) {
	parsed, err := v.decodeAs(StringID)
	if err != nil {
		return "", err
	}
	return parsed.(string), nil
}

func (v Value) AsURef() (URef, error) {
	if v.Type.Tag != URefID {
		return URef{}, fmt.Errorf("%w: have %s", ErrTypeMismatch, v.Type)
	}
	return UnmarshalURef(codec.NewReader(v.Data, consts.MaxInt))
}

func (v Value) AsByteArray() ([]byte, error) {
	if v.Type.Tag != ByteArrayID {
		return nil, fmt.Errorf("%w: have %s", ErrTypeMismatch, v.Type)
	}
	return append([]byte{}, v.Data...), nil
}

// AsOption returns the wrapped value, or nil when the option is empty.
func (v Value) AsOption() (*Value, error) {
	if v.Type.Tag != OptionID {
		return nil, fmt.Errorf("%w: have %s", ErrTypeMismatch, v.Type)
	}
	if _, err := v.Parsed(); err != nil {
		return nil, err
	}
	if v.Data[0] == codec.OptionNone {
		return nil, nil
	}
	return &Value{Type: *v.Type.Inner, Data: append([]byte{}, v.Data[1:]...)}, nil
}

type valueJSON struct {
	CLType Type        `json:"cl_type"`
	Bytes  codec.Bytes `json:"bytes"`
	Parsed any         `json:"parsed"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	parsed, err := v.Parsed()
	if err != nil {
		return nil, err
	}
	return json.Marshal(valueJSON{CLType: v.Type, Bytes: v.Data, Parsed: parsed})
}

// UnmarshalJSON trusts cl_type and bytes; parsed is informational only.
func (v *Value) UnmarshalJSON(b []byte) error {
	var raw valueJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	data := []byte(raw.Bytes)
	if data == nil {
		data = []byte{}
	}
	parsed := Value{Type: raw.CLType, Data: data}
	if _, err := parsed.Parsed(); err != nil {
		return err
	}
	*v = parsed
	return nil
}
