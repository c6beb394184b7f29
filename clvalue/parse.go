// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package clvalue

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ava-labs/deploysdk/auth"
	"github.com/ava-labs/deploysdk/codec"
)

// ParseArg parses the command line form name:type='value'.
func ParseArg(s string) (string, Value, error) {
	name, rest, ok := strings.Cut(s, ":")
	if !ok || name == "" {
		return "", Value{}, fmt.Errorf("%w: %q is not name:type='value'", ErrInvalidArg, s)
	}
	typ, raw, ok := strings.Cut(rest, "=")
	if !ok {
		return "", Value{}, fmt.Errorf("%w: %q is missing a value", ErrInvalidArg, s)
	}
	t, err := ParseType(typ)
	if err != nil {
		return "", Value{}, err
	}
	v, err := ParseValue(t, strings.Trim(strings.TrimSpace(raw), `'"`))
	if err != nil {
		return "", Value{}, fmt.Errorf("arg %q: %w", name, err)
	}
	return strings.TrimSpace(name), v, nil
}

// ParseValue builds a value of type [t] from its text form. Options accept
// "null" or "" for none, lists are comma separated and byte arrays are hex.
func ParseValue(t Type, s string) (Value, error) {
	switch t.Tag {
	case BoolID:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrInvalidArg, err)
		}
		return NewBool(b), nil
	case I32ID:
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrInvalidArg, err)
		}
		return NewI32(int32(n)), nil
	case I64ID:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrInvalidArg, err)
		}
		return NewI64(n), nil
	case U8ID:
		n, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrInvalidArg, err)
		}
		return NewU8(uint8(n)), nil
	case U32ID:
		n, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrInvalidArg, err)
		}
		return NewU32(uint32(n)), nil
	case U64ID:
		n, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrInvalidArg, err)
		}
		return NewU64(n), nil
	case U128ID, U256ID, U512ID:
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return Value{}, fmt.Errorf("%w: %q is not a decimal integer", ErrInvalidArg, s)
		}
		return newBig(t, bigLen(t.Tag), n)
	case UnitID:
		if s != "" {
			return Value{}, fmt.Errorf("%w: unit takes no value", ErrInvalidArg)
		}
		return NewUnit(), nil
	case StringID:
		return NewString(s), nil
	case KeyID:
		k, err := ParseKey(s)
		if err != nil {
			return Value{}, err
		}
		return NewKeyValue(k), nil
	case URefID:
		u, err := ParseURef(s)
		if err != nil {
			return Value{}, err
		}
		return NewURefValue(u), nil
	case PublicKeyID:
		pk, err := auth.ParsePublicKey(s)
		if err != nil {
			return Value{}, err
		}
		return NewPublicKey(pk), nil
	case ByteArrayID:
		b, err := codec.LoadHex(strings.TrimPrefix(s, accountHashPrefix), int(t.Size))
		if err != nil {
			return Value{}, fmt.Errorf("%w: %w", ErrInvalidArg, err)
		}
		return NewByteArray(b), nil
	case OptionID:
		if s == "" || s == "null" {
			return NewOption(nil, t.Inner)
		}
		inner, err := ParseValue(*t.Inner, s)
		if err != nil {
			return Value{}, err
		}
		return NewOption(&inner, t.Inner)
	case ListID:
		var items []Value
		if s != "" {
			for _, part := range strings.Split(s, ",") {
				item, err := ParseValue(*t.Inner, strings.TrimSpace(part))
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
		}
		return NewList(*t.Inner, items)
	default:
		return Value{}, fmt.Errorf("%w: %d", ErrUnknownType, t.Tag)
	}
}
