// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package clvalue

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ava-labs/deploysdk/codec"
)

const (
	BoolID      uint8 = 0
	I32ID       uint8 = 1
	I64ID       uint8 = 2
	U8ID        uint8 = 3
	U32ID       uint8 = 4
	U64ID       uint8 = 5
	U128ID      uint8 = 6
	U256ID      uint8 = 7
	U512ID      uint8 = 8
	UnitID      uint8 = 9
	StringID    uint8 = 10
	KeyID       uint8 = 11
	URefID      uint8 = 12
	OptionID    uint8 = 13
	ListID      uint8 = 14
	ByteArrayID uint8 = 15
	PublicKeyID uint8 = 22

	maxTypeDepth = 8
)

var simpleTypeNames = map[uint8]string{
	BoolID:      "Bool",
	I32ID:       "I32",
	I64ID:       "I64",
	U8ID:        "U8",
	U32ID:       "U32",
	U64ID:       "U64",
	U128ID:      "U128",
	U256ID:      "U256",
	U512ID:      "U512",
	UnitID:      "Unit",
	StringID:    "String",
	KeyID:       "Key",
	URefID:      "URef",
	PublicKeyID: "PublicKey",
}

// Type describes a CL value. Inner is set for Option and List, Size for
// ByteArray.
type Type struct {
	Tag   uint8
	Inner *Type
	Size  uint32
}

var (
	BoolType      = Type{Tag: BoolID}
	I32Type       = Type{Tag: I32ID}
	I64Type       = Type{Tag: I64ID}
	U8Type        = Type{Tag: U8ID}
	U32Type       = Type{Tag: U32ID}
	U64Type       = Type{Tag: U64ID}
	U128Type      = Type{Tag: U128ID}
	U256Type      = Type{Tag: U256ID}
	U512Type      = Type{Tag: U512ID}
	UnitType      = Type{Tag: UnitID}
	StringType    = Type{Tag: StringID}
	KeyType       = Type{Tag: KeyID}
	URefType      = Type{Tag: URefID}
	PublicKeyType = Type{Tag: PublicKeyID}
)

func OptionType(inner Type) Type {
	return Type{Tag: OptionID, Inner: &inner}
}

func ListType(inner Type) Type {
	return Type{Tag: ListID, Inner: &inner}
}

func ByteArrayType(size uint32) Type {
	return Type{Tag: ByteArrayID, Size: size}
}

func (t Type) Equal(o Type) bool {
	if t.Tag != o.Tag || t.Size != o.Size {
		return false
	}
	if t.Inner == nil || o.Inner == nil {
		return t.Inner == o.Inner
	}
	return t.Inner.Equal(*o.Inner)
}

func (t Type) String() string {
	switch t.Tag {
	case OptionID:
		return fmt.Sprintf("Option(%s)", t.Inner)
	case ListID:
		return fmt.Sprintf("List(%s)", t.Inner)
	case ByteArrayID:
		return fmt.Sprintf("ByteArray(%d)", t.Size)
	default:
		if name, ok := simpleTypeNames[t.Tag]; ok {
			return name
		}
		return fmt.Sprintf("Unknown(%d)", t.Tag)
	}
}

// Validate checks that Option and List types carry an inner type, that every
// tag is known and that nesting stays within the decoding limit.
func (t Type) Validate() error {
	return t.validate(0)
}

func (t Type) validate(depth int) error {
	if depth > maxTypeDepth {
		return ErrTypeTooDeep
	}
	switch t.Tag {
	case OptionID, ListID:
		if t.Inner == nil {
			return fmt.Errorf("%w: %s", ErrMissingInnerType, t)
		}
		return t.Inner.validate(depth + 1)
	case ByteArrayID:
		return nil
	default:
		if _, ok := simpleTypeNames[t.Tag]; !ok {
			return fmt.Errorf("%w: %d", ErrUnknownType, t.Tag)
		}
		return nil
	}
}

// Marshal sets ErrMissingInnerType on [p] for an Option or List without an
// inner type.
func (t Type) Marshal(p *codec.Packer) {
	p.PackByte(t.Tag)
	switch t.Tag {
	case OptionID, ListID:
		if t.Inner == nil {
			p.AddErr(ErrMissingInnerType)
			return
		}
		t.Inner.Marshal(p)
	case ByteArrayID:
		p.PackUint32(t.Size)
	}
}

func UnmarshalType(p *codec.Packer) (Type, error) {
	return unmarshalType(p, 0)
}

func unmarshalType(p *codec.Packer, depth int) (Type, error) {
	if depth > maxTypeDepth {
		return Type{}, ErrTypeTooDeep
	}
	tag := p.UnpackByte()
	if err := p.Err(); err != nil {
		return Type{}, err
	}
	switch tag {
	case OptionID, ListID:
		inner, err := unmarshalType(p, depth+1)
		if err != nil {
			return Type{}, err
		}
		return Type{Tag: tag, Inner: &inner}, nil
	case ByteArrayID:
		size := p.UnpackUint32()
		if err := p.Err(); err != nil {
			return Type{}, err
		}
		return ByteArrayType(size), nil
	default:
		if _, ok := simpleTypeNames[tag]; !ok {
			return Type{}, fmt.Errorf("%w: %d", ErrUnknownType, tag)
		}
		return Type{Tag: tag}, nil
	}
}

func (t Type) MarshalJSON() ([]byte, error) {
	if (t.Tag == OptionID || t.Tag == ListID) && t.Inner == nil {
		return nil, ErrMissingInnerType
	}
	switch t.Tag {
	case OptionID:
		return json.Marshal(map[string]Type{"Option": *t.Inner})
	case ListID:
		return json.Marshal(map[string]Type{"List": *t.Inner})
	case ByteArrayID:
		return json.Marshal(map[string]uint32{"ByteArray": t.Size})
	default:
		name, ok := simpleTypeNames[t.Tag]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownType, t.Tag)
		}
		return json.Marshal(name)
	}
}

func (t *Type) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		for tag, n := range simpleTypeNames {
			if n == name {
				*t = Type{Tag: tag}
				return nil
			}
		}
		return fmt.Errorf("%w: %q", ErrUnknownType, name)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	if len(obj) != 1 {
		return fmt.Errorf("%w: %s", ErrUnknownType, b)
	}
	for k, raw := range obj {
		switch k {
		case "Option", "List":
			var inner Type
			if err := json.Unmarshal(raw, &inner); err != nil {
				return err
			}
			if k == "Option" {
				*t = OptionType(inner)
			} else {
				*t = ListType(inner)
			}
		case "ByteArray":
			var size uint32
			if err := json.Unmarshal(raw, &size); err != nil {
				return err
			}
			*t = ByteArrayType(size)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownType, k)
		}
	}
	return nil
}

// ParseType reads the lowercase names used on the command line: simple types
// ("u512", "public_key", ...), "account_hash", "byte_array_<n>", "opt_<type>"
// and "list_<type>".
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch {
	case strings.HasPrefix(s, "opt_"):
		inner, err := ParseType(strings.TrimPrefix(s, "opt_"))
		if err != nil {
			return Type{}, err
		}
		return OptionType(inner), nil
	case strings.HasPrefix(s, "list_"):
		inner, err := ParseType(strings.TrimPrefix(s, "list_"))
		if err != nil {
			return Type{}, err
		}
		return ListType(inner), nil
	case strings.HasPrefix(s, "byte_array_"):
		size, err := strconv.ParseUint(strings.TrimPrefix(s, "byte_array_"), 10, 32)
		if err != nil {
			return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
		}
		return ByteArrayType(uint32(size)), nil
	case s == "account_hash":
		return ByteArrayType(32), nil
	case s == "public_key":
		return PublicKeyType, nil
	}
	for tag, name := range simpleTypeNames {
		if strings.ToLower(name) == s {
			return Type{Tag: tag}, nil
		}
	}
	return Type{}, fmt.Errorf("%w: %q", ErrUnknownType, s)
}
