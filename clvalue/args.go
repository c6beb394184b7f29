// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package clvalue

import (
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/consts"
)

// minArgLen is an empty name plus an empty unit value.
const minArgLen = consts.IntLen + consts.IntLen + consts.ByteLen

type NamedArg struct {
	Name  string
	Value Value
}

// Args is the ordered argument map passed to an execution item.
type Args struct {
	entries []NamedArg
}

func NewArgs(entries ...NamedArg) Args {
	var a Args
	for _, e := range entries {
		a.Insert(e.Name, e.Value)
	}
	return a
}

// Insert replaces the value stored under [name] in place, or appends a new
// entry.
func (a *Args) Insert(name string, v Value) {
	for i := range a.entries {
		if a.entries[i].Name == name {
			a.entries[i].Value = v
			return
		}
	}
	a.entries = append(a.entries, NamedArg{Name: name, Value: v})
}

func (a Args) Get(name string) (Value, bool) {
	for _, e := range a.entries {
		if e.Name == name {
			return e.Value, true
		}
	}
	return Value{}, false
}

func (a Args) Len() int {
	return len(a.entries)
}

func (a Args) Entries() []NamedArg {
	return append([]NamedArg(nil), a.entries...)
}

func (a Args) Size() int {
	size := consts.Uint32Len
	for _, e := range a.entries {
		size += codec.StringLen(e.Name) + e.Value.Size()
	}
	return size
}

func (a Args) Marshal(p *codec.Packer) {
	p.PackUint32(uint32(len(a.entries)))
	for _, e := range a.entries {
		p.PackString(e.Name)
		e.Value.Marshal(p)
	}
}

func (a Args) Bytes() []byte {
	p := codec.NewWriter(a.Size(), consts.MaxInt)
	a.Marshal(p)
	return p.Bytes()
}

// Validate checks that every entry encodes into something UnmarshalArgs
// accepts.
func (a Args) Validate() error {
	for _, e := range a.entries {
		if !utf8.ValidString(e.Name) {
			return fmt.Errorf("%w: arg name %q", codec.ErrInvalidString, e.Name)
		}
		if err := e.Value.Type.Validate(); err != nil {
			return fmt.Errorf("arg %q: %w", e.Name, err)
		}
		if _, err := e.Value.Parsed(); err != nil {
			return fmt.Errorf("arg %q: %w", e.Name, err)
		}
	}
	return nil
}

func UnmarshalArgs(p *codec.Packer) (Args, error) {
	n := p.UnpackUint32()
	if err := p.Err(); err != nil {
		return Args{}, err
	}
	if int(n) > (len(p.Bytes())-p.Offset())/minArgLen {
		return Args{}, fmt.Errorf("%w: %d args", codec.ErrTooManyItems, n)
	}
	var a Args
	for i := uint32(0); i < n; i++ {
		name := p.UnpackString()
		if err := p.Err(); err != nil {
			return Args{}, err
		}
		if _, ok := a.Get(name); ok {
			return Args{}, fmt.Errorf("%w: %q", ErrDuplicateArg, name)
		}
		v, err := UnmarshalValue(p)
		if err != nil {
			return Args{}, fmt.Errorf("arg %q: %w", name, err)
		}
		a.entries = append(a.entries, NamedArg{Name: name, Value: v})
	}
	return a, nil
}

// MarshalJSON renders the ledger's [["name", value], ...] shape.
func (a Args) MarshalJSON() ([]byte, error) {
	out := make([][2]any, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, [2]any{e.Name, e.Value})
	}
	return json.Marshal(out)
}

func (a *Args) UnmarshalJSON(b []byte) error {
	var raw [][2]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	var parsed Args
	for _, pair := range raw {
		var (
			name string
			v    Value
		)
		if err := json.Unmarshal(pair[0], &name); err != nil {
			return err
		}
		if err := json.Unmarshal(pair[1], &v); err != nil {
			return fmt.Errorf("arg %q: %w", name, err)
		}
		if _, ok := parsed.Get(name); ok {
			return fmt.Errorf("%w: %q", ErrDuplicateArg, name)
		}
		parsed.entries = append(parsed.entries, NamedArg{Name: name, Value: v})
	}
	*a = parsed
	return nil
}
