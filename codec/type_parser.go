// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import "fmt"

// TypeParser maps the discriminant byte of a tagged union to the decoder of
// the matching variant. Tags are assigned explicitly because they are part of
// the wire format.
type TypeParser[T any] struct {
	typeToIndex    map[string]uint8
	indexToDecoder map[uint8]func(*Packer) (T, error)
}

func NewTypeParser[T any]() *TypeParser[T] {
	return &TypeParser[T]{
		typeToIndex:    map[string]uint8{},
		indexToDecoder: map[uint8]func(*Packer) (T, error){},
	}
}

// Register assigns [index] to the concrete type of [o]. Registering the same
// type or index twice fails with ErrDuplicateItem.
func (p *TypeParser[T]) Register(index uint8, o T, f func(*Packer) (T, error)) error {
	k := fmt.Sprintf("%T", o)
	if _, ok := p.typeToIndex[k]; ok {
		return fmt.Errorf("%w: type %s", ErrDuplicateItem, k)
	}
	if _, ok := p.indexToDecoder[index]; ok {
		return fmt.Errorf("%w: index %d", ErrDuplicateItem, index)
	}
	p.typeToIndex[k] = index
	p.indexToDecoder[index] = f
	return nil
}

func (p *TypeParser[T]) LookupIndex(index uint8) (func(*Packer) (T, error), bool) {
	f, ok := p.indexToDecoder[index]
	return f, ok
}
