// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/ava-labs/deploysdk/clvalue"
	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/consts"
)

var (
	_ ExecutableDeployItem = (*ModuleBytes)(nil)
	_ ExecutableDeployItem = (*StoredContractByHash)(nil)
	_ ExecutableDeployItem = (*StoredContractByName)(nil)
	_ ExecutableDeployItem = (*StoredVersionedContractByHash)(nil)
	_ ExecutableDeployItem = (*StoredVersionedContractByName)(nil)
	_ ExecutableDeployItem = (*Transfer)(nil)
)

// ExecutableDeployItem is the code a deploy runs, either as payment or as
// session. The set of implementations is closed.
type ExecutableDeployItem interface {
	// GetTypeID is the tag written before the item's fields.
	GetTypeID() uint8
	// Size is the length of Bytes.
	Size() int
	// Marshal writes the tag, the variant fields and the argument map.
	Marshal(p *codec.Packer)
	Bytes() []byte
	GetArgs() clvalue.Args
	GetArgByName(name string) (clvalue.Value, bool)

	isExecutableDeployItem()
}

var itemParser = codec.NewTypeParser[ExecutableDeployItem]()

func init() {
	errs := wrappers.Errs{}
	errs.Add(
		itemParser.Register(ModuleBytesID, &ModuleBytes{}, unmarshalModuleBytes),
		itemParser.Register(StoredContractByHashID, &StoredContractByHash{}, unmarshalStoredContractByHash),
		itemParser.Register(StoredContractByNameID, &StoredContractByName{}, unmarshalStoredContractByName),
		itemParser.Register(StoredVersionedContractByHashID, &StoredVersionedContractByHash{}, unmarshalStoredVersionedContractByHash),
		itemParser.Register(StoredVersionedContractByNameID, &StoredVersionedContractByName{}, unmarshalStoredVersionedContractByName),
		itemParser.Register(TransferID, &Transfer{}, unmarshalTransfer),
	)
	if errs.Errored() {
		panic(errs.Err)
	}
}

// UnmarshalExecutableDeployItem reads the tag and dispatches to the variant
// registered for it.
func UnmarshalExecutableDeployItem(p *codec.Packer) (ExecutableDeployItem, error) {
	tag := p.UnpackByte()
	if err := p.Err(); err != nil {
		return nil, err
	}
	unmarshal, ok := itemParser.LookupIndex(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownItemTag, tag)
	}
	return unmarshal(p)
}

// ParseExecutableDeployItem decodes exactly one item from [b].
func ParseExecutableDeployItem(b []byte) (ExecutableDeployItem, error) {
	p := codec.NewReader(b, consts.MaxDeploySize)
	item, err := UnmarshalExecutableDeployItem(p)
	if err != nil {
		return nil, err
	}
	p.Done()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return item, nil
}

func itemBytes(item ExecutableDeployItem) []byte {
	p := codec.NewWriter(item.Size(), consts.MaxInt)
	item.Marshal(p)
	return p.Bytes()
}

// ValidateItem reports encoding errors Bytes would drop: names and entry
// points that are not valid UTF-8, and argument values that do not decode as
// their declared type.
func ValidateItem(item ExecutableDeployItem) error {
	if item == nil {
		return ErrNilItem
	}
	p := codec.NewWriter(item.Size(), consts.MaxInt)
	item.Marshal(p)
	if err := p.Err(); err != nil {
		return err
	}
	return item.GetArgs().Validate()
}

// ModuleBytes runs compiled wasm shipped inside the deploy. Empty module bytes
// select the standard payment.
type ModuleBytes struct {
	Module codec.Bytes  `json:"module_bytes"`
	Args   clvalue.Args `json:"args"`
}

func NewModuleBytes(module []byte, args clvalue.Args) *ModuleBytes {
	if module == nil {
		module = []byte{}
	}
	return &ModuleBytes{Module: module, Args: args}
}

func (*ModuleBytes) GetTypeID() uint8 { return ModuleBytesID }

func (m *ModuleBytes) Size() int {
	return consts.ByteLen + codec.BytesLen(m.Module) + m.Args.Size()
}

func (m *ModuleBytes) Marshal(p *codec.Packer) {
	p.PackByte(ModuleBytesID)
	p.PackBytes(m.Module)
	m.Args.Marshal(p)
}

func (m *ModuleBytes) Bytes() []byte { return itemBytes(m) }

func (m *ModuleBytes) GetArgs() clvalue.Args { return m.Args }

func (m *ModuleBytes) GetArgByName(name string) (clvalue.Value, bool) {
	return m.Args.Get(name)
}

func (*ModuleBytes) isExecutableDeployItem() {}

func unmarshalModuleBytes(p *codec.Packer) (ExecutableDeployItem, error) {
	var m ModuleBytes
	var module []byte
	p.UnpackBytes(-1, &module)
	if err := p.Err(); err != nil {
		return nil, err
	}
	m.Module = module
	args, err := clvalue.UnmarshalArgs(p)
	if err != nil {
		return nil, err
	}
	m.Args = args
	return &m, nil
}

// StoredContractByHash calls [EntryPoint] on the contract stored at [Hash].
type StoredContractByHash struct {
	Hash       codec.Hash   `json:"hash"`
	EntryPoint string       `json:"entry_point"`
	Args       clvalue.Args `json:"args"`
}

func NewStoredContractByHash(hash codec.Hash, entryPoint string, args clvalue.Args) *StoredContractByHash {
	return &StoredContractByHash{Hash: hash, EntryPoint: entryPoint, Args: args}
}

func (*StoredContractByHash) GetTypeID() uint8 { return StoredContractByHashID }

func (s *StoredContractByHash) Size() int {
	return consts.ByteLen + consts.HashLen + codec.StringLen(s.EntryPoint) + s.Args.Size()
}

func (s *StoredContractByHash) Marshal(p *codec.Packer) {
	p.PackByte(StoredContractByHashID)
	p.PackHash(s.Hash)
	p.PackString(s.EntryPoint)
	s.Args.Marshal(p)
}

func (s *StoredContractByHash) Bytes() []byte { return itemBytes(s) }

func (s *StoredContractByHash) GetArgs() clvalue.Args { return s.Args }

func (s *StoredContractByHash) GetArgByName(name string) (clvalue.Value, bool) {
	return s.Args.Get(name)
}

func (*StoredContractByHash) isExecutableDeployItem() {}

func unmarshalStoredContractByHash(p *codec.Packer) (ExecutableDeployItem, error) {
	var s StoredContractByHash
	p.UnpackHash(&s.Hash)
	s.EntryPoint = p.UnpackString()
	if err := p.Err(); err != nil {
		return nil, err
	}
	args, err := clvalue.UnmarshalArgs(p)
	if err != nil {
		return nil, err
	}
	s.Args = args
	return &s, nil
}

// StoredContractByName calls [EntryPoint] on the contract the signing account
// stores under [Name].
type StoredContractByName struct {
	Name       string       `json:"name"`
	EntryPoint string       `json:"entry_point"`
	Args       clvalue.Args `json:"args"`
}

func NewStoredContractByName(name, entryPoint string, args clvalue.Args) *StoredContractByName {
	return &StoredContractByName{Name: name, EntryPoint: entryPoint, Args: args}
}

func (*StoredContractByName) GetTypeID() uint8 { return StoredContractByNameID }

func (s *StoredContractByName) Size() int {
	return consts.ByteLen + codec.StringLen(s.Name) + codec.StringLen(s.EntryPoint) + s.Args.Size()
}

func (s *StoredContractByName) Marshal(p *codec.Packer) {
	p.PackByte(StoredContractByNameID)
	p.PackString(s.Name)
	p.PackString(s.EntryPoint)
	s.Args.Marshal(p)
}

func (s *StoredContractByName) Bytes() []byte { return itemBytes(s) }

func (s *StoredContractByName) GetArgs() clvalue.Args { return s.Args }

func (s *StoredContractByName) GetArgByName(name string) (clvalue.Value, bool) {
	return s.Args.Get(name)
}

func (*StoredContractByName) isExecutableDeployItem() {}

func unmarshalStoredContractByName(p *codec.Packer) (ExecutableDeployItem, error) {
	var s StoredContractByName
	s.Name = p.UnpackString()
	s.EntryPoint = p.UnpackString()
	if err := p.Err(); err != nil {
		return nil, err
	}
	args, err := clvalue.UnmarshalArgs(p)
	if err != nil {
		return nil, err
	}
	s.Args = args
	return &s, nil
}

// StoredVersionedContractByHash calls [EntryPoint] on a version of the
// contract package at [Hash]. A nil [Version] selects the latest.
type StoredVersionedContractByHash struct {
	Hash       codec.Hash   `json:"hash"`
	Version    *uint32      `json:"version"`
	EntryPoint string       `json:"entry_point"`
	Args       clvalue.Args `json:"args"`
}

func NewStoredVersionedContractByHash(
	hash codec.Hash,
	version *uint32,
	entryPoint string,
	args clvalue.Args,
) *StoredVersionedContractByHash {
	return &StoredVersionedContractByHash{Hash: hash, Version: version, EntryPoint: entryPoint, Args: args}
}

func (*StoredVersionedContractByHash) GetTypeID() uint8 { return StoredVersionedContractByHashID }

func (s *StoredVersionedContractByHash) Size() int {
	return consts.ByteLen +
		consts.HashLen +
		codec.OptionalLen(s.Version != nil, consts.Uint32Len) +
		codec.StringLen(s.EntryPoint) +
		s.Args.Size()
}

func (s *StoredVersionedContractByHash) Marshal(p *codec.Packer) {
	p.PackByte(StoredVersionedContractByHashID)
	p.PackHash(s.Hash)
	p.PackOptionalUint32(s.Version)
	p.PackString(s.EntryPoint)
	s.Args.Marshal(p)
}

func (s *StoredVersionedContractByHash) Bytes() []byte { return itemBytes(s) }

func (s *StoredVersionedContractByHash) GetArgs() clvalue.Args { return s.Args }

func (s *StoredVersionedContractByHash) GetArgByName(name string) (clvalue.Value, bool) {
	return s.Args.Get(name)
}

func (*StoredVersionedContractByHash) isExecutableDeployItem() {}

func unmarshalStoredVersionedContractByHash(p *codec.Packer) (ExecutableDeployItem, error) {
	var s StoredVersionedContractByHash
	p.UnpackHash(&s.Hash)
	s.Version = p.UnpackOptionalUint32()
	s.EntryPoint = p.UnpackString()
	if err := p.Err(); err != nil {
		return nil, err
	}
	args, err := clvalue.UnmarshalArgs(p)
	if err != nil {
		return nil, err
	}
	s.Args = args
	return &s, nil
}

// StoredVersionedContractByName calls [EntryPoint] on a version of the
// contract package stored under [Name]. A nil [Version] selects the latest.
type StoredVersionedContractByName struct {
	Name       string       `json:"name"`
	Version    *uint32      `json:"version"`
	EntryPoint string       `json:"entry_point"`
	Args       clvalue.Args `json:"args"`
}

func NewStoredVersionedContractByName(
	name string,
	version *uint32,
	entryPoint string,
	args clvalue.Args,
) *StoredVersionedContractByName {
	return &StoredVersionedContractByName{Name: name, Version: version, EntryPoint: entryPoint, Args: args}
}

func (*StoredVersionedContractByName) GetTypeID() uint8 { return StoredVersionedContractByNameID }

func (s *StoredVersionedContractByName) Size() int {
	return consts.ByteLen +
		codec.StringLen(s.Name) +
		codec.OptionalLen(s.Version != nil, consts.Uint32Len) +
		codec.StringLen(s.EntryPoint) +
		s.Args.Size()
}

func (s *StoredVersionedContractByName) Marshal(p *codec.Packer) {
	p.PackByte(StoredVersionedContractByNameID)
	p.PackString(s.Name)
	p.PackOptionalUint32(s.Version)
	p.PackString(s.EntryPoint)
	s.Args.Marshal(p)
}

func (s *StoredVersionedContractByName) Bytes() []byte { return itemBytes(s) }

func (s *StoredVersionedContractByName) GetArgs() clvalue.Args { return s.Args }

func (s *StoredVersionedContractByName) GetArgByName(name string) (clvalue.Value, bool) {
	return s.Args.Get(name)
}

func (*StoredVersionedContractByName) isExecutableDeployItem() {}

func unmarshalStoredVersionedContractByName(p *codec.Packer) (ExecutableDeployItem, error) {
	var s StoredVersionedContractByName
	s.Name = p.UnpackString()
	s.Version = p.UnpackOptionalUint32()
	s.EntryPoint = p.UnpackString()
	if err := p.Err(); err != nil {
		return nil, err
	}
	args, err := clvalue.UnmarshalArgs(p)
	if err != nil {
		return nil, err
	}
	s.Args = args
	return &s, nil
}
