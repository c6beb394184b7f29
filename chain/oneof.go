// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "fmt"

// OneOf is the JSON shape of an executable deploy item: an object with
// exactly one key naming the variant. It only exists at the JSON boundary;
// convert it with Item as soon as it is decoded.
type OneOf struct {
	ModuleBytes                   *ModuleBytes                   `json:"ModuleBytes,omitempty"`
	StoredContractByHash          *StoredContractByHash          `json:"StoredContractByHash,omitempty"`
	StoredContractByName          *StoredContractByName          `json:"StoredContractByName,omitempty"`
	StoredVersionedContractByHash *StoredVersionedContractByHash `json:"StoredVersionedContractByHash,omitempty"`
	StoredVersionedContractByName *StoredVersionedContractByName `json:"StoredVersionedContractByName,omitempty"`
	Transfer                      *Transfer                      `json:"Transfer,omitempty"`
}

// WrapItem places [item] in its slot.
func WrapItem(item ExecutableDeployItem) OneOf {
	var o OneOf
	switch i := item.(type) {
	case *ModuleBytes:
		o.ModuleBytes = i
	case *StoredContractByHash:
		o.StoredContractByHash = i
	case *StoredContractByName:
		o.StoredContractByName = i
	case *StoredVersionedContractByHash:
		o.StoredVersionedContractByHash = i
	case *StoredVersionedContractByName:
		o.StoredVersionedContractByName = i
	case *Transfer:
		o.Transfer = i
	}
	return o
}

func (o OneOf) selectItem() (ExecutableDeployItem, error) {
	var items []ExecutableDeployItem
	if o.ModuleBytes != nil {
		items = append(items, o.ModuleBytes)
	}
	if o.StoredContractByHash != nil {
		items = append(items, o.StoredContractByHash)
	}
	if o.StoredContractByName != nil {
		items = append(items, o.StoredContractByName)
	}
	if o.StoredVersionedContractByHash != nil {
		items = append(items, o.StoredVersionedContractByHash)
	}
	if o.StoredVersionedContractByName != nil {
		items = append(items, o.StoredVersionedContractByName)
	}
	if o.Transfer != nil {
		items = append(items, o.Transfer)
	}
	switch len(items) {
	case 0:
		return nil, ErrNoItem
	case 1:
		return items[0], nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrMultipleItems, len(items))
	}
}

// Item returns the populated variant.
func (o OneOf) Item() (ExecutableDeployItem, error) {
	return o.selectItem()
}

// Bytes encodes the populated variant. It fails when zero or several slots
// are set.
func (o OneOf) Bytes() ([]byte, error) {
	item, err := o.selectItem()
	if err != nil {
		return nil, err
	}
	return item.Bytes(), nil
}

func (o OneOf) IsModuleBytes() bool { return o.ModuleBytes != nil }

func (o OneOf) AsModuleBytes() (*ModuleBytes, bool) {
	return o.ModuleBytes, o.ModuleBytes != nil
}

func (o OneOf) IsStoredContractByHash() bool { return o.StoredContractByHash != nil }

func (o OneOf) AsStoredContractByHash() (*StoredContractByHash, bool) {
	return o.StoredContractByHash, o.StoredContractByHash != nil
}

func (o OneOf) IsStoredContractByName() bool { return o.StoredContractByName != nil }

func (o OneOf) AsStoredContractByName() (*StoredContractByName, bool) {
	return o.StoredContractByName, o.StoredContractByName != nil
}

func (o OneOf) IsStoredVersionedContractByHash() bool {
	return o.StoredVersionedContractByHash != nil
}

func (o OneOf) AsStoredVersionedContractByHash() (*StoredVersionedContractByHash, bool) {
	return o.StoredVersionedContractByHash, o.StoredVersionedContractByHash != nil
}

func (o OneOf) IsStoredVersionedContractByName() bool {
	return o.StoredVersionedContractByName != nil
}

func (o OneOf) AsStoredVersionedContractByName() (*StoredVersionedContractByName, bool) {
	return o.StoredVersionedContractByName, o.StoredVersionedContractByName != nil
}

func (o OneOf) IsTransfer() bool { return o.Transfer != nil }

func (o OneOf) AsTransfer() (*Transfer, bool) {
	return o.Transfer, o.Transfer != nil
}
