// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	"strings"

	"github.com/ava-labs/deploysdk/codec"
)

const accountHashPrefix = "account-hash-"

// AccountHash identifies an account independently of its key algorithm.
type AccountHash codec.Hash

// ParseAccountHash accepts "account-hash-<hex>" or bare hex.
func ParseAccountHash(s string) (AccountHash, error) {
	h, err := codec.HexToHash(strings.TrimPrefix(s, accountHashPrefix))
	if err != nil {
		return AccountHash{}, ErrInvalidAccountHash
	}
	return AccountHash(h), nil
}

func (a AccountHash) String() string {
	return accountHashPrefix + codec.Hash(a).String()
}

func (a AccountHash) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccountHash) UnmarshalText(text []byte) error {
	parsed, err := ParseAccountHash(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
