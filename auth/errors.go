// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import "errors"

var (
	ErrInvalidKeyType        = errors.New("invalid key type")
	ErrInvalidPrivateKeySize = errors.New("invalid private key size")
	ErrInvalidPublicKeySize  = errors.New("invalid public key size")
	ErrInvalidSignatureSize  = errors.New("invalid signature size")
	ErrInvalidAccountHash    = errors.New("invalid account hash")
	ErrInvalidPEM            = errors.New("invalid pem")
	ErrAlgorithmMismatch     = errors.New("signature algorithm does not match key")
)
