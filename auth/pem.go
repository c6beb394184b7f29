// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package auth

import (
	stded25519 "crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"

	encasn1 "encoding/asn1"

	"github.com/ava-labs/deploysdk/crypto/ed25519"
	"github.com/ava-labs/deploysdk/crypto/secp256k1"
)

const (
	pkcs8BlockType = "PRIVATE KEY"
	sec1BlockType  = "EC PRIVATE KEY"

	sec1Version = 1
)

var oidSecp256k1 = encasn1.ObjectIdentifier{1, 3, 132, 0, 10}

// MarshalPEM encodes ed25519 keys as PKCS #8 and secp256k1 keys as SEC 1,
// which is what the ledger's own key tooling writes.
func MarshalPEM(pk *PrivateKey) ([]byte, error) {
	switch pk.Algorithm {
	case ED25519ID:
		if len(pk.Bytes) != ed25519.PrivateKeyLen {
			return nil, ErrInvalidPrivateKeySize
		}
		der, err := x509.MarshalPKCS8PrivateKey(stded25519.PrivateKey(pk.Bytes))
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: pkcs8BlockType, Bytes: der}), nil
	case SECP256K1ID:
		if len(pk.Bytes) != secp256k1.PrivateKeyLen {
			return nil, ErrInvalidPrivateKeySize
		}
		var b cryptobyte.Builder
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1Int64(sec1Version)
			b.AddASN1OctetString(pk.Bytes)
			b.AddASN1(asn1.Tag(0).ContextSpecific().Constructed(), func(b *cryptobyte.Builder) {
				b.AddASN1ObjectIdentifier(oidSecp256k1)
			})
		})
		der, err := b.Bytes()
		if err != nil {
			return nil, err
		}
		return pem.EncodeToMemory(&pem.Block{Type: sec1BlockType, Bytes: der}), nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidKeyType, pk.Algorithm)
	}
}

// ParsePEM decodes a key written by MarshalPEM.
func ParsePEM(data []byte) (*PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrInvalidPEM
	}
	switch block.Type {
	case pkcs8BlockType:
		key, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidPEM, err)
		}
		edKey, ok := key.(stded25519.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: %T", ErrInvalidKeyType, key)
		}
		return NewED25519PrivateKeyFactory().LoadPrivateKey(edKey)
	case sec1BlockType:
		scalar, err := parseSEC1(block.Bytes)
		if err != nil {
			return nil, err
		}
		return NewSECP256K1PrivateKeyFactory().LoadPrivateKey(scalar)
	default:
		return nil, fmt.Errorf("%w: unexpected block %q", ErrInvalidPEM, block.Type)
	}
}

// parseSEC1 extracts the private scalar from an RFC 5915 ECPrivateKey.
func parseSEC1(der []byte) ([]byte, error) {
	var (
		input   = cryptobyte.String(der)
		inner   cryptobyte.String
		version int64
		priv    cryptobyte.String
	)
	if !input.ReadASN1(&inner, asn1.SEQUENCE) ||
		!input.Empty() ||
		!inner.ReadASN1Integer(&version) ||
		version != sec1Version ||
		!inner.ReadASN1(&priv, asn1.OCTET_STRING) {
		return nil, fmt.Errorf("%w: malformed ec private key", ErrInvalidPEM)
	}

	var (
		params    cryptobyte.String
		hasParams bool
	)
	if !inner.ReadOptionalASN1(&params, &hasParams, asn1.Tag(0).ContextSpecific().Constructed()) {
		return nil, fmt.Errorf("%w: malformed curve parameters", ErrInvalidPEM)
	}
	if hasParams {
		var oid encasn1.ObjectIdentifier
		if !params.ReadASN1ObjectIdentifier(&oid) || !oid.Equal(oidSecp256k1) {
			return nil, fmt.Errorf("%w: curve is not secp256k1", ErrInvalidKeyType)
		}
	}

	if len(priv) > secp256k1.PrivateKeyLen {
		return nil, ErrInvalidPrivateKeySize
	}
	// Some encoders strip leading zeros.
	scalar := make([]byte, secp256k1.PrivateKeyLen)
	copy(scalar[secp256k1.PrivateKeyLen-len(priv):], priv)
	return scalar, nil
}

// SaveKey writes [pk] to [filename] as PEM with read/write permissions
// (0o600).
func SaveKey(filename string, pk *PrivateKey) error {
	b, err := MarshalPEM(pk)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0o600)
}

// LoadKey reads a PEM key from [filename].
func LoadKey(filename string) (*PrivateKey, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParsePEM(b)
}
