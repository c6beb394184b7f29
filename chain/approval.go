// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/deploysdk/auth"
	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/consts"
	"github.com/ava-labs/deploysdk/crypto"
	"github.com/ava-labs/deploysdk/crypto/ed25519"
)

// minApprovalLen is an ed25519 signer and signature.
const minApprovalLen = 2*consts.ByteLen + ed25519.PublicKeyLen + ed25519.SignatureLen

// Approval is a signature over a deploy hash.
type Approval struct {
	Signer    auth.PublicKey `json:"signer"`
	Signature auth.Signature `json:"signature"`
}

func (a Approval) Size() int {
	return a.Signer.Size() + a.Signature.Size()
}

func (a Approval) Marshal(p *codec.Packer) {
	a.Signer.Marshal(p)
	a.Signature.Marshal(p)
}

func UnmarshalApproval(p *codec.Packer) (Approval, error) {
	signer, err := auth.UnmarshalPublicKey(p)
	if err != nil {
		return Approval{}, err
	}
	sig, err := auth.UnmarshalSignature(p)
	if err != nil {
		return Approval{}, err
	}
	return Approval{Signer: signer, Signature: sig}, nil
}

// verifyApprovals checks every approval against [hash]. Ed25519 approvals
// are checked in one batch; when the batch fails each one is checked on its
// own to report which approval is invalid.
func verifyApprovals(hash codec.Hash, approvals []Approval) error {
	var batched []int
	batch := ed25519.NewBatch(len(approvals))
	for i, a := range approvals {
		if a.Signer.Algorithm != a.Signature.Algorithm {
			return fmt.Errorf("approval %d: %w", i, auth.ErrAlgorithmMismatch)
		}
		if a.Signer.Algorithm == auth.ED25519ID &&
			len(a.Signer.Raw) == ed25519.PublicKeyLen &&
			len(a.Signature.Raw) == ed25519.SignatureLen {
			batch.Add(hash[:], ed25519.PublicKey(a.Signer.Raw), ed25519.Signature(a.Signature.Raw))
			batched = append(batched, i)
			continue
		}
		if err := a.Signer.Verify(hash[:], a.Signature); err != nil {
			return fmt.Errorf("approval %d: %w", i, err)
		}
	}
	if err := batch.Verify(); err == nil {
		return nil
	}
	for _, i := range batched {
		if err := approvals[i].Signer.Verify(hash[:], approvals[i].Signature); err != nil {
			return fmt.Errorf("approval %d: %w", i, err)
		}
	}
	return crypto.ErrInvalidSignature
}
