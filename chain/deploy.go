// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/ava-labs/deploysdk/auth"
	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/consts"
	"github.com/ava-labs/deploysdk/crypto"
	"github.com/ava-labs/deploysdk/utils"
)

// Deploy is a signed unit of execution. A Deploy returned by this package is
// never mutated: Sign and SetSignature return a copy with one more approval.
type Deploy struct {
	Hash      codec.Hash
	Header    *Header
	Payment   ExecutableDeployItem
	Session   ExecutableDeployItem
	Approvals []Approval
}

// BodyHash is the digest of the payment bytes followed by the session bytes.
func BodyHash(payment, session ExecutableDeployItem) codec.Hash {
	return crypto.Blake2b256(payment.Bytes(), session.Bytes())
}

// MakeDeploy assembles an unsigned deploy. Note the argument order: session
// comes before payment, while the body hash covers payment first.
func MakeDeploy(params DeployParams, session, payment ExecutableDeployItem) (*Deploy, error) {
	if session == nil || payment == nil {
		return nil, ErrNilItem
	}
	if _, err := auth.NewPublicKey(params.Account.Algorithm, params.Account.Raw); err != nil {
		return nil, err
	}
	if params.ChainName == "" {
		return nil, ErrMissingChainName
	}
	if !utf8.ValidString(params.ChainName) {
		return nil, fmt.Errorf("%w: chain name", codec.ErrInvalidString)
	}
	if params.Timestamp > utils.MaxTimestamp {
		return nil, fmt.Errorf("%w: %d is after %s", utils.ErrInvalidTimestamp, params.Timestamp, utils.FormatTimestamp(utils.MaxTimestamp))
	}
	if err := ValidateItem(payment); err != nil {
		return nil, fmt.Errorf("payment: %w", err)
	}
	if err := ValidateItem(session); err != nil {
		return nil, fmt.Errorf("session: %w", err)
	}

	timestamp := params.Timestamp
	if timestamp == 0 {
		timestamp = utils.UnixMilli(time.Now())
	}

	header := &Header{
		Account:      params.Account,
		Timestamp:    timestamp,
		TTL:          params.TTL,
		GasPrice:     params.GasPrice,
		BodyHash:     BodyHash(payment, session),
		Dependencies: uniqueDependencies(params.Dependencies),
		ChainName:    params.ChainName,
	}
	d := &Deploy{
		Hash:      header.Hash(),
		Header:    header,
		Payment:   payment,
		Session:   session,
		Approvals: []Approval{},
	}
	if size := d.Size(); size > consts.MaxDeploySize {
		return nil, fmt.Errorf("%w: %d > %d", ErrDeployTooLarge, size, consts.MaxDeploySize)
	}
	return d, nil
}

func (d *Deploy) withApproval(a Approval) *Deploy {
	approvals := make([]Approval, len(d.Approvals), len(d.Approvals)+1)
	copy(approvals, d.Approvals)
	return &Deploy{
		Hash:      d.Hash,
		Header:    d.Header,
		Payment:   d.Payment,
		Session:   d.Session,
		Approvals: append(approvals, a),
	}
}

// Sign signs the deploy hash with [f] and returns a copy of [d] with the
// approval appended.
func Sign(d *Deploy, f auth.Factory) (*Deploy, error) {
	sig, err := f.Sign(d.Hash[:])
	if err != nil {
		return nil, err
	}
	return d.withApproval(Approval{Signer: f.PublicKey(), Signature: sig}), nil
}

// SetSignature appends a signature produced elsewhere, after checking it
// against the deploy hash.
func SetSignature(d *Deploy, sig auth.Signature, pk auth.PublicKey) (*Deploy, error) {
	if err := pk.Verify(d.Hash[:], sig); err != nil {
		return nil, err
	}
	return d.withApproval(Approval{Signer: pk, Signature: sig}), nil
}

// Validate recomputes both hashes, checks the size limit and verifies every
// approval.
func (d *Deploy) Validate() error {
	if d.Header == nil {
		return ErrMissingHeader
	}
	if d.Payment == nil || d.Session == nil {
		return ErrNilItem
	}
	if bodyHash := BodyHash(d.Payment, d.Session); bodyHash != d.Header.BodyHash {
		return fmt.Errorf("%w: computed %s, header has %s", ErrInvalidBodyHash, bodyHash, d.Header.BodyHash)
	}
	if hash := d.Header.Hash(); hash != d.Hash {
		return fmt.Errorf("%w: computed %s, deploy has %s", ErrInvalidDeployHash, hash, d.Hash)
	}
	if size := d.Size(); size > consts.MaxDeploySize {
		return fmt.Errorf("%w: %d > %d", ErrDeployTooLarge, size, consts.MaxDeploySize)
	}
	return verifyApprovals(d.Hash, d.Approvals)
}

// Expired reports whether [now] is past the deploy's timestamp plus ttl.
func (d *Deploy) Expired(now time.Time) bool {
	return utils.UnixMilli(now) > d.Header.Expiry()
}

func (d *Deploy) Size() int {
	size := d.Header.Size() +
		consts.HashLen +
		d.Payment.Size() +
		d.Session.Size() +
		consts.Uint32Len
	for _, a := range d.Approvals {
		size += a.Size()
	}
	return size
}

// Marshal writes header, hash, payment, session and approvals.
func (d *Deploy) Marshal(p *codec.Packer) {
	d.Header.Marshal(p)
	p.PackHash(d.Hash)
	d.Payment.Marshal(p)
	d.Session.Marshal(p)
	p.PackUint32(uint32(len(d.Approvals)))
	for _, a := range d.Approvals {
		a.Marshal(p)
	}
}

func (d *Deploy) Bytes() ([]byte, error) {
	p := codec.NewWriter(d.Size(), consts.MaxDeploySize)
	d.Marshal(p)
	if err := p.Err(); err != nil {
		if errors.Is(err, codec.ErrTooLarge) {
			return nil, fmt.Errorf("%w: %w", ErrDeployTooLarge, err)
		}
		return nil, err
	}
	return p.Bytes(), nil
}

func UnmarshalDeploy(p *codec.Packer) (*Deploy, error) {
	header, err := UnmarshalHeader(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal header", err)
	}
	d := &Deploy{Header: header}
	p.UnpackHash(&d.Hash)
	if err := p.Err(); err != nil {
		return nil, err
	}
	d.Payment, err = UnmarshalExecutableDeployItem(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal payment", err)
	}
	d.Session, err = UnmarshalExecutableDeployItem(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal session", err)
	}
	n := p.UnpackUint32()
	if err := p.Err(); err != nil {
		return nil, err
	}
	if int(n) > (len(p.Bytes())-p.Offset())/minApprovalLen {
		return nil, fmt.Errorf("%w: %d approvals", codec.ErrTooManyItems, n)
	}
	d.Approvals = make([]Approval, 0, n)
	for i := uint32(0); i < n; i++ {
		a, err := UnmarshalApproval(p)
		if err != nil {
			return nil, fmt.Errorf("%w: could not unmarshal approval %d", err, i)
		}
		d.Approvals = append(d.Approvals, a)
	}
	return d, nil
}

// ParseDeploy decodes exactly one deploy from [b].
func ParseDeploy(b []byte) (*Deploy, error) {
	if len(b) > consts.MaxDeploySize {
		return nil, fmt.Errorf("%w: %d > %d", ErrDeployTooLarge, len(b), consts.MaxDeploySize)
	}
	p := codec.NewReader(b, consts.MaxDeploySize)
	d, err := UnmarshalDeploy(p)
	if err != nil {
		return nil, err
	}
	p.Done()
	if err := p.Err(); err != nil {
		return nil, err
	}
	return d, nil
}

type deployJSON struct {
	Hash      codec.Hash `json:"hash"`
	Header    *Header    `json:"header"`
	Payment   OneOf      `json:"payment"`
	Session   OneOf      `json:"session"`
	Approvals []Approval `json:"approvals"`
}

func (d *Deploy) MarshalJSON() ([]byte, error) {
	approvals := d.Approvals
	if approvals == nil {
		approvals = []Approval{}
	}
	return json.Marshal(deployJSON{
		Hash:      d.Hash,
		Header:    d.Header,
		Payment:   WrapItem(d.Payment),
		Session:   WrapItem(d.Session),
		Approvals: approvals,
	})
}

func (d *Deploy) UnmarshalJSON(b []byte) error {
	var raw deployJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Header == nil {
		return ErrMissingHeader
	}
	payment, err := raw.Payment.Item()
	if err != nil {
		return fmt.Errorf("%w: payment", err)
	}
	session, err := raw.Session.Item()
	if err != nil {
		return fmt.Errorf("%w: session", err)
	}
	approvals := raw.Approvals
	if approvals == nil {
		approvals = []Approval{}
	}
	*d = Deploy{
		Hash:      raw.Hash,
		Header:    raw.Header,
		Payment:   payment,
		Session:   session,
		Approvals: approvals,
	}
	return nil
}
