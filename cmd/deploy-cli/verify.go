// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ava-labs/deploysdk/chain"
	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/utils"
)

var verifyDeployCmd = &cobra.Command{
	Use:   "verify-deploy [deploy file or hex]",
	Short: "Check a deploy's hashes, size and approvals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeploy(args[0])
		if err != nil {
			return err
		}

		verr := d.Validate()
		resp := verifyResponse{
			Hash:    d.Hash,
			Valid:   verr == nil,
			Expired: d.Expired(time.Now()),
			Expiry:  utils.FormatTimestamp(d.Header.Expiry()),
			Signers: utils.Map(func(a chain.Approval) string { return a.Signer.String() }, d.Approvals),
		}
		if verr != nil {
			resp.Error = verr.Error()
		}
		if err := printValue(cmd, resp); err != nil {
			return err
		}
		return verr
	},
}

var deployHashCmd = &cobra.Command{
	Use:   "deploy-hash [deploy file or hex]",
	Short: "Print a deploy's hash and body hash",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := loadDeploy(args[0])
		if err != nil {
			return err
		}
		b, err := d.Bytes()
		if err != nil {
			return err
		}
		return printValue(cmd, hashResponse{
			Hash:     d.Header.Hash(),
			BodyHash: chain.BodyHash(d.Payment, d.Session),
			Bytes:    codec.Bytes(b),
		})
	},
}

type verifyResponse struct {
	Hash    codec.Hash `json:"hash"`
	Valid   bool       `json:"valid"`
	Expired bool       `json:"expired"`
	Expiry  string     `json:"expiry"`
	Signers []string   `json:"signers"`
	Error   string     `json:"error,omitempty"`
}

func (r verifyResponse) String() string {
	var result strings.Builder
	if r.Valid {
		result.WriteString(fmt.Sprintf("✅ deploy %s is valid\n", r.Hash))
	} else {
		result.WriteString(fmt.Sprintf("❌ deploy %s is invalid: %s\n", r.Hash, r.Error))
	}
	if r.Expired {
		result.WriteString(fmt.Sprintf("expired at %s\n", r.Expiry))
	} else {
		result.WriteString(fmt.Sprintf("expires at %s\n", r.Expiry))
	}
	for _, signer := range r.Signers {
		result.WriteString(fmt.Sprintf("approved by %s\n", signer))
	}
	return strings.TrimSpace(result.String())
}

type hashResponse struct {
	Hash     codec.Hash  `json:"hash"`
	BodyHash codec.Hash  `json:"bodyHash"`
	Bytes    codec.Bytes `json:"bytes"`
}

func (r hashResponse) String() string {
	return fmt.Sprintf("deploy hash: %s\nbody hash:   %s", r.Hash, r.BodyHash)
}

func init() {
	rootCmd.AddCommand(verifyDeployCmd, deployHashCmd)
}
