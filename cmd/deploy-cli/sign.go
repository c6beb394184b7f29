// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ava-labs/deploysdk/auth"
)

var signDeployCmd = &cobra.Command{
	Use:   "sign-deploy [deploy file or hex]",
	Short: "Append an approval signed with the configured key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if c.KeyFile == "" {
			return errors.New("--key is required")
		}
		key, err := auth.LoadKey(c.KeyFile)
		if err != nil {
			return fmt.Errorf("failed to load key: %w", err)
		}
		factory, err := auth.GetFactory(key)
		if err != nil {
			return err
		}

		d, err := loadDeploy(args[0])
		if err != nil {
			return err
		}
		b, closeLogs, err := newBuilder(c)
		if err != nil {
			return err
		}
		defer closeLogs()

		signed, err := b.Sign(d, factory)
		if err != nil {
			return fmt.Errorf("failed to sign deploy: %w", err)
		}
		return writeDeploy(cmd, signed)
	},
}

var addSignatureCmd = &cobra.Command{
	Use:   "add-signature [deploy file or hex]",
	Short: "Append an approval produced elsewhere, after verifying it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		signerHex, err := getConfigValue(cmd, "signer", true)
		if err != nil {
			return err
		}
		signatureHex, err := getConfigValue(cmd, "signature", true)
		if err != nil {
			return err
		}
		signer, err := auth.ParsePublicKey(signerHex)
		if err != nil {
			return fmt.Errorf("invalid signer: %w", err)
		}
		sig, err := auth.ParseSignature(signatureHex)
		if err != nil {
			return fmt.Errorf("invalid signature: %w", err)
		}

		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		d, err := loadDeploy(args[0])
		if err != nil {
			return err
		}
		b, closeLogs, err := newBuilder(c)
		if err != nil {
			return err
		}
		defer closeLogs()

		signed, err := b.SetSignature(d, sig, signer)
		if err != nil {
			return fmt.Errorf("failed to add signature: %w", err)
		}
		return writeDeploy(cmd, signed)
	},
}

func init() {
	signDeployCmd.Flags().String("output", "", "Write the deploy JSON to this file")

	addSignatureCmd.Flags().String("signer", "", "Signer public key hex")
	addSignatureCmd.Flags().String("signature", "", "Signature hex, tagged with the algorithm")
	addSignatureCmd.Flags().String("output", "", "Write the deploy JSON to this file")

	rootCmd.AddCommand(signDeployCmd, addSignatureCmd)
}
