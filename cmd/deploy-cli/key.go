// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ava-labs/deploysdk/auth"
	"github.com/ava-labs/deploysdk/utils"
)

const (
	secretKeyFile = "secret_key.pem"
	publicKeyFile = "public_key_hex"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage keys",
}

var keyGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a key pair and write it to a directory",
	RunE: func(cmd *cobra.Command, _ []string) error {
		algorithm, err := cmd.Flags().GetString("algorithm")
		if err != nil {
			return err
		}
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}

		id, err := auth.AlgorithmID(algorithm)
		if err != nil {
			return err
		}
		factory, err := auth.GetPrivateKeyFactory(id)
		if err != nil {
			return err
		}
		key, err := factory.GeneratePrivateKey()
		if err != nil {
			return fmt.Errorf("failed to generate key: %w", err)
		}
		pk, err := key.PublicKey()
		if err != nil {
			return err
		}

		secretPath := filepath.Join(out, secretKeyFile)
		if err := auth.SaveKey(secretPath, key); err != nil {
			return fmt.Errorf("failed to save secret key: %w", err)
		}
		if err := utils.SaveBytes(filepath.Join(out, publicKeyFile), []byte(pk.String())); err != nil {
			return fmt.Errorf("failed to save public key: %w", err)
		}

		resp, err := newKeyResponse(pk)
		if err != nil {
			return err
		}
		resp.SecretKey = secretPath
		return printValue(cmd, resp)
	},
}

var keyAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "Print the public key and account hash of a secret key",
	RunE: func(cmd *cobra.Command, _ []string) error {
		keyFile, err := getConfigValue(cmd, "key", true)
		if err != nil {
			return fmt.Errorf("failed to get key: %w", err)
		}
		key, err := auth.LoadKey(keyFile)
		if err != nil {
			return fmt.Errorf("failed to load key: %w", err)
		}
		pk, err := key.PublicKey()
		if err != nil {
			return err
		}
		resp, err := newKeyResponse(pk)
		if err != nil {
			return err
		}
		return printValue(cmd, resp)
	},
}

type keyResponse struct {
	SecretKey   string           `json:"secretKey,omitempty"`
	PublicKey   auth.PublicKey   `json:"publicKey"`
	AccountHash auth.AccountHash `json:"accountHash"`
}

func newKeyResponse(pk auth.PublicKey) (keyResponse, error) {
	accountHash, err := pk.AccountHash()
	if err != nil {
		return keyResponse{}, err
	}
	return keyResponse{PublicKey: pk, AccountHash: accountHash}, nil
}

func (r keyResponse) String() string {
	s := fmt.Sprintf("public key:   %s\naccount hash: %s", r.PublicKey, r.AccountHash)
	if r.SecretKey != "" {
		s = fmt.Sprintf("secret key:   %s\n%s", r.SecretKey, s)
	}
	return s
}

func init() {
	keyGenerateCmd.Flags().String("algorithm", auth.ED25519Key, "Key algorithm (ed25519 or secp256k1)")
	keyGenerateCmd.Flags().String("out", ".", "Directory to write the key files to")
	keyCmd.AddCommand(keyGenerateCmd, keyAddressCmd)
	rootCmd.AddCommand(keyCmd)
}
