// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"os"

	"github.com/spf13/cobra"

	"github.com/ava-labs/deploysdk/auth"
	"github.com/ava-labs/deploysdk/chain"
	"github.com/ava-labs/deploysdk/clvalue"
	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/config"
	"github.com/ava-labs/deploysdk/utils"
)

var (
	errMissingAccount = errors.New("either --account or --key is required")
	errMissingSession = errors.New("one of --session-path, --session-hash or --session-name is required")
	errManySessions   = errors.New("only one of --session-path, --session-hash or --session-name may be set")
)

var makeDeployCmd = &cobra.Command{
	Use:   "make-deploy",
	Short: "Build a deploy, signing it when a key is configured",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		session, err := sessionItem(cmd)
		if err != nil {
			return err
		}
		return buildAndWrite(cmd, c, session)
	},
}

var makeTransferCmd = &cobra.Command{
	Use:   "make-transfer",
	Short: "Build a native transfer deploy, signing it when a key is configured",
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		session, err := transferItem(cmd)
		if err != nil {
			return err
		}
		return buildAndWrite(cmd, c, session)
	},
}

func buildAndWrite(cmd *cobra.Command, c *config.Config, session chain.ExecutableDeployItem) error {
	b, closeLogs, err := newBuilder(c)
	if err != nil {
		return err
	}
	defer closeLogs()

	var factory auth.Factory
	if c.KeyFile != "" {
		key, err := auth.LoadKey(c.KeyFile)
		if err != nil {
			return fmt.Errorf("failed to load key: %w", err)
		}
		factory, err = auth.GetFactory(key)
		if err != nil {
			return err
		}
	}

	params, err := deployParams(cmd, c, factory)
	if err != nil {
		return err
	}
	payment, err := paymentItem(cmd, c)
	if err != nil {
		return err
	}

	d, err := b.Build(params, session, payment)
	if err != nil {
		return fmt.Errorf("failed to build deploy: %w", err)
	}
	if factory != nil {
		if d, err = b.Sign(d, factory); err != nil {
			return fmt.Errorf("failed to sign deploy: %w", err)
		}
	}
	return writeDeploy(cmd, d)
}

func deployParams(cmd *cobra.Command, c *config.Config, factory auth.Factory) (chain.DeployParams, error) {
	var account auth.PublicKey
	accountHex, err := cmd.Flags().GetString("account")
	if err != nil {
		return chain.DeployParams{}, err
	}
	switch {
	case accountHex != "":
		if account, err = auth.ParsePublicKey(accountHex); err != nil {
			return chain.DeployParams{}, fmt.Errorf("invalid account: %w", err)
		}
	case factory != nil:
		account = factory.PublicKey()
	default:
		return chain.DeployParams{}, errMissingAccount
	}

	params := chain.NewDeployParams(account, c.ChainName)
	if params.TTL, err = c.TTLMillis(); err != nil {
		return chain.DeployParams{}, err
	}
	if ttl, err := cmd.Flags().GetString("ttl"); err == nil && ttl != "" {
		if params.TTL, err = utils.ParseTTL(ttl); err != nil {
			return chain.DeployParams{}, err
		}
	}
	params.GasPrice = c.GasPrice
	if gasPrice, err := cmd.Flags().GetUint64("gas-price"); err == nil && gasPrice != 0 {
		params.GasPrice = gasPrice
	}
	if timestamp, err := cmd.Flags().GetString("timestamp"); err == nil && timestamp != "" {
		if params.Timestamp, err = utils.ParseTimestamp(timestamp); err != nil {
			return chain.DeployParams{}, err
		}
	}

	deps, err := cmd.Flags().GetStringSlice("dependency")
	if err != nil {
		return chain.DeployParams{}, err
	}
	hashes, i, err := utils.TryMap(codec.HexToHash, deps)
	if err != nil {
		return chain.DeployParams{}, fmt.Errorf("invalid dependency %q: %w", deps[i], err)
	}
	params.Dependencies = hashes
	return params, nil
}

func paymentItem(cmd *cobra.Command, c *config.Config) (chain.ExecutableDeployItem, error) {
	if amount, err := cmd.Flags().GetString("payment-amount"); err == nil && amount != "" {
		c.PaymentAmount = amount
	}
	amount, err := c.Payment()
	if err != nil {
		return nil, err
	}
	return chain.NewStandardPayment(amount)
}

func sessionArgs(cmd *cobra.Command) (clvalue.Args, error) {
	var args clvalue.Args
	argsFile, err := cmd.Flags().GetString("args-file")
	if err != nil {
		return clvalue.Args{}, err
	}
	if argsFile != "" {
		if args, err = config.LoadArgs(argsFile); err != nil {
			return clvalue.Args{}, fmt.Errorf("failed to load args: %w", err)
		}
	}

	raw, err := cmd.Flags().GetStringArray("session-arg")
	if err != nil {
		return clvalue.Args{}, err
	}
	for _, s := range raw {
		name, v, err := clvalue.ParseArg(s)
		if err != nil {
			return clvalue.Args{}, err
		}
		args.Insert(name, v)
	}
	return args, nil
}

func sessionItem(cmd *cobra.Command) (chain.ExecutableDeployItem, error) {
	args, err := sessionArgs(cmd)
	if err != nil {
		return nil, err
	}
	path, _ := cmd.Flags().GetString("session-path")
	hash, _ := cmd.Flags().GetString("session-hash")
	name, _ := cmd.Flags().GetString("session-name")
	entryPoint, _ := cmd.Flags().GetString("session-entry-point")
	versioned, _ := cmd.Flags().GetBool("session-package")

	var version *uint32
	if cmd.Flags().Changed("session-version") {
		v, err := cmd.Flags().GetUint32("session-version")
		if err != nil {
			return nil, err
		}
		version = &v
		versioned = true
	}

	set := 0
	for _, s := range []string{path, hash, name} {
		if s != "" {
			set++
		}
	}
	switch {
	case set == 0:
		return nil, errMissingSession
	case set > 1:
		return nil, errManySessions
	}

	switch {
	case path != "":
		module, err := decodeFileOrHex(path)
		if err != nil {
			return nil, err
		}
		return chain.NewModuleBytes(module, args), nil
	case hash != "":
		h, err := codec.HexToHash(hash)
		if err != nil {
			return nil, fmt.Errorf("invalid session hash: %w", err)
		}
		if versioned {
			return chain.NewStoredVersionedContractByHash(h, version, entryPoint, args), nil
		}
		return chain.NewStoredContractByHash(h, entryPoint, args), nil
	default:
		if versioned {
			return chain.NewStoredVersionedContractByName(name, version, entryPoint, args), nil
		}
		return chain.NewStoredContractByName(name, entryPoint, args), nil
	}
}

func transferItem(cmd *cobra.Command) (chain.ExecutableDeployItem, error) {
	amountString, err := cmd.Flags().GetString("amount")
	if err != nil {
		return nil, err
	}
	amount, ok := new(big.Int).SetString(amountString, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", amountString)
	}
	params := chain.TransferParams{Amount: amount}

	if s, _ := cmd.Flags().GetString("target-account"); s != "" {
		pk, err := auth.ParsePublicKey(s)
		if err != nil {
			return nil, fmt.Errorf("invalid target account: %w", err)
		}
		params.TargetAccount = &pk
	}
	if s, _ := cmd.Flags().GetString("target-purse"); s != "" {
		u, err := clvalue.ParseURef(s)
		if err != nil {
			return nil, fmt.Errorf("invalid target purse: %w", err)
		}
		params.TargetPurse = &u
	}
	if s, _ := cmd.Flags().GetString("source-purse"); s != "" {
		u, err := clvalue.ParseURef(s)
		if err != nil {
			return nil, fmt.Errorf("invalid source purse: %w", err)
		}
		params.SourcePurse = &u
	}
	if cmd.Flags().Changed("transfer-id") {
		id, err := cmd.Flags().GetUint64("transfer-id")
		if err != nil {
			return nil, err
		}
		params.ID = &id
	}
	return chain.NewTransfer(params)
}

// loadDeploy reads canonical bytes given as hex, or a JSON deploy file.
func loadDeploy(fileNameOrHex string) (*chain.Deploy, error) {
	if b, err := codec.LoadHex(fileNameOrHex, -1); err == nil {
		return chain.ParseDeploy(b)
	}
	b, err := os.ReadFile(fileNameOrHex)
	if err != nil {
		return nil, fmt.Errorf("failed to read deploy: %w", err)
	}
	var d chain.Deploy
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, fmt.Errorf("failed to decode deploy: %w", err)
	}
	return &d, nil
}

// writeDeploy saves [d] as JSON to --output, or prints it.
func writeDeploy(cmd *cobra.Command, d *chain.Deploy) error {
	out, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if out == "" {
		return printValue(cmd, deployResponse{deploy: d})
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal deploy: %w", err)
	}
	if err := utils.SaveBytes(out, b); err != nil {
		return fmt.Errorf("failed to write deploy: %w", err)
	}
	return printValue(cmd, savedDeployResponse{
		Hash:      d.Hash,
		Path:      out,
		Approvals: len(d.Approvals),
	})
}

type deployResponse struct {
	deploy *chain.Deploy
}

func (r deployResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.deploy)
}

func (r deployResponse) String() string {
	b, err := json.MarshalIndent(r.deploy, "", "  ")
	if err != nil {
		return err.Error()
	}
	return string(b)
}

type savedDeployResponse struct {
	Hash      codec.Hash `json:"hash"`
	Path      string     `json:"path"`
	Approvals int        `json:"approvals"`
}

func (r savedDeployResponse) String() string {
	return fmt.Sprintf("deploy %s written to %s (%d approvals)", r.Hash, r.Path, r.Approvals)
}

func addDeployFlags(cmd *cobra.Command) {
	cmd.Flags().String("account", "", "Account public key hex (defaults to the key's public key)")
	cmd.Flags().String("payment-amount", "", "Standard payment amount in motes")
	cmd.Flags().String("ttl", "", "Time to live, e.g. 30m or \"1h 30m\"")
	cmd.Flags().Uint64("gas-price", 0, "Gas price")
	cmd.Flags().String("timestamp", "", "RFC3339 timestamp (defaults to now)")
	cmd.Flags().StringSlice("dependency", nil, "Hex hash of a deploy this one depends on")
	cmd.Flags().String("output", "", "Write the deploy JSON to this file")
}

func init() {
	addDeployFlags(makeDeployCmd)
	makeDeployCmd.Flags().String("session-path", "", "Wasm module file or hex")
	makeDeployCmd.Flags().String("session-hash", "", "Hex hash of a stored contract or contract package")
	makeDeployCmd.Flags().String("session-name", "", "Named key of a stored contract or contract package")
	makeDeployCmd.Flags().Bool("session-package", false, "Treat --session-hash/--session-name as a contract package")
	makeDeployCmd.Flags().Uint32("session-version", 0, "Contract package version (defaults to the latest)")
	makeDeployCmd.Flags().String("session-entry-point", "", "Entry point to call on a stored contract")
	makeDeployCmd.Flags().StringArray("session-arg", nil, "Session argument as name:type='value'")
	makeDeployCmd.Flags().String("args-file", "", "YAML or JSON file of session arguments")

	addDeployFlags(makeTransferCmd)
	makeTransferCmd.Flags().String("amount", "", "Amount to transfer in motes")
	makeTransferCmd.Flags().String("target-account", "", "Recipient public key hex")
	makeTransferCmd.Flags().String("target-purse", "", "Recipient purse URef")
	makeTransferCmd.Flags().String("source-purse", "", "Source purse URef (defaults to the main purse)")
	makeTransferCmd.Flags().Uint64("transfer-id", 0, "Transfer id")
	_ = makeTransferCmd.MarkFlagRequired("amount")

	rootCmd.AddCommand(makeDeployCmd, makeTransferCmd)
}
