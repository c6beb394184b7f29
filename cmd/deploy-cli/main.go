// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "deploy-cli",
	Short: "Build, sign and inspect deploys",
	Long:  `A CLI application for constructing deploys offline: keys, deploy assembly, approvals and verification.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().StringP("output-format", "o", "text", "Output format (text or json)")
	rootCmd.PersistentFlags().String("config", "", "Deploy defaults file (YAML)")
	rootCmd.PersistentFlags().String("env-file", ".env", "File with DEPLOY_* overrides")
	rootCmd.PersistentFlags().String("chain-name", "", "Override the configured chain name")
	rootCmd.PersistentFlags().String("key", "", "Secret key PEM file")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level")
	rootCmd.PersistentFlags().String("log-dir", "", "Also write rotated JSON logs to this directory")
}

func main() {
	Execute()
}
