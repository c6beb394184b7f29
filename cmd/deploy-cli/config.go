// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ava-labs/deploysdk/chain"
	"github.com/ava-labs/deploysdk/codec"
	"github.com/ava-labs/deploysdk/config"
	"github.com/ava-labs/deploysdk/utils"

	internallogging "github.com/ava-labs/deploysdk/internal/logging"
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error getting home directory:", err)
		os.Exit(1)
	}

	configDir := filepath.Join(homeDir, ".deploy-cli")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "Error creating config directory:", err)
		os.Exit(1)
	}

	configFile := filepath.Join(configDir, "config.yaml")
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if _, err := os.Create(configFile); err != nil {
			fmt.Fprintln(os.Stderr, "Error creating config file:", err)
			os.Exit(1)
		}
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintln(os.Stderr, "Error reading config:", err)
			os.Exit(1)
		}
	}
}

func isJSONOutputRequested(cmd *cobra.Command) (bool, error) {
	output, err := getConfigValue(cmd, "output-format", false)
	if err != nil {
		return false, fmt.Errorf("failed to get output format: %w", err)
	}
	return strings.ToLower(output) == "json", nil
}

func printValue(cmd *cobra.Command, v fmt.Stringer) error {
	isJSON, err := isJSONOutputRequested(cmd)
	if err != nil {
		return err
	}

	if isJSON {
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
		return nil
	}
	utils.Outf("%s\n", v.String())
	return nil
}

func getConfigValue(cmd *cobra.Command, key string, required bool) (string, error) {
	// Check flags first
	if value, err := cmd.Flags().GetString(key); err == nil && value != "" {
		return value, nil
	}

	// Then check viper
	if value := viper.GetString(key); value != "" {
		return value, nil
	}

	if required {
		return "", fmt.Errorf("required value for %s not found", key)
	}

	return "", nil
}

func decodeFileOrHex(fileNameOrHex string) ([]byte, error) {
	if decoded, err := codec.LoadHex(fileNameOrHex, -1); err == nil {
		return decoded, nil
	}

	if fileContents, err := os.ReadFile(fileNameOrHex); err == nil {
		return fileContents, nil
	}

	return nil, errors.New("unable to decode input as hex, or read as file path")
}

// loadConfig layers the flags and ~/.deploy-cli/config.yaml over
// config.Load.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := getConfigValue(cmd, "config", false)
	if err != nil {
		return nil, err
	}
	envFile, err := getConfigValue(cmd, "env-file", false)
	if err != nil {
		return nil, err
	}
	c, err := config.Load(path, envFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for key, field := range map[string]*string{
		"chain-name": &c.ChainName,
		"key":        &c.KeyFile,
		"log-level":  &c.LogLevel,
		"log-dir":    &c.LogDir,
	} {
		value, err := getConfigValue(cmd, key, false)
		if err != nil {
			return nil, err
		}
		if value != "" {
			*field = value
		}
	}
	return c, c.Validate()
}

// newBuilder returns a builder logging through a factory built from [c]. The
// returned func closes the factory.
func newBuilder(c *config.Config) (*chain.Builder, func(), error) {
	level, err := c.Level()
	if err != nil {
		return nil, nil, err
	}
	logConfig := internallogging.DefaultConfig()
	logConfig.Level = level
	logConfig.DisplayLevel = level
	logConfig.Directory = c.LogDir

	factory := internallogging.NewFactory(logConfig)
	log, err := factory.Make("deploy-cli")
	if err != nil {
		factory.Close()
		return nil, nil, err
	}
	b, err := chain.NewBuilder(log, prometheus.NewRegistry())
	if err != nil {
		factory.Close()
		return nil, nil, err
	}
	return b, factory.Close, nil
}
