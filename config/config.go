// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"strconv"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/deploysdk/utils"
)

const (
	EnvPrefix = "DEPLOY_"

	DefaultChainName     = "casper-test"
	DefaultTTL           = "30m"
	DefaultGasPrice      = 1
	DefaultPaymentAmount = "2500000000"
	DefaultLogLevel      = "info"
)

var (
	ErrMissingChainName     = errors.New("chain name is required")
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")
	ErrInvalidGasPrice      = errors.New("gas price must be positive")
	ErrInvalidConfigFormat  = errors.New("invalid config format")
)

// Config holds the defaults used when building deploys.
type Config struct {
	ChainName string `yaml:"chain_name"`
	// TTL is a humanized duration such as "30m" or "1h 30m".
	TTL      string `yaml:"ttl"`
	GasPrice uint64 `yaml:"gas_price"`
	// PaymentAmount is the standard payment in motes, as a decimal string.
	PaymentAmount string `yaml:"payment_amount"`
	KeyFile       string `yaml:"key_file"`
	LogLevel      string `yaml:"log_level"`
	LogDir        string `yaml:"log_dir"`
}

func Default() *Config {
	return &Config{
		ChainName:     DefaultChainName,
		TTL:           DefaultTTL,
		GasPrice:      DefaultGasPrice,
		PaymentAmount: DefaultPaymentAmount,
		LogLevel:      DefaultLogLevel,
	}
}

// Load applies, in increasing precedence, the defaults, the YAML file at
// [path] (skipped when empty), the DEPLOY_* entries of [envFile] (skipped when
// empty or missing) and the DEPLOY_* environment variables.
func Load(path string, envFile string) (*Config, error) {
	c := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.UnmarshalStrict(b, c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfigFormat, err)
		}
	}

	env := map[string]string{}
	if envFile != "" {
		dotenv, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			env = dotenv
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, err
		}
	}
	for _, key := range envKeys {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			env[EnvPrefix+key] = v
		}
	}
	if err := c.applyEnv(env); err != nil {
		return nil, err
	}
	return c, c.Validate()
}

var envKeys = []string{
	"CHAIN_NAME",
	"TTL",
	"GAS_PRICE",
	"PAYMENT_AMOUNT",
	"KEY_FILE",
	"LOG_LEVEL",
	"LOG_DIR",
}

func (c *Config) applyEnv(env map[string]string) error {
	for _, key := range envKeys {
		v, ok := env[EnvPrefix+key]
		if !ok {
			continue
		}
		switch key {
		case "CHAIN_NAME":
			c.ChainName = v
		case "TTL":
			c.TTL = v
		case "GAS_PRICE":
			gasPrice, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			c.GasPrice = gasPrice
		case "PAYMENT_AMOUNT":
			c.PaymentAmount = v
		case "KEY_FILE":
			c.KeyFile = v
		case "LOG_LEVEL":
			c.LogLevel = v
		case "LOG_DIR":
			c.LogDir = v
		}
	}
	return nil
}

// Validate checks every field that is parsed lazily.
func (c *Config) Validate() error {
	if c.ChainName == "" {
		return ErrMissingChainName
	}
	if c.GasPrice == 0 {
		return ErrInvalidGasPrice
	}
	if _, err := c.TTLMillis(); err != nil {
		return err
	}
	if _, err := c.Payment(); err != nil {
		return err
	}
	_, err := c.Level()
	return err
}

func (c *Config) TTLMillis() (uint64, error) {
	return utils.ParseTTL(c.TTL)
}

func (c *Config) Payment() (*big.Int, error) {
	amount, ok := new(big.Int).SetString(c.PaymentAmount, 10)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPaymentAmount, c.PaymentAmount)
	}
	return amount, nil
}

func (c *Config) Level() (logging.Level, error) {
	return logging.ToLevel(c.LogLevel)
}
