// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/ava-labs/deploysdk/clvalue"
	"github.com/ava-labs/deploysdk/utils"
)

func writeFile(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	require := require.New(t)

	c, err := Load("", "")
	require.NoError(err)
	require.Equal(Default(), c)

	ttl, err := c.TTLMillis()
	require.NoError(err)
	require.Equal(uint64(30*60*1000), ttl)

	amount, err := c.Payment()
	require.NoError(err)
	require.Zero(amount.Cmp(big.NewInt(2_500_000_000)))

	level, err := c.Level()
	require.NoError(err)
	require.Equal(logging.Info, level)
}

func TestLoadPrecedence(t *testing.T) {
	require := require.New(t)

	path := writeFile(t, "config.yaml", `
chain_name: casper-net-1
ttl: 1h 30m
gas_price: 2
key_file: /keys/secret_key.pem
`)
	envFile := writeFile(t, ".env", "DEPLOY_GAS_PRICE=3\nDEPLOY_LOG_LEVEL=debug\n")
	t.Setenv("DEPLOY_LOG_LEVEL", "warn")

	c, err := Load(path, envFile)
	require.NoError(err)
	require.Equal("casper-net-1", c.ChainName)
	require.Equal("1h 30m", c.TTL)
	require.Equal(uint64(3), c.GasPrice)
	require.Equal("/keys/secret_key.pem", c.KeyFile)
	require.Equal("warn", c.LogLevel)
	require.Equal(DefaultPaymentAmount, c.PaymentAmount)
}

func TestLoadMissingEnvFile(t *testing.T) {
	require := require.New(t)

	c, err := Load("", filepath.Join(t.TempDir(), ".env"))
	require.NoError(err)
	require.Equal(DefaultChainName, c.ChainName)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "empty chain name",
			config:  "chain_name: \"\"\n",
			wantErr: ErrMissingChainName,
		},
		{
			name:    "zero gas price",
			config:  "gas_price: 0\n",
			wantErr: ErrInvalidGasPrice,
		},
		{
			name:    "negative payment",
			config:  "payment_amount: \"-1\"\n",
			wantErr: ErrInvalidPaymentAmount,
		},
		{
			name:    "unknown field",
			config:  "chainname: x\n",
			wantErr: ErrInvalidConfigFormat,
		},
		{
			name:    "bad ttl from env",
			env:     map[string]string{"DEPLOY_TTL": "soon"},
			wantErr: utils.ErrInvalidDuration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.config != "" {
				path = writeFile(t, "config.yaml", tt.config)
			}
			_, err := Load(path, "")
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseArgs(t *testing.T) {
	yamlArgs := `
args:
  - name: amount
    type: u512
    value: "2500000000"
  - name: id
    type: opt_u64
    value: null
  - name: recipients
    type: list_string
    value: [alice, bob]
`
	jsonArgs := `{"args":[
  {"name":"amount","type":"u512","value":2500000000},
  {"name":"id","type":"opt_u64","value":null},
  {"name":"recipients","type":"list_string","value":["alice","bob"]}
]}`

	amount := clvalue.NewU512FromUint64(2_500_000_000)
	id, err := clvalue.NewOption(nil, &clvalue.U64Type)
	require.NoError(t, err)
	recipients, err := clvalue.NewList(clvalue.StringType, []clvalue.Value{
		clvalue.NewString("alice"),
		clvalue.NewString("bob"),
	})
	require.NoError(t, err)
	want := clvalue.NewArgs(
		clvalue.NamedArg{Name: "amount", Value: amount},
		clvalue.NamedArg{Name: "id", Value: id},
		clvalue.NamedArg{Name: "recipients", Value: recipients},
	)

	for name, input := range map[string]string{"yaml": yamlArgs, "json": jsonArgs} {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			args, err := ParseArgs([]byte(input))
			require.NoError(err)
			require.Equal(want.Bytes(), args.Bytes())
		})
	}
}

func TestLoadArgsFile(t *testing.T) {
	require := require.New(t)

	path := writeFile(t, "args.yaml", "args:\n  - name: target\n    type: byte_array_32\n    value: \""+
		"account-hash-0000000000000000000000000000000000000000000000000000000000000001\"\n")
	args, err := LoadArgs(path)
	require.NoError(err)
	require.Equal(1, args.Len())
	v, ok := args.Get("target")
	require.True(ok)
	b, err := v.AsByteArray()
	require.NoError(err)
	require.Equal(byte(1), b[31])
}

func TestParseArgsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "not a document",
			input:   "- just\n- a list\n",
			wantErr: ErrInvalidConfigFormat,
		},
		{
			name:    "duplicate",
			input:   "args:\n  - {name: a, type: u8, value: 1}\n  - {name: a, type: u8, value: 2}\n",
			wantErr: clvalue.ErrDuplicateArg,
		},
		{
			name:    "missing name",
			input:   "args:\n  - {type: u8, value: 1}\n",
			wantErr: clvalue.ErrInvalidArg,
		},
		{
			name:    "unknown type",
			input:   "args:\n  - {name: a, type: u1024, value: 1}\n",
			wantErr: clvalue.ErrUnknownType,
		},
		{
			name:    "out of range",
			input:   "args:\n  - {name: a, type: u8, value: 256}\n",
			wantErr: clvalue.ErrInvalidArg,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs([]byte(tt.input))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
