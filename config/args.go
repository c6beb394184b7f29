// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/ava-labs/deploysdk/clvalue"
)

// ArgsFile lists session arguments, in JSON or YAML.
type ArgsFile struct {
	Args []Arg `json:"args" yaml:"args"`
}

type Arg struct {
	Name string `json:"name" yaml:"name"`
	// Type uses the command line names, e.g. "u512" or "opt_u64".
	Type string `json:"type" yaml:"type"`
	// Value is a scalar, or a list for list types. Quote big integers.
	Value interface{} `json:"value" yaml:"value"`
}

// LoadArgs reads an ArgsFile from [path].
func LoadArgs(path string) (clvalue.Args, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return clvalue.Args{}, err
	}
	return ParseArgs(b)
}

func ParseArgs(b []byte) (clvalue.Args, error) {
	var f ArgsFile
	switch {
	case isJSON(b):
		if err := json.Unmarshal(b, &f); err != nil {
			return clvalue.Args{}, err
		}
	case isYAML(b):
		if err := yaml.UnmarshalStrict(b, &f); err != nil {
			return clvalue.Args{}, err
		}
	default:
		return clvalue.Args{}, ErrInvalidConfigFormat
	}

	var args clvalue.Args
	for _, a := range f.Args {
		if a.Name == "" {
			return clvalue.Args{}, fmt.Errorf("%w: argument without a name", clvalue.ErrInvalidArg)
		}
		if _, ok := args.Get(a.Name); ok {
			return clvalue.Args{}, fmt.Errorf("%w: %q", clvalue.ErrDuplicateArg, a.Name)
		}
		t, err := clvalue.ParseType(a.Type)
		if err != nil {
			return clvalue.Args{}, fmt.Errorf("arg %q: %w", a.Name, err)
		}
		v, err := clvalue.ParseValue(t, valueString(a.Value))
		if err != nil {
			return clvalue.Args{}, fmt.Errorf("arg %q: %w", a.Name, err)
		}
		args.Insert(a.Name, v)
	}
	return args, nil
}

func valueString(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []interface{}:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = valueString(item)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprint(v)
	}
}

func isJSON(b []byte) bool {
	var js map[string]interface{}
	return json.Unmarshal(b, &js) == nil
}

func isYAML(b []byte) bool {
	var y map[string]interface{}
	return yaml.Unmarshal(b, &y) == nil
}
