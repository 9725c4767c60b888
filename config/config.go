// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ava-labs/avalanchego/utils/logging"
	"gopkg.in/yaml.v2"

	"github.com/ava-labs/groupsavings/consts"
	"github.com/ava-labs/groupsavings/pebble"
	"github.com/ava-labs/groupsavings/storage"
	"github.com/ava-labs/groupsavings/trace"
)

var (
	ErrInvalidFormat = errors.New("config must be json or yaml")
	ErrMissingName   = errors.New("missing name")

	ErrMissingTraceEndpoint = errors.New("tracing enabled without an endpoint")
)

type AssetConfig struct {
	Name     string `json:"name"     yaml:"name"`
	Symbol   string `json:"symbol"   yaml:"symbol"`
	Decimals uint8  `json:"decimals" yaml:"decimals"`
}

type LedgerConfig struct {
	Name        string `json:"name"        yaml:"name"`
	Quorum      uint64 `json:"quorum"      yaml:"quorum"`
	MetadataURI string `json:"metadataURI" yaml:"metadata_uri"`
	CreditActor bool   `json:"creditActor" yaml:"credit_actor"`
}

type Config struct {
	DataDir  string `json:"dataDir"  yaml:"data_dir"`
	LogLevel string `json:"logLevel" yaml:"log_level"`
	// InMemory skips the data directory entirely.
	InMemory bool `json:"inMemory" yaml:"in_memory"`

	Pebble pebble.Config `json:"pebble" yaml:"pebble"`
	Asset  AssetConfig   `json:"asset"  yaml:"asset"`
	Ledger LedgerConfig  `json:"ledger" yaml:"ledger"`
	Trace  trace.Config  `json:"trace"  yaml:"trace"`
}

func NewDefaultConfig() *Config {
	return &Config{
		DataDir:  ".savings",
		LogLevel: logging.Info.String(),
		Pebble:   pebble.NewDefaultConfig(),
		Asset: AssetConfig{
			Name:     "Savings Dollar",
			Symbol:   "SVD",
			Decimals: consts.Decimals,
		},
		Ledger: LedgerConfig{
			Name: consts.Name,
		},
		Trace: trace.Config{
			TraceSampleRate: 1,
			Endpoint:        trace.DefaultEndpoint,
			AppName:         consts.Name,
		},
	}
}

// Load reads a JSON or YAML file over the defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

func Parse(b []byte) (*Config, error) {
	c := NewDefaultConfig()
	if strings.HasPrefix(strings.TrimSpace(string(b)), "{") {
		if err := json.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
	} else if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	return c, c.Verify()
}

func (c *Config) Verify() error {
	if _, err := c.GetLogLevel(); err != nil {
		return err
	}
	if len(c.Ledger.Name) == 0 || len(c.Asset.Name) == 0 || len(c.Asset.Symbol) == 0 {
		return ErrMissingName
	}
	if len(c.Ledger.MetadataURI) > storage.MaxMetadataURISize {
		return storage.ErrMetadataTooLarge
	}
	if c.Trace.Enabled && len(c.Trace.Endpoint) == 0 {
		return ErrMissingTraceEndpoint
	}
	return nil
}

func (c *Config) GetLogLevel() (logging.Level, error) {
	return logging.ToLevel(c.LogLevel)
}
