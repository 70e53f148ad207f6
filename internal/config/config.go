// Package config provides configuration loading and validation for the
// srpauth tooling. The SRP group parameters are loaded once at process
// start and shared read-only for the process lifetime.
package config

import (
	"fmt"
	"math/big"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/realmforge/srpauth/pkg/srp"
)

// Config is the top-level configuration file.
type Config struct {
	Group    GroupSettings   `yaml:"group"`
	Accounts AccountSettings `yaml:"accounts"`
	Logging  LoggingSettings `yaml:"logging"`
}

// GroupSettings selects the SRP group and hash policy. Either a built-in
// group name or an explicit prime/generator pair must be given.
type GroupSettings struct {
	Name          string `yaml:"name"`
	Prime         string `yaml:"prime,omitempty"`     // hex, custom groups only
	Generator     int64  `yaml:"generator,omitempty"` // custom groups only
	Hash          string `yaml:"hash"`
	KeyLength     int    `yaml:"key_length"`
	CaseSensitive bool   `yaml:"case_sensitive"`
}

// AccountSettings configures the verifier registry.
type AccountSettings struct {
	Path string `yaml:"path"`
}

// LoggingSettings configures log output.
type LoggingSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the configuration file.
//
//nolint:gosec // G304: config path is from a command-line argument
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Group.Name == "" && c.Group.Prime == "" {
		return fmt.Errorf("group.name or group.prime is required")
	}
	if c.Group.Hash == "" {
		return fmt.Errorf("group.hash is required")
	}
	if c.Group.KeyLength <= 0 {
		return fmt.Errorf("group.key_length is required")
	}
	if c.Accounts.Path == "" {
		return fmt.Errorf("accounts.path is required")
	}
	return nil
}

// Params builds the immutable protocol parameters from the configuration.
// Group validation (primality, generator, key length consistency) happens
// inside srp.NewParams.
func (c *Config) Params() (*srp.Params, error) {
	group, err := c.group()
	if err != nil {
		return nil, err
	}
	return srp.NewParams(group, c.Group.Hash, c.Group.KeyLength, c.Group.CaseSensitive)
}

func (c *Config) group() (*srp.Group, error) {
	if c.Group.Name != "" {
		group, ok := srp.LookupGroup(c.Group.Name)
		if !ok {
			return nil, fmt.Errorf("unknown group %q", c.Group.Name)
		}
		return group, nil
	}

	prime, ok := new(big.Int).SetString(c.Group.Prime, 16)
	if !ok {
		return nil, fmt.Errorf("group.prime is not valid hex")
	}
	if c.Group.Generator < 2 {
		return nil, fmt.Errorf("group.generator must be at least 2")
	}
	return &srp.Group{
		Name:      "custom",
		Prime:     prime,
		Generator: big.NewInt(c.Group.Generator),
	}, nil
}
