package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"

	"github.com/BurntSushi/toml"
)

// Config holds the tool settings that are stable across runs and therefore
// belong in a file rather than on every command line.
type Config struct {
	// Workers bounds how many accounts are processed concurrently.
	Workers int `toml:"workers"`
	// Currency is the display currency for report amounts.
	Currency string `toml:"currency"`

	Feed FeedConfig `toml:"feed"`
}

// FeedConfig points at the source system's balance snapshot API.
type FeedConfig struct {
	URL             string `toml:"url"`
	OutstandingPath string `toml:"outstanding_path"`
	PrincipalPath   string `toml:"principal_path"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Workers:  runtime.NumCPU(),
		Currency: "INR",
		Feed: FeedConfig{
			OutstandingPath: "$.balances.outstanding",
			PrincipalPath:   "$.balances.principal_due",
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	return cfg, nil
}
