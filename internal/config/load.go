package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Load reads and parses a TOML config file. Unknown keys are fatal errors
// with "did you mean?" suggestions; silently ignoring a typo in a config
// file leads to hard-to-debug behavior. Load does not validate: required
// credentials usually arrive through the environment layer on top, so
// validation belongs at the end of Resolve.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := checkUnknownKeys(&md); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadOrDefault reads a TOML config file if it exists, otherwise returns
// a Config populated with defaults. A pointed-at-but-missing file is not
// an error; the env layer may carry everything.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// Resolve applies the full override chain and validates the result:
// defaults -> config file -> environment variables -> CLI flags.
// CLI flags win, matching user expectations for one-off overrides.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Config, error) {
	// Config path: CLI > env > none.
	path := env.ConfigPath
	if cli.ConfigPath != "" {
		path = cli.ConfigPath
	}

	cfg := DefaultConfig()

	if path != "" {
		loaded, err := LoadOrDefault(path)
		if err != nil {
			return nil, err
		}

		cfg = loaded
	}

	if err := env.applyTo(cfg); err != nil {
		return nil, err
	}

	if cli.Port != nil {
		cfg.Port = *cli.Port
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}
