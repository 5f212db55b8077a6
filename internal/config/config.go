package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/tidwall/jsonc"
)

// Load reads and merges configuration from the user-level JSONC file and an optional override file.
// Resolution order: defaults → user config (~/.config/issuecloser/config.jsonc) → override file
// at path → environment variables. The override file must exist when path is non-empty.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Load user-level config
	if userPath, err := UserConfigPath(); err == nil {
		userMap, err := loadJSONC(userPath)
		switch {
		case err == nil:
			if err := mergeIntoConfig(&cfg, userMap); err != nil {
				return nil, fmt.Errorf("merging user config: %w", err)
			}
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	// Load override config
	if path != "" {
		overrideMap, err := loadJSONC(path)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		if err := mergeIntoConfig(&cfg, overrideMap); err != nil {
			return nil, fmt.Errorf("merging config %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Close.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// UserConfigPath returns the user-level config file location
// (~/.config/issuecloser/config.jsonc on Linux).
func UserConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "issuecloser", "config.jsonc"), nil
}

// loadJSONC reads a JSONC file and returns it as a map.
func loadJSONC(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	jsonData := jsonc.ToJSON(data)
	var m map[string]any
	if err := json.Unmarshal(jsonData, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// mergeIntoConfig marshals the config to a map, deep-merges the source map over it,
// then unmarshals back to the Config struct.
func mergeIntoConfig(cfg *Config, src map[string]any) error {
	cfgBytes, err := json.Marshal(cfg)
	if err != nil {
		return err
	}
	var dst map[string]any
	if err := json.Unmarshal(cfgBytes, &dst); err != nil {
		return err
	}

	if err := mergo.Merge(&dst, src, mergo.WithOverride); err != nil {
		return err
	}

	merged, err := json.Marshal(dst)
	if err != nil {
		return err
	}
	return json.Unmarshal(merged, cfg)
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv(TokenEnvVar); token != "" {
		cfg.GitHub.Token = token
	}
	if apiURL := os.Getenv(APIURLEnvVar); apiURL != "" {
		cfg.GitHub.APIURL = apiURL
	}
}
