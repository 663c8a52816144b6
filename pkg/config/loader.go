package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// Load parses, schema-validates, and defaults a YAML configuration document.
func Load(data []byte) (*Config, error) {
	// Validate the raw document first, so schema errors reference what the
	// user actually wrote rather than a defaulted struct.
	var raw any

	err := yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if raw != nil {
		err = ValidateWithSchema(raw)
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.EnsureDefaults()

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile loads the configuration from path. A missing file yields the
// default configuration.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %q: %w", path, err)
	}

	cfg, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}

	return cfg, nil
}

// WriteDefault writes the default configuration to path, creating parent
// directories as needed. An existing file is left untouched unless overwrite
// is set.
func WriteDefault(path string, overwrite bool) error {
	if !overwrite {
		_, err := os.Stat(path)
		if err == nil {
			return nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("stat config %q: %w", path, err)
		}
	}

	data, err := NewConfig().MarshalYAML()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	err = os.WriteFile(path, data, 0o644)
	if err != nil {
		return fmt.Errorf("write config %q: %w", path, err)
	}

	return nil
}
