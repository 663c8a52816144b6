// Package config loads and validates the palette CLI configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/cataplot/palette/pkg/keys"
)

// Config is the top-level configuration document, stored as YAML at
// [GetPath].
type Config struct {
	// KeyBinds configures the palette key bindings.
	KeyBinds *KeyBinds `json:"keyBinds,omitempty" yaml:"keyBinds,omitempty" jsonschema:"title=Key Bindings"`
}

// NewConfig returns a [Config] populated with defaults.
func NewConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults fills in any unset fields.
func (c *Config) EnsureDefaults() {
	if c.KeyBinds == nil {
		c.KeyBinds = &KeyBinds{}
	}

	c.KeyBinds.EnsureDefaults()
}

// Validate checks invariants that the schema cannot express.
func (c *Config) Validate() error {
	err := c.KeyBinds.Validate()
	if err != nil {
		return fmt.Errorf("validate key binds: %w", err)
	}

	return nil
}

// MarshalYAML renders the configuration as YAML. The receiver is a pointer
// and the value is encoded, so the encoder does not re-enter this method.
func (c *Config) MarshalYAML() ([]byte, error) {
	data, err := yaml.Marshal(*c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return data, nil
}

// KeyBinds defines the palette key bindings.
type KeyBinds struct {
	// Show opens the palette.
	Show *keys.KeyBind `json:"show,omitempty" yaml:"show,omitempty" jsonschema:"title=Show"`
	// Escape closes the palette, superseding any running command.
	Escape *keys.KeyBind `json:"escape,omitempty" yaml:"escape,omitempty" jsonschema:"title=Escape"`
	// Up moves the selection up.
	Up *keys.KeyBind `json:"up,omitempty" yaml:"up,omitempty" jsonschema:"title=Up"`
	// Down moves the selection down.
	Down *keys.KeyBind `json:"down,omitempty" yaml:"down,omitempty" jsonschema:"title=Down"`
	// Select chooses the highlighted item.
	Select *keys.KeyBind `json:"select,omitempty" yaml:"select,omitempty" jsonschema:"title=Select"`
	// Back pops one breadcrumb level when the query is empty.
	Back *keys.KeyBind `json:"back,omitempty" yaml:"back,omitempty" jsonschema:"title=Back"`
	// Quit exits the program.
	Quit *keys.KeyBind `json:"quit,omitempty" yaml:"quit,omitempty" jsonschema:"title=Quit"`
}

// EnsureDefaults sets default bindings for any unset actions.
func (kb *KeyBinds) EnsureDefaults() {
	keys.SetDefaultBind(&kb.Show,
		keys.NewBind("open palette",
			keys.New("ctrl+p"),
		))
	keys.SetDefaultBind(&kb.Escape,
		keys.NewBind("close",
			keys.New("esc"),
		))
	keys.SetDefaultBind(&kb.Up,
		keys.NewBind("move up",
			keys.New("up", keys.WithAlias("↑")),
		))
	keys.SetDefaultBind(&kb.Down,
		keys.NewBind("move down",
			keys.New("down", keys.WithAlias("↓")),
		))
	keys.SetDefaultBind(&kb.Select,
		keys.NewBind("select",
			keys.New("enter", keys.WithAlias("↵")),
		))
	keys.SetDefaultBind(&kb.Back,
		keys.NewBind("go back",
			keys.New("backspace", keys.WithAlias("⌫")),
		))
	keys.SetDefaultBind(&kb.Quit,
		keys.NewBind("quit",
			keys.New("ctrl+c"),
		))
}

// GetKeyBinds returns all bindings, for help rendering.
func (kb *KeyBinds) GetKeyBinds() []keys.KeyBind {
	return []keys.KeyBind{
		*kb.Show,
		*kb.Escape,
		*kb.Up,
		*kb.Down,
		*kb.Select,
		*kb.Back,
		*kb.Quit,
	}
}

// Validate returns an error when a key code is bound to multiple actions.
func (kb *KeyBinds) Validate() error {
	return keys.ValidateBinds(kb.GetKeyBinds())
}

// GetPath returns the default configuration file path,
// $XDG_CONFIG_HOME/palette/config.yaml.
func GetPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("palette", "config.yaml")
		}

		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "palette", "config.yaml")
}
