// Package keys defines configurable key bindings and helpers for rendering
// key help rows.
package keys

import (
	"errors"
	"fmt"
	"strings"

	"github.com/muesli/reflow/ansi"
)

// Key is a single keyboard key with an optional display alias.
type Key struct {
	// Code is the key code identifier, as reported by the terminal.
	Code string `json:"code" jsonschema:"title=Code"`
	// Alias is an alternative display name for the key.
	Alias string `json:"alias,omitempty" jsonschema:"title=Alias"`
	// Hidden hides the key from help output.
	Hidden bool `json:"hidden,omitempty" jsonschema:"title=Hidden"`
}

// KeyOpt configures a [Key].
type KeyOpt func(k *Key)

// New creates a [Key] for the given code.
func New(code string, opts ...KeyOpt) Key {
	k := &Key{Code: code}
	for _, opt := range opts {
		opt(k)
	}

	return *k
}

// WithAlias sets a display alias.
func WithAlias(alias string) KeyOpt {
	return func(k *Key) {
		k.Alias = alias
	}
}

// Hidden hides the key from help output.
func Hidden() KeyOpt {
	return func(k *Key) {
		k.Hidden = true
	}
}

func (k Key) String() string {
	if k.Alias != "" {
		return k.Alias
	}

	return k.Code
}

// KeyBind is a described group of keys that trigger one action.
type KeyBind struct {
	// Description says what the binding does.
	Description string `json:"description" jsonschema:"title=Description"`
	// Keys lists the keys that trigger the binding.
	Keys []Key `json:"keys" jsonschema:"title=Keys"`
}

// NewBind creates a [KeyBind].
func NewBind(description string, keys ...Key) KeyBind {
	return KeyBind{
		Description: description,
		Keys:        keys,
	}
}

// Match reports whether the key code matches any key in the binding.
func (kb *KeyBind) Match(key string) bool {
	for _, k := range kb.Keys {
		if k.Code == key {
			return true
		}
	}

	return false
}

func (kb *KeyBind) String() string {
	keys := []string{}
	for _, k := range kb.Keys {
		if k.Hidden {
			continue
		}

		keys = append(keys, k.String())
	}

	return strings.Join(keys, "/")
}

// StringRow renders "keys  description" padded to the given widths. KeyWidth
// should be the maximum key-string width in the column.
func (kb *KeyBind) StringRow(keyWidth, descWidth int) string {
	keys := kb.String()
	if keys == "" {
		return "" // All keys hidden.
	}

	keyPad := strings.Repeat(" ", max(0, keyWidth-ansi.PrintableRuneWidth(keys)))
	descPad := strings.Repeat(" ", max(0, descWidth-ansi.PrintableRuneWidth(kb.Description)-2))

	return fmt.Sprintf("%s%s  %s%s", keys, keyPad, kb.Description, descPad)
}

// Render lays out the bindings as a single help line.
func Render(kbs ...KeyBind) string {
	rows := make([]string, 0, len(kbs))
	for _, kb := range kbs {
		s := kb.String()
		if s == "" {
			continue
		}

		rows = append(rows, fmt.Sprintf("%s %s", s, kb.Description))
	}

	return strings.Join(rows, "  ")
}

// ValidateBinds returns an error when any key code is bound more than once
// across the given binding sets.
func ValidateBinds(kbs ...[]KeyBind) error {
	var errs []error

	seen := make(map[string]bool)
	for _, ks := range kbs {
		for _, kb := range ks {
			for _, key := range kb.Keys {
				if seen[key.Code] {
					errs = append(errs, fmt.Errorf("duplicate key binding found: %s", key.Code))
				}

				seen[key.Code] = true
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// SetDefaultBind fills in a binding that the config left unset or partial.
func SetDefaultBind(kb **KeyBind, defaultKb KeyBind) {
	if *kb == nil {
		*kb = &defaultKb

		return
	}

	if len((*kb).Keys) == 0 {
		(*kb).Keys = defaultKb.Keys
	}

	if (*kb).Description == "" {
		(*kb).Description = defaultKb.Description
	}
}
