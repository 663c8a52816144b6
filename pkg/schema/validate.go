// Package schema validates configuration data against a JSON schema.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "https://raw.githubusercontent.com/cataplot/palette/refs/heads/main/pkg/config/config.v1beta1.json"

// ValidationError describes a single failed schema check.
type ValidationError struct {
	Err    error
	Field  string
	Detail string
}

func (e ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("error at %s: %s", e.Field, e.Detail)
	}

	return "validation error: " + e.Detail
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// Validator validates data against a JSON schema, using
// [github.com/santhosh-tekuri/jsonschema/v6].
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the provided JSON schema document.
func NewValidator(schemaData []byte) (*Validator, error) {
	var doc any
	if err := json.Unmarshal(schemaData, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}

	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Validator{schema: compiled}, nil
}

// Validate checks data (decoded YAML/JSON as plain maps and slices) against
// the schema. It returns a [ValidationError] for the first leaf failure.
func (v *Validator) Validate(data any) error {
	err := v.schema.Validate(data)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if errors.As(err, &ve) {
		leaf := leafError(ve)

		return ValidationError{
			Err:    err,
			Field:  joinLocation(leaf.InstanceLocation),
			Detail: leaf.Error(),
		}
	}

	return fmt.Errorf("validate: %w", err)
}

// leafError walks to the most specific nested cause.
func leafError(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}

	return ve
}

func joinLocation(tokens []string) string {
	out := ""
	for _, t := range tokens {
		out += "/" + t
	}

	return out
}
