// SPDX-License-Identifier: Apache-2.0

package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueyaml "cuelang.org/go/encoding/yaml"
	"github.com/goccy/go-yaml"
)

// ErrInvalidRules is returned for rule files that fail to parse, violate the
// schema, or contain patterns that do not compile.
var ErrInvalidRules = errors.New("invalid rule table")

//go:embed schema.cue
var schemaSource string

// Load reads a YAML or JSON rule overlay from path and applies it on top of
// Default.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule file %q: %w", path, err)
	}
	return Parse(data)
}

// Parse validates data against the embedded CUE schema, overlays it on
// Default and compiles the result. Sections present in data replace the
// matching defaults; absent sections keep them.
func Parse(data []byte) (*Table, error) {
	cfg, err := Overlay(Default(), data)
	if err != nil {
		return nil, err
	}
	return cfg.Compile()
}

// Overlay validates data and decodes it over base.
func Overlay(base Config, data []byte) (Config, error) {
	if err := validateSchema(data); err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &base); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	return base, nil
}

// Marshal renders c as YAML, suitable as a starting point for an overlay.
func Marshal(c Config) ([]byte, error) {
	return yaml.Marshal(c)
}

func validateSchema(data []byte) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("failed to compile rule schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#RuleSet"))
	if err := cueyaml.Validate(data, def); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRules, err)
	}
	return nil
}
