package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/difficulty"
)

//go:embed overrides.schema.json
var overridesSchemaJSON []byte

var overridesSchema = mustCompile("overrides.schema.json", overridesSchemaJSON)

// OverridesFile is the on-disk shape of an activities overrides file.
type OverridesFile struct {
	Version    string                      `yaml:"version"`
	Activities map[string]ActivityOverride `yaml:"activities"`
}

// ActivityOverride changes one catalog entry. At most one policy may be set.
type ActivityOverride struct {
	Disabled bool                `yaml:"disabled"`
	Streak   *difficulty.Streak  `yaml:"streak"`
	Rolling  *difficulty.Rolling `yaml:"rolling"`
}

// LoadOverrides reads and validates an overrides file.
func LoadOverrides(path string) (map[string]activity.Override, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides: %w", err)
	}
	return ParseOverrides(data)
}

// ParseOverrides decodes YAML overrides. The document is checked against
// the embedded schema before it is decoded strictly.
func ParseOverrides(data []byte) (map[string]activity.Override, error) {
	if err := checkOverridesSchema(data); err != nil {
		return nil, err
	}

	var f OverridesFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, errors.New("parse overrides: multiple documents are not supported")
		}
		return nil, fmt.Errorf("parse overrides: %w", err)
	}

	if !semver.IsValid(f.Version) || semver.Major(f.Version) != "v1" {
		return nil, fmt.Errorf("overrides version %q is not supported, want v1.x", f.Version)
	}

	out := make(map[string]activity.Override, len(f.Activities))
	for id, a := range f.Activities {
		o := activity.Override{Disabled: a.Disabled}
		switch {
		case a.Streak != nil && a.Rolling != nil:
			return nil, fmt.Errorf("override %q: set streak or rolling, not both", id)
		case a.Streak != nil:
			o.Policy = *a.Streak
		case a.Rolling != nil:
			o.Policy = *a.Rolling
		}
		out[id] = o
	}
	return out, nil
}

// checkOverridesSchema validates the document as JSON. YAML values are
// round-tripped through encoding/json so the validator sees JSON types.
func checkOverridesSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse overrides: %w", err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("parse overrides: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("parse overrides: %w", err)
	}
	if err := overridesSchema.Validate(inst); err != nil {
		return fmt.Errorf("invalid overrides: %w", err)
	}
	return nil
}

func mustCompile(name string, def []byte) *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	c := jsonschema.NewCompiler()
	url := "schema://" + name
	if err := c.AddResource(url, doc); err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	s, err := c.Compile(url)
	if err != nil {
		panic(fmt.Sprintf("schema %s: %v", name, err))
	}
	return s
}
