// Package config loads the fixed compiler configuration (§6.3): the
// handful of identifier names the semantic core treats specially,
// versioned the way internal/manifest version-stamps AILANG's example
// manifests.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SchemaVersion identifies the shape of the on-disk config format.
const SchemaVersion = "inkoc.config/v1"

// Config holds the fixed identifiers and compiler-wide knobs the
// semantic core consults (§6.3).
type Config struct {
	Schema string `yaml:"schema"`

	// ModuleGlobal is the name of the global that holds a module's own
	// type (the module's prototype object), e.g. "ThisModule".
	ModuleGlobal string `yaml:"module_global"`

	// InitMessage is the method name treated as a constructor: only
	// inside a method with this name may `let @x` define a new attribute.
	InitMessage string `yaml:"init_message"`

	// NewMessage is the method name used for array and generic
	// constructors (e.g. `Array.new`, `Foo.new`).
	NewMessage string `yaml:"new_message"`

	// ObjectNameAttribute is the attribute every object carries holding
	// its own name as a string.
	ObjectNameAttribute string `yaml:"object_name_attribute"`

	// ArrayTypeParameter is the name of Array's single element type
	// parameter.
	ArrayTypeParameter string `yaml:"array_type_parameter"`

	// ArrayConst / TraitConst are the module-global names of the Array
	// and Trait prototypes.
	ArrayConst string `yaml:"array_const"`
	TraitConst string `yaml:"trait_const"`

	// ReservedConstants may never be redefined (ReservedConstant
	// diagnostic), e.g. "Self".
	ReservedConstants []string `yaml:"reserved_constants"`

	// SearchPaths are the directories internal/loader names in its
	// NotFoundError messages; FindModule places a module under the first
	// one. The loader itself never reads files from them.
	SearchPaths []string `yaml:"search_paths"`
}

// Default returns the built-in configuration used when no file is
// supplied, matching the names spec.md §6.3 names explicitly.
func Default() *Config {
	return &Config{
		Schema:              SchemaVersion,
		ModuleGlobal:        "ThisModule",
		InitMessage:         "init",
		NewMessage:          "new",
		ObjectNameAttribute: "@_object_name",
		ArrayTypeParameter:  "T",
		ArrayConst:          "Array",
		TraitConst:          "Trait",
		ReservedConstants:   []string{"Self"},
		SearchPaths:         []string{"."},
	}
}

// Load reads a YAML configuration file, falling back to Default() for
// any field left unset (so a minimal override file is always valid).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects a config missing any required identifier.
func (c *Config) Validate() error {
	required := map[string]string{
		"module_global":          c.ModuleGlobal,
		"init_message":           c.InitMessage,
		"new_message":            c.NewMessage,
		"object_name_attribute":  c.ObjectNameAttribute,
		"array_type_parameter":   c.ArrayTypeParameter,
		"array_const":            c.ArrayConst,
		"trait_const":            c.TraitConst,
	}
	for key, val := range required {
		if val == "" {
			return fmt.Errorf("config: missing required field %q", key)
		}
	}
	return nil
}

// IsReserved reports whether name may not be redefined as a constant.
func (c *Config) IsReserved(name string) bool {
	for _, r := range c.ReservedConstants {
		if r == name {
			return true
		}
	}
	return false
}
