// Package config loads the YAML scene definitions for the demos. Defaults
// are embedded in the binary; a file on disk can override them.
package config

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var DefaultsFS embed.FS

// Scene definition names shipped in DefaultsFS.
const (
	SolarSystemFile = "solarsystem.yaml"
	SunEarthFile    = "sunearth.yaml"
	SailboatFile    = "sailboat.yaml"
)

// Validator is implemented by every scene definition.
type Validator interface {
	Validate() error
}

// Load returns the raw bytes of a scene definition. When override is set the
// file is read from disk; otherwise name is read from the embedded defaults.
func Load(name, override string) ([]byte, error) {
	if override != "" {
		return os.ReadFile(override)
	}
	return DefaultsFS.ReadFile(path.Join("defaults", cleanName(name)))
}

// LoadSpec loads, decodes and validates a scene definition.
func LoadSpec[T any, PT interface {
	*T
	Validator
}](name, override string) (*T, error) {
	src := name
	if override != "" {
		src = override
	}
	data, err := Load(name, override)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", src, err)
	}
	spec, err := Parse[T, PT](data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", src, err)
	}
	return spec, nil
}

// Parse decodes and validates a scene definition from YAML.
func Parse[T any, PT interface {
	*T
	Validator
}](data []byte) (*T, error) {
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}
	if err := PT(&spec).Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func cleanName(name string) string {
	s := filepath.ToSlash(name)
	if after, ok := strings.CutPrefix(s, "defaults/"); ok {
		s = after
	}
	return s
}
