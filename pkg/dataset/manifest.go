package dataset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Manifest is the optional YAML sidecar of a CSV dataset. Everything
// in it is advisory metadata except column kinds, which override
// inference.
type Manifest struct {
	Name        string                    `yaml:"name"`
	Title       string                    `yaml:"title"`
	Description string                    `yaml:"description"`
	Source      string                    `yaml:"source"`
	Label       string                    `yaml:"label"`
	Columns     map[string]ManifestColumn `yaml:"columns"`
}

// ManifestColumn carries per-column overrides. Kind is a ColumnKind
// name; empty means infer from the data.
type ManifestColumn struct {
	Title string `yaml:"title"`
	Kind  string `yaml:"kind"`
}

// ParseManifest decodes a manifest document.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}
