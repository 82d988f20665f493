package repoconfig

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// Filename is the conventional name of the manifest at a repository root.
	Filename = "repo-config.yaml"

	apiVersion = "repoconfig/v1"
	kind       = "RepoConfig"
)

// envelope is decoded first to validate the manifest before unmarshaling
// its body.
type envelope struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
}

// manifest is the on-disk shape of the configuration. Zero values mean
// "not set"; resolution happens in merge.
type manifest struct {
	APIVersion string `yaml:"apiVersion"`
	Kind       string `yaml:"kind"`
	Type       Type   `yaml:"type"`
	Module     string `yaml:"module"`
	Proto      struct {
		Path         string   `yaml:"path"`
		Glob         string   `yaml:"glob"`
		IncludePaths []string `yaml:"includePaths"`
		OutPath      string   `yaml:"outPath"`
	} `yaml:"proto"`
	Check struct {
		Sessions []string            `yaml:"sessions"`
		Options  map[string][]string `yaml:"options"`
		Paths    []string            `yaml:"paths"`
	} `yaml:"check"`
}

// Load reads the manifest in the given directory and resolves it against the
// defaults for its declared repository type. A missing manifest resolves to
// the defaults for a lib repository.
func Load(dir string) (*Config, error) {
	data, err := os.ReadFile(filepath.Join(dir, Filename))
	if err != nil {
		if os.IsNotExist(err) {
			return Default(TypeLib)
		}
		return nil, fmt.Errorf("reading %s: %w", Filename, err)
	}
	return Parse(data)
}

// Parse resolves a manifest's content against the defaults for its declared
// repository type.
func Parse(data []byte) (*Config, error) {
	var env envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("unmarshaling manifest envelope: %w", err)
	}
	if env.APIVersion != apiVersion {
		return nil, fmt.Errorf("unsupported apiVersion: %q (want %q)", env.APIVersion, apiVersion)
	}
	if env.Kind != kind {
		return nil, fmt.Errorf("unsupported kind: %q (want %q)", env.Kind, kind)
	}

	var m manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("unmarshaling manifest: %w", err)
	}
	if m.Type == "" {
		m.Type = TypeLib
	}

	defaults, err := Default(m.Type)
	if err != nil {
		return nil, err
	}
	return merge(defaults, &m), nil
}
