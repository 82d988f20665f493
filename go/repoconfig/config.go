// Package repoconfig loads the shared repository configuration consumed by
// the build tools. Every repository in the family declares its type and any
// overrides in a repo-config.yaml manifest at its root; everything not set
// there falls back to the defaults for that repository type.
package repoconfig

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
)

// Type identifies the kind of repository a configuration applies to.
type Type string

const (
	TypeActor Type = "actor"
	TypeAPI   Type = "api"
	TypeApp   Type = "app"
	TypeLib   Type = "lib"
	TypeModel Type = "model"
)

var knownTypes = map[Type]bool{
	TypeActor: true,
	TypeAPI:   true,
	TypeApp:   true,
	TypeLib:   true,
	TypeModel: true,
}

// Config is the resolved configuration for one repository.
type Config struct {
	// Type of the repository.
	Type Type
	// Module is the Go module path of the consuming repository. Generated
	// code imports are rewritten against it.
	Module string
	// Proto configures the proto compiler command.
	Proto ProtoConfig
	// Check configures the check sessions.
	Check CheckConfig
}

// ProtoConfig configures proto discovery and compilation.
type ProtoConfig struct {
	// Path is the proto source root, relative to the repository root.
	Path string
	// Glob matches the proto files to compile within Path.
	Glob string
	// IncludePaths are passed to the compiler as additional import roots.
	IncludePaths []string
	// OutPath is where generated code is written, relative to the
	// repository root.
	OutPath string
}

// CheckConfig configures which check sessions run and with which options.
type CheckConfig struct {
	// Sessions to run, in order.
	Sessions []string
	// Options holds extra command-line arguments per session.
	Options map[string][]string
	// Paths are the targets the sessions operate on.
	Paths []string
}

// ProtoRoot returns the proto source root resolved against the repository
// root.
func (c *Config) ProtoRoot(repoDir string) string {
	return filepath.Join(repoDir, c.Proto.Path)
}

// OutRoot returns the generated-code root resolved against the repository
// root.
func (c *Config) OutRoot(repoDir string) string {
	return filepath.Join(repoDir, c.Proto.OutPath)
}

// Copy returns a deep copy of the configuration, so callers can customize it
// without mutating a shared default.
func (c *Config) Copy() *Config {
	clone := *c
	clone.Proto.IncludePaths = slices.Clone(c.Proto.IncludePaths)
	clone.Check.Sessions = slices.Clone(c.Check.Sessions)
	clone.Check.Paths = slices.Clone(c.Check.Paths)
	clone.Check.Options = make(map[string][]string, len(c.Check.Options))
	for session, options := range c.Check.Options {
		clone.Check.Options[session] = slices.Clone(options)
	}
	return &clone
}

// Default returns the default configuration for the given repository type.
func Default(t Type) (*Config, error) {
	if !knownTypes[t] {
		return nil, fmt.Errorf("unknown repository type: %s", t)
	}
	config := &Config{
		Type: t,
		Proto: ProtoConfig{
			Path: "proto",
			Glob: "*.proto",
			IncludePaths: []string{
				"submodules/api-common-protos",
				"submodules/api-common/proto",
			},
			OutPath: "gen",
		},
		Check: CheckConfig{
			Sessions: []string{"format", "vet", "lint", "test"},
			Options:  map[string][]string{},
			Paths:    []string{"./..."},
		},
	}
	if t == TypeAPI {
		// API repositories hold generated code only; checking its style
		// is pointless, so only the hand-written tests are targeted.
		config.Check.Sessions = []string{"vet", "test"}
		config.Check.Paths = []string{"./tests/..."}
	}
	return config, nil
}

// merge lays the manifest's explicitly set values over the defaults.
func merge(defaults *Config, m *manifest) *Config {
	config := defaults.Copy()
	if m.Module != "" {
		config.Module = m.Module
	}
	if m.Proto.Path != "" {
		config.Proto.Path = m.Proto.Path
	}
	if m.Proto.Glob != "" {
		config.Proto.Glob = m.Proto.Glob
	}
	if m.Proto.IncludePaths != nil {
		config.Proto.IncludePaths = slices.Clone(m.Proto.IncludePaths)
	}
	if m.Proto.OutPath != "" {
		config.Proto.OutPath = m.Proto.OutPath
	}
	if m.Check.Sessions != nil {
		config.Check.Sessions = slices.Clone(m.Check.Sessions)
	}
	if m.Check.Paths != nil {
		config.Check.Paths = slices.Clone(m.Check.Paths)
	}
	if m.Check.Options != nil {
		maps.Copy(config.Check.Options, m.Check.Options)
	}
	return config
}
