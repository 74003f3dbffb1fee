// Package project locates and loads the riptide.toml manifest that
// configures a compilation.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file the loader walks up the directory tree for.
const ManifestName = "riptide.toml"

type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Package PackageConfig `toml:"package"`
	Build   BuildConfig   `toml:"build"`
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type BuildConfig struct {
	// Optimize toggles peephole rewriting during construction.
	Optimize *bool `toml:"optimize"`
	// Iterate toggles the global fixpoint pass after parsing.
	Iterate *bool `toml:"iterate"`
	// MaxDiagnostics caps the number of reported diagnostics per file.
	MaxDiagnostics int `toml:"max_diagnostics"`
}

// OptimizeOn reports the effective peephole setting; on by default.
func (c BuildConfig) OptimizeOn() bool { return c.Optimize == nil || *c.Optimize }

// IterateOn reports the effective fixpoint setting; on by default.
func (c BuildConfig) IterateOn() bool { return c.Iterate == nil || *c.Iterate }

// DiagLimit returns the effective diagnostics cap.
func (c BuildConfig) DiagLimit() int {
	if c.MaxDiagnostics <= 0 {
		return 100
	}
	return c.MaxDiagnostics
}

// Find walks up from startDir looking for the manifest. The boolean is
// false when no manifest exists anywhere above startDir.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load parses the manifest at path.
func Load(path string) (*Manifest, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, nil
}

// LoadNearest finds and loads the manifest governing startDir; a
// default Manifest is returned when none exists.
func LoadNearest(startDir string) (*Manifest, error) {
	path, ok, err := Find(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Manifest{Root: startDir}, nil
	}
	return Load(path)
}
