// Package manifest handles gclang.toml project configuration: the
// runtime's operating mode, since there is no source tree to describe —
// programs are host-constructed ASTs, not files on disk.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents a gclang.toml project configuration.
type Manifest struct {
	GC    GCConfig    `toml:"gc"`
	Trace TraceConfig `toml:"trace"`
	Run   RunConfig   `toml:"run"`

	// Dir is the directory containing the gclang.toml file (set at load
	// time).
	Dir string `toml:"-"`
}

// GCConfig selects the collector's trigger policy.
type GCConfig struct {
	// Mode is "debug" (collect before every instruction) or "prod"
	// (collect once the live-object threshold is reached). Defaults to
	// "prod".
	Mode string `toml:"mode"`
}

// TraceConfig toggles diagnostic logging.
type TraceConfig struct {
	Bytecode bool `toml:"bytecode"`
	GC       bool `toml:"gc"`
}

// RunConfig selects which built-in demo program to run.
type RunConfig struct {
	// Program is one of "literals", "scoping", "if", "closures".
	// Defaults to "closures".
	Program string `toml:"program"`

	// DumpBytecode, if true, prints the disassembled program before
	// running it.
	DumpBytecode bool `toml:"dump-bytecode"`
}

const defaultManifestName = "gclang.toml"

// Load parses a gclang.toml file from the given directory, applying
// defaults for anything left unset.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, defaultManifestName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	m.applyDefaults()
	return &m, nil
}

// LoadFile parses a gclang.toml file at an explicit path rather than a
// directory containing one, for the CLI's -manifest flag.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	dir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	m.Dir = dir

	m.applyDefaults()
	return &m, nil
}

// FindAndLoad walks up from startDir to find a gclang.toml file, then
// loads and returns the manifest. Returns nil, nil if no manifest is
// found anywhere above startDir.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, defaultManifestName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func (m *Manifest) applyDefaults() {
	if m.GC.Mode == "" {
		m.GC.Mode = "prod"
	}
	if m.Run.Program == "" {
		m.Run.Program = "closures"
	}
}
