// Package manifest handles mdt.toml project configuration.
package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest represents an mdt.toml project configuration: where saved
// machines live, the default tape arity, and logging verbosity.
type Manifest struct {
	Project Project `toml:"project"`
	Machine Machine `toml:"machine"`
	Store   Store   `toml:"store"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the mdt.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Machine configures machine defaults.
type Machine struct {
	// Tapes is the tape arity assumed when a command doesn't specify one.
	Tapes int `toml:"tapes"`
	// Dir is where machine document files are kept.
	Dir string `toml:"dir"`
}

// Store configures the machine library database.
type Store struct {
	Path string `toml:"path"`
}

// Log configures logging output.
type Log struct {
	Verbosity int `toml:"verbosity"`
}

// ManifestFile is the configuration file name looked up in a project
// directory.
const ManifestFile = "mdt.toml"

// Load parses an mdt.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
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

// LoadOrDefault loads mdt.toml from dir, falling back to a default manifest
// when the file doesn't exist. Parse errors are still reported.
func LoadOrDefault(dir string) (*Manifest, error) {
	m, err := Load(dir)
	if err == nil {
		return m, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		m := &Manifest{Dir: dir}
		m.applyDefaults()
		return m, nil
	}
	return nil, err
}

func (m *Manifest) applyDefaults() {
	if m.Machine.Tapes < 1 {
		m.Machine.Tapes = 1
	}
	if m.Machine.Dir == "" {
		m.Machine.Dir = "machines"
	}
	if m.Store.Path == "" {
		m.Store.Path = "mdt.db"
	}
}

// StorePath returns the library database path, resolved against the
// manifest directory when relative.
func (m *Manifest) StorePath() string {
	if filepath.IsAbs(m.Store.Path) {
		return m.Store.Path
	}
	return filepath.Join(m.Dir, m.Store.Path)
}

// MachineDir returns the machine documents directory, resolved against the
// manifest directory when relative.
func (m *Manifest) MachineDir() string {
	if filepath.IsAbs(m.Machine.Dir) {
		return m.Machine.Dir
	}
	return filepath.Join(m.Dir, m.Machine.Dir)
}
