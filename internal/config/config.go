// Package config loads a dyva.toml manifest describing a compilation unit:
// an entry file, import search paths, and diagnostic limits. Parsing TOML
// lives only here; internal/program takes a plain Go struct, never a path,
// so the core stays decoupled from the manifest format.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Manifest is the decoded contents of a dyva.toml file.
type Manifest struct {
	Path string // absolute path to the manifest itself
	Root string // directory containing the manifest

	Package PackageConfig
	Run     RunConfig
	Diag    DiagConfig
	Trace   TraceConfig
}

type PackageConfig struct {
	Name string `toml:"name"`
}

type RunConfig struct {
	Main        string   `toml:"main"`
	SearchPaths []string `toml:"search_paths"`
}

type DiagConfig struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
}

type TraceConfig struct {
	Level string `toml:"level"`
	Out   string `toml:"out"`
}

const manifestName = "dyva.toml"

const noManifestMessage = "no dyva.toml found\nplease specify the entry file explicitly, e.g.:\n  dyva check path/to/entry.dyva"

// NoManifestMessage is the diagnostic text a CLI prints when Find locates
// no manifest and the caller has not supplied an explicit entry path.
func NoManifestMessage() string { return noManifestMessage }

// Find walks upward from startDir looking for dyva.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, manifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load finds and decodes the manifest reachable from startDir.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := decode(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

func decode(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(m.Package.Name) == "" {
		return nil, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("run") {
		return nil, fmt.Errorf("%s: missing [run]", path)
	}
	if !meta.IsDefined("run", "main") || strings.TrimSpace(m.Run.Main) == "" {
		return nil, fmt.Errorf("%s: missing [run].main", path)
	}
	if m.Diag.MaxDiagnostics == 0 {
		m.Diag.MaxDiagnostics = 200
	}
	m.Path = path
	m.Root = filepath.Dir(path)
	return &m, nil
}

// EntryPath resolves [run].main against the manifest's root directory.
func (m *Manifest) EntryPath() string {
	return filepath.Join(m.Root, filepath.FromSlash(strings.TrimSpace(m.Run.Main)))
}

// ResolvedSearchPaths resolves every configured search path against the
// manifest's root directory, appending the root itself so that imports
// relative to the entry file always resolve.
func (m *Manifest) ResolvedSearchPaths() []string {
	paths := make([]string, 0, len(m.Run.SearchPaths)+1)
	for _, p := range m.Run.SearchPaths {
		paths = append(paths, filepath.Join(m.Root, filepath.FromSlash(p)))
	}
	paths = append(paths, m.Root)
	return paths
}
