package dirtree

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Manifest is the JSON input format of docweaver: the project's files plus
// the resolved file-to-file dependencies discovered by an external analyzer.
//
// The format is designed for round-trip fidelity: import -> export -> import
// produces an identical manifest.
type Manifest struct {
	Name         string       `json:"name,omitempty"`
	Files        []File       `json:"files"`
	Dependencies []Dependency `json:"dependencies,omitempty"`
}

// File is one source file, identified by its project-relative path.
type File struct {
	Path string `json:"path"`
}

// Dependency is one resolved file-level dependency: From uses To.
type Dependency struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// ReadManifest decodes a JSON manifest from r.
func ReadManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	return m, nil
}

// LoadManifest reads a JSON manifest file.
func LoadManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadManifest(f)
}

// WriteManifest writes m as indented JSON to w.
func WriteManifest(m Manifest, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return nil
}

// BuildTree constructs the directory tree for the manifest's files and
// applies every file dependency to it.
func (m Manifest) BuildTree() (*Tree, error) {
	paths := make([]string, len(m.Files))
	for i, f := range m.Files {
		paths[i] = f.Path
	}

	t, err := Build(paths)
	if err != nil {
		return nil, err
	}

	for _, dep := range m.Dependencies {
		if err := t.AddFileDependency(dep.From, dep.To); err != nil {
			return nil, fmt.Errorf("dependency %s -> %s: %w", dep.From, dep.To, err)
		}
	}
	return t, nil
}
