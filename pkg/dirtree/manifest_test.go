package dirtree

import (
	"bytes"
	"strings"
	"testing"
)

func TestReadManifest(t *testing.T) {
	input := `{
	  "name": "demo",
	  "files": [
	    {"path": "src/core/main.c"},
	    {"path": "src/util/str.c"}
	  ],
	  "dependencies": [
	    {"from": "src/core/main.c", "to": "src/util/str.c"}
	  ]
	}`

	m, err := ReadManifest(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if m.Name != "demo" {
		t.Errorf("Name = %q, want demo", m.Name)
	}
	if len(m.Files) != 2 || len(m.Dependencies) != 1 {
		t.Errorf("files/deps = %d/%d, want 2/1", len(m.Files), len(m.Dependencies))
	}
}

func TestReadManifestInvalidJSON(t *testing.T) {
	if _, err := ReadManifest(strings.NewReader("{not json")); err == nil {
		t.Error("invalid JSON should fail")
	}
}

func TestManifestRoundTrip(t *testing.T) {
	m := Manifest{
		Name:         "demo",
		Files:        []File{{Path: "src/a/a.c"}, {Path: "src/b/b.c"}},
		Dependencies: []Dependency{{From: "src/a/a.c", To: "src/b/b.c"}},
	}

	var buf bytes.Buffer
	if err := WriteManifest(m, &buf); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	got, err := ReadManifest(&buf)
	if err != nil {
		t.Fatalf("ReadManifest: %v", err)
	}
	if got.Name != m.Name || len(got.Files) != len(m.Files) || len(got.Dependencies) != len(m.Dependencies) {
		t.Errorf("round trip mismatch: %+v vs %+v", got, m)
	}
}

func TestBuildTree(t *testing.T) {
	m := Manifest{
		Files: []File{
			{Path: "src/core/main.c"},
			{Path: "src/util/str.c"},
		},
		Dependencies: []Dependency{
			{From: "src/core/main.c", To: "src/util/str.c"},
		},
	}

	tr, err := m.BuildTree()
	if err != nil {
		t.Fatalf("BuildTree: %v", err)
	}

	core, _ := tr.Lookup("src/core")
	util, _ := tr.Lookup("src/util")
	if _, ok := core.UsedDir(util.ID); !ok {
		t.Error("core should use util after BuildTree")
	}
}

func TestBuildTreeUnknownDependency(t *testing.T) {
	m := Manifest{
		Files:        []File{{Path: "src/core/main.c"}},
		Dependencies: []Dependency{{From: "src/core/main.c", To: "src/util/str.c"}},
	}
	if _, err := m.BuildTree(); err == nil {
		t.Error("dependency on unlisted file should fail")
	}
}
