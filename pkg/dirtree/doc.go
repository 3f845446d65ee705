// Package dirtree models the directory tree of a documented project together
// with the aggregated directory-to-directory dependencies derived from
// file-level dependencies.
//
// # Overview
//
// A [Tree] is built from the file paths of a dependency manifest: every
// directory that contains a manifest file (and every ancestor of one) becomes
// a [Dir]. Directories are stored in an arena indexed by a stable ordinal ID
// assigned in sorted-path order; parent and child links are arena indices,
// and each directory's level (root = 0) is fixed at build time.
//
// File-level dependencies are recorded with [Tree.AddFileDependency]. One
// file dependency fans out to every ordered pair of (dependent
// ancestor-or-self, dependee ancestor-or-self) directories, so that a
// dependency between deeply nested files is still visible between their
// top-level directories. Each such pair is aggregated in a [UsedDir], which
// tracks the file pairs and an inheritance quadrant per pair: whether the
// dependent and/or dependee end was lifted to an ancestor directory.
//
// The inheritance quadrants drive the graph renderer's edge collapsing: an
// edge that is fully inherited on the dependent side is drawn from inside the
// cluster instead of from the cluster boundary, and vice versa.
//
// # Basic Usage
//
//	m, err := dirtree.LoadManifest("deps.json")
//	if err != nil { ... }
//	t, err := m.BuildTree()
//	if err != nil { ... }
//	dir, ok := t.Lookup("src/core")
package dirtree
