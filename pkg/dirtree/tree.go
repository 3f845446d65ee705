package dirtree

import (
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"
)

var (
	// ErrNoFiles is returned by [Build] when no file paths are given.
	ErrNoFiles = errors.New("no files")

	// ErrInvalidFilePath is returned by [Build] for empty or absolute paths.
	// Manifest paths are always relative to the project root.
	ErrInvalidFilePath = errors.New("invalid file path")

	// ErrTopLevelFile is returned by [Build] for files that are not inside
	// any directory. Directory dependencies are undefined for such files.
	ErrTopLevelFile = errors.New("file is not inside a directory")

	// ErrUnknownFile is returned by [Tree.AddFileDependency] when an endpoint
	// was not part of the file list the tree was built from.
	ErrUnknownFile = errors.New("unknown file")
)

// Dir is one directory of the documented project.
//
// Dirs are exclusively owned by their [Tree]; Parent and Children are arena
// indices into it. The zero value is not usable - Dirs are created by [Build].
type Dir struct {
	ID       int    // arena index and ordinal, assigned once in sorted-path order
	Path     string // slash-separated path relative to the project root
	Name     string // short display name (last path element)
	Level    int    // root = 0, child = parent level + 1
	Parent   int    // arena index of the parent, -1 for roots
	Children []int  // arena indices, alphabetical

	used map[int]*UsedDir // dependee ID -> aggregated usage
}

// IsCluster reports whether the directory has subdirectories. Clusters are
// drawn as grouping boundaries rather than single nodes.
func (d *Dir) IsCluster() bool { return len(d.Children) > 0 }

// UsedDirs returns the aggregated usage records of this directory in
// ascending dependee-ID order.
func (d *Dir) UsedDirs() []*UsedDir {
	ids := make([]int, 0, len(d.used))
	for id := range d.used {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]*UsedDir, len(ids))
	for i, id := range ids {
		out[i] = d.used[id]
	}
	return out
}

// UsedDir returns the usage record for the given dependee, if any.
func (d *Dir) UsedDir(dependee int) (*UsedDir, bool) {
	u, ok := d.used[dependee]
	return u, ok
}

// DepGraphIsTrivial reports whether the directory's dependency graph would
// contain nothing but the directory itself. Trivial graphs are skipped by
// whole-run generation.
func (d *Dir) DepGraphIsTrivial() bool {
	return len(d.used) == 0 && d.Parent < 0
}

// Tree owns every [Dir] of a project as an immutable-after-build snapshot.
// It is not safe for concurrent mutation; concurrent reads are fine.
type Tree struct {
	dirs    []*Dir
	roots   []int
	byPath  map[string]int
	fileDir map[string]int // file path -> owning directory ID
}

// Build constructs a Tree from the file paths of a manifest. Every directory
// on the path of every file becomes a Dir; ordinal IDs are assigned in
// sorted-path order so parents always precede their children.
func Build(files []string) (*Tree, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	fileDirPath := make(map[string]string, len(files))
	dirSet := make(map[string]bool)
	for _, f := range files {
		if f == "" || strings.HasPrefix(f, "/") {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilePath, f)
		}
		clean := path.Clean(f)
		dir := path.Dir(clean)
		if dir == "." {
			return nil, fmt.Errorf("%w: %q", ErrTopLevelFile, f)
		}
		fileDirPath[clean] = dir
		for d := dir; d != "."; d = path.Dir(d) {
			dirSet[d] = true
		}
	}

	paths := make([]string, 0, len(dirSet))
	for p := range dirSet {
		paths = append(paths, p)
	}
	slices.Sort(paths)

	t := &Tree{
		dirs:    make([]*Dir, 0, len(paths)),
		byPath:  make(map[string]int, len(paths)),
		fileDir: make(map[string]int, len(fileDirPath)),
	}
	for id, p := range paths {
		d := &Dir{
			ID:     id,
			Path:   p,
			Name:   path.Base(p),
			Parent: -1,
			used:   make(map[int]*UsedDir),
		}
		if parent := path.Dir(p); parent != "." {
			// Sorted order guarantees the parent is already in the arena.
			pid := t.byPath[parent]
			d.Parent = pid
			d.Level = t.dirs[pid].Level + 1
			t.dirs[pid].Children = append(t.dirs[pid].Children, id)
		} else {
			t.roots = append(t.roots, id)
		}
		t.dirs = append(t.dirs, d)
		t.byPath[p] = id
	}

	for f, dir := range fileDirPath {
		t.fileDir[f] = t.byPath[dir]
	}
	return t, nil
}

// Len returns the number of directories.
func (t *Tree) Len() int { return len(t.dirs) }

// Dir returns the directory with the given arena index.
func (t *Tree) Dir(id int) *Dir { return t.dirs[id] }

// Dirs returns all directories in ordinal order. The slice is shared with
// the tree and must not be modified.
func (t *Tree) Dirs() []*Dir { return t.dirs }

// Roots returns the top-level directories.
func (t *Tree) Roots() []*Dir {
	out := make([]*Dir, len(t.roots))
	for i, id := range t.roots {
		out[i] = t.dirs[id]
	}
	return out
}

// Parent returns the parent directory, or nil for roots.
func (t *Tree) Parent(d *Dir) *Dir {
	if d.Parent < 0 {
		return nil
	}
	return t.dirs[d.Parent]
}

// Lookup finds a directory by its slash-separated path.
func (t *Tree) Lookup(p string) (*Dir, bool) {
	id, ok := t.byPath[path.Clean(p)]
	if !ok {
		return nil, false
	}
	return t.dirs[id], true
}

// FileDir returns the directory owning the given manifest file.
func (t *Tree) FileDir(file string) (*Dir, bool) {
	id, ok := t.fileDir[path.Clean(file)]
	if !ok {
		return nil, false
	}
	return t.dirs[id], true
}

// IsAncestorOf reports whether anc is a strict ancestor of d.
func (t *Tree) IsAncestorOf(anc, d *Dir) bool {
	for p := d.Parent; p >= 0; p = t.dirs[p].Parent {
		if p == anc.ID {
			return true
		}
	}
	return false
}
