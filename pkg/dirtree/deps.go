package dirtree

import "fmt"

// FilePair records one file-level dependency: Src depends on Dst.
type FilePair struct {
	Src string
	Dst string
}

// UsedDir aggregates every file-level dependency from one dependent directory
// onto one dependee directory. It is created lazily on first use and owned by
// the dependent [Dir].
//
// Each recorded pair sets exactly one inheritance-quadrant flag, describing
// whether the dependent and/or dependee end was lifted to an ancestor of the
// file's own directory. The graph renderer uses the accumulated flags to
// decide at which nesting level an edge must be drawn.
type UsedDir struct {
	dir   int // dependee ordinal
	pairs []FilePair

	sodo bool // a pair with neither end inherited exists
	sodi bool // a pair inherited on the dependee end only exists
	sido bool // a pair inherited on the dependent end only exists
	sidi bool // a pair inherited on both ends exists
}

// Dir returns the dependee's ordinal ID.
func (u *UsedDir) Dir() int { return u.dir }

// FilePairs returns the accumulated file pairs. Duplicates are possible;
// this layer tolerates them rather than deduplicating.
func (u *UsedDir) FilePairs() []FilePair { return u.pairs }

// addFilePair appends the pair and classifies it into its quadrant.
func (u *UsedDir) addFilePair(src, dst string, inheritedByDependent, inheritedByDependee bool) {
	u.pairs = append(u.pairs, FilePair{Src: src, Dst: dst})
	switch {
	case !inheritedByDependent && !inheritedByDependee:
		u.sodo = true
	case !inheritedByDependent && inheritedByDependee:
		u.sodi = true
	case inheritedByDependent && !inheritedByDependee:
		u.sido = true
	default:
		u.sidi = true
	}
}

// AllDependentsInherited reports whether every file pair was inherited on the
// dependent end, i.e. no pair originates from this exact directory.
func (u *UsedDir) AllDependentsInherited() bool {
	return !(u.sodo || u.sodi)
}

// AllDependeesInherited reports whether every considered file pair was
// inherited on the dependee end. When alsoInheritedDependents is false, only
// pairs that are direct on the dependent end are considered; when true, pairs
// inherited by the dependent count as well.
func (u *UsedDir) AllDependeesInherited(alsoInheritedDependents bool) bool {
	return !(u.sodo || (alsoInheritedDependents && u.sido))
}

// addFileDep records one propagated file dependency on this directory.
func (d *Dir) addFileDep(dependee int, src, dst string, inheritedByDependent, inheritedByDependee bool) {
	u, ok := d.used[dependee]
	if !ok {
		u = &UsedDir{dir: dependee}
		d.used[dependee] = u
	}
	u.addFilePair(src, dst, inheritedByDependent, inheritedByDependee)
}

// AddFileDependency records that file src depends on file dst and propagates
// the dependency to every ordered pair of (dependent ancestor-or-self,
// dependee ancestor-or-self) directories. Pairs between a directory and
// itself are skipped; a pair's inheritance flags record on which ends the
// original directories were lifted.
//
// Both files must have been part of the file list the tree was built from.
func (t *Tree) AddFileDependency(src, dst string) error {
	srcDir, ok := t.FileDir(src)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFile, src)
	}
	dstDir, ok := t.FileDir(dst)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownFile, dst)
	}

	for a := srcDir.ID; a >= 0; a = t.dirs[a].Parent {
		for b := dstDir.ID; b >= 0; b = t.dirs[b].Parent {
			if a == b {
				continue
			}
			t.dirs[a].addFileDep(b, src, dst, a != srcDir.ID, b != dstDir.ID)
		}
	}
	return nil
}
