package depgraph

import (
	"slices"

	"github.com/docweaver/docweaver/pkg/dirtree"
)

// visibility is the result of resolving which directories may appear in one
// graph. It owns the draw property of every permitted directory and the
// forest of tree roots the writer iterates.
type visibility struct {
	tree   *dirtree.Tree
	origin *dirtree.Dir

	successorDepth int
	ancestorDepth  int

	props   map[int]*Property
	inODT   map[int]bool // origin plus its successors
	roots   []int        // forest roots in registration order
	rootSet map[int]bool
}

// resolve computes the visible directory set for a graph centered on origin.
//
// The set consists of the origin's directory tree, every dependee of that
// tree whose level is within the ancestor limit, those dependees' successor
// trees, and the ancestors climbed while resolving tree roots. Directories
// without a property entry afterwards must not be drawn.
func resolve(t *dirtree.Tree, origin *dirtree.Dir, successorDepth, ancestorDepth int) *visibility {
	v := &visibility{
		tree:           t,
		origin:         origin,
		successorDepth: successorDepth,
		ancestorDepth:  ancestorDepth,
		props:          make(map[int]*Property),
		inODT:          make(map[int]bool),
		rootSet:        make(map[int]bool),
	}

	v.inODT[origin.ID] = true
	v.prop(origin.ID)
	for _, id := range v.successors(origin.ID) {
		v.inODT[id] = true
		v.prop(id)
	}

	// Dependees below the ancestor limit would force drawing ancestry the
	// limit forbids, so they are excluded outright.
	minLevel := origin.Level - ancestorDepth
	odt := make([]int, 0, len(v.inODT))
	for id := range v.inODT {
		odt = append(odt, id)
	}
	slices.Sort(odt)

	seen := make(map[int]bool)
	var dependees []int
	for _, id := range odt {
		for _, u := range t.Dir(id).UsedDirs() {
			dep := t.Dir(u.Dir())
			if dep.Level < minLevel || seen[dep.ID] {
				continue
			}
			seen[dep.ID] = true
			dependees = append(dependees, dep.ID)
		}
	}
	for _, id := range dependees {
		v.prop(id)
		for _, s := range v.successors(id) {
			v.prop(s)
		}
	}

	v.prop(origin.ID).IsOriginal = true

	v.registerTreeRoots(origin.ID)
	for _, id := range dependees {
		v.registerTreeRoots(id)
	}
	return v
}

// prop returns the directory's draw property, creating a default entry on
// first access.
func (v *visibility) prop(id int) *Property {
	p, ok := v.props[id]
	if !ok {
		p = &Property{}
		v.props[id] = p
	}
	return p
}

// lookup returns the directory's property without creating one.
func (v *visibility) lookup(id int) (*Property, bool) {
	p, ok := v.props[id]
	return p, ok
}

// successors collects all transitive children of the directory. An explicit
// worklist keeps the traversal flat regardless of tree depth.
func (v *visibility) successors(id int) []int {
	var out []int
	stack := slices.Clone(v.tree.Dir(id).Children)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, n)
		stack = append(stack, v.tree.Dir(n).Children...)
	}
	return out
}

// registerTreeRoots climbs from the candidate toward the project root and
// registers the directory where the climb must stop as a forest root. A
// climb stops at an already-registered root, at a parentless directory, or
// where the parent's level falls below the ancestor limit; in the last case
// the stranded directory is marked orphaned. Every directory visited outside
// the origin's own tree is marked incomplete, since its siblings and further
// successors are not guaranteed to be drawn.
func (v *visibility) registerTreeRoots(candidate int) {
	for id := candidate; ; {
		if v.rootSet[id] {
			return
		}
		d := v.tree.Dir(id)
		if !v.inODT[id] {
			v.prop(id).IsIncomplete = true
		}
		if d.Parent < 0 {
			v.addRoot(id)
			return
		}
		if v.origin.Level-v.tree.Dir(d.Parent).Level > v.ancestorDepth {
			v.prop(id).IsOrphaned = true
			v.addRoot(id)
			return
		}
		id = d.Parent
	}
}

func (v *visibility) addRoot(id int) {
	v.roots = append(v.roots, id)
	v.rootSet[id] = true
}

// beyondSuccessorLimit reports whether the directory's children fall outside
// the successor limit of this graph.
func (v *visibility) beyondSuccessorLimit(d *dirtree.Dir) bool {
	return d.Level-v.origin.Level >= v.successorDepth
}

// atVisibilityBorder reports whether the directory sits exactly on the
// successor limit, where summarized edges remain visible.
func (v *visibility) atVisibilityBorder(d *dirtree.Dir) bool {
	return d.Level-v.origin.Level == v.successorDepth
}
