package depgraph

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/docweaver/docweaver/pkg/dirtree"
	"github.com/docweaver/docweaver/pkg/observability"
)

// ErrNilOrigin is returned by [Write] when no origin directory is given.
var ErrNilOrigin = errors.New("nil origin directory")

// Default rendering limits and typography.
const (
	DefaultSuccessorDepth = 1
	DefaultAncestorDepth  = 1
	DefaultFontName       = "Helvetica"
	DefaultFontSize       = 10
	DefaultHTMLExtension  = ".html"
)

// Options bound and style one graph generation.
type Options struct {
	// SuccessorDepth limits how many levels below the origin are expanded.
	// Negative values are treated as zero.
	SuccessorDepth int

	// AncestorDepth limits how many levels above the origin are drawn.
	// Negative values are treated as zero.
	AncestorDepth int

	// LinkRelations attaches a hyperlink to every edge label pointing at the
	// relation's documentation page.
	LinkRelations bool

	// Transparent omits the opaque graph background.
	Transparent bool

	FontName string // defaults to Helvetica
	FontSize int    // defaults to 10

	// HTMLExtension is appended to node and relation names to form page
	// URLs. Defaults to ".html".
	HTMLExtension string
}

func (o Options) withDefaults() Options {
	if o.SuccessorDepth < 0 {
		o.SuccessorDepth = 0
	}
	if o.AncestorDepth < 0 {
		o.AncestorDepth = 0
	}
	if o.FontName == "" {
		o.FontName = DefaultFontName
	}
	if o.FontSize <= 0 {
		o.FontSize = DefaultFontSize
	}
	if o.HTMLExtension == "" {
		o.HTMLExtension = DefaultHTMLExtension
	}
	return o
}

// NodeID returns the DOT node identifier of a directory. It doubles as the
// base name of the directory's documentation page.
func NodeID(dir int) string {
	return fmt.Sprintf("dir_%06d", dir)
}

// Stats summarizes one emitted graph.
type Stats struct {
	Nodes       int // drawn directories, clusters included
	Edges       int // emitted edges after collapsing
	SkippedDirs []string
}

// topScope marks nodes and edges emitted at the top level of the digraph,
// outside any cluster.
const topScope = -1

// drawnState records how and where a directory was emitted.
type drawnState struct {
	scope int  // directory ID of the enclosing cluster, or topScope
	plain bool // emitted as a plain node rather than a cluster
}

// edgeCandidate is one collected dependency edge awaiting the final
// visibility filter.
type edgeCandidate struct {
	handle    Handle
	source    int
	dest      int
	inherited bool // every considered file pair was inherited on the dependee end
	scope     int  // scope the edge was collected in
}

type writer struct {
	tree *dirtree.Tree
	vis  *visibility
	reg  *Registry
	opts Options

	buf       bytes.Buffer
	scope     int
	drawn     map[int]drawnState
	edges     []edgeCandidate
	seenEdges map[string]bool
	skipped   []string
	emitted   int
}

// Write generates the DOT dependency graph centered on origin. The registry
// is shared across all graphs of a run so relation names stay stable; a nil
// registry gets a private one.
func Write(ctx context.Context, t *dirtree.Tree, origin *dirtree.Dir, reg *Registry, opts Options) (string, Stats, error) {
	if origin == nil {
		return "", Stats{}, ErrNilOrigin
	}
	if reg == nil {
		reg = NewRegistry()
	}
	opts = opts.withDefaults()

	w := &writer{
		tree:      t,
		vis:       resolve(t, origin, opts.SuccessorDepth, opts.AncestorDepth),
		reg:       reg,
		opts:      opts,
		scope:     topScope,
		drawn:     make(map[int]drawnState),
		seenEdges: make(map[string]bool),
	}

	w.header(origin)
	for _, id := range w.vis.roots {
		w.drawTree(ctx, t.Dir(id), true)
	}
	w.drawEdges()
	w.buf.WriteString("}\n")

	return w.buf.String(), Stats{
		Nodes:       len(w.drawn),
		Edges:       w.emitted,
		SkippedDirs: w.skipped,
	}, nil
}

func (w *writer) header(origin *dirtree.Dir) {
	fmt.Fprintf(&w.buf, "digraph %q {\n", origin.Name)
	if w.opts.Transparent {
		w.buf.WriteString("  bgcolor=\"transparent\";\n")
	}
	w.buf.WriteString("  compound=true\n")
	fmt.Fprintf(&w.buf, "  node [ fontsize=\"%d\", fontname=\"%s\"];\n", w.opts.FontSize, w.opts.FontName)
	fmt.Fprintf(&w.buf, "  edge [ labelfontsize=\"%d\", labelfontname=\"%s\"];\n", w.opts.FontSize, w.opts.FontName)
}

// drawTree emits the subtree rooted at dir. The successor limit is measured
// from the origin's level for every tree of the forest, so neighbors at the
// origin's depth truncate at the same horizon the origin does.
//
// A directory the resolver produced no property for must not be drawn;
// reaching one is reported through observability and the subtree is skipped.
func (w *writer) drawTree(ctx context.Context, dir *dirtree.Dir, isTreeRoot bool) {
	p, ok := w.vis.lookup(dir.ID)
	if !ok {
		w.skipped = append(w.skipped, dir.Path)
		observability.Graph().OnDirectorySkipped(ctx, dir.Path)
		return
	}

	switch {
	case !dir.IsCluster():
		if isTreeRoot {
			p.IsPeripheral = true
		}
		w.drawNode(dir, p)
		w.collectDependencies(ctx, dir, true)
	case w.vis.beyondSuccessorLimit(dir):
		p.IsTruncated = true
		if isTreeRoot {
			p.IsPeripheral = true
		}
		w.drawNode(dir, p)
		w.collectDependencies(ctx, dir, true)
	default:
		w.openCluster(dir, p)
		// Edges attached to a cluster belong to the scope enclosing it.
		w.collectDependencies(ctx, dir, false)
		prev := w.scope
		w.scope = dir.ID
		for _, child := range dir.Children {
			w.drawTree(ctx, w.tree.Dir(child), false)
		}
		w.scope = prev
		w.buf.WriteString("  }\n")
	}
}

func (w *writer) drawNode(dir *dirtree.Dir, p *Property) {
	id := NodeID(dir.ID)
	fmt.Fprintf(&w.buf, "  %s [shape=box, label=\"%s\", style=\"%s\", fillcolor=\"%s\", color=\"%s\", URL=\"%s%s\"];\n",
		id, dir.Name, borderStyle(p), backgroundColor(dir.Level), borderColor(p), id, w.opts.HTMLExtension)
	w.drawn[dir.ID] = drawnState{scope: w.scope, plain: true}
}

func (w *writer) openCluster(dir *dirtree.Dir, p *Property) {
	id := NodeID(dir.ID)
	fmt.Fprintf(&w.buf, "  subgraph cluster_%s {\n", id)
	fmt.Fprintf(&w.buf, "    graph [ bgcolor=\"%s\", pencolor=\"%s\", style=\"%s\", label=\"\", fontname=\"%s\", fontsize=\"%d\", URL=\"%s%s\"];\n",
		backgroundColor(dir.Level), borderColor(p), borderStyle(p), w.opts.FontName, w.opts.FontSize, id, w.opts.HTMLExtension)
	// The label node inside the cluster names it and serves as the endpoint
	// for edges attached to the cluster as a whole.
	fmt.Fprintf(&w.buf, "    %s [shape=plaintext, label=\"%s\"];\n", id, dir.Name)
	w.drawn[dir.ID] = drawnState{scope: w.scope, plain: false}
}

// collectDependencies records edge candidates for every dependee of dir.
// Dependencies onto an enclosing cluster are never drawn; dependencies fully
// inherited on the dependent end resurface on a child inside the cluster and
// are collapsed here. Each relation is collected at most once per graph.
func (w *writer) collectDependencies(ctx context.Context, dir *dirtree.Dir, isLeaf bool) {
	for _, u := range dir.UsedDirs() {
		dependee := w.tree.Dir(u.Dir())
		if w.tree.IsAncestorOf(dependee, dir) {
			continue
		}
		if !isLeaf && u.AllDependentsInherited() {
			continue
		}

		h := w.reg.FindOrCreate(ctx, dir.ID, dependee.ID, len(u.FilePairs()))
		rel := w.reg.Relation(h)
		if w.seenEdges[rel.Name] {
			continue
		}
		w.seenEdges[rel.Name] = true
		w.edges = append(w.edges, edgeCandidate{
			handle:    h,
			source:    dir.ID,
			dest:      dependee.ID,
			inherited: u.AllDependeesInherited(isLeaf),
			scope:     w.scope,
		})
	}
}

// drawEdges applies the final visibility filter and writes the surviving
// edges. An edge is kept when its destination was drawn as a plain node in
// the same scope it was collected in, or when the destination was drawn at
// all and the edge is either not fully inherited or points at a directory on
// the successor-depth border, where the summarized edge is the only one
// left to show.
func (w *writer) drawEdges() {
	for _, e := range w.edges {
		dst, ok := w.drawn[e.dest]
		if !ok {
			continue
		}
		sibling := dst.plain && dst.scope == e.scope
		if !sibling && e.inherited && !w.vis.atVisibilityBorder(w.tree.Dir(e.dest)) {
			continue
		}

		rel := w.reg.Relation(e.handle)
		fmt.Fprintf(&w.buf, "  %s->%s [headlabel=\"%d\", labeldistance=1.5",
			NodeID(e.source), NodeID(e.dest), rel.PairCount)
		if w.opts.LinkRelations {
			fmt.Fprintf(&w.buf, " headhref=\"%s%s\"", rel.Name, w.opts.HTMLExtension)
		}
		w.buf.WriteString("];\n")
		w.emitted++
	}
}
