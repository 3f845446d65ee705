// Package depgraph generates bounded directory-dependency graphs in
// Graphviz DOT format.
//
// # Overview
//
// The full dependency graph of a real project is unbounded for documentation
// purposes: drawing one directory would pull in the whole ancestry and every
// transitive dependee subtree. This package deterministically selects a
// depth-limited subset around one origin directory and annotates every
// selected directory with the reason it is shown incompletely.
//
// Generation is a three-step pass per directory:
//
//  1. Resolve visibility: collect the origin's successors, the dependees
//     reachable within the ancestor limit, and the forest of tree roots to
//     render; produce a draw property per visible directory.
//  2. Draw the forest: clusters for directories whose children are within
//     the successor limit, single truncated nodes beyond it, plain nodes for
//     leaves; collect dependency-edge candidates along the way.
//  3. Filter and write edges, collapsing inherited duplicates so a
//     dependency appears once per graph at the most specific drawn level.
//
// Edge identities are shared through a [Registry] so every graph of a
// documentation run links the same directory pair to the same relation page.
//
// # Basic Usage
//
//	reg := depgraph.NewRegistry()
//	dot, stats, err := depgraph.Write(ctx, tree, dir, reg, depgraph.Options{
//		SuccessorDepth: 1,
//		AncestorDepth:  1,
//		LinkRelations:  true,
//	})
//
// The DOT text is consumed by Graphviz; see the render package for
// rasterization helpers.
package depgraph
