package depgraph

// Property annotates one directory for a single graph generation. Properties
// are computed fresh per graph and explain to the reader why a directory is
// drawn the way it is.
type Property struct {
	// IsOriginal marks the directory the graph is generated for.
	IsOriginal bool

	// IsIncomplete marks a directory whose full successor set is not
	// guaranteed to be shown (ancestors and neighbors of the origin).
	IsIncomplete bool

	// IsOrphaned marks a directory whose parent is not drawn because the
	// ancestor limit was reached.
	IsOrphaned bool

	// IsTruncated marks a cluster whose children are not drawn because the
	// successor limit was reached. Only set on directories with children.
	IsTruncated bool

	// IsPeripheral marks a directory drawn in isolation: neither its
	// ancestors nor any of its own successors are drawn.
	IsPeripheral bool
}
