package depgraph

import (
	"context"
	"fmt"
	"sync"

	"github.com/docweaver/docweaver/pkg/observability"
)

// Handle is a stable reference to a [Relation] inside a [Registry]. Handles
// stay valid for the lifetime of the registry even as it grows.
type Handle int

// Relation is a named, directed dependency between two directories. Its name
// is a deterministic function of the endpoint ordinals, so every graph of a
// run that shows the same directory pair links to the same relation page.
type Relation struct {
	Name      string
	Dependent int
	Dependee  int
	PairCount int
}

// RelationName derives the canonical relation name from the endpoint
// ordinals. The name doubles as the base name of the relation's
// documentation page.
func RelationName(dependent, dependee int) string {
	return fmt.Sprintf("dir_%06d_%06d", dependent, dependee)
}

// Registry owns the relations of one documentation run. Relations are stored
// by value in an append-only arena; the name index maps back to handles.
// Safe for concurrent use.
type Registry struct {
	mu      sync.Mutex
	records []Relation
	byName  map[string]Handle
}

// NewRegistry creates an empty relation registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Handle)}
}

// FindOrCreate returns the handle for the ordered directory pair, creating
// the relation on first sight. The pair count is recorded at creation time
// and left untouched by later lookups.
func (r *Registry) FindOrCreate(ctx context.Context, dependent, dependee, pairCount int) Handle {
	name := RelationName(dependent, dependee)

	r.mu.Lock()
	if h, ok := r.byName[name]; ok {
		r.mu.Unlock()
		return h
	}
	h := Handle(len(r.records))
	r.records = append(r.records, Relation{
		Name:      name,
		Dependent: dependent,
		Dependee:  dependee,
		PairCount: pairCount,
	})
	r.byName[name] = h
	r.mu.Unlock()

	observability.Graph().OnRelationCreated(ctx, name)
	return h
}

// Relation returns a copy of the record behind the handle.
func (r *Registry) Relation(h Handle) Relation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[h]
}

// Len returns the number of registered relations.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.records)
}

// Relations returns a copy of all records in creation order, for emitting
// per-relation documentation pages after all graphs are generated.
func (r *Registry) Relations() []Relation {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Relation, len(r.records))
	copy(out, r.records)
	return out
}
