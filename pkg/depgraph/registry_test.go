package depgraph

import (
	"context"
	"sync"
	"testing"

	"github.com/docweaver/docweaver/pkg/observability"
)

func TestRelationName(t *testing.T) {
	if got := RelationName(1, 42); got != "dir_000001_000042" {
		t.Errorf("RelationName(1, 42) = %q, want dir_000001_000042", got)
	}
	// Direction matters.
	if RelationName(1, 2) == RelationName(2, 1) {
		t.Error("reversed pairs must have distinct names")
	}
}

func TestFindOrCreateIdempotent(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	h1 := reg.FindOrCreate(ctx, 3, 7, 2)
	h2 := reg.FindOrCreate(ctx, 3, 7, 99)
	if h1 != h2 {
		t.Fatalf("handles differ: %d vs %d", h1, h2)
	}
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", reg.Len())
	}

	rel := reg.Relation(h1)
	if rel.Name != "dir_000003_000007" {
		t.Errorf("Name = %q", rel.Name)
	}
	// The pair count from the first sighting sticks.
	if rel.PairCount != 2 {
		t.Errorf("PairCount = %d, want 2", rel.PairCount)
	}
	if rel.Dependent != 3 || rel.Dependee != 7 {
		t.Errorf("endpoints = %d->%d, want 3->7", rel.Dependent, rel.Dependee)
	}
}

func TestFindOrCreateDistinctPairs(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	a := reg.FindOrCreate(ctx, 1, 2, 1)
	b := reg.FindOrCreate(ctx, 2, 1, 1)
	if a == b {
		t.Error("reversed pairs must get distinct handles")
	}
	if reg.Len() != 2 {
		t.Errorf("Len() = %d, want 2", reg.Len())
	}
}

func TestRegistryConcurrent(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()

	const workers = 16
	handles := make([]Handle, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			handles[i] = reg.FindOrCreate(ctx, 5, 9, 4)
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		if handles[i] != handles[0] {
			t.Fatalf("handle %d = %d, want %d", i, handles[i], handles[0])
		}
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
}

func TestRelationsSnapshot(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry()
	reg.FindOrCreate(ctx, 0, 1, 1)
	reg.FindOrCreate(ctx, 0, 2, 1)

	rels := reg.Relations()
	if len(rels) != 2 {
		t.Fatalf("len = %d, want 2", len(rels))
	}
	// Creation order is preserved.
	if rels[0].Name != "dir_000000_000001" || rels[1].Name != "dir_000000_000002" {
		t.Errorf("order = %q, %q", rels[0].Name, rels[1].Name)
	}

	rels[0].PairCount = 999
	if reg.Relation(0).PairCount == 999 {
		t.Error("Relations must return a copy")
	}
}

type relationRecorder struct {
	observability.NoopGraphHooks

	mu    sync.Mutex
	names []string
}

func (r *relationRecorder) OnRelationCreated(_ context.Context, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)
}

func TestFindOrCreateEmitsHook(t *testing.T) {
	rec := &relationRecorder{}
	observability.SetGraphHooks(rec)
	defer observability.Reset()

	ctx := context.Background()
	reg := NewRegistry()
	reg.FindOrCreate(ctx, 1, 2, 1)
	reg.FindOrCreate(ctx, 1, 2, 1)

	if len(rec.names) != 1 || rec.names[0] != "dir_000001_000002" {
		t.Errorf("hook names = %v, want one dir_000001_000002", rec.names)
	}
}
