package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "graph:abc")
	if err != nil || hit {
		t.Fatalf("Get before Set = hit=%v err=%v, want miss", hit, err)
	}

	want := []byte("digraph \"src\" {}\n")
	if err := c.Set(ctx, "graph:abc", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, hit, err := c.Get(ctx, "graph:abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !hit {
		t.Fatal("Get after Set should hit")
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}

	if err := c.Delete(ctx, "graph:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "graph:abc"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestFileCacheExpiration(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	// Already-expired entry behaves as a miss.
	if err := c.Set(ctx, "key", []byte("value"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should be a miss")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestGraphKey(t *testing.T) {
	base := GraphKeyOpts{SuccessorDepth: 1, AncestorDepth: 1}

	k1 := GraphKey("mh", "src/core", base)
	if k1 != GraphKey("mh", "src/core", base) {
		t.Error("GraphKey should be deterministic")
	}
	if k1 == GraphKey("mh", "src/util", base) {
		t.Error("different directories should produce different keys")
	}
	if k1 == GraphKey("other", "src/core", base) {
		t.Error("different manifest hashes should produce different keys")
	}

	deeper := base
	deeper.SuccessorDepth = 2
	if k1 == GraphKey("mh", "src/core", deeper) {
		t.Error("different options should produce different keys")
	}
}

func TestArtifactKey(t *testing.T) {
	if ArtifactKey("h1", "svg") == ArtifactKey("h1", "png") {
		t.Error("different formats should produce different keys")
	}
	if ArtifactKey("h1", "svg") == ArtifactKey("h2", "svg") {
		t.Error("different DOT hashes should produce different keys")
	}
}
