package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/docweaver/docweaver/pkg/cache"
	"github.com/docweaver/docweaver/pkg/depgraph"
	"github.com/docweaver/docweaver/pkg/dirtree"
	apperrors "github.com/docweaver/docweaver/pkg/errors"
	"github.com/docweaver/docweaver/pkg/observability"
	"github.com/docweaver/docweaver/pkg/render"
)

// generator bundles the loaded directory tree with the run-wide relation
// registry and the artifact cache. One generator spans one manifest load;
// the graph, generate and serve commands all run through it.
type generator struct {
	cfg          Config
	tree         *dirtree.Tree
	manifestHash string
	reg          *depgraph.Registry
	cache        cache.Cache
	logger       *log.Logger
}

// newGenerator loads the manifest, builds the directory tree and opens the
// configured cache backend. An unreachable cache backend degrades to no
// caching instead of failing the run.
func newGenerator(ctx context.Context, cfg Config, noCache bool) (*generator, error) {
	logger := loggerFromContext(ctx)

	raw, err := os.ReadFile(cfg.Manifest)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "read manifest %s", cfg.Manifest)
	}
	m, err := dirtree.ReadManifest(bytes.NewReader(raw))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidManifest, err, "manifest %s", cfg.Manifest)
	}
	tree, err := m.BuildTree()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidManifest, err, "manifest %s", cfg.Manifest)
	}
	logger.Debug("manifest loaded", "files", len(m.Files), "deps", len(m.Dependencies), "dirs", tree.Len())

	c := cache.NewNullCache()
	if !noCache {
		backend, err := cfg.Cache.open(ctx)
		if err != nil {
			printWarning("Cache unavailable, continuing without: %v", err)
		} else {
			c = backend
		}
	}

	return &generator{
		cfg:          cfg,
		tree:         tree,
		manifestHash: cache.Hash(raw),
		reg:          depgraph.NewRegistry(),
		cache:        c,
		logger:       logger,
	}, nil
}

// Close releases the cache backend.
func (g *generator) Close() {
	if err := g.cache.Close(); err != nil {
		g.logger.Warn("close cache", "err", err)
	}
}

// dotEntry is one generated graph in its cacheable form.
type dotEntry struct {
	DOT   string `json:"dot"`
	Nodes int    `json:"nodes"`
	Edges int    `json:"edges"`
}

// build generates the DOT graph of one directory, bypassing the graph cache.
// Whole-run generation uses it so every graph passes through the relation
// registry and the registry snapshot written at the end is complete.
func (g *generator) build(ctx context.Context, dir *dirtree.Dir) (dotEntry, error) {
	start := time.Now()
	observability.Graph().OnGraphStart(ctx, dir.Path)
	dot, stats, err := depgraph.Write(ctx, g.tree, dir, g.reg, g.cfg.graphOptions())
	observability.Graph().OnGraphComplete(ctx, dir.Path, stats.Nodes, stats.Edges, time.Since(start), err)
	if err != nil {
		return dotEntry{}, apperrors.Wrap(apperrors.ErrCodeInternal, err, "graph %s", dir.Path)
	}
	return dotEntry{DOT: dot, Nodes: stats.Nodes, Edges: stats.Edges}, nil
}

// dot returns the DOT graph of one directory, served from the cache when the
// manifest and generation options are unchanged.
func (g *generator) dot(ctx context.Context, dir *dirtree.Dir) (dotEntry, bool, error) {
	key := cache.GraphKey(g.manifestHash, dir.Path, g.cfg.cacheKeyOpts())
	if raw, ok, err := g.cache.Get(ctx, key); err == nil && ok {
		var entry dotEntry
		if json.Unmarshal(raw, &entry) == nil {
			observability.Cache().OnCacheHit(ctx, "graph")
			return entry, true, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	entry, err := g.build(ctx, dir)
	if err != nil {
		return dotEntry{}, false, err
	}
	if raw, err := json.Marshal(entry); err == nil {
		if err := g.cache.Set(ctx, key, raw, 0); err == nil {
			observability.Cache().OnCacheSet(ctx, "graph", len(raw))
		}
	}
	return entry, false, nil
}

// renderArtifact rasterizes a generated graph into the requested format. DOT
// passes through untouched; SVG and PNG are cached keyed by the DOT content,
// since Graphviz dominates the runtime of a documentation build.
func (g *generator) renderArtifact(ctx context.Context, entry dotEntry, format render.Format) ([]byte, bool, error) {
	if format == render.FormatDOT {
		return []byte(entry.DOT), false, nil
	}

	key := cache.ArtifactKey(cache.Hash([]byte(entry.DOT)), string(format))
	if data, ok, err := g.cache.Get(ctx, key); err == nil && ok {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return data, true, nil
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	data, err := render.Render(ctx, entry.DOT, format)
	if err != nil {
		return nil, false, apperrors.Wrap(apperrors.ErrCodeRender, err, "render %s", format)
	}
	if err := g.cache.Set(ctx, key, data, 0); err == nil {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

// artifactName returns the output file name of one directory's graph. The
// base name matches the graph's node ID, so node URLs and artifact files
// line up without a mapping table.
func artifactName(dirID int, format render.Format) string {
	return depgraph.NodeID(dirID) + "_dep" + format.Ext()
}

// writeArtifact writes one artifact, creating parent directories as needed.
func writeArtifact(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
