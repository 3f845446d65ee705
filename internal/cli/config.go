package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/docweaver/docweaver/pkg/cache"
	"github.com/docweaver/docweaver/pkg/depgraph"
	apperrors "github.com/docweaver/docweaver/pkg/errors"
)

// defaultConfigFile is picked up from the working directory when --config is
// not given.
const defaultConfigFile = "docweaver.toml"

// Config is the TOML configuration of a documentation project.
type Config struct {
	// Manifest is the path to the JSON dependency manifest.
	Manifest string `toml:"manifest"`

	// Output is the directory generated artifacts are written to.
	Output string `toml:"output"`

	Graph GraphConfig `toml:"graph"`
	Cache CacheConfig `toml:"cache"`
}

// GraphConfig holds the graph generation options.
type GraphConfig struct {
	SuccessorDepth int    `toml:"successor_depth"`
	AncestorDepth  int    `toml:"ancestor_depth"`
	LinkRelations  bool   `toml:"link_relations"`
	Transparent    bool   `toml:"transparent"`
	FontName       string `toml:"font_name"`
	FontSize       int    `toml:"font_size"`
}

// CacheConfig selects and configures the artifact cache backend.
type CacheConfig struct {
	// Backend is one of "file", "redis" or "none".
	Backend string `toml:"backend"`

	// Dir overrides the file backend's directory. Defaults to the per-user
	// cache directory.
	Dir string `toml:"dir"`

	// RedisAddr is the address of the redis backend.
	RedisAddr string `toml:"redis_addr"`
}

func defaultConfig() Config {
	return Config{
		Manifest: "deps.json",
		Output:   "docs/graphs",
		Graph: GraphConfig{
			SuccessorDepth: depgraph.DefaultSuccessorDepth,
			AncestorDepth:  depgraph.DefaultAncestorDepth,
			LinkRelations:  true,
			FontName:       depgraph.DefaultFontName,
			FontSize:       depgraph.DefaultFontSize,
		},
		Cache: CacheConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
		},
	}
}

// loadConfig reads the TOML config at path on top of the defaults. An empty
// path falls back to docweaver.toml in the working directory; a missing
// default file is not an error, a missing explicit one is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if _, err := os.Stat(path); err != nil {
		if explicit {
			return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "config file %s", path)
		}
		return cfg, nil
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case "file", "redis", "none":
	default:
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown cache backend %q (want file, redis or none)", c.Cache.Backend)
	}
	if c.Manifest == "" {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "manifest path must not be empty")
	}
	return nil
}

// graphOptions maps the config onto depgraph options.
func (c Config) graphOptions() depgraph.Options {
	return depgraph.Options{
		SuccessorDepth: c.Graph.SuccessorDepth,
		AncestorDepth:  c.Graph.AncestorDepth,
		LinkRelations:  c.Graph.LinkRelations,
		Transparent:    c.Graph.Transparent,
		FontName:       c.Graph.FontName,
		FontSize:       c.Graph.FontSize,
	}
}

// cacheKeyOpts maps the config onto the cache key options. Everything that
// changes the generated output must be part of the key.
func (c Config) cacheKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		SuccessorDepth: c.Graph.SuccessorDepth,
		AncestorDepth:  c.Graph.AncestorDepth,
		LinkRelations:  c.Graph.LinkRelations,
		Transparent:    c.Graph.Transparent,
		FontName:       c.Graph.FontName,
		FontSize:       c.Graph.FontSize,
	}
}

// open creates the configured cache backend.
func (c CacheConfig) open(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, c.RedisAddr)
	default:
		dir := c.Dir
		if dir == "" {
			var err error
			if dir, err = defaultCacheDir(); err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	}
}

// defaultCacheDir returns the per-user cache directory for docweaver.
func defaultCacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "docweaver"), nil
}
