package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docweaver/docweaver/pkg/depgraph"
	apperrors "github.com/docweaver/docweaver/pkg/errors"
	"github.com/docweaver/docweaver/pkg/render"
)

// newGraphCmd creates the "graph" command, which generates the dependency
// graph of a single directory.
func newGraphCmd(configPath *string) *cobra.Command {
	var (
		manifestPath  string
		outPath       string
		formatName    string
		succDepth     int
		ancDepth      int
		linkRelations bool
		transparent   bool
		noCache       bool
	)

	cmd := &cobra.Command{
		Use:   "graph <dir>",
		Short: "Generate the dependency graph of one directory",
		Long: `Generate the dependency graph of a single directory from the manifest.

The graph shows the directory's subtree down to --successor-depth, its
ancestry up to --ancestor-depth, and every directory it depends on within
those limits. Directories drawn incompletely are marked: dashed for
incomplete neighbors, red for truncated subtrees, grey for orphaned ones.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			overrideConfig(cmd, &cfg, manifestPath, succDepth, ancDepth, linkRelations, transparent)

			format, err := render.ParseFormat(formatName)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "--format")
			}

			gen, err := newGenerator(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer gen.Close()

			dir, ok := gen.tree.Lookup(args[0])
			if !ok {
				return apperrors.New(apperrors.ErrCodeDirectoryNotFound, "directory %q is not part of the manifest", args[0])
			}

			entry, cachedDOT, err := gen.dot(ctx, dir)
			if err != nil {
				return err
			}
			data, cachedArt, err := gen.renderArtifact(ctx, entry, format)
			if err != nil {
				return err
			}

			out := outPath
			if out == "" {
				out = filepath.Join(cfg.Output, artifactName(dir.ID, format))
			}
			if err := writeArtifact(out, data); err != nil {
				return err
			}

			cached := cachedDOT
			if format != render.FormatDOT {
				cached = cachedArt
			}
			printSuccess("Generated %s graph for %s", format, dir.Path)
			printStats(entry.Nodes, entry.Edges, cached)
			printFile(out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&manifestPath, "manifest", "m", "", "manifest file (overrides config)")
	f.StringVarP(&outPath, "out", "o", "", "output file (default <output>/<node>_dep.<format>)")
	f.StringVarP(&formatName, "format", "f", "svg", "output format: dot, svg or png")
	f.IntVar(&succDepth, "successor-depth", depgraph.DefaultSuccessorDepth, "levels of subdirectories to expand")
	f.IntVar(&ancDepth, "ancestor-depth", depgraph.DefaultAncestorDepth, "levels of parent directories to draw")
	f.BoolVar(&linkRelations, "link-relations", true, "hyperlink edges to relation pages")
	f.BoolVar(&transparent, "transparent", false, "transparent graph background")
	f.BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")
	return cmd
}

// overrideConfig applies explicitly set command flags on top of the loaded
// config. Unset flags leave the config values alone.
func overrideConfig(cmd *cobra.Command, cfg *Config, manifest string, succ, anc int, link, transparent bool) {
	flags := cmd.Flags()
	if flags.Changed("manifest") {
		cfg.Manifest = manifest
	}
	if flags.Changed("successor-depth") {
		cfg.Graph.SuccessorDepth = succ
	}
	if flags.Changed("ancestor-depth") {
		cfg.Graph.AncestorDepth = anc
	}
	if flags.Changed("link-relations") {
		cfg.Graph.LinkRelations = link
	}
	if flags.Changed("transparent") {
		cfg.Graph.Transparent = transparent
	}
}
