package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/docweaver/docweaver/pkg/depgraph"
	apperrors "github.com/docweaver/docweaver/pkg/errors"
	"github.com/docweaver/docweaver/pkg/render"
)

// newGenerateCmd creates the "generate" command, which generates dependency
// graphs for every directory of the manifest.
func newGenerateCmd(configPath *string) *cobra.Command {
	var (
		manifestPath string
		outputDir    string
		formatName   string
		noCache      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate dependency graphs for every directory of the manifest",
		Long: `Generate dependency graphs for all directories in one run.

Directories whose graph would show nothing but themselves are skipped.
All graphs share one relation registry, so edges pointing at the same
directory pair carry the same hyperlink target in every graph; the
registry snapshot is written to relations.json next to the artifacts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("manifest") {
				cfg.Manifest = manifestPath
			}
			if cmd.Flags().Changed("output") {
				cfg.Output = outputDir
			}

			format, err := render.ParseFormat(formatName)
			if err != nil {
				return apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "--format")
			}

			gen, err := newGenerator(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer gen.Close()

			runID := uuid.NewString()[:8]
			logger.Debug("generation run", "id", runID, "format", format)

			prog := newProgress(logger)
			sp := newSpinner(ctx, "Generating graphs")
			sp.Start()

			var generated, cached, skipped int
			for _, dir := range gen.tree.Dirs() {
				if err := ctx.Err(); err != nil {
					sp.Stop()
					return err
				}
				if dir.DepGraphIsTrivial() {
					skipped++
					continue
				}

				sp.SetMessage(fmt.Sprintf("Generating %s", dir.Path))
				entry, err := gen.build(ctx, dir)
				if err != nil {
					sp.StopWithError(fmt.Sprintf("Graph for %s failed", dir.Path))
					return err
				}
				data, hit, err := gen.renderArtifact(ctx, entry, format)
				if err != nil {
					sp.StopWithError(fmt.Sprintf("Render for %s failed", dir.Path))
					return err
				}
				if hit {
					cached++
				}
				if err := writeArtifact(filepath.Join(cfg.Output, artifactName(dir.ID, format)), data); err != nil {
					sp.Stop()
					return err
				}
				generated++
			}

			if err := writeRelations(filepath.Join(cfg.Output, "relations.json"), gen.reg); err != nil {
				sp.Stop()
				return err
			}
			sp.Stop()

			prog.done(fmt.Sprintf("Generated %d graphs", generated))
			printSuccess("Generated %d graphs (%d skipped as trivial)", generated, skipped)
			printDetail("%d rendered from cache, %d relations", cached, gen.reg.Len())
			printFile(cfg.Output)
			printNextStep("Serve the graphs", "docweaver serve")
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&manifestPath, "manifest", "m", "", "manifest file (overrides config)")
	f.StringVar(&outputDir, "output", "", "output directory (overrides config)")
	f.StringVarP(&formatName, "format", "f", "svg", "output format: dot, svg or png")
	f.BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")
	return cmd
}

// writeRelations dumps the run's relation registry for downstream page
// generators.
func writeRelations(path string, reg *depgraph.Registry) error {
	raw, err := json.MarshalIndent(reg.Relations(), "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}
