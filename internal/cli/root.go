package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/docweaver/docweaver/pkg/buildinfo"
	"github.com/docweaver/docweaver/pkg/observability"
)

// Execute runs the docweaver CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (graph,
// generate, serve, cache), configures logging based on the --verbose flag,
// and executes the command tree under the given context so an interrupt
// cancels in-flight generation.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext; graph and cache events are forwarded to it through the
// observability hooks.
func Execute(ctx context.Context) error {
	var (
		verbose    bool
		configPath string
	)

	root := &cobra.Command{
		Use:          "docweaver",
		Short:        "DocWeaver generates directory dependency graphs for documentation",
		Long: `DocWeaver turns a project manifest (source files plus file-level
dependencies) into per-directory dependency graphs: depth-limited DOT, SVG
or PNG diagrams with stable hyperlink targets, ready for embedding into
generated documentation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			observability.SetGraphHooks(&logGraphHooks{logger: logger})
			observability.SetCacheHooks(&logCacheHooks{logger: logger})
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default docweaver.toml if present)")

	root.AddCommand(newGraphCmd(&configPath))
	root.AddCommand(newGenerateCmd(&configPath))
	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newCacheCmd(&configPath))

	return root.ExecuteContext(ctx)
}
