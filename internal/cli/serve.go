package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	apperrors "github.com/docweaver/docweaver/pkg/errors"
	"github.com/docweaver/docweaver/pkg/render"
)

// newServeCmd creates the "serve" command, which serves dependency graphs
// over HTTP during documentation authoring.
func newServeCmd(configPath *string) *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve dependency graphs over HTTP",
		Long: `Serve dependency graphs for local documentation authoring.

GET /graph/<dir> renders the directory's graph as SVG on demand; all other
paths are served from the output directory, so previously generated
artifacts and relations.json remain reachable.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			gen, err := newGenerator(ctx, cfg, noCache)
			if err != nil {
				return err
			}
			defer gen.Close()

			r := chi.NewRouter()
			r.Use(middleware.RequestID)
			r.Use(middleware.Recoverer)
			r.Use(requestLogger(logger))
			r.Get("/graph/*", gen.handleGraph)
			r.Handle("/*", http.FileServer(http.Dir(cfg.Output)))

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() { errCh <- srv.ListenAndServe() }()

			printInfo("Serving on %s", StyleLink.Render("http://"+addr))
			printNextStep("Open a directory graph", fmt.Sprintf("http://%s/graph/<dir>", addr))

			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = srv.Shutdown(shutdownCtx)
				return ctx.Err()
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the artifact cache")
	return cmd
}

// handleGraph renders the SVG graph of the requested directory on demand.
func (g *generator) handleGraph(w http.ResponseWriter, r *http.Request) {
	dirPath := chi.URLParam(r, "*")
	dir, ok := g.tree.Lookup(dirPath)
	if !ok {
		writeHTTPError(w, apperrors.New(apperrors.ErrCodeDirectoryNotFound, "directory %q is not part of the manifest", dirPath))
		return
	}

	entry, _, err := g.dot(r.Context(), dir)
	if err != nil {
		writeHTTPError(w, err)
		return
	}
	data, _, err := g.renderArtifact(r.Context(), entry, render.FormatSVG)
	if err != nil {
		writeHTTPError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(data)
}

// writeHTTPError maps structured error codes onto HTTP statuses.
func writeHTTPError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeDirectoryNotFound, apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeInvalidManifest, apperrors.ErrCodeInvalidPath, apperrors.ErrCodeInvalidFormat, apperrors.ErrCodeInvalidConfig:
		status = http.StatusBadRequest
	}
	http.Error(w, apperrors.UserMessage(err), status)
}

// requestLogger logs one line per request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			logger.Debug("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start).Round(time.Millisecond))
		})
	}
}
