package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/segviz/segviz/internal/server"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		ttl     time.Duration
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the scene manifest HTTP API",
		Long: `Run the scene manifest HTTP API.

Uploaded manifests are held in memory and served until they expire.

Endpoints:
  POST   /v1/scenes                  upload a manifest
  GET    /v1/scenes/{id}             scene summary
  DELETE /v1/scenes/{id}             remove a scene
  GET    /v1/scenes/{id}/plan.json   resolved scene plan
  GET    /v1/scenes/{id}/legend.svg  color legend
  GET    /v1/scenes/{id}/figures.svg figure map
  GET    /healthz                    liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, ttl, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().DurationVar(&ttl, "ttl", server.DefaultTTL, "how long uploaded scenes are kept")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")

	return cmd
}

// runServe starts the HTTP server and blocks until the context is
// cancelled or the listener fails.
func (c *CLI) runServe(ctx context.Context, addr string, ttl time.Duration, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(nil, runner, c.Logger)
	srv.TTL = ttl
	srv.StartCleanup(ctx, time.Hour)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	httpSrv := &http.Server{
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.Serve(ln)
	}()

	printSuccess("Listening on %s", ln.Addr())
	printDetail("scene ttl %s", ttl)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("server stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
