package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrills/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web version",
	Long: `Serve the activities over HTTP. Each browser gets its own learner cookie;
sessions live in the configured store and expire after MATHDRILLS_SESSION_TTL.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address (overrides MATHDRILLS_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d, err := buildDeps(ctx, cmd, os.Stderr)
	if err != nil {
		return err
	}
	defer d.Close()

	opts := []web.Option{
		web.WithLogger(d.logger),
		web.WithTutor(d.tutor),
		web.WithCookie(d.cfg.Cookie.Name, d.cfg.Cookie.Secret, d.cfg.Cookie.Secure),
	}
	if d.store != nil {
		opts = append(opts, web.WithHealthCheck(func(ctx context.Context) error {
			return d.store.DB().PingContext(ctx)
		}))
	}
	if d.cfg.Cookie.Secret == "" {
		d.logger.Warn("MATHDRILLS_COOKIE_SECRET not set; learner cookies will not survive a restart")
	}

	srv, err := web.New(d.catalog, d.backend, opts...)
	if err != nil {
		return fmt.Errorf("web server: %w", err)
	}

	go web.RunSweeper(ctx, d.sweeper(), d.cfg.SweepInterval, d.logger)
	return web.ListenAndServe(ctx, d.cfg.Addr, srv.Routes(), d.logger)
}
