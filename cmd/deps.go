package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrills/internal/activity"
	"github.com/abhisek/mathdrills/internal/config"
	"github.com/abhisek/mathdrills/internal/llm"
	"github.com/abhisek/mathdrills/internal/logging"
	"github.com/abhisek/mathdrills/internal/session"
	"github.com/abhisek/mathdrills/internal/store"
	"github.com/abhisek/mathdrills/internal/tutor"
	"github.com/abhisek/mathdrills/internal/web"
)

// deps is everything the TUI and the web server share.
type deps struct {
	cfg     config.Config
	logger  *slog.Logger
	catalog *activity.Catalog
	backend session.Backend
	store   *store.Store // nil for the memory backend
	tutor   *tutor.Explainer

	closers []func() error
}

// loadConfig reads the environment and applies the persistent flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		cfg.DBPath = v
	}
	if v, _ := cmd.Flags().GetString("store"); v != "" {
		cfg.Store = v
	}
	if v, _ := cmd.Flags().GetString("config"); v != "" {
		cfg.OverridesFile = v
	}
	if f := cmd.Flags().Lookup("addr"); f != nil && f.Changed {
		cfg.Addr = f.Value.String()
	}
	return cfg, cfg.Validate()
}

// loadCatalog returns the default catalog with the overrides file applied.
func loadCatalog(path string) (*activity.Catalog, error) {
	catalog := activity.Default()
	if path == "" {
		return catalog, nil
	}
	overrides, err := config.LoadOverrides(path)
	if err != nil {
		return nil, err
	}
	if err := catalog.ApplyOverrides(overrides); err != nil {
		return nil, fmt.Errorf("apply overrides: %w", err)
	}
	return catalog, nil
}

// resolveDBPath returns the database path from config, or the default XDG
// path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath, store.WithTTL(cfg.SessionTTL))
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// buildDeps wires config, logging, the catalog, the session backend and the
// tutor. logOut receives log lines when no log file is configured.
func buildDeps(ctx context.Context, cmd *cobra.Command, logOut io.Writer) (*deps, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	d := &deps{cfg: cfg}
	logger, closeLog, err := logging.New(cfg.Log, logOut)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	d.logger = logger
	d.closers = append(d.closers, closeLog)

	if d.catalog, err = loadCatalog(cfg.OverridesFile); err != nil {
		d.Close()
		return nil, err
	}

	switch cfg.Store {
	case config.StoreSQLite:
		st, err := openStore(cfg)
		if err != nil {
			d.Close()
			return nil, err
		}
		d.store, d.backend = st, st
		d.closers = append(d.closers, st.Close)
	default:
		d.backend = session.NewMemoryBackend(cfg.SessionTTL)
	}

	provider, err := llm.New(ctx, cfg.LLM, logger)
	if err != nil {
		// The tutor falls back to built-in explanations.
		logger.Warn("LLM provider not configured", "error", err)
	}
	d.tutor = tutor.New(provider, tutor.WithTimeout(cfg.LLM.Timeout), tutor.WithLogger(logger))

	logger.Debug("dependencies ready",
		"store", cfg.Store,
		"activities", len(d.catalog.All()),
		"tutor", d.tutor.Enabled(),
	)
	return d, nil
}

// sweeper returns the backend's expiry sweeper.
func (d *deps) sweeper() web.Sweeper {
	if d.store != nil {
		return d.store
	}
	return d.backend.(*session.MemoryBackend)
}

// Close releases the store and the log file, newest first.
func (d *deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		errs = append(errs, d.closers[i]())
	}
	return errors.Join(errs...)
}
