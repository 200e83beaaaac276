package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrills/internal/app"
	"github.com/abhisek/mathdrills/internal/screen"
)

// runApp builds dependencies and launches the TUI. Logs go to the configured
// log file, or nowhere, so they never draw over the alt screen.
func runApp(cmd *cobra.Command) error {
	d, err := buildDeps(cmd.Context(), cmd, io.Discard)
	if err != nil {
		return err
	}
	defer d.Close()

	learner, _ := cmd.Flags().GetString("learner")
	if learner == "" {
		return fmt.Errorf("--learner must not be empty")
	}

	return app.Run(&screen.Env{
		Catalog:   d.catalog,
		Backend:   d.backend,
		LearnerID: learner,
		Tutor:     d.tutor,
	})
}
