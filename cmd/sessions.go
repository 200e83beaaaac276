package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrills/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect and clean up stored sessions (sqlite)",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List live sessions, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openAdminStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		entries, err := st.Entries(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No live sessions.")
			return nil
		}

		header := fmt.Sprintf("%-38s %-36s %7s  %-19s  %-19s", "LEARNER", "KEY", "BYTES", "UPDATED", "EXPIRES")
		fmt.Fprintln(out, header)
		fmt.Fprintln(out, strings.Repeat("─", len(header)))
		for _, e := range entries {
			expires := "never"
			if !e.ExpiresAt.IsZero() {
				expires = e.ExpiresAt.Local().Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(out, "%-38s %-36s %7d  %-19s  %-19s\n",
				e.LearnerID, e.Key, e.Size,
				e.UpdatedAt.Local().Format("2006-01-02 15:04:05"), expires)
		}
		fmt.Fprintf(out, "\n%d sessions\n", len(entries))
		return nil
	},
}

var sessionsPurgeCmd = &cobra.Command{
	Use:   "purge <learner>",
	Short: "Delete every session of one learner",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openAdminStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.Purge(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "No sessions for learner %q.\n", args[0])
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d values for learner %q.\n", n, args[0])
		return nil
	},
}

var sessionsSweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete expired sessions now",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openAdminStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.Sweep(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Swept %d expired values.\n", n)
		return nil
	},
}

func init() {
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsPurgeCmd)
	sessionsCmd.AddCommand(sessionsSweepCmd)
}

// openAdminStore opens the sqlite store regardless of the configured
// backend; the memory backend has nothing to inspect.
func openAdminStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return openStore(cfg)
}
