package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var activitiesCmd = &cobra.Command{
	Use:   "activities",
	Short: "List the activity catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		catalog, err := loadCatalog(cfg.OverridesFile)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		header := fmt.Sprintf("%-24s %-28s %-28s %5s %5s  %s", "ID", "NAME", "TOPIC", "GRADE", "TIERS", "POLICY")
		fmt.Fprintln(out, header)
		fmt.Fprintln(out, strings.Repeat("─", len(header)))

		byTopic := catalog.ByTopic()
		for _, t := range catalog.Topics() {
			for _, a := range byTopic[t] {
				fmt.Fprintf(out, "%-24s %-28s %-28s %5d %5d  %s\n",
					a.ID, a.Name, t.DisplayName(), a.Grade, a.MaxTier, a.Policy)
			}
		}
		return nil
	},
}
