package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vtcode/vtcode/internal/updateport"
)

// updateRepo is the GitHub repository checked for new releases. It is a var
// rather than a const so a fork can override it via ldflags alongside
// version/commit/date.
var updateRepo = "vtcode-dev/vtcode"

// buildUpdateCmd reports whether a newer release is available and, when one
// is found, explains how to install it (binary replacement is left to a
// real installer, not this build).
func buildUpdateCmd() *cobra.Command {
	var checkOnly bool
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Check for and report newer vtcode releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			updater := updateport.Updater(&updateport.GitHubReleaseUpdater{
				Repo:           updateRepo,
				CurrentVersion: version,
			})

			latest, hasUpdate, err := updater.CheckLatest(cmd.Context())
			if err != nil {
				return fmt.Errorf("check latest release: %w", err)
			}

			out := cmd.OutOrStdout()
			if !hasUpdate {
				fmt.Fprintf(out, "vtcode %s is up to date.\n", version)
				return nil
			}
			fmt.Fprintf(out, "A newer release is available: %s (running %s)\n", latest, version)
			if checkOnly {
				return nil
			}
			if err := updater.Apply(cmd.Context(), latest); err != nil {
				fmt.Fprintln(out, err)
				return nil
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&checkOnly, "check-only", false, "Only report whether an update is available, do not attempt to apply it")
	return cmd
}
