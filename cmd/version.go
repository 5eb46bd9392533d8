package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newVersionCmd shows version information
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version information for csvfetch.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "csvfetch Version: %s\n", appVersion)
			fmt.Fprintf(out, "Git Commit: %s\n", appGitCommit)
			fmt.Fprintf(out, "Build Time: %s\n", appBuildTime)
		},
	}
}
