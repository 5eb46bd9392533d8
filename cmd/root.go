package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fullstackdevtools/csvfetch/pkg/errors"
)

const usageLine = "Usage: csvfetch <csv_url> [output_name]"

var (
	// Version info passed from main
	appVersion   string
	appGitCommit string
	appBuildTime string
)

// newRootCmd builds the command tree. Each call returns an independent tree
// with its own viper instance.
func newRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "csvfetch <csv_url> [output_name]",
		Short: "Download a CSV (or any file) into ~/Downloads/full_stack_dev_tools",
		Long: `csvfetch downloads a single file over HTTP(S) into a fixed local folder.

The file name is taken from output_name when given, otherwise from the last
path segment of the URL (query string removed, "download.csv" if empty).
Existing files are overwritten.

If the server answers 403 Forbidden (for example a private share link), the
URL is opened in the default browser so it can be downloaded manually.

Examples:
  csvfetch https://example.com/data/report.csv
  csvfetch 'https://example.com/export?id=7' renamed.csv`,
		Args:          validateFetchArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, v, args)
		},
	}

	addFetchFlags(rootCmd, v)

	rootCmd.AddCommand(newInitCmd(v))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func validateFetchArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return errors.New(usageLine)
	}
	return nil
}

// Execute runs the CLI and returns the process exit code.
func Execute(ctx context.Context, ver, commit, built string) int {
	appVersion = ver
	appGitCommit = commit
	appBuildTime = built

	return run(ctx, newRootCmd(), os.Args[1:])
}

func run(ctx context.Context, rootCmd *cobra.Command, args []string) int {
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	fmt.Fprintf(rootCmd.ErrOrStderr(), "\n%v\n\n", err)
	return 1
}

// ExitError carries a non-zero exit code without an extra message; the
// outcome has already been logged.
type ExitError struct {
	Code    int
	Outcome string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("download finished with outcome %s", e.Outcome)
}
