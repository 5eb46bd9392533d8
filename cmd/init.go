package cmd

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fullstackdevtools/csvfetch/internal/config"
	"github.com/fullstackdevtools/csvfetch/internal/destination"
)

// askDir prompts for the destination directory. Tests replace it.
var askDir = func(def string) (string, error) {
	dir := def
	prompt := &survey.Input{
		Message: "Destination directory:",
		Default: def,
		Help:    "Downloaded files are written here. The directory is created if missing.",
	}
	err := survey.AskOne(prompt, &dir, survey.WithValidator(survey.Required))
	return dir, err
}

func newInitCmd(v *viper.Viper) *cobra.Command {
	var (
		forceInit   bool
		interactive bool
	)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize csvfetch configuration",
		Long: `Write a config file and create the destination directory.

Values come from --dir/--log-level, the CSVFETCH_* environment variables, or
an interactive prompt with --interactive.

Example:
  csvfetch init
  csvfetch init --dir ~/data/csv --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, v, forceInit, interactive)
		},
	}

	initCmd.Flags().BoolVar(&forceInit, "force", false, "Overwrite an existing config file")
	initCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for settings")

	return initCmd
}

func runInit(cmd *cobra.Command, v *viper.Viper, force, interactive bool) error {
	out := cmd.OutOrStdout()

	cfgPath, err := processConfigPath(v.GetString(keyConfig))
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgPath); err == nil && !force {
		return fmt.Errorf("config already exists at %s. Use --force to overwrite", cfgPath)
	}

	cfg := config.DefaultConfig()
	if dir := v.GetString(keyDir); dir != "" {
		cfg.Download.Dir = dir
	}
	if lvl := v.GetString(keyLogLevel); lvl != "" {
		cfg.Log.Level = lvl
	}

	if interactive {
		dir, err := askDir(cfg.Download.Dir)
		if err != nil {
			return fmt.Errorf("failed to read destination directory: %w", err)
		}
		cfg.Download.Dir = dir
	}

	cfg.Download.Dir, err = normalizePath(cfg.Download.Dir)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := config.Save(cfg, cfgPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	if err := destination.Ensure(cfg.Download.Dir); err != nil {
		return err
	}

	fmt.Fprintf(out, "Config written to %s\n", cfgPath)
	fmt.Fprintf(out, "Downloads will be saved in %s\n", cfg.Download.Dir)
	return nil
}
