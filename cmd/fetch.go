package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fullstackdevtools/csvfetch/internal/config"
	"github.com/fullstackdevtools/csvfetch/internal/destination"
	"github.com/fullstackdevtools/csvfetch/internal/fetcher"
	"github.com/fullstackdevtools/csvfetch/pkg/errors"
	"github.com/fullstackdevtools/csvfetch/pkg/logtrace"
)

// Viper keys. Each maps to a flag of the same name and a CSVFETCH_* variable.
const (
	keyConfig    = "config"
	keyDir       = "dir"
	keyTimeout   = "timeout"
	keyUserAgent = "user-agent"
	keyLogLevel  = "log-level"
	keyNoBrowser = "no-browser"
	keyStrict    = "strict"
)

// strictExitCode is returned with --strict when the file was not saved.
const strictExitCode = 2

// settings is the effective configuration for one run.
type settings struct {
	Dir       string
	Timeout   time.Duration
	UserAgent string
	LogLevel  string
	NoBrowser bool
	Strict    bool
}

func addFetchFlags(cmd *cobra.Command, v *viper.Viper) {
	def := config.DefaultConfig()

	cmd.PersistentFlags().String(keyConfig, "", "Config file (default: ~/.csvfetch/config.yml)")
	cmd.PersistentFlags().String(keyDir, def.Download.Dir, "Destination directory")
	cmd.PersistentFlags().String(keyLogLevel, def.Log.Level, "Log level (debug/info/warn/error)")
	cmd.Flags().Duration(keyTimeout, def.Download.Timeout, "Request timeout")
	cmd.Flags().String(keyUserAgent, def.Download.UserAgent, "User-Agent header")
	cmd.Flags().Bool(keyNoBrowser, false, "Do not open the browser on 403 Forbidden")
	cmd.Flags().Bool(keyStrict, false, "Exit with status 2 when the file was not saved")

	v.SetEnvPrefix("CSVFETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range []string{keyConfig, keyDir, keyLogLevel} {
		_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(key))
	}
	for _, key := range []string{keyTimeout, keyUserAgent, keyNoBrowser, keyStrict} {
		_ = v.BindPFlag(key, cmd.Flags().Lookup(key))
	}
}

// loadSettings layers flag > env > config file > built-in defaults.
func loadSettings(v *viper.Viper) (*settings, error) {
	cfgPath, err := processConfigPath(v.GetString(keyConfig))
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	v.SetDefault(keyDir, cfg.Download.Dir)
	v.SetDefault(keyTimeout, cfg.Download.Timeout)
	v.SetDefault(keyUserAgent, cfg.Download.UserAgent)
	v.SetDefault(keyLogLevel, cfg.Log.Level)
	v.SetDefault(keyNoBrowser, !cfg.BrowserEnabled())

	// Unchanged flags fall back to these defaults before their own.
	s := &settings{
		Dir:       v.GetString(keyDir),
		UserAgent: v.GetString(keyUserAgent),
		LogLevel:  v.GetString(keyLogLevel),
		Timeout:   v.GetDuration(keyTimeout),
		NoBrowser: v.GetBool(keyNoBrowser),
		Strict:    v.GetBool(keyStrict),
	}

	s.Dir, err = normalizePath(s.Dir)
	if err != nil {
		return nil, err
	}

	check := config.Config{
		Download: config.DownloadConfig{Dir: s.Dir, Timeout: s.Timeout, UserAgent: s.UserAgent},
		Log:      config.LogConfig{Level: s.LogLevel},
	}
	if err := check.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return s, nil
}

func runFetch(cmd *cobra.Command, v *viper.Viper, args []string) error {
	s, err := loadSettings(v)
	if err != nil {
		return err
	}

	logtrace.Setup("csvfetch", appVersion, s.LogLevel)
	logtrace.SetOutput(cmd.OutOrStdout())
	defer logtrace.Sync()

	// The destination is created here, once, before any download.
	if err := destination.Ensure(s.Dir); err != nil {
		return err
	}

	f, err := fetcher.New(fetcher.Config{
		Dir:            s.Dir,
		Timeout:        s.Timeout,
		UserAgent:      s.UserAgent,
		FreeSpace:      destination.FreeBytes,
		DisableBrowser: s.NoBrowser,
	})
	if err != nil {
		return err
	}

	var target string
	if len(args) > 1 {
		target = args[1]
	}

	res := f.Download(cmd.Context(), args[0], target)
	if s.Strict && !res.OK() {
		return &ExitError{Code: strictExitCode, Outcome: res.Outcome.String()}
	}
	return nil
}
