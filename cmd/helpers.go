package cmd

import (
	"os"
	"path/filepath"

	"github.com/fullstackdevtools/csvfetch/internal/config"
	"github.com/fullstackdevtools/csvfetch/internal/destination"
)

// normalizePath expands environment variables and a leading "~".
func normalizePath(path string) (string, error) {
	path = os.ExpandEnv(path)
	path, err := destination.Expand(path)
	if err != nil {
		return "", err
	}
	return filepath.Clean(path), nil
}

// processConfigPath resolves the --config value; a directory means the
// config.yml inside it, and empty means the default location.
func processConfigPath(path string) (string, error) {
	if path == "" {
		return config.DefaultPath(), nil
	}
	path, err := normalizePath(path)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, config.DefaultConfigFile)
	}
	return path, nil
}
