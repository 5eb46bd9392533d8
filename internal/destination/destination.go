// Package destination owns the directory downloads are written to.
package destination

import (
	"os"
	"path/filepath"

	"github.com/shirou/gopsutil/v3/disk"

	"github.com/fullstackdevtools/csvfetch/pkg/errors"
)

const (
	// Subfolder is created under the user's Downloads directory.
	Subfolder = "full_stack_dev_tools"

	DefaultDirPermissions = 0o755
)

// DefaultDir returns ~/Downloads/full_stack_dev_tools.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		home = os.Getenv("HOME")
	}
	if home == "" {
		return "", errors.New("failed to get user home directory")
	}
	return filepath.Join(home, "Downloads", Subfolder), nil
}

// Expand resolves a leading "~" to the user's home directory.
func Expand(dir string) (string, error) {
	if dir != "~" && !hasHomePrefix(dir) {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	if dir == "~" {
		return home, nil
	}
	return filepath.Join(home, dir[2:]), nil
}

func hasHomePrefix(dir string) bool {
	return len(dir) >= 2 && dir[0] == '~' && (dir[1] == '/' || dir[1] == filepath.Separator)
}

// Ensure creates dir and any missing parents. It is safe to call repeatedly.
func Ensure(dir string) error {
	if dir == "" {
		return errors.New("destination directory is empty")
	}
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}
	return nil
}

// FreeBytes reports the space available to unprivileged writers on the
// volume holding dir.
func FreeBytes(dir string) (uint64, error) {
	usage, err := disk.Usage(dir)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to get storage info for %s", dir)
	}
	return usage.Free, nil
}
