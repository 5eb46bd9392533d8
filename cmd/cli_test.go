package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fullstackdevtools/csvfetch/internal/config"
	"github.com/fullstackdevtools/csvfetch/pkg/logtrace"
)

const csvBody = "a,b\n1,2\n"

// executeCommand runs a fresh command tree with HOME pointed at a temp dir.
func executeCommand(t *testing.T, args ...string) (string, int) {
	t.Helper()
	t.Cleanup(func() { logtrace.SetOutput(os.Stdout) })

	root := newRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)

	code := run(context.Background(), root, args)
	return buf.String(), code
}

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func csvServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_, _ = w.Write([]byte(csvBody))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCLIRequiresURL(t *testing.T) {
	isolateHome(t)

	out, code := executeCommand(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, usageLine)
}

func TestCLIRejectsExtraArgs(t *testing.T) {
	isolateHome(t)

	out, code := executeCommand(t, "https://x/y/z.csv", "a.csv", "extra")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, usageLine)
}

func TestCLIHelp(t *testing.T) {
	isolateHome(t)

	out, code := executeCommand(t, "--help")
	assert.Equal(t, 0, code)
	for _, phrase := range []string{"csvfetch", "--dir", "--timeout", "--user-agent", "--no-browser", "--strict", "init", "version"} {
		assert.Contains(t, out, phrase)
	}
}

func TestCLISavesIntoCreatedDirectory(t *testing.T) {
	isolateHome(t)
	srv := csvServer(t, http.StatusOK)

	dir := filepath.Join(t.TempDir(), "Downloads", "full_stack_dev_tools")
	_, err := os.Stat(dir)
	require.True(t, os.IsNotExist(err))

	out, code := executeCommand(t, srv.URL+"/data/z.csv?id=1", "renamed.csv", "--dir", dir)
	require.Equal(t, 0, code, out)

	data, err := os.ReadFile(filepath.Join(dir, "renamed.csv"))
	require.NoError(t, err)
	assert.Equal(t, csvBody, string(data))
	assert.Contains(t, out, "Saved")
}

func TestCLIExitsZeroOnFailure(t *testing.T) {
	isolateHome(t)
	srv := csvServer(t, http.StatusInternalServerError)
	dir := t.TempDir()

	out, code := executeCommand(t, srv.URL+"/z.csv", "--dir", dir)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Download failed")
	assert.NoFileExists(t, filepath.Join(dir, "z.csv"))
}

func TestCLIStrictExitCode(t *testing.T) {
	isolateHome(t)
	srv := csvServer(t, http.StatusInternalServerError)

	_, code := executeCommand(t, srv.URL+"/z.csv", "--dir", t.TempDir(), "--strict")
	assert.Equal(t, strictExitCode, code)
}

func TestCLIStrictSuccess(t *testing.T) {
	isolateHome(t)
	srv := csvServer(t, http.StatusOK)

	_, code := executeCommand(t, srv.URL+"/z.csv", "--dir", t.TempDir(), "--strict")
	assert.Equal(t, 0, code)
}

func TestCLIForbiddenWithoutBrowser(t *testing.T) {
	isolateHome(t)
	srv := csvServer(t, http.StatusForbidden)
	dir := t.TempDir()

	out, code := executeCommand(t, srv.URL+"/z.csv", "--dir", dir, "--no-browser")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "403 Forbidden")
	assert.NoFileExists(t, filepath.Join(dir, "z.csv"))
}

func TestCLIUsesConfigFile(t *testing.T) {
	home := isolateHome(t)
	srv := csvServer(t, http.StatusOK)

	dir := filepath.Join(home, "from-config")
	cfg := config.DefaultConfig()
	cfg.Download.Dir = dir
	cfgPath := filepath.Join(home, "custom.yml")
	require.NoError(t, config.Save(cfg, cfgPath))

	out, code := executeCommand(t, srv.URL+"/z.csv", "--config", cfgPath)
	require.Equal(t, 0, code, out)
	assert.FileExists(t, filepath.Join(dir, "z.csv"))
}

func TestCLIEnvOverridesConfigFile(t *testing.T) {
	home := isolateHome(t)
	srv := csvServer(t, http.StatusOK)

	cfg := config.DefaultConfig()
	cfg.Download.Dir = filepath.Join(home, "from-config")
	require.NoError(t, config.Save(cfg, config.DefaultPath()))

	envDir := filepath.Join(home, "from-env")
	t.Setenv("CSVFETCH_DIR", envDir)

	out, code := executeCommand(t, srv.URL+"/z.csv")
	require.Equal(t, 0, code, out)
	assert.FileExists(t, filepath.Join(envDir, "z.csv"))
	assert.NoFileExists(t, filepath.Join(home, "from-config", "z.csv"))
}

func TestCLIInvalidLogLevel(t *testing.T) {
	isolateHome(t)

	out, code := executeCommand(t, "https://x/y/z.csv", "--dir", t.TempDir(), "--log-level", "loud")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "invalid configuration")
}

func TestCLIInit(t *testing.T) {
	home := isolateHome(t)
	dir := filepath.Join(home, "csv")

	out, code := executeCommand(t, "init", "--dir", dir)
	require.Equal(t, 0, code, out)
	assert.DirExists(t, dir)

	cfg, err := config.Load(config.DefaultPath())
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.Download.Dir)

	out, code = executeCommand(t, "init", "--dir", dir)
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "already exists")

	_, code = executeCommand(t, "init", "--dir", dir, "--force")
	assert.Equal(t, 0, code)
}

func TestCLIInitInteractive(t *testing.T) {
	home := isolateHome(t)
	chosen := filepath.Join(home, "picked")

	orig := askDir
	askDir = func(def string) (string, error) { return chosen, nil }
	t.Cleanup(func() { askDir = orig })

	out, code := executeCommand(t, "init", "--interactive")
	require.Equal(t, 0, code, out)
	assert.DirExists(t, chosen)
	assert.Contains(t, out, chosen)
}

func TestCLIVersion(t *testing.T) {
	isolateHome(t)
	appVersion, appGitCommit, appBuildTime = "v1.1.1", "abc123", "2026-10-19"

	out, code := executeCommand(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "csvfetch Version: v1.1.1")
	assert.Contains(t, out, "Git Commit: abc123")
}
