package destination

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir, err := DefaultDir()
	require.NoError(t, err)
	assert.Equal(t, Subfolder, filepath.Base(dir))
	assert.Equal(t, "Downloads", filepath.Base(filepath.Dir(dir)))
}

func TestEnsureCreatesParents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Downloads", Subfolder)

	_, err := os.Stat(dir)
	require.True(t, os.IsNotExist(err))

	require.NoError(t, Ensure(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// second call is a no-op
	require.NoError(t, Ensure(dir))
}

func TestEnsureRejectsEmpty(t *testing.T) {
	assert.Error(t, Ensure(""))
}

func TestEnsureFailsUnderFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.Error(t, Ensure(filepath.Join(file, "sub")))
}

func TestExpand(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := Expand("~/Downloads/x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Downloads", "x"), got)

	got, err = Expand("/var/tmp")
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp", got)
}

func TestFreeBytes(t *testing.T) {
	free, err := FreeBytes(t.TempDir())
	require.NoError(t, err)
	assert.Greater(t, free, uint64(0))
}
