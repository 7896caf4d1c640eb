package environment_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/programme-lv/minijudge/internal/environment"
	"github.com/programme-lv/minijudge/internal/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrefersWorkingDirectoryAndKeepsEnvironment(t *testing.T) {
	work := t.TempDir()
	conf := t.TempDir()
	t.Chdir(work)
	t.Setenv("XDG_CONFIG_HOME", conf)
	t.Setenv("MINIJUDGE_TIME_LIMIT", "5000")
	t.Setenv("MINIJUDGE_MODE", "")
	t.Setenv("MINIJUDGE_MEMORY_LIMIT", "")
	os.Unsetenv("MINIJUDGE_MODE")
	os.Unsetenv("MINIJUDGE_MEMORY_LIMIT")

	require.NoError(t, os.WriteFile(filepath.Join(work, ".env"), []byte("MINIJUDGE_MODE=ioi\nMINIJUDGE_TIME_LIMIT=1\n"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(conf, "minijudge"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(conf, "minijudge", "env"), []byte("MINIJUDGE_MODE=acm\nMINIJUDGE_MEMORY_LIMIT=2048\n"), 0o644))

	loaded, err := environment.Load(xdg.NewXDGDirs())
	require.NoError(t, err)
	assert.Len(t, loaded, 2)

	assert.Equal(t, "ioi", os.Getenv("MINIJUDGE_MODE"))
	assert.Equal(t, "5000", os.Getenv("MINIJUDGE_TIME_LIMIT"))
	assert.Equal(t, "2048", os.Getenv("MINIJUDGE_MEMORY_LIMIT"))
}

func TestLoadWithoutFiles(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	loaded, err := environment.Load(xdg.NewXDGDirs())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}
