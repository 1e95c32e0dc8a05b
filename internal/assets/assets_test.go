package assets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func TestBuiltinContent(t *testing.T) {
	for _, name := range []string{
		"shaders/entity_VS.glsl", "shaders/entity_FS.glsl",
		"shaders/light_VS.glsl", "shaders/light_FS.glsl",
		"shaders/atmosphere_VS.glsl", "shaders/atmosphere_FS.glsl",
		"textures/diffuse.png", "textures/specular.png", "textures/light.png",
		"models/cube.obj", "models/dome.obj",
	} {
		_, err := fs.Stat(Builtin(), name)
		assert.NoError(t, err, name)
	}
}

func TestManagerRootPriority(t *testing.T) {
	low, high := t.TempDir(), t.TempDir()
	writeFile(t, low, "shaders/entity_VS.glsl", "low")
	writeFile(t, low, "only-low.txt", "low")
	writeFile(t, high, "shaders/entity_VS.glsl", "high")

	m := NewManager(Builtin())
	require.NoError(t, m.AddRoot(low))
	require.NoError(t, m.AddRoot(high))
	assert.Equal(t, []string{high, low}, m.Roots())

	data, err := m.ReadFile("shaders/entity_VS.glsl")
	require.NoError(t, err)
	assert.Equal(t, "high", string(data))

	data, err = m.ReadFile("only-low.txt")
	require.NoError(t, err)
	assert.Equal(t, "low", string(data))

	data, err = m.ReadFile("shaders/light_FS.glsl")
	require.NoError(t, err)
	assert.Contains(t, string(data), "#version 410")
}

func TestManagerCache(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "one")

	m := NewManager(nil)
	require.NoError(t, m.AddRoot(dir))

	_, err := m.ReadFile("a.txt")
	require.NoError(t, err)
	writeFile(t, dir, "a.txt", "two")

	data, err := m.ReadFile("./a.txt")
	require.NoError(t, err)
	assert.Equal(t, "one", string(data), "served from cache")

	hits, misses := m.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)

	m.Invalidate("a.txt")
	data, err = m.ReadFile("a.txt")
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	m.Close()
	assert.Empty(t, m.Roots())
}

func TestManagerErrors(t *testing.T) {
	m := NewManager(fstest.MapFS{})
	assert.Error(t, m.AddRoot(filepath.Join(t.TempDir(), "missing")))

	file := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	assert.Error(t, m.AddRoot(file))

	_, err := m.ReadFile("nothing.png")
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = m.ReadFile("../escape.txt")
	assert.True(t, errors.Is(err, fs.ErrInvalid))
}

func TestWatcherReportsRelativePaths(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "shaders/entity_FS.glsl", "v1")

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	writeFile(t, dir, "shaders/entity_FS.glsl", "v2")

	var got []string
	require.Eventually(t, func() bool {
		got = append(got, w.Changes()...)
		for _, p := range got {
			if p == "shaders/entity_FS.glsl" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestWatcherChangesNonBlocking(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, w.Changes())
	require.NoError(t, w.Close())
}

func TestWatcherMissingRoot(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
