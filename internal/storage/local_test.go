package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalStorage(t *testing.T) {
	t.Run("creates the root directory", func(t *testing.T) {
		root := filepath.Join(t.TempDir(), "nested", "root")
		s, err := NewLocalStorage(root)
		require.NoError(t, err)
		assert.Equal(t, root, s.RootDir())
		assert.DirExists(t, root)
	})

	t.Run("empty root falls back to the system temp dir", func(t *testing.T) {
		s, err := NewLocalStorage("")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(s.RootDir(), os.TempDir()))
	})
}

func TestLocalStorage_NewWorkspace(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	t.Run("allocates isolated directories", func(t *testing.T) {
		ws1, err := s.NewWorkspace(context.Background())
		require.NoError(t, err)
		defer func() { _ = ws1.Close() }()

		ws2, err := s.NewWorkspace(context.Background())
		require.NoError(t, err)
		defer func() { _ = ws2.Close() }()

		assert.NotEqual(t, ws1.Dir(), ws2.Dir())
		assert.DirExists(t, ws1.Dir())
		assert.DirExists(t, ws2.Dir())
	})

	t.Run("cancelled context is rejected", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := s.NewWorkspace(ctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestWorkspace(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	ws, err := s.NewWorkspace(context.Background())
	require.NoError(t, err)

	t.Run("Path joins inside the workspace", func(t *testing.T) {
		assert.Equal(t, filepath.Join(ws.Dir(), "audio.wav"), ws.Path("audio.wav"))
	})

	t.Run("SaveFile writes the reader content", func(t *testing.T) {
		path, err := ws.SaveFile("input.mp4", strings.NewReader("video bytes"))
		require.NoError(t, err)

		data, err := os.ReadFile(path) // #nosec G304 - test-controlled path
		require.NoError(t, err)
		assert.Equal(t, "video bytes", string(data))
	})

	t.Run("Close removes everything", func(t *testing.T) {
		require.NoError(t, ws.Close())
		assert.NoDirExists(t, ws.Dir())
	})
}

func TestLocalStorage_UploadReport(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.UploadReport(context.Background(), "reports/a.md", strings.NewReader("# report"))
	assert.ErrorIs(t, err, ErrS3NotConfigured)
}
