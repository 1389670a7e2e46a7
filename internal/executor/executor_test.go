package executor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIRunner_Run(t *testing.T) {
	r := New()

	t.Run("captures stdout", func(t *testing.T) {
		res, err := r.Run(context.Background(), "echo", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hello\n", res.Stdout)
		assert.Empty(t, res.Stderr)
	})

	t.Run("captures stderr separately", func(t *testing.T) {
		res, err := r.Run(context.Background(), "sh", "-c", "echo out; echo err 1>&2")
		require.NoError(t, err)
		assert.Equal(t, "out\n", res.Stdout)
		assert.Equal(t, "err\n", res.Stderr)
	})

	t.Run("missing binary maps to ErrToolNotFound", func(t *testing.T) {
		_, err := r.Run(context.Background(), "definitely-not-a-real-binary-12345")
		assert.ErrorIs(t, err, ErrToolNotFound)
	})

	t.Run("non-zero exit returns stderr in error", func(t *testing.T) {
		res, err := r.Run(context.Background(), "sh", "-c", "echo boom 1>&2; exit 3")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrToolNotFound)
		assert.Contains(t, err.Error(), "boom")
		assert.Equal(t, "boom\n", res.Stderr)
	})

	t.Run("cancelled context is reported", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := r.Run(ctx, "sleep", "5")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cancelled")
	})
}
