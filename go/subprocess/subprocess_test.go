package subprocess

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("captures output on success", func(t *testing.T) {
		t.Parallel()
		output, err := New("sh", "-c", "echo hello").Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, "hello\n", string(output))
	})

	t.Run("non-zero exit returns ExitError with output", func(t *testing.T) {
		t.Parallel()
		output, err := New("sh", "-c", "echo boom >&2; exit 3").Run(context.Background())
		require.Error(t, err)
		require.Contains(t, string(output), "boom")

		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr))
		require.Equal(t, 3, exitErr.ExitCode)
		require.Contains(t, exitErr.Error(), "exit status 3")
		require.Contains(t, exitErr.Error(), "boom")
	})

	t.Run("missing binary is not an ExitError", func(t *testing.T) {
		t.Parallel()
		_, err := New("definitely-not-a-binary").Run(context.Background())
		require.Error(t, err)

		var exitErr *ExitError
		require.False(t, errors.As(err, &exitErr))
	})

	t.Run("respects working directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		output, err := New("pwd").WithDir(dir).Run(context.Background())
		require.NoError(t, err)
		require.Contains(t, string(output), dir)
	})

	t.Run("injects environment variables", func(t *testing.T) {
		t.Parallel()
		output, err := New("sh", "-c", "echo $REPO_CONFIG_TEST").
			WithEnv("REPO_CONFIG_TEST", "42").
			Run(context.Background())
		require.NoError(t, err)
		require.Equal(t, "42\n", string(output))
	})
}

func TestString(t *testing.T) {
	t.Parallel()
	require.Equal(t, "protoc --version", New("protoc", "--version").String())
}
