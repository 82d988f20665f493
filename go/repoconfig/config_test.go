package repoconfig

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	t.Run("lib defaults", func(t *testing.T) {
		t.Parallel()
		config, err := Default(TypeLib)
		require.NoError(t, err)
		require.Equal(t, TypeLib, config.Type)
		require.Equal(t, "proto", config.Proto.Path)
		require.Equal(t, "*.proto", config.Proto.Glob)
		require.Equal(t, "gen", config.Proto.OutPath)
		require.Equal(t, []string{"format", "vet", "lint", "test"}, config.Check.Sessions)
		require.Equal(t, []string{"./..."}, config.Check.Paths)
	})

	t.Run("api repositories skip style sessions", func(t *testing.T) {
		t.Parallel()
		config, err := Default(TypeAPI)
		require.NoError(t, err)
		require.Equal(t, []string{"vet", "test"}, config.Check.Sessions)
		require.Equal(t, []string{"./tests/..."}, config.Check.Paths)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()
		_, err := Default(Type("plugin"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown repository type")
	})
}

func TestCopy(t *testing.T) {
	t.Parallel()

	original, err := Default(TypeLib)
	require.NoError(t, err)
	original.Check.Options["lint"] = []string{"--fast"}

	clone := original.Copy()
	clone.Proto.IncludePaths = append(clone.Proto.IncludePaths, "extra")
	clone.Check.Sessions[0] = "changed"
	clone.Check.Options["lint"][0] = "--slow"
	clone.Check.Options["test"] = []string{"-race"}

	require.NotContains(t, original.Proto.IncludePaths, "extra")
	require.Equal(t, "format", original.Check.Sessions[0])
	require.Equal(t, []string{"--fast"}, original.Check.Options["lint"])
	require.NotContains(t, original.Check.Options, "test")
}

func TestPathHelpers(t *testing.T) {
	t.Parallel()

	config, err := Default(TypeAPI)
	require.NoError(t, err)
	require.Equal(t, "repo/proto", config.ProtoRoot("repo"))
	require.Equal(t, "repo/gen", config.OutRoot("repo"))
}
