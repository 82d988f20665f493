package repoconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("full manifest", func(t *testing.T) {
		t.Parallel()
		config, err := Parse([]byte(`
apiVersion: repoconfig/v1
kind: RepoConfig
type: api
module: github.com/acme/acme-api
proto:
  path: protos
  glob: "*.prt"
  includePaths: [vendor/protos]
  outPath: generated
check:
  sessions: [vet]
  options:
    vet: ["-composites=false"]
  paths: ["./generated/..."]
`))
		require.NoError(t, err)
		require.Equal(t, TypeAPI, config.Type)
		require.Equal(t, "github.com/acme/acme-api", config.Module)
		require.Equal(t, "protos", config.Proto.Path)
		require.Equal(t, "*.prt", config.Proto.Glob)
		require.Equal(t, []string{"vendor/protos"}, config.Proto.IncludePaths)
		require.Equal(t, "generated", config.Proto.OutPath)
		require.Equal(t, []string{"vet"}, config.Check.Sessions)
		require.Equal(t, []string{"-composites=false"}, config.Check.Options["vet"])
		require.Equal(t, []string{"./generated/..."}, config.Check.Paths)
	})

	t.Run("unset values fall back to type defaults", func(t *testing.T) {
		t.Parallel()
		config, err := Parse([]byte(`
apiVersion: repoconfig/v1
kind: RepoConfig
type: api
module: github.com/acme/acme-api
`))
		require.NoError(t, err)
		require.Equal(t, "proto", config.Proto.Path)
		require.Equal(t, "gen", config.Proto.OutPath)
		require.Equal(t, []string{"vet", "test"}, config.Check.Sessions)
	})

	t.Run("missing type defaults to lib", func(t *testing.T) {
		t.Parallel()
		config, err := Parse([]byte(`
apiVersion: repoconfig/v1
kind: RepoConfig
module: github.com/acme/acme
`))
		require.NoError(t, err)
		require.Equal(t, TypeLib, config.Type)
	})

	t.Run("wrong apiVersion", func(t *testing.T) {
		t.Parallel()
		_, err := Parse([]byte("apiVersion: repoconfig/v2\nkind: RepoConfig\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported apiVersion")
	})

	t.Run("wrong kind", func(t *testing.T) {
		t.Parallel()
		_, err := Parse([]byte("apiVersion: repoconfig/v1\nkind: Service\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "unsupported kind")
	})

	t.Run("unknown field is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Parse([]byte(`
apiVersion: repoconfig/v1
kind: RepoConfig
protoc: /usr/bin/protoc
`))
		require.Error(t, err)
	})

	t.Run("unknown type is rejected", func(t *testing.T) {
		t.Parallel()
		_, err := Parse([]byte(`
apiVersion: repoconfig/v1
kind: RepoConfig
type: plugin
`))
		require.Error(t, err)
		require.Contains(t, err.Error(), "unknown repository type")
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("missing manifest resolves to lib defaults", func(t *testing.T) {
		t.Parallel()
		config, err := Load(t.TempDir())
		require.NoError(t, err)
		require.Equal(t, TypeLib, config.Type)
		require.Empty(t, config.Module)
	})

	t.Run("manifest in directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		manifest := "apiVersion: repoconfig/v1\nkind: RepoConfig\ntype: app\nmodule: github.com/acme/app\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, Filename), []byte(manifest), 0644))

		config, err := Load(dir)
		require.NoError(t, err)
		require.Equal(t, TypeApp, config.Type)
		require.Equal(t, "github.com/acme/app", config.Module)
	})
}
