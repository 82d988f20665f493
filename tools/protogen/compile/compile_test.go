package compile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewInvocation(t *testing.T) {
	t.Parallel()

	opts := &Opts{Protoc: "protoc"}
	protos := []string{"a/x.proto", "b/y.proto"}
	stubs := map[string]string{"a/x.proto": "a", "b/y.proto": "b"}

	t.Run("builds the full argument list", func(t *testing.T) {
		t.Parallel()
		invocation := NewInvocation(opts, ".", "proto", "gen", []string{"inc"}, protos, stubs)
		require.Equal(t, []string{
			"--proto_path=proto",
			"--proto_path=inc",
			"--go_out=gen",
			"--go_opt=paths=source_relative",
			"--go_opt=Ma/x.proto=a",
			"--go_opt=Mb/y.proto=b",
			"--go-grpc_out=gen",
			"--go-grpc_opt=paths=source_relative",
			"--go-grpc_opt=Ma/x.proto=a",
			"--go-grpc_opt=Mb/y.proto=b",
			"--grpc-gateway_out=gen",
			"--grpc-gateway_opt=paths=source_relative",
			"--grpc-gateway_opt=Ma/x.proto=a",
			"--grpc-gateway_opt=Mb/y.proto=b",
			"--grpc-gateway_opt=generate_unbound_methods=true",
			"--descriptor_set_out=gen/descriptor.binpb",
			"a/x.proto",
			"b/y.proto",
		}, invocation.Args())
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()
		first := NewInvocation(opts, ".", "proto", "gen", nil, protos, stubs)
		second := NewInvocation(opts, ".", "proto", "gen", nil, protos, stubs)
		require.Equal(t, first.Args(), second.Args())
	})
}

// fakeCompiler writes a shell script standing in for protoc.
func fakeCompiler(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "protoc")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+script), 0755))
	return path
}

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("creates the output directory and succeeds", func(t *testing.T) {
		t.Parallel()
		workingDir := t.TempDir()
		opts := &Opts{Protoc: fakeCompiler(t, "exit 0\n")}
		invocation := NewInvocation(opts, workingDir, "proto", "gen", nil, []string{"a.proto"}, map[string]string{"a.proto": "gen"})

		require.NoError(t, invocation.Run(context.Background()))
		require.DirExists(t, filepath.Join(workingDir, "gen"))
	})

	t.Run("surfaces compiler diagnostics on failure", func(t *testing.T) {
		t.Parallel()
		workingDir := t.TempDir()
		opts := &Opts{Protoc: fakeCompiler(t, "echo 'a.proto:3:1: boom' >&2\nexit 1\n")}
		invocation := NewInvocation(opts, workingDir, "proto", "gen", nil, []string{"a.proto"}, map[string]string{"a.proto": "gen"})

		err := invocation.Run(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "a.proto:3:1: boom")
	})
}

func TestDescriptorSet(t *testing.T) {
	t.Parallel()

	workingDir := t.TempDir()
	invocation := NewInvocation(&Opts{Protoc: "protoc"}, workingDir, "proto", "gen", nil, nil, nil)

	_, err := invocation.DescriptorSet()
	require.Error(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(workingDir, "gen"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(workingDir, "gen", DescriptorSetName), []byte("set"), 0644))
	data, err := invocation.DescriptorSet()
	require.NoError(t, err)
	require.Equal(t, []byte("set"), data)
}
