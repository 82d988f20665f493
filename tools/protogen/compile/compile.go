// Package compile drives the protocol-buffer compiler.
package compile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/malonaz/repo-config/go/subprocess"
)

type Opts struct {
	Protoc string `long:"protoc" env:"PROTOC" description:"Protocol buffer compiler binary" default:"protoc"`
}

// DescriptorSetName is the descriptor set artifact written alongside the
// generated code. The rewrite pass reads it to learn the dependency graph of
// the compiled protos.
const DescriptorSetName = "descriptor.binpb"

// Invocation is a fully constructed compiler command line. It is derived
// from the discovered source set and never mutated after construction, so
// the same inputs always produce the same argv.
type Invocation struct {
	protoc     string
	workingDir string
	outPath    string
	args       []string
}

// NewInvocation builds the compiler command line for one run.
//
// The compiler is asked for three generation targets directed at outPath:
// message code, gRPC service/client stubs, and gateway stubs. Each proto is
// mapped through stubs to its proto-relative import path, so sibling
// references in the output come out in exactly the shape the rewrite pass
// expects. Paths are relative to workingDir.
func NewInvocation(opts *Opts, workingDir, protoPath, outPath string, includePaths, protos []string, stubs map[string]string) *Invocation {
	args := []string{"--proto_path=" + protoPath}
	for _, includePath := range includePaths {
		args = append(args, "--proto_path="+includePath)
	}

	for _, plugin := range []string{"go", "go-grpc", "grpc-gateway"} {
		args = append(args,
			fmt.Sprintf("--%s_out=%s", plugin, outPath),
			fmt.Sprintf("--%s_opt=paths=source_relative", plugin),
		)
		for _, proto := range sortedKeys(stubs) {
			args = append(args, fmt.Sprintf("--%s_opt=M%s=%s", plugin, proto, stubs[proto]))
		}
	}
	args = append(args,
		"--grpc-gateway_opt=generate_unbound_methods=true",
		"--descriptor_set_out="+filepath.Join(outPath, DescriptorSetName),
	)
	args = append(args, protos...)

	return &Invocation{
		protoc:     opts.Protoc,
		workingDir: workingDir,
		outPath:    outPath,
		args:       args,
	}
}

// Args returns the compiler arguments.
func (i *Invocation) Args() []string {
	return i.args
}

// Run executes the compiler, blocking until it exits. The output directory
// is created if needed. A compiler failure aborts the build; its diagnostic
// output is carried verbatim on the returned error.
func (i *Invocation) Run(ctx context.Context) error {
	if err := os.MkdirAll(filepath.Join(i.workingDir, i.outPath), 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if _, err := subprocess.New(i.protoc, i.args...).WithDir(i.workingDir).Run(ctx); err != nil {
		return fmt.Errorf("compiling protos: %w", err)
	}
	return nil
}

// DescriptorSet reads the descriptor set artifact of a completed run.
func (i *Invocation) DescriptorSet() ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(i.workingDir, i.outPath, DescriptorSetName))
	if err != nil {
		return nil, fmt.Errorf("reading descriptor set: %w", err)
	}
	return data, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
