// Command protogen compiles a repository's proto definitions into Go code.
//
// It discovers the proto files under the configured source root, invokes the
// protocol-buffer compiler with the message, gRPC and gateway generators,
// and rewrites the generated imports so they resolve against the consuming
// repository's module path. It is invoked standalone or as the generate step
// of the family's standard build sequence.
package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/malonaz/repo-config/go/flags"
	"github.com/malonaz/repo-config/go/logging"
	"github.com/malonaz/repo-config/go/repoconfig"
	"github.com/malonaz/repo-config/tools/protogen/compile"
	"github.com/malonaz/repo-config/tools/protogen/discover"
	"github.com/malonaz/repo-config/tools/protogen/rewrite"
)

var opts struct {
	Logging  *logging.Opts
	Discover *discover.Opts
	Compile  *compile.Opts

	WorkingDir string `long:"working-dir" description:"Repository root to operate in" default:"."`
	Module     string `long:"module" description:"Override the consuming repository's module path"`
}

var log *slog.Logger

func main() {
	if err := flags.Parse(&opts); err != nil {
		panic(err)
	}
	if err := logging.Init(opts.Logging); err != nil {
		panic(err)
	}
	log = slog.Default()
	if err := run(context.Background()); err != nil {
		panic(err)
	}
}

func run(ctx context.Context) error {
	config, err := repoconfig.Load(opts.WorkingDir)
	if err != nil {
		return fmt.Errorf("loading repo config: %w", err)
	}
	if opts.Module != "" {
		config.Module = opts.Module
	}

	protos, err := discover.Protos(opts.Discover, config.ProtoRoot(opts.WorkingDir), config.Proto.Glob)
	if err != nil {
		return fmt.Errorf("discovering protos: %w", err)
	}
	if len(protos) == 0 {
		log.Info("no proto files found, nothing to do", "path", config.Proto.Path)
		return nil
	}
	if config.Module == "" {
		return fmt.Errorf("module path is required: set module in %s or pass --module", repoconfig.Filename)
	}
	log.Info("compiling protos", "count", len(protos), "out", config.Proto.OutPath)

	stubs := rewrite.Stubs(protos, config.Proto.OutPath)
	invocation := compile.NewInvocation(
		opts.Compile, opts.WorkingDir,
		config.Proto.Path, config.Proto.OutPath,
		config.Proto.IncludePaths, protos, stubs,
	)
	if err := invocation.Run(ctx); err != nil {
		return err
	}

	descriptorSet, err := invocation.DescriptorSet()
	if err != nil {
		return err
	}
	rewriter, err := rewrite.New(config.Module, config.Proto.OutPath, descriptorSet)
	if err != nil {
		return err
	}
	if err := rewriter.Dir(config.OutRoot(opts.WorkingDir)); err != nil {
		return fmt.Errorf("rewriting generated imports: %w", err)
	}

	log.Info("generated code written", "out", config.Proto.OutPath)
	return nil
}
