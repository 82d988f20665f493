// Command check runs the family's lint, format and test sessions against a
// repository, using the session set and options configured for its type.
package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/malonaz/repo-config/go/flags"
	"github.com/malonaz/repo-config/go/logging"
	"github.com/malonaz/repo-config/go/repoconfig"
	"github.com/malonaz/repo-config/tools/check/session"
)

var opts struct {
	Logging *logging.Opts
	Session *session.Opts

	WorkingDir string `long:"working-dir" description:"Repository root to operate in" default:"."`

	Args struct {
		Sessions []string `positional-arg-name:"session" description:"Sessions to run (defaults to the configured set)"`
	} `positional-args:"true"`
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

	names := opts.Args.Sessions
	if len(names) == 0 {
		names = config.Check.Sessions
	}
	paths := config.Check.Paths
	if len(opts.Session.Path) > 0 {
		paths = opts.Session.Path
	}
	log.Info("running check sessions", "sessions", names, "type", string(config.Type))

	env := &session.Env{
		WorkingDir: opts.WorkingDir,
		Paths:      paths,
	}
	return session.Run(ctx, session.Default, names, env, config.Check.Options)
}
