// Package session defines the check sessions the family's repositories run:
// one session per concern, each shelling out to the corresponding dev tool.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/malonaz/repo-config/go/subprocess"
)

type Opts struct {
	Path []string `long:"path" description:"Override the target paths of all sessions"`
}

// Env carries the per-session execution context: where to run, the extra
// command-line options configured for the session, and the target paths.
type Env struct {
	WorkingDir string
	Options    []string
	Paths      []string
}

// Func runs one session to completion.
type Func func(ctx context.Context, env *Env) error

// Default is the session registry.
var Default = map[string]Func{
	"format": Format,
	"vet":    Vet,
	"lint":   Lint,
	"test":   Test,
}

// Names returns the registered session names, sorted.
func Names(sessions map[string]Func) []string {
	names := make([]string, 0, len(sessions))
	for name := range sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Run executes the named sessions in order. Every session runs even when an
// earlier one fails; the failures are collected and reported together.
func Run(ctx context.Context, sessions map[string]Func, names []string, env *Env, options map[string][]string) error {
	var errs *multierror.Error
	for _, name := range names {
		fn, ok := sessions[name]
		if !ok {
			return fmt.Errorf("unknown session: %s (known: %s)", name, strings.Join(Names(sessions), ", "))
		}
		sessionEnv := &Env{
			WorkingDir: env.WorkingDir,
			Options:    options[name],
			Paths:      env.Paths,
		}
		slog.Info("running session", "session", name)
		if err := fn(ctx, sessionEnv); err != nil {
			slog.Error("session failed", "session", name)
			errs = multierror.Append(errs, fmt.Errorf("session %s: %w", name, err))
			continue
		}
		slog.Info("session passed", "session", name)
	}
	return errs.ErrorOrNil()
}

// Format checks formatting with gofmt. gofmt exits zero even when files are
// unformatted, so the session fails on any listed file instead.
func Format(ctx context.Context, env *Env) error {
	output, err := subprocess.New("gofmt", formatArgs(env)...).WithDir(env.WorkingDir).Run(ctx)
	if err != nil {
		return err
	}
	if unformatted := strings.TrimSpace(string(output)); unformatted != "" {
		return fmt.Errorf("files need formatting:\n%s", unformatted)
	}
	return nil
}

// Vet runs go vet.
func Vet(ctx context.Context, env *Env) error {
	_, err := subprocess.New("go", vetArgs(env)...).WithDir(env.WorkingDir).Run(ctx)
	return err
}

// Lint runs golangci-lint.
func Lint(ctx context.Context, env *Env) error {
	_, err := subprocess.New("golangci-lint", lintArgs(env)...).WithDir(env.WorkingDir).Run(ctx)
	return err
}

// Test runs go test.
func Test(ctx context.Context, env *Env) error {
	_, err := subprocess.New("go", testArgs(env)...).WithDir(env.WorkingDir).Run(ctx)
	return err
}

func formatArgs(env *Env) []string {
	args := append([]string{"-l"}, env.Options...)
	return append(args, dirs(env.Paths)...)
}

func vetArgs(env *Env) []string {
	args := append([]string{"vet"}, env.Options...)
	return append(args, env.Paths...)
}

func lintArgs(env *Env) []string {
	args := append([]string{"run"}, env.Options...)
	return append(args, env.Paths...)
}

func testArgs(env *Env) []string {
	args := append([]string{"test"}, env.Options...)
	return append(args, env.Paths...)
}

// dirs converts go-style package patterns to the plain directories gofmt
// expects.
func dirs(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		p = strings.TrimSuffix(p, "...")
		p = strings.TrimSuffix(p, "/")
		if p == "" {
			p = "."
		}
		out = append(out, p)
	}
	return out
}
