// Package subprocess runs external tools synchronously, capturing their
// output so callers can surface it verbatim when the tool fails.
package subprocess

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Command describes a single external-tool invocation.
type Command struct {
	name string
	args []string
	dir  string
	env  []string
	log  *slog.Logger
}

// New returns a command for the given binary and arguments.
func New(name string, args ...string) *Command {
	return &Command{
		name: name,
		args: args,
		log:  slog.Default(),
	}
}

// WithDir sets the working directory of the command.
func (c *Command) WithDir(dir string) *Command {
	c.dir = dir
	return c
}

// WithEnv adds an environment variable on top of the ambient environment.
func (c *Command) WithEnv(key, value string) *Command {
	c.env = append(c.env, key+"="+value)
	return c
}

// WithLogger sets this command's logger.
func (c *Command) WithLogger(logger *slog.Logger) *Command {
	c.log = logger
	return c
}

// String renders the command line for logging.
func (c *Command) String() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// Run executes the command, blocking until it exits. On a non-zero exit it
// returns an *ExitError carrying the combined stdout/stderr of the tool.
func (c *Command) Run(ctx context.Context) ([]byte, error) {
	c.log.Debug("running command", "command", c.String(), "dir", c.dir)
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Dir = c.dir
	if len(c.env) > 0 {
		cmd.Env = append(os.Environ(), c.env...)
	}
	output, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return output, &ExitError{
				Command:  c.String(),
				ExitCode: exitErr.ExitCode(),
				Output:   output,
			}
		}
		return output, fmt.Errorf("running %s: %w", c.name, err)
	}
	return output, nil
}

// ExitError is returned when a command exits with a non-zero status. Its
// message includes the tool's captured output so the user can diagnose the
// failure without re-running the tool.
type ExitError struct {
	Command  string
	ExitCode int
	Output   []byte
}

func (e *ExitError) Error() string {
	output := strings.TrimSpace(string(e.Output))
	if output == "" {
		return fmt.Sprintf("%s: exit status %d", e.Command, e.ExitCode)
	}
	return fmt.Sprintf("%s: exit status %d\n%s", e.Command, e.ExitCode, output)
}
