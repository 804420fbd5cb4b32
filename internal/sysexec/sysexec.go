// Package sysexec runs external platform utilities. Everything the
// maintenance tasks learn about the machine comes from these processes, so
// the runner sits behind an interface that tests can script.
package sysexec

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/slok/wrench/internal/log"
)

// Result is the outcome of an external command that ran to completion.
type Result struct {
	// Output is the combined stdout and stderr of the process.
	Output string
	// ExitCode is the process exit code.
	ExitCode int
}

// Runner executes external commands.
type Runner interface {
	// Run executes a command and returns its combined output and exit code.
	// A non-zero exit code is not an error: callers consume exit codes.
	// An error means the process could not be started or was cancelled.
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

//go:generate mockery --case underscore --output sysexecmock --outpkg sysexecmock --name Runner

// OSRunnerConfig is the configuration for the OS runner.
type OSRunnerConfig struct {
	Logger log.Logger
}

func (c *OSRunnerConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "sysexec.OSRunner"})
	return nil
}

// OSRunner runs commands with os/exec.
type OSRunner struct {
	logger log.Logger
}

// NewOSRunner creates a new OS command runner.
func NewOSRunner(cfg OSRunnerConfig) (*OSRunner, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &OSRunner{logger: cfg.Logger}, nil
}

// Run executes the command, honoring context cancellation.
func (r *OSRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	r.logger.Debugf("running %s %v", name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		// A killed process also surfaces as an ExitError, so cancellation
		// has to be checked first to be reported as an error.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("command %q cancelled: %w", name, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{Output: string(out), ExitCode: exitErr.ExitCode()}, nil
		}
		return nil, fmt.Errorf("could not run %q: %w", name, err)
	}

	return &Result{Output: string(out), ExitCode: 0}, nil
}
