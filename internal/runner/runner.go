// Package runner bounds the wall-clock cost of a maintenance task.
//
// A task runs in its own goroutine with a cancellable context. On timeout the
// context is cancelled and the caller moves on without waiting for the
// goroutine to finish: side effects from the cancelled body may still land
// after the run has advanced to the next task. Task bodies are append-only
// against the report, so a late write is harmless rather than corrupting.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/wrench/internal/log"
	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/report"
)

// DefaultTimeout is the task time budget when none is configured.
const DefaultTimeout = 300 * time.Second

// Executor runs a unit of work with a deadline.
type Executor interface {
	Run(ctx context.Context, name string, fn func(ctx context.Context) error, timeout time.Duration) model.ExecutionResult
}

// Config is the configuration for the timeout runner.
type Config struct {
	// Sink receives the human-readable note appended when a task times out.
	Sink   report.Sink
	Logger log.Logger
}

func (c *Config) defaults() error {
	if c.Sink == nil {
		return fmt.Errorf("report sink is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "runner.Runner"})
	return nil
}

// Runner is the timeout Executor implementation.
type Runner struct {
	sink   report.Sink
	logger log.Logger
}

// NewRunner creates a new timeout runner.
func NewRunner(cfg Config) (*Runner, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Runner{sink: cfg.Sink, logger: cfg.Logger}, nil
}

// Run executes fn in a background goroutine and blocks until it finishes or
// the timeout elapses.
//
// On completion within the budget the body's own outcome is forwarded: nil
// error means Completed, a non-nil error means Failed. The body is
// responsible for reporting its own failures; the runner only writes to the
// report on timeout, where it appends a note and returns TimedOut without
// waiting for the cancelled goroutine to cease.
func (r *Runner) Run(ctx context.Context, name string, fn func(ctx context.Context) error, timeout time.Duration) model.ExecutionResult {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	runCtx, cancel := context.WithCancel(ctx)

	done := make(chan error, 1)
	go func() {
		done <- fn(runCtx)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case err := <-done:
		cancel()
		if err != nil {
			r.logger.Debugf("task %q failed: %v", name, err)
			return model.ExecutionResult{Outcome: model.OutcomeFailed, Err: err}
		}
		return model.ExecutionResult{Outcome: model.OutcomeCompleted}

	case <-ctx.Done():
		cancel()
		r.logger.Warningf("task %q cancelled: %v", name, ctx.Err())
		return model.ExecutionResult{Outcome: model.OutcomeFailed, Err: ctx.Err()}

	case <-timer.C:
		cancel()
		note := fmt.Sprintf("The %q step was interrupted because it exceeded its %s time limit.", name, timeout)
		if err := r.sink.Note(note); err != nil {
			r.logger.Errorf("could not append timeout note: %v", err)
		}
		r.logger.Warningf("task %q timed out after %s", name, timeout)
		return model.ExecutionResult{Outcome: model.OutcomeTimedOut, Err: fmt.Errorf("task %q: %w", name, model.ErrTimeout)}
	}
}
