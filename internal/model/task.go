package model

import (
	"context"
	"time"
)

// Task represents a single maintenance step in the run catalog.
//
// Interactive tasks block on operator confirmations, so they must run on the
// main flow and never inside the timeout executor (a blocked prompt is not a
// hang).
type Task struct {
	// Name identifies the step in progress output and timeout notes.
	Name string
	// Timeout bounds the step's wall-clock execution. Zero means the
	// executor default. Ignored for interactive tasks.
	Timeout time.Duration
	// Interactive marks tasks that require operator confirmation.
	Interactive bool
	// Run performs the step and appends exactly one titled section to the
	// report, including on internal failure or empty results.
	Run func(ctx context.Context) error
}

// Outcome represents the result category of a timeout-bounded execution.
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeFailed    Outcome = "failed"
	OutcomeTimedOut  Outcome = "timed-out"
)

// ExecutionResult is the outcome of running a task through the timeout
// executor. It is consumed immediately by the orchestrator, never persisted.
type ExecutionResult struct {
	Outcome Outcome
	Err     error
}
