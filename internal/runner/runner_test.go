package runner_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/report"
	"github.com/slok/wrench/internal/runner"
)

func TestNewRunner(t *testing.T) {
	tests := map[string]struct {
		config runner.Config
		expErr bool
	}{
		"valid config should create runner": {
			config: runner.Config{Sink: report.NewBuffer()},
			expErr: false,
		},
		"missing sink should fail": {
			config: runner.Config{},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			r, err := runner.NewRunner(test.config)

			if test.expErr {
				require.Error(err)
				require.Nil(r)
			} else {
				require.NoError(err)
				require.NotNil(r)
			}
		})
	}
}

func TestRunnerRun(t *testing.T) {
	tests := map[string]struct {
		fn         func(sink report.Sink) func(ctx context.Context) error
		timeout    time.Duration
		expOutcome model.Outcome
		expErr     bool
		expNotes   int
	}{
		"a body finishing within the budget is forwarded as completed": {
			fn: func(sink report.Sink) func(ctx context.Context) error {
				return func(ctx context.Context) error {
					return sink.Section("Quick step", "done")
				}
			},
			timeout:    500 * time.Millisecond,
			expOutcome: model.OutcomeCompleted,
			expNotes:   0,
		},
		"a body returning an error is forwarded as failed without a note": {
			fn: func(sink report.Sink) func(ctx context.Context) error {
				return func(ctx context.Context) error {
					return fmt.Errorf("platform call failed")
				}
			},
			timeout:    500 * time.Millisecond,
			expOutcome: model.OutcomeFailed,
			expErr:     true,
			expNotes:   0,
		},
		"a body sleeping past the budget times out and a note is appended": {
			fn: func(sink report.Sink) func(ctx context.Context) error {
				return func(ctx context.Context) error {
					select {
					case <-time.After(5 * time.Second):
						return nil
					case <-ctx.Done():
						return ctx.Err()
					}
				}
			},
			timeout:    100 * time.Millisecond,
			expOutcome: model.OutcomeTimedOut,
			expErr:     true,
			expNotes:   1,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			require := require.New(t)

			sink := report.NewBuffer()
			r, err := runner.NewRunner(runner.Config{Sink: sink})
			require.NoError(err)

			start := time.Now()
			result := r.Run(context.Background(), "Test step", test.fn(sink), test.timeout)
			elapsed := time.Since(start)

			assert.Equal(test.expOutcome, result.Outcome)
			if test.expErr {
				assert.Error(result.Err)
			} else {
				assert.NoError(result.Err)
			}
			assert.Len(sink.Notes(), test.expNotes)

			// A timed out run must return within timeout plus a small
			// margin, never wait for the body to finish.
			assert.Less(elapsed, test.timeout+400*time.Millisecond)
		})
	}
}

func TestRunnerRunTimeoutDetails(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := report.NewBuffer()
	r, err := runner.NewRunner(runner.Config{Sink: sink})
	require.NoError(err)

	result := r.Run(context.Background(), "Disk facts", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, 50*time.Millisecond)

	assert.Equal(model.OutcomeTimedOut, result.Outcome)
	assert.ErrorIs(result.Err, model.ErrTimeout)

	notes := sink.Notes()
	require.Len(notes, 1)
	assert.Contains(notes[0], "Disk facts")
	assert.Contains(notes[0], "interrupted")
}

func TestRunnerRunCompletedAppendsVisible(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := report.NewBuffer()
	r, err := runner.NewRunner(runner.Config{Sink: sink})
	require.NoError(err)

	result := r.Run(context.Background(), "Facts", func(ctx context.Context) error {
		return sink.Section("System facts", "hostname: test")
	}, time.Second)

	require.Equal(model.OutcomeCompleted, result.Outcome)
	// Appends from the background goroutine are visible after Run returns.
	assert.Equal([]string{"System facts"}, sink.SectionTitles())
}

func TestRunnerRunCancelledContext(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := report.NewBuffer()
	r, err := runner.NewRunner(runner.Config{Sink: sink})
	require.NoError(err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := r.Run(ctx, "Facts", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}, time.Second)

	assert.Equal(model.OutcomeFailed, result.Outcome)
	assert.Error(result.Err)
	assert.Empty(sink.Notes())
}
