package run_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apprun "github.com/slok/wrench/internal/app/run"
	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/progress"
	"github.com/slok/wrench/internal/report"
	"github.com/slok/wrench/internal/runner"
)

func TestNewService(t *testing.T) {
	sink := report.NewBuffer()
	exec, err := runner.NewRunner(runner.Config{Sink: sink})
	require.NoError(t, err)

	catalog := []model.Task{{Name: "t", Run: func(ctx context.Context) error { return nil }}}

	tests := map[string]struct {
		config apprun.ServiceConfig
		expErr bool
	}{
		"valid config should create service": {
			config: apprun.ServiceConfig{Catalog: catalog, Sink: sink, Executor: exec},
			expErr: false,
		},
		"missing catalog should fail": {
			config: apprun.ServiceConfig{Sink: sink, Executor: exec},
			expErr: true,
		},
		"missing sink should fail": {
			config: apprun.ServiceConfig{Catalog: catalog, Executor: exec},
			expErr: true,
		},
		"missing executor should fail": {
			config: apprun.ServiceConfig{Catalog: catalog, Sink: sink},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)

			svc, err := apprun.NewService(test.config)

			if test.expErr {
				require.Error(err)
				require.Nil(svc)
			} else {
				require.NoError(err)
				require.NotNil(svc)
			}
		})
	}
}

// The reference end-to-end scenario: one instant success, one task that
// times out, one interactive task auto-declined.
func TestServiceRunEndToEnd(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := report.NewBuffer()
	exec, err := runner.NewRunner(runner.Config{Sink: sink})
	require.NoError(err)

	catalog := []model.Task{
		{
			Name:    "Instant success",
			Timeout: time.Second,
			Run: func(ctx context.Context) error {
				return sink.Section("Instant success", "all good")
			},
		},
		{
			Name:    "Sleeper",
			Timeout: 100 * time.Millisecond,
			Run: func(ctx context.Context) error {
				select {
				case <-time.After(time.Second):
					return sink.Section("Sleeper", "too late")
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		},
		{
			Name:        "Interactive",
			Interactive: true,
			Run: func(ctx context.Context) error {
				// Simulates an auto-declined interactive task: the decline
				// is still a report section, never a missing one.
				return sink.Section("Interactive", "declined by operator")
			},
		},
	}

	var advanced []int
	obs := progress.ObserverFunc(func(_ string, percent int) {
		advanced = append(advanced, percent)
	})

	svc, err := apprun.NewService(apprun.ServiceConfig{
		Catalog:  catalog,
		Sink:     sink,
		Executor: exec,
		Observer: obs,
	})
	require.NoError(err)

	result, err := svc.Run(context.Background(), apprun.Request{})
	require.NoError(err)

	// Every task advanced progress exactly once.
	assert.Equal([]int{33, 67, 100}, advanced)
	assert.Equal(3, result.Steps)
	assert.Equal(1, result.TimedOut)
	assert.Equal(0, result.Failed)

	// 2 task sections + 1 declined section + final timing section, in order.
	assert.Equal([]string{"Instant success", "Interactive", apprun.TimingSection}, sink.SectionTitles())

	// Exactly one timeout note.
	notes := sink.Notes()
	require.Len(notes, 1)
	assert.Contains(notes[0], "Sleeper")
}

func TestServiceRunNeverAborts(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	sink := report.NewBuffer()
	exec, err := runner.NewRunner(runner.Config{Sink: sink})
	require.NoError(err)

	catalog := []model.Task{
		{
			Name: "Failing step",
			Run: func(ctx context.Context) error {
				_ = sink.Section("Failing step", "The step failed: boom")
				return errors.New("boom")
			},
		},
		{
			Name: "Later step",
			Run: func(ctx context.Context) error {
				return sink.Section("Later step", "still ran")
			},
		},
	}

	svc, err := apprun.NewService(apprun.ServiceConfig{
		Catalog:  catalog,
		Sink:     sink,
		Executor: exec,
	})
	require.NoError(err)

	result, err := svc.Run(context.Background(), apprun.Request{})
	require.NoError(err)

	assert.Equal(1, result.Failed)
	assert.Equal([]string{"Failing step", "Later step", apprun.TimingSection}, sink.SectionTitles())
}
