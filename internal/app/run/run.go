// Package run implements the maintenance run orchestrator: it drives the
// task catalog in order, wraps non-interactive tasks with the timeout
// executor, publishes progress and appends the final timing section.
package run

import (
	"context"
	"fmt"
	"time"

	"github.com/slok/wrench/internal/log"
	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/printer"
	"github.com/slok/wrench/internal/progress"
	"github.com/slok/wrench/internal/report"
	"github.com/slok/wrench/internal/runner"
)

// TimingSection is the title of the final section appended after all tasks.
const TimingSection = "Total execution time"

// ServiceConfig is the configuration for the orchestrator service.
type ServiceConfig struct {
	Catalog  []model.Task
	Sink     report.Sink
	Executor runner.Executor
	Observer progress.Observer
	Logger   log.Logger
}

func (c *ServiceConfig) defaults() error {
	if len(c.Catalog) == 0 {
		return fmt.Errorf("task catalog is required")
	}
	if c.Sink == nil {
		return fmt.Errorf("report sink is required")
	}
	if c.Executor == nil {
		return fmt.Errorf("timeout executor is required")
	}
	if c.Observer == nil {
		c.Observer = progress.Noop
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Run"})
	return nil
}

// Service orchestrates a maintenance run.
type Service struct {
	catalog  []model.Task
	sink     report.Sink
	executor runner.Executor
	observer progress.Observer
	logger   log.Logger
}

// NewService creates a new orchestrator service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		catalog:  cfg.Catalog,
		sink:     cfg.Sink,
		executor: cfg.Executor,
		observer: cfg.Observer,
		logger:   cfg.Logger,
	}, nil
}

// Request represents the run request parameters.
type Request struct{}

// Result summarizes a completed maintenance run.
type Result struct {
	Steps    int
	Failed   int
	TimedOut int
	Elapsed  time.Duration
}

// Run executes every catalog task in order. A task failure or timeout never
// aborts the run: each is recorded in the report and the run proceeds to the
// next task. The only returned errors are report-sink failures on the final
// timing section.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	tracker := progress.NewTracker(len(s.catalog), s.observer)
	res := &Result{}

	for _, task := range s.catalog {
		tracker.Advance(task.Name)
		res.Steps++

		if task.Interactive {
			// Interactive tasks block on operator input, a blocked prompt
			// must never be force-cancelled as a hang.
			if err := task.Run(ctx); err != nil {
				s.logger.Warningf("interactive task %q failed: %v", task.Name, err)
				res.Failed++
			}
			continue
		}

		execRes := s.executor.Run(ctx, task.Name, task.Run, task.Timeout)
		switch execRes.Outcome {
		case model.OutcomeFailed:
			res.Failed++
		case model.OutcomeTimedOut:
			res.TimedOut++
		}
	}

	res.Elapsed = time.Since(start)
	if err := s.sink.Section(TimingSection, printer.FormatMinutes(res.Elapsed.Minutes())); err != nil {
		return res, fmt.Errorf("could not append timing section: %w", err)
	}

	s.logger.Infof("maintenance run finished: %d steps, %d failed, %d timed out, took %s",
		res.Steps, res.Failed, res.TimedOut, res.Elapsed)

	return res, nil
}
