package commands

import (
	"context"
	"crypto/rand"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/oklog/ulid/v2"

	apprun "github.com/slok/wrench/internal/app/run"
	"github.com/slok/wrench/internal/cleanup"
	"github.com/slok/wrench/internal/disk"
	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/peripherals"
	"github.com/slok/wrench/internal/progress"
	"github.com/slok/wrench/internal/prompt"
	"github.com/slok/wrench/internal/report"
	"github.com/slok/wrench/internal/runner"
	"github.com/slok/wrench/internal/security"
	"github.com/slok/wrench/internal/sysexec"
	"github.com/slok/wrench/internal/sysinfo"
	"github.com/slok/wrench/internal/updates"
)

type RunCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	taskTimeout    time.Duration
	assumeYes      bool
	nonInteractive bool
}

// NewRunCommand returns the run command.
func NewRunCommand(rootCmd *RootCommand, app *kingpin.Application) *RunCommand {
	c := &RunCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("run", "Run the full maintenance pass and write the report.")
	c.Cmd.Flag("task-timeout", "Time budget for each non-interactive step.").DurationVar(&c.taskTimeout)
	c.Cmd.Flag("yes", "Answer yes to every interactive confirmation.").BoolVar(&c.assumeYes)
	c.Cmd.Flag("non-interactive", "Answer no to every interactive confirmation.").BoolVar(&c.nonInteractive)

	return c
}

func (c RunCommand) Name() string { return c.Cmd.FullCommand() }

func (c RunCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	if c.assumeYes && c.nonInteractive {
		return fmt.Errorf("--yes and --non-interactive are mutually exclusive: %w", model.ErrNotValid)
	}

	// Run configuration: defaults, file config, then flags on top.
	cfg, err := resolveConfig(c.rootCmd)
	if err != nil {
		return err
	}
	if c.taskTimeout > 0 {
		cfg.TaskTimeout = c.taskTimeout
	}

	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("could not get hostname: %w", err)
	}

	run := model.Run{
		ID:        ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String(),
		Hostname:  hostname,
		StartedAt: time.Now().UTC(),
	}
	logger.Infof("Starting maintenance run %s on %s", run.ID, run.Hostname)

	// Report sink, mirroring to the console.
	sink, err := report.NewFileSink(report.FileSinkConfig{
		Dir:    cfg.ReportDir,
		Run:    run,
		Mirror: c.rootCmd.Stdout,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not open report: %w", err)
	}
	defer sink.Close()

	// Collaborators.
	execRunner, err := sysexec.NewOSRunner(sysexec.OSRunnerConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create command runner: %w", err)
	}

	sysinfoProvider, err := sysinfo.NewProvider(sysinfo.ProviderConfig{Exec: execRunner, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create sysinfo provider: %w", err)
	}

	securityProvider, err := security.NewProvider(security.ProviderConfig{Exec: execRunner, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create security provider: %w", err)
	}

	peripheralsProvider, err := peripherals.NewProvider(peripherals.ProviderConfig{Exec: execRunner, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create peripherals provider: %w", err)
	}

	updatesProvider, err := updates.NewProvider(updates.ProviderConfig{
		Exec:           execRunner,
		UpgradeCommand: cfg.UpgradeCommand,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("could not create updates provider: %w", err)
	}

	cleaner, err := cleanup.NewCleaner(cleanup.CleanerConfig{Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create cleaner: %w", err)
	}

	diskService, err := disk.NewService(disk.ServiceConfig{Exec: execRunner, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create disk service: %w", err)
	}

	var prompter prompt.Prompter
	switch {
	case c.assumeYes:
		prompter = &prompt.Auto{Answer: true}
	case c.nonInteractive:
		prompter = &prompt.Auto{Answer: false}
	default:
		prompter = prompt.NewTerminalPrompter(c.rootCmd.Stdin, c.rootCmd.Stdout)
	}

	// Orchestration core.
	timeoutRunner, err := runner.NewRunner(runner.Config{Sink: sink, Logger: logger})
	if err != nil {
		return fmt.Errorf("could not create timeout runner: %w", err)
	}

	catalog, err := apprun.NewCatalog(apprun.CatalogConfig{
		Sink:             sink,
		SysInfo:          sysinfoProvider,
		Security:         securityProvider,
		Peripherals:      peripheralsProvider,
		Updates:          updatesProvider,
		Cleaner:          cleaner,
		Disk:             diskService,
		Exec:             execRunner,
		Prompter:         prompter,
		TempCleanupGlobs: cfg.TempCleanupGlobs,
		LogCleanupGlobs:  cfg.LogCleanupGlobs,
		TaskTimeout:      cfg.TaskTimeout,
		Logger:           logger,
	})
	if err != nil {
		return fmt.Errorf("could not build task catalog: %w", err)
	}

	observer := progress.NewConsoleObserver(c.rootCmd.Stderr)
	svc, err := apprun.NewService(apprun.ServiceConfig{
		Catalog:  catalog,
		Sink:     sink,
		Executor: timeoutRunner,
		Observer: observer,
		Logger:   logger,
	})
	if err != nil {
		return fmt.Errorf("could not create run service: %w", err)
	}

	result, err := svc.Run(ctx, apprun.Request{})
	observer.Finish()
	if err != nil {
		return fmt.Errorf("maintenance run failed: %w", err)
	}

	// Per-task failures and timeouts are recorded in the report, never
	// surfaced as a non-zero exit.
	fmt.Fprintf(c.rootCmd.Stdout, "Report written to %s (%d steps, %d failed, %d timed out)\n",
		sink.Path(), result.Steps, result.Failed, result.TimedOut)

	return nil
}
