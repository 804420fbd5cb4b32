package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/wrench/internal/report"
)

type ReportCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand
}

// NewReportCommand returns the report command.
func NewReportCommand(rootCmd *RootCommand, app *kingpin.Application) *ReportCommand {
	c := &ReportCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("report", "Print the report path a maintenance run writes on this host.")

	return c
}

func (c ReportCommand) Name() string { return c.Cmd.FullCommand() }

func (c ReportCommand) Run(ctx context.Context) error {
	// Same resolution as the run command, so the printed path is the one a
	// run would write.
	cfg, err := resolveConfig(c.rootCmd)
	if err != nil {
		return err
	}

	hostname, err := os.Hostname()
	if err != nil {
		return fmt.Errorf("could not get hostname: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, report.FilePath(cfg.ReportDir, hostname))
	return nil
}
