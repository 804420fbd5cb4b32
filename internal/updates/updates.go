// Package updates lists pending updates and drives the package upgrade tool.
package updates

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/wrench/internal/log"
	"github.com/slok/wrench/internal/sysexec"
)

// Provider lists pending updates and invokes the upgrade executable.
type Provider interface {
	// Pending returns one line per pending update.
	Pending(ctx context.Context) ([]string, error)
	// UpgradeAll runs the package upgrade executable and returns its exit
	// code and output. A non-zero exit code is reported, not returned as an
	// error.
	UpgradeAll(ctx context.Context) (exitCode int, output string, err error)
}

// ProviderConfig is the configuration for the exec-backed provider.
type ProviderConfig struct {
	Exec sysexec.Runner
	// UpgradeCommand is the package upgrade executable and its arguments.
	// Defaults to winget upgrading everything silently.
	UpgradeCommand []string
	Logger         log.Logger
}

func (c *ProviderConfig) defaults() error {
	if c.Exec == nil {
		return fmt.Errorf("exec runner is required")
	}
	if len(c.UpgradeCommand) == 0 {
		c.UpgradeCommand = []string{"winget", "upgrade", "--all", "--silent", "--accept-package-agreements", "--accept-source-agreements"}
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "updates.Provider"})
	return nil
}

type provider struct {
	exec       sysexec.Runner
	upgradeCmd []string
	logger     log.Logger
}

// NewProvider creates an exec-backed update provider.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &provider{exec: cfg.Exec, upgradeCmd: cfg.UpgradeCommand, logger: cfg.Logger}, nil
}

func (p *provider) Pending(ctx context.Context) ([]string, error) {
	result, err := p.exec.Run(ctx, "winget", "upgrade", "--include-unknown")
	if err != nil {
		return nil, fmt.Errorf("could not list pending updates: %w", err)
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("update list exited with code %d", result.ExitCode)
	}

	return parseUpgradeTable(result.Output), nil
}

func (p *provider) UpgradeAll(ctx context.Context) (int, string, error) {
	p.logger.Infof("running package upgrade: %s", strings.Join(p.upgradeCmd, " "))

	result, err := p.exec.Run(ctx, p.upgradeCmd[0], p.upgradeCmd[1:]...)
	if err != nil {
		return 0, "", fmt.Errorf("could not run package upgrade: %w", err)
	}

	return result.ExitCode, result.Output, nil
}

// parseUpgradeTable keeps the item rows of the upgrade listing: everything
// after the header separator line, minus the trailing summary line.
func parseUpgradeTable(out string) []string {
	var rows []string
	pastHeader := false
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		trimmed := strings.TrimSpace(line)

		if !pastHeader {
			if strings.HasPrefix(trimmed, "---") {
				pastHeader = true
			}
			continue
		}
		if trimmed == "" {
			continue
		}
		// Summary line, e.g. "3 upgrades available."
		if strings.Contains(trimmed, "upgrades available") || strings.Contains(trimmed, "upgrade available") {
			continue
		}
		rows = append(rows, trimmed)
	}
	return rows
}
