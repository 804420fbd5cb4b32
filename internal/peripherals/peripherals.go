// Package peripherals enumerates attached peripherals, currently printers.
package peripherals

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/wrench/internal/log"
	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/sysexec"
)

// Provider exposes peripheral enumeration.
type Provider interface {
	// Printers returns the installed printers.
	Printers(ctx context.Context) ([]model.Printer, error)
}

// ProviderConfig is the configuration for the exec-backed provider.
type ProviderConfig struct {
	Exec   sysexec.Runner
	Logger log.Logger
}

func (c *ProviderConfig) defaults() error {
	if c.Exec == nil {
		return fmt.Errorf("exec runner is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "peripherals.Provider"})
	return nil
}

type provider struct {
	exec   sysexec.Runner
	logger log.Logger
}

// NewProvider creates an exec-backed peripherals provider.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &provider{exec: cfg.Exec, logger: cfg.Logger}, nil
}

const printerQuery = `Get-CimInstance Win32_Printer | ForEach-Object { "{0}|{1}|{2}|{3}" -f $_.Name, $_.DriverName, $_.PortName, $_.Default }`

func (p *provider) Printers(ctx context.Context) ([]model.Printer, error) {
	result, err := p.exec.Run(ctx, "powershell", "-NoProfile", "-Command", printerQuery)
	if err != nil {
		return nil, fmt.Errorf("could not enumerate printers: %w", err)
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("printer query exited with code %d", result.ExitCode)
	}

	var printers []model.Printer
	for _, line := range strings.Split(result.Output, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" {
			continue
		}

		fields := strings.Split(line, "|")
		printer := model.Printer{Name: fields[0]}
		if len(fields) > 1 {
			printer.Driver = fields[1]
		}
		if len(fields) > 2 {
			printer.Port = fields[2]
		}
		if len(fields) > 3 {
			printer.Default = strings.EqualFold(fields[3], "true")
		}
		printers = append(printers, printer)
	}
	return printers, nil
}
