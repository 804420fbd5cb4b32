// Package sysinfo gathers diagnostic facts about the workstation: identity,
// OS details, network addresses, user profiles and recent system errors.
//
// Facts come from platform utilities invoked through sysexec. Queries emit
// one item per line with fields separated by "|" so parsing stays trivial;
// there is no logic here beyond "run command, split output".
package sysinfo

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/wrench/internal/log"
	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/sysexec"
)

// Provider exposes the workstation fact queries used by maintenance tasks.
type Provider interface {
	// Overview returns host identity and OS facts.
	Overview(ctx context.Context) (*model.SystemFacts, error)
	// NetworkAddresses returns the machine's configured IP addresses.
	NetworkAddresses(ctx context.Context) ([]string, error)
	// UserProfiles enumerates local user profiles.
	UserProfiles(ctx context.Context) ([]model.UserProfile, error)
	// RecentErrors returns the latest error entries from the system log.
	RecentErrors(ctx context.Context) ([]model.EventLogEntry, error)
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "sysinfo.Provider"})
	return nil
}

type provider struct {
	exec   sysexec.Runner
	logger log.Logger
}

// NewProvider creates an exec-backed fact provider.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &provider{exec: cfg.Exec, logger: cfg.Logger}, nil
}

const (
	overviewQuery = `$os = Get-CimInstance Win32_OperatingSystem; "{0}|{1}|{2}|{3}|{4}|{5}" -f $os.CSName, $os.Caption, $os.Version, $os.BuildNumber, $os.InstallDate, $os.LastBootUpTime`
	addressQuery  = `Get-NetIPAddress -AddressFamily IPv4 | Where-Object { $_.IPAddress -ne '127.0.0.1' } | ForEach-Object { $_.IPAddress }`
	profileQuery  = `Get-CimInstance Win32_UserProfile | Where-Object { -not $_.Special } | ForEach-Object { "{0}|{1}" -f $_.LocalPath, $_.LastUseTime }`
	errorLogQuery = `Get-WinEvent -FilterHashtable @{LogName='System'; Level=2} -MaxEvents 25 | ForEach-Object { "{0}|{1}|{2}" -f $_.TimeCreated, $_.ProviderName, ($_.Message -replace "\r?\n", " ") }`
)

func (p *provider) Overview(ctx context.Context) (*model.SystemFacts, error) {
	lines, err := p.queryLines(ctx, overviewQuery)
	if err != nil {
		return nil, fmt.Errorf("could not query system overview: %w", err)
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("system overview query returned no output")
	}

	fields := strings.Split(lines[0], "|")
	if len(fields) < 6 {
		return nil, fmt.Errorf("unexpected system overview output: %q", lines[0])
	}

	return &model.SystemFacts{
		Hostname:    fields[0],
		OSName:      fields[1],
		OSVersion:   fields[2],
		OSBuild:     fields[3],
		InstallDate: fields[4],
		LastBoot:    fields[5],
	}, nil
}

func (p *provider) NetworkAddresses(ctx context.Context) ([]string, error) {
	lines, err := p.queryLines(ctx, addressQuery)
	if err != nil {
		return nil, fmt.Errorf("could not query network addresses: %w", err)
	}
	return lines, nil
}

func (p *provider) UserProfiles(ctx context.Context) ([]model.UserProfile, error) {
	lines, err := p.queryLines(ctx, profileQuery)
	if err != nil {
		return nil, fmt.Errorf("could not enumerate user profiles: %w", err)
	}

	profiles := make([]model.UserProfile, 0, len(lines))
	for _, line := range lines {
		path, lastUsed, _ := strings.Cut(line, "|")
		name := path
		if idx := strings.LastIndexAny(path, `\/`); idx >= 0 {
			name = path[idx+1:]
		}
		profiles = append(profiles, model.UserProfile{Name: name, Path: path, LastUsed: lastUsed})
	}
	return profiles, nil
}

func (p *provider) RecentErrors(ctx context.Context) ([]model.EventLogEntry, error) {
	lines, err := p.queryLines(ctx, errorLogQuery)
	if err != nil {
		return nil, fmt.Errorf("could not read system error log: %w", err)
	}

	entries := make([]model.EventLogEntry, 0, len(lines))
	for _, line := range lines {
		fields := strings.SplitN(line, "|", 3)
		entry := model.EventLogEntry{Time: fields[0]}
		if len(fields) > 1 {
			entry.Source = fields[1]
		}
		if len(fields) > 2 {
			entry.Message = fields[2]
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (p *provider) queryLines(ctx context.Context, query string) ([]string, error) {
	result, err := p.exec.Run(ctx, "powershell", "-NoProfile", "-Command", query)
	if err != nil {
		return nil, err
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("query exited with code %d: %s", result.ExitCode, strings.TrimSpace(result.Output))
	}

	return splitLines(result.Output), nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
