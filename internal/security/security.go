// Package security reads antivirus and firewall state from the platform
// security center.
package security

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/wrench/internal/log"
	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/sysexec"
)

// Provider exposes security posture queries.
type Provider interface {
	// AntivirusProducts returns the registered antivirus products.
	AntivirusProducts(ctx context.Context) ([]model.SecurityProduct, error)
	// FirewallProfiles returns the firewall profiles and whether each is on.
	FirewallProfiles(ctx context.Context) ([]model.FirewallProfile, error)
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "security.Provider"})
	return nil
}

type provider struct {
	exec   sysexec.Runner
	logger log.Logger
}

// NewProvider creates an exec-backed security provider.
func NewProvider(cfg ProviderConfig) (Provider, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &provider{exec: cfg.Exec, logger: cfg.Logger}, nil
}

const (
	// productState is a bitfield: bit 12 (0x1000) enabled, bit 4 (0x10) of
	// the low byte signatures out of date.
	antivirusQuery = `Get-CimInstance -Namespace root/SecurityCenter2 -ClassName AntiVirusProduct | ForEach-Object { "{0}|{1}" -f $_.displayName, $_.productState }`
	firewallQuery  = `Get-NetFirewallProfile | ForEach-Object { "{0}|{1}" -f $_.Name, $_.Enabled }`
)

func (p *provider) AntivirusProducts(ctx context.Context) ([]model.SecurityProduct, error) {
	result, err := p.exec.Run(ctx, "powershell", "-NoProfile", "-Command", antivirusQuery)
	if err != nil {
		return nil, fmt.Errorf("could not query antivirus products: %w", err)
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("antivirus query exited with code %d", result.ExitCode)
	}

	var products []model.SecurityProduct
	for _, line := range splitLines(result.Output) {
		name, state, _ := strings.Cut(line, "|")
		products = append(products, model.SecurityProduct{
			Name:     name,
			Enabled:  parseProductState(state)&0x1000 != 0,
			UpToDate: parseProductState(state)&0x10 == 0,
		})
	}
	return products, nil
}

func (p *provider) FirewallProfiles(ctx context.Context) ([]model.FirewallProfile, error) {
	result, err := p.exec.Run(ctx, "powershell", "-NoProfile", "-Command", firewallQuery)
	if err != nil {
		return nil, fmt.Errorf("could not query firewall profiles: %w", err)
	}
	if result.ExitCode != 0 {
		return nil, fmt.Errorf("firewall query exited with code %d", result.ExitCode)
	}

	var profiles []model.FirewallProfile
	for _, line := range splitLines(result.Output) {
		name, enabled, _ := strings.Cut(line, "|")
		profiles = append(profiles, model.FirewallProfile{
			Name:    name,
			Enabled: strings.EqualFold(strings.TrimSpace(enabled), "true") || strings.TrimSpace(enabled) == "1",
		})
	}
	return profiles, nil
}

func parseProductState(s string) int {
	var state int
	fmt.Sscanf(strings.TrimSpace(s), "%d", &state)
	return state
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
