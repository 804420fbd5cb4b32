package run

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/slok/wrench/internal/cleanup"
	"github.com/slok/wrench/internal/disk"
	"github.com/slok/wrench/internal/log"
	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/peripherals"
	"github.com/slok/wrench/internal/prompt"
	"github.com/slok/wrench/internal/report"
	"github.com/slok/wrench/internal/security"
	"github.com/slok/wrench/internal/sysexec"
	"github.com/slok/wrench/internal/sysinfo"
	"github.com/slok/wrench/internal/updates"
)

// Section titles, in catalog order.
const (
	SectionSystemInfo  = "System information"
	SectionNetwork     = "Network configuration"
	SectionProfiles    = "User profiles"
	SectionEventLog    = "System event log"
	SectionAntivirus   = "Antivirus status"
	SectionFirewall    = "Firewall status"
	SectionPrinters    = "Printers"
	SectionOSUpdates   = "Pending OS updates"
	SectionUpgrades    = "Software upgrades"
	SectionTempCleanup = "Temporary file cleanup"
	SectionLogCleanup  = "Log cleanup"
	SectionDisk        = "Disk maintenance"
	SectionRepair      = "Repair commands"
)

// Fixed sentences for empty results. A section is always present, never
// silently empty.
const (
	NoAddressesFound = "No network addresses were found on this machine."
	NoProfilesFound  = "No user profiles were found on this machine."
	NoErrorsFound    = "No recent error entries were found in the system log."
	NoAntivirusFound = "No antivirus products were found on this machine."
	NoFirewallFound  = "No firewall profiles were found on this machine."
	NoPrintersFound  = "No printers were found on this machine."
	NoUpdatesFound   = "No pending updates were found."
)

// CatalogConfig wires the collaborators the maintenance tasks need.
type CatalogConfig struct {
	Sink        report.Sink
	SysInfo     sysinfo.Provider
	Security    security.Provider
	Peripherals peripherals.Provider
	Updates     updates.Provider
	Cleaner     *cleanup.Cleaner
	Disk        disk.Service
	Exec        sysexec.Runner
	Prompter    prompt.Prompter

	// TempCleanupGlobs and LogCleanupGlobs configure the two cleanup steps.
	TempCleanupGlobs []string
	LogCleanupGlobs  []string
	// TaskTimeout bounds every non-interactive step. Zero uses the executor
	// default.
	TaskTimeout time.Duration

	Logger log.Logger
}

func (c *CatalogConfig) defaults() error {
	if c.Sink == nil {
		return fmt.Errorf("report sink is required")
	}
	if c.SysInfo == nil {
		return fmt.Errorf("sysinfo provider is required")
	}
	if c.Security == nil {
		return fmt.Errorf("security provider is required")
	}
	if c.Peripherals == nil {
		return fmt.Errorf("peripherals provider is required")
	}
	if c.Updates == nil {
		return fmt.Errorf("updates provider is required")
	}
	if c.Cleaner == nil {
		return fmt.Errorf("cleaner is required")
	}
	if c.Disk == nil {
		return fmt.Errorf("disk service is required")
	}
	if c.Exec == nil {
		return fmt.Errorf("exec runner is required")
	}
	if c.Prompter == nil {
		return fmt.Errorf("prompter is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "run.Catalog"})
	return nil
}

// NewCatalog builds the fixed ordered task list of a maintenance run.
//
// The two disk tasks are interactive: they block on operator confirmations,
// so they stay out of the timeout executor.
func NewCatalog(cfg CatalogConfig) ([]model.Task, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &catalog{cfg: cfg}

	return []model.Task{
		{Name: SectionSystemInfo, Timeout: cfg.TaskTimeout, Run: c.systemInformation},
		{Name: SectionNetwork, Timeout: cfg.TaskTimeout, Run: c.networkConfiguration},
		{Name: SectionProfiles, Timeout: cfg.TaskTimeout, Run: c.userProfiles},
		{Name: SectionEventLog, Timeout: cfg.TaskTimeout, Run: c.systemEventLog},
		{Name: SectionAntivirus, Timeout: cfg.TaskTimeout, Run: c.antivirusStatus},
		{Name: SectionFirewall, Timeout: cfg.TaskTimeout, Run: c.firewallStatus},
		{Name: SectionPrinters, Timeout: cfg.TaskTimeout, Run: c.printers},
		{Name: SectionOSUpdates, Timeout: cfg.TaskTimeout, Run: c.pendingUpdates},
		{Name: SectionUpgrades, Timeout: cfg.TaskTimeout, Run: c.softwareUpgrades},
		{Name: SectionTempCleanup, Timeout: cfg.TaskTimeout, Run: c.tempCleanup},
		{Name: SectionLogCleanup, Timeout: cfg.TaskTimeout, Run: c.logCleanup},
		{Name: SectionDisk, Interactive: true, Run: c.diskMaintenance},
		{Name: SectionRepair, Interactive: true, Run: c.repairCommands},
	}, nil
}

type catalog struct {
	cfg CatalogConfig
}

// failSection reports a task's internal failure as its section, then returns
// the error so the executor records the failed outcome.
func (c *catalog) failSection(title string, err error) error {
	c.cfg.Logger.Errorf("%s step failed: %v", title, err)
	if sinkErr := c.cfg.Sink.Section(title, fmt.Sprintf("The step failed: %v", err)); sinkErr != nil {
		return fmt.Errorf("could not report failure %q: %w", err, sinkErr)
	}
	return err
}

func (c *catalog) systemInformation(ctx context.Context) error {
	facts, err := c.cfg.SysInfo.Overview(ctx)
	if err != nil {
		return c.failSection(SectionSystemInfo, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hostname:     %s\n", facts.Hostname)
	fmt.Fprintf(&b, "OS:           %s\n", facts.OSName)
	fmt.Fprintf(&b, "Version:      %s (build %s)\n", facts.OSVersion, facts.OSBuild)
	fmt.Fprintf(&b, "Installed:    %s\n", facts.InstallDate)
	fmt.Fprintf(&b, "Last boot:    %s\n", facts.LastBoot)
	return c.cfg.Sink.Section(SectionSystemInfo, b.String())
}

func (c *catalog) networkConfiguration(ctx context.Context) error {
	addrs, err := c.cfg.SysInfo.NetworkAddresses(ctx)
	if err != nil {
		return c.failSection(SectionNetwork, err)
	}

	if len(addrs) == 0 {
		return c.cfg.Sink.Section(SectionNetwork, NoAddressesFound)
	}
	return c.cfg.Sink.Section(SectionNetwork, strings.Join(addrs, "\n"))
}

func (c *catalog) userProfiles(ctx context.Context) error {
	profiles, err := c.cfg.SysInfo.UserProfiles(ctx)
	if err != nil {
		return c.failSection(SectionProfiles, err)
	}

	if len(profiles) == 0 {
		return c.cfg.Sink.Section(SectionProfiles, NoProfilesFound)
	}

	var b strings.Builder
	for _, p := range profiles {
		fmt.Fprintf(&b, "%s (%s), last used %s\n", p.Name, p.Path, p.LastUsed)
	}
	return c.cfg.Sink.Section(SectionProfiles, b.String())
}

func (c *catalog) systemEventLog(ctx context.Context) error {
	entries, err := c.cfg.SysInfo.RecentErrors(ctx)
	if err != nil {
		return c.failSection(SectionEventLog, err)
	}

	if len(entries) == 0 {
		return c.cfg.Sink.Section(SectionEventLog, NoErrorsFound)
	}

	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s [%s] %s\n", e.Time, e.Source, e.Message)
	}
	return c.cfg.Sink.Section(SectionEventLog, b.String())
}

func (c *catalog) antivirusStatus(ctx context.Context) error {
	products, err := c.cfg.Security.AntivirusProducts(ctx)
	if err != nil {
		return c.failSection(SectionAntivirus, err)
	}

	if len(products) == 0 {
		return c.cfg.Sink.Section(SectionAntivirus, NoAntivirusFound)
	}

	var b strings.Builder
	for _, p := range products {
		fmt.Fprintf(&b, "%s: enabled=%t, signatures up to date=%t\n", p.Name, p.Enabled, p.UpToDate)
	}
	return c.cfg.Sink.Section(SectionAntivirus, b.String())
}

func (c *catalog) firewallStatus(ctx context.Context) error {
	profiles, err := c.cfg.Security.FirewallProfiles(ctx)
	if err != nil {
		return c.failSection(SectionFirewall, err)
	}

	if len(profiles) == 0 {
		return c.cfg.Sink.Section(SectionFirewall, NoFirewallFound)
	}

	var b strings.Builder
	for _, p := range profiles {
		state := "off"
		if p.Enabled {
			state = "on"
		}
		fmt.Fprintf(&b, "%s profile: %s\n", p.Name, state)
	}
	return c.cfg.Sink.Section(SectionFirewall, b.String())
}

func (c *catalog) printers(ctx context.Context) error {
	printers, err := c.cfg.Peripherals.Printers(ctx)
	if err != nil {
		return c.failSection(SectionPrinters, err)
	}

	if len(printers) == 0 {
		return c.cfg.Sink.Section(SectionPrinters, NoPrintersFound)
	}

	var b strings.Builder
	for _, p := range printers {
		def := ""
		if p.Default {
			def = " (default)"
		}
		fmt.Fprintf(&b, "%s%s, driver %s, port %s\n", p.Name, def, p.Driver, p.Port)
	}
	return c.cfg.Sink.Section(SectionPrinters, b.String())
}

func (c *catalog) pendingUpdates(ctx context.Context) error {
	rows, err := c.cfg.Updates.Pending(ctx)
	if err != nil {
		return c.failSection(SectionOSUpdates, err)
	}

	if len(rows) == 0 {
		return c.cfg.Sink.Section(SectionOSUpdates, NoUpdatesFound)
	}
	return c.cfg.Sink.Section(SectionOSUpdates, strings.Join(rows, "\n"))
}

func (c *catalog) softwareUpgrades(ctx context.Context) error {
	code, out, err := c.cfg.Updates.UpgradeAll(ctx)
	if err != nil {
		return c.failSection(SectionUpgrades, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Package upgrade finished with exit code %d.\n", code)
	if trimmed := strings.TrimSpace(out); trimmed != "" {
		fmt.Fprintf(&b, "%s\n", trimmed)
	}
	return c.cfg.Sink.Section(SectionUpgrades, b.String())
}

func (c *catalog) tempCleanup(ctx context.Context) error {
	res := c.cfg.Cleaner.Clean(c.cfg.TempCleanupGlobs)
	body := fmt.Sprintf("Removed %d entries, skipped %d in-use entries.", res.Removed, res.Skipped)
	return c.cfg.Sink.Section(SectionTempCleanup, body)
}

func (c *catalog) logCleanup(ctx context.Context) error {
	res := c.cfg.Cleaner.Clean(c.cfg.LogCleanupGlobs)
	body := fmt.Sprintf("Removed %d entries, skipped %d in-use entries.", res.Removed, res.Skipped)
	return c.cfg.Sink.Section(SectionLogCleanup, body)
}

func (c *catalog) diskMaintenance(ctx context.Context) error {
	media, err := c.cfg.Disk.MediaType(ctx)
	if err != nil {
		return c.failSection(SectionDisk, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Detected system disk media: %s\n", media)

	switch media {
	case model.MediaRotational:
		c.rotationalMaintenance(ctx, &b)
	case model.MediaSolidState:
		c.solidStateMaintenance(ctx, &b)
	default:
		fmt.Fprintf(&b, "Media type is unknown, no maintenance path offered.\n")
	}

	return c.cfg.Sink.Section(SectionDisk, b.String())
}

func (c *catalog) rotationalMaintenance(ctx context.Context, b *strings.Builder) {
	if !c.cfg.Prompter.Confirm("Run the disk integrity check now?") {
		fmt.Fprintf(b, "Integrity check declined by operator.\n")
		return
	}

	_, state, err := c.cfg.Disk.Check(ctx)
	if err != nil {
		fmt.Fprintf(b, "Integrity check failed: %v\n", err)
		return
	}
	fmt.Fprintf(b, "Integrity check result: %s\n", state)

	if state != disk.CheckStateLocked {
		return
	}

	if !c.cfg.Prompter.Confirm("The volume is locked. Schedule the check for the next boot?") {
		fmt.Fprintf(b, "Boot-time check declined by operator.\n")
		return
	}
	if err := c.cfg.Disk.ScheduleBootCheck(ctx); err != nil {
		fmt.Fprintf(b, "Could not schedule the boot-time check: %v\n", err)
		return
	}
	fmt.Fprintf(b, "Integrity check scheduled for the next boot.\n")
}

func (c *catalog) solidStateMaintenance(ctx context.Context, b *strings.Builder) {
	if !c.cfg.Prompter.Confirm("Optimize (retrim) the solid-state disk now?") {
		fmt.Fprintf(b, "Optimization declined by operator.\n")
		return
	}

	if _, err := c.cfg.Disk.Optimize(ctx, model.MediaSolidState); err != nil {
		fmt.Fprintf(b, "Optimization failed: %v\n", err)
		return
	}
	fmt.Fprintf(b, "Solid-state optimization completed.\n")
}

func (c *catalog) repairCommands(ctx context.Context) error {
	var b strings.Builder

	for _, cmd := range disk.RepairCommands() {
		question := fmt.Sprintf("Run %s (%s %s)?", cmd.Name, cmd.Cmd, strings.Join(cmd.Args, " "))
		if !c.cfg.Prompter.Confirm(question) {
			fmt.Fprintf(&b, "%s: declined by operator.\n", cmd.Name)
			continue
		}

		result, err := c.cfg.Exec.Run(ctx, cmd.Cmd, cmd.Args...)
		if err != nil {
			fmt.Fprintf(&b, "%s: could not run: %v\n", cmd.Name, err)
			continue
		}
		fmt.Fprintf(&b, "%s: finished with exit code %d.\n", cmd.Name, result.ExitCode)

		if !cmd.DiskCheck {
			continue
		}

		// Same locked-volume policy as the disk maintenance step.
		if disk.ClassifyCheckOutput(result.Output) != disk.CheckStateLocked {
			continue
		}
		if !c.cfg.Prompter.Confirm("The volume is locked. Schedule the check for the next boot?") {
			fmt.Fprintf(&b, "%s: boot-time check declined by operator.\n", cmd.Name)
			continue
		}
		if err := c.cfg.Disk.ScheduleBootCheck(ctx); err != nil {
			fmt.Fprintf(&b, "%s: could not schedule the boot-time check: %v\n", cmd.Name, err)
			continue
		}
		fmt.Fprintf(&b, "%s: scheduled for the next boot.\n", cmd.Name)
	}

	return c.cfg.Sink.Section(SectionRepair, b.String())
}
