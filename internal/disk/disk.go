// Package disk classifies the system disk and drives the platform integrity
// and repair utilities.
package disk

import (
	"context"
	"fmt"
	"strings"

	"github.com/slok/wrench/internal/log"
	"github.com/slok/wrench/internal/model"
	"github.com/slok/wrench/internal/sysexec"
)

// Service exposes the disk maintenance operations used by the interactive
// maintenance tasks.
type Service interface {
	// MediaType classifies the system disk media.
	MediaType(ctx context.Context) (model.MediaType, error)
	// Check runs the disk integrity check on the system volume and returns
	// its raw output plus the classified state.
	Check(ctx context.Context) (output string, state CheckState, err error)
	// ScheduleBootCheck marks the system volume dirty so the integrity
	// check runs at the next boot.
	ScheduleBootCheck(ctx context.Context) error
	// Optimize runs the maintenance pass suited to the media type:
	// defragmentation for rotational disks, retrim for solid-state ones.
	Optimize(ctx context.Context, media model.MediaType) (string, error)
}

// RepairCommand is one entry of the fixed repair sequence.
type RepairCommand struct {
	// Name is the human-readable name used in prompts and report lines.
	Name string
	Cmd  string
	Args []string
	// DiskCheck marks the command whose output is classified for the
	// locked-volume signature.
	DiskCheck bool
}

// RepairCommands returns the fixed ordered repair sequence. Each command is
// confirmed independently by the operator.
func RepairCommands() []RepairCommand {
	return []RepairCommand{
		{Name: "Disk check", Cmd: "chkdsk", Args: []string{"C:", "/scan"}, DiskCheck: true},
		{Name: "System file check", Cmd: "sfc", Args: []string{"/scannow"}},
		{Name: "Component store health check", Cmd: "DISM", Args: []string{"/Online", "/Cleanup-Image", "/CheckHealth"}},
		{Name: "Component store repair", Cmd: "DISM", Args: []string{"/Online", "/Cleanup-Image", "/RestoreHealth"}},
	}
}

// ServiceConfig is the configuration for the disk service.
type ServiceConfig struct {
	Exec sysexec.Runner
	// Volume is the system volume. Defaults to "C:".
	Volume string
	Logger log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Exec == nil {
		return fmt.Errorf("exec runner is required")
	}
	if c.Volume == "" {
		c.Volume = "C:"
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "disk.Service"})
	return nil
}

type service struct {
	exec   sysexec.Runner
	volume string
	logger log.Logger
}

// NewService creates an exec-backed disk service.
func NewService(cfg ServiceConfig) (Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &service{exec: cfg.Exec, volume: cfg.Volume, logger: cfg.Logger}, nil
}

const mediaTypeQuery = `Get-PhysicalDisk | Where-Object { $_.DeviceId -eq 0 } | Select-Object -ExpandProperty MediaType`

func (s *service) MediaType(ctx context.Context) (model.MediaType, error) {
	result, err := s.exec.Run(ctx, "powershell", "-NoProfile", "-Command", mediaTypeQuery)
	if err != nil {
		return model.MediaUnknown, fmt.Errorf("could not query disk media type: %w", err)
	}
	if result.ExitCode != 0 {
		return model.MediaUnknown, fmt.Errorf("media type query exited with code %d", result.ExitCode)
	}

	switch strings.ToLower(strings.TrimSpace(result.Output)) {
	case "hdd":
		return model.MediaRotational, nil
	case "ssd":
		return model.MediaSolidState, nil
	default:
		return model.MediaUnknown, nil
	}
}

func (s *service) Check(ctx context.Context) (string, CheckState, error) {
	result, err := s.exec.Run(ctx, "chkdsk", s.volume)
	if err != nil {
		return "", CheckStateUnknown, fmt.Errorf("could not run disk check: %w", err)
	}

	return result.Output, ClassifyCheckOutput(result.Output), nil
}

func (s *service) ScheduleBootCheck(ctx context.Context) error {
	result, err := s.exec.Run(ctx, "fsutil", "dirty", "set", s.volume)
	if err != nil {
		return fmt.Errorf("could not schedule boot-time check: %w", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("boot-time check scheduling exited with code %d: %s", result.ExitCode, strings.TrimSpace(result.Output))
	}

	s.logger.Infof("disk check scheduled for next boot on %s", s.volume)
	return nil
}

func (s *service) Optimize(ctx context.Context, media model.MediaType) (string, error) {
	args := []string{s.volume, "/O"}
	if media == model.MediaSolidState {
		// Retrim instead of defragmenting.
		args = []string{s.volume, "/L"}
	}

	result, err := s.exec.Run(ctx, "defrag", args...)
	if err != nil {
		return "", fmt.Errorf("could not optimize volume: %w", err)
	}
	if result.ExitCode != 0 {
		return result.Output, fmt.Errorf("volume optimization exited with code %d", result.ExitCode)
	}

	return result.Output, nil
}
