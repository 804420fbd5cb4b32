// Package config loads the optional YAML run configuration.
package config

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/wrench/internal/model"
)

// Config is the validated run configuration.
type Config struct {
	// ReportDir is the directory where reports are written.
	ReportDir string
	// TaskTimeout bounds each non-interactive maintenance step.
	TaskTimeout time.Duration
	// TempCleanupGlobs are the glob patterns for the temporary file cleanup step.
	TempCleanupGlobs []string
	// LogCleanupGlobs are the glob patterns for the log cleanup step.
	LogCleanupGlobs []string
	// UpgradeCommand overrides the package upgrade executable and arguments.
	UpgradeCommand []string
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ReportDir:   filepath.Join(homedir.HomeDir(), ".wrench", "reports"),
		TaskTimeout: 300 * time.Second,
		TempCleanupGlobs: []string{
			`C:\Windows\Temp\*`,
			`C:\Users\*\AppData\Local\Temp\*`,
		},
		LogCleanupGlobs: []string{
			`C:\Windows\Logs\CBS\*.log`,
			`C:\Windows\Temp\*.log`,
		},
	}
}

// YAMLLoader loads run configuration from YAML files.
type YAMLLoader struct {
	fs fs.FS
}

// NewYAMLLoader creates a new YAML config loader.
func NewYAMLLoader(filesystem fs.FS) *YAMLLoader {
	return &YAMLLoader{fs: filesystem}
}

// Load reads a YAML file and returns a validated configuration with defaults
// applied for anything left unset.
func (l *YAMLLoader) Load(path string) (Config, error) {
	data, err := fs.ReadFile(l.fs, path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}

	var raw fileConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := raw.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w: %w", err, model.ErrNotValid)
	}

	return raw.toModel(), nil
}

// fileConfig represents the YAML structure of the run configuration.
type fileConfig struct {
	ReportDir          string   `yaml:"report_dir"`
	TaskTimeoutSeconds int      `yaml:"task_timeout_seconds"`
	TempCleanupGlobs   []string `yaml:"temp_cleanup_globs"`
	LogCleanupGlobs    []string `yaml:"log_cleanup_globs"`
	UpgradeCommand     []string `yaml:"upgrade_command"`
}

func (c fileConfig) validate() error {
	if c.TaskTimeoutSeconds < 0 {
		return fmt.Errorf("task_timeout_seconds can't be negative, got: %d", c.TaskTimeoutSeconds)
	}
	for _, cmd := range c.UpgradeCommand {
		if cmd == "" {
			return fmt.Errorf("upgrade_command entries can't be empty")
		}
	}
	return nil
}

func (c fileConfig) toModel() Config {
	cfg := Default()

	if c.ReportDir != "" {
		cfg.ReportDir = c.ReportDir
	}
	if c.TaskTimeoutSeconds > 0 {
		cfg.TaskTimeout = time.Duration(c.TaskTimeoutSeconds) * time.Second
	}
	if c.TempCleanupGlobs != nil {
		cfg.TempCleanupGlobs = c.TempCleanupGlobs
	}
	if c.LogCleanupGlobs != nil {
		cfg.LogCleanupGlobs = c.LogCleanupGlobs
	}
	if len(c.UpgradeCommand) > 0 {
		cfg.UpgradeCommand = c.UpgradeCommand
	}

	return cfg
}
