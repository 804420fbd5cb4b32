package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/wrench/internal/config"
	"github.com/slok/wrench/internal/log"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	ReportDir  string
	ConfigPath string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	// No kingpin default here: an unset flag must not shadow the config
	// file's report_dir, resolveConfig falls back to the built-in default.
	app.Flag("report-dir", "Directory where maintenance reports are written.").Envar("WRENCH_REPORT_DIR").StringVar(&c.ReportDir)
	app.Flag("config", "Path to the YAML run configuration file.").Envar("WRENCH_CONFIG").StringVar(&c.ConfigPath)

	return c
}

// resolveConfig resolves the run configuration: built-in defaults first,
// then the optional YAML file, then explicit global flags on top.
func resolveConfig(rootCmd *RootCommand) (config.Config, error) {
	cfg := config.Default()

	if rootCmd.ConfigPath != "" {
		loader := config.NewYAMLLoader(os.DirFS(filepath.Dir(rootCmd.ConfigPath)))
		loaded, err := loader.Load(filepath.Base(rootCmd.ConfigPath))
		if err != nil {
			return config.Config{}, fmt.Errorf("could not load configuration: %w", err)
		}
		cfg = loaded
	}

	if rootCmd.ReportDir != "" {
		cfg.ReportDir = rootCmd.ReportDir
	}

	return cfg, nil
}
