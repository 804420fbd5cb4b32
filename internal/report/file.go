package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/slok/wrench/internal/log"
	"github.com/slok/wrench/internal/model"
)

// FilePath returns the report path for a host inside a report directory.
func FilePath(reportDir, hostname string) string {
	return filepath.Join(reportDir, hostname+".txt")
}

// FileSinkConfig is the configuration for the file sink.
type FileSinkConfig struct {
	// Dir is the directory where the report file is written.
	Dir string
	// Run identifies the maintenance run (hostname selects the file name).
	Run model.Run
	// Mirror receives a copy of everything written to the report, so the
	// console shows report content in real time. Optional.
	Mirror io.Writer
	Logger log.Logger
}

func (c *FileSinkConfig) defaults() error {
	if c.Dir == "" {
		return fmt.Errorf("report directory is required")
	}
	if c.Run.Hostname == "" {
		return fmt.Errorf("run hostname is required")
	}
	if c.Mirror == nil {
		c.Mirror = io.Discard
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "report.FileSink"})
	return nil
}

// FileSink writes the report to `<dir>/<hostname>.txt`, truncating any
// previous run's report at open.
type FileSink struct {
	file   *os.File
	mirror io.Writer
	logger log.Logger
}

// NewFileSink opens (and truncates) the report file and writes the header.
func NewFileSink(cfg FileSinkConfig) (*FileSink, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create report directory: %w", err)
	}

	path := FilePath(cfg.Dir, cfg.Run.Hostname)
	// Append mode keeps the file offset at the end even if a cancelled task
	// body writes late through another path.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("could not open report file: %w", err)
	}

	s := &FileSink{file: f, mirror: cfg.Mirror, logger: cfg.Logger}
	if err := s.write(Header(cfg.Run)); err != nil {
		f.Close()
		return nil, fmt.Errorf("could not write report header: %w", err)
	}

	s.logger.Debugf("report file opened at %s", path)
	return s, nil
}

// Section appends a titled section to the report file.
func (s *FileSink) Section(title, body string) error {
	return s.write(renderSection(title, body))
}

// Note appends a single line to the report file.
func (s *FileSink) Note(line string) error {
	return s.write(line + "\n")
}

// Path returns the report file path.
func (s *FileSink) Path() string { return s.file.Name() }

// Close closes the report file. Appends after Close are lost, not corrupting:
// the file contains everything written up to this point.
func (s *FileSink) Close() error { return s.file.Close() }

func (s *FileSink) write(text string) error {
	if _, err := io.WriteString(s.file, text); err != nil {
		return fmt.Errorf("could not append to report: %w", err)
	}
	// Mirror failures must not break the durable report.
	if _, err := io.WriteString(s.mirror, text); err != nil {
		s.logger.Debugf("could not mirror report output: %v", err)
	}
	return nil
}
