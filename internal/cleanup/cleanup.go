// Package cleanup deletes transient files matched by glob patterns.
// Deletion is idempotent: missing files and undeletable (in-use) entries are
// skipped, never errors.
package cleanup

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/slok/wrench/internal/log"
)

// Result summarizes one cleanup pass.
type Result struct {
	// Removed is the number of filesystem entries deleted.
	Removed int
	// Skipped is the number of matched entries that could not be deleted.
	Skipped int
}

// CleanerConfig is the configuration for the cleaner.
type CleanerConfig struct {
	Logger log.Logger
}

func (c *CleanerConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "cleanup.Cleaner"})
	return nil
}

// Cleaner removes files and directories by glob.
type Cleaner struct {
	logger log.Logger
}

// NewCleaner creates a new cleaner.
func NewCleaner(cfg CleanerConfig) (*Cleaner, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Cleaner{logger: cfg.Logger}, nil
}

// Clean removes every entry matched by the globs. Invalid patterns are
// skipped; a cleanup pass never fails the run.
func (c *Cleaner) Clean(globs []string) Result {
	var res Result
	for _, glob := range globs {
		matches, err := filepath.Glob(glob)
		if err != nil {
			c.logger.Warningf("invalid cleanup pattern %q: %v", glob, err)
			continue
		}

		for _, match := range matches {
			if err := os.RemoveAll(match); err != nil {
				c.logger.Debugf("could not remove %q: %v", match, err)
				res.Skipped++
				continue
			}
			res.Removed++
		}
	}

	c.logger.Infof("cleanup removed %d entries, skipped %d", res.Removed, res.Skipped)
	return res
}
