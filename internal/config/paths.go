package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths resolves every location the pipeline reads or writes.
// All output locations hang off the configured output directory.
type Paths struct {
	DataDir    string
	OutputDir  string
	ChartsDir  string
	ReportsDir string
	DeckFile   string
}

// NewPaths derives the path set from the configuration.
func NewPaths(cfg *Config) *Paths {
	return &Paths{
		DataDir:    cfg.Data.Dir,
		OutputDir:  cfg.Output.Dir,
		ChartsDir:  filepath.Join(cfg.Output.Dir, "charts"),
		ReportsDir: filepath.Join(cfg.Output.Dir, "reports"),
		DeckFile:   filepath.Join(cfg.Output.Dir, "reports", cfg.Output.DeckFile),
	}
}

// EnsureOutputDirs creates the chart and report directories.
// The data directory is never created: a missing one is a user error.
func (p *Paths) EnsureOutputDirs() error {
	for _, dir := range []string{p.ChartsDir, p.ReportsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	return nil
}

// DatasetPath returns the absolute location of a dataset file.
func (p *Paths) DatasetPath(fileName string) string {
	return filepath.Join(p.DataDir, fileName)
}
