package domain

import (
	"path/filepath"
	"strings"
)

// Job is one tile composite request against one input directory.
type Job struct {
	Tile       Tile
	InputDir   string
	OutputDir  string
	Dates      DateRange
	Algorithm  Algorithm
	Resolution Resolution
	Verbose    bool
}

// ProductPattern is the L3A product glob this job produces.
func (j Job) ProductPattern() string {
	return L3AProductPattern(j.Tile, j.Dates.StartString())
}

// CleanDir makes p absolute and strips any trailing separator.
func CleanDir(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		p = "."
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", &OpError{Op: "domain.clean_dir", Kind: KindInvalidInput, Path: p, Err: err}
	}
	return filepath.Clean(abs), nil
}
