// Package l3aoutput inspects level 3A products written by sen2three.
package l3aoutput

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/ports"
)

type Inspector struct{}

func NewInspector() *Inspector {
	return &Inspector{}
}

var _ ports.OutputInspector = (*Inspector)(nil)

func (i *Inspector) Products(outputDir, pattern string) ([]string, error) {
	return glob("l3aoutput.products", filepath.Join(outputDir, pattern))
}

// Check requires the product to exist and every expected band raster to match
// exactly one file. Zero or several matches are both reported as missing.
func (i *Inspector) Check(outputDir string, tile domain.Tile, pattern string, res domain.Resolution) (domain.CompletionReport, error) {
	report := domain.CompletionReport{Tile: tile, Product: pattern}

	products, err := i.Products(outputDir, pattern)
	if err != nil {
		return report, err
	}
	if len(products) > 0 {
		report.Found = true
		report.ProductPath = products[0]
	}

	for _, r := range res.Expand() {
		for _, band := range r.Bands() {
			matches, err := glob("l3aoutput.check", domain.BandFilePattern(outputDir, pattern, tile, r, band))
			if err != nil {
				return report, err
			}
			if len(matches) != 1 {
				report.Missing = append(report.Missing, domain.MissingBand{
					Resolution: r,
					Band:       band,
					Matches:    len(matches),
				})
			}
		}
	}
	return report, nil
}

func (i *Inspector) RemoveIntermediates(outputDir, pattern string, tile domain.Tile) ([]string, error) {
	files, err := glob("l3aoutput.cleanup", domain.DatabaseH5Pattern(outputDir, pattern, tile))
	if err != nil {
		return nil, err
	}

	removed := make([]string, 0, len(files))
	for _, f := range files {
		if err := os.Remove(f); err != nil {
			return removed, &domain.OpError{
				Op:   "l3aoutput.cleanup",
				Kind: domain.KindExecution,
				Path: f,
				Err:  err,
			}
		}
		removed = append(removed, f)
	}
	return removed, nil
}

func glob(op, pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindInvalidInput,
			Path: pattern,
			Err:  err,
		}
	}
	sort.Strings(matches)
	return matches, nil
}
