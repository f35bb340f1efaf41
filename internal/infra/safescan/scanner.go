// Package safescan finds Sentinel-2 level 2A granules inside .SAFE products.
package safescan

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/ports"
)

type Scanner struct{}

func NewScanner() *Scanner {
	return &Scanner{}
}

var _ ports.GranuleScanner = (*Scanner)(nil)

// Granules returns every granule directory of tile under inputDir, sorted by path.
func (s *Scanner) Granules(inputDir string, tile domain.Tile) ([]domain.Granule, error) {
	pattern := domain.L2AGranulePattern(inputDir, tile)
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "safescan.glob",
			Kind: domain.KindInvalidInput,
			Path: pattern,
			Err:  err,
		}
	}
	sort.Strings(matches)

	out := make([]domain.Granule, 0, len(matches))
	for _, m := range matches {
		info, err := os.Stat(m)
		if err != nil || !info.IsDir() {
			continue
		}

		date, err := domain.GranuleDate(m)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "safescan.granule_date",
				Kind: domain.KindInvalidInput,
				Path: m,
				Err:  err,
			}
		}

		res, err := resolutions(m)
		if err != nil {
			return nil, err
		}

		out = append(out, domain.Granule{Path: m, Date: date, Resolutions: res})
	}
	return out, nil
}

func resolutions(granule string) ([]domain.Resolution, error) {
	pattern := domain.ResolutionDirPattern(granule)
	dirs, err := filepath.Glob(pattern)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "safescan.resolutions",
			Kind: domain.KindInvalidInput,
			Path: pattern,
			Err:  err,
		}
	}

	var out []domain.Resolution
	for _, d := range dirs {
		if r, ok := domain.ParseResolutionDir(d); ok {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
