package ports

import "github.com/aalvaropc/s2composite/internal/domain"

// GranuleScanner lists the level 2A granules of a tile in an input directory.
type GranuleScanner interface {
	Granules(inputDir string, tile domain.Tile) ([]domain.Granule, error)
}
