package ports

import "github.com/aalvaropc/s2composite/internal/domain"

// OutputInspector looks at L3A products on disk.
type OutputInspector interface {
	// Products returns the products in outputDir matching the product pattern.
	Products(outputDir, pattern string) ([]string, error)
	// Check verifies the band rasters of the product for the given resolutions.
	Check(outputDir string, tile domain.Tile, pattern string, res domain.Resolution) (domain.CompletionReport, error)
	// RemoveIntermediates deletes sen2three databases left in the product and returns what was removed.
	RemoveIntermediates(outputDir, pattern string, tile domain.Tile) ([]string, error)
}
