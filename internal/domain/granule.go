package domain

import (
	"slices"
	"time"
)

// Granule is a level 2A granule directory inside a .SAFE product.
type Granule struct {
	Path        string
	Date        time.Time
	Resolutions []Resolution
}

// Has reports whether the granule carries IMG_DATA at resolution r.
func (g Granule) Has(r Resolution) bool {
	return slices.Contains(g.Resolutions, r)
}
