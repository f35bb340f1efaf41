package domain

import (
	"regexp"
	"strings"
)

var reTile = regexp.MustCompile(`^[0-9]{2}[A-Z]{3}$`)

// Tile is a Sentinel-2 MGRS grid cell in the form ##XXX (e.g. 36KWA).
type Tile string

// ParseTile accepts "36KWA" or "T36KWA", dropping any leading T, and validates
// the ##XXX shape.
func ParseTile(s string) (Tile, error) {
	in := strings.TrimLeft(strings.TrimSpace(s), "T")
	if !ValidTile(in) {
		return "", invalidInput("domain.parse_tile",
			"tile %s is not a correctly formatted Sentinel-2 tile (e.g. T36KWA)", s)
	}
	return Tile(in), nil
}

// ValidTile reports whether s is exactly two digits followed by three upper-case letters.
func ValidTile(s string) bool {
	return reTile.MatchString(s)
}

func (t Tile) String() string { return string(t) }

// Filter returns the T-prefixed form used in granule names and the GIPP Tile_Filter.
func (t Tile) Filter() string { return "T" + string(t) }
