package domain

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// L3AProductPattern is the glob for the .SAFE product sen2three writes for a tile
// composite starting at start (YYYYMMDD).
func L3AProductPattern(tile Tile, start string) string {
	return fmt.Sprintf("S2?_MSIL03_????????T??????_N????_R???_%s_%sT000000.SAFE", tile.Filter(), start)
}

// L2AGranulePattern matches the level 2A granule directories of tile under inputDir.
func L2AGranulePattern(inputDir string, tile Tile) string {
	return filepath.Join(inputDir, "S2?_MSIL2A_*.SAFE", "GRANULE", "*"+tile.Filter()+"*")
}

// ResolutionDirPattern matches the IMG_DATA/R<N>m directories of a granule.
func ResolutionDirPattern(granuleDir string) string {
	return filepath.Join(granuleDir, "IMG_DATA", "R*m")
}

// BandFilePattern matches one band raster of an L3A product.
func BandFilePattern(outputDir, product string, tile Tile, res Resolution, band string) string {
	r := strconv.Itoa(int(res))
	return filepath.Join(outputDir, product, "GRANULE", "*", "IMG_DATA", "R"+r+"m",
		fmt.Sprintf("L03_%s_????????T??????_%s_%sm.jp2", tile.Filter(), band, r))
}

// DatabaseH5Pattern matches the sen2three intermediate databases left inside a product.
func DatabaseH5Pattern(outputDir, product string, tile Tile) string {
	return filepath.Join(outputDir, product, "GRANULE", "*"+tile.Filter()+"*", "IMG_DATA", "R*m", ".database.h5")
}

// GranuleDate extracts the sensing date from a granule directory name such as
// L2A_T36KWA_A007563_20161212T075250.
func GranuleDate(granule string) (time.Time, error) {
	name := filepath.Base(strings.TrimRight(granule, "/"))
	parts := strings.Split(name, "_")
	stamp := parts[len(parts)-1]
	if i := strings.Index(stamp, "T"); i >= 0 {
		stamp = stamp[:i]
	}
	t, err := time.Parse(DateLayout, stamp)
	if err != nil {
		return time.Time{}, invalidInput("domain.granule_date",
			"cannot read sensing date from granule %s", name)
	}
	return t, nil
}

// ParseResolutionDir turns "R20m" into 20.
func ParseResolutionDir(name string) (Resolution, bool) {
	base := filepath.Base(name)
	if !strings.HasPrefix(base, "R") || !strings.HasSuffix(base, "m") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(base, "R"), "m"))
	if err != nil || n <= 0 {
		return 0, false
	}
	return Resolution(n), true
}
