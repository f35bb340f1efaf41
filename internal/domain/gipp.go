package domain

import (
	"path/filepath"
	"strings"
)

// GIPP element paths, relative to the document root element.
const (
	GIPPTargetDirectory = "Common_Section/Target_Directory"
	GIPPMinTime         = "L3_Synthesis/Min_Time"
	GIPPMaxTime         = "L3_Synthesis/Max_Time"
	GIPPTileFilter      = "L3_Synthesis/Tile_Filter"
	GIPPAlgorithm       = "L3_Synthesis/Algorithm"
)

// GIPPSettings are the L3_GIPP.xml values s2composite controls.
type GIPPSettings struct {
	TargetDirectory string
	MinTime         string
	MaxTime         string
	TileFilter      string
	Algorithm       Algorithm
}

// NewGIPPSettings derives the settings for job. The target directory always
// ends with a separator, as sen2three concatenates product names onto it.
func NewGIPPSettings(job Job) GIPPSettings {
	dir := job.OutputDir
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	return GIPPSettings{
		TargetDirectory: dir,
		MinTime:         job.Dates.MinTime(),
		MaxTime:         job.Dates.MaxTime(),
		TileFilter:      job.Tile.Filter(),
		Algorithm:       job.Algorithm,
	}
}

// Values returns element path -> text, in a stable order of application.
func (s GIPPSettings) Values() []GIPPValue {
	return []GIPPValue{
		{Path: GIPPTargetDirectory, Text: s.TargetDirectory},
		{Path: GIPPMinTime, Text: s.MinTime},
		{Path: GIPPMaxTime, Text: s.MaxTime},
		{Path: GIPPTileFilter, Text: s.TileFilter},
		{Path: GIPPAlgorithm, Text: string(s.Algorithm)},
	}
}

// GIPPValue is the new text for one element.
type GIPPValue struct {
	Path string
	Text string
}
