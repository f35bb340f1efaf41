package domain

import (
	"strconv"
	"strings"
)

// Resolution is a Sentinel-2 ground sampling distance in metres.
// ResolutionAll (0) selects 10, 20 and 60 m together.
type Resolution int

const (
	ResolutionAll Resolution = 0
	Resolution10  Resolution = 10
	Resolution20  Resolution = 20
	Resolution60  Resolution = 60
)

var bandsByResolution = map[Resolution][]string{
	Resolution10: {"B02", "B03", "B04", "B08", "TCI", "SCL"},
	Resolution20: {"B02", "B03", "B04", "B05", "B06", "B07", "B8A", "B11", "B12", "TCI", "SCL"},
	Resolution60: {"B01", "B02", "B03", "B04", "B05", "B06", "B07", "B8A", "B09", "B11", "B12", "TCI", "SCL"},
}

// NewResolution validates an integer resolution.
func NewResolution(n int) (Resolution, error) {
	switch r := Resolution(n); r {
	case ResolutionAll, Resolution10, Resolution20, Resolution60:
		return r, nil
	default:
		return 0, invalidInput("domain.resolution",
			"resolution must be set to 10, 20, 60, or 0 (all), got %d", n)
	}
}

// ParseResolution accepts "10", "20m", "60", "0" or "all".
func ParseResolution(s string) (Resolution, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" || in == "all" {
		return ResolutionAll, nil
	}
	n, err := strconv.Atoi(strings.TrimSuffix(in, "m"))
	if err != nil {
		return 0, invalidInput("domain.resolution",
			"resolution must be set to 10, 20, 60, or 0 (all), got %q", s)
	}
	return NewResolution(n)
}

// Expand returns the concrete resolutions this selector covers.
func (r Resolution) Expand() []Resolution {
	if r == ResolutionAll {
		return []Resolution{Resolution10, Resolution20, Resolution60}
	}
	return []Resolution{r}
}

// Bands returns the band identifiers sen2three writes at this resolution.
// It returns nil for ResolutionAll.
func (r Resolution) Bands() []string {
	b := bandsByResolution[r]
	out := make([]string, len(b))
	copy(out, b)
	if len(out) == 0 {
		return nil
	}
	return out
}

func (r Resolution) String() string {
	if r == ResolutionAll {
		return "all"
	}
	return strconv.Itoa(int(r)) + "m"
}
