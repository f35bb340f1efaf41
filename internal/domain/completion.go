package domain

// MissingBand records a band raster that did not glob to exactly one file.
type MissingBand struct {
	Resolution Resolution `json:"resolution"`
	Band       string     `json:"band"`
	Matches    int        `json:"matches"`
}

// CompletionReport is the outcome of checking an L3A product on disk.
type CompletionReport struct {
	Tile        Tile          `json:"tile"`
	Product     string        `json:"product"`
	ProductPath string        `json:"product_path,omitempty"`
	Found       bool          `json:"found"`
	Missing     []MissingBand `json:"missing,omitempty"`
}

// Complete is true when the product exists and every expected band exists exactly once.
func (r CompletionReport) Complete() bool {
	return r.Found && len(r.Missing) == 0
}
