package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/s2composite/internal/domain"
)

// jobFlags are shared by process and validate.
type jobFlags struct {
	tile       string
	start      string
	end        string
	outputDir  string
	algorithm  string
	resolution string
	verbose    bool
}

func (f *jobFlags) register(c *cobra.Command, withProcessing bool) {
	c.Flags().StringVarP(&f.tile, "tile", "t", "", "Sentinel-2 tile to process, e.g. 36KWA or T36KWA (required)")
	c.Flags().StringVarP(&f.start, "start", "s", "", "Start date YYYYMMDD (default from config, 20150101)")
	c.Flags().StringVarP(&f.end, "end", "e", "", "End date YYYYMMDD (default today)")
	c.Flags().StringVarP(&f.resolution, "resolution", "r", "", "Resolution to process: 10, 20, 60 or all (default from config)")
	if withProcessing {
		c.Flags().StringVarP(&f.outputDir, "output_dir", "o", "", "Directory to write the L3A product to (default working directory)")
		c.Flags().StringVarP(&f.algorithm, "algorithm", "a", "", "Compositing algorithm: MOST_RECENT, TEMP_HOMOGENEITY, RADIOMETRIC_QUALITY or AVERAGE")
		c.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Print the sen2three command and its output")
	}
	_ = c.MarkFlagRequired("tile")
}

// job builds a job for inputDir from flags, falling back to config defaults.
func (f *jobFlags) job(cfg domain.Config, inputDir string, now time.Time) (domain.Job, error) {
	tile, err := domain.ParseTile(f.tile)
	if err != nil {
		return domain.Job{}, err
	}

	start := f.start
	if start == "" {
		start = cfg.Defaults.Start
	}
	dates, err := domain.NewDateRange(start, f.end, now)
	if err != nil {
		return domain.Job{}, err
	}

	alg := cfg.Defaults.Algorithm
	if f.algorithm != "" {
		if alg, err = domain.ParseAlgorithm(f.algorithm); err != nil {
			return domain.Job{}, err
		}
	}

	res := cfg.Defaults.Resolution
	if f.resolution != "" {
		if res, err = domain.ParseResolution(f.resolution); err != nil {
			return domain.Job{}, err
		}
	}

	return domain.Job{
		Tile:       tile,
		InputDir:   inputDir,
		OutputDir:  f.outputDir,
		Dates:      dates,
		Algorithm:  alg,
		Resolution: res,
		Verbose:    f.verbose,
	}, nil
}
