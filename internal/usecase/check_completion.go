package usecase

import (
	"context"

	"github.com/aalvaropc/s2composite/internal/ctxlog"
	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/ports"
)

type CheckCompletion struct {
	outputs ports.OutputInspector
}

func NewCheckCompletion(o ports.OutputInspector) *CheckCompletion {
	return &CheckCompletion{outputs: o}
}

// Execute looks for the L3A product of tile starting at start (YYYYMMDD) in
// outputDir and checks its band rasters at res.
func (uc *CheckCompletion) Execute(ctx context.Context, tile domain.Tile, outputDir, start string, res domain.Resolution) (domain.CompletionReport, error) {
	t, err := domain.ParseTile(string(tile))
	if err != nil {
		return domain.CompletionReport{}, err
	}
	if _, err := domain.NewResolution(int(res)); err != nil {
		return domain.CompletionReport{}, err
	}
	if start == "" {
		start = domain.DefaultStart
	}
	if _, err := domain.ParseDate(start); err != nil {
		return domain.CompletionReport{}, err
	}
	dir, err := domain.CleanDir(outputDir)
	if err != nil {
		return domain.CompletionReport{}, err
	}

	report, err := uc.outputs.Check(dir, t, domain.L3AProductPattern(t, start), res)
	if err != nil {
		return report, err
	}

	log := ctxlog.FromContext(ctx)
	if !report.Found {
		log.Warn("check.product_missing", "tile", t.String(), "pattern", report.Product, "output_dir", dir)
	}
	for _, m := range report.Missing {
		log.Warn("check.band_missing", "tile", t.String(), "resolution", int(m.Resolution), "band", m.Band, "matches", m.Matches)
	}
	log.Info("check.done", "tile", t.String(), "complete", report.Complete())
	return report, nil
}
