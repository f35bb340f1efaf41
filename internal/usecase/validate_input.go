package usecase

import (
	"context"

	"github.com/aalvaropc/s2composite/internal/ctxlog"
	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/ports"
)

type ValidateInput struct {
	granules ports.GranuleScanner
}

func NewValidateInput(g ports.GranuleScanner) *ValidateInput {
	return &ValidateInput{granules: g}
}

// Execute checks that the input directory holds level 2A data for the job's
// tile inside its date range, at every requested resolution. It returns the
// granules that sen2three will composite.
func (uc *ValidateInput) Execute(ctx context.Context, job domain.Job) ([]domain.Granule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	job, err := PrepareJob(job)
	if err != nil {
		return nil, err
	}

	all, err := uc.granules.Granules(job.InputDir, job.Tile)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, opErr("usecase.validate_input", domain.KindNotFound, domain.ErrNotFound,
			"input directory must contain at least one Sentinel-2 level 2A file from tile %s", job.Tile.Filter())
	}

	var inRange []domain.Granule
	for _, g := range all {
		if job.Dates.Contains(g.Date) {
			inRange = append(inRange, g)
		}
	}
	if len(inRange) == 0 {
		return nil, opErr("usecase.validate_input", domain.KindNotFound, domain.ErrNotFound,
			"input directory must contain at least one Sentinel-2 level 2A file from tile %s between %s and %s",
			job.Tile.Filter(), job.Dates.StartString(), job.Dates.EndString())
	}

	for _, r := range job.Resolution.Expand() {
		for _, g := range inRange {
			if !g.Has(r) {
				return nil, opErr("usecase.validate_input", domain.KindInvalidInput, domain.ErrInvalidInput,
					"granule %s has no %s data; every level 2A input must be processed at resolution %s",
					g.Path, r, job.Resolution)
			}
		}
	}

	ctxlog.FromContext(ctx).Debug("validate.ok",
		"tile", job.Tile.String(),
		"input_dir", job.InputDir,
		"granules", len(all),
		"in_range", len(inRange),
	)
	return inRange, nil
}
