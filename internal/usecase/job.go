package usecase

import (
	"github.com/aalvaropc/s2composite/internal/domain"
)

// PrepareJob cleanses user input: directories become absolute without a
// trailing separator, a leading "T" is stripped from the tile, and an empty
// algorithm falls back to the default.
func PrepareJob(job domain.Job) (domain.Job, error) {
	tile, err := domain.ParseTile(string(job.Tile))
	if err != nil {
		return job, err
	}
	job.Tile = tile

	if _, err := domain.NewResolution(int(job.Resolution)); err != nil {
		return job, err
	}

	alg, err := domain.ParseAlgorithm(string(job.Algorithm))
	if err != nil {
		return job, err
	}
	job.Algorithm = alg

	if job.Dates.Start.IsZero() || job.Dates.End.IsZero() {
		return job, opErr("usecase.prepare_job", domain.KindInvalidInput, domain.ErrInvalidInput,
			"a start and end date are required")
	}

	if job.InputDir, err = domain.CleanDir(job.InputDir); err != nil {
		return job, err
	}
	if job.OutputDir, err = domain.CleanDir(job.OutputDir); err != nil {
		return job, err
	}
	return job, nil
}
