package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aalvaropc/s2composite/internal/ctxlog"
	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/ports"
)

type ProcessL3A struct {
	validate *ValidateInput
	settings ports.SettingsWriter
	runner   ports.ProcessRunner
	outputs  ports.OutputInspector
	store    ports.ArtifactStore

	echo io.Writer
	now  func() time.Time
}

type ProcessOption func(*ProcessL3A)

// WithStore persists every processing attempt that reaches sen2three.
func WithStore(s ports.ArtifactStore) ProcessOption {
	return func(uc *ProcessL3A) { uc.store = s }
}

// WithCommandEcho sets where the command line is printed in verbose mode.
func WithCommandEcho(w io.Writer) ProcessOption {
	return func(uc *ProcessL3A) { uc.echo = w }
}

func WithClock(now func() time.Time) ProcessOption {
	return func(uc *ProcessL3A) { uc.now = now }
}

func NewProcessL3A(g ports.GranuleScanner, s ports.SettingsWriter, r ports.ProcessRunner, o ports.OutputInspector, opts ...ProcessOption) *ProcessL3A {
	uc := &ProcessL3A{
		validate: NewValidateInput(g),
		settings: s,
		runner:   r,
		outputs:  o,
		echo:     io.Discard,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute composites one input directory. Validation problems and an existing
// product abort before anything is written. Once sen2three has been started
// the artifact is always completed and saved; the returned error then reports
// a failed process, an incomplete product is only visible in the artifact.
func (uc *ProcessL3A) Execute(ctx context.Context, job domain.Job) (domain.RunArtifact, error) {
	job, err := PrepareJob(job)
	if err != nil {
		return domain.RunArtifact{}, err
	}

	log := ctxlog.FromContext(ctx).With("tile", job.Tile.String(), "input_dir", job.InputDir)
	ctx = ctxlog.WithLogger(ctx, log)

	art := domain.NewRunArtifact(job)
	art.StartedAt = uc.now()

	if _, err := uc.validate.Execute(ctx, job); err != nil {
		return art, err
	}

	pattern := job.ProductPattern()
	existing, err := uc.outputs.Products(job.OutputDir, pattern)
	if err != nil {
		return art, err
	}
	if len(existing) > 0 {
		return art, &domain.OpError{
			Op:   "usecase.process",
			Kind: domain.KindOutputExists,
			Path: existing[0],
			Err: fmt.Errorf("an output file with pattern %s already exists in output directory: %w",
				pattern, domain.ErrOutputExists),
		}
	}

	gippPath, err := uc.settings.WriteSettings(domain.NewGIPPSettings(job))
	if err != nil {
		return art, err
	}
	art.GIPPPath = gippPath
	log.Info("process.gipp_written", "path", gippPath, "algorithm", string(job.Algorithm))

	art.Command = uc.runner.Command(job.InputDir, job.Resolution)
	if job.Verbose {
		fmt.Fprintln(uc.echo, strings.Join(art.Command, " "))
	}

	log.Info("process.start", "command", strings.Join(art.Command, " "))
	output, runErr := uc.runner.Run(ctx, art.Command, job.Verbose)
	art.Output = output
	art.Error = domain.NewRunError(runErr)

	removed, err := uc.outputs.RemoveIntermediates(job.OutputDir, pattern, job.Tile)
	art.RemovedFiles = removed
	if err != nil {
		log.Warn("process.cleanup_failed", "error", err)
	} else if len(removed) > 0 {
		log.Info("process.cleanup", "removed", len(removed))
	}

	report, err := uc.outputs.Check(job.OutputDir, job.Tile, pattern, job.Resolution)
	if err != nil {
		log.Warn("process.check_failed", "error", err)
	} else {
		art.Completion = &report
	}

	art.EndedAt = uc.now()
	log.Info("process.done",
		"succeeded", art.Succeeded(),
		"duration_ms", art.EndedAt.Sub(art.StartedAt).Milliseconds(),
	)

	if uc.store != nil {
		id, err := uc.store.SaveRun(art)
		if err != nil {
			log.Warn("process.save_failed", "error", err)
		}
		art.ID = id
	}

	return art, runErr
}
