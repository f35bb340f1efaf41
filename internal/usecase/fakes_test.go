package usecase

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/aalvaropc/s2composite/internal/domain"
)

// --- fakes shared by the use case tests ---

type fakeScanner struct {
	granules []domain.Granule
	err      error
	gotDir   string
	gotTile  domain.Tile
}

func (f *fakeScanner) Granules(inputDir string, tile domain.Tile) ([]domain.Granule, error) {
	f.gotDir = inputDir
	f.gotTile = tile
	return f.granules, f.err
}

type fakeSettings struct {
	calls int
	last  domain.GIPPSettings
	err   error
}

func (f *fakeSettings) WriteSettings(s domain.GIPPSettings) (string, error) {
	f.calls++
	f.last = s
	if f.err != nil {
		return "", f.err
	}
	return "/sen2three/cfg/L3_GIPP.xml", nil
}

type fakeRunner struct {
	calls   int
	command []string
	verbose bool
	output  domain.ProcessOutput
	err     error
}

func (f *fakeRunner) Command(inputDir string, res domain.Resolution) []string {
	cmd := []string{"L3_Process", inputDir, "--clean"}
	if res != domain.ResolutionAll {
		cmd = append(cmd, "--resolution", strconv.Itoa(int(res)))
	}
	return cmd
}

func (f *fakeRunner) Run(_ context.Context, command []string, verbose bool) (domain.ProcessOutput, error) {
	f.calls++
	f.command = command
	f.verbose = verbose
	return f.output, f.err
}

type fakeOutputs struct {
	existing   []string
	report     domain.CompletionReport
	checkErr   error
	removed    []string
	removeErr  error
	checks     int
	cleanups   int
	gotPattern string
	gotRes     domain.Resolution
}

func (f *fakeOutputs) Products(_ string, pattern string) ([]string, error) {
	f.gotPattern = pattern
	return f.existing, nil
}

func (f *fakeOutputs) Check(_ string, tile domain.Tile, pattern string, res domain.Resolution) (domain.CompletionReport, error) {
	f.checks++
	f.gotPattern = pattern
	f.gotRes = res
	r := f.report
	r.Tile = tile
	r.Product = pattern
	return r, f.checkErr
}

func (f *fakeOutputs) RemoveIntermediates(_ string, _ string, _ domain.Tile) ([]string, error) {
	f.cleanups++
	return f.removed, f.removeErr
}

type fakeStore struct {
	saved bool
	last  domain.RunArtifact
	err   error
}

func (s *fakeStore) SaveRun(run domain.RunArtifact) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.saved = true
	s.last = run
	return "run-123", nil
}

func (s *fakeStore) ListRuns() ([]domain.RunRef, error) {
	return nil, errors.New("not implemented")
}

func (s *fakeStore) ReadRun(string) (domain.RunRef, []byte, error) {
	return domain.RunRef{}, nil, errors.New("not implemented")
}

func day(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func granule(path, date string, res ...domain.Resolution) domain.Granule {
	return domain.Granule{Path: path, Date: day(date), Resolutions: res}
}

func testJob(t string) domain.Job {
	return domain.Job{
		Tile:      domain.Tile(t),
		InputDir:  "/data/L2A/",
		OutputDir: "/data/L3A",
		Dates:     domain.DateRange{Start: day("20170101"), End: day("20171231")},
	}
}
