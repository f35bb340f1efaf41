package domain

import (
	"context"
	"errors"
	"os/exec"
	"time"
)

// RunErrorKind is a high-level classification of sen2three process failures.
type RunErrorKind string

const (
	RunErrorUnknown     RunErrorKind = "unknown"
	RunErrorNotFound    RunErrorKind = "executable_not_found"
	RunErrorExit        RunErrorKind = "exit_status"
	RunErrorInterrupted RunErrorKind = "interrupted"
	RunErrorCanceled    RunErrorKind = "canceled"
)

// RunError represents a structured error recorded in a run artifact.
type RunError struct {
	Kind     RunErrorKind `json:"kind"`
	Message  string       `json:"message"`
	ExitCode int          `json:"exit_code,omitempty"`
}

// ClassifyRunError maps a process error onto a RunErrorKind.
func ClassifyRunError(err error) RunErrorKind {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrInterrupted) {
		return RunErrorInterrupted
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return RunErrorCanceled
	}
	if errors.Is(err, exec.ErrNotFound) {
		return RunErrorNotFound
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		// ExitCode is -1 when the child was terminated by a signal.
		if ee.ExitCode() < 0 {
			return RunErrorInterrupted
		}
		return RunErrorExit
	}
	return RunErrorUnknown
}

// NewRunError builds a RunError from err, or nil when err is nil.
func NewRunError(err error) *RunError {
	if err == nil {
		return nil
	}
	re := &RunError{Kind: ClassifyRunError(err), Message: err.Error()}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() > 0 {
		re.ExitCode = ee.ExitCode()
	}
	return re
}

// ProcessOutput holds the lines a child process wrote.
type ProcessOutput struct {
	Stdout []string `json:"stdout,omitempty"`
	Stderr []string `json:"stderr,omitempty"`
}

// Tail returns a copy keeping at most n trailing lines of each stream.
func (o ProcessOutput) Tail(n int) ProcessOutput {
	return ProcessOutput{Stdout: tail(o.Stdout, n), Stderr: tail(o.Stderr, n)}
}

func tail(in []string, n int) []string {
	if len(in) == 0 {
		return nil
	}
	if n <= 0 || len(in) <= n {
		out := make([]string, len(in))
		copy(out, in)
		return out
	}
	out := make([]string, n)
	copy(out, in[len(in)-n:])
	return out
}

// RunArtifact is the persisted record of one processing attempt.
type RunArtifact struct {
	ID string `json:"id"`

	Tile       Tile       `json:"tile"`
	InputDir   string     `json:"input_dir"`
	OutputDir  string     `json:"output_dir"`
	Start      string     `json:"start"`
	End        string     `json:"end"`
	Algorithm  Algorithm  `json:"algorithm"`
	Resolution Resolution `json:"resolution"`

	Command  []string `json:"command,omitempty"`
	GIPPPath string   `json:"gipp_path,omitempty"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`

	Output       ProcessOutput     `json:"output"`
	RemovedFiles []string          `json:"removed_files,omitempty"`
	Completion   *CompletionReport `json:"completion,omitempty"`
	Error        *RunError         `json:"error,omitempty"`
}

// NewRunArtifact seeds an artifact with the job settings.
func NewRunArtifact(job Job) RunArtifact {
	return RunArtifact{
		Tile:       job.Tile,
		InputDir:   job.InputDir,
		OutputDir:  job.OutputDir,
		Start:      job.Dates.StartString(),
		End:        job.Dates.EndString(),
		Algorithm:  job.Algorithm,
		Resolution: job.Resolution,
	}
}

// Succeeded is true when the process exited cleanly and the product is complete.
func (a RunArtifact) Succeeded() bool {
	return a.Error == nil && a.Completion != nil && a.Completion.Complete()
}

// RunRef is an entry of the runs index.
type RunRef struct {
	ID        string    `json:"id"`
	File      string    `json:"file"`
	Tile      Tile      `json:"tile"`
	InputDir  string    `json:"input_dir"`
	Succeeded bool      `json:"succeeded"`
	StartedAt time.Time `json:"started_at"`
}
