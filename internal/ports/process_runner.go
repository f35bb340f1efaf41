package ports

import (
	"context"

	"github.com/aalvaropc/s2composite/internal/domain"
)

// ProcessRunner runs an external command to completion.
type ProcessRunner interface {
	// Command returns the argv that processes inputDir at res.
	Command(inputDir string, res domain.Resolution) []string
	Run(ctx context.Context, command []string, verbose bool) (domain.ProcessOutput, error)
}
