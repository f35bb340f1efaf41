package ports

import "github.com/aalvaropc/s2composite/internal/domain"

// ArtifactStore persists run artifacts for later inspection.
type ArtifactStore interface {
	SaveRun(run domain.RunArtifact) (id string, err error)
	ListRuns() ([]domain.RunRef, error)
	// ReadRun returns the stored JSON of the run whose id, id prefix or file name is ref.
	ReadRun(ref string) (domain.RunRef, []byte, error)
}
