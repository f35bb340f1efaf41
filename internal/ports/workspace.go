package ports

import "github.com/aalvaropc/s2composite/internal/domain"

type WorkspaceInitializer interface {
	Init(spec domain.WorkspaceSpec, force bool) error
}
