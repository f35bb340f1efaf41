package usecase

import (
	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/ports"
)

type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

func (uc *InitWorkspace) Execute(root string, force bool) error {
	dir, err := domain.CleanDir(root)
	if err != nil {
		return err
	}
	return uc.initializer.Init(domain.WorkspaceSpec{Root: dir}, force)
}
