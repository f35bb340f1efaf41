package usecase

import (
	"path/filepath"
	"testing"

	"github.com/aalvaropc/s2composite/internal/domain"
)

type recordingInitializer struct {
	spec  domain.WorkspaceSpec
	force bool
}

func (r *recordingInitializer) Init(spec domain.WorkspaceSpec, force bool) error {
	r.spec = spec
	r.force = force
	return nil
}

func TestInitWorkspace_CleansRoot(t *testing.T) {
	rec := &recordingInitializer{}
	tmp := t.TempDir()

	if err := NewInitWorkspace(rec).Execute(tmp+string(filepath.Separator), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.spec.Root != filepath.Clean(tmp) {
		t.Fatalf("expected cleaned root %s, got %s", tmp, rec.spec.Root)
	}
	if !rec.force {
		t.Fatalf("expected force to be passed through")
	}
}
