package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/infra/gipp"
	"github.com/aalvaropc/s2composite/internal/infra/runstore"
	"github.com/aalvaropc/s2composite/internal/infra/workspacefinder"
	"github.com/aalvaropc/s2composite/internal/ports"
)

type workspaceCtx struct {
	root  string
	found bool
	cfg   domain.Config

	store ports.ArtifactStore
}

// loadWorkspace resolves the workspace and its config. Outside a workspace
// the working directory is used with default settings.
func loadWorkspace(workspaceFlag string) (*workspaceCtx, error) {
	root, found, err := resolveWorkspaceRoot(workspaceFlag)
	if err != nil {
		return nil, err
	}

	cfg := domain.DefaultConfig()
	if found {
		cfg, err = workspacefinder.LoadConfig(root)
		if err != nil {
			return nil, err
		}
	} else if err := workspacefinder.LoadEnv(root); err != nil {
		return nil, err
	}

	return &workspaceCtx{
		root:  root,
		found: found,
		cfg:   cfg,
		store: runstore.NewJSONStore(root, cfg, runstore.WithIndex(true)),
	}, nil
}

func resolveWorkspaceRoot(workspaceFlag string) (string, bool, error) {
	w := strings.TrimSpace(workspaceFlag)
	if w != "" {
		abs, err := filepath.Abs(w)
		if err != nil {
			return "", false, fmt.Errorf("invalid workspace path: %w", err)
		}
		return abs, fileExists(filepath.Join(abs, domain.ConfigFileName)), nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("get working directory: %w", err)
	}

	root, err := workspacefinder.NewFinder().FindRoot(wd)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return wd, false, nil
		}
		return "", false, err
	}
	return root, true, nil
}

// settingsWriter wires the GIPP writer from config. A relative template is
// resolved against the workspace root; the default template path falls back
// to the embedded copy when the workspace has none.
func (ws *workspaceCtx) settingsWriter() (*gipp.Writer, error) {
	target := ws.cfg.Sen2Three.GIPPTarget
	if strings.TrimSpace(target) == "" {
		t, err := gipp.DefaultTarget(ws.cfg.Sen2Three.Home)
		if err != nil {
			return nil, err
		}
		target = t
	}

	var opts []gipp.Option
	if tpl := strings.TrimSpace(ws.cfg.Sen2Three.GIPPTemplate); tpl != "" {
		p := tpl
		if !filepath.IsAbs(p) {
			p = filepath.Join(ws.root, p)
		}
		if fileExists(p) || tpl != domain.DefaultConfig().Sen2Three.GIPPTemplate {
			opts = append(opts, gipp.WithTemplate(p))
		}
	}
	return gipp.NewWriter(target, opts...), nil
}

// expandInputs glob-expands each argument and keeps directories only.
// Without arguments the working directory is used.
func expandInputs(args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{"."}
	}

	seen := map[string]bool{}
	var dirs []string
	for _, a := range args {
		matches, err := filepath.Glob(a)
		if err != nil {
			return nil, &domain.OpError{Op: "cli.inputs", Kind: domain.KindInvalidInput, Path: a, Err: err}
		}
		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || !info.IsDir() {
				continue
			}
			abs, err := domain.CleanDir(m)
			if err != nil {
				return nil, err
			}
			if !seen[abs] {
				seen[abs] = true
				dirs = append(dirs, abs)
			}
		}
	}

	if len(dirs) == 0 {
		return nil, &domain.OpError{
			Op:   "cli.inputs",
			Kind: domain.KindNotFound,
			Path: strings.Join(args, " "),
			Err:  fmt.Errorf("no input directories match: %w", domain.ErrNotFound),
		}
	}
	return dirs, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
