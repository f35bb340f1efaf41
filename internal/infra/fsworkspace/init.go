package fsworkspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/ports"
)

// GIPPTemplatePath is where init drops the editable GIPP template.
const GIPPTemplatePath = "cfg/L3_GIPP.xml"

type Initializer struct {
	gippTemplate []byte
}

type Option func(*Initializer)

// WithGIPPTemplate sets the content written to cfg/L3_GIPP.xml.
func WithGIPPTemplate(b []byte) Option {
	return func(i *Initializer) { i.gippTemplate = b }
}

func NewInitializer(opts ...Option) *Initializer {
	i := &Initializer{}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	dirs := []string{
		filepath.Join(root, "cfg"),
		filepath.Join(root, "runs"),
		filepath.Join(root, domain.StateDirName, "logs"),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return initError(d, err)
		}
	}

	if err := ensureGitignore(root); err != nil {
		return initError(filepath.Join(root, ".gitignore"), err)
	}

	if len(i.gippTemplate) > 0 {
		dst := filepath.Join(root, filepath.FromSlash(GIPPTemplatePath))
		if err := writeFile(dst, i.gippTemplate, force); err != nil {
			return initError(dst, err)
		}
	}

	return fs.WalkDir(templatesFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(p, "templates/")
		dst := filepath.Join(root, rel)

		b, err := fs.ReadFile(templatesFS, p)
		if err != nil {
			return err
		}
		if err := writeFile(dst, b, force); err != nil {
			return initError(dst, err)
		}
		return nil
	})
}

func writeFile(dst string, b []byte, force bool) error {
	if !force {
		if _, statErr := os.Stat(dst); statErr == nil {
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, b, 0o644)
}

func initError(path string, err error) error {
	return &domain.OpError{
		Op:   "fsworkspace.init",
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}

func ensureGitignore(root string) error {
	const header = "# s2composite"
	entries := []string{
		"runs/",
		domain.StateDirName + "/",
		".env",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 64)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
