// Package gipp writes the sen2three L3_GIPP.xml settings file.
package gipp

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/ports"
)

// FileName is the name sen2three expects under its cfg directory.
const FileName = "L3_GIPP.xml"

//go:embed templates/L3_GIPP.xml
var defaultTemplate []byte

// DefaultTemplate returns a copy of the L3_GIPP.xml shipped with s2composite.
func DefaultTemplate() []byte {
	out := make([]byte, len(defaultTemplate))
	copy(out, defaultTemplate)
	return out
}

// DefaultTarget resolves where sen2three reads its GIPP file: home/cfg/L3_GIPP.xml,
// with home falling back to $SEN2THREE_HOME and then ~/sen2three.
func DefaultTarget(home string) (string, error) {
	h := strings.TrimSpace(home)
	if h == "" {
		h = strings.TrimSpace(os.Getenv("SEN2THREE_HOME"))
	}
	if h == "" {
		userHome, err := os.UserHomeDir()
		if err != nil {
			return "", &domain.OpError{
				Op:   "gipp.default_target",
				Kind: domain.KindInvalidConfig,
				Err:  err,
			}
		}
		h = filepath.Join(userHome, "sen2three")
	}
	return filepath.Join(h, "cfg", FileName), nil
}

type Writer struct {
	target   string
	template string
}

type Option func(*Writer)

// WithTemplate reads the template from path instead of the embedded copy.
func WithTemplate(path string) Option {
	return func(w *Writer) { w.template = path }
}

func NewWriter(target string, opts ...Option) *Writer {
	w := &Writer{target: target}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ ports.SettingsWriter = (*Writer)(nil)

// Target is the path WriteSettings overwrites.
func (w *Writer) Target() string { return w.target }

func (w *Writer) WriteSettings(s domain.GIPPSettings) (string, error) {
	info, err := os.Stat(s.TargetDirectory)
	if err != nil || !info.IsDir() {
		if err == nil {
			err = errors.New("not a directory")
		}
		return "", &domain.OpError{
			Op:   "gipp.write",
			Kind: domain.KindNotFound,
			Path: s.TargetDirectory,
			Err:  fmt.Errorf("output directory %s doesn't exist: %w", s.TargetDirectory, err),
		}
	}
	if !s.Algorithm.Valid() {
		return "", &domain.OpError{
			Op:   "gipp.write",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("unsupported algorithm %q: %w", s.Algorithm, domain.ErrInvalidInput),
		}
	}

	src, err := w.readTemplate()
	if err != nil {
		return "", err
	}

	out, err := Patch(src, s.Values())
	if err != nil {
		return "", &domain.OpError{
			Op:   "gipp.patch",
			Kind: domain.KindInvalidConfig,
			Path: w.templateName(),
			Err:  err,
		}
	}

	if err := writeAtomic(w.target, out); err != nil {
		return "", err
	}
	return w.target, nil
}

func (w *Writer) readTemplate() ([]byte, error) {
	if w.template == "" {
		return DefaultTemplate(), nil
	}
	b, err := os.ReadFile(w.template)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "gipp.read_template",
			Kind: domain.KindNotFound,
			Path: w.template,
			Err:  fmt.Errorf("GIPP XML options file doesn't exist at the location %s: %w", w.template, err),
		}
	}
	return b, nil
}

func (w *Writer) templateName() string {
	if w.template == "" {
		return "embedded:" + FileName
	}
	return w.template
}

// writeAtomic writes to a uniquely named sibling and renames it over path.
func writeAtomic(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return &domain.OpError{
			Op:   "gipp.mkdir",
			Kind: domain.KindExecution,
			Path: filepath.Dir(path),
			Err:  err,
		}
	}

	tmp := fmt.Sprintf("%s.%s.tmp", path, uuid.NewString())
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return &domain.OpError{
			Op:   "gipp.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "gipp.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return nil
}
