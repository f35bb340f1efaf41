package runstore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/aalvaropc/s2composite/internal/domain"
	"github.com/aalvaropc/s2composite/internal/ports"
)

const (
	defaultRunsDir    = "runs"
	defaultOutputTail = 200
	indexFile         = "index.jsonl"
)

type JSONStore struct {
	rootDir     string
	runsDirName string
	outputTail  int
	writeIndex  bool
	now         func() time.Time
	newID       func() string
}

type Option func(*JSONStore)

// WithIndex enables a simple JSONL index: runs/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithOutputTail bounds how many trailing lines of each output stream are kept.
// Zero or less keeps everything.
func WithOutputTail(n int) Option {
	return func(s *JSONStore) { s.outputTail = n }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDGenerator is useful for tests.
func WithIDGenerator(gen func() string) Option {
	return func(s *JSONStore) { s.newID = gen }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	runsDir := cfg.Paths.RunsDir
	if strings.TrimSpace(runsDir) == "" {
		runsDir = defaultRunsDir
	}

	s := &JSONStore{
		rootDir:     root,
		runsDirName: runsDir,
		outputTail:  defaultOutputTail,
		writeIndex:  false,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.ArtifactStore = (*JSONStore)(nil)

// Dir is the directory artifacts are written to.
func (s *JSONStore) Dir() string {
	if filepath.IsAbs(s.runsDirName) {
		return s.runsDirName
	}
	return filepath.Join(s.rootDir, s.runsDirName)
}

// SaveRun writes run under the runs directory. When only the index append
// fails the file is kept and its id is returned with the error.
func (s *JSONStore) SaveRun(run domain.RunArtifact) (string, error) {
	dir := s.Dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	ts := run.StartedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	toSave := run
	if toSave.StartedAt.IsZero() {
		toSave.StartedAt = ts
	}
	if strings.TrimSpace(toSave.ID) == "" {
		toSave.ID = s.newID()
	}
	toSave.Output = run.Output.Tail(s.outputTail)

	slug := slugify(string(run.Tile) + " " + filepath.Base(run.InputDir))
	if slug == "" {
		slug = "run"
	}

	filename := fmt.Sprintf("%s_%s.json", ts.Format("20060102T150405Z"), slug)
	path := filepath.Join(dir, filename)

	b, err := json.MarshalIndent(toSave, "", "  ")
	if err != nil {
		return "", &domain.OpError{
			Op:   "runstore.marshal",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return "", &domain.OpError{
			Op:   "runstore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", &domain.OpError{
			Op:   "runstore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		if err := s.appendIndex(dir, filename, toSave); err != nil {
			return toSave.ID, &domain.OpError{
				Op:   "runstore.index",
				Kind: domain.KindExecution,
				Path: filepath.Join(dir, indexFile),
				Err:  err,
			}
		}
	}

	return toSave.ID, nil
}

func (s *JSONStore) appendIndex(dir, filename string, run domain.RunArtifact) error {
	line, err := json.Marshal(domain.RunRef{
		ID:        run.ID,
		File:      filename,
		Tile:      run.Tile,
		InputDir:  run.InputDir,
		Succeeded: run.Succeeded(),
		StartedAt: run.StartedAt,
	})
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ListRuns reads the index in write order. A missing index yields no runs.
func (s *JSONStore) ListRuns() ([]domain.RunRef, error) {
	path := filepath.Join(s.Dir(), indexFile)
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, &domain.OpError{
			Op:   "runstore.list",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	defer f.Close()

	var refs []domain.RunRef
	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var ref domain.RunRef
		if err := json.Unmarshal([]byte(line), &ref); err != nil {
			return nil, &domain.OpError{
				Op:   "runstore.list",
				Kind: domain.KindInvalidConfig,
				Path: path,
				Err:  fmt.Errorf("line %d: %w", n, err),
			}
		}
		refs = append(refs, ref)
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.OpError{
			Op:   "runstore.list",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return refs, nil
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			lastDash = false
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}

func (s *JSONStore) ReadRun(ref string) (domain.RunRef, []byte, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.RunRef{}, nil, &domain.OpError{
			Op:   "runstore.read",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("run reference is empty: %w", domain.ErrInvalidInput),
		}
	}

	refs, err := s.ListRuns()
	if err != nil {
		return domain.RunRef{}, nil, err
	}

	var matches []domain.RunRef
	for _, r := range refs {
		if r.ID == ref || r.File == ref {
			matches = []domain.RunRef{r}
			break
		}
		if strings.HasPrefix(r.ID, ref) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		return domain.RunRef{}, nil, &domain.OpError{
			Op:   "runstore.read",
			Kind: domain.KindNotFound,
			Path: ref,
			Err:  fmt.Errorf("run %q: %w", ref, domain.ErrNotFound),
		}
	case 1:
	default:
		return domain.RunRef{}, nil, &domain.OpError{
			Op:   "runstore.read",
			Kind: domain.KindInvalidInput,
			Path: ref,
			Err:  fmt.Errorf("run %q is ambiguous (%d matches): %w", ref, len(matches), domain.ErrInvalidInput),
		}
	}

	path := filepath.Join(s.Dir(), filepath.Base(matches[0].File))
	b, err := os.ReadFile(path)
	if err != nil {
		return matches[0], nil, &domain.OpError{
			Op:   "runstore.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}
	return matches[0], b, nil
}
