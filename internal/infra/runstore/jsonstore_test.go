package runstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/aalvaropc/s2composite/internal/domain"
)

func sampleRun(start time.Time) domain.RunArtifact {
	return domain.RunArtifact{
		Tile:       "36KWA",
		InputDir:   "/data/L2A/36KWA",
		OutputDir:  "/data/L3A",
		Start:      "20170101",
		End:        "20171231",
		Algorithm:  domain.AlgorithmTempHomogeneity,
		Resolution: domain.Resolution20,
		Command:    []string{"L3_Process", "/data/L2A/36KWA", "--clean", "--resolution", "20"},
		StartedAt:  start,
		EndedAt:    start.Add(2 * time.Hour),
		Completion: &domain.CompletionReport{Tile: "36KWA", Found: true},
	}
}

func TestSaveRun_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()

	cfg := domain.DefaultConfig()
	cfg.Paths.RunsDir = "runs"

	store := NewJSONStore(tmp, cfg, WithIDGenerator(func() string { return "run-1" }))

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	id, err := store.SaveRun(sampleRun(start))
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if id != "run-1" {
		t.Fatalf("expected generated id, got %q", id)
	}

	wantFile := filepath.Join(tmp, "runs", "20260203T101112Z_36kwa-36kwa.json")
	b, err := os.ReadFile(wantFile)
	if err != nil {
		t.Fatalf("expected file at %s: %v", wantFile, err)
	}

	var decoded domain.RunArtifact
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.ID != "run-1" {
		t.Fatalf("expected id persisted, got=%q", decoded.ID)
	}
	if decoded.Resolution != domain.Resolution20 {
		t.Fatalf("expected resolution=20, got=%d", decoded.Resolution)
	}
	if !decoded.Succeeded() {
		t.Fatalf("expected completion to round-trip")
	}
}

func TestSaveRun_KeepsExistingID(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig())

	run := sampleRun(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	run.ID = "fixed"
	id, err := store.SaveRun(run)
	if err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if id != "fixed" {
		t.Fatalf("expected fixed id, got %q", id)
	}
}

func TestSaveRun_TrimsOutputWithoutMutatingInput(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithOutputTail(2), WithIDGenerator(func() string { return "x" }))

	run := sampleRun(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	run.Output = domain.ProcessOutput{Stdout: []string{"1", "2", "3"}}

	if _, err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if len(run.Output.Stdout) != 3 {
		t.Fatalf("expected input run untouched")
	}

	b, err := os.ReadFile(filepath.Join(tmp, "runs", "20260101T000000Z_36kwa-36kwa.json"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var decoded domain.RunArtifact
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if strings.Join(decoded.Output.Stdout, ",") != "2,3" {
		t.Fatalf("expected trailing lines, got %v", decoded.Output.Stdout)
	}
}

func TestSaveRun_UsesNowWhenStartMissing(t *testing.T) {
	tmp := t.TempDir()
	fixed := time.Date(2025, 5, 6, 7, 8, 9, 0, time.UTC)
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithNow(func() time.Time { return fixed }))

	run := sampleRun(time.Time{})
	if _, err := store.SaveRun(run); err != nil {
		t.Fatalf("SaveRun error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(tmp, "runs", "20250506T070809Z_36kwa-36kwa.json")); err != nil {
		t.Fatalf("expected timestamped file: %v", err)
	}
}

func TestListRuns_ReadsIndex(t *testing.T) {
	tmp := t.TempDir()
	n := 0
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true), WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))

	okRun := sampleRun(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	failRun := sampleRun(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC))
	failRun.Error = &domain.RunError{Kind: domain.RunErrorExit, Message: "exit status 1"}

	for _, r := range []domain.RunArtifact{okRun, failRun} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun error: %v", err)
		}
	}

	refs, err := store.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns error: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].ID != "id-1" || !refs[0].Succeeded {
		t.Fatalf("unexpected first ref: %+v", refs[0])
	}
	if refs[1].ID != "id-2" || refs[1].Succeeded {
		t.Fatalf("unexpected second ref: %+v", refs[1])
	}
	if refs[1].File != "20260102T000000Z_36kwa-36kwa.json" {
		t.Fatalf("unexpected file: %s", refs[1].File)
	}
}

func TestListRuns_NoIndex(t *testing.T) {
	refs, err := NewJSONStore(t.TempDir(), domain.DefaultConfig()).ListRuns()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(refs) != 0 {
		t.Fatalf("expected no refs")
	}
}

func TestListRuns_CorruptIndex(t *testing.T) {
	tmp := t.TempDir()
	dir := filepath.Join(tmp, "runs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.jsonl"), []byte("{not json}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := NewJSONStore(tmp, domain.DefaultConfig()).ListRuns()
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestSaveRun_IndexFailureIsReported(t *testing.T) {
	tmp := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmp, "runs", "index.jsonl"), 0o755); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true), WithIDGenerator(func() string { return "run-9" }))
	id, err := store.SaveRun(sampleRun(time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)))
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("expected execution error, got %v", err)
	}
	if !strings.Contains(err.Error(), "runstore.index") {
		t.Fatalf("expected index op in error, got %v", err)
	}
	if id != "run-9" {
		t.Fatalf("expected id returned with the error, got %q", id)
	}
	if _, err := os.Stat(filepath.Join(tmp, "runs", "20260203T101112Z_36kwa-36kwa.json")); err != nil {
		t.Fatalf("expected artifact file to be kept: %v", err)
	}
}

func TestReadRun(t *testing.T) {
	tmp := t.TempDir()
	ids := []string{"abc-111", "abc-222", "def-333"}
	n := 0
	store := NewJSONStore(tmp, domain.DefaultConfig(), WithIndex(true), WithIDGenerator(func() string {
		id := ids[n]
		n++
		return id
	}))

	for i := range ids {
		if _, err := store.SaveRun(sampleRun(time.Date(2026, 1, 1+i, 0, 0, 0, 0, time.UTC))); err != nil {
			t.Fatalf("SaveRun error: %v", err)
		}
	}

	ref, b, err := store.ReadRun("def")
	if err != nil {
		t.Fatalf("ReadRun by prefix: %v", err)
	}
	if ref.ID != "def-333" || !strings.Contains(string(b), `"id": "def-333"`) {
		t.Fatalf("unexpected run %+v", ref)
	}

	if _, _, err := store.ReadRun("20260101T000000Z_36kwa-36kwa.json"); err != nil {
		t.Fatalf("ReadRun by file: %v", err)
	}

	if _, _, err := store.ReadRun("abc"); !domain.IsKind(err, domain.KindInvalidInput) {
		t.Fatalf("expected ambiguous prefix to be invalid_input, got %v", err)
	}
	if _, _, err := store.ReadRun("zzz"); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"36KWA L2A_2017":  "36kwa-l2a-2017",
		"  --Hello--  ":   "hello",
		"":                "",
		"T31UFU ./in dir": "t31ufu-in-dir",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
