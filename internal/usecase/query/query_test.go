package query

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aalvaropc/s2composite/internal/domain"
)

const artifact = `{
  "id": "run-1",
  "tile": "36KWA",
  "resolution": 20,
  "command": ["L3_Process", "/in", "--clean"],
  "completion": {
    "found": true,
    "missing": [{"resolution": 20, "band": "B05", "matches": 0}]
  },
  "error": null
}`

func TestApply_EmptyExprs(t *testing.T) {
	if got := Apply([]byte(artifact), nil); len(got) != 0 {
		t.Fatalf("expected no results, got %v", got)
	}
}

func TestApply(t *testing.T) {
	got := Apply([]byte(artifact), []string{
		"$.tile",
		"$.resolution",
		"$.completion.found",
		"$.completion.missing[*].band",
		"$.command",
		" ",
		"$.error",
		"$.nope",
	})

	want := []domain.QueryResult{
		{Expr: "$.tile", Value: "36KWA", Success: true},
		{Expr: "$.resolution", Value: "20", Success: true},
		{Expr: "$.completion.found", Value: "true", Success: true},
		{Expr: "$.completion.missing[*].band", Value: "B05", Success: true},
		{Expr: "$.command", Value: `["L3_Process","/in","--clean"]`, Success: true},
		{Expr: "", Message: "empty jsonpath expression"},
		{Expr: "$.error", Message: "no value found"},
	}
	if diff := cmp.Diff(want, got[:len(want)]); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}

	last := got[len(got)-1]
	if last.Success || last.Message == "" {
		t.Fatalf("expected unknown key to fail, got %+v", last)
	}
}

func TestApply_NonJSON(t *testing.T) {
	got := Apply([]byte("not json"), []string{"$.tile", "$.id"})
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	for _, r := range got {
		if r.Success {
			t.Fatalf("expected failure, got %+v", r)
		}
	}
}
