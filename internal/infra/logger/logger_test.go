package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetup_WritesJSONToStateDir(t *testing.T) {
	root := t.TempDir()

	cleanup, err := Setup(Config{Root: root})
	require.NoError(t, err)

	want := filepath.Join(root, ".s2composite", "logs", "s2composite.log")
	require.Equal(t, want, Path())
	require.NoError(t, IsReady())

	L().Info("process.start", "tile", "36KWA")
	L().Debug("hidden")
	require.NoError(t, cleanup())
	require.Error(t, IsReady())

	b, err := os.ReadFile(want)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 2, "init record plus one info record")

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &rec))
	require.Equal(t, "process.start", rec["msg"])
	require.Equal(t, "36KWA", rec["tile"])
}

func TestSetup_DebugMirrors(t *testing.T) {
	root := t.TempDir()
	var mirror bytes.Buffer

	cleanup, err := Setup(Config{Root: root, Debug: true, Mirror: &mirror})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	L().With("run", "abc").Debug("sen2three.start", "exe", "L3_Process")

	require.Contains(t, mirror.String(), "sen2three.start")
	require.Contains(t, mirror.String(), "run=abc")
	require.Contains(t, mirror.String(), "exe=L3_Process")
}
