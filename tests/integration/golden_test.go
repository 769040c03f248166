package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"shellmenu/internal/adapters"
	"shellmenu/internal/app"
	"shellmenu/tests/testutil"
)

// TestGoldenPlan plans a fixed selection and compares the YAML, with the
// temporary root normalized, against a committed golden file. If the golden
// file does not exist yet (first run), it is written so it can be committed.
//
// To update the golden file after an intentional change, delete the
// testdata/golden/ directory and re-run the test.
func TestGoldenPlan(t *testing.T) {
	repo := testutil.RepoRoot(t)
	goldenPath := filepath.Join(repo, "tests", "integration", "testdata", "golden", "plan.yaml")

	root := t.TempDir()
	testutil.WriteTree(t, root, map[string]string{
		"docs/readme.md": "# readme",
		"media/clip.txt": "clip",
		"media/raw/":     "",
	})

	service := app.Service{Entries: adapters.NewFileEntryAdapter()}
	result, err := service.Plan(t.Context(), app.PlanRequest{
		Paths: testutil.Rooted(root, "docs/readme.md", "media/clip.txt", "media/raw"),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	require.NoError(t, encoder.Encode(result))
	require.NoError(t, encoder.Close())
	actual := testutil.NormalizeRoot(buf.String(), root)

	if _, statErr := os.Stat(goldenPath); os.IsNotExist(statErr) {
		require.NoError(t, os.MkdirAll(filepath.Dir(goldenPath), 0o755))
		require.NoError(t, os.WriteFile(goldenPath, []byte(actual), 0o644))
		t.Logf("golden file written: %s (commit it)", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	assert.Equal(t, string(expected), actual,
		"golden mismatch for plan.yaml -- delete testdata/golden/ and re-run to regenerate")
}
