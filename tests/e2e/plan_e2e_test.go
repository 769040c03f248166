package e2e

import (
	"errors"
	"os"
	"os/exec"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"shellmenu/internal/app"
	"shellmenu/internal/types"
	"shellmenu/tests/testutil"
)

func TestPlanCommandE2E(t *testing.T) {
	root := testutil.RepoRoot(t)
	selection := t.TempDir()
	testutil.WriteTree(t, selection, map[string]string{
		"docs/readme.md": "# readme",
		"media/clip.txt": "clip",
	})
	paths := testutil.Rooted(selection, "docs/readme.md", "media/clip.txt")

	args := append([]string{"run", "./cmd/shellmenu", "plan"}, paths...)
	cmd := exec.Command("go", args...)
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.Output()
	require.NoError(t, err, string(out))

	var result app.PlanResult
	require.NoError(t, yaml.Unmarshal(out, &result))
	assert.Equal(t, types.StrategyMultiParent, result.Strategy)
	assert.Len(t, result.Parents, 2)
	assert.True(t, result.InterceptOpen)
	assert.True(t, result.ForceExtendedVerbs)
}

func TestShowCommandUnsupportedPlatformE2E(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("show opens an interactive menu on windows")
	}
	root := testutil.RepoRoot(t)
	selection := t.TempDir()
	testutil.WriteTree(t, selection, map[string]string{"a.txt": "a"})

	cmd := exec.Command("go", "run", "./cmd/shellmenu", "show", "--x", "1", "--y", "1", testutil.Rooted(selection, "a.txt")[0])
	cmd.Dir = root
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.Error(t, err, string(out))

	var exitErr *exec.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Contains(t, string(out), "shell context menus require windows")
}
