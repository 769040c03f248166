package core

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"shellmenu/internal/shellfake"
	"shellmenu/internal/types"
)

func planFor(t *testing.T, selection types.Selection) types.SelectionPlan {
	t.Helper()
	plan, ok := NewSelectionPlanner().Plan(selection)
	require.True(t, ok)
	return plan
}

func TestMenuFactorySingleParent(t *testing.T) {
	shell := shellfake.New()
	factory := NewMenuFactory(shell)

	provider, err := factory.Create(t.Context(), planFor(t, types.Selection{
		fileEntry(`C:\a\f.txt`),
		fileEntry(`C:\a\g.txt`),
	}))
	require.NoError(t, err)
	require.Equal(t, types.StrategySingleParent, provider.Strategy)
	require.False(t, provider.InterceptOpen)
	require.False(t, provider.ForceExtendedVerbs)

	want := []shellfake.MenuRecord{{
		Kind:   "folder",
		Folder: `C:\a`,
		Items:  []string{`C:\a\f.txt`, `C:\a\g.txt`},
	}}
	if diff := cmp.Diff(want, shell.Menus); diff != "" {
		t.Fatalf("unexpected menus (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{`C:\a`}, shell.Bound)

	counts := shell.Counts()
	require.Equal(t, 0, counts.ItemIDs, "identifiers must be freed once the provider exists")
	require.Equal(t, 0, counts.Folders, "parent folder must be released once the provider exists")
	require.Equal(t, 1, counts.Menus)

	provider.Menu.Release()
	require.Empty(t, shell.Leaks())
}

func TestMenuFactoryMultipleParents(t *testing.T) {
	shell := shellfake.New()
	factory := NewMenuFactory(shell)

	provider, err := factory.Create(t.Context(), planFor(t, types.Selection{
		fileEntry(`C:\a\f.txt`),
		fileEntry(`D:\b\g.txt`),
	}))
	require.NoError(t, err)
	require.Equal(t, types.StrategyMultiParent, provider.Strategy)
	require.True(t, provider.InterceptOpen)
	require.True(t, provider.ForceExtendedVerbs)
	require.Empty(t, shell.Bound)

	want := []shellfake.MenuRecord{{
		Kind:  "default",
		Items: []string{`C:\a\f.txt`, `D:\b\g.txt`},
	}}
	if diff := cmp.Diff(want, shell.Menus); diff != "" {
		t.Fatalf("unexpected menus (-want +got):\n%s", diff)
	}

	provider.Menu.Release()
	require.Empty(t, shell.Leaks())
}

func TestMenuFactoryFailuresAreUnavailable(t *testing.T) {
	single := types.Selection{fileEntry(`C:\a\f.txt`)}
	multi := types.Selection{fileEntry(`C:\a\f.txt`), fileEntry(`C:\b\g.txt`)}

	tests := []struct {
		name      string
		selection types.Selection
		configure func(*shellfake.Shell)
	}{
		{
			name:      "parent does not resolve",
			selection: single,
			configure: func(s *shellfake.Shell) { s.FailParse[`C:\a`] = errors.New("gone") },
		},
		{
			name:      "parent does not bind",
			selection: single,
			configure: func(s *shellfake.Shell) { s.FailBind = errors.New("not a folder") },
		},
		{
			name:      "child does not resolve",
			selection: single,
			configure: func(s *shellfake.Shell) { s.FailParse["f.txt"] = errors.New("gone") },
		},
		{
			name:      "folder refuses menu",
			selection: single,
			configure: func(s *shellfake.Shell) { s.FailContextMenu = errors.New("E_NOINTERFACE") },
		},
		{
			name:      "multi parent entry does not resolve",
			selection: multi,
			configure: func(s *shellfake.Shell) { s.FailParse["g.txt"] = errors.New("gone") },
		},
		{
			name:      "default menu creation fails",
			selection: multi,
			configure: func(s *shellfake.Shell) { s.FailContextMenu = errors.New("E_FAIL") },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shell := shellfake.New()
			tt.configure(shell)

			_, err := NewMenuFactory(shell).Create(t.Context(), planFor(t, tt.selection))
			require.Error(t, err)
			require.True(t, types.IsContextMenuUnavailable(err), "got %v", err)
			require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
			require.Empty(t, shell.Leaks())
		})
	}
}

func TestMenuFactoryRejectsUnknownStrategy(t *testing.T) {
	shell := shellfake.New()
	_, err := NewMenuFactory(shell).Create(t.Context(), types.SelectionPlan{Strategy: "sideways"})
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestCommandPolicy(t *testing.T) {
	interceptOpen, forceExtended := CommandPolicy(types.StrategySingleParent)
	require.False(t, interceptOpen)
	require.False(t, forceExtended)

	interceptOpen, forceExtended = CommandPolicy(types.StrategyMultiParent)
	require.True(t, interceptOpen)
	require.True(t, forceExtended)
}
