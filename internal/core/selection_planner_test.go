package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"shellmenu/internal/types"
)

func TestSelectionPlannerStrategies(t *testing.T) {
	tests := []struct {
		name       string
		selection  types.Selection
		wantOK     bool
		strategy   types.Strategy
		parents    []string
		common     string
		workingDir string
	}{
		{
			name:      "empty selection",
			selection: nil,
			wantOK:    false,
		},
		{
			name:       "single file",
			selection:  types.Selection{fileEntry(`C:\a\f.txt`)},
			wantOK:     true,
			strategy:   types.StrategySingleParent,
			parents:    []string{`C:\a`},
			common:     `C:\a`,
			workingDir: `C:\a`,
		},
		{
			name: "same parent differing in case and trailing separator",
			selection: types.Selection{
				fileEntry(`C:\a\f.txt`),
				{Path: `C:\A\g.txt`, Name: "g.txt", Parent: `C:\A\`},
			},
			wantOK:     true,
			strategy:   types.StrategySingleParent,
			parents:    []string{`C:\a`},
			common:     `C:\a`,
			workingDir: `C:\a`,
		},
		{
			name: "two parents",
			selection: types.Selection{
				fileEntry(`C:\a\f.txt`),
				fileEntry(`C:\b\g.txt`),
				fileEntry(`C:\a\h.txt`),
			},
			wantOK:     true,
			strategy:   types.StrategyMultiParent,
			parents:    []string{`C:\a`, `C:\b`},
			workingDir: `C:\a`,
		},
		{
			name: "entry without parent aborts",
			selection: types.Selection{
				fileEntry(`C:\a\f.txt`),
				{Path: `C:\`, Name: `C:\`, IsDir: true},
			},
			wantOK: false,
		},
	}

	planner := NewSelectionPlanner()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, ok := planner.Plan(tt.selection)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			require.Equal(t, tt.strategy, plan.Strategy)
			if diff := cmp.Diff(tt.parents, plan.Parents); diff != "" {
				t.Fatalf("unexpected parents (-want +got):\n%s", diff)
			}
			require.Equal(t, tt.common, plan.CommonParent)
			require.Equal(t, tt.workingDir, plan.WorkingDirectory)
			require.Len(t, plan.Entries, tt.selection.Len())
		})
	}
}

func TestSelectionPlannerCopiesEntries(t *testing.T) {
	selection := types.Selection{fileEntry(`C:\a\f.txt`)}
	plan, ok := NewSelectionPlanner().Plan(selection)
	require.True(t, ok)

	selection[0].Path = `C:\changed`
	require.Equal(t, `C:\a\f.txt`, plan.Entries[0].Path)
}
