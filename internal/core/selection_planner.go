package core

import "shellmenu/internal/types"

type SelectionPlanner struct{}

func NewSelectionPlanner() SelectionPlanner {
	return SelectionPlanner{}
}

// Plan resolves every entry's parent and partitions the selection. It
// returns false when the selection is empty or any parent is unresolvable.
func (p SelectionPlanner) Plan(selection types.Selection) (types.SelectionPlan, bool) {
	if selection.Len() == 0 {
		return types.SelectionPlan{}, false
	}
	parents := make([]string, 0, selection.Len())
	for _, entry := range selection {
		parent, ok := entry.ParentDir()
		if !ok {
			return types.SelectionPlan{}, false
		}
		parents = append(parents, parent)
	}

	plan := types.SelectionPlan{
		Strategy:         types.StrategySingleParent,
		Entries:          append(types.Selection(nil), selection...),
		Parents:          distinctDirectories(parents),
		WorkingDirectory: parents[0],
	}
	if len(plan.Parents) > 1 {
		plan.Strategy = types.StrategyMultiParent
		return plan, true
	}
	plan.CommonParent = parents[0]
	return plan, true
}

func distinctDirectories(dirs []string) []string {
	out := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		seen := false
		for _, existing := range out {
			if types.SameDirectory(existing, dir) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, dir)
		}
	}
	return out
}
