package app

import "shellmenu/internal/types"

type ShowRequest struct {
	Paths []string
	X     int32
	Y     int32
	// AtCursor ignores X and Y and anchors the menu at the cursor.
	AtCursor bool
	Options  types.MenuOptions
}

type ShowResult struct {
	Shown    bool
	Strategy types.Strategy
	Entries  int
}

type PlanRequest struct {
	Paths []string
}

type PlanResult struct {
	Strategy           types.Strategy  `yaml:"strategy"`
	Parents            []string        `yaml:"parents"`
	WorkingDirectory   string          `yaml:"working_directory"`
	InterceptOpen      bool            `yaml:"intercept_open"`
	ForceExtendedVerbs bool            `yaml:"force_extended_verbs"`
	Entries            types.Selection `yaml:"entries"`
}
