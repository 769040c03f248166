package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"shellmenu/internal/core"
	"shellmenu/internal/types"
)

// Show builds the selection, shows its context menu and dispatches the
// picked command. The whole session runs on one locked OS thread.
func (s Service) Show(ctx context.Context, req ShowRequest) (ShowResult, error) {
	if err := requirePaths(req.Paths); err != nil {
		return ShowResult{}, err
	}
	if s.ShellErr != nil {
		return ShowResult{}, s.ShellErr
	}
	selection, err := s.Entries.Entries(req.Paths)
	if err != nil {
		return ShowResult{}, err
	}

	if s.Thread != nil {
		leave, err := s.Thread.Enter()
		if err != nil {
			return ShowResult{}, err
		}
		defer leave()
	}

	menu, err := core.NewExplorerContextMenu(ctx, core.Dependencies{
		Namespace: s.Namespace,
		Windows:   s.Windows,
		Popups:    s.Popups,
		Keyboard:  s.Keyboard,
		Launcher:  s.Launcher,
		Cursor:    s.Cursor,
	}, req.Options)
	if err != nil {
		return ShowResult{}, err
	}
	defer menu.Dispose()

	var shown bool
	if req.AtCursor {
		shown, err = menu.ShowAtCursor(ctx, selection)
	} else {
		shown, err = menu.Show(ctx, types.Point{X: req.X, Y: req.Y}, selection)
	}
	if err != nil {
		return ShowResult{}, err
	}

	result := ShowResult{Shown: shown, Entries: selection.Len()}
	if plan, ok := core.NewSelectionPlanner().Plan(selection); ok {
		result.Strategy = plan.Strategy
	}
	log.Ctx(ctx).Debug().
		Bool("shown", shown).
		Str("strategy", string(result.Strategy)).
		Int("entries", result.Entries).
		Msg("context menu session finished")
	return result, nil
}
