package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"shellmenu/internal/core"
)

// Plan reports how Show would partition the selection and which command
// policy applies, without touching the shell.
func (s Service) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	if err := requirePaths(req.Paths); err != nil {
		return PlanResult{}, err
	}
	selection, err := s.Entries.Entries(req.Paths)
	if err != nil {
		return PlanResult{}, err
	}
	plan, ok := core.NewSelectionPlanner().Plan(selection)
	if !ok {
		return PlanResult{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("every entry needs a parent directory: " + strings.Join(selection.Paths(), ", "))
	}
	interceptOpen, forceExtended := core.CommandPolicy(plan.Strategy)
	log.Ctx(ctx).Debug().
		Str("strategy", string(plan.Strategy)).
		Int("parents", len(plan.Parents)).
		Msg("selection planned")
	return PlanResult{
		Strategy:           plan.Strategy,
		Parents:            plan.Parents,
		WorkingDirectory:   plan.WorkingDirectory,
		InterceptOpen:      interceptOpen,
		ForceExtendedVerbs: forceExtended,
		Entries:            plan.Entries,
	}, nil
}

func requirePaths(paths []string) error {
	for _, path := range paths {
		if strings.TrimSpace(path) != "" {
			return nil
		}
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("at least one path is required")
}
