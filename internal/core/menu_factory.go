package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"shellmenu/internal/ports"
	"shellmenu/internal/types"
)

// MenuProvider is a context-menu provider plus the command policy of the
// path that produced it.
type MenuProvider struct {
	Menu     ports.ContextMenuPort
	Strategy types.Strategy
	// InterceptOpen means "open" must be handled by launching each entry
	// instead of invoking the provider.
	InterceptOpen      bool
	ForceExtendedVerbs bool
}

type MenuFactory struct {
	Namespace ports.ShellNamespacePort
	Builder   IdentifierBuilder
}

func NewMenuFactory(namespace ports.ShellNamespacePort) MenuFactory {
	return MenuFactory{
		Namespace: namespace,
		Builder:   NewIdentifierBuilder(namespace),
	}
}

func (f MenuFactory) ForSingleParent(folder ports.ShellFolderPort, ids *ItemIDList) (MenuProvider, error) {
	menu, err := folder.ContextMenuOf(ids.IDs())
	if err != nil {
		return MenuProvider{}, types.ContextMenuUnavailableError("folder refused context menu", err)
	}
	if menu == nil {
		return MenuProvider{}, types.ContextMenuUnavailableError("folder returned no context menu", nil)
	}
	return newMenuProvider(menu, types.StrategySingleParent), nil
}

// ForMultipleParents asks the namespace root for the default cross-folder
// provider. That provider has no reliable "open" across folders and no
// meaningful non-extended mode, hence both policy flags.
func (f MenuFactory) ForMultipleParents(ids *ItemIDList) (MenuProvider, error) {
	menu, err := f.Namespace.CreateDefaultContextMenu(ids.IDs())
	if err != nil {
		return MenuProvider{}, types.ContextMenuUnavailableError("default context menu creation failed", err)
	}
	if menu == nil {
		return MenuProvider{}, types.ContextMenuUnavailableError("default context menu creation returned nothing", nil)
	}
	return newMenuProvider(menu, types.StrategyMultiParent), nil
}

// CommandPolicy reports the policy flags a provider built for strategy
// carries.
func CommandPolicy(strategy types.Strategy) (interceptOpen bool, forceExtendedVerbs bool) {
	multi := strategy == types.StrategyMultiParent
	return multi, multi
}

func newMenuProvider(menu ports.ContextMenuPort, strategy types.Strategy) MenuProvider {
	interceptOpen, forceExtendedVerbs := CommandPolicy(strategy)
	return MenuProvider{
		Menu:               menu,
		Strategy:           strategy,
		InterceptOpen:      interceptOpen,
		ForceExtendedVerbs: forceExtendedVerbs,
	}
}

// Create runs the whole construction path for plan. Every identifier and
// folder obtained on the way is released before it returns.
func (f MenuFactory) Create(ctx context.Context, plan types.SelectionPlan) (MenuProvider, error) {
	switch plan.Strategy {
	case types.StrategySingleParent:
		return f.createSingleParent(ctx, plan)
	case types.StrategyMultiParent:
		return f.createMultipleParents(ctx, plan)
	default:
		return MenuProvider{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown selection strategy: " + string(plan.Strategy))
	}
}

func (f MenuFactory) createSingleParent(ctx context.Context, plan types.SelectionPlan) (MenuProvider, error) {
	assert.NotEmpty(ctx, plan.CommonParent, "single-parent plan must carry its common parent")

	parentID, err := f.Namespace.ParseDisplayName(plan.CommonParent)
	if err != nil {
		return MenuProvider{}, types.ContextMenuUnavailableError("cannot resolve "+plan.CommonParent, err)
	}
	if parentID == 0 {
		return MenuProvider{}, types.ContextMenuUnavailableError("no identifier for "+plan.CommonParent, nil)
	}
	defer f.Namespace.FreeItemID(parentID)

	folder, err := f.Namespace.BindToFolder(parentID)
	if err != nil {
		return MenuProvider{}, types.ContextMenuUnavailableError("cannot bind "+plan.CommonParent, err)
	}
	defer folder.Release()

	ids, err := f.Builder.BuildRelative(folder, plan.Entries)
	if err != nil {
		return MenuProvider{}, err
	}
	defer ids.Release()

	provider, err := f.ForSingleParent(folder, ids)
	if err != nil {
		return MenuProvider{}, err
	}
	log.Ctx(ctx).Debug().
		Str("folder", plan.CommonParent).
		Int("items", ids.Len()).
		Msg("folder context menu created")
	return provider, nil
}

func (f MenuFactory) createMultipleParents(ctx context.Context, plan types.SelectionPlan) (MenuProvider, error) {
	ids, err := f.Builder.BuildAbsolute(plan.Entries)
	if err != nil {
		return MenuProvider{}, err
	}
	defer ids.Release()

	provider, err := f.ForMultipleParents(ids)
	if err != nil {
		return MenuProvider{}, err
	}
	log.Ctx(ctx).Debug().
		Int("parents", len(plan.Parents)).
		Int("items", ids.Len()).
		Msg("default context menu created")
	return provider, nil
}
