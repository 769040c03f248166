package core

import (
	"context"
	"runtime"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"shellmenu/internal/ports"
	"shellmenu/internal/types"
)

// Dependencies are the shell and OS capabilities an ExplorerContextMenu
// drives. Cursor is optional and only needed by ShowAtCursor.
type Dependencies struct {
	Namespace ports.ShellNamespacePort
	Windows   ports.WindowPort
	Popups    ports.PopupMenuPort
	Keyboard  ports.KeyboardPort
	Launcher  ports.LauncherPort
	Cursor    ports.CursorPort
}

// ExplorerContextMenu shows the Explorer context menu for file-system
// entries and dispatches the picked command. It must be used from the OS
// thread that constructed it.
type ExplorerContextMenu struct {
	host     *HostWindow
	planner  SelectionPlanner
	factory  MenuFactory
	popups   ports.PopupMenuPort
	keyboard ports.KeyboardPort
	launcher ports.LauncherPort
	cursor   ports.CursorPort
	options  types.MenuOptions
}

func NewExplorerContextMenu(ctx context.Context, deps Dependencies, options types.MenuOptions) (*ExplorerContextMenu, error) {
	if err := validateDependencies(deps); err != nil {
		return nil, err
	}
	if err := ValidateMenuOptions(options); err != nil {
		return nil, err
	}
	host, err := NewHostWindow(ctx, deps.Windows)
	if err != nil {
		return nil, err
	}
	m := &ExplorerContextMenu{
		host:     host,
		planner:  NewSelectionPlanner(),
		factory:  NewMenuFactory(deps.Namespace),
		popups:   deps.Popups,
		keyboard: deps.Keyboard,
		launcher: deps.Launcher,
		cursor:   deps.Cursor,
		options:  options,
	}
	runtime.SetFinalizer(m, (*ExplorerContextMenu).finalize)
	return m, nil
}

func validateDependencies(deps Dependencies) error {
	switch {
	case deps.Namespace == nil:
		return missingDependency("shell namespace")
	case deps.Windows == nil:
		return missingDependency("window port")
	case deps.Popups == nil:
		return missingDependency("popup menu port")
	case deps.Keyboard == nil:
		return missingDependency("keyboard port")
	case deps.Launcher == nil:
		return missingDependency("launcher port")
	}
	return nil
}

func missingDependency(name string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("context menu requires a " + name)
}

func ValidateMenuOptions(options types.MenuOptions) error {
	if options.CommandFirst == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("command_first must be at least 1")
	}
	if options.CommandLast < options.CommandFirst {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("command_last must not be below command_first")
	}
	if options.VerbBufferSize <= 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("verb_buffer_size must be positive")
	}
	if _, ok := types.ParseExtendedVerbsMode(string(options.ExtendedVerbs)); !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("extended_verbs must be one of auto, always, never")
	}
	return nil
}

func (m *ExplorerContextMenu) Host() *HostWindow {
	return m.host
}

// Dispose destroys the host window. It is idempotent and never fails.
func (m *ExplorerContextMenu) Dispose() {
	runtime.SetFinalizer(m, nil)
	m.host.Dispose()
}

// finalize runs on the finalizer goroutine, where destroying the window
// fails and the close message is posted to the owning thread instead.
func (m *ExplorerContextMenu) finalize() {
	m.host.Dispose()
}

// ShowAtCursor shows the menu at the current cursor position.
func (m *ExplorerContextMenu) ShowAtCursor(ctx context.Context, selection types.Selection) (bool, error) {
	if m.cursor == nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("cursor position is not available")
	}
	at, err := m.cursor.CursorPosition()
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read cursor position").
			WithCause(err)
	}
	return m.Show(ctx, at, selection)
}

// Show displays the context menu for selection anchored at the screen point
// at and blocks until the user picks a command or dismisses the menu. It
// returns true once a provider was obtained and the popup ran to completion.
func (m *ExplorerContextMenu) Show(ctx context.Context, at types.Point, selection types.Selection) (bool, error) {
	if m.host.Disposed() {
		return false, types.ObjectDisposedError()
	}
	if !m.host.OwnedByCurrentThread() {
		return false, types.InvalidCallingThreadError()
	}
	if selection.Len() == 0 {
		return false, nil
	}
	if m.host.Active() {
		log.Ctx(ctx).Debug().Msg("context menu already active, ignoring show")
		return false, nil
	}

	plan, ok := m.planner.Plan(selection)
	if !ok {
		log.Ctx(ctx).Debug().
			Strs("entries", selection.Paths()).
			Msg("selection has an entry without parent directory")
		return false, nil
	}

	provider, err := m.factory.Create(ctx, plan)
	if err != nil {
		if types.IsContextMenuUnavailable(err) {
			log.Ctx(ctx).Warn().
				Err(err).
				Str("strategy", string(plan.Strategy)).
				Msg("context menu unavailable")
			return false, nil
		}
		return false, err
	}

	if err := m.track(ctx, at, plan, provider); err != nil {
		return false, err
	}
	return true, nil
}

func (m *ExplorerContextMenu) track(ctx context.Context, at types.Point, plan types.SelectionPlan, provider MenuProvider) error {
	caps := NewMenuCapabilities(provider.Menu)
	m.host.activate(&caps)

	var menu types.MenuHandle
	defer func() {
		m.host.deactivate()
		if menu != 0 {
			if err := m.popups.DestroyMenu(menu); err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("failed to destroy popup menu")
			}
		}
		provider.Menu.Release()
	}()

	menu, err := m.popups.CreatePopupMenu()
	if err != nil {
		return nativeFailure("failed to create popup menu", err)
	}

	flags := m.queryFlags(provider)
	if err := provider.Menu.QueryContextMenu(menu, 0, m.options.CommandFirst, m.options.CommandLast, flags); err != nil {
		return nativeFailure("failed to populate context menu", err)
	}

	command, err := m.popups.TrackPopupMenu(menu, at, m.host.Handle())
	if err != nil {
		return nativeFailure("failed to track context menu", err)
	}
	if command == 0 {
		log.Ctx(ctx).Debug().Msg("context menu dismissed")
		return nil
	}
	if command < m.options.CommandFirst || command > m.options.CommandLast {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("popup returned a command outside the reserved range")
	}
	offset := command - m.options.CommandFirst

	verb, err := provider.Menu.CommandVerb(offset, m.options.VerbBufferSize)
	if err != nil {
		log.Ctx(ctx).Debug().Err(err).Uint32("command", command).Msg("command has no verb")
		verb = ""
	}
	log.Ctx(ctx).Info().
		Str("verb", verb).
		Uint32("command", command).
		Str("strategy", string(provider.Strategy)).
		Msg("context menu command selected")

	if provider.InterceptOpen && strings.EqualFold(verb, types.VerbOpen) {
		return m.launchEach(ctx, plan.Entries)
	}

	info := types.InvokeInfo{
		CommandOffset: offset,
		Point:         at,
		Directory:     plan.WorkingDirectory,
		ControlDown:   m.keyboard.IsKeyDown(types.KeyControl),
		ShiftDown:     m.keyboard.IsKeyDown(types.KeyShift),
		NoAsync:       m.options.NoAsync,
		NoUI:          m.options.NoUI,
		ShowCmd:       types.ShowNormal,
	}
	if err := provider.Menu.InvokeCommand(info); err != nil {
		return nativeFailure("failed to invoke context menu command", err)
	}
	return nil
}

func (m *ExplorerContextMenu) queryFlags(provider MenuProvider) types.QueryFlags {
	flags := types.QueryNormal
	if m.options.Explore {
		flags |= types.QueryExplore
	}
	if m.wantsExtendedVerbs(provider) {
		flags |= types.QueryExtendedVerbs
	}
	return flags
}

func (m *ExplorerContextMenu) wantsExtendedVerbs(provider MenuProvider) bool {
	if provider.ForceExtendedVerbs {
		return true
	}
	switch m.options.ExtendedVerbs {
	case types.ExtendedVerbsAlways:
		return true
	case types.ExtendedVerbsNever:
		return false
	default:
		return m.keyboard.IsKeyDown(types.KeyShift)
	}
}

func (m *ExplorerContextMenu) launchEach(ctx context.Context, entries types.Selection) error {
	for _, entry := range entries {
		if err := m.launcher.Open(entry.Path); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to open " + entry.Path).
				WithCause(err)
		}
		log.Ctx(ctx).Debug().Str("path", entry.Path).Msg("opened entry")
	}
	return nil
}

func nativeFailure(msg string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(msg).
		WithCause(err)
}
