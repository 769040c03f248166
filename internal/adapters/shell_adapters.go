package adapters

import "shellmenu/internal/ports"

// ShellAdapters bundles the native implementations of every shell and
// desktop port. NewShellAdapters fails on platforms without a shell.
type ShellAdapters struct {
	Namespace ports.ShellNamespacePort
	Windows   ports.WindowPort
	Popups    ports.PopupMenuPort
	Keyboard  ports.KeyboardPort
	Cursor    ports.CursorPort
	Launcher  ports.LauncherPort
	Thread    ports.ThreadPort
}
