package app

import (
	"shellmenu/internal/adapters"
	"shellmenu/internal/ports"
)

type Service struct {
	Entries   ports.EntrySourcePort
	Namespace ports.ShellNamespacePort
	Windows   ports.WindowPort
	Popups    ports.PopupMenuPort
	Keyboard  ports.KeyboardPort
	Cursor    ports.CursorPort
	Launcher  ports.LauncherPort
	Thread    ports.ThreadPort
	// ShellErr is set when the platform has no shell; Show reports it.
	ShellErr error
}

func NewService() Service {
	service := Service{Entries: adapters.NewFileEntryAdapter()}
	shell, err := adapters.NewShellAdapters()
	if err != nil {
		service.ShellErr = err
		return service
	}
	service.Namespace = shell.Namespace
	service.Windows = shell.Windows
	service.Popups = shell.Popups
	service.Keyboard = shell.Keyboard
	service.Cursor = shell.Cursor
	service.Launcher = shell.Launcher
	service.Thread = shell.Thread
	return service
}
