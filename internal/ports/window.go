package ports

import "shellmenu/internal/types"

// MessageHandler receives every message sent to a bound host window.
type MessageHandler interface {
	HandleMessage(window types.WindowHandle, msg types.WindowMessage) uintptr
}

// WindowCreationHook is called by the native window class on the first
// message of a new window. It returns the handler subsequent messages are
// routed to, or nil when no instance is under construction.
type WindowCreationHook func(window types.WindowHandle) MessageHandler

type WindowPort interface {
	CreateHostWindow(hook WindowCreationHook) (types.WindowHandle, error)
	DestroyWindow(window types.WindowHandle) error
	PostClose(window types.WindowHandle) error
	DefWindowProc(window types.WindowHandle, msg types.WindowMessage) uintptr
	WindowThreadID(window types.WindowHandle) uint32
	CurrentThreadID() uint32
}

type PopupMenuPort interface {
	CreatePopupMenu() (types.MenuHandle, error)
	// TrackPopupMenu blocks until the user picks a command (its id) or
	// dismisses the menu (0).
	TrackPopupMenu(menu types.MenuHandle, at types.Point, owner types.WindowHandle) (uint32, error)
	DestroyMenu(menu types.MenuHandle) error
}

type KeyboardPort interface {
	IsKeyDown(key types.VirtualKey) bool
}

type CursorPort interface {
	CursorPosition() (types.Point, error)
}

// LauncherPort opens a path with its default application.
type LauncherPort interface {
	Open(path string) error
}

// ThreadPort prepares the calling goroutine to own shell UI objects.
type ThreadPort interface {
	// Enter pins the goroutine to its OS thread and initializes a
	// single-threaded apartment. leave undoes both.
	Enter() (leave func(), err error)
}
