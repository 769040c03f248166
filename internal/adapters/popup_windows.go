//go:build windows

package adapters

import (
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"

	"shellmenu/internal/shared"
	"shellmenu/internal/types"
)

const (
	tpmRightButton = 0x0002
	tpmReturnCmd   = 0x0100

	wmNull = 0x0000
)

var (
	procCreatePopupMenu     = moduser32.NewProc("CreatePopupMenu")
	procTrackPopupMenuEx    = moduser32.NewProc("TrackPopupMenuEx")
	procDestroyMenu         = moduser32.NewProc("DestroyMenu")
	procSetForegroundWindow = moduser32.NewProc("SetForegroundWindow")
	procGetKeyState         = moduser32.NewProc("GetKeyState")
	procGetCursorPos        = moduser32.NewProc("GetCursorPos")
)

// DesktopAdapter implements the popup, keyboard and cursor ports on user32
// and opens files through ShellExecute.
type DesktopAdapter struct{}

func NewDesktopAdapter() *DesktopAdapter {
	return &DesktopAdapter{}
}

func (a *DesktopAdapter) CreatePopupMenu() (types.MenuHandle, error) {
	menu, _, callErr := procCreatePopupMenu.Call()
	if menu == 0 {
		return 0, shared.Win32Error("CreatePopupMenu", callErr)
	}
	return types.MenuHandle(menu), nil
}

// TrackPopupMenu brings the owner to the foreground so the menu closes when
// it loses focus, and posts WM_NULL afterwards so a second right click works.
func (a *DesktopAdapter) TrackPopupMenu(menu types.MenuHandle, at types.Point, owner types.WindowHandle) (uint32, error) {
	procSetForegroundWindow.Call(uintptr(owner))
	command, _, _ := procTrackPopupMenuEx.Call(
		uintptr(menu),
		tpmReturnCmd|tpmRightButton,
		uintptr(at.X),
		uintptr(at.Y),
		uintptr(owner),
		0,
	)
	if err := postMessage(owner, wmNull); err != nil {
		return uint32(command), err
	}
	return uint32(command), nil
}

func (a *DesktopAdapter) DestroyMenu(menu types.MenuHandle) error {
	ok, _, callErr := procDestroyMenu.Call(uintptr(menu))
	if ok == 0 {
		return shared.Win32Error("DestroyMenu", callErr)
	}
	return nil
}

func (a *DesktopAdapter) IsKeyDown(key types.VirtualKey) bool {
	state, _, _ := procGetKeyState.Call(uintptr(key))
	return int16(state) < 0
}

func (a *DesktopAdapter) CursorPosition() (types.Point, error) {
	var pt point
	ok, _, callErr := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ok == 0 {
		return types.Point{}, shared.Win32Error("GetCursorPos", callErr)
	}
	return types.Point{X: pt.X, Y: pt.Y}, nil
}

// Open launches path with its default application, working in its directory.
func (a *DesktopAdapter) Open(path string) error {
	verb, err := windows.UTF16PtrFromString(types.VerbOpen)
	if err != nil {
		return shared.Win32Error("ShellExecute", err)
	}
	file, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return invalidDisplayName(path, err)
	}
	dir, err := windows.UTF16PtrFromString(filepath.Dir(path))
	if err != nil {
		return invalidDisplayName(path, err)
	}
	if err := windows.ShellExecute(0, verb, file, nil, dir, types.ShowNormal); err != nil {
		return shared.Win32Error("ShellExecute", err)
	}
	return nil
}
