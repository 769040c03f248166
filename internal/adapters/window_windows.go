//go:build windows

package adapters

import (
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"shellmenu/internal/ports"
	"shellmenu/internal/shared"
	"shellmenu/internal/types"
)

const hostWindowClass = "ShellMenuHostWindow"

// GWLP_WNDPROC is -4.
const gwlpWndProc = ^uintptr(3)

var (
	moduser32 = windows.NewLazySystemDLL("user32.dll")

	procRegisterClassExW  = moduser32.NewProc("RegisterClassExW")
	procCreateWindowExW   = moduser32.NewProc("CreateWindowExW")
	procDestroyWindow     = moduser32.NewProc("DestroyWindow")
	procDefWindowProcW    = moduser32.NewProc("DefWindowProcW")
	procPostMessageW      = moduser32.NewProc("PostMessageW")
	procSetWindowLongPtrW = moduser32.NewProc(setWindowLongName())
)

// 32-bit user32 exports SetWindowLongPtrW only as a macro over SetWindowLongW.
func setWindowLongName() string {
	if unsafe.Sizeof(uintptr(0)) == 8 {
		return "SetWindowLongPtrW"
	}
	return "SetWindowLongW"
}

type wndClassEx struct {
	Size       uint32
	Style      uint32
	WndProc    uintptr
	ClsExtra   int32
	WndExtra   int32
	Instance   windows.Handle
	Icon       windows.Handle
	Cursor     windows.Handle
	Background windows.Handle
	MenuName   *uint16
	ClassName  *uint16
	IconSm     windows.Handle
}

// The window class has two static procedures. initWndProc receives the
// first messages of a new window, asks the pending creation hook for a
// handler, registers it and rebinds the window to routedWndProc.
var (
	initWndProc   = windows.NewCallback(initialWindowProc)
	routedWndProc = windows.NewCallback(routedWindowProc)
)

var hostWindows struct {
	sync.Mutex
	pending  ports.WindowCreationHook
	handlers map[types.WindowHandle]ports.MessageHandler
}

var hostClass struct {
	once     sync.Once
	instance windows.Handle
	name     *uint16
	err      error
}

func registerHostClass() (windows.Handle, *uint16, error) {
	hostClass.once.Do(func() {
		var instance windows.Handle
		if err := windows.GetModuleHandleEx(0, nil, &instance); err != nil {
			hostClass.err = shared.Win32Error("GetModuleHandleEx", err)
			return
		}
		name, err := windows.UTF16PtrFromString(hostWindowClass)
		if err != nil {
			hostClass.err = shared.Win32Error("UTF16PtrFromString", err)
			return
		}
		class := wndClassEx{
			WndProc:   initWndProc,
			Instance:  instance,
			ClassName: name,
		}
		class.Size = uint32(unsafe.Sizeof(class))
		atom, _, callErr := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&class)))
		if atom == 0 {
			hostClass.err = shared.Win32Error("RegisterClassExW", callErr)
			return
		}
		hostClass.instance = instance
		hostClass.name = name
	})
	return hostClass.instance, hostClass.name, hostClass.err
}

func initialWindowProc(hwnd uintptr, msg uint32, wparam uintptr, lparam uintptr) uintptr {
	window := types.WindowHandle(hwnd)
	message := types.WindowMessage{Msg: msg, WParam: wparam, LParam: lparam}

	hostWindows.Lock()
	hook := hostWindows.pending
	hostWindows.Unlock()
	if hook == nil {
		return defWindowProc(window, message)
	}
	handler := hook(window)
	if handler == nil {
		return defWindowProc(window, message)
	}

	hostWindows.Lock()
	if hostWindows.handlers == nil {
		hostWindows.handlers = make(map[types.WindowHandle]ports.MessageHandler)
	}
	hostWindows.handlers[window] = handler
	hostWindows.Unlock()
	procSetWindowLongPtrW.Call(hwnd, gwlpWndProc, routedWndProc)

	return handler.HandleMessage(window, message)
}

func routedWindowProc(hwnd uintptr, msg uint32, wparam uintptr, lparam uintptr) uintptr {
	window := types.WindowHandle(hwnd)
	message := types.WindowMessage{Msg: msg, WParam: wparam, LParam: lparam}

	hostWindows.Lock()
	handler := hostWindows.handlers[window]
	if msg == types.WMNCDestroy {
		delete(hostWindows.handlers, window)
	}
	hostWindows.Unlock()

	if handler == nil {
		return defWindowProc(window, message)
	}
	return handler.HandleMessage(window, message)
}

func defWindowProc(window types.WindowHandle, msg types.WindowMessage) uintptr {
	result, _, _ := procDefWindowProcW.Call(uintptr(window), uintptr(msg.Msg), msg.WParam, msg.LParam)
	return result
}

// WindowAdapter implements ports.WindowPort on user32.
type WindowAdapter struct{}

func NewWindowAdapter() *WindowAdapter {
	return &WindowAdapter{}
}

// CreateHostWindow creates a hidden, zero-sized top-level window. A
// top-level owner is required for the popup to take the foreground.
func (a *WindowAdapter) CreateHostWindow(hook ports.WindowCreationHook) (types.WindowHandle, error) {
	instance, className, err := registerHostClass()
	if err != nil {
		return 0, err
	}

	hostWindows.Lock()
	hostWindows.pending = hook
	hostWindows.Unlock()
	defer func() {
		hostWindows.Lock()
		hostWindows.pending = nil
		hostWindows.Unlock()
	}()

	hwnd, _, callErr := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(className)),
		0,
		0, 0, 0, 0,
		0,
		0,
		uintptr(instance),
		0,
	)
	if hwnd == 0 {
		return 0, shared.Win32Error("CreateWindowExW", callErr)
	}
	return types.WindowHandle(hwnd), nil
}

func (a *WindowAdapter) DestroyWindow(window types.WindowHandle) error {
	ok, _, callErr := procDestroyWindow.Call(uintptr(window))
	if ok == 0 {
		return shared.Win32Error("DestroyWindow", callErr)
	}
	return nil
}

func (a *WindowAdapter) PostClose(window types.WindowHandle) error {
	return postMessage(window, types.WMClose)
}

func (a *WindowAdapter) DefWindowProc(window types.WindowHandle, msg types.WindowMessage) uintptr {
	return defWindowProc(window, msg)
}

func (a *WindowAdapter) WindowThreadID(window types.WindowHandle) uint32 {
	if window == 0 {
		return 0
	}
	tid, err := windows.GetWindowThreadProcessId(windows.HWND(window), nil)
	if err != nil {
		return 0
	}
	return tid
}

func (a *WindowAdapter) CurrentThreadID() uint32 {
	return windows.GetCurrentThreadId()
}

func postMessage(window types.WindowHandle, msg uint32) error {
	ok, _, callErr := procPostMessageW.Call(uintptr(window), uintptr(msg), 0, 0)
	if ok == 0 {
		return shared.Win32Error("PostMessageW", callErr)
	}
	return nil
}
