//go:build windows

package adapters

import (
	"syscall"
	"unsafe"

	"github.com/ZanzyTHEbar/errbuilder-go"
	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"shellmenu/internal/ports"
	"shellmenu/internal/shared"
	"shellmenu/internal/types"
)

const gcsVerbW = 0x00000004

type iContextMenuVtbl struct {
	ole.IUnknownVtbl
	QueryContextMenu uintptr
	InvokeCommand    uintptr
	GetCommandString uintptr
}

type iContextMenu2Vtbl struct {
	iContextMenuVtbl
	HandleMenuMsg uintptr
}

type iContextMenu3Vtbl struct {
	iContextMenu2Vtbl
	HandleMenuMsg2 uintptr
}

type point struct {
	X int32
	Y int32
}

// cmInvokeCommandInfoEx is CMINVOKECOMMANDINFOEX.
type cmInvokeCommandInfoEx struct {
	Size        uint32
	Mask        uint32
	Hwnd        uintptr
	Verb        uintptr
	Parameters  *byte
	Directory   *byte
	Show        int32
	HotKey      uint32
	Icon        uintptr
	Title       *byte
	VerbW       uintptr
	ParametersW *uint16
	DirectoryW  *uint16
	TitleW      *uint16
	Invoke      point
}

// contextMenu holds every interface level the provider answered to. Each
// acquired interface carries its own reference.
type contextMenu struct {
	menu     *ole.IUnknown
	menu2    *ole.IUnknown
	menu3    *ole.IUnknown
	released bool
}

type ownerDrawMenu struct {
	*contextMenu
}

type extendedMenu struct {
	*contextMenu
}

// wrapContextMenu probes the provider for its message-handling levels and
// returns an adapter exposing exactly those capabilities.
func wrapContextMenu(menu *ole.IUnknown) ports.ContextMenuPort {
	cm := &contextMenu{
		menu:  menu,
		menu2: queryInterface(menu, iidIContextMenu2),
		menu3: queryInterface(menu, iidIContextMenu3),
	}
	switch {
	case cm.menu3 != nil:
		return extendedMenu{cm}
	case cm.menu2 != nil:
		return ownerDrawMenu{cm}
	default:
		return cm
	}
}

func queryInterface(unknown *ole.IUnknown, iid *ole.GUID) *ole.IUnknown {
	var out *ole.IUnknown
	hr, _, _ := syscall.SyscallN(unknown.VTable().QueryInterface,
		uintptr(unsafe.Pointer(unknown)),
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&out)),
	)
	if shared.HRESULTFailed(hr) {
		return nil
	}
	return out
}

func (m *contextMenu) vtbl() *iContextMenuVtbl {
	return (*iContextMenuVtbl)(unsafe.Pointer(m.menu.RawVTable))
}

func (m *contextMenu) QueryContextMenu(menu types.MenuHandle, index uint32, first uint32, last uint32, flags types.QueryFlags) error {
	hr, _, _ := syscall.SyscallN(m.vtbl().QueryContextMenu,
		uintptr(unsafe.Pointer(m.menu)),
		uintptr(menu),
		uintptr(index),
		uintptr(first),
		uintptr(last),
		uintptr(flags),
	)
	return shared.HRESULTError("IContextMenu::QueryContextMenu", hr, ole.NewError(hr))
}

func (m *contextMenu) CommandVerb(offset uint32, bufferSize int) (string, error) {
	if bufferSize <= 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("verb buffer size must be positive")
	}
	buf := make([]uint16, bufferSize)
	hr, _, _ := syscall.SyscallN(m.vtbl().GetCommandString,
		uintptr(unsafe.Pointer(m.menu)),
		uintptr(offset),
		gcsVerbW,
		0,
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(bufferSize),
	)
	if err := shared.HRESULTError("IContextMenu::GetCommandString", hr, ole.NewError(hr)); err != nil {
		return "", err
	}
	return windows.UTF16ToString(shared.TrimUTF16(buf)), nil
}

func (m *contextMenu) InvokeCommand(info types.InvokeInfo) error {
	invoke := cmInvokeCommandInfoEx{
		Mask:   invokeMask(info),
		Verb:   uintptr(info.CommandOffset),
		VerbW:  uintptr(info.CommandOffset),
		Show:   info.ShowCmd,
		Invoke: point{X: info.Point.X, Y: info.Point.Y},
	}
	invoke.Size = uint32(unsafe.Sizeof(invoke))
	if info.Directory != "" {
		directory, err := windows.UTF16PtrFromString(info.Directory)
		if err != nil {
			return invalidDisplayName(info.Directory, err)
		}
		invoke.DirectoryW = directory
	}
	hr, _, _ := syscall.SyscallN(m.vtbl().InvokeCommand,
		uintptr(unsafe.Pointer(m.menu)),
		uintptr(unsafe.Pointer(&invoke)),
	)
	return shared.HRESULTError("IContextMenu::InvokeCommand", hr, ole.NewError(hr))
}

func (m *contextMenu) Release() {
	if m.released {
		return
	}
	m.released = true
	for _, unknown := range []*ole.IUnknown{m.menu3, m.menu2, m.menu} {
		if unknown != nil {
			unknown.Release()
		}
	}
}

// handleMenuMsg goes through IContextMenu3 when present; its vtable extends
// IContextMenu2.
func (m *contextMenu) handleMenuMsg(msg types.WindowMessage) error {
	target := m.menu2
	if m.menu3 != nil {
		target = m.menu3
	}
	vtbl := (*iContextMenu2Vtbl)(unsafe.Pointer(target.RawVTable))
	hr, _, _ := syscall.SyscallN(vtbl.HandleMenuMsg,
		uintptr(unsafe.Pointer(target)),
		uintptr(msg.Msg),
		msg.WParam,
		msg.LParam,
	)
	return shared.HRESULTError("IContextMenu2::HandleMenuMsg", hr, ole.NewError(hr))
}

func (m *contextMenu) handleMenuMsg2(msg types.WindowMessage) (uintptr, bool) {
	vtbl := (*iContextMenu3Vtbl)(unsafe.Pointer(m.menu3.RawVTable))
	var result uintptr
	hr, _, _ := syscall.SyscallN(vtbl.HandleMenuMsg2,
		uintptr(unsafe.Pointer(m.menu3)),
		uintptr(msg.Msg),
		msg.WParam,
		msg.LParam,
		uintptr(unsafe.Pointer(&result)),
	)
	if hr != 0 {
		return 0, false
	}
	return result, true
}

func (m ownerDrawMenu) HandleMenuMsg(msg types.WindowMessage) error {
	return m.handleMenuMsg(msg)
}

func (m extendedMenu) HandleMenuMsg(msg types.WindowMessage) error {
	return m.handleMenuMsg(msg)
}

func (m extendedMenu) HandleMenuMsg2(msg types.WindowMessage) (uintptr, bool) {
	return m.handleMenuMsg2(msg)
}
