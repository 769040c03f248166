//go:build windows

package adapters

import (
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"github.com/ZanzyTHEbar/errbuilder-go"
	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"shellmenu/internal/ports"
	"shellmenu/internal/shared"
	"shellmenu/internal/types"
)

var (
	modshell32 = windows.NewLazySystemDLL("shell32.dll")

	procSHGetDesktopFolder         = modshell32.NewProc("SHGetDesktopFolder")
	procSHParseDisplayName         = modshell32.NewProc("SHParseDisplayName")
	procSHCreateDefaultContextMenu = modshell32.NewProc("SHCreateDefaultContextMenu")
)

var (
	iidIShellFolder  = ole.NewGUID("{000214E6-0000-0000-C000-000000000046}")
	iidIContextMenu  = ole.NewGUID("{000214E4-0000-0000-C000-000000000046}")
	iidIContextMenu2 = ole.NewGUID("{000214F4-0000-0000-C000-000000000046}")
	iidIContextMenu3 = ole.NewGUID("{BCFCE0A0-EC17-11D0-8D10-00A0C90F2719}")
)

type iShellFolderVtbl struct {
	ole.IUnknownVtbl
	ParseDisplayName uintptr
	EnumObjects      uintptr
	BindToObject     uintptr
	BindToStorage    uintptr
	CompareIDs       uintptr
	CreateViewObject uintptr
	GetAttributesOf  uintptr
	GetUIObjectOf    uintptr
	GetDisplayNameOf uintptr
	SetNameOf        uintptr
}

type iShellFolder struct {
	ole.IUnknown
}

func (f *iShellFolder) vtbl() *iShellFolderVtbl {
	return (*iShellFolderVtbl)(unsafe.Pointer(f.RawVTable))
}

func (f *iShellFolder) parseDisplayName(name string) (types.ItemID, error) {
	namePtr, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return 0, invalidDisplayName(name, err)
	}
	var eaten uint32
	var id uintptr
	hr, _, _ := syscall.SyscallN(f.vtbl().ParseDisplayName,
		uintptr(unsafe.Pointer(f)),
		0,
		0,
		uintptr(unsafe.Pointer(namePtr)),
		uintptr(unsafe.Pointer(&eaten)),
		uintptr(unsafe.Pointer(&id)),
		0,
	)
	if err := shared.HRESULTError("IShellFolder::ParseDisplayName", hr, ole.NewError(hr)); err != nil {
		return 0, err
	}
	return types.ItemID(id), nil
}

func (f *iShellFolder) bindToFolder(id types.ItemID) (*iShellFolder, error) {
	var folder *iShellFolder
	hr, _, _ := syscall.SyscallN(f.vtbl().BindToObject,
		uintptr(unsafe.Pointer(f)),
		uintptr(id),
		0,
		uintptr(unsafe.Pointer(iidIShellFolder)),
		uintptr(unsafe.Pointer(&folder)),
	)
	if err := shared.HRESULTError("IShellFolder::BindToObject", hr, ole.NewError(hr)); err != nil {
		return nil, err
	}
	return folder, nil
}

func (f *iShellFolder) contextMenuOf(ids []types.ItemID) (*ole.IUnknown, error) {
	var menu *ole.IUnknown
	hr, _, _ := syscall.SyscallN(f.vtbl().GetUIObjectOf,
		uintptr(unsafe.Pointer(f)),
		0,
		uintptr(len(ids)),
		uintptr(unsafe.Pointer(&ids[0])),
		uintptr(unsafe.Pointer(iidIContextMenu)),
		0,
		uintptr(unsafe.Pointer(&menu)),
	)
	runtime.KeepAlive(ids)
	if err := shared.HRESULTError("IShellFolder::GetUIObjectOf", hr, ole.NewError(hr)); err != nil {
		return nil, err
	}
	return menu, nil
}

// defContextMenu is DEFCONTEXTMENU.
type defContextMenu struct {
	Hwnd            uintptr
	Callback        uintptr
	FolderID        uintptr
	Folder          *iShellFolder
	Count           uint32
	IDs             *types.ItemID
	AssociationInfo uintptr
	KeyCount        uint32
	Keys            uintptr
}

var desktop struct {
	once   sync.Once
	folder *iShellFolder
	err    error
}

// desktopFolder initializes the namespace root once per process. A failure
// is cached and reported to every caller.
func desktopFolder() (*iShellFolder, error) {
	desktop.once.Do(func() {
		var folder *iShellFolder
		hr, _, _ := procSHGetDesktopFolder.Call(uintptr(unsafe.Pointer(&folder)))
		if err := shared.HRESULTError("SHGetDesktopFolder", hr, ole.NewError(hr)); err != nil {
			desktop.err = err
			return
		}
		if folder == nil {
			desktop.err = errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("SHGetDesktopFolder returned no folder")
			return
		}
		desktop.folder = folder
	})
	return desktop.folder, desktop.err
}

func NewShellAdapters() (ShellAdapters, error) {
	if err := modshell32.Load(); err != nil {
		return ShellAdapters{}, shared.Win32Error("loading shell32.dll", err)
	}
	input := NewDesktopAdapter()
	return ShellAdapters{
		Namespace: NewShellNamespaceAdapter(),
		Windows:   NewWindowAdapter(),
		Popups:    input,
		Keyboard:  input,
		Cursor:    input,
		Launcher:  input,
		Thread:    NewThreadAdapter(),
	}, nil
}

// ShellNamespaceAdapter implements ports.ShellNamespacePort on shell32.
type ShellNamespaceAdapter struct{}

func NewShellNamespaceAdapter() *ShellNamespaceAdapter {
	return &ShellNamespaceAdapter{}
}

func (a *ShellNamespaceAdapter) ParseDisplayName(path string) (types.ItemID, error) {
	namePtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, invalidDisplayName(path, err)
	}
	var id uintptr
	var attributes uint32
	hr, _, _ := procSHParseDisplayName.Call(
		uintptr(unsafe.Pointer(namePtr)),
		0,
		uintptr(unsafe.Pointer(&id)),
		0,
		uintptr(unsafe.Pointer(&attributes)),
	)
	if err := shared.HRESULTError("SHParseDisplayName", hr, ole.NewError(hr)); err != nil {
		return 0, err
	}
	return types.ItemID(id), nil
}

func (a *ShellNamespaceAdapter) Desktop() (ports.ShellFolderPort, error) {
	root, err := desktopFolder()
	if err != nil {
		return nil, err
	}
	return &shellFolder{folder: root, root: true}, nil
}

func (a *ShellNamespaceAdapter) BindToFolder(id types.ItemID) (ports.ShellFolderPort, error) {
	root, err := desktopFolder()
	if err != nil {
		return nil, err
	}
	folder, err := root.bindToFolder(id)
	if err != nil {
		return nil, err
	}
	return &shellFolder{folder: folder}, nil
}

func (a *ShellNamespaceAdapter) CreateDefaultContextMenu(ids []types.ItemID) (ports.ContextMenuPort, error) {
	if len(ids) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("default context menu requires at least one item")
	}
	root, err := desktopFolder()
	if err != nil {
		return nil, err
	}
	dcm := defContextMenu{
		Folder: root,
		Count:  uint32(len(ids)),
		IDs:    &ids[0],
	}
	var menu *ole.IUnknown
	hr, _, _ := procSHCreateDefaultContextMenu.Call(
		uintptr(unsafe.Pointer(&dcm)),
		uintptr(unsafe.Pointer(iidIContextMenu)),
		uintptr(unsafe.Pointer(&menu)),
	)
	runtime.KeepAlive(ids)
	if err := shared.HRESULTError("SHCreateDefaultContextMenu", hr, ole.NewError(hr)); err != nil {
		return nil, err
	}
	return wrapContextMenu(menu), nil
}

func (a *ShellNamespaceAdapter) FreeItemID(id types.ItemID) {
	if id == 0 {
		return
	}
	ole.CoTaskMemFree(uintptr(id))
}

// shellFolder adapts an IShellFolder. The root is borrowed and never released.
type shellFolder struct {
	folder   *iShellFolder
	root     bool
	released bool
}

func (f *shellFolder) ParseDisplayName(name string) (types.ItemID, error) {
	return f.folder.parseDisplayName(name)
}

func (f *shellFolder) ContextMenuOf(ids []types.ItemID) (ports.ContextMenuPort, error) {
	if len(ids) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("context menu requires at least one item")
	}
	menu, err := f.folder.contextMenuOf(ids)
	if err != nil {
		return nil, err
	}
	return wrapContextMenu(menu), nil
}

func (f *shellFolder) Release() {
	if f.root || f.released {
		return
	}
	f.released = true
	f.folder.Release()
}

func invalidDisplayName(name string, cause error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("invalid display name: " + name).
		WithCause(cause)
}
