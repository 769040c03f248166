package ports

import "shellmenu/internal/types"

// ShellNamespacePort is the process-wide gateway to the shell namespace.
// The root folder is initialized once and never released.
type ShellNamespacePort interface {
	// ParseDisplayName resolves an absolute path relative to the namespace root.
	ParseDisplayName(path string) (types.ItemID, error)
	// Desktop returns the namespace root folder. Callers must not release it.
	Desktop() (ShellFolderPort, error)
	// BindToFolder binds an absolute identifier to a folder owned by the caller.
	BindToFolder(id types.ItemID) (ShellFolderPort, error)
	// CreateDefaultContextMenu builds the cross-folder menu provider over
	// absolute identifiers.
	CreateDefaultContextMenu(ids []types.ItemID) (ContextMenuPort, error)
	// FreeItemID releases an identifier allocated by this port or by a folder.
	FreeItemID(id types.ItemID)
}

type ShellFolderPort interface {
	// ParseDisplayName resolves a name relative to this folder.
	ParseDisplayName(name string) (types.ItemID, error)
	// ContextMenuOf returns the folder-scoped menu provider for child identifiers.
	ContextMenuOf(ids []types.ItemID) (ContextMenuPort, error)
	Release()
}

// ContextMenuPort is the base capability of a context-menu provider.
type ContextMenuPort interface {
	QueryContextMenu(menu types.MenuHandle, index uint32, first uint32, last uint32, flags types.QueryFlags) error
	// CommandVerb returns the canonical verb of the command at offset from
	// the first reserved id.
	CommandVerb(offset uint32, bufferSize int) (string, error)
	InvokeCommand(info types.InvokeInfo) error
	Release()
}

// MenuMessageHandler is the owner-draw capability (IContextMenu2).
type MenuMessageHandler interface {
	HandleMenuMsg(msg types.WindowMessage) error
}

// MenuMessageHandler2 is the extended message capability (IContextMenu3).
// handled is false when the provider declined the message.
type MenuMessageHandler2 interface {
	HandleMenuMsg2(msg types.WindowMessage) (result uintptr, handled bool)
}
