package core

import (
	"shellmenu/internal/ports"
	"shellmenu/internal/types"
)

// ItemIDList owns an ordered set of item identifiers.
type ItemIDList struct {
	ids  []types.ItemID
	free func(types.ItemID)
}

func (l *ItemIDList) IDs() []types.ItemID {
	if l == nil {
		return nil
	}
	return l.ids
}

func (l *ItemIDList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.ids)
}

// Release frees every identifier exactly once. Calling it again is a no-op.
func (l *ItemIDList) Release() {
	if l == nil {
		return
	}
	for _, id := range l.ids {
		if id != 0 {
			l.free(id)
		}
	}
	l.ids = nil
}

type IdentifierBuilder struct {
	Namespace ports.ShellNamespacePort
}

func NewIdentifierBuilder(namespace ports.ShellNamespacePort) IdentifierBuilder {
	return IdentifierBuilder{Namespace: namespace}
}

// BuildRelative parses each entry's name relative to folder.
func (b IdentifierBuilder) BuildRelative(folder ports.ShellFolderPort, entries types.Selection) (*ItemIDList, error) {
	return b.build(entries, func(entry types.Entry) (types.ItemID, error) {
		return folder.ParseDisplayName(entry.Name)
	})
}

// BuildAbsolute parses each entry's full path against the namespace root.
func (b IdentifierBuilder) BuildAbsolute(entries types.Selection) (*ItemIDList, error) {
	return b.build(entries, func(entry types.Entry) (types.ItemID, error) {
		return b.Namespace.ParseDisplayName(entry.Path)
	})
}

func (b IdentifierBuilder) build(entries types.Selection, parse func(types.Entry) (types.ItemID, error)) (*ItemIDList, error) {
	list := &ItemIDList{
		ids:  make([]types.ItemID, 0, entries.Len()),
		free: b.Namespace.FreeItemID,
	}
	completed := false
	defer func() {
		if !completed {
			list.Release()
		}
	}()

	for _, entry := range entries {
		id, err := parse(entry)
		if err != nil {
			return nil, types.ContextMenuUnavailableError("cannot resolve "+entry.Path, err)
		}
		if id == 0 {
			return nil, types.ContextMenuUnavailableError("no identifier for "+entry.Path, nil)
		}
		list.ids = append(list.ids, id)
	}
	completed = true
	return list, nil
}
