// Package shellfake is an in-memory shell that records every allocation and
// release so tests can assert that a context-menu session leaves nothing
// behind. It implements every port the core package drives.
package shellfake

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"shellmenu/internal/ports"
	"shellmenu/internal/types"
)

// Capability selects which optional message interfaces created menus expose.
type Capability int

const (
	CapabilityBase Capability = iota
	CapabilityOwnerDraw
	CapabilityExtended
)

type TrackRecord struct {
	Menu  types.MenuHandle
	At    types.Point
	Owner types.WindowHandle
}

type QueryRecord struct {
	Menu  types.MenuHandle
	Index uint32
	First uint32
	Last  uint32
	Flags types.QueryFlags
}

type RoutedMessage struct {
	Handler string
	Msg     uint32
}

type MenuRecord struct {
	Kind   string
	Folder string
	Items  []string
}

// Shell is the fake. Configure the exported fields before use; read the
// recorded slices after.
type Shell struct {
	mu sync.Mutex

	// Configuration.
	FailParse       map[string]error
	FailBind        error
	FailContextMenu error
	FailPopup       error
	FailQuery       error
	FailTrack       error
	FailInvoke      error
	FailLaunch      error
	FailDestroy     error
	FailCreate      error
	FailEnter       error
	SkipBinding     bool
	Capability      Capability
	Verbs           map[uint32]string
	SelectVerb      string
	SelectCommand   uint32
	ExtendedHandles map[uint32]uintptr
	KeysDown        map[types.VirtualKey]bool
	OwnerThread     uint32
	CallerThread    uint32
	Cursor          types.Point
	OnTrack         func(menu types.MenuHandle)

	// Recorded activity.
	Parsed       []string
	Bound        []string
	Menus        []MenuRecord
	Queries      []QueryRecord
	Tracks       []TrackRecord
	Invocations  []types.InvokeInfo
	Launches     []string
	Routed       []RoutedMessage
	Delivered    []types.WindowMessage
	DefProcCalls int
	PostedClose  []types.WindowHandle
	Entered      int
	Left         int

	nextHandle     uintptr
	liveIDs        map[types.ItemID]string
	doubleFrees    int
	liveFolders    int
	liveMenus      int
	livePopups     map[types.MenuHandle]bool
	desktopRelease int
	windows        map[types.WindowHandle]ports.MessageHandler
	menusCreated   int
	popupsCreated  int
}

func New() *Shell {
	return &Shell{
		FailParse:       map[string]error{},
		Verbs:           map[uint32]string{},
		ExtendedHandles: map[uint32]uintptr{},
		KeysDown:        map[types.VirtualKey]bool{},
		OwnerThread:     1,
		CallerThread:    1,
		nextHandle:      0x1000,
		liveIDs:         map[types.ItemID]string{},
		livePopups:      map[types.MenuHandle]bool{},
		windows:         map[types.WindowHandle]ports.MessageHandler{},
	}
}

func (s *Shell) handle() uintptr {
	s.nextHandle += 0x10
	return s.nextHandle
}

func (s *Shell) allocID(display string) (types.ItemID, error) {
	s.Parsed = append(s.Parsed, display)
	for key, err := range s.FailParse {
		if strings.EqualFold(key, display) || strings.HasSuffix(strings.ToLower(display), `\`+strings.ToLower(key)) {
			return 0, err
		}
	}
	id := types.ItemID(s.handle())
	s.liveIDs[id] = display
	return id, nil
}

// ParseDisplayName implements ports.ShellNamespacePort.
func (s *Shell) ParseDisplayName(path string) (types.ItemID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allocID(path)
}

func (s *Shell) Desktop() (ports.ShellFolderPort, error) {
	return &Folder{shell: s, root: true}, nil
}

func (s *Shell) BindToFolder(id types.ItemID) (ports.ShellFolderPort, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	path, ok := s.liveIDs[id]
	if !ok {
		return nil, fmt.Errorf("bind: unknown identifier %#x", id)
	}
	if s.FailBind != nil {
		return nil, s.FailBind
	}
	s.Bound = append(s.Bound, path)
	s.liveFolders++
	return &Folder{shell: s, path: path}, nil
}

func (s *Shell) CreateDefaultContextMenu(ids []types.ItemID) (ports.ContextMenuPort, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailContextMenu != nil {
		return nil, s.FailContextMenu
	}
	items, err := s.displayNames(ids)
	if err != nil {
		return nil, err
	}
	return s.newMenu(MenuRecord{Kind: "default", Items: items}), nil
}

func (s *Shell) FreeItemID(id types.ItemID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.liveIDs[id]; !ok {
		s.doubleFrees++
		return
	}
	delete(s.liveIDs, id)
}

func (s *Shell) displayNames(ids []types.ItemID) ([]string, error) {
	items := make([]string, 0, len(ids))
	for _, id := range ids {
		name, ok := s.liveIDs[id]
		if !ok {
			return nil, fmt.Errorf("unknown identifier %#x", id)
		}
		items = append(items, name)
	}
	return items, nil
}

func (s *Shell) newMenu(record MenuRecord) ports.ContextMenuPort {
	s.Menus = append(s.Menus, record)
	s.liveMenus++
	s.menusCreated++
	base := &Menu{shell: s, record: record, refs: 1}
	switch s.Capability {
	case CapabilityOwnerDraw:
		return &OwnerDrawMenu{Menu: base}
	case CapabilityExtended:
		return &ExtendedMenu{OwnerDrawMenu: &OwnerDrawMenu{Menu: base}}
	default:
		return base
	}
}

// Folder is a bound shell folder.
type Folder struct {
	shell    *Shell
	path     string
	root     bool
	released bool
}

func (f *Folder) ParseDisplayName(name string) (types.ItemID, error) {
	f.shell.mu.Lock()
	defer f.shell.mu.Unlock()
	display := name
	if !f.root {
		display = strings.TrimRight(f.path, `\`) + `\` + name
	}
	return f.shell.allocID(display)
}

func (f *Folder) ContextMenuOf(ids []types.ItemID) (ports.ContextMenuPort, error) {
	f.shell.mu.Lock()
	defer f.shell.mu.Unlock()
	if f.shell.FailContextMenu != nil {
		return nil, f.shell.FailContextMenu
	}
	items, err := f.shell.displayNames(ids)
	if err != nil {
		return nil, err
	}
	return f.shell.newMenu(MenuRecord{Kind: "folder", Folder: f.path, Items: items}), nil
}

func (f *Folder) Release() {
	f.shell.mu.Lock()
	defer f.shell.mu.Unlock()
	if f.root {
		f.shell.desktopRelease++
		return
	}
	if f.released {
		f.shell.doubleFrees++
		return
	}
	f.released = true
	f.shell.liveFolders--
}

// Menu is a provider with only the base capability.
type Menu struct {
	shell  *Shell
	record MenuRecord
	refs   int
}

func (m *Menu) QueryContextMenu(menu types.MenuHandle, index uint32, first uint32, last uint32, flags types.QueryFlags) error {
	m.shell.mu.Lock()
	defer m.shell.mu.Unlock()
	if !m.shell.livePopups[menu] {
		return errors.New("query: popup menu is not live")
	}
	m.shell.Queries = append(m.shell.Queries, QueryRecord{Menu: menu, Index: index, First: first, Last: last, Flags: flags})
	return m.shell.FailQuery
}

func (m *Menu) CommandVerb(offset uint32, bufferSize int) (string, error) {
	m.shell.mu.Lock()
	defer m.shell.mu.Unlock()
	verb, ok := m.shell.Verbs[offset]
	if !ok {
		return "", fmt.Errorf("no verb for command offset %d", offset)
	}
	if len(verb) >= bufferSize {
		return "", errors.New("verb does not fit buffer")
	}
	return verb, nil
}

func (m *Menu) InvokeCommand(info types.InvokeInfo) error {
	m.shell.mu.Lock()
	defer m.shell.mu.Unlock()
	m.shell.Invocations = append(m.shell.Invocations, info)
	return m.shell.FailInvoke
}

func (m *Menu) Release() {
	m.shell.mu.Lock()
	defer m.shell.mu.Unlock()
	if m.refs == 0 {
		m.shell.doubleFrees++
		return
	}
	m.refs--
	if m.refs == 0 {
		m.shell.liveMenus--
	}
}

// OwnerDrawMenu adds HandleMenuMsg.
type OwnerDrawMenu struct {
	*Menu
}

func (m *OwnerDrawMenu) HandleMenuMsg(msg types.WindowMessage) error {
	m.shell.mu.Lock()
	defer m.shell.mu.Unlock()
	m.shell.Routed = append(m.shell.Routed, RoutedMessage{Handler: "basic", Msg: msg.Msg})
	return nil
}

// ExtendedMenu adds HandleMenuMsg2. It claims the messages listed in
// Shell.ExtendedHandles.
type ExtendedMenu struct {
	*OwnerDrawMenu
}

func (m *ExtendedMenu) HandleMenuMsg2(msg types.WindowMessage) (uintptr, bool) {
	m.shell.mu.Lock()
	defer m.shell.mu.Unlock()
	result, ok := m.shell.ExtendedHandles[msg.Msg]
	if ok {
		m.shell.Routed = append(m.shell.Routed, RoutedMessage{Handler: "extended", Msg: msg.Msg})
	}
	return result, ok
}
