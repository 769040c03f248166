package shellfake

import (
	"errors"
	"fmt"

	"shellmenu/internal/ports"
	"shellmenu/internal/types"
)

// CreateHostWindow emulates the native class procedure: the creation hook
// runs on the first message and later messages go to the handler it returns.
func (s *Shell) CreateHostWindow(hook ports.WindowCreationHook) (types.WindowHandle, error) {
	s.mu.Lock()
	if s.FailCreate != nil {
		err := s.FailCreate
		s.mu.Unlock()
		return 0, err
	}
	window := types.WindowHandle(s.handle())
	s.mu.Unlock()

	var handler ports.MessageHandler
	if !s.SkipBinding {
		handler = hook(window)
	}
	if handler == nil {
		s.mu.Lock()
		s.DefProcCalls++
		s.mu.Unlock()
		return window, nil
	}

	s.mu.Lock()
	s.windows[window] = handler
	s.mu.Unlock()
	handler.HandleMessage(window, types.WindowMessage{Msg: types.WMNCCreate})
	handler.HandleMessage(window, types.WindowMessage{Msg: types.WMCreate})
	return window, nil
}

func (s *Shell) DestroyWindow(window types.WindowHandle) error {
	s.mu.Lock()
	if s.FailDestroy != nil {
		err := s.FailDestroy
		s.mu.Unlock()
		return err
	}
	handler, ok := s.windows[window]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("destroy: unknown window %#x", window)
	}
	handler.HandleMessage(window, types.WindowMessage{Msg: types.WMNCDestroy})
	s.mu.Lock()
	delete(s.windows, window)
	s.mu.Unlock()
	return nil
}

func (s *Shell) PostClose(window types.WindowHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PostedClose = append(s.PostedClose, window)
	return nil
}

func (s *Shell) DefWindowProc(window types.WindowHandle, msg types.WindowMessage) uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DefProcCalls++
	return 0
}

func (s *Shell) WindowThreadID(window types.WindowHandle) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.OwnerThread
}

func (s *Shell) CurrentThreadID() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.CallerThread
}

// Send delivers msg to the handler bound to window, like SendMessage.
func (s *Shell) Send(window types.WindowHandle, msg types.WindowMessage) uintptr {
	s.mu.Lock()
	handler, ok := s.windows[window]
	s.Delivered = append(s.Delivered, msg)
	s.mu.Unlock()
	if !ok {
		return 0
	}
	return handler.HandleMessage(window, msg)
}

// LiveWindows reports how many windows have a bound handler.
func (s *Shell) LiveWindows() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

func (s *Shell) CreatePopupMenu() (types.MenuHandle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailPopup != nil {
		return 0, s.FailPopup
	}
	menu := types.MenuHandle(s.handle())
	s.livePopups[menu] = true
	s.popupsCreated++
	return menu, nil
}

func (s *Shell) TrackPopupMenu(menu types.MenuHandle, at types.Point, owner types.WindowHandle) (uint32, error) {
	s.mu.Lock()
	if !s.livePopups[menu] {
		s.mu.Unlock()
		return 0, errors.New("track: popup menu is not live")
	}
	s.Tracks = append(s.Tracks, TrackRecord{Menu: menu, At: at, Owner: owner})
	onTrack := s.OnTrack
	s.mu.Unlock()

	if onTrack != nil {
		onTrack(menu)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailTrack != nil {
		return 0, s.FailTrack
	}
	if s.SelectCommand != 0 {
		return s.SelectCommand, nil
	}
	if s.SelectVerb == "" {
		return 0, nil
	}
	first := uint32(1)
	if len(s.Queries) > 0 {
		first = s.Queries[len(s.Queries)-1].First
	}
	for offset, verb := range s.Verbs {
		if verb == s.SelectVerb {
			return first + offset, nil
		}
	}
	return 0, fmt.Errorf("track: no command with verb %q", s.SelectVerb)
}

func (s *Shell) DestroyMenu(menu types.MenuHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.livePopups[menu] {
		s.doubleFrees++
		return errors.New("destroy: popup menu is not live")
	}
	delete(s.livePopups, menu)
	return nil
}

func (s *Shell) IsKeyDown(key types.VirtualKey) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.KeysDown[key]
}

func (s *Shell) CursorPosition() (types.Point, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Cursor, nil
}

func (s *Shell) Open(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailLaunch != nil {
		return s.FailLaunch
	}
	s.Launches = append(s.Launches, path)
	return nil
}

// Enter records a UI-thread scope. Leaks reports scopes never left.
func (s *Shell) Enter() (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailEnter != nil {
		return nil, s.FailEnter
	}
	s.Entered++
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.Left++
	}, nil
}
