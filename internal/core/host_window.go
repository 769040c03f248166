package core

import (
	"context"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"shellmenu/internal/ports"
	"shellmenu/internal/types"
)

// hostGate serializes host window construction process-wide. The native
// creation callback has no user-data parameter, so the instance being built
// is published in the single slot for the duration of the create call.
var hostGate struct {
	sync.Mutex
	constructing *HostWindow
}

// HostWindow is the hidden native window that owns the popup while it is
// tracked and forwards menu messages to the active provider.
type HostWindow struct {
	windows ports.WindowPort
	handle  types.WindowHandle
	state   types.HostState
	router  MessageRouter
}

func NewHostWindow(ctx context.Context, windows ports.WindowPort) (*HostWindow, error) {
	if windows == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("host window requires a window port")
	}
	w := &HostWindow{windows: windows}
	if err := w.construct(); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().
		Uint64("window", uint64(w.handle)).
		Msg("context menu host window created")
	return w, nil
}

func (w *HostWindow) construct() error {
	hostGate.Lock()
	defer hostGate.Unlock()

	hostGate.constructing = w
	w.state = types.HostConstructing
	handle, err := w.windows.CreateHostWindow(claimConstructingWindow)
	hostGate.constructing = nil

	if err != nil {
		w.handle = 0
		w.state = types.HostUnconstructed
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create context menu host window").
			WithCause(err)
	}
	if handle == 0 || handle != w.handle {
		if handle != 0 {
			_ = w.windows.DestroyWindow(handle)
		}
		w.handle = 0
		w.state = types.HostUnconstructed
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("host window was not bound during creation")
	}
	return nil
}

// claimConstructingWindow is the WindowCreationHook handed to the native
// layer. It runs on the constructing goroutine while hostGate is held.
func claimConstructingWindow(window types.WindowHandle) ports.MessageHandler {
	w := hostGate.constructing
	if w == nil || w.state != types.HostConstructing {
		return nil
	}
	w.handle = window
	w.state = types.HostLive
	return w
}

func (w *HostWindow) Handle() types.WindowHandle {
	return w.handle
}

func (w *HostWindow) State() types.HostState {
	return w.state
}

func (w *HostWindow) Disposed() bool {
	return w.state != types.HostLive || w.handle == 0
}

func (w *HostWindow) OwnedByCurrentThread() bool {
	return w.windows.WindowThreadID(w.handle) == w.windows.CurrentThreadID()
}

func (w *HostWindow) Active() bool {
	return w.router.Active()
}

func (w *HostWindow) activate(caps *MenuCapabilities) {
	w.router.Activate(caps)
}

func (w *HostWindow) deactivate() {
	w.router.Deactivate()
}

// HandleMessage implements ports.MessageHandler.
func (w *HostWindow) HandleMessage(window types.WindowHandle, msg types.WindowMessage) uintptr {
	if result, handled := w.router.Route(msg); handled {
		return result
	}
	return w.windows.DefWindowProc(window, msg)
}

// Dispose destroys the native window. A window that is not live is left
// alone, so repeated calls are no-ops. Failures are logged, never returned.
func (w *HostWindow) Dispose() {
	if w.state != types.HostLive || w.handle == 0 {
		return
	}
	handle := w.handle
	w.handle = 0
	w.state = types.HostDisposed

	if err := w.windows.DestroyWindow(handle); err != nil {
		log.Error().
			Err(err).
			Uint64("window", uint64(handle)).
			Msg("destroying host window failed, posting WM_CLOSE")
		if err := w.windows.PostClose(handle); err != nil {
			log.Error().
				Err(err).
				Uint64("window", uint64(handle)).
				Msg("posting WM_CLOSE to host window failed")
		}
	}
}
