package core

import (
	"shellmenu/internal/ports"
	"shellmenu/internal/types"
)

// MenuCapabilities is a provider with its optional message capabilities
// detected once.
type MenuCapabilities struct {
	Base     ports.ContextMenuPort
	Basic    ports.MenuMessageHandler
	Extended ports.MenuMessageHandler2
}

func NewMenuCapabilities(menu ports.ContextMenuPort) MenuCapabilities {
	caps := MenuCapabilities{Base: menu}
	if handler, ok := menu.(ports.MenuMessageHandler); ok {
		caps.Basic = handler
	}
	if handler, ok := menu.(ports.MenuMessageHandler2); ok {
		caps.Extended = handler
	}
	return caps
}

// MessageRouter offers host window messages to the active provider.
type MessageRouter struct {
	active *MenuCapabilities
}

func (r *MessageRouter) Activate(caps *MenuCapabilities) {
	r.active = caps
}

func (r *MessageRouter) Deactivate() {
	r.active = nil
}

func (r *MessageRouter) Active() bool {
	return r.active != nil
}

// Route returns the message result and true when the active provider
// claimed msg. The extended handler sees every message first.
func (r *MessageRouter) Route(msg types.WindowMessage) (uintptr, bool) {
	caps := r.active
	if caps == nil {
		return 0, false
	}
	if caps.Extended != nil {
		if result, handled := caps.Extended.HandleMenuMsg2(msg); handled {
			return result, true
		}
	}
	if caps.Basic == nil {
		return 0, false
	}
	switch msg.Msg {
	case types.WMInitMenuPopup:
		if caps.Basic.HandleMenuMsg(msg) == nil {
			return 0, true
		}
	case types.WMMeasureItem, types.WMDrawItem:
		if caps.Basic.HandleMenuMsg(msg) == nil {
			return 1, true
		}
	}
	return 0, false
}
