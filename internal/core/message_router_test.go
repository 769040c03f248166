package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"shellmenu/internal/ports"
	"shellmenu/internal/types"
)

type recordingMenu struct {
	calls []string
}

func (m *recordingMenu) QueryContextMenu(types.MenuHandle, uint32, uint32, uint32, types.QueryFlags) error {
	return nil
}
func (m *recordingMenu) CommandVerb(uint32, int) (string, error) { return "", nil }
func (m *recordingMenu) InvokeCommand(types.InvokeInfo) error    { return nil }
func (m *recordingMenu) Release()                                {}

type basicMenu struct {
	*recordingMenu
	err error
}

func (m *basicMenu) HandleMenuMsg(msg types.WindowMessage) error {
	m.calls = append(m.calls, "basic")
	return m.err
}

type extendedMenu struct {
	*basicMenu
	claims map[uint32]uintptr
}

func (m *extendedMenu) HandleMenuMsg2(msg types.WindowMessage) (uintptr, bool) {
	m.calls = append(m.calls, "extended")
	result, ok := m.claims[msg.Msg]
	return result, ok
}

func TestNewMenuCapabilitiesDetectsInterfaces(t *testing.T) {
	base := &recordingMenu{}
	basic := &basicMenu{recordingMenu: base}
	extended := &extendedMenu{basicMenu: basic}

	tests := []struct {
		name         string
		menu         ports.ContextMenuPort
		wantBasic    bool
		wantExtended bool
	}{
		{name: "base only", menu: base},
		{name: "owner draw", menu: basic, wantBasic: true},
		{name: "extended", menu: extended, wantBasic: true, wantExtended: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			caps := NewMenuCapabilities(tt.menu)
			require.Equal(t, tt.wantBasic, caps.Basic != nil)
			require.Equal(t, tt.wantExtended, caps.Extended != nil)
		})
	}
}

func TestMessageRouterInactiveClaimsNothing(t *testing.T) {
	var router MessageRouter
	_, handled := router.Route(types.WindowMessage{Msg: types.WMDrawItem})
	require.False(t, handled)
	require.False(t, router.Active())
}

func TestMessageRouterOrder(t *testing.T) {
	tests := []struct {
		name        string
		msg         uint32
		claims      map[uint32]uintptr
		basicErr    error
		wantHandled bool
		wantResult  uintptr
		wantCalls   []string
	}{
		{
			name:        "extended claims first",
			msg:         types.WMDrawItem,
			claims:      map[uint32]uintptr{types.WMDrawItem: 7},
			wantHandled: true,
			wantResult:  7,
			wantCalls:   []string{"extended"},
		},
		{
			name:        "draw item falls back to basic",
			msg:         types.WMDrawItem,
			wantHandled: true,
			wantResult:  1,
			wantCalls:   []string{"extended", "basic"},
		},
		{
			name:        "measure item falls back to basic",
			msg:         types.WMMeasureItem,
			wantHandled: true,
			wantResult:  1,
			wantCalls:   []string{"extended", "basic"},
		},
		{
			name:        "init menu popup returns zero",
			msg:         types.WMInitMenuPopup,
			wantHandled: true,
			wantResult:  0,
			wantCalls:   []string{"extended", "basic"},
		},
		{
			name:      "menu char is only offered to extended",
			msg:       types.WMMenuChar,
			wantCalls: []string{"extended"},
		},
		{
			name:      "basic failure is not handled",
			msg:       types.WMDrawItem,
			basicErr:  errors.New("E_FAIL"),
			wantCalls: []string{"extended", "basic"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &recordingMenu{}
			menu := &extendedMenu{
				basicMenu: &basicMenu{recordingMenu: base, err: tt.basicErr},
				claims:    tt.claims,
			}
			caps := NewMenuCapabilities(menu)
			var router MessageRouter
			router.Activate(&caps)

			result, handled := router.Route(types.WindowMessage{Msg: tt.msg})
			require.Equal(t, tt.wantHandled, handled)
			require.Equal(t, tt.wantResult, result)
			require.Equal(t, tt.wantCalls, base.calls)

			router.Deactivate()
			require.False(t, router.Active())
		})
	}
}
