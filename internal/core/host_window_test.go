package core

import (
	"errors"
	"sync"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shellmenu/internal/shellfake"
	"shellmenu/internal/types"
)

func TestHostWindowBindsDuringCreation(t *testing.T) {
	shell := shellfake.New()
	host, err := NewHostWindow(t.Context(), shell)
	require.NoError(t, err)
	t.Cleanup(host.Dispose)

	require.Equal(t, types.HostLive, host.State())
	require.NotZero(t, host.Handle())
	require.False(t, host.Disposed())
	require.Equal(t, 1, shell.LiveWindows())
	// WM_NCCREATE and WM_CREATE reached the instance and fell through.
	require.Equal(t, 2, shell.DefProcCalls)
	require.Nil(t, hostGate.constructing)
}

func TestHostWindowCreationFailures(t *testing.T) {
	tests := []struct {
		name      string
		configure func(*shellfake.Shell)
	}{
		{
			name:      "native creation fails",
			configure: func(s *shellfake.Shell) { s.FailCreate = errors.New("class not registered") },
		},
		{
			name:      "creation hook never ran",
			configure: func(s *shellfake.Shell) { s.SkipBinding = true },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shell := shellfake.New()
			tt.configure(shell)

			host, err := NewHostWindow(t.Context(), shell)
			require.Error(t, err)
			require.Nil(t, host)
			require.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
			require.Nil(t, hostGate.constructing)
		})
	}
}

func TestHostWindowRequiresPort(t *testing.T) {
	_, err := NewHostWindow(t.Context(), nil)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestClaimWithoutConstructionReturnsNil(t *testing.T) {
	require.Nil(t, claimConstructingWindow(types.WindowHandle(0x42)))
}

func TestHostWindowConstructionIsSerialized(t *testing.T) {
	const workers = 16
	hosts := make([]*HostWindow, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			hosts[i], errs[i] = NewHostWindow(t.Context(), shellfake.New())
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, types.HostLive, hosts[i].State())
		assert.NotZero(t, hosts[i].Handle())
		hosts[i].Dispose()
	}
}

func TestHostWindowDispose(t *testing.T) {
	shell := shellfake.New()
	host, err := NewHostWindow(t.Context(), shell)
	require.NoError(t, err)

	host.Dispose()
	require.Equal(t, types.HostDisposed, host.State())
	require.True(t, host.Disposed())
	require.Zero(t, host.Handle())
	require.Equal(t, 0, shell.LiveWindows())

	host.Dispose()
	require.Empty(t, shell.PostedClose)
}

func TestHostWindowDisposeNotLiveIsNoop(t *testing.T) {
	shell := shellfake.New()
	host := &HostWindow{windows: shell}

	host.Dispose()
	require.Equal(t, types.HostUnconstructed, host.State())
	require.Empty(t, shell.PostedClose)
}

func TestHostWindowDisposeFallsBackToClose(t *testing.T) {
	shell := shellfake.New()
	host, err := NewHostWindow(t.Context(), shell)
	require.NoError(t, err)
	handle := host.Handle()

	shell.FailDestroy = errors.New("access denied")
	host.Dispose()

	require.Equal(t, []types.WindowHandle{handle}, shell.PostedClose)
	require.Equal(t, types.HostDisposed, host.State())
}

func TestHostWindowDefaultRouting(t *testing.T) {
	shell := shellfake.New()
	host, err := NewHostWindow(t.Context(), shell)
	require.NoError(t, err)
	t.Cleanup(host.Dispose)

	before := shell.DefProcCalls
	shell.Send(host.Handle(), types.WindowMessage{Msg: types.WMDrawItem})
	require.Equal(t, before+1, shell.DefProcCalls)
}

func TestHostWindowThreadOwnership(t *testing.T) {
	shell := shellfake.New()
	host, err := NewHostWindow(t.Context(), shell)
	require.NoError(t, err)
	t.Cleanup(host.Dispose)

	require.True(t, host.OwnedByCurrentThread())
	shell.CallerThread = 2
	require.False(t, host.OwnedByCurrentThread())
}
