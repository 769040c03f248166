//go:build windows

package adapters

import (
	"errors"
	"runtime"

	ole "github.com/go-ole/go-ole"

	"shellmenu/internal/shared"
)

// ThreadAdapter prepares the calling goroutine as a shell UI thread.
type ThreadAdapter struct{}

func NewThreadAdapter() *ThreadAdapter {
	return &ThreadAdapter{}
}

// Enter locks the goroutine to its OS thread and joins a single-threaded
// apartment. S_FALSE (already initialized) still needs a balancing
// CoUninitialize.
func (a *ThreadAdapter) Enter() (func(), error) {
	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != 1 {
			runtime.UnlockOSThread()
			return nil, shared.Win32Error("CoInitializeEx", err)
		}
	}
	return func() {
		ole.CoUninitialize()
		runtime.UnlockOSThread()
	}, nil
}
