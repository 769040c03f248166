//go:build !windows

package adapters

import "shellmenu/internal/types"

func NewShellAdapters() (ShellAdapters, error) {
	return ShellAdapters{}, types.UnsupportedPlatformError()
}
