// Package shared provides common utility functions used across multiple
// packages in the shellmenu codebase.
package shared

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// HRESULTFailed reports whether hr is a COM failure code (severity bit set).
func HRESULTFailed(hr uintptr) bool {
	return int32(uint32(hr)) < 0
}

// HRESULTError builds an internal error for a failed COM call, or returns
// nil when hr is a success code.
func HRESULTError(op string, hr uintptr, cause error) error {
	if !HRESULTFailed(hr) {
		return nil
	}
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("%s failed: hresult=0x%08X", op, uint32(hr)))
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return builder
}

// Win32Error wraps the last-error value of a failed user32/shell32 call.
func Win32Error(op string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(op + " failed")
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return builder
}

// TrimUTF16 cuts a fixed-size wide-character buffer at its first NUL.
func TrimUTF16(buf []uint16) []uint16 {
	for i, c := range buf {
		if c == 0 {
			return buf[:i]
		}
	}
	return buf
}
