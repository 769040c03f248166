package types

import (
	"errors"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

const (
	msgObjectDisposed         = "context menu host window is disposed"
	msgInvalidCallingThread   = "context menu used from a thread that does not own its host window"
	msgContextMenuUnavailable = "context menu unavailable"
	msgUnsupportedPlatform    = "shell context menus require windows"
)

func ObjectDisposedError() error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msgObjectDisposed)
}

func InvalidCallingThreadError() error {
	return errbuilder.New().
		WithCode(errbuilder.CodePermissionDenied).
		WithMsg(msgInvalidCallingThread)
}

// ContextMenuUnavailableError reports a namespace resolution, binding or
// provider creation failure.
func ContextMenuUnavailableError(detail string, cause error) error {
	builder := errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msgContextMenuUnavailable + ": " + detail)
	if cause != nil {
		builder = builder.WithCause(cause)
	}
	return builder
}

func UnsupportedPlatformError() error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(msgUnsupportedPlatform)
}

func IsObjectDisposed(err error) bool {
	return errbuilder.CodeOf(err) == errbuilder.CodeFailedPrecondition &&
		ErrorMessage(err) == msgObjectDisposed
}

func IsInvalidCallingThread(err error) bool {
	return errbuilder.CodeOf(err) == errbuilder.CodePermissionDenied &&
		ErrorMessage(err) == msgInvalidCallingThread
}

func IsContextMenuUnavailable(err error) bool {
	return errbuilder.CodeOf(err) == errbuilder.CodeNotFound &&
		strings.HasPrefix(ErrorMessage(err), msgContextMenuUnavailable)
}

func IsUnsupportedPlatform(err error) bool {
	return errbuilder.CodeOf(err) == errbuilder.CodeFailedPrecondition &&
		ErrorMessage(err) == msgUnsupportedPlatform
}

// ErrorMessage returns the builder message of err, or err.Error() for
// errors that were not produced by errbuilder.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
