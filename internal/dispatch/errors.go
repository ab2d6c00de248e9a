package dispatch

import (
	"errors"
	"fmt"
)

// Failure classes. Match with errors.Is; the message text comes from the
// failing step.
var (
	ErrNotFound          = errors.New("no binary release available")
	ErrSizeMismatch      = errors.New("archive size mismatch")
	ErrChecksumMismatch  = errors.New("archive checksum mismatch")
	ErrUnsupportedFormat = errors.New("unsupported archive format")
	ErrNotInstalled      = errors.New("version not installed")
)

// Error is a classified failure with a human-readable message.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// Unwrap exposes Kind to errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
