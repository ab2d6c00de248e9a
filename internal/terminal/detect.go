// Package terminal provides terminal detection utilities.
package terminal

import (
	"io"

	"golang.org/x/term"
)

// fdWriter is satisfied by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// isTerminal is a seam for tests.
var isTerminal = term.IsTerminal

// IsTerminal reports whether w is backed by an interactive terminal.
// Writers without a file descriptor, such as buffers, never are.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return isTerminal(int(f.Fd()))
}
