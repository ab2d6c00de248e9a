package dispatch

import (
	"context"
	"io"
	"os"
)

// System abstracts the process operations needed to dispatch to an installed
// binary, so tests can observe them without spawning anything.
type System interface {
	Environ() []string
	RunBinary(ctx context.Context, path string, args []string, env []string) (int, error)
}

// RealSystem implements System using the OS. Nil streams fall back to the
// process's own.
type RealSystem struct {
	Stdin  io.Reader
	Stdout io.Writer
	ErrOut io.Writer
}

// Environ returns a copy of strings representing the environment.
func (RealSystem) Environ() []string {
	return os.Environ()
}

// RunBinary runs path to completion with the given streams and returns its
// exit code.
func (s RealSystem) RunBinary(ctx context.Context, path string, args []string, env []string) (int, error) {
	return runBinary(ctx, path, args, env, s.stdin(), s.stdout(), s.stderr())
}

func (s RealSystem) stderr() io.Writer {
	if s.ErrOut != nil {
		return s.ErrOut
	}
	return os.Stderr
}

func (s RealSystem) stdin() io.Reader {
	if s.Stdin != nil {
		return s.Stdin
	}
	return os.Stdin
}

func (s RealSystem) stdout() io.Writer {
	if s.Stdout != nil {
		return s.Stdout
	}
	return os.Stdout
}
