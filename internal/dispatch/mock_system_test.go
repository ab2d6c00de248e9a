package dispatch

import (
	"context"
	"errors"
	"fmt"
)

// errNotMocked is returned when a testSystem method is called without a mock function set.
var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem provides a mock System for unit tests.
//
// Fallback behavior:
//   - RunBinary: Returns errNotMocked (fail-fast). Tests must never spawn a
//     real process by accident.
//   - Environ: Falls back to RealSystem so t.Setenv works without a mock.
type testSystem struct {
	RealSystem

	EnvironFunc   func() []string
	RunBinaryFunc func(ctx context.Context, path string, args []string, env []string) (int, error)
}

func (s *testSystem) Environ() []string {
	if s.EnvironFunc != nil {
		return s.EnvironFunc()
	}
	return s.RealSystem.Environ()
}

func (s *testSystem) RunBinary(ctx context.Context, path string, args []string, env []string) (int, error) {
	if s.RunBinaryFunc != nil {
		return s.RunBinaryFunc(ctx, path, args, env)
	}
	return 1, fmt.Errorf("%w: RunBinary", errNotMocked)
}

