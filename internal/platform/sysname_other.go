//go:build !unix && !windows

package platform

import (
	"context"
	"runtime"
)

func sysname(_ context.Context) (string, error) {
	return runtime.GOOS, nil
}
