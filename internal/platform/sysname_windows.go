//go:build windows

package platform

import "context"

func sysname(_ context.Context) (string, error) {
	return "Windows_NT", nil
}
