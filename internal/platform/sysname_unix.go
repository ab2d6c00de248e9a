//go:build unix

package platform

import (
	"context"

	"golang.org/x/sys/unix"
)

// sysname returns uname -s.
func sysname(_ context.Context) (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uts.Sysname[:]), nil
}
