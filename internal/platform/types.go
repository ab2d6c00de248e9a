// Package platform resolves the operating system and architecture tokens
// used to address SDK release archives.
//
// Both tokens can be overridden explicitly. Otherwise the OS comes from the
// kernel's reported name and the architecture from the machine's hardware
// identifier, mapped through a fixed table.
package platform

import (
	"context"
	"errors"

	"github.com/conn-castle/sdkdl/internal/messages"
)

// ErrUnsupportedArch is returned when the hardware identifier is not in the table.
var ErrUnsupportedArch = errors.New(messages.PlatformUnsupportedArch)

// OS is a lowercase operating system token. The set is open: unknown kernel
// names pass through lowercased.
type OS string

// Known operating systems.
const (
	OSWindows OS = "windows"
	OSLinux   OS = "linux"
	OSDarwin  OS = "darwin"
)

// Arch is an architecture token as used in release archive names.
type Arch string

// Supported architectures.
const (
	Arch386     Arch = "386"
	ArchAMD64   Arch = "amd64"
	ArchARM64   Arch = "arm64"
	ArchARMv6l  Arch = "armv6l"
	ArchPPC64LE Arch = "ppc64le"
)

// Platform is the resolved {OS, Arch} pair for one invocation.
type Platform struct {
	OS   OS
	Arch Arch
}

// String returns "os-arch".
func (p Platform) String() string {
	return string(p.OS) + "-" + string(p.Arch)
}

// IsWindows reports whether the platform is windows.
func (p Platform) IsWindows() bool {
	return p.OS == OSWindows
}

// Overrides holds explicit tokens; empty fields are detected.
type Overrides struct {
	OS   string
	Arch string
}

// Probe reports raw values from the running system.
type Probe interface {
	// Sysname returns the kernel's OS name, e.g. "Linux" or "CYGWIN_NT-10.0".
	Sysname(ctx context.Context) (string, error)
	// Machine returns the hardware identifier, e.g. "x86_64" or "aarch64".
	Machine(ctx context.Context) (string, error)
}
