package platform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/conn-castle/sdkdl/internal/messages"
)

// archTable maps hardware identifiers (uname -m style) to release arch tokens.
var archTable = map[string]Arch{
	"i386":    Arch386,
	"i486":    Arch386,
	"i586":    Arch386,
	"i686":    Arch386,
	"x86_64":  ArchAMD64,
	"amd64":   ArchAMD64,
	"aarch64": ArchARM64,
	"arm64":   ArchARM64,
	"armv6l":  ArchARMv6l,
	"armv7l":  ArchARMv6l,
	"ppc64le": ArchPPC64LE,
}

// archPrefixes covers versioned identifiers such as armv8l or armv8.2-a.
var archPrefixes = []struct {
	prefix string
	arch   Arch
}{
	{prefix: "armv8", arch: ArchARM64},
}

// windowsPrefixes are lowercase kernel names reported by windows emulation
// layers (MSYS2, Git Bash, Cygwin) and native windows.
var windowsPrefixes = []string{"mingw", "msys", "cygwin", "windows"}

// normalizeArch maps a raw hardware identifier to an Arch.
// Unknown identifiers are an error since no sensible default exists.
func normalizeArch(machine string) (Arch, error) {
	raw := strings.ToLower(strings.TrimSpace(machine))
	if arch, ok := archTable[raw]; ok {
		return arch, nil
	}
	for _, p := range archPrefixes {
		if strings.HasPrefix(raw, p.prefix) {
			return p.arch, nil
		}
	}
	return "", fmt.Errorf(messages.PlatformUnsupportedArchFmt, ErrUnsupportedArch, machine, knownMachines())
}

// normalizeOS lowercases the kernel name, folding windows emulation layers
// into OSWindows.
func normalizeOS(sysname string) OS {
	raw := strings.ToLower(strings.TrimSpace(sysname))
	for _, prefix := range windowsPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return OSWindows
		}
	}
	return OS(raw)
}

func knownMachines() string {
	names := make([]string, 0, len(archTable)+len(archPrefixes))
	for name := range archTable {
		names = append(names, name)
	}
	for _, p := range archPrefixes {
		names = append(names, p.prefix+"*")
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
