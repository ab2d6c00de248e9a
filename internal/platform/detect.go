package platform

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/sdkdl/internal/messages"
)

// Resolve returns the platform for this invocation. Explicit overrides are
// returned verbatim without validation; only the missing parts are probed.
func Resolve(ctx context.Context, overrides Overrides, probe Probe) (Platform, error) {
	var p Platform

	if v := strings.TrimSpace(overrides.OS); v != "" {
		p.OS = OS(v)
	} else {
		sysname, err := probe.Sysname(ctx)
		if err != nil {
			return Platform{}, fmt.Errorf(messages.PlatformDetectOSFmt, err)
		}
		p.OS = normalizeOS(sysname)
		log.Debugf("detected os %q from kernel name %q", p.OS, sysname)
	}

	if v := strings.TrimSpace(overrides.Arch); v != "" {
		p.Arch = Arch(v)
	} else {
		machine, err := probe.Machine(ctx)
		if err != nil {
			return Platform{}, fmt.Errorf(messages.PlatformDetectArchFmt, err)
		}
		arch, err := normalizeArch(machine)
		if err != nil {
			return Platform{}, err
		}
		p.Arch = arch
		log.Debugf("detected arch %q from machine %q", p.Arch, machine)
	}

	return p, nil
}
