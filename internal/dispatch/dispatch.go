package dispatch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/sdkdl/internal/config"
	"github.com/conn-castle/sdkdl/internal/messages"
	"github.com/conn-castle/sdkdl/internal/platform"
)

// Dispatcher forwards an invocation to the binary of an installed version.
type Dispatcher struct {
	Sys      System
	Root     string
	Version  string
	Platform platform.Platform
	SDK      config.SDKConfig

	// Tool is this program's name, used in the not-installed hint.
	Tool string
}

// BinaryPath returns root/bin/<binary>, with .exe on Windows.
func (d Dispatcher) BinaryPath() string {
	name := d.SDK.Binary
	if d.Platform.IsWindows() && !strings.HasSuffix(name, ".exe") {
		name += ".exe"
	}
	return filepath.Join(d.Root, "bin", name)
}

// Run executes the installed binary with args and returns its exit code.
// The root must carry the install sentinel; otherwise nothing is executed and
// an ErrNotInstalled error is returned.
func (d Dispatcher) Run(ctx context.Context, args []string) (int, error) {
	if d.Sys == nil {
		return 1, fmt.Errorf(messages.DispatchSystemRequired)
	}
	installed, err := IsInstalled(d.Root)
	if err != nil {
		return 1, err
	}
	if !installed {
		return 1, newError(ErrNotInstalled, messages.DispatchNotInstalledFmt, d.Version, d.Tool, d.Version, d.Root)
	}

	bin := d.BinaryPath()
	env := withRootEnv(d.Sys.Environ(), d.SDK.RootEnv, d.Root)
	log.Debugf("dispatching %s %v with %s=%s", bin, args, d.SDK.RootEnv, d.Root)
	return d.Sys.RunBinary(ctx, bin, args, env)
}

// withRootEnv returns env with any existing key entries replaced by key=value.
func withRootEnv(env []string, key string, value string) []string {
	prefix := key + "="
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if strings.HasPrefix(kv, prefix) {
			continue
		}
		out = append(out, kv)
	}
	return append(out, prefix+value)
}
