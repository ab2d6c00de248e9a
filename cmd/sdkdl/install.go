package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	"github.com/conn-castle/sdkdl/internal/dispatch"
	"github.com/conn-castle/sdkdl/internal/messages"
	"github.com/conn-castle/sdkdl/internal/terminal"
)

// install runs the install pipeline and, on a fresh install, the smoke test.
func install(ctx context.Context, inv invocation) error {
	bar := terminal.IsTerminal(inv.stderr)
	res, err := dispatch.PrefetchVersion(ctx, inv.cfg, inv.platform, inv.version, inv.stderr, bar)
	if err != nil {
		return err
	}
	if res.AlreadyInstalled {
		_, _ = fmt.Fprintf(inv.stderr, messages.DispatchAlreadyInstalledFmt, inv.version, res.Root)
		return nil
	}

	success := color.New(color.FgGreen)
	_, _ = success.Fprintf(inv.stderr, messages.DispatchInstallSuccessFmt, toolName, inv.version)
	return runDispatched(ctx, inv.dispatcher(), inv.cfg.SDK.SmokeArgs)
}
