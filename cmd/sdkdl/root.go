package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/conn-castle/sdkdl/internal/config"
	"github.com/conn-castle/sdkdl/internal/dispatch"
	"github.com/conn-castle/sdkdl/internal/logging"
	"github.com/conn-castle/sdkdl/internal/messages"
	"github.com/conn-castle/sdkdl/internal/platform"
)

const toolName = "sdkdl"

var (
	configEnv config.Env = config.OSEnv{}
	newProbe             = platform.NewProbe
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:                messages.CLIUse,
		Short:              messages.CLIShort,
		Long:               messages.CLILong,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
				return cmd.Help()
			}
			return run(cmd.Context(), args, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

// invocation is the resolved state shared by install and dispatch.
type invocation struct {
	cfg      config.Config
	version  string
	platform platform.Platform
	root     string
	stdout   io.Writer
	stderr   io.Writer
	stdin    io.Reader
}

func (inv invocation) dispatcher() dispatch.Dispatcher {
	return dispatch.Dispatcher{
		Sys:      dispatch.RealSystem{Stdin: inv.stdin, Stdout: inv.stdout, ErrOut: inv.stderr},
		Root:     inv.root,
		Version:  inv.version,
		Platform: inv.platform,
		SDK:      inv.cfg.SDK,
		Tool:     toolName,
	}
}

// run handles `<version> download` and `<version> [args...]`.
func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf(messages.CLIUsageErrFmt, messages.CLIUse)
	}

	cfg, err := config.Load(configEnv)
	if err != nil {
		return err
	}
	if err := logging.InitLog(cfg.LogLevel, cfg.LogFile, stderr); err != nil {
		return fmt.Errorf(messages.CLILogInitFmt, err)
	}

	p, err := platform.Resolve(ctx, platform.Overrides{OS: cfg.OS, Arch: cfg.Arch}, newProbe())
	if err != nil {
		return err
	}
	version, rest := args[0], args[1:]
	root, err := dispatch.InstallRoot(cfg.Root, version)
	if err != nil {
		return err
	}

	inv := invocation{cfg: cfg, version: version, platform: p, root: root, stdin: stdin, stdout: stdout, stderr: stderr}
	if len(rest) == 1 && rest[0] == messages.CLIDownloadCommand {
		return install(ctx, inv)
	}
	return runDispatched(ctx, inv.dispatcher(), rest)
}

// runDispatched maps a child's non-zero exit code to SilentExitError.
func runDispatched(ctx context.Context, d dispatch.Dispatcher, args []string) error {
	code, err := d.Run(ctx, args)
	if err != nil {
		return err
	}
	if code != 0 {
		return &SilentExitError{Code: code}
	}
	return nil
}
