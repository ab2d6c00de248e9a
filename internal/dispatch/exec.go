package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"

	"github.com/conn-castle/sdkdl/internal/messages"
)

// execCommand is a seam for tests.
var execCommand = exec.CommandContext

// runBinary runs the target binary and waits for it. Interrupts are left to
// the child while it runs; this process only reports the child's exit code.
func runBinary(ctx context.Context, path string, args []string, env []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) (int, error) {
	cmd := execCommand(ctx, path, args...)
	cmd.Env = env
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer func() {
		signal.Stop(interrupts)
		close(interrupts)
	}()
	go func() {
		for range interrupts {
		}
	}()

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code <= 0 {
			code = 1
		}
		return code, nil
	}
	return 1, fmt.Errorf(messages.DispatchRunBinaryFmt, path, err)
}
