package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/conn-castle/sdkdl/internal/messages"
)

// SentinelName marks an install root as fully downloaded, verified, and
// unpacked. Its absence means "not installed" whatever else the root holds.
const SentinelName = ".unpacked-success"

// State is a step of the install pipeline.
type State int

// Install states, in order. Only StateInstalled is terminal.
const (
	StateNotInstalled State = iota
	StateDownloading
	StateSizeVerified
	StateChecksumVerified
	StateUnpacked
	StateInstalled
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateNotInstalled:
		return "NotInstalled"
	case StateDownloading:
		return "Downloading"
	case StateSizeVerified:
		return "SizeVerified"
	case StateChecksumVerified:
		return "ChecksumVerified"
	case StateUnpacked:
		return "Unpacked"
	case StateInstalled:
		return "Installed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result describes how far Install got.
type Result struct {
	// State is the last state reached; StateInstalled on success.
	State State
	Root  string

	// Archive is the local archive path.
	Archive string

	// AlreadyInstalled is set when the sentinel short-circuited the run.
	AlreadyInstalled bool

	// Downloaded reports whether an archive transfer happened.
	Downloaded bool
}

// Installer drives Downloader, Verifier, and Unpacker for one version and
// writes the sentinel only after all of them succeed.
type Installer struct {
	Root       string
	Descriptor Descriptor
	Downloader *Downloader
	Verifier   *Verifier
	Unpacker   Unpacker

	// Out receives status lines; nil discards them.
	Out io.Writer

	// OnTransition, when set, observes every state change.
	OnTransition func(from State, to State)
}

// SentinelPath returns the marker path inside root.
func SentinelPath(root string) string {
	return filepath.Join(root, SentinelName)
}

// IsInstalled reports whether root carries the sentinel.
func IsInstalled(root string) (bool, error) {
	path := SentinelPath(root)
	if _, err := osStat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf(messages.DispatchCheckSentinelFmt, path, err)
	}
	return true, nil
}

// Install runs the pipeline. An existing sentinel returns immediately without
// touching the network. On failure the returned Result.State is the last state
// reached and the error is the failing step's, unchanged.
func (in *Installer) Install(ctx context.Context) (Result, error) {
	archive := filepath.Join(in.Root, in.Descriptor.Filename())
	res := Result{State: StateNotInstalled, Root: in.Root, Archive: archive}

	installed, err := IsInstalled(in.Root)
	if err != nil {
		return res, err
	}
	if installed {
		res.State = StateInstalled
		res.AlreadyInstalled = true
		return res, nil
	}

	desc := in.Descriptor
	steps := []struct {
		to  State
		run func(context.Context) error
	}{
		{StateDownloading, func(ctx context.Context) error {
			size, err := in.Downloader.Probe(ctx, desc)
			desc.Size = size
			return err
		}},
		{StateSizeVerified, func(ctx context.Context) error {
			downloaded, err := in.Downloader.Ensure(ctx, desc, archive)
			res.Downloaded = downloaded
			return err
		}},
		{StateChecksumVerified, func(ctx context.Context) error {
			return in.Verifier.Verify(ctx, desc, archive)
		}},
		{StateUnpacked, func(context.Context) error {
			if in.Out != nil {
				_, _ = fmt.Fprintf(in.Out, messages.DispatchUnpackingFmt, archive)
			}
			return in.Unpacker.Unpack(in.Root, archive, desc.Ext)
		}},
		{StateInstalled, func(context.Context) error {
			return writeSentinel(in.Root)
		}},
	}

	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return res, err
		}
		in.advance(&res, step.to)
	}
	return res, nil
}

func (in *Installer) advance(res *Result, to State) {
	from := res.State
	res.State = to
	if in.OnTransition != nil {
		in.OnTransition(from, to)
	}
}

func writeSentinel(root string) error {
	path := SentinelPath(root)
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		return fmt.Errorf(messages.DispatchWriteSentinelFmt, path, err)
	}
	return nil
}
