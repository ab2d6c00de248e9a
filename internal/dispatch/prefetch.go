package dispatch

import (
	"context"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/sdkdl/internal/config"
	"github.com/conn-castle/sdkdl/internal/platform"
)

// NewInstaller assembles an Installer for version on p from cfg.
// progressOut receives download progress and status lines; bar selects the
// terminal progress bar.
func NewInstaller(cfg config.Config, p platform.Platform, version string, progressOut io.Writer, bar bool) (*Installer, error) {
	root, err := InstallRoot(cfg.Root, version)
	if err != nil {
		return nil, err
	}
	return &Installer{
		Root:       root,
		Descriptor: Locate(cfg.BaseURL, version, p),
		Downloader: NewDownloader(progressOut, bar),
		Verifier:   NewVerifier(),
		Unpacker:   Unpacker{ZipWrapper: cfg.SDK.ZipWrapper},
		Out:        progressOut,
		OnTransition: func(from State, to State) {
			log.WithFields(log.Fields{"version": version, "root": root}).Debugf("install %s -> %s", from, to)
		},
	}, nil
}

// PrefetchVersion ensures version is installed, downloading, verifying, and
// unpacking it when the sentinel is missing.
func PrefetchVersion(ctx context.Context, cfg config.Config, p platform.Platform, version string, progressOut io.Writer, bar bool) (Result, error) {
	in, err := NewInstaller(cfg, p, version, progressOut, bar)
	if err != nil {
		return Result{State: StateNotInstalled}, err
	}
	return in.Install(ctx)
}
