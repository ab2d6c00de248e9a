package dispatch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/conn-castle/sdkdl/internal/messages"
)

// userAgent is sent with every request.
const userAgent = "sdkdl"

var (
	// httpClient has no timeout; a hung transfer blocks until the process is killed.
	httpClient   = &http.Client{}
	osStat       = os.Stat
	osRename     = os.Rename
	osCreateTemp = os.CreateTemp
)

// Downloader fetches release archives into an install root, skipping the
// transfer when a local copy already matches the advertised size.
type Downloader struct {
	client   *http.Client
	progress io.Writer
	bar      bool
}

// NewDownloader returns a Downloader that reports progress to progressOut.
// bar selects a terminal progress bar over plain progress lines.
func NewDownloader(progressOut io.Writer, bar bool) *Downloader {
	if progressOut == nil {
		progressOut = io.Discard
	}
	return &Downloader{client: httpClient, progress: progressOut, bar: bar}
}

// Probe issues a HEAD request for the archive and returns the advertised
// content length, or -1 when the server does not send one. A 404 is
// ErrNotFound; other non-200 statuses are logged and tolerated.
func (d *Downloader) Probe(ctx context.Context, desc Descriptor) (int64, error) {
	url := desc.URL
	req, err := newRequest(ctx, http.MethodHead, url)
	if err != nil {
		return -1, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return -1, fmt.Errorf(messages.DispatchProbeFailedFmt, url, err)
	}
	_ = resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return -1, notFound(desc)
	}
	if resp.StatusCode != http.StatusOK {
		log.Warnf(messages.DispatchProbeStatusWarnFmt, resp.Status, url)
	}
	return contentLength(resp.Header), nil
}

// contentLength parses the Content-Length header; header lookup is
// case-insensitive.
func contentLength(h http.Header) int64 {
	raw := strings.TrimSpace(h.Get("Content-Length"))
	if raw == "" {
		return -1
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// Ensure makes archivePath hold the archive described by desc. desc.Size
// must already be probed. It reports whether a transfer happened.
func (d *Downloader) Ensure(ctx context.Context, desc Descriptor, archivePath string) (bool, error) {
	if desc.Size >= 0 {
		if fi, err := osStat(archivePath); err == nil && fi.Mode().IsRegular() && fi.Size() == desc.Size {
			log.Debugf("archive %s already matches server size %d; skipping transfer", archivePath, desc.Size)
			return false, nil
		}
	}

	root := filepath.Dir(archivePath)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return false, fmt.Errorf(messages.DispatchCreateRootDirFmt, root, err)
	}
	_, _ = fmt.Fprintf(d.progress, messages.DispatchDownloadingFmt, desc.URL)
	if err := d.fetch(ctx, desc, archivePath); err != nil {
		return true, err
	}

	if desc.Size < 0 {
		return true, nil
	}
	fi, err := osStat(archivePath)
	if err != nil {
		return true, fmt.Errorf(messages.DispatchStatArchiveFmt, archivePath, err)
	}
	if fi.Size() != desc.Size {
		return true, newError(ErrSizeMismatch, messages.DispatchSizeMismatchFmt, archivePath, fi.Size(), desc.Size)
	}
	return true, nil
}

// fetch streams url into a temp sibling of dest and renames it into place.
func (d *Downloader) fetch(ctx context.Context, desc Descriptor, dest string) error {
	req, err := newRequest(ctx, http.MethodGet, desc.URL)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf(messages.DispatchDownloadFailedFmt, desc.URL, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode == http.StatusNotFound {
		return notFound(desc)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf(messages.DispatchDownloadStatusFmt, desc.URL, resp.Status)
	}

	tmp, err := osCreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf(messages.DispatchCreateTempFileFmt, err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	total := desc.Size
	if total < 0 {
		total = contentLength(resp.Header)
	}
	pw := newProgressWriter(d.progress, total, d.bar)
	if _, err := io.Copy(io.MultiWriter(tmp, pw), resp.Body); err != nil {
		_ = tmp.Close()
		return fmt.Errorf(messages.DispatchDownloadFailedFmt, desc.URL, err)
	}
	pw.finish()
	if err := tmp.Close(); err != nil {
		return fmt.Errorf(messages.DispatchCloseTempFileFmt, err)
	}
	if err := osRename(tmpName, dest); err != nil {
		return fmt.Errorf(messages.DispatchMoveArchiveFmt, err)
	}
	committed = true
	return nil
}

func notFound(desc Descriptor) error {
	return newError(ErrNotFound, messages.DispatchNoBinaryReleaseFmt, desc.Version, desc.Platform.OS, desc.Platform.Arch, desc.URL)
}

func newRequest(ctx context.Context, method string, url string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf(messages.DispatchCreateRequestFmt, url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	return req, nil
}
