package dispatch

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/conn-castle/sdkdl/internal/messages"
	"github.com/conn-castle/sdkdl/internal/platform"
)

// Archive extensions.
const (
	ExtZip   = ".zip"
	ExtTarGz = ".tar.gz"
)

// homeDir is a seam for tests.
var homeDir = homedir.Dir

// Descriptor addresses one release archive. Size is the server-advertised
// length once probed, or -1 when unknown.
type Descriptor struct {
	Version  string
	Platform platform.Platform
	URL      string
	Ext      string
	Size     int64
}

// Filename returns the URL's trailing path segment, used as the local
// archive name.
func (d Descriptor) Filename() string {
	return path.Base(d.URL)
}

// ChecksumURL returns the companion SHA-256 resource.
func (d Descriptor) ChecksumURL() string {
	return d.URL + ".sha256"
}

// Locate derives the archive descriptor for version on p.
// baseURL must not end with a slash.
func Locate(baseURL string, version string, p platform.Platform) Descriptor {
	ext := ExtTarGz
	if p.IsWindows() {
		ext = ExtZip
	}
	return Descriptor{
		Version:  version,
		Platform: p,
		URL:      fmt.Sprintf("%s/%s.%s-%s%s", baseURL, version, p.OS, p.Arch, ext),
		Ext:      ext,
		Size:     -1,
	}
}

// InstallRoot returns rootOverride when set, otherwise ~/sdk/<version>.
func InstallRoot(rootOverride string, version string) (string, error) {
	if err := validateVersion(version); err != nil {
		return "", err
	}
	if rootOverride != "" {
		return rootOverride, nil
	}
	home, err := homeDir()
	if err != nil {
		return "", fmt.Errorf(messages.DispatchResolveHomeDirFmt, err)
	}
	return filepath.Join(home, "sdk", version), nil
}

// validateVersion rejects versions that would escape the sdk directory or
// break the archive URL.
func validateVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return fmt.Errorf(messages.DispatchVersionRequired)
	}
	if strings.ContainsAny(version, `/\`) || version == "." || version == ".." {
		return fmt.Errorf(messages.DispatchInvalidVersionFmt, version)
	}
	return nil
}
