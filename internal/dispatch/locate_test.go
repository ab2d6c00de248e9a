package dispatch

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/conn-castle/sdkdl/internal/platform"
)

type kernelStub struct {
	sysname string
	machine string
}

func (k kernelStub) Sysname(context.Context) (string, error) { return k.sysname, nil }

func (k kernelStub) Machine(context.Context) (string, error) { return k.machine, nil }

func TestLocate_CygwinResolvesToWindowsZip(t *testing.T) {
	p, err := platform.Resolve(context.Background(), platform.Overrides{}, kernelStub{sysname: "CYGWIN_NT-10.0", machine: "x86_64"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p != (platform.Platform{OS: platform.OSWindows, Arch: platform.ArchAMD64}) {
		t.Fatalf("unexpected platform %+v", p)
	}

	d := Locate("https://dl.example.com/go", "go1.22.3", p)
	if d.Ext != ExtZip {
		t.Fatalf("expected %q, got %q", ExtZip, d.Ext)
	}
	if d.URL != "https://dl.example.com/go/go1.22.3.windows-amd64.zip" {
		t.Fatalf("unexpected URL %q", d.URL)
	}
	if d.Filename() != "go1.22.3.windows-amd64.zip" {
		t.Fatalf("unexpected filename %q", d.Filename())
	}
}

func TestLocate(t *testing.T) {
	tests := []struct {
		name    string
		p       platform.Platform
		wantURL string
		wantExt string
	}{
		{
			name:    "linux tarball",
			p:       platform.Platform{OS: platform.OSLinux, Arch: platform.ArchAMD64},
			wantURL: "https://dl.example.com/go/go1.22.3.linux-amd64.tar.gz",
			wantExt: ExtTarGz,
		},
		{
			name:    "darwin arm64",
			p:       platform.Platform{OS: platform.OSDarwin, Arch: platform.ArchARM64},
			wantURL: "https://dl.example.com/go/go1.22.3.darwin-arm64.tar.gz",
			wantExt: ExtTarGz,
		},
		{
			name:    "windows zip",
			p:       platform.Platform{OS: platform.OSWindows, Arch: platform.ArchAMD64},
			wantURL: "https://dl.example.com/go/go1.22.3.windows-amd64.zip",
			wantExt: ExtZip,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := Locate("https://dl.example.com/go", "go1.22.3", tt.p)
			if desc.URL != tt.wantURL {
				t.Fatalf("URL = %q, want %q", desc.URL, tt.wantURL)
			}
			if desc.Ext != tt.wantExt {
				t.Fatalf("Ext = %q, want %q", desc.Ext, tt.wantExt)
			}
			if desc.Size != -1 {
				t.Fatalf("expected unknown size, got %d", desc.Size)
			}
			if desc.ChecksumURL() != tt.wantURL+".sha256" {
				t.Fatalf("unexpected checksum URL %q", desc.ChecksumURL())
			}
			if !strings.HasPrefix(desc.Filename(), "go1.22.3.") || strings.Contains(desc.Filename(), "/") {
				t.Fatalf("unexpected filename %q", desc.Filename())
			}
		})
	}
}

func TestInstallRoot(t *testing.T) {
	orig := homeDir
	t.Cleanup(func() { homeDir = orig })
	homeDir = func() (string, error) { return "/home/gopher", nil }

	got, err := InstallRoot("", "go1.21.0")
	if err != nil {
		t.Fatalf("InstallRoot: %v", err)
	}
	if want := filepath.Join("/home/gopher", "sdk", "go1.21.0"); got != want {
		t.Fatalf("InstallRoot = %q, want %q", got, want)
	}

	got, err = InstallRoot("/opt/go", "go1.21.0")
	if err != nil {
		t.Fatalf("InstallRoot override: %v", err)
	}
	if got != "/opt/go" {
		t.Fatalf("expected override root, got %q", got)
	}
}

func TestInstallRoot_HomeError(t *testing.T) {
	orig := homeDir
	t.Cleanup(func() { homeDir = orig })
	homeDir = func() (string, error) { return "", errors.New("no home") }

	_, err := InstallRoot("", "go1.21.0")
	if err == nil || !strings.Contains(err.Error(), "resolve home directory") {
		t.Fatalf("expected home dir error, got %v", err)
	}
}

func TestInstallRoot_RejectsBadVersions(t *testing.T) {
	for _, version := range []string{"", "  ", "..", ".", "go1/../../etc", `go1\x`} {
		if _, err := InstallRoot("/tmp/root", version); err == nil {
			t.Fatalf("expected error for version %q", version)
		}
	}
}
