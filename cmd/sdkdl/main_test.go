package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/sdkdl/internal/config"
	"github.com/conn-castle/sdkdl/internal/dispatch"
	"github.com/conn-castle/sdkdl/internal/platform"
	"github.com/conn-castle/sdkdl/internal/testutil"
)

const (
	testVersion     = "go1.22.0"
	testArchivePath = "/go1.22.0.linux-amd64.tar.gz"
)

type mapEnv map[string]string

func (m mapEnv) Getenv(key string) string { return m[key] }

type fakeProbe struct {
	machine string
}

func (fakeProbe) Sysname(context.Context) (string, error)   { return "Linux", nil }
func (p fakeProbe) Machine(context.Context) (string, error) { return p.machine, nil }

const fakeGoScript = `#!/bin/sh
echo "GOROOT=$GOROOT args=$*"
if [ "$1" = "fail" ]; then exit 9; fi
`

type cliFixture struct {
	srv     *testutil.ReleaseServer
	root    string
	archive []byte
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs are unix-only")
	}
	archive := testutil.TarGz(t,
		testutil.Entry{Name: "go/", Dir: true},
		testutil.Entry{Name: "go/bin/go", Body: fakeGoScript, Mode: 0o755},
		testutil.Entry{Name: "go/VERSION", Body: testVersion},
	)
	srv := testutil.NewReleaseServer(t, map[string][]byte{
		testArchivePath:             archive,
		testArchivePath + ".sha256": []byte(testutil.SHA256Hex(archive) + "\n"),
	})
	f := &cliFixture{srv: srv, root: filepath.Join(t.TempDir(), "sdk", testVersion), archive: archive}
	withEnv(t, mapEnv{
		config.EnvConfigPath: emptyConfig(t),
		config.EnvOS:         "linux",
		config.EnvArch:       "amd64",
		config.EnvRoot:       f.root,
		config.EnvBaseURL:    srv.URL,
	})
	return f
}

func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func withEnv(t *testing.T, env mapEnv) {
	t.Helper()
	orig := configEnv
	configEnv = env
	out, level := log.StandardLogger().Out, log.GetLevel()
	t.Cleanup(func() {
		configEnv = orig
		log.SetOutput(out)
		log.SetLevel(level)
	})
}

func runCLI(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := 0
	runMain(append([]string{toolName}, args...), &stdout, &stderr, func(c int) { code = c })
	return stdout.String(), stderr.String(), code
}

func TestRunMain_NoArgsIsUsageError(t *testing.T) {
	_, stderr, code := runCLI(t)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "usage: sdkdl <version>")
}

func TestRunMain_Help(t *testing.T) {
	stdout, _, code := runCLI(t, "--help")
	require.Equal(t, 0, code)
	require.Contains(t, stdout, "sdkdl <version> download")
}

func TestRunMain_DownloadInstallsAndRunsSmokeTest(t *testing.T) {
	f := newCLIFixture(t)

	stdout, stderr, code := runCLI(t, testVersion, "download")
	require.Equal(t, 0, code, stderr)
	require.Contains(t, stderr, "Downloading "+f.srv.URL+testArchivePath)
	require.Contains(t, stderr, "Success. You may now run 'sdkdl go1.22.0'")
	require.Contains(t, stdout, "GOROOT="+f.root+" args=version")

	installed, err := dispatch.IsInstalled(f.root)
	require.NoError(t, err)
	require.True(t, installed)
}

func TestRunMain_DownloadTwiceSkipsNetwork(t *testing.T) {
	f := newCLIFixture(t)
	_, stderr, code := runCLI(t, testVersion, "download")
	require.Equal(t, 0, code, stderr)
	hits := f.srv.TotalHits()

	stdout, stderr, code := runCLI(t, testVersion, "download")
	require.Equal(t, 0, code)
	require.Contains(t, stderr, "go1.22.0: already downloaded in "+f.root)
	require.Empty(t, stdout, "smoke test only runs after a fresh install")
	require.Equal(t, hits, f.srv.TotalHits())
}

func TestRunMain_DispatchForwardsArgsAndExitCode(t *testing.T) {
	f := newCLIFixture(t)
	_, stderr, code := runCLI(t, testVersion, "download")
	require.Equal(t, 0, code, stderr)

	stdout, stderr, code := runCLI(t, testVersion, "env", "-json", "GOOS")
	require.Equal(t, 0, code, stderr)
	require.Equal(t, "GOROOT="+f.root+" args=env -json GOOS\n", stdout)

	stdout, stderr, code = runCLI(t, testVersion, "fail", "now")
	require.Equal(t, 9, code)
	require.Empty(t, stderr)
	require.Contains(t, stdout, "args=fail now")
}

func TestRunMain_DownloadWithExtraArgsDispatches(t *testing.T) {
	newCLIFixture(t)

	_, stderr, code := runCLI(t, testVersion, "download", "extra")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "not downloaded")
}

func TestRunMain_DispatchWithoutInstall(t *testing.T) {
	f := newCLIFixture(t)

	stdout, stderr, code := runCLI(t, testVersion, "version")
	require.Equal(t, 1, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "go1.22.0: not downloaded. Run 'sdkdl go1.22.0 download' to install to "+f.root)
	require.Zero(t, f.srv.TotalHits())
}

func TestRunMain_ChecksumMismatch(t *testing.T) {
	f := newCLIFixture(t)
	f.srv.SetFile(testArchivePath+".sha256", []byte(testutil.SHA256Hex([]byte("tampered"))))

	_, stderr, code := runCLI(t, testVersion, "download")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "corrupt?")
	_, err := os.Stat(dispatch.SentinelPath(f.root))
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRunMain_NoRelease(t *testing.T) {
	f := newCLIFixture(t)
	f.srv.SetStatus(testArchivePath, 404)

	_, stderr, code := runCLI(t, testVersion, "download")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "no binary release of go1.22.0 for linux/amd64")
}

func TestRunMain_UnsupportedArch(t *testing.T) {
	withEnv(t, mapEnv{config.EnvConfigPath: emptyConfig(t), config.EnvRoot: t.TempDir()})
	orig := newProbe
	newProbe = func() platform.Probe { return fakeProbe{machine: "sparc64"} }
	t.Cleanup(func() { newProbe = orig })

	_, stderr, code := runCLI(t, testVersion, "download")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "unsupported architecture")
	require.Contains(t, stderr, "sparc64")
}

func TestRunMain_InvalidConfig(t *testing.T) {
	withEnv(t, mapEnv{
		config.EnvConfigPath: emptyConfig(t),
		config.EnvLogLevel:   "chatty",
	})

	_, stderr, code := runCLI(t, testVersion)
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "chatty")
}

func TestRunMain_InvalidVersion(t *testing.T) {
	withEnv(t, mapEnv{
		config.EnvConfigPath: emptyConfig(t),
		config.EnvOS:         "linux",
		config.EnvArch:       "amd64",
	})

	_, stderr, code := runCLI(t, "../escape", "download")
	require.Equal(t, 1, code)
	require.Contains(t, stderr, "invalid version")
}

func TestRunMain_SilentExitCodeFloor(t *testing.T) {
	orig := executeFunc
	t.Cleanup(func() { executeFunc = orig })
	executeFunc = func([]string, io.Writer, io.Writer) error { return &SilentExitError{Code: 0} }

	_, stderr, code := runCLI(t, testVersion)
	require.Equal(t, 1, code)
	require.Empty(t, stderr)
}
