package testutil

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"testing"
	"time"
)

// Entry is one member of a fixture archive. Names use forward slashes.
type Entry struct {
	Name string
	Body string
	Mode os.FileMode
	Dir  bool

	// Link makes the entry a symlink to Link (tar only).
	Link string
}

var fixtureTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// TarGz builds a gzipped tarball from entries.
func TarGz(t *testing.T, entries ...Entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gz)
	for _, e := range entries {
		header := &tar.Header{Name: e.Name, Mode: int64(modeOr(e.Mode, 0o644)), ModTime: fixtureTime}
		switch {
		case e.Dir:
			header.Typeflag = tar.TypeDir
			header.Mode = int64(modeOr(e.Mode, 0o755))
		case e.Link != "":
			header.Typeflag = tar.TypeSymlink
			header.Linkname = e.Link
		default:
			header.Typeflag = tar.TypeReg
			header.Size = int64(len(e.Body))
		}
		if err := tw.WriteHeader(header); err != nil {
			t.Fatalf("write tar header %s: %v", e.Name, err)
		}
		if header.Typeflag == tar.TypeReg {
			if _, err := tw.Write([]byte(e.Body)); err != nil {
				t.Fatalf("write tar body %s: %v", e.Name, err)
			}
		}
	}
	if err := tw.Close(); err != nil {
		t.Fatalf("close tar: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close gzip: %v", err)
	}
	return buf.Bytes()
}

// Zip builds a zip archive from entries. Link is ignored.
func Zip(t *testing.T, entries ...Entry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		header := &zip.FileHeader{Name: e.Name, Method: zip.Deflate, Modified: fixtureTime}
		if e.Dir {
			header.SetMode(os.ModeDir | modeOr(e.Mode, 0o755))
		} else {
			header.SetMode(modeOr(e.Mode, 0o644))
		}
		w, err := zw.CreateHeader(header)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", e.Name, err)
		}
		if !e.Dir {
			if _, err := w.Write([]byte(e.Body)); err != nil {
				t.Fatalf("write zip entry %s: %v", e.Name, err)
			}
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// SHA256Hex returns the lowercase hex digest of data.
func SHA256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func modeOr(mode os.FileMode, fallback os.FileMode) os.FileMode {
	if mode == 0 {
		return fallback
	}
	return mode
}
