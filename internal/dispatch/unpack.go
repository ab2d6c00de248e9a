package dispatch

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/conn-castle/sdkdl/internal/messages"
)

// Unpacker extracts a release archive into an install root, dropping the
// archive's top-level wrapper directory.
type Unpacker struct {
	// ZipWrapper is the top-level folder expected inside zip archives.
	ZipWrapper string
}

// Unpack clears stale entries from root and extracts archivePath into it.
// ext selects the format and must be ExtTarGz or ExtZip.
func (u Unpacker) Unpack(root string, archivePath string, ext string) error {
	if ext != ExtTarGz && ext != ExtZip {
		return newError(ErrUnsupportedFormat, messages.DispatchUnsupportedFormatFmt, ext, archivePath)
	}
	if err := removeStale(root, ext); err != nil {
		return err
	}
	if ext == ExtZip {
		return unzipWrapper(archivePath, root, u.ZipWrapper)
	}
	return untarStrip(archivePath, root)
}

// removeStale deletes every direct child of root whose name does not end in
// ext, so only the archive (and same-format siblings) survive.
func removeStale(root string, ext string) error {
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf(messages.DispatchReadRootFmt, root, err)
	}
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ext) {
			continue
		}
		target := filepath.Join(root, entry.Name())
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf(messages.DispatchRemoveStaleFmt, target, err)
		}
	}
	return nil
}

// untarStrip extracts a gzipped tarball into root, stripping exactly one
// leading path component from every entry.
func untarStrip(archivePath string, root string) error {
	file, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf(messages.DispatchOpenArchiveFmt, archivePath, err)
	}
	defer func() { _ = file.Close() }()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return fmt.Errorf(messages.DispatchReadGzipFmt, archivePath, err)
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	files := 0
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf(messages.DispatchReadTarHeaderFmt, err)
		}

		rel := stripFirstComponent(header.Name)
		if rel == "" {
			continue
		}
		target, err := safeJoin(root, rel)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := rejectSymlinkPath(root, target); err != nil {
				return err
			}
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf(messages.DispatchCreateDirFmt, target, err)
			}
		case tar.TypeReg:
			if err := rejectSymlinkPath(root, target); err != nil {
				return err
			}
			if err := writeEntry(target, tr, header.FileInfo().Mode().Perm()); err != nil {
				return err
			}
			if !header.ModTime.IsZero() {
				_ = os.Chtimes(target, header.ModTime, header.ModTime)
			}
			files++
		case tar.TypeSymlink:
			if err := checkLinkTarget(root, target, header.Linkname); err != nil {
				return err
			}
			if err := rejectSymlinkPath(root, filepath.Dir(target)); err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf(messages.DispatchCreateDirFmt, filepath.Dir(target), err)
			}
			_ = os.Remove(target)
			if err := os.Symlink(header.Linkname, target); err != nil {
				return fmt.Errorf(messages.DispatchCreateSymlinkFmt, target, err)
			}
		default:
			continue
		}
	}
	if files == 0 {
		return newError(ErrUnsupportedFormat, messages.DispatchEmptyTarFmt, archivePath)
	}
	return nil
}

// unzipWrapper extracts only entries under wrapper/ into root, then moves
// the wrapper's children up one level and removes the empty wrapper.
func unzipWrapper(archivePath string, root string, wrapper string) error {
	reader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf(messages.DispatchOpenArchiveFmt, archivePath, err)
	}
	defer func() { _ = reader.Close() }()

	prefix := wrapper + "/"
	files := 0
	for _, f := range reader.File {
		if !strings.HasPrefix(f.Name, prefix) {
			continue
		}
		target, err := safeJoin(root, f.Name)
		if err != nil {
			return err
		}
		if err := rejectSymlinkPath(root, target); err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf(messages.DispatchCreateDirFmt, target, err)
			}
			continue
		}
		if err := extractZipFile(f, target); err != nil {
			return err
		}
		files++
	}
	if files == 0 {
		return newError(ErrUnsupportedFormat, messages.DispatchMissingWrapperFmt, archivePath, wrapper)
	}

	wrapperDir := filepath.Join(root, wrapper)
	// Park the wrapper under a private name first so a child that shares
	// its name can move into place.
	parked := filepath.Join(root, ".unpack-"+wrapper)
	if err := os.Rename(wrapperDir, parked); err != nil {
		return fmt.Errorf(messages.DispatchMoveEntryFmt, wrapperDir, err)
	}
	entries, err := os.ReadDir(parked)
	if err != nil {
		return fmt.Errorf(messages.DispatchReadRootFmt, parked, err)
	}
	for _, entry := range entries {
		from := filepath.Join(parked, entry.Name())
		if err := os.Rename(from, filepath.Join(root, entry.Name())); err != nil {
			return fmt.Errorf(messages.DispatchMoveEntryFmt, from, err)
		}
	}
	if err := os.Remove(parked); err != nil {
		return fmt.Errorf(messages.DispatchRemoveWrapperFmt, parked, err)
	}
	return nil
}

func extractZipFile(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf(messages.DispatchOpenZipEntryFmt, f.Name, err)
	}
	defer func() { _ = rc.Close() }()
	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}
	if err := writeEntry(target, rc, mode); err != nil {
		return err
	}
	if !f.Modified.IsZero() {
		_ = os.Chtimes(target, f.Modified, f.Modified)
	}
	return nil
}

func writeEntry(target string, r io.Reader, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf(messages.DispatchCreateDirFmt, filepath.Dir(target), err)
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf(messages.DispatchWriteFileFmt, target, err)
	}
	if _, err := io.Copy(out, r); err != nil {
		_ = out.Close()
		return fmt.Errorf(messages.DispatchWriteFileFmt, target, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf(messages.DispatchWriteFileFmt, target, err)
	}
	return nil
}

// stripFirstComponent drops the leading directory from a slash-separated
// archive path. It returns "" for the top-level entry itself.
func stripFirstComponent(name string) string {
	name = strings.TrimPrefix(name, "./")
	i := strings.Index(name, "/")
	if i < 0 {
		return ""
	}
	return strings.Trim(name[i+1:], "/")
}

// safeJoin joins a slash-separated archive path onto root, rejecting paths
// that escape it.
func safeJoin(root string, name string) (string, error) {
	clean := filepath.Clean(root)
	target := filepath.Join(clean, filepath.FromSlash(name))
	if !strings.HasPrefix(target, clean+string(os.PathSeparator)) {
		return "", fmt.Errorf(messages.DispatchIllegalPathFmt, name)
	}
	return target, nil
}

// checkLinkTarget rejects a symlink at target whose link text is absolute or
// resolves outside root.
func checkLinkTarget(root string, target string, link string) error {
	if link == "" || filepath.IsAbs(link) || strings.HasPrefix(link, "/") {
		return fmt.Errorf(messages.DispatchIllegalLinkFmt, target, link)
	}
	clean := filepath.Clean(root)
	resolved := filepath.Join(filepath.Dir(target), filepath.FromSlash(link))
	if resolved != clean && !strings.HasPrefix(resolved, clean+string(os.PathSeparator)) {
		return fmt.Errorf(messages.DispatchIllegalLinkFmt, target, link)
	}
	return nil
}

// rejectSymlinkPath fails when any existing component of path below root,
// path included, is a symlink. Writes through such a component could land
// outside root.
func rejectSymlinkPath(root string, path string) error {
	clean := filepath.Clean(root)
	rel, err := filepath.Rel(clean, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return fmt.Errorf(messages.DispatchIllegalPathFmt, path)
	}
	if rel == "." {
		return nil
	}
	cur := clean
	for _, part := range strings.Split(rel, string(os.PathSeparator)) {
		cur = filepath.Join(cur, part)
		fi, err := os.Lstat(cur)
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		if err != nil {
			return fmt.Errorf(messages.DispatchInspectPathFmt, cur, err)
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			return fmt.Errorf(messages.DispatchSymlinkParentFmt, path, cur)
		}
	}
	return nil
}
