// archive.go: Zip packing and extraction.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

// Package archive packs files into zip archives and extracts them again.
//
// Entries are stored with deflate. Extraction keeps the full entry paths below the
// destination directory and refuses entries that would land outside it.
package archive

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agilira/go-timecache"
	"github.com/klauspost/compress/zip"
)

var (
	// ErrExists is returned by Unpack when a target file exists and overwrite is off.
	ErrExists = errors.New("archive: file already exists")

	// ErrUnsafePath is returned for entries whose path escapes the destination.
	ErrUnsafePath = errors.New("archive: entry path escapes destination")

	// ErrEmptyName is returned by Write for an entry without a name.
	ErrEmptyName = errors.New("archive: entry name is empty")
)

// defaultEntryPerm applies to entries that carry no permission bits.
const defaultEntryPerm os.FileMode = 0o644

// Entry is an in-memory file to be written into an archive.
type Entry struct {
	// Name is the slash-separated path inside the archive.
	Name string

	// Data is the file content.
	Data []byte

	// Mode holds the permission bits. If zero, 0644 is used.
	Mode os.FileMode
}

// Pack writes a zip at archivePath containing files, each stored under its base
// name. An existing archive is replaced.
func Pack(archivePath string, files []string) (err error) {
	out, err := os.Create(archivePath)
	if err != nil {
		return fmt.Errorf("creating archive %q: %w", archivePath, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing archive %q: %w", archivePath, cerr)
		}
		if err != nil {
			_ = os.Remove(archivePath)
		}
	}()

	zw := zip.NewWriter(out)
	for _, path := range files {
		if err := addFile(zw, path); err != nil {
			_ = zw.Close()
			return err
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive %q: %w", archivePath, err)
	}
	return nil
}

func addFile(zw *zip.Writer, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %q: %w", path, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat %q: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("packing %q: directories are not supported", path)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("building header for %q: %w", path, err)
	}
	header.Name = filepath.Base(path)
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("adding %q: %w", path, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("compressing %q: %w", path, err)
	}
	return nil
}

// Write streams a zip containing entries to w. Every entry is stamped with the
// same cached wall-clock time.
func Write(w io.Writer, entries []Entry) error {
	modified := timecache.CachedTime()

	zw := zip.NewWriter(w)
	for _, entry := range entries {
		if entry.Name == "" {
			_ = zw.Close()
			return ErrEmptyName
		}

		mode := entry.Mode.Perm()
		if mode == 0 {
			mode = defaultEntryPerm
		}

		header := &zip.FileHeader{
			Name:     entry.Name,
			Method:   zip.Deflate,
			Modified: modified,
		}
		header.SetMode(mode)

		fw, err := zw.CreateHeader(header)
		if err != nil {
			_ = zw.Close()
			return fmt.Errorf("adding %q: %w", entry.Name, err)
		}
		if _, err := fw.Write(entry.Data); err != nil {
			_ = zw.Close()
			return fmt.Errorf("compressing %q: %w", entry.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finishing archive: %w", err)
	}
	return nil
}

// Unpack extracts every entry of the archive at archivePath below dir, keeping the
// entry paths. Existing files are replaced only when overwrite is set.
func Unpack(archivePath, dir string, overwrite bool) error {
	// Entry names are checked one by one in target.
	zr, err := zip.OpenReader(archivePath)
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return fmt.Errorf("opening archive %q: %w", archivePath, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if err := extract(f, dir, overwrite); err != nil {
			return err
		}
	}
	return nil
}

// target resolves an entry name below dir. Names must be local, slash-separated
// paths: absolute paths, backslashes and any ".." that climbs out of dir are refused.
func target(dir, name string) (string, error) {
	if name == "" || strings.Contains(name, `\`) || !filepath.IsLocal(filepath.FromSlash(name)) {
		return "", fmt.Errorf("%w: %q", ErrUnsafePath, name)
	}
	return filepath.Join(dir, filepath.FromSlash(name)), nil
}

func extract(f *zip.File, dir string, overwrite bool) error {
	path, err := target(dir, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating directory %q: %w", path, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %q: %w", path, err)
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if overwrite {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = defaultEntryPerm
	}

	out, err := os.OpenFile(path, flags, mode)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("extracting %q: %w", f.Name, ErrExists)
		}
		return fmt.Errorf("creating %q: %w", path, err)
	}

	rc, err := f.Open()
	if err != nil {
		_ = out.Close()
		return fmt.Errorf("reading entry %q: %w", f.Name, err)
	}
	defer rc.Close()

	if _, err := io.Copy(out, rc); err != nil {
		_ = out.Close()
		return fmt.Errorf("extracting %q: %w", f.Name, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", path, err)
	}
	return nil
}
