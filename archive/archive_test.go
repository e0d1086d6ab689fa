// archive_test.go: Test cases for zip packing and extraction.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package archive_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilira/scytale/archive"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestPackUnpack_RoundTrip(t *testing.T) {
	src := t.TempDir()
	a := filepath.Join(src, "nested", "a.txt")
	b := filepath.Join(src, "b.bin")
	writeFile(t, a, strings.Repeat("alpha ", 200))
	writeFile(t, b, "\x00\x01\x02beta")

	zipPath := filepath.Join(t.TempDir(), "bundle.zip")
	require.NoError(t, archive.Pack(zipPath, []string{a, b}))

	dst := t.TempDir()
	require.NoError(t, archive.Unpack(zipPath, dst, false))

	assert.Equal(t, strings.Repeat("alpha ", 200), readFile(t, filepath.Join(dst, "a.txt")), "entries are stored by base name")
	assert.Equal(t, "\x00\x01\x02beta", readFile(t, filepath.Join(dst, "b.bin")))
}

func TestPack_MissingFile(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "bundle.zip")
	err := archive.Pack(zipPath, []string{filepath.Join(t.TempDir(), "missing")})
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.NoFileExists(t, zipPath, "failed archive is removed")
}

func TestWrite_EntriesAndTimestamps(t *testing.T) {
	var buf bytes.Buffer
	entries := []archive.Entry{
		{Name: "docs/readme.txt", Data: []byte("read me")},
		{Name: "run.sh", Data: []byte("#!/bin/sh"), Mode: 0o755},
	}
	require.NoError(t, archive.Write(&buf, entries))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	assert.Equal(t, "docs/readme.txt", zr.File[0].Name)
	assert.Equal(t, zip.Deflate, zr.File[0].Method)
	assert.WithinDuration(t, time.Now(), zr.File[0].Modified, time.Minute)
	assert.Equal(t, os.FileMode(0o755), zr.File[1].Mode().Perm())

	assert.ErrorIs(t, archive.Write(&bytes.Buffer{}, []archive.Entry{{Data: []byte("x")}}), archive.ErrEmptyName)
}

func TestUnpack_KeepsFullPaths(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, archive.Write(&buf, []archive.Entry{
		{Name: "a/b/c.txt", Data: []byte("deep")},
		{Name: "top.txt", Data: []byte("top")},
	}))
	zipPath := filepath.Join(t.TempDir(), "tree.zip")
	require.NoError(t, os.WriteFile(zipPath, buf.Bytes(), 0o600))

	dst := t.TempDir()
	require.NoError(t, archive.Unpack(zipPath, dst, false))
	assert.Equal(t, "deep", readFile(t, filepath.Join(dst, "a", "b", "c.txt")))
	assert.Equal(t, "top", readFile(t, filepath.Join(dst, "top.txt")))
}

func TestUnpack_Overwrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, archive.Write(&buf, []archive.Entry{{Name: "f.txt", Data: []byte("from archive")}}))
	zipPath := filepath.Join(t.TempDir(), "f.zip")
	require.NoError(t, os.WriteFile(zipPath, buf.Bytes(), 0o600))

	dst := t.TempDir()
	writeFile(t, filepath.Join(dst, "f.txt"), "local")

	err := archive.Unpack(zipPath, dst, false)
	assert.ErrorIs(t, err, archive.ErrExists)
	assert.Equal(t, "local", readFile(t, filepath.Join(dst, "f.txt")))

	require.NoError(t, archive.Unpack(zipPath, dst, true))
	assert.Equal(t, "from archive", readFile(t, filepath.Join(dst, "f.txt")))
}

func TestUnpack_RejectsEscapingEntries(t *testing.T) {
	for _, name := range []string{"../evil.txt", "a/../../evil.txt", "/abs/evil.txt", `..\evil.txt`} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			zw := zip.NewWriter(&buf)
			w, err := zw.Create(name)
			require.NoError(t, err)
			_, err = w.Write([]byte("pwned"))
			require.NoError(t, err)
			require.NoError(t, zw.Close())

			root := t.TempDir()
			zipPath := filepath.Join(root, "evil.zip")
			require.NoError(t, os.WriteFile(zipPath, buf.Bytes(), 0o600))

			dst := filepath.Join(root, "out")
			require.NoError(t, os.Mkdir(dst, 0o755))

			err = archive.Unpack(zipPath, dst, true)
			assert.ErrorIs(t, err, archive.ErrUnsafePath)
			assert.NoFileExists(t, filepath.Join(root, "evil.txt"))
		})
	}
}

func TestUnpack_NotAnArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.zip")
	writeFile(t, path, "this is not a zip file")
	assert.Error(t, archive.Unpack(path, t.TempDir(), false))
}
