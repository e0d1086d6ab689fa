// hash_test.go: Test cases for file digests and equality.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package file_test

import (
	"crypto/md5" // #nosec G501 -- test vector
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/blake3"

	"github.com/agilira/scytale/file"
)

func TestHashes(t *testing.T) {
	content := []byte("the quick brown fox")
	f, err := file.Create(filepath.Join(t.TempDir(), "fox"), content)
	require.NoError(t, err)
	h := f.Hashes()

	b64 := base64.StdEncoding.EncodeToString

	md5Sum := md5.Sum(content) // #nosec G401 -- test vector
	got, err := h.MD5()
	require.NoError(t, err)
	assert.Equal(t, b64(md5Sum[:]), got)

	sha256Sum := sha256.Sum256(content)
	got, err = h.SHA256()
	require.NoError(t, err)
	assert.Equal(t, b64(sha256Sum[:]), got)

	sha512Sum := sha512.Sum512(content)
	got, err = h.SHA512()
	require.NoError(t, err)
	assert.Equal(t, b64(sha512Sum[:]), got)

	crc := make([]byte, 4)
	binary.BigEndian.PutUint32(crc, crc32.ChecksumIEEE(content))
	got, err = h.CRC32()
	require.NoError(t, err)
	assert.Equal(t, b64(crc), got)

	blakeSum := blake3.Sum256(content)
	got, err = h.BLAKE3()
	require.NoError(t, err)
	assert.Equal(t, b64(blakeSum[:]), got)
}

func TestHashes_MissingFile(t *testing.T) {
	_, err := file.Load(filepath.Join(t.TempDir(), "none")).Hashes().SHA256()
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	dir := t.TempDir()
	a, err := file.CreateText(filepath.Join(dir, "a"), "same content")
	require.NoError(t, err)
	b, err := file.CreateText(filepath.Join(dir, "b"), "same content")
	require.NoError(t, err)
	c, err := file.CreateText(filepath.Join(dir, "c"), "diff content")
	require.NoError(t, err)
	d, err := file.CreateText(filepath.Join(dir, "d"), "shorter")
	require.NoError(t, err)

	eq, err := a.Equal(b)
	require.NoError(t, err)
	assert.True(t, eq)

	eq, err = a.Equal(c)
	require.NoError(t, err)
	assert.False(t, eq)

	eq, err = a.Equal(d)
	require.NoError(t, err)
	assert.False(t, eq)

	_, err = a.Equal(file.Load(filepath.Join(dir, "missing")))
	assert.Error(t, err)
}
