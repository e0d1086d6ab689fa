// hash.go: Streamed file digests.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package file

import (
	"crypto/md5" // #nosec G501 -- checksum only, not used for security
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"hash"
	"hash/crc32"
	"io"
	"os"

	"lukechampine.com/blake3"
)

// Hasher computes digests of a file's current content. Every digest is returned
// as standard base64.
type Hasher struct {
	path string
}

// Hashes returns a Hasher bound to the file's path at the time of the call.
func (f *File) Hashes() Hasher {
	return Hasher{path: f.path}
}

// MD5 returns the MD5 digest. Only suitable as a checksum.
func (h Hasher) MD5() (string, error) {
	return h.sum(md5.New()) // #nosec G401 -- checksum only
}

// SHA256 returns the SHA-256 digest.
func (h Hasher) SHA256() (string, error) {
	return h.sum(sha256.New())
}

// SHA512 returns the SHA-512 digest.
func (h Hasher) SHA512() (string, error) {
	return h.sum(sha512.New())
}

// CRC32 returns the big-endian IEEE CRC-32 checksum.
func (h Hasher) CRC32() (string, error) {
	return h.sum(crc32.NewIEEE())
}

// BLAKE3 returns the 256-bit BLAKE3 digest.
func (h Hasher) BLAKE3() (string, error) {
	return h.sum(blake3.New(32, nil))
}

func (h Hasher) sum(d hash.Hash) (string, error) {
	in, err := os.Open(h.path)
	if err != nil {
		return "", fmt.Errorf("opening %q: %w", h.path, err)
	}
	defer in.Close()

	if _, err := io.Copy(d, in); err != nil {
		return "", fmt.Errorf("hashing %q: %w", h.path, err)
	}
	return base64.StdEncoding.EncodeToString(d.Sum(nil)), nil
}

// Equal reports whether f and other have identical content. Sizes are compared
// first; equal sizes fall back to BLAKE3 digests.
func (f *File) Equal(other *File) (bool, error) {
	a, err := f.Info()
	if err != nil {
		return false, err
	}
	b, err := other.Info()
	if err != nil {
		return false, err
	}
	if a.Size() != b.Size() {
		return false, nil
	}

	da, err := f.Hashes().BLAKE3()
	if err != nil {
		return false, err
	}
	db, err := other.Hashes().BLAKE3()
	if err != nil {
		return false, err
	}
	return da == db, nil
}
