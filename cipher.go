// cipher.go: Block transposition engine and byte/string helpers built on it.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package scytale

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	goerrors "github.com/agilira/go-errors"
)

// PadByte is appended to a short final block before it is permuted.
const PadByte = byte(' ')

// Transform permutes source in blocks of len(table) bytes and returns the result.
//
// For every block the byte at position i is written to position table[i]. A final
// block shorter than len(table) is right-padded with PadByte first, so the output
// length is always a multiple of len(table). An empty source yields an empty result.
//
// Parameters:
//   - source: The stream to read. It is owned and closed by the caller.
//   - table: A permutation of [0, len(table)), usually KeySchedule.Forward or Inverse
//
// Returns:
//   - The permuted bytes
//   - An error wrapping ErrConfig for an invalid table, or ErrIO if source fails.
//     On error no partial output is returned.
//
// Example:
//
//	out, err := scytale.Transform(strings.NewReader("XYZ"), []int{2, 0, 1})
//	// out == []byte("YZX")
func Transform(source io.Reader, table []int) ([]byte, error) {
	if err := validateTable(table); err != nil {
		return nil, err
	}
	return transformAll(source, table)
}

// transformAll collects the permuted stream into a fresh slice. table must be valid.
func transformAll(source io.Reader, table []int) ([]byte, error) {
	buf := getOutputBuffer()
	defer putOutputBuffer(buf)

	if _, err := transformBlocks(buf, source, table); err != nil {
		return nil, err
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// TransformTo is the streaming form of Transform. Permuted blocks are written to dst
// as soon as they are complete. It returns the number of bytes written.
//
// Blocks already written before a failure are not retracted; the caller must
// discard dst on error.
func TransformTo(dst io.Writer, source io.Reader, table []int) (int64, error) {
	if err := validateTable(table); err != nil {
		return 0, err
	}
	return transformBlocks(dst, source, table)
}

// transformBlocks is the engine loop shared by every entry point. table must be valid.
func transformBlocks(dst io.Writer, source io.Reader, table []int) (int64, error) {
	n := len(table)

	inBuf := getBuffer(n)
	defer putBuffer(inBuf)
	outBuf := getBuffer(n)
	defer putBuffer(outBuf)

	in := (*inBuf)[:n]
	out := (*outBuf)[:n]

	var written int64
	for {
		read, err := io.ReadFull(source, in)
		if read == 0 && (err == io.EOF || err == nil) {
			return written, nil
		}

		last := false
		switch {
		case err == nil:
		case errors.Is(err, io.ErrUnexpectedEOF):
			padBlock(in, read)
			last = true
		default:
			return written, ioError(err, ErrCodeRead, "failed to read source block")
		}

		permuteBlock(out, in, table)

		w, err := dst.Write(out)
		written += int64(w)
		if err != nil {
			return written, ioError(err, ErrCodeWrite, "failed to write permuted block")
		}

		if last {
			return written, nil
		}
	}
}

// permuteBlock writes src[i] to dst[table[i]]. All three slices have the same length.
func permuteBlock(dst, src []byte, table []int) {
	for i, b := range src {
		dst[table[i]] = b
	}
}

func padBlock(block []byte, filled int) {
	for i := filled; i < len(block); i++ {
		block[i] = PadByte
	}
}

// Encrypt permutes r with the forward table.
func (ks *KeySchedule) Encrypt(r io.Reader) ([]byte, error) {
	return transformAll(r, ks.forward)
}

// Decrypt permutes r with the inverse table. The result keeps any padding that
// was added on encryption.
func (ks *KeySchedule) Decrypt(r io.Reader) ([]byte, error) {
	return transformAll(r, ks.inverse)
}

// EncryptTo streams the forward permutation of r into w.
func (ks *KeySchedule) EncryptTo(w io.Writer, r io.Reader) (int64, error) {
	return transformBlocks(w, r, ks.forward)
}

// DecryptTo streams the inverse permutation of r into w.
func (ks *KeySchedule) DecryptTo(w io.Writer, r io.Reader) (int64, error) {
	return transformBlocks(w, r, ks.inverse)
}

// EncryptBytes encrypts data under key.
//
// This is a pure (key, plaintext) -> ciphertext function. The output is padded with
// spaces to a multiple of the key length in characters.
//
// Example:
//
//	ciphertext, err := scytale.EncryptBytes([]byte("attack at dawn"), "zebra")
//	if err != nil {
//		log.Fatal(err)
//	}
//	plaintext, _ := scytale.DecryptBytes(ciphertext, "zebra")
//	fmt.Printf("%q\n", plaintext) // "attack at dawn " (padded to 15 bytes)
func EncryptBytes(data []byte, key string) ([]byte, error) {
	ks, err := NewKeySchedule(key)
	if err != nil {
		return nil, err
	}
	return ks.Encrypt(bytes.NewReader(data))
}

// DecryptBytes decrypts data under key. See EncryptBytes.
func DecryptBytes(data []byte, key string) ([]byte, error) {
	ks, err := NewKeySchedule(key)
	if err != nil {
		return nil, err
	}
	return ks.Decrypt(bytes.NewReader(data))
}

// EncryptString encrypts plaintext and returns the ciphertext as standard base64.
func EncryptString(plaintext, key string) (string, error) {
	ciphertext, err := EncryptBytes([]byte(plaintext), key)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// DecryptString decodes a base64 ciphertext produced by EncryptString and decrypts it.
// Returns an error wrapping ErrFormat if encoded is not valid base64.
func DecryptString(encoded, key string) (string, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeBase64Decode, "failed to decode base64 ciphertext")
		return "", fmt.Errorf("%w: %w", ErrFormat, richErr)
	}

	plaintext, err := DecryptBytes(ciphertext, key)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// TrimPadding cuts decrypted data back to originalLen bytes.
//
// The engine never records the unpadded length; callers that need exact recovery
// must keep it themselves. If originalLen is out of range, data is returned as is.
func TrimPadding(data []byte, originalLen int) []byte {
	if originalLen < 0 || originalLen > len(data) {
		return data
	}
	return data[:originalLen]
}
