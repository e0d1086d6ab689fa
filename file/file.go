// file.go: File handle with content, path and compression helpers.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

// Package file wraps a path with helpers to read, rewrite, hash, encrypt and
// compress the file behind it.
//
// A File holds only its path. Every call goes to disk, so two File values for the
// same path always see the same content. Content writes are atomic: the new
// content is staged in a temporary file and renamed over the target.
//
// Encryption and compression go through the scytale core with plain byte streams:
//
//	f := file.Load("notes.txt")
//	if err := f.EncryptInPlace("secret"); err != nil {
//		log.Fatal(err)
//	}
package file

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/agilira/scytale"
)

// ErrNotObject is returned by JSON when the content is valid JSON but not an object.
var ErrNotObject = errors.New("file: content is not a JSON object")

// File is a handle on a path.
type File struct {
	path string
}

// Load returns a handle for an existing or future file. It does not touch the disk.
func Load(path string) *File {
	return &File{path: path}
}

// Create writes content to path, replacing any existing file, and returns its handle.
func Create(path string, content []byte) (*File, error) {
	f := Load(path)
	if err := f.SetBytes(content); err != nil {
		return nil, err
	}
	return f, nil
}

// CreateText is Create for UTF-8 text.
func CreateText(path, content string) (*File, error) {
	return Create(path, []byte(content))
}

// Path returns the current path of the file.
func (f *File) Path() string {
	return f.path
}

// Info returns the file's metadata.
func (f *File) Info() (os.FileInfo, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", f.path, err)
	}
	return info, nil
}

// Delete removes the file.
func (f *File) Delete() error {
	if err := os.Remove(f.path); err != nil {
		return fmt.Errorf("deleting %q: %w", f.path, err)
	}
	return nil
}

// Copy duplicates the file to newPath and returns a handle on the copy.
// An existing file at newPath is an error.
func (f *File) Copy(newPath string) (*File, error) {
	src, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", f.path, err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %q: %w", f.path, err)
	}

	dst, err := os.OpenFile(newPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return nil, fmt.Errorf("creating %q: %w", newPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(newPath)
		return nil, fmt.Errorf("copying %q to %q: %w", f.path, newPath, err)
	}
	if err := dst.Close(); err != nil {
		return nil, fmt.Errorf("closing %q: %w", newPath, err)
	}

	return Load(newPath), nil
}

// Move relocates the file and points the handle at the new path.
func (f *File) Move(newPath string) error {
	if err := os.Rename(f.path, newPath); err != nil {
		return fmt.Errorf("moving %q to %q: %w", f.path, newPath, err)
	}
	f.path = newPath
	return nil
}

// Rename gives the file a new name in the same directory.
func (f *File) Rename(newName string) error {
	if newName == "" || filepath.Base(newName) != newName {
		return fmt.Errorf("renaming %q: %q is not a plain file name", f.path, newName)
	}
	return f.Move(filepath.Join(filepath.Dir(f.path), newName))
}

// Bytes returns the whole content.
func (f *File) Bytes() ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", f.path, err)
	}
	return data, nil
}

// Text returns the content as a string.
func (f *File) Text() (string, error) {
	data, err := f.Bytes()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Lines returns the content split into lines. "\n", "\r\n" and "\r" all end a
// line, and a trailing line ending does not produce an empty last line.
func (f *File) Lines() ([]string, error) {
	text, err := f.Text()
	if err != nil {
		return nil, err
	}
	return splitLines(text), nil
}

func splitLines(text string) []string {
	if text == "" {
		return []string{}
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func joinLines(lines []string) []byte {
	var buf bytes.Buffer
	for _, line := range lines {
		buf.WriteString(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Base64 returns the content encoded as standard base64.
func (f *File) Base64() (string, error) {
	data, err := f.Bytes()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// String returns the text content, or an empty string if the file cannot be read.
func (f *File) String() string {
	text, err := f.Text()
	if err != nil {
		return ""
	}
	return text
}

// SetBytes replaces the content.
func (f *File) SetBytes(data []byte) error {
	return writeBytesAtomic(f.path, data)
}

// SetText replaces the content with text.
func (f *File) SetText(text string) error {
	return f.SetBytes([]byte(text))
}

// SetLines replaces the content with lines, each terminated by "\n".
func (f *File) SetLines(lines []string) error {
	return f.SetBytes(joinLines(lines))
}

// SetBase64 decodes encoded and stores the result.
func (f *File) SetBase64(encoded string) error {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("decoding base64 for %q: %w", f.path, err)
	}
	return f.SetBytes(data)
}

// AppendBytes adds data to the end of the file, creating it if needed.
func (f *File) AppendBytes(data []byte) error {
	out, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, defaultPerm)
	if err != nil {
		return fmt.Errorf("opening %q for append: %w", f.path, err)
	}
	if _, err := out.Write(data); err != nil {
		_ = out.Close()
		return fmt.Errorf("appending to %q: %w", f.path, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", f.path, err)
	}
	return nil
}

// AppendText adds text to the end of the file.
func (f *File) AppendText(text string) error {
	return f.AppendBytes([]byte(text))
}

// AppendLines adds lines, each terminated by "\n".
func (f *File) AppendLines(lines []string) error {
	return f.AppendBytes(joinLines(lines))
}

// Compress returns the content as a length-prefixed compressed frame.
func (f *File) Compress() ([]byte, error) {
	data, err := f.Bytes()
	if err != nil {
		return nil, err
	}
	frame, err := scytale.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("compressing %q: %w", f.path, err)
	}
	return frame, nil
}

// CompressBase64 returns the text content compressed and base64 encoded.
func (f *File) CompressBase64() (string, error) {
	text, err := f.Text()
	if err != nil {
		return "", err
	}
	encoded, err := scytale.CompressString(text)
	if err != nil {
		return "", fmt.Errorf("compressing %q: %w", f.path, err)
	}
	return encoded, nil
}

// SetDecompressed decodes frame and stores the result as the file content.
func (f *File) SetDecompressed(frame []byte) error {
	data, err := scytale.Decompress(frame)
	if err != nil {
		return fmt.Errorf("decompressing into %q: %w", f.path, err)
	}
	return f.SetBytes(data)
}

// SetDecompressedBase64 reverses CompressBase64 and stores the text.
func (f *File) SetDecompressedBase64(encoded string) error {
	text, err := scytale.DecompressString(encoded)
	if err != nil {
		return fmt.Errorf("decompressing into %q: %w", f.path, err)
	}
	return f.SetText(text)
}

// JSON parses the content as a JSON object.
func (f *File) JSON() (map[string]any, error) {
	data, err := f.Bytes()
	if err != nil {
		return nil, err
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("parsing %q as JSON: %w", f.path, err)
	}

	obj, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("parsing %q: %w", f.path, ErrNotObject)
	}
	return obj, nil
}
