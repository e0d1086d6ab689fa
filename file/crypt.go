// crypt.go: File encryption through the transposition cipher, single and batched.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/agilira/scytale"
)

// Encrypt returns the file content encrypted with key. The file is not modified.
func (f *File) Encrypt(key string) ([]byte, error) {
	ks, err := scytale.NewKeySchedule(key)
	if err != nil {
		return nil, err
	}
	return f.transform(ks.Encrypt)
}

// Decrypt returns the file content decrypted with key, padding included.
func (f *File) Decrypt(key string) ([]byte, error) {
	ks, err := scytale.NewKeySchedule(key)
	if err != nil {
		return nil, err
	}
	return f.transform(ks.Decrypt)
}

func (f *File) transform(fn func(io.Reader) ([]byte, error)) ([]byte, error) {
	in, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", f.path, err)
	}
	defer in.Close()

	out, err := fn(in)
	if err != nil {
		return nil, fmt.Errorf("transforming %q: %w", f.path, err)
	}
	return out, nil
}

// EncryptInPlace replaces the content with its encryption under key.
func (f *File) EncryptInPlace(key string) error {
	ks, err := scytale.NewKeySchedule(key)
	if err != nil {
		return err
	}
	return f.transformInPlace(ks.EncryptTo)
}

// DecryptInPlace replaces the content with its decryption under key. Padding added
// by encryption stays in the file.
func (f *File) DecryptInPlace(key string) error {
	ks, err := scytale.NewKeySchedule(key)
	if err != nil {
		return err
	}
	return f.transformInPlace(ks.DecryptTo)
}

// transformInPlace streams the file through fn into a temp file, then renames it
// over the original.
func (f *File) transformInPlace(fn func(io.Writer, io.Reader) (int64, error)) error {
	in, err := os.Open(f.path)
	if err != nil {
		return fmt.Errorf("opening %q: %w", f.path, err)
	}
	defer in.Close()

	return writeAtomic(f.path, func(w io.Writer) error {
		if _, err := fn(w, in); err != nil {
			return fmt.Errorf("transforming %q: %w", f.path, err)
		}
		return nil
	})
}

// EncryptAll encrypts every file in place, running up to parallel files at once.
// A parallel value below 1 uses the number of CPUs. The first failure cancels the
// files that have not started yet and is returned.
func EncryptAll(ctx context.Context, files []*File, key string, parallel int) error {
	return forEach(ctx, files, key, parallel, (*File).EncryptInPlace)
}

// DecryptAll is the batch counterpart of DecryptInPlace.
func DecryptAll(ctx context.Context, files []*File, key string, parallel int) error {
	return forEach(ctx, files, key, parallel, (*File).DecryptInPlace)
}

func forEach(ctx context.Context, files []*File, key string, parallel int, fn func(*File, string) error) error {
	if err := scytale.ValidateKey(key); err != nil {
		return err
	}
	if parallel < 1 {
		parallel = runtime.NumCPU()
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(parallel)

	for _, f := range files {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(f, key)
		})
	}

	if err := group.Wait(); err != nil {
		return fmt.Errorf("processing files: %w", err)
	}
	return nil
}
