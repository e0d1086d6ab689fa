// compressor.go: Pluggable entropy coders used inside a length-framed payload.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package scytale

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/pierrec/lz4/v4"
)

// Compressor is the external coder a Codec delegates the actual compression to.
//
// The frame does not record which compressor produced it, so the compressing and
// decompressing sides must be configured with the same one.
type Compressor interface {
	// Name identifies the compressor in errors and diagnostics.
	Name() string

	// NewWriter returns a writer compressing into w. Close must flush the stream to
	// completion without closing w. Level 0 selects the compressor's default.
	NewWriter(w io.Writer, level int) (io.WriteCloser, error)

	// NewReader returns a reader decompressing from r.
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Built-in compressors.
var (
	// Gzip is the default: a gzip container around deflate.
	Gzip Compressor = gzipCompressor{}

	// Deflate is raw deflate with no container or checksum.
	Deflate Compressor = deflateCompressor{}

	// LZ4 trades ratio for speed using the LZ4 frame format.
	LZ4 Compressor = lz4Compressor{}
)

type gzipCompressor struct{}

func (gzipCompressor) Name() string { return "gzip" }

func (gzipCompressor) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = gzip.DefaultCompression
	}
	return gzip.NewWriterLevel(w, level)
}

func (gzipCompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

type deflateCompressor struct{}

func (deflateCompressor) Name() string { return "deflate" }

func (deflateCompressor) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	if level == 0 {
		level = flate.DefaultCompression
	}
	return flate.NewWriter(w, level)
}

func (deflateCompressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return flate.NewReader(r), nil
}

type lz4Compressor struct{}

// lz4Levels maps levels 1..9 onto the lz4 compression levels.
var lz4Levels = [...]lz4.CompressionLevel{
	lz4.Level1, lz4.Level2, lz4.Level3,
	lz4.Level4, lz4.Level5, lz4.Level6,
	lz4.Level7, lz4.Level8, lz4.Level9,
}

func (lz4Compressor) Name() string { return "lz4" }

func (lz4Compressor) NewWriter(w io.Writer, level int) (io.WriteCloser, error) {
	zw := lz4.NewWriter(w)

	var opt lz4.CompressionLevel
	switch {
	case level == 0:
		opt = lz4.Fast
	case level >= 1 && level <= len(lz4Levels):
		opt = lz4Levels[level-1]
	default:
		return nil, fmt.Errorf("lz4: invalid compression level %d", level)
	}

	if err := zw.Apply(lz4.CompressionLevelOption(opt)); err != nil {
		return nil, err
	}
	return zw, nil
}

func (lz4Compressor) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}
