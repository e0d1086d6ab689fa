// codec.go: Length-framed compression codec.
//
// A frame is a 4-byte little-endian signed length of the ORIGINAL payload followed by
// the compressor stream. Knowing the exact size up front lets Decompress allocate
// its output once and stop after L bytes, independent of end-of-stream signalling.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package scytale

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	goerrors "github.com/agilira/go-errors"
)

// FrameHeaderSize is the size of the length prefix in bytes.
const FrameHeaderSize = 4

// DefaultMaxFrameLength is the default ceiling on the declared length Decompress
// accepts, and on the input Compress accepts. A hostile header cannot make the
// codec allocate more than this.
const DefaultMaxFrameLength = 1 << 30

// CodecParams configures a Codec.
//
// If a field is zero, the library default is used.
//
// Example:
//
//	codec, err := scytale.NewCodec(&scytale.CodecParams{
//		Compressor: scytale.LZ4,
//		Level:      9,
//		MaxLength:  64 << 20, // refuse frames declaring more than 64 MB
//	})
type CodecParams struct {
	// Compressor is the inner coder. If nil, Gzip is used.
	Compressor Compressor `json:"-"`

	// Level is passed to the compressor. If zero, the compressor default is used.
	Level int `json:"level,omitempty"`

	// MaxLength is the largest payload accepted in either direction.
	// If zero, DefaultMaxFrameLength is used. Must not exceed math.MaxInt32.
	MaxLength int `json:"max_length,omitempty"`
}

// Codec compresses payloads into length-prefixed frames. A Codec is immutable and
// safe for concurrent use.
type Codec struct {
	compressor Compressor
	level      int
	maxLength  int
}

var defaultCodec = &Codec{
	compressor: Gzip,
	maxLength:  DefaultMaxFrameLength,
}

// NewCodec creates a Codec. Pass nil params to use the defaults.
//
// Returns an error wrapping ErrConfig if MaxLength is out of range or the compressor
// rejects the level.
func NewCodec(params *CodecParams) (*Codec, error) {
	c := &Codec{
		compressor: Gzip,
		maxLength:  DefaultMaxFrameLength,
	}

	if params != nil {
		if params.Compressor != nil {
			c.compressor = params.Compressor
		}
		c.level = params.Level
		if params.MaxLength < 0 || params.MaxLength > math.MaxInt32 {
			return nil, configError(ErrCodeInvalidParams,
				fmt.Sprintf("max length must be between 0 and %d (got %d)", math.MaxInt32, params.MaxLength))
		}
		if params.MaxLength > 0 {
			c.maxLength = params.MaxLength
		}
	}

	// Probe the level once so a bad value fails here instead of on every call.
	zw, err := c.compressor.NewWriter(io.Discard, c.level)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeCompressor, fmt.Sprintf("%s rejected level %d", c.compressor.Name(), c.level))
		return nil, fmt.Errorf("%w: %w", ErrConfig, richErr)
	}
	_ = zw.Close()

	return c, nil
}

// Compress frames data with the default codec (gzip, default level).
//
// Example:
//
//	frame, err := scytale.Compress([]byte("hello hello hello"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, _ := scytale.Decompress(frame)
func Compress(data []byte) ([]byte, error) {
	return defaultCodec.Compress(data)
}

// Decompress decodes a frame produced by Compress.
func Decompress(frame []byte) ([]byte, error) {
	return defaultCodec.Decompress(frame)
}

// CompressString encodes s as UTF-8, compresses it and returns the frame as base64.
func CompressString(s string) (string, error) {
	return defaultCodec.CompressString(s)
}

// DecompressString reverses CompressString.
func DecompressString(encoded string) (string, error) {
	return defaultCodec.DecompressString(encoded)
}

// Compress returns the length-prefixed compressed frame for data.
//
// Returns an error wrapping ErrFormat if data is longer than the codec ceiling.
func (c *Codec) Compress(data []byte) ([]byte, error) {
	buf := getOutputBuffer()
	defer putOutputBuffer(buf)

	if err := c.CompressTo(buf, data); err != nil {
		return nil, err
	}

	frame := make([]byte, buf.Len())
	copy(frame, buf.Bytes())
	return frame, nil
}

// CompressTo writes the frame for data to w.
func (c *Codec) CompressTo(w io.Writer, data []byte) error {
	if len(data) > c.maxLength {
		return formatError(ErrCodeFrameTooLarge,
			fmt.Sprintf("payload of %d bytes exceeds the %d byte frame limit", len(data), c.maxLength))
	}

	var header [FrameHeaderSize]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(data))) // #nosec G115 -- bounded by maxLength <= MaxInt32
	if _, err := w.Write(header[:]); err != nil {
		return ioError(err, ErrCodeWrite, "failed to write frame header")
	}

	zw, err := c.compressor.NewWriter(w, c.level)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeCompressor, "failed to create "+c.compressor.Name()+" writer")
		return fmt.Errorf("%w: %w", ErrConfig, richErr)
	}

	if _, err := zw.Write(data); err != nil {
		_ = zw.Close()
		return ioError(err, ErrCodeWrite, "failed to write compressed payload")
	}
	if err := zw.Close(); err != nil {
		return ioError(err, ErrCodeWrite, "failed to flush compressed payload")
	}
	return nil
}

// Decompress returns exactly the number of bytes declared in the frame header.
//
// The function will return an error if:
//   - The frame is shorter than FrameHeaderSize (ErrFormat)
//   - The declared length is negative or above the ceiling (ErrFormat)
//   - The inner stream is malformed or ends before the declared length (ErrDecode)
//
// Output beyond the declared length is ignored. A frame declaring zero bytes decodes
// to an empty slice without inspecting the payload.
func (c *Codec) Decompress(frame []byte) ([]byte, error) {
	if len(frame) < FrameHeaderSize {
		return nil, formatError(ErrCodeFrameShort,
			fmt.Sprintf("frame of %d bytes is shorter than its %d byte header", len(frame), FrameHeaderSize))
	}

	declared := int32(binary.LittleEndian.Uint32(frame[:FrameHeaderSize])) // #nosec G115 -- header is a signed length
	if declared < 0 {
		return nil, formatError(ErrCodeNegativeLength, fmt.Sprintf("declared length %d is negative", declared))
	}
	length := int(declared)
	if length > c.maxLength {
		return nil, formatError(ErrCodeFrameTooLarge,
			fmt.Sprintf("declared length %d exceeds the %d byte frame limit", length, c.maxLength))
	}
	if length == 0 {
		return []byte{}, nil
	}

	zr, err := c.compressor.NewReader(bytes.NewReader(frame[FrameHeaderSize:]))
	if err != nil {
		return nil, decodeError(err, ErrCodeCorruptStream, "failed to open "+c.compressor.Name()+" stream")
	}
	defer zr.Close()

	out := make([]byte, length)
	if _, err := io.ReadFull(zr, out); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, decodeError(err, ErrCodeTruncated,
				fmt.Sprintf("stream ended before the declared %d bytes", length))
		}
		return nil, decodeError(err, ErrCodeCorruptStream, "failed to decompress payload")
	}

	return out, nil
}

// CompressString is the text transport variant of Compress: UTF-8 in, base64 out.
func (c *Codec) CompressString(s string) (string, error) {
	frame, err := c.Compress([]byte(s))
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(frame), nil
}

// DecompressString decodes base64 text and decompresses the frame to a string.
// Returns an error wrapping ErrFormat if encoded is not valid base64.
func (c *Codec) DecompressString(encoded string) (string, error) {
	frame, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		richErr := goerrors.Wrap(err, ErrCodeBase64Decode, "failed to decode base64 frame")
		return "", fmt.Errorf("%w: %w", ErrFormat, richErr)
	}

	data, err := c.Decompress(frame)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MaxLength returns the frame ceiling of the codec.
func (c *Codec) MaxLength() int {
	return c.maxLength
}

// CompressorName returns the name of the inner compressor.
func (c *Codec) CompressorName() string {
	return c.compressor.Name()
}
