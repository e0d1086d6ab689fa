// errors.go: Error taxonomy shared by the key scheduler, the block cipher and the codec.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package scytale

import (
	"errors"
	"fmt"

	goerrors "github.com/agilira/go-errors"
)

// Public standard errors for use with errors.Is.
// Every error returned by this package wraps exactly one of them.
var (
	// ErrConfig is returned for an empty or invalid key, a malformed permutation
	// table, or invalid codec parameters.
	ErrConfig = errors.New("scytale: invalid configuration")

	// ErrIO is returned when the source cannot be read or the destination cannot be written.
	ErrIO = errors.New("scytale: i/o error")

	// ErrFormat is returned for a malformed length-framed buffer or undecodable text transport.
	ErrFormat = errors.New("scytale: malformed frame")

	// ErrDecode is returned when the inner compressed stream is corrupt or truncated.
	ErrDecode = errors.New("scytale: decode error")
)

// Error codes for rich error handling
const (
	ErrCodeEmptyKey       = "SCYTALE_EMPTY_KEY"
	ErrCodeInvalidKey     = "SCYTALE_INVALID_KEY"
	ErrCodeInvalidTable   = "SCYTALE_INVALID_TABLE"
	ErrCodeInvalidLength  = "SCYTALE_INVALID_LENGTH"
	ErrCodeInvalidParams  = "SCYTALE_INVALID_PARAMS"
	ErrCodeClosed         = "SCYTALE_CLOSED"
	ErrCodeRead           = "SCYTALE_READ"
	ErrCodeWrite          = "SCYTALE_WRITE"
	ErrCodeRandom         = "SCYTALE_RANDOM"
	ErrCodeFrameShort     = "SCYTALE_FRAME_SHORT"
	ErrCodeNegativeLength = "SCYTALE_NEGATIVE_LENGTH"
	ErrCodeFrameTooLarge  = "SCYTALE_FRAME_TOO_LARGE"
	ErrCodeBase64Decode   = "SCYTALE_BASE64_DECODE"
	ErrCodeCorruptStream  = "SCYTALE_CORRUPT_STREAM"
	ErrCodeTruncated      = "SCYTALE_TRUNCATED"
	ErrCodeCompressor     = "SCYTALE_COMPRESSOR"
)

func configError(code goerrors.ErrorCode, msg string) error {
	return fmt.Errorf("%w: %w", ErrConfig, goerrors.New(code, msg))
}

func ioError(err error, code goerrors.ErrorCode, msg string) error {
	return fmt.Errorf("%w: %w", ErrIO, goerrors.Wrap(err, code, msg))
}

func formatError(code goerrors.ErrorCode, msg string) error {
	return fmt.Errorf("%w: %w", ErrFormat, goerrors.New(code, msg))
}

func decodeError(err error, code goerrors.ErrorCode, msg string) error {
	if err == nil {
		return fmt.Errorf("%w: %w", ErrDecode, goerrors.New(code, msg))
	}
	return fmt.Errorf("%w: %w", ErrDecode, goerrors.Wrap(err, code, msg))
}
