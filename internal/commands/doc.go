// doc.go: Package documentation.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

// Package commands provides the command-line interface for the scytale tool.
//
// It implements commands for:
//   - in-place file encryption and decryption
//   - length-framed compression and decompression
//   - file digests
//   - zip packing and unpacking
//   - key generation
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands
