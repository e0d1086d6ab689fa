// keyutils.go: Key utilities for generation, validation, zeroization, and fingerprinting.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package scytale

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	goerrors "github.com/agilira/go-errors"
)

// KeyAlphabet is the character set used by GenerateKey and DeriveKey.
const KeyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// acceptBelow is the largest multiple of len(KeyAlphabet) that fits in a byte;
// random bytes at or above it are rejected to keep the selection unbiased.
const acceptBelow = 256 - 256%len(KeyAlphabet)

// DefaultKeyLength is a reasonable block size for generated keys.
const DefaultKeyLength = 16

// ValidateKey checks that key can drive a KeySchedule.
//
// Returns an error wrapping ErrConfig if key is empty or not valid UTF-8.
//
// Example:
//
//	if err := scytale.ValidateKey(userKey); err != nil {
//		log.Fatal("Invalid key:", err)
//	}
func ValidateKey(key string) error {
	if key == "" {
		return configError(ErrCodeEmptyKey, "key cannot be empty")
	}
	if !utf8.ValidString(key) {
		return configError(ErrCodeInvalidKey, "key must be valid UTF-8")
	}
	return nil
}

// GenerateKey returns a random key of length characters drawn from KeyAlphabet.
//
// The key is generated using the cryptographically secure random number generator
// provided by the operating system. The cipher itself is a transposition, so a
// random key only avoids guessable keys; it does not add confidentiality.
//
// Example:
//
//	key, err := scytale.GenerateKey(scytale.DefaultKeyLength)
//	if err != nil {
//		log.Fatal(err)
//	}
func GenerateKey(length int) (string, error) {
	if length <= 0 {
		return "", configError(ErrCodeInvalidLength, fmt.Sprintf("key length must be positive (got %d)", length))
	}

	var sb strings.Builder
	sb.Grow(length)

	raw := make([]byte, length)
	defer Zeroize(raw)

	for sb.Len() < length {
		if _, err := io.ReadFull(rand.Reader, raw); err != nil {
			richErr := goerrors.Wrap(err, ErrCodeRandom, "failed to read random bytes")
			return "", fmt.Errorf("%w: %w", ErrIO, richErr)
		}
		for _, b := range raw {
			if int(b) >= acceptBelow {
				continue
			}
			sb.WriteByte(KeyAlphabet[int(b)%len(KeyAlphabet)])
			if sb.Len() == length {
				break
			}
		}
	}

	return sb.String(), nil
}

// Zeroize overwrites b with zeros.
//
// Block buffers hold plaintext while it is being permuted; they are wiped with
// Zeroize before being returned to the pools.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// GetKeyFingerprint generates a fingerprint for a key (non-cryptographic).
//
// The fingerprint is the first 8 bytes of SHA-256 in hex. It identifies a key
// in logs and diagnostics without exposing it.
//
// Returns an empty string for an empty key.
func GetKeyFingerprint(key string) string {
	if key == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%016x", hash[:8])
}
