// kdf.go: Passphrase-to-key derivation. Stretches a passphrase with Argon2id and
// renders the output as a transposition key over KeyAlphabet.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package scytale

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"golang.org/x/crypto/argon2"
	pbkdf2 "golang.org/x/crypto/pbkdf2"
)

// Default Argon2 parameters for key derivation.
const (
	// DefaultTime is the default number of iterations for Argon2id.
	DefaultTime = 3

	// DefaultMemory is the default memory usage in MB for Argon2id.
	DefaultMemory = 64

	// DefaultThreads is the default number of threads for Argon2id.
	DefaultThreads = 4
)

// KDFParams defines custom parameters for Argon2id key derivation.
//
// If a field is zero, the library's default will be used.
type KDFParams struct {
	// Time is the number of iterations for Argon2id.
	// If zero, DefaultTime is used.
	Time uint32 `json:"time,omitempty"`

	// Memory is the memory usage in MB for Argon2id.
	// If zero, DefaultMemory is used.
	Memory uint32 `json:"memory,omitempty"`

	// Threads is the number of threads for Argon2id.
	// If zero, DefaultThreads is used.
	Threads uint8 `json:"threads,omitempty"`
}

// FastKDFParams returns Argon2id parameters optimized for speed, suitable for tests
// and interactive tools.
//
// Parameters: Time=1, Memory=32MB, Threads=2
func FastKDFParams() *KDFParams {
	return &KDFParams{
		Time:    1,
		Memory:  32,
		Threads: 2,
	}
}

// DeriveKey derives a transposition key of length characters from a passphrase.
//
// The same password, salt, length and params always produce the same key, so a
// passphrase can stand in for a stored key.
//
// Parameters:
//   - password: The passphrase (cannot be empty)
//   - salt: The salt (cannot be empty)
//   - length: The key length in characters, which is also the cipher block size (must be positive)
//   - params: Custom Argon2id parameters (nil to use defaults)
//
// Example:
//
//	key, err := scytale.DeriveKey([]byte("correct horse"), []byte("archive-2025"), 12, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	ciphertext, _ := scytale.EncryptBytes(data, key)
func DeriveKey(password, salt []byte, length int, params *KDFParams) (string, error) {
	if err := checkKDFInput(password, salt, length); err != nil {
		return "", err
	}

	time := uint32(DefaultTime)
	memory := uint32(DefaultMemory * 1024)
	threads := uint8(DefaultThreads)

	if params != nil {
		if params.Time > 0 {
			time = params.Time
		}
		if params.Memory > 0 {
			memory = params.Memory * 1024
		}
		if params.Threads > 0 {
			threads = params.Threads
		}
	}

	// Two bytes per character keep the modulo bias negligible.
	raw := argon2.IDKey(password, salt, time, memory, threads, uint32(2*length)) // #nosec G115 -- length validated above
	defer Zeroize(raw)

	return renderKey(raw), nil
}

// DeriveKeyDefault derives a key using Argon2id with default parameters.
func DeriveKeyDefault(password, salt []byte, length int) (string, error) {
	return DeriveKey(password, salt, length, nil)
}

// DeriveKeyPBKDF2 derives a key using PBKDF2-SHA256.
//
// Deprecated: Use DeriveKey instead. Kept for keys derived by older tooling.
func DeriveKeyPBKDF2(password, salt []byte, iterations, length int) (string, error) {
	if err := checkKDFInput(password, salt, length); err != nil {
		return "", err
	}
	if iterations <= 0 {
		return "", configError(ErrCodeInvalidParams, "iterations must be positive")
	}

	raw := pbkdf2.Key(password, salt, iterations, 2*length, sha256.New)
	defer Zeroize(raw)

	return renderKey(raw), nil
}

// maxDerivedKeyLength bounds derived keys; a block this large is already unusual.
const maxDerivedKeyLength = 1 << 16

func checkKDFInput(password, salt []byte, length int) error {
	if len(password) == 0 {
		return configError(ErrCodeEmptyKey, "password cannot be empty")
	}
	if len(salt) == 0 {
		return configError(ErrCodeInvalidParams, "salt cannot be empty")
	}
	if length <= 0 || length > maxDerivedKeyLength {
		return configError(ErrCodeInvalidLength,
			fmt.Sprintf("key length must be between 1 and %d (got %d)", maxDerivedKeyLength, length))
	}
	return nil
}

// renderKey maps each big-endian uint16 of raw onto KeyAlphabet.
func renderKey(raw []byte) string {
	key := make([]byte, len(raw)/2)
	for i := range key {
		v := binary.BigEndian.Uint16(raw[2*i:])
		key[i] = KeyAlphabet[int(v)%len(KeyAlphabet)]
	}
	return string(key)
}
