// keyutils_test.go: Test cases for key utilities.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package scytale_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilira/scytale"
)

func TestGenerateKey_ValidLength(t *testing.T) {
	for _, length := range []int{1, 7, scytale.DefaultKeyLength, 300} {
		key, err := scytale.GenerateKey(length)
		if err != nil {
			t.Fatalf("GenerateKey(%d) error: %v", length, err)
		}
		if len(key) != length {
			t.Errorf("Expected key length %d, got %d", length, len(key))
		}
		for _, r := range key {
			if !strings.ContainsRune(scytale.KeyAlphabet, r) {
				t.Errorf("Key character %q outside the alphabet", r)
			}
		}
	}
}

func TestGenerateKey_InvalidLength(t *testing.T) {
	for _, length := range []int{0, -5} {
		_, err := scytale.GenerateKey(length)
		assert.ErrorIs(t, err, scytale.ErrConfig, "length %d", length)
	}
}

func TestGenerateKey_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		key, err := scytale.GenerateKey(scytale.DefaultKeyLength)
		require.NoError(t, err)
		if seen[key] {
			t.Fatalf("Duplicate key generated: %s", key)
		}
		seen[key] = true
	}
}

func TestGenerateKey_UsableAsSchedule(t *testing.T) {
	key, err := scytale.GenerateKey(scytale.DefaultKeyLength)
	require.NoError(t, err)

	ks, err := scytale.NewKeySchedule(key)
	require.NoError(t, err)
	assert.Equal(t, scytale.DefaultKeyLength, ks.BlockSize())
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, scytale.ValidateKey("k"))
	assert.NoError(t, scytale.ValidateKey("ключ с пробелами"))

	assert.ErrorIs(t, scytale.ValidateKey(""), scytale.ErrConfig)
	assert.ErrorIs(t, scytale.ValidateKey("\xc3\x28"), scytale.ErrConfig)
}

func TestZeroize(t *testing.T) {
	data := []byte("sensitive plaintext")
	scytale.Zeroize(data)
	for i, b := range data {
		if b != 0 {
			t.Errorf("Byte %d not zeroized: %d", i, b)
		}
	}

	scytale.Zeroize(nil) // must not panic
}

func TestGetKeyFingerprint(t *testing.T) {
	fp := scytale.GetKeyFingerprint("my-key")
	assert.Len(t, fp, 16)
	assert.Equal(t, fp, scytale.GetKeyFingerprint("my-key"), "fingerprint must be deterministic")
	assert.NotEqual(t, fp, scytale.GetKeyFingerprint("my-kez"))
	assert.NotContains(t, fp, "my-key")

	assert.Empty(t, scytale.GetKeyFingerprint(""))
}
