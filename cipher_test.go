// cipher_test.go: Test cases for the block transposition engine.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package scytale_test

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
	"testing/quick"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agilira/scytale"
)

func TestTransform_WorkedExample(t *testing.T) {
	out, err := scytale.Transform(strings.NewReader("XYZ"), []int{2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, "YZX", string(out))

	back, err := scytale.Transform(bytes.NewReader(out), []int{1, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, "XYZ", string(back))
}

func TestEncryptBytes_WorkedExample(t *testing.T) {
	ciphertext, err := scytale.EncryptBytes([]byte("XYZ"), "cab")
	require.NoError(t, err)
	assert.Equal(t, "YZX", string(ciphertext))

	plaintext, err := scytale.DecryptBytes(ciphertext, "cab")
	require.NoError(t, err)
	assert.Equal(t, "XYZ", string(plaintext))
}

func TestEncryptBytes_Padding(t *testing.T) {
	ciphertext, err := scytale.EncryptBytes([]byte("AB"), "dcba")
	require.NoError(t, err)
	assert.Equal(t, "  BA", string(ciphertext))

	plaintext, err := scytale.DecryptBytes(ciphertext, "dcba")
	require.NoError(t, err)
	assert.Equal(t, "AB  ", string(plaintext), "decryption keeps the space padding")
	assert.Equal(t, "AB", string(scytale.TrimPadding(plaintext, 2)))
}

func TestEncryptBytes_MultipleBlocks(t *testing.T) {
	// Two full blocks and a short one: "XYZ" "XYZ" "X  "
	ciphertext, err := scytale.EncryptBytes([]byte("XYZXYZX"), "cab")
	require.NoError(t, err)
	assert.Equal(t, "YZXYZX  X", string(ciphertext))

	plaintext, err := scytale.DecryptBytes(ciphertext, "cab")
	require.NoError(t, err)
	assert.Equal(t, "XYZXYZX  ", string(plaintext))
}

func TestEncryptBytes_Empty(t *testing.T) {
	ciphertext, err := scytale.EncryptBytes(nil, "key")
	require.NoError(t, err)
	assert.Empty(t, ciphertext)

	plaintext, err := scytale.DecryptBytes([]byte{}, "key")
	require.NoError(t, err)
	assert.Empty(t, plaintext)
}

func TestEncryptBytes_InvalidKey(t *testing.T) {
	_, err := scytale.EncryptBytes([]byte("data"), "")
	assert.ErrorIs(t, err, scytale.ErrConfig)

	_, err = scytale.DecryptBytes([]byte("data"), "")
	assert.ErrorIs(t, err, scytale.ErrConfig)
}

// TestEncryptDecrypt_RoundTripProperty checks that decrypt(encrypt(x)) equals x
// right-padded with spaces to a multiple of the key length.
func TestEncryptDecrypt_RoundTripProperty(t *testing.T) {
	f := func(data []byte, key string) bool {
		if key == "" || !utf8.ValidString(key) {
			return true
		}

		ciphertext, err := scytale.EncryptBytes(data, key)
		if err != nil {
			return false
		}
		plaintext, err := scytale.DecryptBytes(ciphertext, key)
		if err != nil {
			return false
		}

		n := utf8.RuneCountInString(key)
		expected := append([]byte{}, data...)
		for len(expected)%n != 0 {
			expected = append(expected, ' ')
		}
		return bytes.Equal(plaintext, expected)
	}

	if err := quick.Check(f, &quick.Config{MaxCount: 300}); err != nil {
		t.Errorf("Property test failed: %v", err)
	}
}

func TestTransform_InvalidTable(t *testing.T) {
	tables := map[string][]int{
		"empty":        {},
		"duplicate":    {0, 0},
		"out of range": {0, 2},
		"negative":     {-1, 0},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			_, err := scytale.Transform(strings.NewReader("data"), table)
			assert.ErrorIs(t, err, scytale.ErrConfig)

			_, err = scytale.TransformTo(io.Discard, strings.NewReader("data"), table)
			assert.ErrorIs(t, err, scytale.ErrConfig)
		})
	}
}

func TestTransform_ReadFailure(t *testing.T) {
	boom := errors.New("disk gone")

	_, err := scytale.Transform(iotest.ErrReader(boom), []int{1, 0})
	assert.ErrorIs(t, err, scytale.ErrIO)

	// First block succeeds, then the source fails mid-block.
	src := io.MultiReader(strings.NewReader("abcdef"), iotest.ErrReader(boom))
	out, err := scytale.Transform(src, []int{3, 2, 1, 0})
	assert.ErrorIs(t, err, scytale.ErrIO)
	assert.Nil(t, out, "partial output must be discarded")
}

func TestTransformTo_WriteFailure(t *testing.T) {
	w := &failingWriter{failAfter: 1}
	written, err := scytale.TransformTo(w, strings.NewReader("abcdefgh"), []int{1, 0})

	assert.ErrorIs(t, err, scytale.ErrIO)
	assert.Equal(t, int64(2), written, "blocks written before the failure are reported")
}

func TestTransform_ShortReads(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	ks, err := scytale.NewKeySchedule("zebras")
	require.NoError(t, err)

	whole, err := ks.Encrypt(bytes.NewReader(data))
	require.NoError(t, err)

	// A reader returning one byte at a time must not create extra padded blocks.
	trickled, err := ks.Encrypt(iotest.OneByteReader(bytes.NewReader(data)))
	require.NoError(t, err)
	assert.Equal(t, whole, trickled)

	halved, err := ks.Encrypt(iotest.HalfReader(bytes.NewReader(data)))
	require.NoError(t, err)
	assert.Equal(t, whole, halved)
}

func TestKeySchedule_EncryptToDecryptTo(t *testing.T) {
	ks, err := scytale.NewKeySchedule("transpose")
	require.NoError(t, err)

	var encrypted, decrypted bytes.Buffer
	n, err := ks.EncryptTo(&encrypted, strings.NewReader("stream me through the engine"))
	require.NoError(t, err)
	assert.Equal(t, int64(encrypted.Len()), n)
	assert.Zero(t, encrypted.Len()%ks.BlockSize())

	_, err = ks.DecryptTo(&decrypted, &encrypted)
	require.NoError(t, err)
	assert.Equal(t, "stream me through the engine", strings.TrimRight(decrypted.String(), " "))
}

// TestKeySchedule_EncryptMatchesTransform checks that the schedule methods,
// which skip table validation, agree with the validating Transform.
func TestKeySchedule_EncryptMatchesTransform(t *testing.T) {
	ks, err := scytale.NewKeySchedule("permute")
	require.NoError(t, err)

	for _, input := range []string{"", "a", "exactly", "longer than one block of seven"} {
		viaSchedule, err := ks.Encrypt(strings.NewReader(input))
		require.NoError(t, err)
		viaTransform, err := scytale.Transform(strings.NewReader(input), ks.Forward())
		require.NoError(t, err)
		assert.Equal(t, viaTransform, viaSchedule, "encrypt %q", input)

		back, err := ks.Decrypt(bytes.NewReader(viaSchedule))
		require.NoError(t, err)
		expected, err := scytale.Transform(bytes.NewReader(viaSchedule), ks.Inverse())
		require.NoError(t, err)
		assert.Equal(t, expected, back, "decrypt %q", input)
	}

	out, err := ks.Encrypt(iotest.ErrReader(errors.New("gone")))
	assert.ErrorIs(t, err, scytale.ErrIO)
	assert.Nil(t, out)
}

func TestEncryptString_RoundTrip(t *testing.T) {
	encoded, err := scytale.EncryptString("hello, world", "secret")
	require.NoError(t, err)
	assert.NotEqual(t, "hello, world", encoded)

	decoded, err := scytale.DecryptString(encoded, "secret")
	require.NoError(t, err)
	assert.Equal(t, "hello, world", decoded)

	_, err = scytale.DecryptString("not base64!!", "secret")
	assert.ErrorIs(t, err, scytale.ErrFormat)

	_, err = scytale.EncryptString("x", "")
	assert.ErrorIs(t, err, scytale.ErrConfig)
}

func TestTrimPadding(t *testing.T) {
	data := []byte("AB  ")
	assert.Equal(t, []byte("AB"), scytale.TrimPadding(data, 2))
	assert.Equal(t, data, scytale.TrimPadding(data, 10), "out of range length leaves data untouched")
	assert.Equal(t, data, scytale.TrimPadding(data, -1))
}

// failingWriter accepts failAfter writes, then fails.
type failingWriter struct {
	failAfter int
	calls     int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	if w.calls > w.failAfter {
		return 0, errors.New("pipe closed")
	}
	return len(p), nil
}

func BenchmarkKeyScheduleEncrypt(b *testing.B) {
	ks, err := scytale.NewKeySchedule("benchmark-key")
	require.NoError(b, err)
	data := bytes.Repeat([]byte("0123456789"), 100)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ks.Encrypt(bytes.NewReader(data)); err != nil {
			b.Fatal(err)
		}
	}
}
