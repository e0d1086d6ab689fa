// Package scytale provides a key-derived byte transposition cipher and a
// length-framed compression codec.
//
// The package offers:
//   - A columnar transposition key schedule (stable sort of key characters)
//   - A block permutation engine with space padding of the final block
//   - Streaming encryptor/decryptor adapters over io.Writer and io.Reader
//   - A compression codec that prefixes the original length, so decompression
//     allocates its output exactly once and never relies on end-of-stream detection
//   - Pluggable compressors: gzip (default), raw deflate and LZ4
//   - Key generation, fingerprinting and Argon2id passphrase derivation
//
// # Quick Start
//
// Encrypting and decrypting bytes:
//
//	ciphertext, err := scytale.EncryptBytes([]byte("XYZ"), "cab")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("%s\n", ciphertext) // YZX
//
//	plaintext, err := scytale.DecryptBytes(ciphertext, "cab")
//	fmt.Printf("%s\n", plaintext) // XYZ
//
// Reusing a schedule for many payloads:
//
//	ks, err := scytale.NewKeySchedule("secret")
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := ks.Encrypt(file) // file is any io.Reader
//
// # Padding
//
// The cipher works on blocks of len(key) bytes. A short final block is padded with
// spaces (0x20), and decryption returns the padded content. Callers that need the
// exact original must record its length and use TrimPadding:
//
//	ct, _ := scytale.EncryptBytes([]byte("AB"), "abcd")
//	pt, _ := scytale.DecryptBytes(ct, "abcd") // "AB  "
//	pt = scytale.TrimPadding(pt, 2)           // "AB"
//
// # Compression
//
//	frame, err := scytale.Compress(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	data, err = scytale.Decompress(frame)
//
// The frame is a 4-byte little-endian length of the original data followed by the
// compressor stream. Decompress refuses frames that declare more than
// DefaultMaxFrameLength bytes; use NewCodec with CodecParams to change the ceiling,
// the compressor or the level. Compression and encryption are independent and can
// be composed in either order.
//
// # Error Handling
//
// All functions return standard Go errors. Every error wraps one of ErrConfig,
// ErrIO, ErrFormat or ErrDecode, together with a coded error from
// github.com/agilira/go-errors:
//
//	data, err := scytale.Decompress(frame)
//	if err != nil {
//		if errors.Is(err, scytale.ErrFormat) {
//			// Not a frame at all
//		} else if errors.Is(err, scytale.ErrDecode) {
//			// Corrupt or truncated payload
//		}
//	}
//
// # Security Considerations
//
// The cipher is a pure transposition. It has no substitution, no diffusion, no IV and
// no integrity tag, and the same key and plaintext always give the same ciphertext.
// It obfuscates; it does not provide confidentiality against an attacker willing to
// search key-length! permutations. Use an authenticated cipher when secrecy matters.
//
// # Concurrency
//
// KeySchedule and Codec values are immutable and may be shared. Operations on
// distinct streams may run concurrently; a single stream must not be shared.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0
package scytale
