// keyschedule.go: Columnar transposition key schedule.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package scytale

import "sort"

// KeySchedule holds the forward and inverse permutation tables derived from a key.
//
// A KeySchedule is immutable once built and can be shared read-only by any number
// of goroutines. The key itself is not retained, only the tables and a fingerprint.
//
// Example:
//
//	ks, err := scytale.NewKeySchedule("cab")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(ks.Forward()) // [2 0 1]
//	fmt.Println(ks.Inverse()) // [1 2 0]
type KeySchedule struct {
	forward     []int
	inverse     []int
	fingerprint string
}

// NewKeySchedule derives the permutation tables for key.
//
// Each Unicode code point of the key is one column. Keys are compared by raw code
// point value, so the schedule is case-sensitive and independent of locale.
// A character outside the Basic Multilingual Plane is a single column, so keys
// containing one produce different tables than tools that order UTF-16 code
// units and do not interoperate with them.
//
// Returns an error wrapping ErrConfig if the key is empty or not valid UTF-8.
func NewKeySchedule(key string) (*KeySchedule, error) {
	forward, inverse, err := DeriveTables(key)
	if err != nil {
		return nil, err
	}

	return &KeySchedule{
		forward:     forward,
		inverse:     inverse,
		fingerprint: GetKeyFingerprint(key),
	}, nil
}

// DeriveTables computes the forward table and its inverse for key.
//
// Positions are stable-sorted by character value, so repeated characters keep
// their original left-to-right order. forward[i] is the rank of the character at
// position i, and inverse[forward[i]] == i.
func DeriveTables(key string) (forward, inverse []int, err error) {
	if err := ValidateKey(key); err != nil {
		return nil, nil, err
	}

	chars := []rune(key)
	order := make([]int, len(chars))
	for i := range order {
		order[i] = i
	}

	// The stable sort breaks ties by ascending position. Swapping in an unstable
	// sort changes the ciphertext for keys with repeated characters.
	sort.SliceStable(order, func(a, b int) bool {
		return chars[order[a]] < chars[order[b]]
	})

	forward = make([]int, len(chars))
	inverse = make([]int, len(chars))
	for rank, pos := range order {
		forward[pos] = rank
		inverse[rank] = pos
	}

	return forward, inverse, nil
}

// BlockSize returns the transposition block length, equal to the key length in characters.
func (ks *KeySchedule) BlockSize() int {
	return len(ks.forward)
}

// Forward returns a copy of the encryption table.
func (ks *KeySchedule) Forward() []int {
	return append([]int(nil), ks.forward...)
}

// Inverse returns a copy of the decryption table.
func (ks *KeySchedule) Inverse() []int {
	return append([]int(nil), ks.inverse...)
}

// Fingerprint returns a short identifier of the key, safe to log.
func (ks *KeySchedule) Fingerprint() string {
	return ks.fingerprint
}

// validateTable checks that table is a permutation of [0, len(table)).
func validateTable(table []int) error {
	if len(table) == 0 {
		return configError(ErrCodeInvalidTable, "permutation table cannot be empty")
	}

	seen := make([]bool, len(table))
	for _, idx := range table {
		if idx < 0 || idx >= len(table) || seen[idx] {
			return configError(ErrCodeInvalidTable, "table is not a permutation of its positions")
		}
		seen[idx] = true
	}
	return nil
}
