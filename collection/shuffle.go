// shuffle.go: Generic shuffling, eager and lazy.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

// Package collection provides small generic helpers over slices and iterators.
package collection

import (
	"errors"
	"iter"
	"math/rand/v2"
	"slices"
)

// ErrNilSource is returned when a nil random source is supplied.
var ErrNilSource = errors.New("collection: nil random source")

// Shuffle returns a shuffled copy of src using the global random source.
// src is not modified.
func Shuffle[T any](src []T) []T {
	out := slices.Clone(src)
	rand.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// ShuffleWith returns a shuffled copy of src drawn from rng. The same seed gives
// the same order.
func ShuffleWith[T any](src []T, rng *rand.Rand) ([]T, error) {
	if rng == nil {
		return nil, ErrNilSource
	}
	out := slices.Collect(ShuffleSeq(slices.Values(src), rng))
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// ShuffleSeq returns a lazy shuffle of seq. The input is buffered on the first
// iteration; each step then picks j in [i, n), yields buf[j] and moves buf[i]
// into its place. Stopping early leaves the rest undrawn.
//
// A nil rng panics on iteration. Each iteration re-reads seq and draws fresh
// positions from rng.
func ShuffleSeq[T any](seq iter.Seq[T], rng *rand.Rand) iter.Seq[T] {
	return func(yield func(T) bool) {
		buf := slices.Collect(seq)
		for i := range buf {
			j := i + rng.IntN(len(buf)-i)
			if !yield(buf[j]) {
				return
			}
			buf[j] = buf[i]
		}
	}
}
