// pool.go: Buffer pooling for block scratch space and codec output
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package scytale

import (
	"bytes"
	"sync"
)

// maxPooledOutput caps the capacity of output buffers kept for reuse, so one huge
// payload does not pin its memory in the pool forever.
const maxPooledOutput = 1 << 20

var (
	// Block pools sized for typical key lengths
	smallBlockPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, 32) // Keys up to 32 characters, the common case
			return &buf
		},
	}

	largeBlockPool = sync.Pool{
		New: func() interface{} {
			buf := make([]byte, 512)
			return &buf
		},
	}

	outputPool = sync.Pool{
		New: func() interface{} {
			return new(bytes.Buffer)
		},
	}
)

func init() {
	WarmupPools(4)
}

// getBuffer retrieves a block buffer from the appropriate pool based on size
func getBuffer(size int) *[]byte {
	switch {
	case size <= 32:
		buf := smallBlockPool.Get().(*[]byte)
		*buf = (*buf)[:size]
		return buf
	case size <= 512:
		buf := largeBlockPool.Get().(*[]byte)
		*buf = (*buf)[:size]
		return buf
	default:
		buf := make([]byte, size)
		return &buf
	}
}

// putBuffer wipes a block buffer and returns it to its pool. Blocks hold plaintext,
// so they are always cleared.
func putBuffer(buf *[]byte) {
	if buf == nil {
		return
	}

	Zeroize((*buf)[:cap(*buf)])

	switch cap(*buf) {
	case 32:
		smallBlockPool.Put(buf)
	case 512:
		largeBlockPool.Put(buf)
	}
}

func getOutputBuffer() *bytes.Buffer {
	buf := outputPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putOutputBuffer(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxPooledOutput {
		return
	}
	Zeroize(buf.Bytes())
	buf.Reset()
	outputPool.Put(buf)
}

// WarmupPools pre allocates buffers in the pools to reduce cold latency
func WarmupPools(count int) {
	small := make([]*[]byte, count)
	large := make([]*[]byte, count)
	outputs := make([]*bytes.Buffer, count)

	for i := 0; i < count; i++ {
		small[i] = getBuffer(32)
		large[i] = getBuffer(512)
		outputs[i] = getOutputBuffer()
	}

	for i := 0; i < count; i++ {
		putBuffer(small[i])
		putBuffer(large[i])
		putOutputBuffer(outputs[i])
	}
}
