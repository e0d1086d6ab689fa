// streaming.go: Streaming block transposition.
//
// These adapters apply the same permutation as Transform without holding the whole
// payload in memory, so large files can be piped through the cipher with io.Copy.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package scytale

import (
	"errors"
	"io"
)

// StreamingEncryptor permutes data written to it and forwards complete blocks.
//
// Example usage:
//
//	enc, _ := scytale.NewStreamingEncryptor(outputWriter, "zebra")
//	io.Copy(enc, inputReader)
//	enc.Close() // pads and flushes the final block
//
// The output is byte-for-byte identical to EncryptBytes on the concatenated input.
type StreamingEncryptor interface {
	// Write permutes and writes every complete block; a trailing partial block
	// is held back until more data or Close.
	Write(data []byte) (int, error)

	// Close pads and flushes a held-back partial block. It does not close the
	// underlying writer. Must be called to emit the final block.
	Close() error
}

// StreamingDecryptor yields the inverse permutation of an encrypted source.
//
// Example usage:
//
//	dec, _ := scytale.NewStreamingDecryptor(inputReader, "zebra")
//	defer dec.Close()
//	io.Copy(outputWriter, dec)
type StreamingDecryptor interface {
	Read(data []byte) (int, error)

	// Close releases the decryptor. It does not close the underlying reader.
	Close() error
}

// blockWriter implements StreamingEncryptor over any permutation table.
type blockWriter struct {
	writer io.Writer
	table  []int
	block  []byte // pending input, len < len(table) between calls
	out    []byte
	closed bool
}

// blockReader implements StreamingDecryptor over any permutation table.
type blockReader struct {
	reader  io.Reader
	table   []int
	in      []byte
	out     []byte
	pending []byte // permuted bytes not yet returned
	done    bool
	closed  bool
}

// NewStreamingEncryptor returns a writer that encrypts into writer under key.
func NewStreamingEncryptor(writer io.Writer, key string) (StreamingEncryptor, error) {
	ks, err := NewKeySchedule(key)
	if err != nil {
		return nil, err
	}
	return ks.NewStreamingEncryptor(writer), nil
}

// NewStreamingDecryptor returns a reader that decrypts reader under key.
func NewStreamingDecryptor(reader io.Reader, key string) (StreamingDecryptor, error) {
	ks, err := NewKeySchedule(key)
	if err != nil {
		return nil, err
	}
	return ks.NewStreamingDecryptor(reader), nil
}

// NewStreamingEncryptor returns a streaming encryptor bound to the forward table.
func (ks *KeySchedule) NewStreamingEncryptor(writer io.Writer) StreamingEncryptor {
	n := len(ks.forward)
	return &blockWriter{
		writer: writer,
		table:  ks.forward,
		block:  make([]byte, 0, n),
		out:    make([]byte, n),
	}
}

// NewStreamingDecryptor returns a streaming decryptor bound to the inverse table.
func (ks *KeySchedule) NewStreamingDecryptor(reader io.Reader) StreamingDecryptor {
	n := len(ks.inverse)
	return &blockReader{
		reader: reader,
		table:  ks.inverse,
		in:     make([]byte, n),
		out:    make([]byte, n),
	}
}

// Write implements the Write method of StreamingEncryptor.
func (w *blockWriter) Write(data []byte) (int, error) {
	if w.closed {
		return 0, configError(ErrCodeClosed, "cannot write to closed encryptor")
	}

	n := len(w.table)
	totalWritten := 0

	for len(data) > 0 {
		take := n - len(w.block)
		if take > len(data) {
			take = len(data)
		}

		w.block = append(w.block, data[:take]...)
		data = data[take:]
		totalWritten += take

		if len(w.block) == n {
			if err := w.flushBlock(); err != nil {
				return totalWritten, err
			}
		}
	}

	return totalWritten, nil
}

// Close implements the Close method of StreamingEncryptor.
func (w *blockWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if len(w.block) == 0 {
		return nil
	}

	filled := len(w.block)
	w.block = w.block[:len(w.table)]
	padBlock(w.block, filled)
	return w.flushBlock()
}

func (w *blockWriter) flushBlock() error {
	permuteBlock(w.out, w.block, w.table)
	Zeroize(w.block)
	w.block = w.block[:0]

	if _, err := w.writer.Write(w.out); err != nil {
		return ioError(err, ErrCodeWrite, "failed to write permuted block")
	}
	return nil
}

// Read implements the Read method of StreamingDecryptor.
func (r *blockReader) Read(data []byte) (int, error) {
	if r.closed {
		return 0, configError(ErrCodeClosed, "cannot read from closed decryptor")
	}

	totalRead := 0
	for len(data) > 0 {
		if len(r.pending) > 0 {
			n := copy(data, r.pending)
			r.pending = r.pending[n:]
			data = data[n:]
			totalRead += n
			continue
		}

		if r.done {
			break
		}

		if err := r.nextBlock(); err != nil {
			return totalRead, err
		}
	}

	if totalRead == 0 && r.done && len(r.pending) == 0 && len(data) > 0 {
		return 0, io.EOF
	}
	return totalRead, nil
}

// nextBlock reads and permutes one block into pending.
func (r *blockReader) nextBlock() error {
	read, err := io.ReadFull(r.reader, r.in)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		r.done = true
		return nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		padBlock(r.in, read)
		r.done = true
	default:
		return ioError(err, ErrCodeRead, "failed to read encrypted block")
	}

	permuteBlock(r.out, r.in, r.table)
	r.pending = r.out
	return nil
}

// Close implements the Close method of StreamingDecryptor.
func (r *blockReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	Zeroize(r.in)
	Zeroize(r.out)
	r.pending = nil
	return nil
}
