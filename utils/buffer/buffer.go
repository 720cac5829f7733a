// Package buffer implements methods for writing and reading fixed-width values
// to and from writers and readers that expose their internal buffers.
package buffer

import (
	"fmt"
	"io"
)

// Writer is an interface for writers that expose their internal buffers.
// It is implemented by bufio.Writer and by Buffer.
type Writer interface {
	io.Writer
	Flush() (err error)
	AvailableBuffer() []byte
	Available() int
}

// Reader is an interface for readers that expose their internal buffers.
// It is implemented by bufio.Reader and by Buffer.
type Reader interface {
	io.Reader
	Size() int
	Peek(n int) ([]byte, error)
	Discard(n int) (discarded int, err error)
}

// Buffer is a fixed size []byte-based Writer and Reader.
// Writes beyond its capacity fail instead of growing it.
type Buffer struct {
	buf []byte
	n   int
	off int
}

// NewBuffer creates a new Buffer backed by buf. Writes start at buf[0] and overwrite it.
func NewBuffer(buf []byte) *Buffer {
	return &Buffer{buf: buf}
}

// NewBufferSize creates a new Buffer of the given size.
func NewBufferSize(size int) *Buffer {
	return &Buffer{buf: make([]byte, size)}
}

// Write writes p into b. It returns an error if p does not fit in the remaining capacity.
func (b *Buffer) Write(p []byte) (n int, err error) {
	if len(p)+b.n > len(b.buf) {
		return 0, fmt.Errorf("cannot Write: buffer too small: %d bytes available but len(p)=%d", len(b.buf)-b.n, len(p))
	}
	n = copy(b.buf[b.n:], p)
	b.n += n
	return
}

// Flush is a no-op.
func (b *Buffer) Flush() (err error) {
	return nil
}

// AvailableBuffer returns an empty slice with b.Available() capacity, valid until the next write.
func (b *Buffer) AvailableBuffer() []byte {
	return b.buf[b.n:][:0]
}

// Available returns the number of bytes that can still be written.
func (b *Buffer) Available() int {
	return len(b.buf) - b.n
}

// Bytes returns the backing slice.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Reset resets the read and write offsets of b.
func (b *Buffer) Reset() {
	b.n = 0
	b.off = 0
}

// Read reads len(p) bytes into p and returns io.EOF if fewer were left.
func (b *Buffer) Read(p []byte) (n int, err error) {
	n = copy(p, b.buf[b.off:])
	b.off += n
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Size returns the number of bytes left to read.
func (b *Buffer) Size() int {
	return len(b.buf) - b.off
}

// Peek returns the next n bytes without advancing the read offset.
func (b *Buffer) Peek(n int) ([]byte, error) {
	if b.off+n > len(b.buf) {
		return b.buf[b.off:], io.EOF
	}
	return b.buf[b.off : b.off+n], nil
}

// Discard skips the next n bytes.
func (b *Buffer) Discard(n int) (discarded int, err error) {
	if remain := len(b.buf) - b.off; n > remain {
		b.off = len(b.buf)
		return remain, io.EOF
	}
	b.off += n
	return n, nil
}
