package buffer

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// WriteUint64 writes c to w as 8 little-endian bytes.
func WriteUint64(w Writer, c uint64) (n int64, err error) {

	if w.Available() < 8 {
		if err = w.Flush(); err != nil {
			return
		}

		if w.Available() < 8 {
			return 0, fmt.Errorf("cannot WriteUint64: available buffer is smaller than 8 bytes even after flush")
		}
	}

	buf := w.AvailableBuffer()[:8]

	binary.LittleEndian.PutUint64(buf, c)

	nint, err := w.Write(buf)

	return int64(nint), err
}

// WriteFloat64Slice writes the IEEE 754 bits of each element of c to w as 8 little-endian bytes.
func WriteFloat64Slice(w Writer, c []float64) (n int64, err error) {

	if len(c) == 0 {
		return
	}

	// Remaining available space in the internal buffer
	available := w.Available() >> 3

	if available == 0 {
		if err = w.Flush(); err != nil {
			return
		}

		if available = w.Available() >> 3; available == 0 {
			return 0, fmt.Errorf("cannot WriteFloat64Slice: available buffer/8 is zero even after flush")
		}
	}

	N := len(c)
	if N > available {
		N = available
	}

	buf := w.AvailableBuffer()[:N<<3]
	for i := 0; i < N; i++ {
		binary.LittleEndian.PutUint64(buf[i<<3:], math.Float64bits(c[i]))
	}

	nint, err := w.Write(buf)
	if n = int64(nint); err != nil || N == len(c) {
		return
	}

	if err = w.Flush(); err != nil {
		return
	}

	// Then recurses on itself with the remaining slice
	var inc int64
	inc, err = WriteFloat64Slice(w, c[N:])

	return n + inc, err
}

// ReadUint64 reads 8 little-endian bytes from r into c.
func ReadUint64(r Reader, c *uint64) (n int64, err error) {

	if c == nil {
		return 0, fmt.Errorf("cannot ReadUint64: c is nil")
	}

	var bb [8]byte

	nint, err := io.ReadFull(r, bb[:])
	if n = int64(nint); err != nil {
		return n, fmt.Errorf("cannot ReadUint64: %w", err)
	}

	*c = binary.LittleEndian.Uint64(bb[:])

	return
}

// ReadFloat64Slice reads len(c) values written by WriteFloat64Slice from r into c.
func ReadFloat64Slice(r Reader, c []float64) (n int64, err error) {

	if len(c) == 0 {
		return
	}

	size := r.Size()
	if len(c)<<3 < size {
		size = len(c) << 3
	}

	if size < 8 {
		return 0, fmt.Errorf("cannot ReadFloat64Slice: %w", io.ErrUnexpectedEOF)
	}

	var slice []byte
	if slice, err = r.Peek(size); err != nil && len(slice) < 8 {
		return 0, fmt.Errorf("cannot ReadFloat64Slice: %w", err)
	}

	buffered := len(slice) >> 3
	if buffered > len(c) {
		buffered = len(c)
	}

	for i, j := 0, 0; i < buffered; i, j = i+1, j+8 {
		c[i] = math.Float64frombits(binary.LittleEndian.Uint64(slice[j:]))
	}

	// Discards what was read
	var inc int
	if inc, err = r.Discard(buffered << 3); err != nil {
		return int64(inc), fmt.Errorf("cannot ReadFloat64Slice: %w", err)
	}

	n = int64(inc)

	if buffered == len(c) {
		return
	}

	// Recurses on the remaining slice to fill
	var inc64 int64
	inc64, err = ReadFloat64Slice(r, c[buffered:])

	return n + inc64, err
}
