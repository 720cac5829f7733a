package polynomial

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tuneinsight/orthopoly/utils/buffer"
)

// BinarySize returns the serialized size of the polynomial in bytes.
func (p Polynomial) BinarySize() int {
	return 8 + 8*len(p.Coeffs)
}

// WriteTo writes the number of coefficients of the polynomial followed by the
// IEEE 754 bits of each coefficient, all as little-endian uint64, on w.
// It implements the io.WriterTo interface and writes exactly p.BinarySize() bytes.
//
// Unless w implements the buffer.Writer interface, it is wrapped into a bufio.Writer.
func (p Polynomial) WriteTo(w io.Writer) (n int64, err error) {

	switch w := w.(type) {
	case buffer.Writer:

		var inc int64
		if inc, err = buffer.WriteUint64(w, uint64(len(p.Coeffs))); err != nil {
			return inc, fmt.Errorf("buffer.WriteUint64: %w", err)
		}

		n += inc

		if inc, err = buffer.WriteFloat64Slice(w, p.Coeffs); err != nil {
			return n + inc, fmt.Errorf("buffer.WriteFloat64Slice: %w", err)
		}

		return n + inc, nil

	default:
		bw := bufio.NewWriter(w)
		if n, err = p.WriteTo(bw); err != nil {
			return
		}
		return n, bw.Flush()
	}
}

// ReadFrom reads a polynomial written by WriteTo from r.
// It implements the io.ReaderFrom interface.
//
// Unless r implements the buffer.Reader interface, it is wrapped into a bufio.Reader.
func (p *Polynomial) ReadFrom(r io.Reader) (n int64, err error) {

	switch r := r.(type) {
	case buffer.Reader:

		var size uint64
		if n, err = buffer.ReadUint64(r, &size); err != nil {
			return n, fmt.Errorf("buffer.ReadUint64: %w", err)
		}

		if size == 0 {
			return n, fmt.Errorf("cannot ReadFrom: polynomial has no coefficient")
		}

		if b, ok := r.(*buffer.Buffer); ok && size > uint64(b.Size())>>3 {
			return n, fmt.Errorf("cannot ReadFrom: %d coefficients announced but only %d bytes left", size, b.Size())
		}

		coeffs := make([]float64, size)

		var inc int64
		if inc, err = buffer.ReadFloat64Slice(r, coeffs); err != nil {
			return n + inc, fmt.Errorf("buffer.ReadFloat64Slice: %w", err)
		}

		p.Coeffs = coeffs

		return n + inc, nil

	default:
		return p.ReadFrom(bufio.NewReader(r))
	}
}

// MarshalBinary encodes the polynomial on a slice of bytes, see WriteTo.
func (p Polynomial) MarshalBinary() (data []byte, err error) {
	buf := buffer.NewBufferSize(p.BinarySize())
	_, err = p.WriteTo(buf)
	return buf.Bytes(), err
}

// UnmarshalBinary decodes a slice of bytes generated by MarshalBinary on the object.
func (p *Polynomial) UnmarshalBinary(data []byte) (err error) {

	if len(data) < 8 {
		return fmt.Errorf("cannot UnmarshalBinary: len(data)=%d < 8", len(data))
	}

	var n int64
	if n, err = p.ReadFrom(buffer.NewBuffer(data)); err != nil {
		return fmt.Errorf("cannot UnmarshalBinary: %w", err)
	}

	if n != int64(len(data)) {
		return fmt.Errorf("cannot UnmarshalBinary: %d bytes decoded but len(data)=%d", n, len(data))
	}

	return
}
