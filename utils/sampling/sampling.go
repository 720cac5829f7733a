// Package sampling implements reproducible sampling of real numbers and points from a stream of random bytes.
package sampling

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Float64 reads 8 bytes from r and maps them to a float in [min, max).
func Float64(r io.Reader, min, max float64) (f float64, err error) {
	b := []byte{0, 0, 0, 0, 0, 0, 0, 0}
	if _, err = io.ReadFull(r, b); err != nil {
		return 0, fmt.Errorf("io.ReadFull: %w", err)
	}
	// 53 random bits keep every value exactly representable and below 1.
	u := float64(binary.LittleEndian.Uint64(b)>>11) / (1 << 53)
	return min + u*(max-min), nil
}

// Float64Slice fills v with floats in [min, max) read from r.
func Float64Slice(r io.Reader, min, max float64, v []float64) (err error) {
	for i := range v {
		if v[i], err = Float64(r, min, max); err != nil {
			return
		}
	}
	return
}

// Points returns n points of dimension dims, drawn uniformly from the hypercube [min, max)^dims.
func Points(r io.Reader, n, dims int, min, max float64) (points [][]float64, err error) {

	if n < 0 || dims < 1 {
		return nil, fmt.Errorf("cannot Points: invalid shape n=%d, dims=%d", n, dims)
	}

	points = make([][]float64, n)
	for i := range points {
		points[i] = make([]float64, dims)
		if err = Float64Slice(r, min, max, points[i]); err != nil {
			return nil, err
		}
	}

	return
}
