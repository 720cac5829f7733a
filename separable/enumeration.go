package separable

import (
	"fmt"

	"github.com/tuneinsight/orthopoly/orthogonal"
)

// Count returns the number of multi-indices of dimension dims and total degree at most degree,
// that is binomial(degree+dims, dims).
func Count(dims, degree int) (n int) {

	if dims < 0 || degree < 0 {
		return 0
	}

	n = 1
	for k := 1; k <= dims; k++ {
		n = n * (degree + k) / k
	}

	return
}

// Enumerate returns all multi-indices of dimension dims and total degree at most degree.
// They are ordered as nested loops over the coordinates, the first coordinate varying
// the slowest, each coordinate ranging over the degree left by the previous ones.
func Enumerate(dims, degree int) (indices []MultiIndex) {

	if dims < 1 || degree < 0 {
		return nil
	}

	indices = make([]MultiIndex, 0, Count(dims, degree))

	var walk func(prefix MultiIndex, left int)
	walk = func(prefix MultiIndex, left int) {

		if len(prefix) == dims {
			m := make(MultiIndex, dims)
			copy(m, prefix)
			indices = append(indices, m)
			return
		}

		for v := 0; v <= left; v++ {
			walk(append(prefix, v), left-v)
		}
	}

	walk(make(MultiIndex, 0, dims), degree)

	return
}

// At returns Enumerate(dims, degree)[i] without enumerating.
func At(i, dims, degree int) (m MultiIndex, err error) {

	if dims < 1 || i < 0 || i >= Count(dims, degree) {
		return nil, fmt.Errorf("cannot At: %w: rank %d not in [0, %d)", orthogonal.ErrOutOfRange, i, Count(dims, degree))
	}

	m = make(MultiIndex, dims)
	left := degree
	for d := range m {
		v := 0
		for {
			block := Count(dims-d-1, left-v)
			if i < block {
				break
			}
			i -= block
			v++
		}
		m[d] = v
		left -= v
	}

	return
}

// IndexOf returns the rank of m in Enumerate(len(m), degree).
func IndexOf(m MultiIndex, degree int) (i int, err error) {

	if len(m) == 0 {
		return 0, fmt.Errorf("cannot IndexOf: %w: empty multi-index", orthogonal.ErrInvalidArgument)
	}

	left := degree
	for d, md := range m {

		if md < 0 || md > left {
			return 0, fmt.Errorf("cannot IndexOf: %w: %v is not a multi-index of total degree at most %d", orthogonal.ErrOutOfRange, m, degree)
		}

		for v := 0; v < md; v++ {
			i += Count(len(m)-d-1, left-v)
		}

		left -= md
	}

	return
}
