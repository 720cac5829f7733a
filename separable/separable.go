// Package separable implements multi-dimensional basis functions built as products
// of one-dimensional basis polynomials, phi_m(x) = prod_d basis[m[d]](x[d]).
// The tensor product is never materialized: each evaluation costs one
// polynomial evaluation per dimension.
package separable

import (
	"fmt"
	"math"

	"github.com/tuneinsight/orthopoly/orthogonal"
)

// MultiIndex selects one element of the one-dimensional basis per dimension.
type MultiIndex []int

// Validate returns an error wrapping orthogonal.ErrOutOfRange if one of the
// indices does not address an element of a basis of the given size.
func (m MultiIndex) Validate(size int) error {
	for d, i := range m {
		if i < 0 || i >= size {
			return fmt.Errorf("%w: index[%d]=%d not in [0, %d]", orthogonal.ErrOutOfRange, d, i, size-1)
		}
	}
	return nil
}

// Degree returns the total degree sum_d m[d] of the basis function selected by m
// when the basis is ordered by increasing degree.
func (m MultiIndex) Degree() (degree int) {
	for _, i := range m {
		degree += i
	}
	return
}

// Evaluate returns prod_d basis[index[d]](point[d]).
// It returns an error wrapping orthogonal.ErrInvalidArgument if index and point
// have different lengths, and orthogonal.ErrOutOfRange if an index is not in the basis.
func Evaluate(basis orthogonal.Basis, index MultiIndex, point []float64) (y float64, err error) {

	if len(index) != len(point) {
		return 0, fmt.Errorf("cannot Evaluate: %w: len(index)=%d != len(point)=%d", orthogonal.ErrInvalidArgument, len(index), len(point))
	}

	if err = index.Validate(len(basis)); err != nil {
		return 0, fmt.Errorf("cannot Evaluate: %w", err)
	}

	return evaluate(basis, index, point), nil
}

// EvaluatePoints returns the values of the basis function selected by index on each point.
func EvaluatePoints(basis orthogonal.Basis, index MultiIndex, points [][]float64) (y []float64, err error) {

	if err = index.Validate(len(basis)); err != nil {
		return nil, fmt.Errorf("cannot EvaluatePoints: %w", err)
	}

	y = make([]float64, len(points))
	for i, point := range points {
		if len(point) != len(index) {
			return nil, fmt.Errorf("cannot EvaluatePoints: %w: point %d has dimension %d but index has %d", orthogonal.ErrInvalidArgument, i, len(point), len(index))
		}
		y[i] = evaluate(basis, index, point)
	}

	return
}

func evaluate(basis orthogonal.Basis, index MultiIndex, point []float64) (y float64) {
	y = 1
	for d, i := range index {
		y *= basis[i].Evaluate(point[d])
	}
	return
}

// Gradient returns the partial derivatives of the basis function selected by index at point,
// d/dx_d phi_m(x) = basis[m[d]]'(x[d]) * prod_{e != d} basis[m[e]](x[e]).
// It fails like Evaluate.
func Gradient(basis orthogonal.Basis, index MultiIndex, point []float64) (grad []float64, err error) {

	if len(index) != len(point) {
		return nil, fmt.Errorf("cannot Gradient: %w: len(index)=%d != len(point)=%d", orthogonal.ErrInvalidArgument, len(index), len(point))
	}

	if err = index.Validate(len(basis)); err != nil {
		return nil, fmt.Errorf("cannot Gradient: %w", err)
	}

	values := make([]float64, len(index))
	for d, i := range index {
		values[d] = basis[i].Evaluate(point[d])
	}

	grad = make([]float64, len(index))
	for d, i := range index {
		grad[d] = basis[i].Derivative().Evaluate(point[d])
		for e := range values {
			if e != d {
				grad[d] *= values[e]
			}
		}
	}

	return
}

// PointInnerProduct returns the Monte-Carlo estimate of the inner product over
// [-1, 1]^d of the basis functions selected by a and b, 2^d * mean_p phi_a(p) phi_b(p),
// from points assumed uniformly distributed in the hypercube.
func PointInnerProduct(basis orthogonal.Basis, a, b MultiIndex, points [][]float64) (ip float64, err error) {

	if len(points) == 0 {
		return 0, fmt.Errorf("cannot PointInnerProduct: %w: no point", orthogonal.ErrInvalidArgument)
	}

	if len(a) != len(b) {
		return 0, fmt.Errorf("cannot PointInnerProduct: %w: len(a)=%d != len(b)=%d", orthogonal.ErrInvalidArgument, len(a), len(b))
	}

	var ya, yb []float64
	if ya, err = EvaluatePoints(basis, a, points); err != nil {
		return
	}

	if yb, err = EvaluatePoints(basis, b, points); err != nil {
		return
	}

	for i := range ya {
		ip += ya[i] * yb[i]
	}

	return math.Ldexp(ip/float64(len(points)), len(a)), nil
}
