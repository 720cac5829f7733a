// Package polynomial implements dense univariate polynomials with real coefficients in the monomial basis.
package polynomial

import (
	"fmt"
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Polynomial is a dense univariate polynomial with real coefficients.
// Coeffs[k] is the coefficient of x^k. The coefficient slice is never empty
// and trailing zeros are kept: the length of a product or a sum is a function
// of the lengths of the operands only.
type Polynomial struct {
	Coeffs []float64
}

// NewPolynomial creates a new polynomial from a copy of the given coefficients,
// ordered by increasing power. Without coefficients, the zero polynomial [0] is returned.
func NewPolynomial(coeffs ...float64) Polynomial {
	if len(coeffs) == 0 {
		return Polynomial{Coeffs: []float64{0}}
	}

	c := make([]float64, len(coeffs))
	copy(c, coeffs)

	return Polynomial{Coeffs: c}
}

// Monomial returns x^k, stored on k+1 coefficients.
func Monomial(k int) Polynomial {

	if k < 0 {
		panic(fmt.Errorf("cannot Monomial: k=%d < 0", k))
	}

	c := make([]float64, k+1)
	c[k] = 1

	return Polynomial{Coeffs: c}
}

// Len returns the number of coefficients of the polynomial,
// which can be larger than its reduced degree plus one.
func (p Polynomial) Len() int {
	return len(p.Coeffs)
}

// Degree returns the degree of the polynomial, counting trailing zeros.
func (p Polynomial) Degree() int {
	return len(p.Coeffs) - 1
}

// Clone returns a deep copy of the polynomial.
func (p Polynomial) Clone() Polynomial {
	return NewPolynomial(p.Coeffs...)
}

// Equal returns true if both polynomials have the same coefficients,
// including trailing zeros.
func (p Polynomial) Equal(other Polynomial) bool {
	return cmp.Equal(p.Coeffs, other.Coeffs)
}

// Evaluate returns p(x) using Horner's scheme.
func (p Polynomial) Evaluate(x float64) (y float64) {
	coeffs := p.Coeffs
	n := len(coeffs)

	if n == 0 {
		return
	}

	y = coeffs[n-1]
	for i := n - 2; i >= 0; i-- {
		y = y*x + coeffs[i]
	}

	return
}

// EvaluateSlice returns a new slice y with y[i] = p(x[i]).
func (p Polynomial) EvaluateSlice(x []float64) (y []float64) {
	y = make([]float64, len(x))
	p.EvaluateSliceTo(x, y)
	return
}

// EvaluateSliceTo writes p(x[i]) on y[i].
func (p Polynomial) EvaluateSliceTo(x, y []float64) {

	if len(x) != len(y) {
		panic(fmt.Errorf("cannot EvaluateSliceTo: len(x)=%d != len(y)=%d", len(x), len(y)))
	}

	for i := range x {
		y[i] = p.Evaluate(x[i])
	}
}

// Lut returns the values of p on n evenly spaced points of [a, b], both ends included.
func (p Polynomial) Lut(a, b float64, n int) (lut []float64) {

	if n < 2 {
		panic(fmt.Errorf("cannot Lut: n=%d < 2", n))
	}

	lut = make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range lut {
		lut[i] = p.Evaluate(a + float64(i)*step)
	}

	return
}

// String returns a human readable representation of p, skipping null terms.
func (p Polynomial) String() string {

	var terms []string
	for i, c := range p.Coeffs {
		if c == 0 {
			continue
		}

		switch i {
		case 0:
			terms = append(terms, fmt.Sprintf("%g", c))
		case 1:
			terms = append(terms, fmt.Sprintf("%gx", c))
		default:
			terms = append(terms, fmt.Sprintf("%gx^%d", c, i))
		}
	}

	if len(terms) == 0 {
		return "0"
	}

	return strings.Join(terms, " + ")
}
