// Package orthogonal implements inner products of polynomials over [-1, 1] and
// the Gram-Schmidt construction of orthonormal polynomial bases.
package orthogonal

import (
	"fmt"

	"github.com/tuneinsight/orthopoly/polynomial"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
)

// InnerProduct is an interface for the computation of <p, q>, the integral of p(x)q(x) over [-1, 1].
// The implementations are Analytic, Quadrature and GaussLegendre.
type InnerProduct interface {
	// InnerProduct returns <p, q>.
	InnerProduct(p, q polynomial.Polynomial) (ip float64, err error)

	// Validate returns an error if the inner product cannot be evaluated.
	Validate() (err error)

	fmt.Stringer
}

// Analytic is the exact inner product, obtained by evaluating
// the antiderivative of p*q at both ends of [-1, 1].
type Analytic struct{}

// Validate always returns nil.
func (Analytic) Validate() error {
	return nil
}

// InnerProduct returns F(1) - F(-1) where F is the antiderivative of p*q.
// The result does not depend on the order of the operands, bit for bit.
func (Analytic) InnerProduct(p, q polynomial.Polynomial) (float64, error) {
	if less(q, p) {
		p, q = q, p
	}
	return p.Mul(q).Integrate(-1, 1), nil
}

func (Analytic) String() string {
	return "analytic"
}

// less is a total order on coefficient slices (shortest first, then lexicographic).
func less(p, q polynomial.Polynomial) bool {

	if len(p.Coeffs) != len(q.Coeffs) {
		return len(p.Coeffs) < len(q.Coeffs)
	}

	for i := range p.Coeffs {
		if p.Coeffs[i] != q.Coeffs[i] {
			return p.Coeffs[i] < q.Coeffs[i]
		}
	}

	return false
}

// Quadrature is the discrete inner product on Samples evenly spaced points of [-1, 1],
// both ends included: x_i = 2i/(Samples-1) - 1, and <p, q> = 2/Samples * sum_i p(x_i)q(x_i).
//
// The rule divides by Samples rather than Samples-1 and gives full weight to the end
// points, so it is biased even for constant integrands. The bias vanishes as Samples grows.
type Quadrature struct {
	Samples int
}

// Validate returns ErrInvalidArgument if Samples < 2.
func (qd Quadrature) Validate() error {
	if qd.Samples < 2 {
		return fmt.Errorf("%w: quadrature requires at least 2 samples but has %d", ErrInvalidArgument, qd.Samples)
	}
	return nil
}

// InnerProduct returns 2/Samples * sum_i p(x_i)q(x_i).
func (qd Quadrature) InnerProduct(p, q polynomial.Polynomial) (float64, error) {

	if err := qd.Validate(); err != nil {
		return 0, err
	}

	x := qd.Nodes()

	return floats.Dot(p.EvaluateSlice(x), q.EvaluateSlice(x)) * 2 / float64(qd.Samples), nil
}

// Nodes returns the sampling points of the quadrature.
func (qd Quadrature) Nodes() []float64 {
	return floats.Span(make([]float64, qd.Samples), -1, 1)
}

func (qd Quadrature) String() string {
	return fmt.Sprintf("quadrature(samples=%d)", qd.Samples)
}

// GaussLegendre is the Gauss-Legendre quadrature with Nodes nodes on [-1, 1].
// It is exact for integrands of degree up to 2*Nodes-1.
type GaussLegendre struct {
	Nodes int
}

// Validate returns ErrInvalidArgument if Nodes < 1.
func (gl GaussLegendre) Validate() error {
	if gl.Nodes < 1 {
		return fmt.Errorf("%w: gauss-legendre quadrature requires at least 1 node but has %d", ErrInvalidArgument, gl.Nodes)
	}
	return nil
}

// InnerProduct returns the Gauss-Legendre approximation of the integral of p*q.
func (gl GaussLegendre) InnerProduct(p, q polynomial.Polynomial) (float64, error) {

	if err := gl.Validate(); err != nil {
		return 0, err
	}

	f := func(x float64) float64 {
		return p.Evaluate(x) * q.Evaluate(x)
	}

	return quad.Fixed(f, -1, 1, gl.Nodes, quad.Legendre{}, 0), nil
}

func (gl GaussLegendre) String() string {
	return fmt.Sprintf("gauss-legendre(nodes=%d)", gl.Nodes)
}
