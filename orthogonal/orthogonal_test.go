package orthogonal

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/orthopoly/polynomial"
	"github.com/tuneinsight/orthopoly/utils/sampling"
)

func testString(ip InnerProduct, opname string, n int) string {
	return fmt.Sprintf("%s/%s/N=%d", opname, ip, n)
}

func requireOrthonormal(t *testing.T, basis Basis, ip InnerProduct, delta float64) {
	g, err := basis.GramMatrix(ip)
	require.NoError(t, err)
	for i := range basis {
		for j := range basis {
			want := 0.0
			if i == j {
				want = 1
			}
			require.InDelta(t, want, g.At(i, j), delta, "G[%d][%d]", i, j)
		}
	}
}

func TestInnerProduct(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte("inner product"))
	require.NoError(t, err)

	randomPolynomial := func(n int) polynomial.Polynomial {
		coeffs := make([]float64, n)
		require.NoError(t, sampling.Float64Slice(prng, -1, 1, coeffs))
		return polynomial.NewPolynomial(coeffs...)
	}

	t.Run("Analytic/Monomials", func(t *testing.T) {
		// <x^i, x^j> = 2/(i+j+1) if i+j is even, 0 otherwise.
		for i := 0; i < 5; i++ {
			for j := 0; j < 5; j++ {
				want := 0.0
				if (i+j)&1 == 0 {
					want = 2 / float64(i+j+1)
				}
				ip, err := Analytic{}.InnerProduct(polynomial.Monomial(i), polynomial.Monomial(j))
				require.NoError(t, err)
				require.InDelta(t, want, ip, 1e-15)
			}
		}
	})

	t.Run("Analytic/Symmetric", func(t *testing.T) {
		for i := 0; i < 16; i++ {
			p := randomPolynomial(1 + i%5)
			q := randomPolynomial(1 + (i*7)%6)
			pq, err := Analytic{}.InnerProduct(p, q)
			require.NoError(t, err)
			qp, err := Analytic{}.InnerProduct(q, p)
			require.NoError(t, err)
			require.Equal(t, pq, qp)
		}
	})

	t.Run("ZeroValue", func(t *testing.T) {
		var zero polynomial.Polynomial
		for _, ip := range []InnerProduct{Analytic{}, Quadrature{Samples: 5}, GaussLegendre{Nodes: 3}} {
			v, err := ip.InnerProduct(zero, polynomial.NewPolynomial(1))
			require.NoError(t, err)
			require.Equal(t, 0.0, v)
		}

		g, err := Basis{polynomial.NewPolynomial(1), zero}.GramMatrix(Analytic{})
		require.NoError(t, err)
		require.Equal(t, 2.0, g.At(0, 0))
		require.Equal(t, 0.0, g.At(1, 1))
	})

	t.Run("Quadrature/Rule", func(t *testing.T) {
		// 3 samples: x = {-1, 0, 1}, <1, 1> = 3 * 2/3 and <x, x> = 2 * 2/3.
		qd := Quadrature{Samples: 3}
		require.Equal(t, []float64{-1, 0, 1}, qd.Nodes())

		ip, err := qd.InnerProduct(polynomial.NewPolynomial(1), polynomial.NewPolynomial(1))
		require.NoError(t, err)
		require.InDelta(t, 2.0, ip, 1e-15)

		ip, err = qd.InnerProduct(polynomial.Monomial(1), polynomial.Monomial(1))
		require.NoError(t, err)
		require.InDelta(t, 4.0/3, ip, 1e-15)
	})

	t.Run("Quadrature/Convergence", func(t *testing.T) {
		p := randomPolynomial(4)
		q := randomPolynomial(3)
		want, err := Analytic{}.InnerProduct(p, q)
		require.NoError(t, err)

		coarse, err := Quadrature{Samples: 100}.InnerProduct(p, q)
		require.NoError(t, err)
		fine, err := Quadrature{Samples: 100000}.InnerProduct(p, q)
		require.NoError(t, err)

		require.Less(t, math.Abs(fine-want), math.Abs(coarse-want))
		require.InDelta(t, want, fine, 1e-3)
	})

	t.Run("Quadrature/InvalidArgument", func(t *testing.T) {
		for _, n := range []int{-1, 0, 1} {
			_, err := Quadrature{Samples: n}.InnerProduct(polynomial.NewPolynomial(1), polynomial.NewPolynomial(1))
			require.ErrorIs(t, err, ErrInvalidArgument)
		}
	})

	t.Run("GaussLegendre/Exact", func(t *testing.T) {
		p := randomPolynomial(4)
		q := randomPolynomial(6)
		want, err := Analytic{}.InnerProduct(p, q)
		require.NoError(t, err)
		// deg(p*q) = 8 <= 2*5-1
		have, err := GaussLegendre{Nodes: 5}.InnerProduct(p, q)
		require.NoError(t, err)
		require.InDelta(t, want, have, 1e-13)

		_, err = GaussLegendre{}.InnerProduct(p, q)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestGramSchmidt(t *testing.T) {

	t.Run("Analytic/FirstLegendre", func(t *testing.T) {
		basis := Basis{polynomial.NewPolynomial(1), polynomial.NewPolynomial(0, 1)}
		require.NoError(t, GramSchmidt(basis, Analytic{}))

		require.Len(t, basis[0].Coeffs, 1)
		require.InDelta(t, 1/math.Sqrt2, basis[0].Coeffs[0], 1e-9)

		require.Len(t, basis[1].Coeffs, 2)
		require.InDelta(t, 0, basis[1].Coeffs[0], 1e-9)
		require.InDelta(t, math.Sqrt(1.5), basis[1].Coeffs[1], 1e-9)
	})

	for _, ip := range []InnerProduct{Analytic{}, GaussLegendre{Nodes: 5}} {
		t.Run(testString(ip, "Orthonormal", 5), func(t *testing.T) {
			basis, err := NewOrthonormalBasis(5, ip)
			require.NoError(t, err)
			requireOrthonormal(t, basis, Analytic{}, 1e-9)

			dev, err := basis.Deviation(Analytic{})
			require.NoError(t, err)
			require.Less(t, dev, 1e-9)

			cond, err := basis.Condition(Analytic{})
			require.NoError(t, err)
			require.InDelta(t, 1, cond, 1e-9)
		})
	}

	t.Run(testString(Analytic{}, "ClosedForm", 7), func(t *testing.T) {
		basis, err := NewOrthonormalBasis(7, Analytic{})
		require.NoError(t, err)

		reference := NewLegendreBasis(7)
		for i := range basis {
			require.True(t, cmp.Equal(reference[i].Coeffs, basis[i].Coeffs, cmpopts.EquateApprox(1e-9, 1e-9)), "element %d: %v != %v", i, basis[i], reference[i])
		}
	})

	t.Run(testString(Quadrature{Samples: 1000}, "Orthonormal", 5), func(t *testing.T) {
		qd := Quadrature{Samples: 1000}
		basis, err := NewOrthonormalBasis(5, qd)
		require.NoError(t, err)

		// orthonormal under the rule it was built with
		requireOrthonormal(t, basis, qd, 1e-9)

		// but only approximately under the exact inner product
		dev, err := basis.Deviation(Analytic{})
		require.NoError(t, err)
		require.Greater(t, dev, 1e-6)
		require.Less(t, dev, 1e-1)
	})

	t.Run("Quadrature/InvalidArgument", func(t *testing.T) {
		basis := NewMonomialBasis(5)
		err := GramSchmidt(basis, Quadrature{Samples: 1})
		require.ErrorIs(t, err, ErrInvalidArgument)
		require.False(t, errors.Is(err, ErrDegenerateBasis))

		// untouched
		for i := range basis {
			require.True(t, basis[i].Equal(polynomial.Monomial(i)))
		}
	})

	t.Run("Quadrature/Degenerate", func(t *testing.T) {
		// Two samples cannot tell x^2 apart from 1.
		basis := NewMonomialBasis(3)
		err := GramSchmidt(basis, Quadrature{Samples: 2})
		require.ErrorIs(t, err, ErrDegenerateBasis)

		// the elements before the failing one are finalized
		require.InDelta(t, 1/math.Sqrt2, basis[0].Coeffs[0], 1e-12)
		require.InDelta(t, 1/math.Sqrt2, basis[1].Coeffs[1], 1e-12)
	})

	t.Run("Analytic/LinearlyDependent", func(t *testing.T) {
		basis := Basis{polynomial.NewPolynomial(1), polynomial.NewPolynomial(0, 1), polynomial.NewPolynomial(2, 3)}
		require.ErrorIs(t, GramSchmidt(basis, Analytic{}), ErrDegenerateBasis)

		basis = Basis{polynomial.NewPolynomial(0, 0)}
		require.ErrorIs(t, GramSchmidt(basis, Analytic{}), ErrDegenerateBasis)
	})

	t.Run("Analytic/NearlyDependent", func(t *testing.T) {
		basis := Basis{polynomial.NewPolynomial(1), polynomial.NewPolynomial(1, 1e-7)}
		require.NoError(t, GramSchmidt(basis, Analytic{}))
		require.InDelta(t, 0, basis[1].Coeffs[0], 1e-6)
		require.InDelta(t, math.Sqrt(1.5), basis[1].Coeffs[1], 1e-6)
	})

	for _, n := range []int{2, 3, 4} {
		t.Run(testString(Quadrature{Samples: n}, "Aliased", 5), func(t *testing.T) {
			// n samples cannot tell x^n apart from a polynomial of lower degree.
			require.ErrorIs(t, GramSchmidt(NewMonomialBasis(5), Quadrature{Samples: n}), ErrDegenerateBasis)
		})
	}

	t.Run("SharedCoefficients", func(t *testing.T) {
		x := polynomial.NewPolynomial(0, 1)
		basis := Basis{polynomial.NewPolynomial(1), x, polynomial.NewPolynomial(0, 0, 1)}
		require.NoError(t, GramSchmidt(basis, Analytic{}))
		require.Equal(t, []float64{0, 1}, x.Coeffs)
	})

	t.Run("Empty", func(t *testing.T) {
		require.NoError(t, GramSchmidt(Basis{}, Analytic{}))
		_, err := Basis{}.GramMatrix(Analytic{})
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func TestBasis(t *testing.T) {

	basis, err := NewOrthonormalBasis(4, Analytic{})
	require.NoError(t, err)

	t.Run("Clone", func(t *testing.T) {
		clone := basis.Clone()
		clone[0].Coeffs[0] = 0
		require.NotEqual(t, 0.0, basis[0].Coeffs[0])
	})

	t.Run("Lut", func(t *testing.T) {
		luts := basis.Lut(9)
		require.Len(t, luts, 4)
		for i := range luts {
			require.Len(t, luts[i], 9)
			require.Equal(t, basis[i].Evaluate(-1), luts[i][0])
			require.Equal(t, basis[i].Evaluate(1), luts[i][8])
		}
	})

	t.Run("Digest", func(t *testing.T) {
		d0, err := basis.Digest()
		require.NoError(t, err)

		other, err := NewOrthonormalBasis(4, Analytic{})
		require.NoError(t, err)
		d1, err := other.Digest()
		require.NoError(t, err)
		require.Equal(t, d0, d1)

		other[3].Coeffs[0] += 1e-17
		other[3].Coeffs[1] += 1e-12
		d2, err := other.Digest()
		require.NoError(t, err)
		require.NotEqual(t, d0, d2)
	})

	t.Run("Coefficients", func(t *testing.T) {
		coeffs := basis.Coefficients()
		coeffs[1][1] = 0
		require.NotEqual(t, 0.0, basis[1].Coeffs[1])
	})

	t.Run("Legendre", func(t *testing.T) {
		require.InDelta(t, 1/math.Sqrt2, Legendre(0).Coeffs[0], 1e-15)
		// P_2 = (3x^2 - 1)/2
		p2 := Legendre(2).MulScalar(1 / math.Sqrt(2.5))
		require.True(t, cmp.Equal([]float64{-0.5, 0, 1.5}, p2.Coeffs, cmpopts.EquateApprox(0, 1e-15)))
		require.Panics(t, func() { Legendre(-1) })
	})
}
