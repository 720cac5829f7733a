package polynomial

import (
	"bytes"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
	"github.com/tuneinsight/orthopoly/utils/sampling"
	"gonum.org/v1/gonum/integrate/quad"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func randomPolynomial(t *testing.T, prng sampling.PRNG, n int) Polynomial {
	coeffs := make([]float64, n)
	require.NoError(t, sampling.Float64Slice(prng, -2, 2, coeffs))
	return NewPolynomial(coeffs...)
}

func TestPolynomial(t *testing.T) {

	prng, err := sampling.NewKeyedPRNG([]byte{'p', 'o', 'l', 'y'})
	require.NoError(t, err)

	t.Run("NewPolynomial", func(t *testing.T) {
		require.Equal(t, []float64{0}, NewPolynomial().Coeffs)

		coeffs := []float64{1, 2, 3}
		p := NewPolynomial(coeffs...)
		coeffs[0] = 42
		require.Equal(t, []float64{1, 2, 3}, p.Coeffs)
		require.Equal(t, 3, p.Len())
		require.Equal(t, 2, p.Degree())

		require.Equal(t, []float64{0, 0, 0, 1}, Monomial(3).Coeffs)
		require.Panics(t, func() { Monomial(-1) })
	})

	t.Run("Evaluate", func(t *testing.T) {
		p := randomPolynomial(t, prng, 7)
		for _, x := range []float64{-1, -0.3, 0, 0.5, 1} {
			var want float64
			for k, c := range p.Coeffs {
				want += c * math.Pow(x, float64(k))
			}
			require.InDelta(t, want, p.Evaluate(x), 1e-12)
		}

		x := []float64{-1, 0, 1}
		require.Equal(t, []float64{p.Evaluate(-1), p.Evaluate(0), p.Evaluate(1)}, p.EvaluateSlice(x))
		require.Panics(t, func() { p.EvaluateSliceTo(x, make([]float64, 2)) })
	})

	t.Run("Lut", func(t *testing.T) {
		p := NewPolynomial(1, 0, 1)
		require.Equal(t, []float64{2, 1.25, 1, 1.25, 2}, p.Lut(-1, 1, 5))
		require.Panics(t, func() { p.Lut(-1, 1, 1) })
	})

	t.Run("Add/Associativity", func(t *testing.T) {
		p := randomPolynomial(t, prng, 3)
		q := randomPolynomial(t, prng, 6)
		r := randomPolynomial(t, prng, 4)

		left := p.Add(q).Add(r)
		right := p.Add(q.Add(r))

		require.Equal(t, 6, left.Len())
		require.True(t, cmp.Equal(left.Coeffs, right.Coeffs, approx))
	})

	t.Run("Sub", func(t *testing.T) {
		p := NewPolynomial(1, 2)
		q := NewPolynomial(0, 1, 3)
		require.Equal(t, []float64{1, 1, -3}, p.Sub(q).Coeffs)
		require.Equal(t, []float64{0, 0}, p.Sub(p).Coeffs)
	})

	t.Run("MulScalar", func(t *testing.T) {
		p := NewPolynomial(1, -2, 0.5)
		require.Equal(t, []float64{2, -4, 1}, p.MulScalar(2).Coeffs)
		require.Equal(t, []float64{1, -2, 0.5}, p.Coeffs)
	})

	t.Run("Mul", func(t *testing.T) {
		p := randomPolynomial(t, prng, 4)
		q := randomPolynomial(t, prng, 3)
		r := p.Mul(q)

		require.Equal(t, p.Len()+q.Len()-1, r.Len())
		require.Equal(t, p.Coeffs[0]*q.Coeffs[0], r.Coeffs[0])

		for _, x := range []float64{-1, -0.25, 0.75, 1} {
			require.InDelta(t, p.Evaluate(x)*q.Evaluate(x), r.Evaluate(x), 1e-12)
		}

		// (1 + x)(1 - x) = 1 - x^2
		require.Equal(t, []float64{1, 0, -1}, NewPolynomial(1, 1).Mul(NewPolynomial(1, -1)).Coeffs)
	})

	t.Run("Mul/Zero", func(t *testing.T) {
		p := randomPolynomial(t, prng, 4)
		require.Equal(t, []float64{0, 0, 0, 0}, p.Mul(NewPolynomial()).Coeffs)
		require.Equal(t, []float64{0, 0, 0, 0, 0}, p.Mul(NewPolynomial(0, 0)).Coeffs)
	})

	t.Run("ZeroValue", func(t *testing.T) {
		var zero Polynomial
		p := NewPolynomial(1, 2)

		require.Equal(t, []float64{0, 0}, zero.Mul(p).Coeffs)
		require.Equal(t, []float64{0, 0}, p.Mul(zero).Coeffs)
		require.Equal(t, []float64{0}, zero.Mul(zero).Coeffs)
		require.Equal(t, []float64{1, 2}, zero.Add(p).Coeffs)
		require.Equal(t, []float64{-1, -2}, zero.Sub(p).Coeffs)
		require.Equal(t, []float64{1, 2}, p.Sub(zero).Coeffs)
		require.Equal(t, []float64{0}, zero.Add(zero).Coeffs)
		require.Equal(t, []float64{0}, zero.MulScalar(3).Coeffs)
		require.Equal(t, 0.0, zero.Integrate(-1, 1))
	})

	t.Run("Antiderivative", func(t *testing.T) {
		p := NewPolynomial(3, 2, 3)
		require.Equal(t, []float64{0, 3, 1, 1}, p.Antiderivative().Coeffs)
	})

	t.Run("Antiderivative/FundamentalTheorem", func(t *testing.T) {
		p := randomPolynomial(t, prng, 9)
		f := p.Antiderivative()

		for _, ab := range [][2]float64{{-1, 1}, {-0.5, 0.75}, {0.1, 0.2}, {1, -1}} {
			a, b := ab[0], ab[1]
			// 5 Gauss-Legendre nodes integrate the degree 8 integrand exactly.
			want := quad.Fixed(p.Evaluate, math.Min(a, b), math.Max(a, b), 5, quad.Legendre{}, 0)
			if a > b {
				want = -want
			}
			require.InDelta(t, want, f.Evaluate(b)-f.Evaluate(a), 1e-13)
			require.Equal(t, f.Evaluate(b)-f.Evaluate(a), p.Integrate(a, b))
		}
	})

	t.Run("Derivative", func(t *testing.T) {
		p := NewPolynomial(5, 3, 2, 1)
		require.Equal(t, []float64{3, 4, 3}, p.Derivative().Coeffs)
		require.Equal(t, []float64{0}, NewPolynomial(7).Derivative().Coeffs)

		q := randomPolynomial(t, prng, 6)
		require.True(t, cmp.Equal(q.Coeffs, q.Antiderivative().Derivative().Coeffs, approx))
	})

	t.Run("InPlace", func(t *testing.T) {
		p := randomPolynomial(t, prng, 3)
		q := randomPolynomial(t, prng, 5)
		s := 0.625

		want := p.Sub(q.MulScalar(s))

		r := p.Clone()
		r.SubScaledInPlace(q, s)
		require.Equal(t, want.Coeffs, r.Coeffs)

		r.MulScalarInPlace(2)
		require.Equal(t, want.MulScalar(2).Coeffs, r.Coeffs)
	})

	t.Run("Equal", func(t *testing.T) {
		p := NewPolynomial(1, 2)
		require.True(t, p.Equal(p.Clone()))
		require.False(t, p.Equal(NewPolynomial(1, 2, 0)))
	})

	t.Run("String", func(t *testing.T) {
		require.Equal(t, "1 + -2x^2 + 0.5x^3", NewPolynomial(1, 0, -2, 0.5).String())
		require.Equal(t, "3x", NewPolynomial(0, 3).String())
		require.Equal(t, "0", NewPolynomial(0, 0).String())
	})

	t.Run("Marshaller", func(t *testing.T) {
		p := randomPolynomial(t, prng, 5)
		data, err := p.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, data, p.BinarySize())

		var q Polynomial
		require.NoError(t, q.UnmarshalBinary(data))
		require.True(t, p.Equal(q))

		require.Error(t, q.UnmarshalBinary(data[:7]))
		require.Error(t, q.UnmarshalBinary(data[:len(data)-3]))
		require.Error(t, q.UnmarshalBinary(make([]byte, 8)))
	})

	t.Run("WriteTo/ReadFrom", func(t *testing.T) {
		// longer than the default bufio buffer
		p := randomPolynomial(t, prng, 1500)

		var stream bytes.Buffer
		n, err := p.WriteTo(&stream)
		require.NoError(t, err)
		require.Equal(t, int64(p.BinarySize()), n)

		data, err := p.MarshalBinary()
		require.NoError(t, err)
		require.Equal(t, data, stream.Bytes())

		var q Polynomial
		n, err = q.ReadFrom(&stream)
		require.NoError(t, err)
		require.Equal(t, int64(p.BinarySize()), n)
		require.True(t, p.Equal(q))

		_, err = q.ReadFrom(bytes.NewReader(data[:len(data)-8]))
		require.Error(t, err)
	})
}
