package orthogonal

import (
	"fmt"
	"math"

	"github.com/tuneinsight/orthopoly/polynomial"
)

// Legendre returns sqrt((2n+1)/2) * P_n, the n-th Legendre polynomial normalized
// for the inner product over [-1, 1]. P_n is computed with Bonnet's recursion
// (k+1) P_{k+1} = (2k+1) x P_k - k P_{k-1}.
func Legendre(n int) polynomial.Polynomial {

	if n < 0 {
		panic(fmt.Errorf("cannot Legendre: n=%d < 0", n))
	}

	x := polynomial.NewPolynomial(0, 1)

	prev := polynomial.NewPolynomial(1)
	curr := x.Clone()

	if n == 0 {
		curr = prev
	}

	for k := 1; k < n; k++ {
		fk := float64(k)
		next := x.Mul(curr).MulScalar(2*fk + 1).Sub(prev.MulScalar(fk)).MulScalar(1 / (fk + 1))
		prev, curr = curr, next
	}

	return curr.MulScalar(math.Sqrt((2*float64(n) + 1) / 2))
}

// NewLegendreBasis returns the n first normalized Legendre polynomials.
func NewLegendreBasis(n int) (basis Basis) {
	basis = make(Basis, n)
	for i := range basis {
		basis[i] = Legendre(i)
	}
	return
}
