package orthogonal

import (
	"bufio"
	"fmt"
	"math"
	"strings"

	"github.com/tuneinsight/orthopoly/polynomial"
	"github.com/zeebo/blake3"
	"gonum.org/v1/gonum/mat"
)

// Basis is an ordered set of polynomials, either a seed to orthogonalize
// or the orthonormal result of GramSchmidt.
type Basis []polynomial.Polynomial

// NewMonomialBasis returns the seed {x^0, x^1, ..., x^(n-1)}.
func NewMonomialBasis(n int) (basis Basis) {

	if n < 0 {
		panic(fmt.Errorf("cannot NewMonomialBasis: n=%d < 0", n))
	}

	basis = make(Basis, n)
	for i := range basis {
		basis[i] = polynomial.Monomial(i)
	}

	return
}

// NewOrthonormalBasis returns the n first elements of the basis obtained by
// orthonormalizing the monomials under ip.
func NewOrthonormalBasis(n int, ip InnerProduct) (basis Basis, err error) {
	basis = NewMonomialBasis(n)
	if err = GramSchmidt(basis, ip); err != nil {
		return nil, err
	}
	return
}

// Clone returns a deep copy of the basis.
func (b Basis) Clone() (clone Basis) {
	clone = make(Basis, len(b))
	for i := range b {
		clone[i] = b[i].Clone()
	}
	return
}

// Coefficients returns the coefficients of each element of the basis.
func (b Basis) Coefficients() (coeffs [][]float64) {
	coeffs = make([][]float64, len(b))
	for i := range b {
		coeffs[i] = b[i].Clone().Coeffs
	}
	return
}

// GramMatrix returns the symmetric matrix G_ij = <b_i, b_j> under ip.
func (b Basis) GramMatrix(ip InnerProduct) (g *mat.SymDense, err error) {

	if len(b) == 0 {
		return nil, fmt.Errorf("cannot GramMatrix: %w: empty basis", ErrInvalidArgument)
	}

	if err = ip.Validate(); err != nil {
		return nil, fmt.Errorf("cannot GramMatrix: %w", err)
	}

	g = mat.NewSymDense(len(b), nil)
	for i := range b {
		for j := i; j < len(b); j++ {
			var v float64
			if v, err = ip.InnerProduct(b[i], b[j]); err != nil {
				return nil, fmt.Errorf("cannot GramMatrix: %w", err)
			}
			g.SetSym(i, j, v)
		}
	}

	return
}

// Deviation returns sum_ij |delta_ij - <b_i, b_j>|, the distance of the basis to
// orthonormality under ip, where delta_ij is 1 if i == j and 0 otherwise.
func (b Basis) Deviation(ip InnerProduct) (dev float64, err error) {

	var g *mat.SymDense
	if g, err = b.GramMatrix(ip); err != nil {
		return
	}

	for i := range b {
		for j := range b {
			target := 0.0
			if i == j {
				target = 1
			}
			dev += math.Abs(target - g.At(i, j))
		}
	}

	return
}

// Condition returns the 2-norm condition number of the Gram matrix of the basis under ip.
// It is 1 for an orthonormal basis and grows as elements become linearly dependent.
func (b Basis) Condition(ip InnerProduct) (float64, error) {
	g, err := b.GramMatrix(ip)
	if err != nil {
		return 0, err
	}
	return mat.Cond(g, 2), nil
}

// Lut returns, for each element of the basis, its values on n evenly
// spaced points of [-1, 1], both ends included.
func (b Basis) Lut(n int) (luts [][]float64) {
	luts = make([][]float64, len(b))
	for i := range b {
		luts[i] = b[i].Lut(-1, 1, n)
	}
	return
}

// Digest returns the blake3 hash of the binary encoding of the basis. Two bases
// have the same digest only if all their coefficients are bitwise identical.
func (b Basis) Digest() (digest [32]byte, err error) {

	h := blake3.New()
	w := bufio.NewWriter(h)

	for i := range b {
		if _, err = b[i].WriteTo(w); err != nil {
			return digest, fmt.Errorf("polynomial.WriteTo: %w", err)
		}
	}

	if err = w.Flush(); err != nil {
		return
	}

	copy(digest[:], h.Sum(nil))

	return
}

func (b Basis) String() string {
	s := make([]string, len(b))
	for i := range b {
		s[i] = b[i].String()
	}
	return "[" + strings.Join(s, ",\n") + "]"
}
