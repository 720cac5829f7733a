package orthogonal

import (
	"fmt"
	"math"
)

// DegeneracyTolerance bounds the relative squared norm an element may keep after
// projection before GramSchmidt reports it as linearly dependent on the previous ones.
// It corresponds to a remainder whose norm is 1e-12 times the original one, a few
// thousand ulps: rounding residues of exactly dependent elements (around 1e-32) fall
// below it, nearly dependent but independent seeds stay above.
const DegeneracyTolerance = 1e-24

// GramSchmidt orthonormalizes basis in place under ip with the Gram-Schmidt process:
// element i is made orthogonal to the already finalized elements 0, ..., i-1, one
// projection at a time on the running remainder, then normalized. Applied to the
// monomials 1, x, ..., x^(n-1) under Analytic, it returns the first n normalized
// Legendre polynomials.
//
// The method returns an error wrapping ErrInvalidArgument, without modifying basis, if ip
// is not valid. It returns an error wrapping ErrDegenerateBasis if the squared norm of an
// element after projection is not finite, not positive or below DegeneracyTolerance times
// its squared norm before projection, so seeds that are dependent up to rounding are refused
// while nearly dependent ones are still orthonormalized. In that case the elements before the
// failing one are orthonormalized and the following ones are left untouched.
func GramSchmidt(basis Basis, ip InnerProduct) (err error) {

	if err = ip.Validate(); err != nil {
		return fmt.Errorf("cannot GramSchmidt: %w", err)
	}

	for i := range basis {

		// The caller might share coefficients between elements.
		basis[i] = basis[i].Clone()

		var before float64
		if before, err = ip.InnerProduct(basis[i], basis[i]); err != nil {
			return fmt.Errorf("cannot GramSchmidt: %w", err)
		}

		for j := 0; j < i; j++ {
			var proj float64
			if proj, err = ip.InnerProduct(basis[j], basis[i]); err != nil {
				return fmt.Errorf("cannot GramSchmidt: %w", err)
			}
			basis[i].SubScaledInPlace(basis[j], proj)
		}

		var norm float64
		if norm, err = ip.InnerProduct(basis[i], basis[i]); err != nil {
			return fmt.Errorf("cannot GramSchmidt: %w", err)
		}

		if isDegenerate(norm, before) {
			return fmt.Errorf("cannot GramSchmidt: element %d has squared norm %g (%g before projection) under %s: %w", i, norm, before, ip, ErrDegenerateBasis)
		}

		basis[i].MulScalarInPlace(1 / math.Sqrt(norm))
	}

	return
}

func isDegenerate(norm, before float64) bool {
	return math.IsNaN(norm) || math.IsInf(norm, 0) || norm <= 0 || norm <= DegeneracyTolerance*before
}
