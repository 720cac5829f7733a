package polynomial

// Add returns p + q. The shortest operand is padded with zeros.
// An operand without coefficients is read as [0].
func (p Polynomial) Add(q Polynomial) (r Polynomial) {
	a, b := p.coefficients(), q.coefficients()
	r.Coeffs = make([]float64, max(len(a), len(b)))
	for i, c := range a {
		r.Coeffs[i] += c
	}
	for i, c := range b {
		r.Coeffs[i] += c
	}
	return
}

// Sub returns p - q. The shortest operand is padded with zeros.
// An operand without coefficients is read as [0].
func (p Polynomial) Sub(q Polynomial) (r Polynomial) {
	a, b := p.coefficients(), q.coefficients()
	r.Coeffs = make([]float64, max(len(a), len(b)))
	for i, c := range a {
		r.Coeffs[i] += c
	}
	for i, c := range b {
		r.Coeffs[i] -= c
	}
	return
}

// MulScalar returns s * p.
func (p Polynomial) MulScalar(s float64) (r Polynomial) {
	a := p.coefficients()
	r.Coeffs = make([]float64, len(a))
	for i, c := range a {
		r.Coeffs[i] = c * s
	}
	return
}

// Mul returns p * q, on len(p) + len(q) - 1 coefficients.
// Multiplying by a zero polynomial returns a zero polynomial of that same length.
// An operand without coefficients is read as [0].
func (p Polynomial) Mul(q Polynomial) (r Polynomial) {

	a, b := p.coefficients(), q.coefficients()

	r.Coeffs = make([]float64, len(a)+len(b)-1)
	for i, ai := range a {
		for j, bj := range b {
			r.Coeffs[i+j] += ai * bj
		}
	}

	return
}

// coefficients returns p.Coeffs, or [0] for the zero value Polynomial{}.
func (p Polynomial) coefficients() []float64 {
	if len(p.Coeffs) == 0 {
		return []float64{0}
	}
	return p.Coeffs
}

// Antiderivative returns the primitive of p with a null constant term:
// coefficient k of the result is c[k-1]/k.
func (p Polynomial) Antiderivative() (r Polynomial) {
	r.Coeffs = make([]float64, len(p.Coeffs)+1)
	for k := 1; k < len(r.Coeffs); k++ {
		r.Coeffs[k] = p.Coeffs[k-1] / float64(k)
	}
	return
}

// Derivative returns dp/dx. The derivative of a constant is [0].
func (p Polynomial) Derivative() (r Polynomial) {

	if len(p.Coeffs) < 2 {
		return NewPolynomial()
	}

	r.Coeffs = make([]float64, len(p.Coeffs)-1)
	for k := range r.Coeffs {
		r.Coeffs[k] = float64(k+1) * p.Coeffs[k+1]
	}

	return
}

// Integrate returns the integral of p over [a, b].
func (p Polynomial) Integrate(a, b float64) float64 {
	f := p.Antiderivative()
	return f.Evaluate(b) - f.Evaluate(a)
}

// SubScaledInPlace sets p to p - s * q.
// The coefficients of p are extended with zeros if q is longer.
func (p *Polynomial) SubScaledInPlace(q Polynomial, s float64) {

	if n := len(q.Coeffs); n > len(p.Coeffs) {
		coeffs := make([]float64, n)
		copy(coeffs, p.Coeffs)
		p.Coeffs = coeffs
	}

	for i, c := range q.Coeffs {
		p.Coeffs[i] -= c * s
	}
}

// MulScalarInPlace sets p to s * p.
func (p *Polynomial) MulScalarInPlace(s float64) {
	for i := range p.Coeffs {
		p.Coeffs[i] *= s
	}
}
