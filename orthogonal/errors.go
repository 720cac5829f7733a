package orthogonal

import "errors"

// Sentinel errors returned by this package and by the packages built on it
// (separable, convergence). Callers match them with errors.Is; context is
// added by wrapping with fmt.Errorf("...: %w", ErrX).
var (
	// ErrInvalidArgument is returned when an argument cannot be used at all,
	// e.g. a quadrature with less than two samples or mismatched dimensions.
	ErrInvalidArgument = errors.New("orthogonal: invalid argument")

	// ErrOutOfRange is returned when an index does not address an element
	// of the basis or of an enumeration.
	ErrOutOfRange = errors.New("orthogonal: index out of range")

	// ErrDegenerateBasis is returned by GramSchmidt when the squared norm of an
	// element vanishes after projection: the seed is linearly dependent under
	// the inner product, or the sampling is too coarse to tell elements apart.
	ErrDegenerateBasis = errors.New("orthogonal: degenerate basis")
)
