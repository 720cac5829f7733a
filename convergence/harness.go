// Package convergence measures how far a basis orthogonalized under the
// quadrature rule lies from an orthonormal one as the number of samples grows.
package convergence

import (
	"errors"
	"fmt"
	"sync"

	"github.com/tuneinsight/orthopoly/orthogonal"
	"github.com/tuneinsight/orthopoly/utils"
)

// Harness runs orthogonalization trials under Quadrature and scores them against
// the analytic inner product.
type Harness struct {
	params    Parameters
	reference orthogonal.Basis
}

// NewHarness creates a new Harness and orthogonalizes its analytic reference basis.
func NewHarness(params Parameters) (h *Harness, err error) {

	if params.basisSize < 1 {
		return nil, fmt.Errorf("cannot NewHarness: %w: parameters were not checked", orthogonal.ErrInvalidArgument)
	}

	var reference orthogonal.Basis
	if reference, err = orthogonal.NewOrthonormalBasis(params.basisSize, orthogonal.Analytic{}); err != nil {
		return nil, fmt.Errorf("cannot NewHarness: %w", err)
	}

	return &Harness{params: params, reference: reference}, nil
}

// Parameters returns the parameters of the harness.
func (h Harness) Parameters() Parameters {
	return h.params
}

// Reference returns a copy of the basis orthonormalized under Analytic.
func (h Harness) Reference() orthogonal.Basis {
	return h.reference.Clone()
}

// Trial orthogonalizes a fresh monomial basis with sampleCount quadrature samples and
// returns its deviation from orthonormality under Analytic.
func (h Harness) Trial(sampleCount int) (pt Point, err error) {

	basis := orthogonal.NewMonomialBasis(h.params.basisSize)

	if err = orthogonal.GramSchmidt(basis, orthogonal.Quadrature{Samples: sampleCount}); err != nil {
		return Point{}, fmt.Errorf("cannot Trial: %w", err)
	}

	pt.SampleCount = sampleCount

	if pt.Error, err = basis.Deviation(orthogonal.Analytic{}); err != nil {
		return Point{}, fmt.Errorf("cannot Trial: %w", err)
	}

	for i := range basis {
		if d := utils.MaxAbsDiff(basis[i].Coeffs, h.reference[i].Coeffs); d > pt.CoefficientError {
			pt.CoefficientError = d
		}
	}

	return
}

type trial struct {
	sampleCount int
	pt          Point
	err         error
}

// Run runs one trial per sample count and collects them in ascending sample count order.
// Trials whose basis degenerated are recorded in ErrorCurve.Skipped; any other error
// aborts the sweep.
func (h Harness) Run() (curve ErrorCurve, err error) {

	trials := make([]trial, len(h.params.sampleCounts))
	for i, n := range h.params.sampleCounts {
		trials[i].sampleCount = n
	}

	if h.params.workers == 1 {
		for i := range trials {
			trials[i].pt, trials[i].err = h.Trial(trials[i].sampleCount)
		}
	} else {

		// Splits the trials among the Go routines
		tasks := make(chan *trial)
		workers := &sync.WaitGroup{}
		workers.Add(h.params.workers)
		for i := 0; i < h.params.workers; i++ {
			go func() {
				for task := range tasks {
					task.pt, task.err = h.Trial(task.sampleCount)
				}
				workers.Done()
			}()
		}

		for i := range trials {
			tasks <- &trials[i]
		}
		close(tasks)

		workers.Wait()
	}

	for _, t := range trials {
		switch {
		case t.err == nil:
			curve.Points = append(curve.Points, t.pt)
		case errors.Is(t.err, orthogonal.ErrDegenerateBasis):
			curve.Skipped = append(curve.Skipped, Skip{SampleCount: t.sampleCount, Err: t.err})
		default:
			return ErrorCurve{}, fmt.Errorf("cannot Run: sample count %d: %w", t.sampleCount, t.err)
		}
	}

	return
}
