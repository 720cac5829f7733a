package convergence

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"github.com/tuneinsight/orthopoly/orthogonal"
)

// Point is the outcome of one trial.
type Point struct {
	SampleCount int `json:"sample_count"`
	// Error is sum_ij |delta_ij - G_ij| with G the Gram matrix under Analytic.
	Error float64 `json:"error"`
	// CoefficientError is the largest coefficient difference to the analytic basis.
	CoefficientError float64 `json:"coefficient_error"`
}

// Skip records a sample count whose basis degenerated.
type Skip struct {
	SampleCount int   `json:"sample_count"`
	Err         error `json:"-"`
}

// ErrorCurve is the orthogonality error as a function of the number of quadrature samples.
type ErrorCurve struct {
	Points  []Point `json:"points"`
	Skipped []Skip  `json:"skipped,omitempty"`
}

// Summary gathers the statistics of the errors of a curve.
type Summary struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	StdDev float64 `json:"std_dev"`
}

// SampleCounts returns the sample counts of the points of the curve.
func (c ErrorCurve) SampleCounts() (counts []int) {
	counts = make([]int, len(c.Points))
	for i := range c.Points {
		counts[i] = c.Points[i].SampleCount
	}
	return
}

// Errors returns the errors of the points of the curve.
func (c ErrorCurve) Errors() (errs []float64) {
	errs = make([]float64, len(c.Points))
	for i := range c.Points {
		errs[i] = c.Points[i].Error
	}
	return
}

// Summary returns the statistics of the errors of the curve.
func (c ErrorCurve) Summary() (s Summary, err error) {

	errs := stats.Float64Data(c.Errors())

	if s.Mean, err = errs.Mean(); err != nil {
		return Summary{}, fmt.Errorf("cannot Summary: %w", err)
	}

	if s.Median, err = errs.Median(); err != nil {
		return Summary{}, fmt.Errorf("cannot Summary: %w", err)
	}

	if s.Min, err = errs.Min(); err != nil {
		return Summary{}, fmt.Errorf("cannot Summary: %w", err)
	}

	if s.Max, err = errs.Max(); err != nil {
		return Summary{}, fmt.Errorf("cannot Summary: %w", err)
	}

	if s.StdDev, err = errs.StandardDeviation(); err != nil {
		return Summary{}, fmt.Errorf("cannot Summary: %w", err)
	}

	return
}

// Rate returns the slope of the least-squares line through (log n, log error), i.e.
// the empirical order of convergence of the curve. A rate of -1 means the error is
// divided by ten when the number of samples is multiplied by ten.
func (c ErrorCurve) Rate() (rate float64, err error) {

	if len(c.Points) < 2 {
		return 0, fmt.Errorf("cannot Rate: %w: need at least two points but curve has %d", orthogonal.ErrInvalidArgument, len(c.Points))
	}

	series := make(stats.Series, len(c.Points))
	for i, pt := range c.Points {
		if pt.Error <= 0 {
			return 0, fmt.Errorf("cannot Rate: %w: error %g at sample count %d has no logarithm", orthogonal.ErrInvalidArgument, pt.Error, pt.SampleCount)
		}
		series[i] = stats.Coordinate{X: math.Log(float64(pt.SampleCount)), Y: math.Log(pt.Error)}
	}

	var line stats.Series
	if line, err = stats.LinearRegression(series); err != nil {
		return 0, fmt.Errorf("cannot Rate: %w", err)
	}

	first, last := line[0], line[len(line)-1]

	if first.X == last.X {
		return 0, fmt.Errorf("cannot Rate: %w: all points share sample count %d", orthogonal.ErrInvalidArgument, c.Points[0].SampleCount)
	}

	return (last.Y - first.Y) / (last.X - first.X), nil
}
