package convergence

import (
	"encoding/json"
	"fmt"

	"github.com/tuneinsight/orthopoly/orthogonal"
	"github.com/tuneinsight/orthopoly/utils"
)

// DefaultParametersLiteral is the sweep of the reference study: the first five
// basis polynomials, orthogonalized with 100 to 10000 samples.
var DefaultParametersLiteral = ParametersLiteral{
	BasisSize:    5,
	SampleCounts: utils.LogSpace(100, 10000, 21),
	Workers:      1,
}

// ParametersLiteral is a literal representation of the sweep parameters.
// It has public fields and is used to express unchecked user-defined parameters
// literally into Go programs or configuration files.
// The NewParametersFromLiteral function is used to generate the actual checked parameters
// from the literal representation.
type ParametersLiteral struct {
	BasisSize    int   `json:"basis_size" yaml:"basis_size"`
	SampleCounts []int `json:"sample_counts" yaml:"sample_counts"`
	Workers      int   `json:"workers" yaml:"workers"`
}

// Parameters represents a checked parameter set for a convergence sweep.
type Parameters struct {
	basisSize    int
	sampleCounts []int
	workers      int
}

// NewParametersFromLiteral instantiates a set of Parameters from their literal representation.
// It returns an error wrapping orthogonal.ErrInvalidArgument if the basis is empty, if no sample
// count is given or if one of them is smaller than 2. Sample counts are sorted and deduplicated,
// and a non-positive number of workers defaults to 1.
func NewParametersFromLiteral(pl ParametersLiteral) (params Parameters, err error) {

	if pl.BasisSize < 1 {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: BasisSize=%d must be at least 1", orthogonal.ErrInvalidArgument, pl.BasisSize)
	}

	if len(pl.SampleCounts) == 0 {
		return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: no sample count", orthogonal.ErrInvalidArgument)
	}

	for _, n := range pl.SampleCounts {
		if n < 2 {
			return Parameters{}, fmt.Errorf("cannot NewParametersFromLiteral: %w: sample count %d must be at least 2", orthogonal.ErrInvalidArgument, n)
		}
	}

	params.basisSize = pl.BasisSize
	params.sampleCounts = utils.GetSortedDistincts(pl.SampleCounts)

	if params.workers = pl.Workers; params.workers < 1 {
		params.workers = 1
	}

	return
}

// BasisSize returns the number of basis polynomials orthogonalized by each trial.
func (p Parameters) BasisSize() int {
	return p.basisSize
}

// SampleCounts returns a copy of the sorted sample counts of the sweep.
func (p Parameters) SampleCounts() []int {
	return append([]int(nil), p.sampleCounts...)
}

// Workers returns the number of goroutines the sweep is spread over.
func (p Parameters) Workers() int {
	return p.workers
}

// ParametersLiteral returns the ParametersLiteral of the target Parameters.
func (p Parameters) ParametersLiteral() ParametersLiteral {
	return ParametersLiteral{
		BasisSize:    p.basisSize,
		SampleCounts: p.SampleCounts(),
		Workers:      p.workers,
	}
}

// Equal checks two Parameter structs for equality.
func (p Parameters) Equal(other Parameters) bool {
	if p.basisSize != other.basisSize || p.workers != other.workers || len(p.sampleCounts) != len(other.sampleCounts) {
		return false
	}
	for i := range p.sampleCounts {
		if p.sampleCounts[i] != other.sampleCounts[i] {
			return false
		}
	}
	return true
}

// MarshalJSON returns a JSON representation of this parameter set. See `Marshal` from the `encoding/json` package.
func (p Parameters) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ParametersLiteral())
}

// UnmarshalJSON reads a JSON representation of a parameter set into the receiver Parameter. See `Unmarshal` from the `encoding/json` package.
func (p *Parameters) UnmarshalJSON(data []byte) (err error) {
	var params ParametersLiteral
	if err = json.Unmarshal(data, &params); err != nil {
		return
	}
	*p, err = NewParametersFromLiteral(params)
	return
}
